package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"garage-admin-server/models"
)

// Exit preconditions, enforced in application logic
var (
	ErrServicesIncomplete = errors.New("services incomplete")
	ErrInvoiceMissing     = errors.New("invoice missing")
	ErrAlreadyExited      = errors.New("vehicle already exited")
)

// VehicleWorkflowService owns a vehicle's stay in the garage: creation,
// updates, per-service status, exit and cascading deletion.
type VehicleWorkflowService struct {
	db *gorm.DB
}

// NewVehicleWorkflowService creates a new vehicle workflow service
func NewVehicleWorkflowService(db *gorm.DB) *VehicleWorkflowService {
	return &VehicleWorkflowService{db: db}
}

// Create inserts the vehicle with entry_time = now plus its selected
// services (status "pending"), standalone parts and service parts,
// all in one transaction.
func (s *VehicleWorkflowService) Create(req models.VehicleRequest) (*models.Vehicle, error) {
	vehicle := models.Vehicle{
		Plate:         req.Plate,
		Make:          req.Make,
		ModelName:     req.ModelName,
		Year:          req.Year,
		VIN:           req.VIN,
		Owner:         req.Owner,
		ContactNumber: req.ContactNumber,
		EntryTime:     time.Now(),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&vehicle).Error; err != nil {
			return err
		}
		for _, sel := range req.Services {
			vs := models.VehicleService{
				VehicleID: vehicle.ID,
				ServiceID: sel.ServiceID,
				Status:    models.VehicleServicePending,
			}
			if err := tx.Create(&vs).Error; err != nil {
				return err
			}
		}
		if err := insertPartSelections(tx, vehicle.ID, req.Parts, req.ServiceParts); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// Update writes the vehicle fields and replaces both part association
// sets with the caller-supplied lists. Full-replace semantics: existing
// rows are deleted before re-insert, in the same transaction.
func (s *VehicleWorkflowService) Update(id uint, req models.VehicleRequest) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Vehicle{}).Where("id = ?", id).Updates(map[string]interface{}{
			"plate":          req.Plate,
			"make":           req.Make,
			"model_name":     req.ModelName,
			"year":           req.Year,
			"vin":            req.VIN,
			"owner":          req.Owner,
			"contact_number": req.ContactNumber,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Where("vehicle_id = ?", id).Delete(&models.VehiclePart{}).Error; err != nil {
			return err
		}
		if err := tx.Where("vehicle_id = ?", id).Delete(&models.VehicleServicePart{}).Error; err != nil {
			return err
		}
		return insertPartSelections(tx, id, req.Parts, req.ServiceParts)
	})
}

// Exit marks the vehicle as having left the garage. It fails while any
// service is not completed, or while no invoice exists for the vehicle.
// exit_time is set once; a vehicle that already left cannot exit again.
func (s *VehicleWorkflowService) Exit(id uint) error {
	var vehicle models.Vehicle
	if err := s.db.First(&vehicle, id).Error; err != nil {
		return err
	}
	if vehicle.ExitTime != nil {
		return ErrAlreadyExited
	}

	var openServices int64
	if err := s.db.Model(&models.VehicleService{}).
		Where("vehicle_id = ? AND status <> ?", id, models.VehicleServiceCompleted).
		Count(&openServices).Error; err != nil {
		return err
	}
	if openServices > 0 {
		return ErrServicesIncomplete
	}

	var invoiceCount int64
	if err := s.db.Model(&models.Invoice{}).Where("vehicle_id = ?", id).Count(&invoiceCount).Error; err != nil {
		return err
	}
	if invoiceCount == 0 {
		return ErrInvoiceMissing
	}

	now := time.Now()
	return s.db.Model(&vehicle).Update("exit_time", &now).Error
}

// UpdateServiceStatus sets the status and optional completed time on the
// (vehicle, service) join row.
func (s *VehicleWorkflowService) UpdateServiceStatus(vehicleID, serviceID uint, status string, completedTime *time.Time) error {
	updates := map[string]interface{}{"status": status}
	if completedTime != nil {
		updates["completed_time"] = completedTime
	}

	result := s.db.Model(&models.VehicleService{}).
		Where("vehicle_id = ? AND service_id = ?", vehicleID, serviceID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete cascades: invoice items for the vehicle's invoices, the
// invoices, the association rows, then the vehicle itself. The NotFound
// check happens on the vehicle row, after the (no-op when absent)
// cascade deletes.
func (s *VehicleWorkflowService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		invoiceIDs := tx.Model(&models.Invoice{}).Select("id").Where("vehicle_id = ?", id)
		if err := tx.Where("invoice_id IN (?)", invoiceIDs).Delete(&models.InvoiceItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("vehicle_id = ?", id).Delete(&models.Invoice{}).Error; err != nil {
			return err
		}
		if err := tx.Where("vehicle_id = ?", id).Delete(&models.VehicleService{}).Error; err != nil {
			return err
		}
		if err := tx.Where("vehicle_id = ?", id).Delete(&models.VehiclePart{}).Error; err != nil {
			return err
		}
		if err := tx.Where("vehicle_id = ?", id).Delete(&models.VehicleServicePart{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Vehicle{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func insertPartSelections(tx *gorm.DB, vehicleID uint, parts []models.VehiclePartSelection, serviceParts []models.VehicleServicePartSelection) error {
	for _, sel := range parts {
		quantity := sel.Quantity
		if quantity < 1 {
			quantity = 1
		}
		vp := models.VehiclePart{
			VehicleID: vehicleID,
			PartID:    sel.PartID,
			Quantity:  quantity,
		}
		if err := tx.Create(&vp).Error; err != nil {
			return err
		}
	}
	for _, sel := range serviceParts {
		quantity := sel.Quantity
		if quantity < 1 {
			quantity = 1
		}
		vsp := models.VehicleServicePart{
			VehicleID: vehicleID,
			ServiceID: sel.ServiceID,
			PartID:    sel.PartID,
			Quantity:  quantity,
		}
		if err := tx.Create(&vsp).Error; err != nil {
			return err
		}
	}
	return nil
}
