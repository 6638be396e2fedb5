package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"garage-admin-server/models"
)

// taxRate is the fixed tax applied to every invoice subtotal.
var taxRate = decimal.NewFromFloat(0.18)

// ErrPartNotFound is returned when an invoice references a part id that
// does not exist in the inventory.
var ErrPartNotFound = errors.New("part not found")

// ErrInvoiceFieldsMissing is returned when vehicle_id or days_in_garage
// is absent from an invoice request.
var ErrInvoiceFieldsMissing = errors.New("vehicle_id and days_in_garage are required")

// InvoiceService computes and persists invoices
type InvoiceService struct {
	db *gorm.DB
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(db *gorm.DB) *InvoiceService {
	return &InvoiceService{db: db}
}

// ComputeTotals derives subtotal, tax and total from an items total and
// the garage stay. This is the only place the tax rule lives; invoice
// creation and PDF rendering both go through it. Amounts are integer
// minor currency units; tax rounds half away from zero.
func ComputeTotals(itemsTotal int64, daysInGarage int, stayRate int64) (subtotal, tax, total int64) {
	stayTotal := decimal.NewFromInt(int64(daysInGarage)).Mul(decimal.NewFromInt(stayRate))
	sub := decimal.NewFromInt(itemsTotal).Add(stayTotal)
	t := sub.Mul(taxRate).Round(0)
	return sub.IntPart(), t.IntPart(), sub.Add(t).IntPart()
}

// Create persists a new invoice from the vehicle's selected services and
// parts. A placeholder row is inserted first to obtain the invoice id,
// items are appended, then the totals are written back. Everything runs
// in one transaction: a missing part id rolls back all writes including
// the placeholder.
func (s *InvoiceService) Create(req models.InvoiceRequest) (uint, error) {
	if req.VehicleID == nil || req.DaysInGarage == nil {
		return 0, ErrInvoiceFieldsMissing
	}

	var invoiceID uint

	err := s.db.Transaction(func(tx *gorm.DB) error {
		invoice := models.Invoice{
			VehicleID:      *req.VehicleID,
			DaysInGarage:   *req.DaysInGarage,
			GarageStayRate: models.GarageStayRate,
		}
		if err := tx.Create(&invoice).Error; err != nil {
			return err
		}

		var itemsTotal int64

		// Service lines: the supplied unit price is the line total.
		for _, line := range req.Services {
			item := models.InvoiceItem{
				InvoiceID:   invoice.ID,
				ItemType:    models.InvoiceItemService,
				ItemID:      line.ID,
				Description: line.Description,
				Quantity:    1,
				UnitPrice:   line.UnitPrice,
				Total:       line.UnitPrice,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			itemsTotal += item.Total
		}

		// Part lines: priced from the inventory at creation time.
		for _, line := range req.Parts {
			var part models.Part
			if err := tx.First(&part, line.ID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: id %d", ErrPartNotFound, line.ID)
				}
				return err
			}

			quantity := line.Quantity
			if quantity < 1 {
				quantity = 1
			}

			purchased := part.PurchasingCost
			item := models.InvoiceItem{
				InvoiceID:     invoice.ID,
				ItemType:      models.InvoiceItemPart,
				ItemID:        part.ID,
				Description:   part.Name,
				Quantity:      quantity,
				PurchasedCost: &purchased,
				UnitPrice:     part.SellingCost,
				Total:         part.SellingCost * int64(quantity),
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			itemsTotal += item.Total
		}

		subtotal, tax, total := ComputeTotals(itemsTotal, invoice.DaysInGarage, invoice.GarageStayRate)
		if err := tx.Model(&invoice).Updates(map[string]interface{}{
			"subtotal": subtotal,
			"tax":      tax,
			"total":    total,
		}).Error; err != nil {
			return err
		}

		invoiceID = invoice.ID
		return nil
	})

	return invoiceID, err
}

// Get returns one invoice with its items in insertion order
func (s *InvoiceService) Get(id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&invoice, id).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// List returns all invoices, newest first
func (s *InvoiceService) List() ([]models.Invoice, error) {
	var invoices []models.Invoice
	if err := s.db.Order("id DESC").Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// Delete removes an invoice and its items in one transaction
func (s *InvoiceService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&models.InvoiceItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Invoice{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
