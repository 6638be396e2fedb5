package models

import "time"

// Vehicle service statuses. Statuses are free-form strings; only
// "completed" carries semantics (the exit precondition).
const (
	VehicleServicePending   = "pending"
	VehicleServiceCompleted = "completed"
)

// Vehicle models a car's stay in the garage from entry to exit
type Vehicle struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	Plate         string     `json:"plate" gorm:"type:varchar(30);not null;index"`
	Make          string     `json:"make" gorm:"type:varchar(100)"`
	ModelName     string     `json:"model_name" gorm:"type:varchar(100)"`
	Year          int        `json:"year"`
	VIN           string     `json:"vin" gorm:"type:varchar(50)"`
	Owner         string     `json:"owner" gorm:"type:varchar(200);not null"`
	ContactNumber string     `json:"contact_number" gorm:"type:varchar(30);not null"`
	EntryTime     time.Time  `json:"entry_time" gorm:"not null"`
	ExitTime      *time.Time `json:"exit_time"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Associations
	Services     []VehicleService     `json:"services,omitempty" gorm:"foreignKey:VehicleID"`
	Parts        []VehiclePart        `json:"parts,omitempty" gorm:"foreignKey:VehicleID"`
	ServiceParts []VehicleServicePart `json:"service_parts,omitempty" gorm:"foreignKey:VehicleID"`
}

// VehicleService joins a vehicle to a catalog service with a workflow status
type VehicleService struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	VehicleID     uint       `json:"vehicle_id" gorm:"not null;index"`
	ServiceID     uint       `json:"service_id" gorm:"not null;index"`
	Status        string     `json:"status" gorm:"type:varchar(50);not null;default:'pending'"`
	CompletedTime *time.Time `json:"completed_time"`
	Service       *Service   `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
}

// VehiclePart is a part consumed on a vehicle without a specific service
type VehiclePart struct {
	ID        uint  `json:"id" gorm:"primaryKey"`
	VehicleID uint  `json:"vehicle_id" gorm:"not null;index"`
	PartID    uint  `json:"part_id" gorm:"not null;index"`
	Quantity  int   `json:"quantity" gorm:"not null;default:1"`
	Part      *Part `json:"part,omitempty" gorm:"foreignKey:PartID"`
}

// VehicleServicePart is a part consumed performing a specific service
type VehicleServicePart struct {
	ID        uint  `json:"id" gorm:"primaryKey"`
	VehicleID uint  `json:"vehicle_id" gorm:"not null;index"`
	ServiceID uint  `json:"service_id" gorm:"not null;index"`
	PartID    uint  `json:"part_id" gorm:"not null;index"`
	Quantity  int   `json:"quantity" gorm:"not null;default:1"`
	Part      *Part `json:"part,omitempty" gorm:"foreignKey:PartID"`
}

// VehicleServiceSelection selects a catalog service for a vehicle
type VehicleServiceSelection struct {
	ServiceID uint `json:"service_id" binding:"required"`
}

// VehiclePartSelection selects a standalone part and quantity
type VehiclePartSelection struct {
	PartID   uint `json:"part_id" binding:"required"`
	Quantity int  `json:"quantity"`
}

// VehicleServicePartSelection selects a part consumed by a specific service
type VehicleServicePartSelection struct {
	ServiceID uint `json:"service_id" binding:"required"`
	PartID    uint `json:"part_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

// VehicleRequest is the request body for creating/updating a vehicle
type VehicleRequest struct {
	Plate         string                        `json:"plate" binding:"required"`
	Make          string                        `json:"make"`
	ModelName     string                        `json:"model_name"`
	Year          int                           `json:"year"`
	VIN           string                        `json:"vin"`
	Owner         string                        `json:"owner" binding:"required"`
	ContactNumber string                        `json:"contact_number" binding:"required"`
	Services      []VehicleServiceSelection     `json:"services"`
	Parts         []VehiclePartSelection        `json:"parts"`
	ServiceParts  []VehicleServicePartSelection `json:"service_parts"`
}

// VehicleServiceStatusRequest updates one service's status on a vehicle
type VehicleServiceStatusRequest struct {
	Status        string `json:"status" binding:"required"`
	CompletedTime string `json:"completed_time"`
}
