package models

import "time"

// GarageStayRate is the fixed charge per day a vehicle remains in the
// garage, in minor currency units.
const GarageStayRate int64 = 5000

// Invoice item types
const (
	InvoiceItemService = "service"
	InvoiceItemPart    = "part"
)

// Invoice represents a persisted invoice for a vehicle's stay.
// Subtotal, tax and total are computed server-side, never client-supplied.
type Invoice struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	VehicleID      uint      `json:"vehicle_id" gorm:"not null;index"`
	DaysInGarage   int       `json:"days_in_garage" gorm:"not null;default:0"`
	GarageStayRate int64     `json:"garage_stay_rate" gorm:"not null"`
	Subtotal       int64     `json:"subtotal" gorm:"not null;default:0"`
	Tax            int64     `json:"tax" gorm:"not null;default:0"`
	Total          int64     `json:"total" gorm:"not null;default:0"`
	CreatedAt      time.Time `json:"created_at"`

	Vehicle *Vehicle      `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
	Items   []InvoiceItem `json:"items,omitempty" gorm:"foreignKey:InvoiceID"`
}

// InvoiceItem is one line of an invoice. For parts, Total is
// quantity × unit price; for services, the supplied unit price is the
// line total (quantity fixed at 1). PurchasedCost is recorded for parts
// only, for margin reporting.
type InvoiceItem struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	InvoiceID     uint   `json:"invoice_id" gorm:"not null;index"`
	ItemType      string `json:"item_type" gorm:"type:varchar(20);not null"`
	ItemID        uint   `json:"item_id" gorm:"not null"`
	Description   string `json:"description" gorm:"type:varchar(500)"`
	Quantity      int    `json:"quantity" gorm:"not null;default:1"`
	PurchasedCost *int64 `json:"purchased_cost"`
	UnitPrice     int64  `json:"unit_price" gorm:"not null"`
	Total         int64  `json:"total" gorm:"not null"`
}

// InvoiceServiceLine is one selected service on an invoice request.
// The caller supplies the price charged for the job.
type InvoiceServiceLine struct {
	ID          uint   `json:"id" binding:"required"`
	Description string `json:"description"`
	UnitPrice   int64  `json:"unit_price"`
}

// InvoicePartLine is one selected part on an invoice request
type InvoicePartLine struct {
	ID       uint `json:"id" binding:"required"`
	Quantity int  `json:"quantity"`
}

// InvoiceRequest is the request body for creating an invoice
type InvoiceRequest struct {
	VehicleID    *uint                `json:"vehicle_id" binding:"required"`
	DaysInGarage *int                 `json:"days_in_garage" binding:"required"`
	Services     []InvoiceServiceLine `json:"services"`
	Parts        []InvoicePartLine    `json:"parts"`
}
