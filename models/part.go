package models

import "time"

// Part represents a part held in the garage inventory.
// Costs are stored as integer minor currency units.
type Part struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name" gorm:"type:varchar(200);not null"`
	PartNumber     string    `json:"part_number" gorm:"type:varchar(100);index"`
	PurchasingCost int64     `json:"purchasing_cost" gorm:"not null;default:0"`
	SellingCost    int64     `json:"selling_cost" gorm:"not null;default:0"`
	Quantity       int       `json:"quantity" gorm:"not null;default:0;check:quantity >= 0"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// PartRequest is the request body for creating/updating a part
type PartRequest struct {
	Name           string `json:"name" binding:"required"`
	PartNumber     string `json:"part_number"`
	PurchasingCost int64  `json:"purchasing_cost"`
	SellingCost    int64  `json:"selling_cost"`
	Quantity       int    `json:"quantity"`
}
