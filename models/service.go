package models

import "time"

// Service represents a repair-job type from the garage catalog.
// WorkerID is the optionally assigned worker; nil means unassigned.
type Service struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(200);not null"`
	Category  string    `json:"category" gorm:"type:varchar(100)"`
	WorkerID  *uint     `json:"worker_id" gorm:"index"`
	Worker    *Worker   `json:"worker,omitempty" gorm:"foreignKey:WorkerID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ServiceRequest is the request body for creating/updating a service
type ServiceRequest struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category"`
	WorkerID *uint  `json:"worker_id"`
}

// AssignWorkerRequest is the request body for assigning a worker to a service
type AssignWorkerRequest struct {
	WorkerID *uint `json:"worker_id" binding:"required"`
}
