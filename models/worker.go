package models

import "time"

// Worker represents a garage employee
type Worker struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(200);not null"`
	JobTitle  string    `json:"job_title" gorm:"type:varchar(100)"`
	Phone     string    `json:"phone" gorm:"type:varchar(30)"`
	Email     string    `json:"email" gorm:"type:varchar(200)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WorkerRequest is the request body for creating/updating a worker
type WorkerRequest struct {
	Name     string `json:"name" binding:"required"`
	JobTitle string `json:"job_title"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

// WorkerPayment records a single ad-hoc payment made to a worker.
// PaymentDate defaults to the insert time on the database side.
type WorkerPayment struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	WorkerID    uint       `json:"worker_id" gorm:"not null;index"`
	Amount      int64      `json:"amount" gorm:"not null"`
	Method      string     `json:"method" gorm:"type:varchar(100)"`
	Notes       string     `json:"notes" gorm:"type:text"`
	PaymentDate *time.Time `json:"payment_date" gorm:"default:CURRENT_TIMESTAMP"`
	CreatedAt   time.Time  `json:"created_at"`
}

// WorkerPaymentRequest is the request body for recording a payment
type WorkerPaymentRequest struct {
	Amount      *int64 `json:"amount" binding:"required"`
	Method      string `json:"method"`
	Notes       string `json:"notes"`
	PaymentDate string `json:"payment_date"`
}
