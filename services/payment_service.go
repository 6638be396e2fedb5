package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"garage-admin-server/models"
)

// ErrInvalidAmount is returned when a payment amount is zero or negative
var ErrInvalidAmount = errors.New("amount must be greater than zero")

// paymentDateLayouts are the accepted client formats for payment_date.
// Anything else falls back to the database-side default (insert time).
var paymentDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// PaymentService is the worker payment ledger
type PaymentService struct {
	db *gorm.DB
}

// NewPaymentService creates a new payment service
func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{db: db}
}

// AddPayment records a payment for a worker. The payment date is parsed
// from the request when possible; an absent or unparseable value is left
// to the store default so the timestamp comes from one clock.
func (s *PaymentService) AddPayment(workerID uint, req models.WorkerPaymentRequest) (*models.WorkerPayment, error) {
	var worker models.Worker
	if err := s.db.First(&worker, workerID).Error; err != nil {
		return nil, err
	}
	if *req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	payment := models.WorkerPayment{
		WorkerID:    workerID,
		Amount:      *req.Amount,
		Method:      req.Method,
		Notes:       req.Notes,
		PaymentDate: parsePaymentDate(req.PaymentDate),
	}
	if err := s.db.Create(&payment).Error; err != nil {
		return nil, err
	}

	// Re-read so a store-defaulted payment_date shows up in the response.
	if err := s.db.First(&payment, payment.ID).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// ListPayments returns a worker's payments, most recent first
func (s *PaymentService) ListPayments(workerID uint) ([]models.WorkerPayment, error) {
	var worker models.Worker
	if err := s.db.First(&worker, workerID).Error; err != nil {
		return nil, err
	}

	var payments []models.WorkerPayment
	err := s.db.Where("worker_id = ?", workerID).
		Order("payment_date DESC NULLS LAST").
		Order("id DESC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

// TotalPaid sums a worker's payments at read time
func (s *PaymentService) TotalPaid(workerID uint) (int64, error) {
	var worker models.Worker
	if err := s.db.First(&worker, workerID).Error; err != nil {
		return 0, err
	}

	var total int64
	err := s.db.Model(&models.WorkerPayment{}).
		Where("worker_id = ?", workerID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

// DeleteWorker removes a worker without leaving dangling references:
// service assignments are nulled out and payment rows removed, then the
// worker row itself, all in one transaction.
func (s *PaymentService) DeleteWorker(workerID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Service{}).
			Where("worker_id = ?", workerID).
			Update("worker_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("worker_id = ?", workerID).Delete(&models.WorkerPayment{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Worker{}, workerID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func parsePaymentDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	for _, layout := range paymentDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}
