package routes

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"garage-admin-server/database"
	"garage-admin-server/models"
	"garage-admin-server/services"
)

// RegisterWorkerRoutes registers worker CRUD plus the payment ledger
// endpoints nested under a worker.
func RegisterWorkerRoutes(router *gin.RouterGroup) {
	router.GET("", listWorkers)
	router.GET("/:id", getWorker)
	router.POST("", createWorker)
	router.PUT("/:id", updateWorker)
	router.DELETE("/:id", deleteWorker)

	router.GET("/:id/payments", listWorkerPayments)
	router.POST("/:id/payments", addWorkerPayment)
	router.GET("/:id/payments/total", getWorkerPaymentsTotal)
	router.GET("/:id/payments/pdf", getWorkerPaymentsPDF)
}

func listWorkers(c *gin.Context) {
	var workers []models.Worker
	if err := database.DB.Order("id ASC").Find(&workers).Error; err != nil {
		log.Printf("failed to list workers: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch workers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"workers": workers})
}

func getWorker(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid worker ID"})
		return
	}

	var worker models.Worker
	if err := database.DB.First(&worker, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Worker not found"})
			return
		}
		log.Printf("failed to fetch worker %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch worker"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"worker": worker})
}

func createWorker(c *gin.Context) {
	var req models.WorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	worker := models.Worker{
		Name:     req.Name,
		JobTitle: req.JobTitle,
		Phone:    req.Phone,
		Email:    req.Email,
	}
	if err := database.DB.Create(&worker).Error; err != nil {
		log.Printf("failed to create worker: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create worker"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"worker": worker})
}

func updateWorker(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid worker ID"})
		return
	}

	var req models.WorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := database.DB.Model(&models.Worker{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":      req.Name,
		"job_title": req.JobTitle,
		"phone":     req.Phone,
		"email":     req.Email,
	})
	if result.Error != nil {
		log.Printf("failed to update worker %d: %v", id, result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update worker"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Worker not found"})
		return
	}

	var worker models.Worker
	database.DB.First(&worker, id)
	c.JSON(http.StatusOK, gin.H{"worker": worker})
}

// deleteWorker cascades through the payment service so no service keeps
// a dangling assignment and no payment rows are orphaned.
func deleteWorker(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid worker ID"})
		return
	}

	err = services.NewPaymentService(database.DB).DeleteWorker(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Worker not found"})
			return
		}
		log.Printf("failed to delete worker %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete worker"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Worker deleted"})
}

func listWorkerPayments(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid worker ID"})
		return
	}

	payments, err := services.NewPaymentService(database.DB).ListPayments(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Worker not found"})
			return
		}
		log.Printf("failed to list payments for worker %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

func addWorkerPayment(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid worker ID"})
		return
	}

	var req models.WorkerPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := services.NewPaymentService(database.DB).AddPayment(id, req)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Worker not found"})
		case errors.Is(err, services.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Printf("failed to add payment for worker %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"payment": payment})
}

func getWorkerPaymentsTotal(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid worker ID"})
		return
	}

	total, err := services.NewPaymentService(database.DB).TotalPaid(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Worker not found"})
			return
		}
		log.Printf("failed to total payments for worker %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute total"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"worker_id": id, "total": total})
}

func getWorkerPaymentsPDF(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid worker ID"})
		return
	}

	doc, err := newPDFService().RenderWorkerPayments(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Worker not found"})
			return
		}
		log.Printf("failed to render payment report for worker %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="worker-%d-payments.pdf"`, id))
	c.Data(http.StatusOK, "application/pdf", doc)
}
