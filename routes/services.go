package routes

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"garage-admin-server/database"
	"garage-admin-server/models"
)

// RegisterServiceRoutes registers the service catalog routes
func RegisterServiceRoutes(router *gin.RouterGroup) {
	router.GET("", listServices)
	router.GET("/:id", getService)
	router.POST("", createService)
	router.PUT("/:id", updateService)
	router.PUT("/:id/assign-worker", assignWorker)
	router.DELETE("/:id", deleteService)
}

func listServices(c *gin.Context) {
	var catalog []models.Service
	if err := database.DB.Preload("Worker").Order("id ASC").Find(&catalog).Error; err != nil {
		log.Printf("failed to list services: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch services"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": catalog})
}

func getService(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
		return
	}

	var service models.Service
	if err := database.DB.Preload("Worker").First(&service, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
			return
		}
		log.Printf("failed to fetch service %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch service"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"service": service})
}

func createService(c *gin.Context) {
	var req models.ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	service := models.Service{
		Name:     req.Name,
		Category: req.Category,
		WorkerID: req.WorkerID,
	}
	if err := database.DB.Create(&service).Error; err != nil {
		log.Printf("failed to create service: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create service"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"service": service})
}

func updateService(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
		return
	}

	var req models.ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := database.DB.Model(&models.Service{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":      req.Name,
		"category":  req.Category,
		"worker_id": req.WorkerID,
	})
	if result.Error != nil {
		log.Printf("failed to update service %d: %v", id, result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update service"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}

	var service models.Service
	database.DB.Preload("Worker").First(&service, id)
	c.JSON(http.StatusOK, gin.H{"service": service})
}

// assignWorker sets the worker responsible for a service. Clearing an
// assignment goes through the regular service update with a null worker_id.
func assignWorker(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
		return
	}

	var req models.AssignWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var worker models.Worker
	if err := database.DB.First(&worker, *req.WorkerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Worker not found"})
			return
		}
		log.Printf("failed to fetch worker %d: %v", *req.WorkerID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign worker"})
		return
	}

	result := database.DB.Model(&models.Service{}).Where("id = ?", id).Update("worker_id", *req.WorkerID)
	if result.Error != nil {
		log.Printf("failed to assign worker to service %d: %v", id, result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign worker"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}

	var service models.Service
	database.DB.Preload("Worker").First(&service, id)
	c.JSON(http.StatusOK, gin.H{"service": service})
}

func deleteService(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
		return
	}

	result := database.DB.Delete(&models.Service{}, id)
	if result.Error != nil {
		log.Printf("failed to delete service %d: %v", id, result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete service"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted"})
}
