package routes

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"garage-admin-server/database"
	"garage-admin-server/models"
	"garage-admin-server/services"
)

// RegisterVehicleRoutes registers the vehicle workflow routes
func RegisterVehicleRoutes(router *gin.RouterGroup) {
	router.GET("", listVehicles)
	router.GET("/:id", getVehicle)
	router.POST("", createVehicle)
	router.PUT("/:id", updateVehicle)
	router.PUT("/:id/exit", exitVehicle)
	router.PUT("/:id/services/:serviceId", updateVehicleServiceStatus)
	router.DELETE("/:id", deleteVehicle)
}

func listVehicles(c *gin.Context) {
	var vehicles []models.Vehicle
	err := database.DB.
		Preload("Services").
		Preload("Parts").
		Preload("ServiceParts").
		Order("id ASC").
		Find(&vehicles).Error
	if err != nil {
		log.Printf("failed to list vehicles: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vehicles"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicles": vehicles})
}

func getVehicle(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle ID"})
		return
	}

	var vehicle models.Vehicle
	err = database.DB.
		Preload("Services.Service").
		Preload("Parts.Part").
		Preload("ServiceParts.Part").
		First(&vehicle, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
			return
		}
		log.Printf("failed to fetch vehicle %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vehicle"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicle": vehicle})
}

func createVehicle(c *gin.Context) {
	var req models.VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vehicle, err := services.NewVehicleWorkflowService(database.DB).Create(req)
	if err != nil {
		log.Printf("failed to create vehicle: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create vehicle"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"vehicle": vehicle})
}

func updateVehicle(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle ID"})
		return
	}

	var req models.VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = services.NewVehicleWorkflowService(database.DB).Update(id, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
			return
		}
		log.Printf("failed to update vehicle %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update vehicle"})
		return
	}

	var vehicle models.Vehicle
	database.DB.Preload("Parts").Preload("ServiceParts").First(&vehicle, id)
	c.JSON(http.StatusOK, gin.H{"vehicle": vehicle})
}

// exitVehicle closes a vehicle's stay. Preconditions (all services
// completed, at least one invoice) map to 400 with the reason string.
func exitVehicle(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle ID"})
		return
	}

	err = services.NewVehicleWorkflowService(database.DB).Exit(id)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		case errors.Is(err, services.ErrServicesIncomplete),
			errors.Is(err, services.ErrInvoiceMissing),
			errors.Is(err, services.ErrAlreadyExited):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Printf("failed to exit vehicle %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to exit vehicle"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vehicle exited"})
}

func updateVehicleServiceStatus(c *gin.Context) {
	vehicleID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle ID"})
		return
	}
	serviceID, err := parseID(c.Param("serviceId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
		return
	}

	var req models.VehicleServiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var completedTime *time.Time
	if req.CompletedTime != "" {
		if t, err := time.Parse(time.RFC3339, req.CompletedTime); err == nil {
			completedTime = &t
		}
	}

	err = services.NewVehicleWorkflowService(database.DB).UpdateServiceStatus(vehicleID, serviceID, req.Status, completedTime)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle service not found"})
			return
		}
		log.Printf("failed to update service %d status on vehicle %d: %v", serviceID, vehicleID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update service status"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service status updated"})
}

func deleteVehicle(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle ID"})
		return
	}

	err = services.NewVehicleWorkflowService(database.DB).Delete(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
			return
		}
		log.Printf("failed to delete vehicle %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete vehicle"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted"})
}

// GetVehicleIDs returns just the ids, for client-side pickers
func GetVehicleIDs(c *gin.Context) {
	var ids []uint
	if err := database.DB.Model(&models.Vehicle{}).Order("id ASC").Pluck("id", &ids).Error; err != nil {
		log.Printf("failed to list vehicle ids: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vehicle IDs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicle_ids": ids})
}
