package routes

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"garage-admin-server/database"
	"garage-admin-server/models"
)

// RegisterPartRoutes registers all part inventory routes
func RegisterPartRoutes(router *gin.RouterGroup) {
	router.GET("", listParts)
	router.GET("/:id", getPart)
	router.POST("", createPart)
	router.PUT("/:id", updatePart)
	router.DELETE("/:id", deletePart)
}

func listParts(c *gin.Context) {
	var parts []models.Part
	if err := database.DB.Order("id ASC").Find(&parts).Error; err != nil {
		log.Printf("failed to list parts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch parts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"parts": parts})
}

func getPart(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid part ID"})
		return
	}

	var part models.Part
	if err := database.DB.First(&part, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Part not found"})
			return
		}
		log.Printf("failed to fetch part %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch part"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"part": part})
}

func createPart(c *gin.Context) {
	var req models.PartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	part := models.Part{
		Name:           req.Name,
		PartNumber:     req.PartNumber,
		PurchasingCost: req.PurchasingCost,
		SellingCost:    req.SellingCost,
		Quantity:       req.Quantity,
	}
	if err := database.DB.Create(&part).Error; err != nil {
		log.Printf("failed to create part: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create part"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"part": part})
}

func updatePart(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid part ID"})
		return
	}

	var req models.PartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := database.DB.Model(&models.Part{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":            req.Name,
		"part_number":     req.PartNumber,
		"purchasing_cost": req.PurchasingCost,
		"selling_cost":    req.SellingCost,
		"quantity":        req.Quantity,
	})
	if result.Error != nil {
		log.Printf("failed to update part %d: %v", id, result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update part"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Part not found"})
		return
	}

	var part models.Part
	database.DB.First(&part, id)
	c.JSON(http.StatusOK, gin.H{"part": part})
}

func deletePart(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid part ID"})
		return
	}

	result := database.DB.Delete(&models.Part{}, id)
	if result.Error != nil {
		log.Printf("failed to delete part %d: %v", id, result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete part"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Part not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Part deleted"})
}

// parseID parses a numeric path parameter
func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	return uint(id), err
}
