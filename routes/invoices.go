package routes

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"garage-admin-server/config"
	"garage-admin-server/database"
	"garage-admin-server/models"
	"garage-admin-server/services"
)

// RegisterInvoiceRoutes registers the invoicing routes
func RegisterInvoiceRoutes(router *gin.RouterGroup) {
	router.GET("", listInvoices)
	router.GET("/:id", getInvoice)
	router.GET("/:id/pdf", getInvoicePDF)
	router.POST("", createInvoice)
	router.DELETE("/:id", deleteInvoice)
}

func listInvoices(c *gin.Context) {
	invoices, err := services.NewInvoiceService(database.DB).List()
	if err != nil {
		log.Printf("failed to list invoices: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch invoices"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": invoices})
}

func getInvoice(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice ID"})
		return
	}

	invoice, err := services.NewInvoiceService(database.DB).Get(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
			return
		}
		log.Printf("failed to fetch invoice %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch invoice"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoice": invoice})
}

func createInvoice(c *gin.Context) {
	var req models.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	invoiceID, err := services.NewInvoiceService(database.DB).Create(req)
	if err != nil {
		if errors.Is(err, services.ErrInvoiceFieldsMissing) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, services.ErrPartNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("failed to create invoice: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invoice"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"invoice_id": invoiceID})
}

func deleteInvoice(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice ID"})
		return
	}

	err = services.NewInvoiceService(database.DB).Delete(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
			return
		}
		log.Printf("failed to delete invoice %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete invoice"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invoice deleted"})
}

func getInvoicePDF(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice ID"})
		return
	}

	doc, err := newPDFService().RenderInvoice(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
			return
		}
		log.Printf("failed to render invoice %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="invoice-%d.pdf"`, id))
	c.Data(http.StatusOK, "application/pdf", doc)
}

// newPDFService builds a PDF service with the configured logo path
func newPDFService() *services.PDFService {
	logoPath := ""
	if config.AppConfig != nil {
		logoPath = config.AppConfig.PDF.LogoPath
	}
	return services.NewPDFService(database.DB, logoPath)
}
