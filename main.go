package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"garage-admin-server/config"
	"garage-admin-server/database"
	"garage-admin-server/middleware"
	"garage-admin-server/routes"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	config.Load()

	// Initialize database
	if err := database.Initialize(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Set Gin mode
	if config.AppConfig.Server.Production || config.AppConfig.Server.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(config.AppConfig.CORS.AllowedOrigins))

	// Archived/uploaded files are served statically
	router.Static("/uploads", config.AppConfig.Uploads.Dir)

	// Health check endpoint
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().UTC(),
		})
	})

	// API routes
	api := router.Group("/api")
	{
		routes.RegisterPartRoutes(api.Group("/parts"))
		routes.RegisterWorkerRoutes(api.Group("/workers"))
		routes.RegisterServiceRoutes(api.Group("/services"))
		routes.RegisterVehicleRoutes(api.Group("/vehicles"))
		routes.RegisterInvoiceRoutes(api.Group("/invoices"))
		routes.RegisterArchiveRoutes(api.Group("/archive"))
		api.GET("/vehicle-ids", routes.GetVehicleIDs)
	}

	port := config.AppConfig.Server.Port
	log.Printf("Server starting on port %s", port)
	if err := router.Run("0.0.0.0:" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
