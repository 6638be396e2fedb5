package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// catalogService is one row of the default repair-job catalog
type catalogService struct {
	Name     string
	Category string
}

var defaultCatalog = []catalogService{
	{"Oil change", "Maintenance"},
	{"Oil filter replacement", "Maintenance"},
	{"Air filter replacement", "Maintenance"},
	{"Brake pad replacement", "Brakes"},
	{"Brake disc replacement", "Brakes"},
	{"Wheel alignment", "Tires"},
	{"Tire rotation", "Tires"},
	{"Battery replacement", "Electrical"},
	{"Alternator repair", "Electrical"},
	{"Starter motor repair", "Electrical"},
	{"Timing belt replacement", "Engine"},
	{"Spark plug replacement", "Engine"},
	{"Coolant flush", "Engine"},
	{"Clutch replacement", "Transmission"},
	{"Gearbox overhaul", "Transmission"},
	{"Shock absorber replacement", "Suspension"},
	{"AC recharge", "Climate"},
	{"Full diagnostic scan", "Diagnostics"},
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	connStr := os.Getenv("DB_URL")
	if connStr == "" {
		dbHost := getEnv("DB_HOST", "localhost")
		dbPort := getEnv("DB_PORT", "5432")
		dbUser := getEnv("DB_USER", "postgres")
		dbPassword := getEnv("DB_PASSWORD", "")
		dbName := getEnv("DB_NAME", "garage_admin_db")
		dbSSLMode := getEnv("DB_SSL_MODE", "disable")

		connStr = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			dbHost, dbPort, dbUser, dbPassword, dbName, dbSSLMode)
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	log.Println("✅ Successfully connected to database")

	// Check if services already exist
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM services").Scan(&count); err != nil {
		log.Fatal("Failed to check services count:", err)
	}
	if count > 0 {
		log.Printf("⚠️  Services already exist (%d services found). Skipping insertion.", count)
		return
	}

	for _, svc := range defaultCatalog {
		_, err := db.Exec(
			"INSERT INTO services (name, category, created_at, updated_at) VALUES ($1, $2, NOW(), NOW())",
			svc.Name, svc.Category,
		)
		if err != nil {
			log.Fatalf("Failed to insert service %q: %v", svc.Name, err)
		}
	}

	log.Printf("✅ Inserted %d catalog services", len(defaultCatalog))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
