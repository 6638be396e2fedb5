package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Uploads  UploadConfig
	PDF      PDFConfig
}

type ServerConfig struct {
	Port       string
	GinMode    string
	Production bool
}

type DatabaseConfig struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type UploadConfig struct {
	Dir string
}

type PDFConfig struct {
	LogoPath string
}

var AppConfig *Config

func Load() {
	production := getEnvAsBool("PRODUCTION", false)

	sslMode := getEnv("DB_SSL_MODE", "disable")
	if production {
		// Encrypted transport in production; the certificate is not verified.
		sslMode = "require"
	}

	AppConfig = &Config{
		Server: ServerConfig{
			Port:       getEnv("PORT", "8080"),
			GinMode:    getEnv("GIN_MODE", "debug"),
			Production: production,
		},
		Database: DatabaseConfig{
			URL:      getEnv("DB_URL", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "password"),
			Name:     getEnv("DB_NAME", "garage_admin_db"),
			SSLMode:  sslMode,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitAndTrim(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		},
		Uploads: UploadConfig{
			Dir: getEnv("UPLOAD_DIR", "./uploads"),
		},
		PDF: PDFConfig{
			LogoPath: getEnv("PDF_LOGO_PATH", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
