package routes

import (
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"garage-admin-server/config"
)

var yearPattern = regexp.MustCompile(`^\d{4}$`)

// validateArchiveFile accepts the usual scanned-document formats up to 20MB
func validateArchiveFile(h *multipart.FileHeader) bool {
	if h == nil || h.Size <= 0 || h.Size > 20*1024*1024 {
		return false
	}
	ext := strings.ToLower(filepath.Ext(h.Filename))
	switch ext {
	case ".pdf", ".jpg", ".jpeg", ".png", ".webp", ".tif", ".tiff":
		return true
	default:
		return false
	}
}

// RegisterArchiveRoutes registers the scanned-invoice archive endpoints.
// The archive is a year-bucketed directory tree on local disk, separate
// from the database records.
func RegisterArchiveRoutes(router *gin.RouterGroup) {
	router.POST("/files", uploadArchiveFiles)
	router.GET("/files/:year", listArchiveFiles)
}

func uploadArchiveFiles(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil { // 32MB
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form data"})
		return
	}

	year := c.PostForm("year")
	if !yearPattern.MatchString(year) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year must be a 4-digit value"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form data"})
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files provided"})
		return
	}
	for _, header := range files {
		if !validateArchiveFile(header) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid file: %s", header.Filename)})
			return
		}
	}

	bucket := filepath.Join(config.AppConfig.Uploads.Dir, "archive", year)
	if err := os.MkdirAll(bucket, 0o755); err != nil {
		log.Printf("failed to create archive bucket %s: %v", bucket, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store files"})
		return
	}

	stored := make([]string, 0, len(files))
	for _, header := range files {
		name := fmt.Sprintf("%d-%s", time.Now().UnixNano(), sanitizeFilename(header.Filename))
		dst := filepath.Join(bucket, name)
		if err := c.SaveUploadedFile(header, dst); err != nil {
			log.Printf("failed to save archive file %s: %v", dst, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store files"})
			return
		}
		stored = append(stored, "/uploads/archive/"+year+"/"+name)
	}

	c.JSON(http.StatusCreated, gin.H{"year": year, "files": stored})
}

func listArchiveFiles(c *gin.Context) {
	year := c.Param("year")
	if !yearPattern.MatchString(year) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year must be a 4-digit value"})
		return
	}

	bucket := filepath.Join(config.AppConfig.Uploads.Dir, "archive", year)
	entries, err := os.ReadDir(bucket)
	if err != nil {
		if os.IsNotExist(err) {
			// An unused year is an empty bucket, not an error.
			c.JSON(http.StatusOK, gin.H{"year": year, "files": []string{}})
			return
		}
		log.Printf("failed to read archive bucket %s: %v", bucket, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list files"})
		return
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			files = append(files, "/uploads/archive/"+year+"/"+entry.Name())
		}
	}
	c.JSON(http.StatusOK, gin.H{"year": year, "files": files})
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	return unsafeFilenameChars.ReplaceAllString(base, "_")
}
