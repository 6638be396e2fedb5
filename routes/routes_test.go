package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"garage-admin-server/config"
	"garage-admin-server/database"
	"garage-admin-server/models"
	"garage-admin-server/routes"
)

// newTestServer wires the API router against a fresh in-memory database
func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	database.DB = db

	config.AppConfig = &config.Config{}
	config.AppConfig.Uploads.Dir = t.TempDir()

	router := gin.New()
	api := router.Group("/api")
	routes.RegisterPartRoutes(api.Group("/parts"))
	routes.RegisterWorkerRoutes(api.Group("/workers"))
	routes.RegisterServiceRoutes(api.Group("/services"))
	routes.RegisterVehicleRoutes(api.Group("/vehicles"))
	routes.RegisterInvoiceRoutes(api.Group("/invoices"))
	routes.RegisterArchiveRoutes(api.Group("/archive"))
	api.GET("/vehicle-ids", routes.GetVehicleIDs)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPartCRUD(t *testing.T) {
	router := newTestServer(t)

	w := doJSON(t, router, http.MethodPost, "/api/parts", gin.H{
		"name": "Oil filter", "part_number": "OF-100", "selling_cost": 1000, "purchasing_cost": 600, "quantity": 12,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create part status = %d, body %s", w.Code, w.Body.String())
	}

	// Missing required name
	w = doJSON(t, router, http.MethodPost, "/api/parts", gin.H{"part_number": "X"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("create without name status = %d, want 400", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/parts/1", nil)
	if w.Code != http.StatusOK {
		t.Errorf("get part status = %d", w.Code)
	}
	w = doJSON(t, router, http.MethodGet, "/api/parts/99", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("get missing part status = %d, want 404", w.Code)
	}

	w = doJSON(t, router, http.MethodPut, "/api/parts/1", gin.H{"name": "Oil filter XL", "quantity": 9})
	if w.Code != http.StatusOK {
		t.Errorf("update part status = %d", w.Code)
	}
	w = doJSON(t, router, http.MethodDelete, "/api/parts/1", nil)
	if w.Code != http.StatusOK {
		t.Errorf("delete part status = %d", w.Code)
	}
	w = doJSON(t, router, http.MethodDelete, "/api/parts/1", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("delete missing part status = %d, want 404", w.Code)
	}
}

func TestAssignWorkerToService(t *testing.T) {
	router := newTestServer(t)

	doJSON(t, router, http.MethodPost, "/api/workers", gin.H{"name": "Cheikh"})
	doJSON(t, router, http.MethodPost, "/api/services", gin.H{"name": "Oil change", "category": "Maintenance"})

	w := doJSON(t, router, http.MethodPut, "/api/services/1/assign-worker", gin.H{"worker_id": 1})
	if w.Code != http.StatusOK {
		t.Fatalf("assign worker status = %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodPut, "/api/services/1/assign-worker", gin.H{"worker_id": 42})
	if w.Code != http.StatusNotFound {
		t.Errorf("assign missing worker status = %d, want 404", w.Code)
	}
	w = doJSON(t, router, http.MethodPut, "/api/services/1/assign-worker", gin.H{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("assign without worker_id status = %d, want 400", w.Code)
	}
}

func TestInvoiceEndpoints(t *testing.T) {
	router := newTestServer(t)

	doJSON(t, router, http.MethodPost, "/api/vehicles", gin.H{
		"plate": "3333 CC", "owner": "Mariem", "contact_number": "22066666",
	})
	doJSON(t, router, http.MethodPost, "/api/parts", gin.H{
		"name": "Air filter", "selling_cost": 1000, "purchasing_cost": 700, "quantity": 5,
	})

	w := doJSON(t, router, http.MethodPost, "/api/invoices", gin.H{
		"vehicle_id":     1,
		"days_in_garage": 2,
		"services":       []gin.H{{"id": 1, "description": "Oil change", "unit_price": 3000}},
		"parts":          []gin.H{{"id": 1, "quantity": 2}},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create invoice status = %d, body %s", w.Code, w.Body.String())
	}

	var created struct {
		InvoiceID uint `json:"invoice_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil || created.InvoiceID == 0 {
		t.Fatalf("create invoice body %s: %v", w.Body.String(), err)
	}

	// Missing days_in_garage is a validation error
	w = doJSON(t, router, http.MethodPost, "/api/invoices", gin.H{"vehicle_id": 1})
	if w.Code != http.StatusBadRequest {
		t.Errorf("create invoice without days status = %d, want 400", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/invoices/%d", created.InvoiceID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get invoice status = %d", w.Code)
	}
	var fetched struct {
		Invoice models.Invoice `json:"invoice"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("decode invoice: %v", err)
	}
	if fetched.Invoice.Subtotal != 15000 || fetched.Invoice.Tax != 2700 || fetched.Invoice.Total != 17700 {
		t.Errorf("invoice totals = (%d, %d, %d), want (15000, 2700, 17700)",
			fetched.Invoice.Subtotal, fetched.Invoice.Tax, fetched.Invoice.Total)
	}
	if len(fetched.Invoice.Items) != 2 {
		t.Errorf("got %d items, want 2", len(fetched.Invoice.Items))
	}

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/invoices/%d/pdf", created.InvoiceID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("invoice pdf status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("invoice pdf content-type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.HasPrefix(cd, "attachment") {
		t.Errorf("invoice pdf content-disposition = %q", cd)
	}

	w = doJSON(t, router, http.MethodGet, "/api/invoices/99/pdf", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing invoice pdf status = %d, want 404", w.Code)
	}
}

func TestVehicleExitEndpoint(t *testing.T) {
	router := newTestServer(t)

	doJSON(t, router, http.MethodPost, "/api/vehicles", gin.H{
		"plate": "4444 DD", "owner": "Brahim", "contact_number": "22077777",
		"services": []gin.H{{"service_id": 1}},
	})

	w := doJSON(t, router, http.MethodPut, "/api/vehicles/1/exit", nil)
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "services incomplete") {
		t.Fatalf("exit with pending service = %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodPut, "/api/vehicles/1/services/1", gin.H{"status": "completed"})
	if w.Code != http.StatusOK {
		t.Fatalf("complete service status = %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodPut, "/api/vehicles/1/exit", nil)
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "invoice missing") {
		t.Fatalf("exit without invoice = %d %s", w.Code, w.Body.String())
	}

	doJSON(t, router, http.MethodPost, "/api/invoices", gin.H{"vehicle_id": 1, "days_in_garage": 1})

	w = doJSON(t, router, http.MethodPut, "/api/vehicles/1/exit", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("exit status = %d, body %s", w.Code, w.Body.String())
	}

	// A vehicle that already left cannot exit again.
	w = doJSON(t, router, http.MethodPut, "/api/vehicles/1/exit", nil)
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "already exited") {
		t.Errorf("repeated exit = %d %s, want 400", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodPut, "/api/vehicles/9/exit", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("exit missing vehicle status = %d, want 404", w.Code)
	}
}

// TestGetStatusOnStorageFailure verifies that lookup handlers report
// a server error rather than 404 when the database itself is down.
func TestGetStatusOnStorageFailure(t *testing.T) {
	router := newTestServer(t)

	doJSON(t, router, http.MethodPost, "/api/parts", gin.H{"name": "Air filter"})
	doJSON(t, router, http.MethodPost, "/api/workers", gin.H{"name": "Cheikh", "job_title": "Mechanic"})

	sqlDB, err := database.DB.DB()
	if err != nil {
		t.Fatalf("underlying db: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("close db: %v", err)
	}

	for _, path := range []string{
		"/api/parts/1",
		"/api/workers/1",
		"/api/services/1",
		"/api/vehicles/1",
	} {
		w := doJSON(t, router, http.MethodGet, path, nil)
		if w.Code != http.StatusInternalServerError {
			t.Errorf("GET %s with closed database = %d, want 500", path, w.Code)
		}
	}
}

func TestWorkerPaymentEndpoints(t *testing.T) {
	router := newTestServer(t)

	doJSON(t, router, http.MethodPost, "/api/workers", gin.H{"name": "Moussa", "job_title": "Electrician"})

	w := doJSON(t, router, http.MethodPost, "/api/workers/1/payments", gin.H{"amount": 12000, "method": "cash"})
	if w.Code != http.StatusCreated {
		t.Fatalf("add payment status = %d, body %s", w.Code, w.Body.String())
	}
	w = doJSON(t, router, http.MethodPost, "/api/workers/1/payments", gin.H{"method": "cash"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("payment without amount status = %d, want 400", w.Code)
	}
	w = doJSON(t, router, http.MethodPost, "/api/workers/1/payments", gin.H{"amount": -5})
	if w.Code != http.StatusBadRequest {
		t.Errorf("negative payment status = %d, want 400", w.Code)
	}

	doJSON(t, router, http.MethodPost, "/api/workers/1/payments", gin.H{"amount": 3000})

	w = doJSON(t, router, http.MethodGet, "/api/workers/1/payments/total", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "15000") {
		t.Errorf("payments total = %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/api/workers/1/payments/pdf", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("payments pdf status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("payments pdf content-type = %q", ct)
	}

	// Deleting the worker removes the ledger
	w = doJSON(t, router, http.MethodDelete, "/api/workers/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete worker status = %d", w.Code)
	}
	w = doJSON(t, router, http.MethodGet, "/api/workers/1", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("get deleted worker status = %d, want 404", w.Code)
	}
}

func TestVehicleIDs(t *testing.T) {
	router := newTestServer(t)

	doJSON(t, router, http.MethodPost, "/api/vehicles", gin.H{"plate": "5555 EE", "owner": "Zeinab", "contact_number": "22088888"})
	doJSON(t, router, http.MethodPost, "/api/vehicles", gin.H{"plate": "6666 FF", "owner": "Oumar", "contact_number": "22099999"})

	w := doJSON(t, router, http.MethodGet, "/api/vehicle-ids", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("vehicle-ids status = %d", w.Code)
	}
	var body struct {
		VehicleIDs []uint `json:"vehicle_ids"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.VehicleIDs) != 2 {
		t.Errorf("got %d vehicle ids, want 2", len(body.VehicleIDs))
	}
}

func TestArchiveUploadAndList(t *testing.T) {
	router := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("year", "2026"); err != nil {
		t.Fatalf("write year field: %v", err)
	}
	fw, err := mw.CreateFormFile("files", "scan invoice 01.pdf")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	fw.Write([]byte("%PDF-1.4 fake scanned document"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/archive/files", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("upload status = %d, body %s", w.Code, w.Body.String())
	}

	// Invalid year
	var buf2 bytes.Buffer
	mw2 := multipart.NewWriter(&buf2)
	mw2.WriteField("year", "26")
	fw2, _ := mw2.CreateFormFile("files", "doc.pdf")
	fw2.Write([]byte("%PDF"))
	mw2.Close()
	req = httptest.NewRequest(http.MethodPost, "/api/archive/files", &buf2)
	req.Header.Set("Content-Type", mw2.FormDataContentType())
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("upload with bad year status = %d, want 400", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/archive/files/2026", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var listing struct {
		Files []string `json:"files"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listing); err != nil {
		t.Fatalf("decode listing: %v", err)
	}
	if len(listing.Files) != 1 || !strings.Contains(listing.Files[0], "scan_invoice_01.pdf") {
		t.Errorf("listing = %v", listing.Files)
	}

	w = doJSON(t, router, http.MethodGet, "/api/archive/files/2001", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"files":[]`) {
		t.Errorf("empty year listing = %d %s", w.Code, w.Body.String())
	}
}
