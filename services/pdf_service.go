package services

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"garage-admin-server/models"
)

// PDFService renders invoices and worker payment reports as PDF documents
type PDFService struct {
	db       *gorm.DB
	logoPath string
}

// NewPDFService creates a new PDF service. logoPath may be empty, in
// which case documents carry a centered title instead of a logo.
func NewPDFService(db *gorm.DB, logoPath string) *PDFService {
	return &PDFService{db: db, logoPath: logoPath}
}

// RenderInvoice produces the PDF document for one invoice. Tax and total
// are recomputed from the stored subtotal through ComputeTotals so the
// printed figures always follow the tax rule.
func (s *PDFService) RenderInvoice(id uint) ([]byte, error) {
	var invoice models.Invoice
	err := s.db.
		Preload("Vehicle").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&invoice, id).Error
	if err != nil {
		return nil, err
	}

	stayTotal := int64(invoice.DaysInGarage) * invoice.GarageStayRate
	subtotal, tax, total := ComputeTotals(invoice.Subtotal-stayTotal, invoice.DaysInGarage, invoice.GarageStayRate)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Invoice #%d", invoice.ID), false)
	pdf.AddPage()

	s.renderHeader(pdf, "INVOICE")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Invoice #%d", invoice.ID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Date: "+invoice.CreatedAt.Format("2006-01-02"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	if vehicle := invoice.Vehicle; vehicle != nil {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 6, "Vehicle", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 5, fmt.Sprintf("%s %s (%d) - %s", vehicle.Make, vehicle.ModelName, vehicle.Year, vehicle.Plate), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 5, "VIN: "+vehicle.VIN, "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 5, fmt.Sprintf("Owner: %s  |  Contact: %s", vehicle.Owner, vehicle.ContactNumber), "", 1, "L", false, 0, "")
		pdf.Ln(4)
	}

	// Line-item table, in insertion order
	colWidths := []float64{22, 78, 15, 35, 40}
	headers := []string{"Type", "Description", "Qty", "Unit Price", "Line Total"}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(colWidths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range invoice.Items {
		pdf.CellFormat(colWidths[0], 6, item.ItemType, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[1], 6, truncate(item.Description, 48), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[2], 6, fmt.Sprintf("%d", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[3], 6, FormatAmount(item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[4], 6, FormatAmount(item.Total), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// Totals block
	stayLabel := fmt.Sprintf("Garage stay (%d day(s) x %s)", invoice.DaysInGarage, FormatAmount(invoice.GarageStayRate))
	totalsLine(pdf, stayLabel, FormatAmount(stayTotal), false)
	totalsLine(pdf, "Subtotal", FormatAmount(subtotal), false)
	totalsLine(pdf, "Tax (18%)", FormatAmount(tax), false)
	totalsLine(pdf, "Total", FormatAmount(total), true)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderWorkerPayments produces the payment history report for one worker
func (s *PDFService) RenderWorkerPayments(workerID uint) ([]byte, error) {
	var worker models.Worker
	if err := s.db.First(&worker, workerID).Error; err != nil {
		return nil, err
	}

	var payments []models.WorkerPayment
	err := s.db.Where("worker_id = ?", workerID).
		Order("payment_date DESC NULLS LAST").
		Order("id DESC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Payment Report - %s", worker.Name), false)
	pdf.AddPage()

	s.renderHeader(pdf, "PAYMENT REPORT")

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, worker.Name, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	if worker.JobTitle != "" {
		pdf.CellFormat(0, 5, worker.JobTitle, "", 1, "L", false, 0, "")
	}
	if worker.Phone != "" || worker.Email != "" {
		pdf.CellFormat(0, 5, strings.TrimSpace(worker.Phone+"  "+worker.Email), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	colWidths := []float64{45, 40, 40, 65}
	headers := []string{"Date", "Amount", "Method", "Notes"}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(colWidths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	var totalPaid int64
	for _, p := range payments {
		date := "-"
		if p.PaymentDate != nil {
			date = p.PaymentDate.Format("2006-01-02 15:04")
		}
		pdf.CellFormat(colWidths[0], 6, date, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[1], 6, FormatAmount(p.Amount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[2], 6, truncate(p.Method, 22), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[3], 6, truncate(p.Notes, 38), "1", 1, "L", false, 0, "")
		totalPaid += p.Amount
	}
	pdf.Ln(4)

	totalsLine(pdf, "Total paid", FormatAmount(totalPaid), true)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderHeader draws the configured logo when it exists, otherwise a
// centered document title.
func (s *PDFService) renderHeader(pdf *gofpdf.Fpdf, title string) {
	if s.logoPath != "" {
		if _, err := os.Stat(s.logoPath); err == nil {
			pdf.ImageOptions(s.logoPath, 10, 10, 40, 0, false, gofpdf.ImageOptions{ReadDpi: true}, 0, "")
			pdf.SetY(32)
			return
		}
	}
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, title, "", 1, "C", false, 0, "")
	pdf.Ln(2)
}

func totalsLine(pdf *gofpdf.Fpdf, label, value string, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	pdf.SetFont("Helvetica", style, 10)
	pdf.CellFormat(150, 6, label, "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 6, value, "", 1, "R", false, 0, "")
}

// FormatAmount renders integer minor currency units as a display string,
// e.g. 1234567 -> "12 345.67 MRU".
func FormatAmount(v int64) string {
	d := decimal.NewFromInt(v).Div(decimal.NewFromInt(100))
	s := d.StringFixed(2)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}
	intPart := s[:len(s)-3]
	fracPart := s[len(s)-3:]

	var grouped strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte(' ')
		}
		grouped.WriteRune(r)
	}
	return sign + grouped.String() + fracPart + " MRU"
}

// truncate shortens s to at most max runes, never cutting mid-rune
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
