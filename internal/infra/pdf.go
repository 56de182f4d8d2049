package infra

// pdf.go — PDF generation using go-pdf/fpdf.
// Two documents:
//   - Order receipt: A7-size thermal-style ticket with token number, item
//     table, tax line and bold total.
//   - Daily report: A4 summary (revenue, expenses, profit, top items) that the
//     email worker attaches to the end-of-day mail.

import (
	"fmt"
	"os"
	"path/filepath"

	"foodcart360/internal/dto"
	"foodcart360/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateReceiptPDF generates a receipt for a completed Order.
// storagePath is the directory where the PDF will be written (created if needed).
// Returns the absolute path to the generated file.
func GenerateReceiptPDF(order *model.Order, cartName, currency, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("receipt_%d.pdf", order.TokenNumber)
	filePath := filepath.Join(storagePath, fileName)

	// A7 ≈ 74mm × 105mm — close to thermal receipt paper
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8 // total margins = 8mm

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, cartName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Order Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// ── Token info ───────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Token #%d", order.TokenNumber), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, order.CreatedAt.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	if order.CustomerName != nil && *order.CustomerName != "" {
		pdf.CellFormat(contentW, 4, "Customer: "+*order.CustomerName, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Items ─────────────────────────────────────────────────────────────────
	col1 := contentW * 0.52
	col2 := contentW * 0.16
	col3 := contentW * 0.32

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, item := range order.Items {
		name := item.Name
		if len(name) > 22 {
			name = name[:21] + "…"
		}
		pdf.CellFormat(col1, 5, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", item.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, currency+" "+item.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 7)
	if !order.TaxAmount.IsZero() {
		pdf.CellFormat(col1+col2, 5, "Tax:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 5, currency+" "+order.TaxAmount.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, currency+" "+order.Total.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(col1+col2, 4, "Paid by:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 4, order.PaymentMethod, "", 1, "R", false, 0, "")

	// ── Footer ────────────────────────────────────────────────────────────────
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "Thank you, visit again!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}

// GenerateDailyReportPDF renders one day's summary as an A4 page.
func GenerateDailyReportPDF(summary *dto.DailySummaryResponse, cartName, currency, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("daily_report_%s.pdf", summary.Date)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, cartName+" — Daily Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, summary.Date, "", 1, "C", false, 0, "")
	pdf.Ln(6)

	// ── Key figures ──────────────────────────────────────────────────────────
	rows := []struct{ label, value string }{
		{"Revenue", currency + " " + summary.Revenue.StringFixed(2)},
		{"Expenses", currency + " " + summary.ExpenseTotal.StringFixed(2)},
		{"Profit", currency + " " + summary.Profit.StringFixed(2)},
		{"Orders", fmt.Sprintf("%d", summary.OrderCount)},
		{"Avg order value", currency + " " + summary.AverageOrderValue.StringFixed(2)},
	}
	pdf.SetFont("Helvetica", "", 11)
	for _, row := range rows {
		pdf.CellFormat(60, 8, row.label, "B", 0, "L", false, 0, "")
		pdf.CellFormat(0, 8, row.value, "B", 1, "R", false, 0, "")
	}
	pdf.Ln(8)

	// ── Top items ─────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Top selling items", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(90, 6, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(30, 6, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(0, 6, "Revenue", "B", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, item := range summary.TopItems {
		pdf.CellFormat(90, 6, item.Name, "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%d", item.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(0, 6, currency+" "+item.Revenue.StringFixed(2), "", 1, "R", false, 0, "")
	}

	// ── Low stock ─────────────────────────────────────────────────────────────
	if len(summary.LowStock) > 0 {
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, "Low stock alerts", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		for _, alert := range summary.LowStock {
			line := fmt.Sprintf("%s — %s %s left (min %s)",
				alert.Name, alert.Stock.String(), alert.Unit, alert.MinStock.String())
			pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
		}
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
