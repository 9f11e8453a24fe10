package infra

// pdf.go — closing-summary PDF generation using go-pdf/fpdf.
// Generates an A4 report for one sealed session:
//   - Box, user and cashier names as captured at close time
//   - Session window (opened / closed)
//   - Reconciliation table: base, incomes, expenses, expected, counted
//   - Leftover or missing line
//   - Ledger detail (date, description, amount)
//
// The output file is saved to storagePath/cierre_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jesusfb/carmu-api/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateClosingPDF writes the report for one closing record and returns the
// absolute path of the generated file.
func GenerateClosingPDF(rec *model.CashClosingRecord, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("cierre_%s.pdf", rec.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Carmú", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Cierre de Caja", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Session info ─────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, rec.BoxName, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Cajero: "+rec.CashierName, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, "Cerrada por: "+rec.UserName, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5,
		fmt.Sprintf("Apertura: %s    Cierre: %s",
			rec.Opened.Format("02/01/2006 15:04"),
			rec.ClosingDate.Format("02/01/2006 15:04")),
		"", 1, "L", false, 0, "")
	pdf.Ln(3)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(3)

	// ── Reconciliation ───────────────────────────────────────────────────────
	labelW := contentW * 0.6
	valueW := contentW * 0.4
	expected := rec.Base.Add(rec.Incomes).Sub(rec.Expenses)

	row := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 9)
		pdf.CellFormat(labelW, 6, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(valueW, 6, value, "", 1, "R", false, 0, "")
	}

	row("Base", "$"+rec.Base.StringFixed(2), false)
	row("Ingresos", "$"+rec.Incomes.StringFixed(2), false)
	row("Egresos", "-$"+rec.Expenses.StringFixed(2), false)
	row("Efectivo esperado", "$"+expected.StringFixed(2), true)
	row("Efectivo contado", "$"+rec.Cash.StringFixed(2), true)
	if rec.Leftover.IsPositive() {
		row("Sobrante", "$"+rec.Leftover.StringFixed(2), true)
	}
	if rec.Missing.IsPositive() {
		row("Faltante", "$"+rec.Missing.StringFixed(2), true)
	}
	if rec.Observation != nil && *rec.Observation != "" {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.MultiCell(contentW, 4, "Observación: "+*rec.Observation, "", "L", false)
	}

	pdf.Ln(3)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(3)

	// ── Ledger detail ────────────────────────────────────────────────────────
	col1 := contentW * 0.22 // date
	col2 := contentW * 0.53 // description
	col3 := contentW * 0.25 // amount

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(col1, 5, "Fecha", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Descripción", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 5, "Importe", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, tx := range rec.Transactions {
		desc := tx.Description
		if len(desc) > 48 {
			desc = desc[:47] + "…"
		}
		pdf.CellFormat(col1, 5, tx.TransactionDate.Format("02/01/2006 15:04"), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, desc, "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 5, "$"+tx.Amount.StringFixed(2), "", 1, "R", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
