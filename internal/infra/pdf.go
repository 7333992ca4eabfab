package infra

// pdf.go — Daily treasury report generation using go-pdf/fpdf.
// The report is an A4 summary with:
//   - Report date header
//   - Pool balance table (main, sales, practice, iban)
//   - Combined total
//   - Open debt table (customers with non-zero balance)
//
// The output file is saved to storagePath/rapor_{date}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"isletmeapp/internal/dto"
	"isletmeapp/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

var poolLabels = map[string]string{
	model.PoolMain:     "Ana Kasa",
	model.PoolSales:    "Satış Kasası",
	model.PoolPractice: "Uygulama Kasası",
	model.PoolIBAN:     "IBAN Kasası",
}

// GenerateTreasuryReportPDF writes the daily treasury summary for the given
// date (YYYY-MM-DD). Returns the absolute path to the generated file.
func GenerateTreasuryReportPDF(date string, pools []model.CashPool, debts []dto.DebtEntryResponse, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("rapor_%s.pdf", date)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("") // Turkish labels

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 10, tr("Günlük Kasa Raporu"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, date, "", 1, "C", false, 0, "")
	pdf.Ln(6)

	// ── Pool balances ─────────────────────────────────────────────────────────
	col1 := contentW * 0.6
	col2 := contentW * 0.4

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(col1, 7, tr("Kasa"), "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 7, tr("Bakiye"), "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	total := decimal.Zero
	for _, p := range pools {
		label := poolLabels[p.ID]
		if label == "" {
			label = p.ID
		}
		pdf.CellFormat(col1, 7, tr(label), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 7, p.Balance.StringFixed(2)+" TL", "", 1, "R", false, 0, "")
		total = total.Add(p.Balance)
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(col1, 8, "TOPLAM", "T", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 8, total.StringFixed(2)+" TL", "T", 1, "R", false, 0, "")
	pdf.Ln(8)

	// ── Open debts ────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 8, tr("Açık Borçlar"), "", 1, "L", false, 0, "")

	if len(debts) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(contentW, 7, tr("Açık borç bulunmuyor."), "", 1, "L", false, 0, "")
	} else {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(col1, 7, tr("Müşteri"), "B", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 7, tr("Borç"), "B", 1, "R", false, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		for _, d := range debts {
			pdf.CellFormat(col1, 7, tr(d.CustomerName), "", 0, "L", false, 0, "")
			pdf.CellFormat(col2, 7, d.TotalDebt.StringFixed(2)+" TL", "", 1, "R", false, 0, "")
		}
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
