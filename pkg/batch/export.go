package batch

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/feenotify/feenotify/pkg/format"
	"github.com/feenotify/feenotify/pkg/models"
)

// SummaryFile is the name of the run-summary PDF inside a batch
// directory.
const SummaryFile = "summary.pdf"

// WriteSummaryPDF renders a per-member overview of the run for the
// treasurer's records: one row per bill plus the grand totals.
func WriteSummaryPDF(dir string, bills []*models.Bill, feeTotal, donationTotal decimal.Decimal, valueDate time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, tr("Beitragslauf "+format.ISODate(time.Now())))
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Einzug zum %s, %d Rechnung(en)", format.Date(valueDate), len(bills))))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(15, 6, "Nr.", "1", 0, "C", false, 0, "")
	pdf.CellFormat(60, 6, "Name", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 6, "Beitrag", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 6, "Spende", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 6, "Summe", "1", 0, "R", false, 0, "")
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, bill := range bills {
		fee := decimal.Zero
		if len(bill.Positions) > 0 {
			fee = bill.Positions[0].Amount
		}
		donation := bill.Total().Sub(fee)

		pdf.CellFormat(15, 6, fmt.Sprintf("M%d", bill.Member.ID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(60, 6, tr(bill.Member.FullName()), "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, tr(format.Currency(fee)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, tr(format.Currency(donation)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, tr(format.Currency(bill.Total())), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(75, 6, "Gesamt", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 6, tr(format.Currency(feeTotal)), "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 6, tr(format.Currency(donationTotal)), "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 6, tr(format.Currency(feeTotal.Add(donationTotal))), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)

	return pdf.OutputFileAndClose(filepath.Join(dir, SummaryFile))
}
