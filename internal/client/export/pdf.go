package export

import (
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/bpkeeper/internal/client/analytics"
	"github.com/dmitrijs2005/bpkeeper/internal/client/models"
	"github.com/go-pdf/fpdf"
)

// WritePDF renders a report with a summary-statistics table, the full
// listing, and a static legend of the classification thresholds.
func WritePDF(w io.Writer, readings []models.Reading, stats analytics.Stats, rng analytics.DateRange, userName string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(150, 150, 150)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(59, 130, 246)
	pdf.CellFormat(0, 10, "Blood Pressure Report", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 6, "Generated for: "+userName, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Date Range: %s - %s",
		models.FormatDate(rng.Start), models.FormatDate(rng.End)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Generated on: "+models.FormatDate(time.Now()), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	writeSummary(pdf, readings, stats)
	writeListing(pdf, readings)
	writeLegend(pdf)

	return pdf.Output(w)
}

func writeSummary(pdf *fpdf.Fpdf, readings []models.Reading, stats analytics.Stats) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 8, "Summary Statistics", "", 1, "L", false, 0, "")

	orNA := func(v int, unit string) string {
		if v <= 0 {
			return "N/A"
		}
		return fmt.Sprintf("%d %s", v, unit)
	}
	avgStatus := "N/A"
	if stats.AvgSystolic > 0 {
		avgStatus = analytics.Classify(stats.AvgSystolic, stats.AvgDiastolic).Label()
	}

	rows := [][2]string{
		{"Total Readings", fmt.Sprintf("%d", len(readings))},
		{"Average Systolic", orNA(stats.AvgSystolic, "mmHg")},
		{"Average Diastolic", orNA(stats.AvgDiastolic, "mmHg")},
		{"Average Pulse", orNA(stats.AvgPulse, "bpm")},
		{"Average Status", avgStatus},
	}

	summaryRow(pdf, "Metric", "Value", true)
	for _, row := range rows {
		summaryRow(pdf, row[0], row[1], false)
	}
	pdf.Ln(6)
}

func summaryRow(pdf *fpdf.Fpdf, metric, value string, head bool) {
	if head {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(59, 130, 246)
		pdf.SetTextColor(255, 255, 255)
	} else {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetFillColor(245, 245, 245)
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.CellFormat(60, 7, metric, "1", 0, "L", true, 0, "")
	pdf.CellFormat(50, 7, value, "1", 1, "L", true, 0, "")
}

var listingWidths = []float64{25, 20, 22, 25, 15, 28, 45}

func writeListing(pdf *fpdf.Fpdf, readings []models.Reading) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 8, "All Readings", "", 1, "L", false, 0, "")

	listingRow(pdf, []string{"Date", "Time", "Period", "BP (mmHg)", "Pulse", "Status", "Notes"}, true)
	for _, r := range readings {
		notes := r.Notes
		if notes == "" {
			notes = "-"
		}
		listingRow(pdf, []string{
			models.FormatDate(r.Timestamp),
			models.FormatTime(r.Timestamp),
			r.TimeOfDay.Label(),
			models.FormatBP(r.Systolic, r.Diastolic),
			fmt.Sprintf("%d", r.Pulse),
			analytics.Classify(r.Systolic, r.Diastolic).Label(),
			notes,
		}, false)
	}
	pdf.Ln(6)
}

func listingRow(pdf *fpdf.Fpdf, cells []string, head bool) {
	if head {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetFillColor(59, 130, 246)
		pdf.SetTextColor(255, 255, 255)
	} else {
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetFillColor(245, 245, 245)
		pdf.SetTextColor(0, 0, 0)
	}
	for i, cell := range cells {
		last := i == len(cells)-1
		ln := 0
		if last {
			ln = 1
		}
		pdf.CellFormat(listingWidths[i], 6, cell, "1", ln, "L", true, 0, "")
	}
}

func writeLegend(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 6, "Blood Pressure Categories Reference:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	for _, line := range []string{
		"Normal: < 120/80 mmHg",
		"Elevated: 120-129/<80 mmHg",
		"High Stage 1: 130-139/80-89 mmHg",
		"High Stage 2: >= 140/90 mmHg",
	} {
		pdf.CellFormat(0, 5, line, "", 1, "L", false, 0, "")
	}
}
