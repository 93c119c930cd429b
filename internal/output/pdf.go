package output

import (
	"fmt"
	"io"
	"time"

	gofpdf "github.com/go-pdf/fpdf"

	"github.com/selimozcann/SiteHunter/internal/model"
	"github.com/selimozcann/SiteHunter/internal/report"
)

// WritePDF renders a printable version of the report to w.
func WritePDF(w io.Writer, title, target string, generatedAt time.Time, r report.Report) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(title, true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 6, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(30, 41, 59)
	pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(80, 80, 80)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("%s - generated %s", target, generatedAt.UTC().Format(time.RFC3339))), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	addPairs(pdf, tr, "Summary", r.Summary.Rows())
	addPairs(pdf, tr, "Environment", r.Environment.Rows())

	addSectionHeader(pdf, "Bug Report")
	for _, f := range r.Findings {
		addFinding(pdf, tr, f)
	}
	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

// WritePDFFile renders the report to path.
func WritePDFFile(path, title, target string, generatedAt time.Time, r report.Report) error {
	return writeAtomic(path, func(w io.Writer) error { return WritePDF(w, title, target, generatedAt, r) })
}

func addSectionHeader(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetTextColor(30, 41, 59)
	pdf.CellFormat(0, 8, title, "B", 1, "L", false, 0, "")
	pdf.Ln(2)
}

func addPairs(pdf *gofpdf.Fpdf, tr func(string) string, title string, rows []report.Row) {
	addSectionHeader(pdf, title)
	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(30, 41, 59)
		pdf.CellFormat(50, 6, tr(row.Key), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(60, 60, 60)
		pdf.MultiCell(0, 6, tr(row.Value), "", "L", false)
	}
	pdf.Ln(4)
}

func addFinding(pdf *gofpdf.Fpdf, tr func(string) string, f model.Finding) {
	r, g, b := severityRGB(f.Severity)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(r, g, b)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(22, 7, string(f.Severity), "", 0, "C", true, 0, "")
	pdf.SetTextColor(30, 41, 59)
	pdf.CellFormat(0, 7, tr(fmt.Sprintf("  %s  %s", f.ID, f.Title)), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(60, 60, 60)
	for _, line := range []struct{ label, text string }{
		{"Steps", f.StepsText()},
		{"Expected", f.Expected},
		{"Actual", f.Actual},
		{"Status", string(f.Status)},
		{"Environment", f.Environment},
		{"Screenshot", f.Screenshot},
	} {
		if line.text == "" {
			continue
		}
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(28, 5, line.label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(0, 5, tr(line.text), "", "L", false)
	}
	pdf.Ln(3)
}

func severityRGB(s model.Severity) (int, int, int) {
	switch s {
	case model.SeverityHigh:
		return 220, 38, 38
	case model.SeverityMedium:
		return 217, 119, 6
	case model.SeverityLow:
		return 8, 145, 178
	default:
		return 22, 163, 74
	}
}
