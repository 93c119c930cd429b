package output

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/selimozcann/SiteHunter/internal/report"
)

// Sheet names of the workbook.
const (
	SheetBugReport   = "Bug Report"
	SheetSummary     = "Summary"
	SheetEnvironment = "Environment"
)

// BugReportColumns is the header row of the Bug Report sheet.
var BugReportColumns = []string{
	"Bug ID", "Bug Title", "Severity", "Steps to Reproduce", "Expected Result",
	"Actual Result", "Screenshot", "Status", "Environment",
}

var bugReportWidths = []float64{10, 42, 10, 48, 40, 60, 26, 10, 20}

// WriteXLSX writes the three-sheet workbook to path.
func WriteXLSX(path string, r report.Report) error {
	return writeAtomic(path, func(w io.Writer) error {
		f, err := buildWorkbook(r)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		return f.Write(w)
	})
}

func buildWorkbook(r report.Report) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetBugReport); err != nil {
		return nil, err
	}
	for _, name := range []string{SheetSummary, SheetEnvironment} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"1E293B"}, Pattern: 1},
		Alignment: &excelize.Alignment{Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	wrap, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"}})
	if err != nil {
		return nil, err
	}

	cols := make([]any, len(BugReportColumns))
	for i, c := range BugReportColumns {
		cols[i] = c
	}
	rows := make([][]any, 0, len(r.Findings))
	for _, fd := range r.Findings {
		rows = append(rows, []any{
			fd.ID, fd.Title, string(fd.Severity), fd.StepsText(), fd.Expected,
			fd.Actual, fd.Screenshot, string(fd.Status), fd.Environment,
		})
	}
	if err := writeSheet(f, SheetBugReport, cols, rows, header, wrap, bugReportWidths); err != nil {
		return nil, err
	}
	if err := writeSheet(f, SheetSummary, []any{"Metric", "Value"}, pairs(r.Summary.Rows()), header, wrap, []float64{24, 80}); err != nil {
		return nil, err
	}
	if err := writeSheet(f, SheetEnvironment, []any{"Environment", "Details"}, pairs(r.Environment.Rows()), header, wrap, []float64{24, 60}); err != nil {
		return nil, err
	}
	f.SetActiveSheet(0)
	return f, nil
}

func pairs(rows []report.Row) [][]any {
	out := make([][]any, len(rows))
	for i, r := range rows {
		out[i] = []any{r.Key, r.Value}
	}
	return out
}

func writeSheet(f *excelize.File, sheet string, header []any, rows [][]any, headerStyle, bodyStyle int, widths []float64) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	last, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last+"1", headerStyle); err != nil {
		return err
	}
	if len(rows) > 0 {
		if err := f.SetCellStyle(sheet, "A2", fmt.Sprintf("%s%d", last, len(rows)+1), bodyStyle); err != nil {
			return err
		}
	}
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return err
		}
	}
	return nil
}
