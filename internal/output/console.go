package output

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/selimozcann/SiteHunter/internal/model"
	"github.com/selimozcann/SiteHunter/internal/report"
	"github.com/selimozcann/SiteHunter/internal/statuscolor"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 1)
	labelStyle = lipgloss.NewStyle().Bold(true).Width(22)
)

// PrintSummary writes the run summary panel and one line per finding, most
// severe first.
func PrintSummary(w io.Writer, target string, r report.Report) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s%s\n", labelStyle.Render("Target"), target)
	for _, row := range r.Summary.Rows() {
		val := row.Value
		if row.Key == "Build Stability" {
			val = statuscolor.Stability(val)
		}
		fmt.Fprintf(&b, "%s%s\n", labelStyle.Render(row.Key), val)
	}
	for _, row := range r.Environment.Rows() {
		fmt.Fprintf(&b, "%s%s\n", labelStyle.Render(row.Key), statuscolor.Gray(row.Value))
	}
	fmt.Fprintln(w, panelStyle.Render(strings.TrimRight(b.String(), "\n")))

	for _, f := range bySeverity(r.Findings) {
		fmt.Fprintf(w, "  [%s] %-4s %s\n", statuscolor.Severity(f.Severity), f.ID, f.Title)
		if f.Actual != "" && !r.Passed() {
			fmt.Fprintf(w, "         %s\n", statuscolor.Gray(f.Actual))
		}
	}
}

// bySeverity returns a copy of findings ordered by descending severity,
// keeping run order within a severity.
func bySeverity(findings []model.Finding) []model.Finding {
	out := slices.Clone(findings)
	slices.SortStableFunc(out, func(a, b model.Finding) int {
		return b.Severity.Score() - a.Severity.Score()
	})
	return out
}
