// Package report aggregates findings into the bug report, its summary and
// the environment block.
package report

import (
	"strconv"
	"strings"
	"time"

	"github.com/selimozcann/SiteHunter/internal/model"
	"github.com/selimozcann/SiteHunter/internal/session"
)

const (
	StabilityStable           = "Stable"
	StabilityNeedsImprovement = "Needs Improvement"

	Recommendation = "Prioritize High severity issues; fix UI consistency; optimize images & JS; re-test"

	placeholderID    = "N/A"
	placeholderTitle = "No issues detected (automated checks)"
)

// Environment describes where the run happened.
type Environment struct {
	Browser   string
	OS        string
	Viewports []session.Viewport
	RunTime   time.Duration
}

// Summary holds the severity counts and verdict of a run.
type Summary struct {
	Total          int
	High           int
	Medium         int
	Low            int
	Stability      string
	Recommendation string
}

// Report is the aggregated outcome of a run. Findings always holds at least
// one row.
type Report struct {
	Findings    []model.Finding
	Summary     Summary
	Environment Environment
}

// Row is one Metric/Value or Environment/Details pair.
type Row struct {
	Key   string
	Value string
}

// Aggregate builds the report. It does not modify findings.
func Aggregate(findings []model.Finding, env Environment) Report {
	rows := append([]model.Finding(nil), findings...)
	if len(rows) == 0 {
		rows = []model.Finding{placeholder(env)}
	}
	env.Viewports = append([]session.Viewport(nil), env.Viewports...)
	return Report{Findings: rows, Summary: summarize(findings), Environment: env}
}

// Passed reports whether the only row is the no-issues placeholder.
func (r Report) Passed() bool {
	return len(r.Findings) == 1 && r.Findings[0].ID == placeholderID && r.Findings[0].Status == model.StatusPassed
}

func placeholder(env Environment) model.Finding {
	// Constant id and title never fail validation.
	f, _ := model.NewFinding(placeholderID, placeholderTitle, model.SeverityInfo,
		[]string{"Automated run"}, "No issues", "No issues",
		model.WithStatus(model.StatusPassed),
		model.WithEnvironment(env.OS),
	)
	return f
}

func summarize(findings []model.Finding) Summary {
	s := Summary{Total: len(findings), Stability: StabilityStable, Recommendation: Recommendation}
	for _, f := range findings {
		switch f.Severity {
		case model.SeverityHigh:
			s.High++
		case model.SeverityMedium:
			s.Medium++
		case model.SeverityLow:
			s.Low++
		}
	}
	if s.High > 0 {
		s.Stability = StabilityNeedsImprovement
	}
	return s
}

// Rows renders the summary as the Metric/Value table.
func (s Summary) Rows() []Row {
	return []Row{
		{"Total Bugs Reported", strconv.Itoa(s.Total)},
		{"High Severity", strconv.Itoa(s.High)},
		{"Medium Severity", strconv.Itoa(s.Medium)},
		{"Low Severity", strconv.Itoa(s.Low)},
		{"Build Stability", s.Stability},
		{"Recommendation", s.Recommendation},
	}
}

// Resolutions lists the tested viewports, comma separated.
func (e Environment) Resolutions() string {
	parts := make([]string, len(e.Viewports))
	for i, vp := range e.Viewports {
		parts[i] = vp.String()
	}
	return strings.Join(parts, ", ")
}

// RunSeconds is the run time rounded to two decimals.
func (e Environment) RunSeconds() string {
	return strconv.FormatFloat(e.RunTime.Seconds(), 'f', 2, 64)
}

// Rows renders the environment as the Environment/Details table.
func (e Environment) Rows() []Row {
	return []Row{
		{"Browser", e.Browser},
		{"OS", e.OS},
		{"Resolutions Tested", e.Resolutions()},
		{"Script Run Time (s)", e.RunSeconds()},
	}
}
