package model

import (
	"strconv"
	"strings"
)

// Severity grades a finding for triage. Values are written to reports verbatim.
type Severity string

const (
	SeverityHigh   Severity = "High"
	SeverityMedium Severity = "Medium"
	SeverityLow    Severity = "Low"
	SeverityInfo   Severity = "Info"
)

// IsValid reports whether s is one of the known severities.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo:
		return true
	}
	return false
}

// Score orders severities, High being the largest.
func (s Severity) Score() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// Status is the triage state of a finding.
type Status string

const (
	StatusNew    Status = "New"
	StatusPassed Status = "Passed"
)

// Finding is a single row of the bug report.
type Finding struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Kind        Kind     `json:"kind,omitempty"`
	Severity    Severity `json:"severity"`
	Steps       []string `json:"steps"`
	Expected    string   `json:"expected"`
	Actual      string   `json:"actual"`
	Status      Status   `json:"status"`
	Screenshot  string   `json:"screenshot,omitempty"`
	Environment string   `json:"environment,omitempty"`
}

// Option customises a Finding built by NewFinding.
type Option func(*Finding)

// WithKind tags the finding with the check kind that produced it.
func WithKind(k Kind) Option { return func(f *Finding) { f.Kind = k } }

// WithStatus overrides the default New status.
func WithStatus(s Status) Option { return func(f *Finding) { f.Status = s } }

// WithScreenshot sets the screenshot file name.
func WithScreenshot(name string) Option { return func(f *Finding) { f.Screenshot = name } }

// WithEnvironment sets the free-text environment label.
func WithEnvironment(env string) Option { return func(f *Finding) { f.Environment = env } }

// NewFinding builds a Finding with status New. Empty id or title is rejected;
// severity is taken as given.
func NewFinding(id, title string, sev Severity, steps []string, expected, actual string, opts ...Option) (Finding, error) {
	if strings.TrimSpace(id) == "" {
		return Finding{}, ErrEmptyID
	}
	if strings.TrimSpace(title) == "" {
		return Finding{}, ErrEmptyTitle
	}
	f := Finding{
		ID:       id,
		Title:    title,
		Severity: sev,
		Steps:    append([]string(nil), steps...),
		Expected: expected,
		Actual:   actual,
		Status:   StatusNew,
	}
	for _, opt := range opts {
		opt(&f)
	}
	return f, nil
}

// StepsText renders the reproduction steps as a numbered list.
func (f Finding) StepsText() string {
	var b strings.Builder
	for i, s := range f.Steps {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(". ")
		b.WriteString(s)
	}
	return b.String()
}
