// Package check holds the battery of heuristic page checks.
//
// A check inspects the shared session and returns zero or more findings, or
// an error when it could not reach a verdict. Checks never log and never
// recover from their own panics; the runner owns both.
package check

import (
	"context"
	"fmt"

	"github.com/selimozcann/SiteHunter/internal/model"
	"github.com/selimozcann/SiteHunter/internal/session"
)

// Check inspects a session for one kind of defect.
type Check interface {
	Kind() model.Kind
	Run(ctx context.Context, s *session.Session) ([]model.Finding, error)
}

// Func adapts a function to a Check of a fixed kind.
type Func func(ctx context.Context, s *session.Session) ([]model.Finding, error)

type funcCheck struct {
	kind model.Kind
	fn   Func
}

func (c funcCheck) Kind() model.Kind { return c.kind }

func (c funcCheck) Run(ctx context.Context, s *session.Session) ([]model.Finding, error) {
	return c.fn(ctx, s)
}

// New wraps fn as a Check of kind k.
func New(k model.Kind, fn Func) Check { return funcCheck{kind: k, fn: fn} }

// Meta is the report text attached to every finding of a check.
type Meta struct {
	// Name is a short label used for diagnostic titles.
	Name        string
	ID          string
	Title       string
	Steps       []string
	Expected    string
	Screenshot  string
	Environment string
}

// Definition is a check bound to its position, severity and report text.
type Definition struct {
	Position int
	Kind     model.Kind
	Severity model.Severity
	Meta     Meta
	// Navigates marks checks that may leave the page they started on.
	Navigates bool
	Check     Check
}

// Define resolves the severity for c's kind. Unknown kinds are rejected.
func Define(position int, c Check, meta Meta, navigates bool) (Definition, error) {
	sev, ok := c.Kind().Severity()
	if !ok || !sev.IsValid() {
		return Definition{}, fmt.Errorf("%w: %q", ErrUnknownKind, c.Kind())
	}
	if meta.ID == "" || meta.Title == "" {
		return Definition{}, fmt.Errorf("%w: %q", ErrIncompleteMeta, c.Kind())
	}
	return Definition{
		Position:  position,
		Kind:      c.Kind(),
		Severity:  sev,
		Meta:      meta,
		Navigates: navigates,
		Check:     c,
	}, nil
}

// Diagnostic converts a check error into the finding reported in its place.
func (d Definition) Diagnostic(err error) model.Finding {
	// Define guarantees a non-empty id and title.
	f, _ := model.NewFinding(d.Meta.ID, d.diagnosticName()+" check error", d.Severity, d.Meta.Steps, d.Meta.Expected,
		"Error during check: "+err.Error(),
		model.WithKind(d.Kind),
		model.WithEnvironment(d.Meta.Environment),
	)
	return f
}

func (d Definition) diagnosticName() string {
	if d.Meta.Name != "" {
		return d.Meta.Name
	}
	return d.Meta.Title
}

// finding builds a finding from meta with an overriding title when title is
// non-empty.
func finding(kind model.Kind, sev model.Severity, meta Meta, title, actual string) (model.Finding, error) {
	if title == "" {
		title = meta.Title
	}
	return model.NewFinding(meta.ID, title, sev, meta.Steps, meta.Expected, actual,
		model.WithKind(kind),
		model.WithScreenshot(meta.Screenshot),
		model.WithEnvironment(meta.Environment),
	)
}
