// Package runner executes a check battery against one session.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/selimozcann/SiteHunter/internal/check"
	"github.com/selimozcann/SiteHunter/internal/metrics"
	"github.com/selimozcann/SiteHunter/internal/model"
	"github.com/selimozcann/SiteHunter/internal/session"
)

// Config holds settings for the runner.
type Config struct {
	// Viewport is applied before the baseline load. Zero means desktop.
	Viewport session.Viewport
	// ScreenshotDir, when set, receives a PNG for every finding that names one.
	ScreenshotDir string
}

// Runner executes checks sequentially, isolating each one's failures.
type Runner struct {
	cfg     Config
	log     *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// Option customises a Runner.
type Option func(*Runner)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option { return func(r *Runner) { r.log = l } }

// WithMetrics records check outcomes on m.
func WithMetrics(m *metrics.Metrics) Option { return func(r *Runner) { r.metrics = m } }

// WithTracer opens a span per check.
func WithTracer(t trace.Tracer) Option { return func(r *Runner) { r.tracer = t } }

// New creates a new Runner.
func New(cfg Config, opts ...Option) *Runner {
	if cfg.Viewport.IsZero() {
		cfg.Viewport = session.Desktop
	}
	r := &Runner{cfg: cfg}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = slog.Default()
	}
	if r.tracer == nil {
		r.tracer = noop.NewTracerProvider().Tracer("sitehunter/runner")
	}
	return r
}

// Run loads the target, then runs every definition in order. It always
// returns the findings gathered so far; a cancelled ctx stops before the
// next check.
func (r *Runner) Run(ctx context.Context, s *session.Session, defs []check.Definition) []model.Finding {
	start := time.Now()
	defer func() { r.metrics.ObserveRun(time.Since(start)) }()

	r.baseline(ctx, s)

	var findings []model.Finding
	for i, def := range defs {
		if err := ctx.Err(); err != nil {
			r.log.Warn("run cancelled", "remaining", len(defs)-i, "err", err)
			break
		}
		got := r.runOne(ctx, s, def)
		if def.Navigates {
			r.restore(ctx, s)
		}
		r.capture(ctx, s, got)
		findings = append(findings, got...)
	}
	r.log.Info("run finished", "checks", len(defs), "findings", len(findings), "elapsed", time.Since(start).Round(time.Millisecond))
	return findings
}

func (r *Runner) baseline(ctx context.Context, s *session.Session) {
	s.SetViewport(ctx, r.cfg.Viewport)
	start := time.Now()
	if err := s.Navigate(ctx, s.Target()); err != nil {
		r.log.Warn("baseline load failed; continuing", "target", s.Target(), "err", err)
		return
	}
	load := time.Since(start)
	s.SetBaselineLoad(load)
	r.metrics.ObserveBaseline(load)
	r.log.Info("baseline loaded", "target", s.Target(), "load", load.Round(time.Millisecond))
}

func (r *Runner) runOne(ctx context.Context, s *session.Session, def check.Definition) []model.Finding {
	ctx, span := r.tracer.Start(ctx, "check."+string(def.Kind), trace.WithAttributes(
		attribute.String("check.id", def.Meta.ID),
		attribute.String("check.kind", string(def.Kind)),
		attribute.String("check.severity", string(def.Severity)),
	))
	defer span.End()

	start := time.Now()
	found, err := r.safeRun(ctx, s, def)
	elapsed := time.Since(start)

	outcome := metrics.OutcomePassed
	switch {
	case err != nil:
		outcome = metrics.OutcomeError
		if errors.Is(err, ErrCheckPanic) {
			outcome = metrics.OutcomePanic
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.log.Warn("check failed", "id", def.Meta.ID, "kind", def.Kind, "err", err)
		found = []model.Finding{def.Diagnostic(err)}
	case len(found) > 0:
		outcome = metrics.OutcomeFound
		found = fill(def, found)
	}

	span.SetAttributes(attribute.Int("check.findings", len(found)), attribute.String("check.outcome", outcome))
	r.metrics.ObserveCheck(def.Kind, outcome, elapsed, found)
	r.log.Debug("check done", "id", def.Meta.ID, "kind", def.Kind, "outcome", outcome,
		"findings", len(found), "elapsed", elapsed.Round(time.Millisecond))
	return found
}

// safeRun converts a panicking check into an error.
func (r *Runner) safeRun(ctx context.Context, s *session.Session, def check.Definition) (found []model.Finding, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("check panicked", "id", def.Meta.ID, "kind", def.Kind, "panic", rec, "stack", string(debug.Stack()))
			found = nil
			err = fmt.Errorf("%w: %v", ErrCheckPanic, rec)
		}
	}()
	return def.Check.Run(ctx, s)
}

// fill sets kind and severity on findings that left them empty.
func fill(def check.Definition, found []model.Finding) []model.Finding {
	for i := range found {
		if found[i].Kind == "" {
			found[i].Kind = def.Kind
		}
		if found[i].Severity == "" {
			found[i].Severity = def.Severity
		}
	}
	return found
}

// restore returns to the target when a check left it.
func (r *Runner) restore(ctx context.Context, s *session.Session) {
	loc, err := s.Location(ctx)
	if err == nil && sameURL(loc, s.Target()) {
		return
	}
	if err := s.Navigate(ctx, s.Target()); err != nil {
		r.log.Warn("restore to target failed", "target", s.Target(), "from", loc, "err", err)
		return
	}
	r.log.Debug("restored target", "target", s.Target(), "from", loc)
}

func (r *Runner) capture(ctx context.Context, s *session.Session, found []model.Finding) {
	if r.cfg.ScreenshotDir == "" {
		return
	}
	for _, f := range found {
		if f.Screenshot == "" {
			continue
		}
		png, err := s.Screenshot(ctx)
		if err != nil {
			r.log.Debug("screenshot unavailable", "id", f.ID, "err", err)
			return
		}
		if err := saveToFile(r.cfg.ScreenshotDir, f.Screenshot, png); err != nil {
			r.log.Warn("screenshot not saved", "id", f.ID, "file", f.Screenshot, "err", err)
		}
	}
}

func saveToFile(dir, name string, data []byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, filepath.Base(name)), data, 0o644)
}

func sameURL(a, b string) bool {
	return strings.TrimSuffix(a, "/") == strings.TrimSuffix(b, "/")
}
