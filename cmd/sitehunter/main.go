package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/selimozcann/SiteHunter/internal/banner"
	"github.com/selimozcann/SiteHunter/internal/check"
	"github.com/selimozcann/SiteHunter/internal/config"
	"github.com/selimozcann/SiteHunter/internal/history"
	"github.com/selimozcann/SiteHunter/internal/httpclient"
	"github.com/selimozcann/SiteHunter/internal/metrics"
	"github.com/selimozcann/SiteHunter/internal/output"
	"github.com/selimozcann/SiteHunter/internal/report"
	"github.com/selimozcann/SiteHunter/internal/runner"
	"github.com/selimozcann/SiteHunter/internal/session"
	"github.com/selimozcann/SiteHunter/internal/statuscolor"
	"github.com/selimozcann/SiteHunter/internal/telemetry"
)

var version = "dev"

const browserName = "Chrome (via chromedp)"

type options struct {
	configPath string
	verbose    bool
	silent     bool
}

func main() {
	opts := parseFlags()
	tty := term.IsTerminal(int(os.Stdout.Fd()))
	statuscolor.SetEnabled(tty)
	if tty && !opts.silent {
		banner.Print(os.Stdout, version)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "[-] Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() options {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "YAML config file")
	flag.BoolVar(&opts.verbose, "v", false, "Enable debug logging")
	flag.BoolVar(&opts.silent, "silent", false, "Suppress banner and console summary")
	flag.Parse()
	return opts
}

func run(opts options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	level := cfg.Level()
	if opts.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, err := telemetry.Setup(ctx, cfg.TelemetryOptions(version))
	if err != nil {
		log.Warn("tracing disabled", "error", err)
		tp, _ = telemetry.Setup(ctx, telemetry.Options{})
	}
	if tp.Enabled() {
		log.Info("tracing enabled", "endpoint", cfg.Telemetry.OTLPEndpoint)
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Warn("tracer shutdown", "error", err)
		}
	}()

	var browser session.Browser
	chrome, err := session.NewChrome(ctx, cfg.ChromeConfig())
	if err != nil {
		log.Error("browser unavailable, checks will report diagnostics", "error", err)
		browser = session.Unavailable(err)
	} else {
		browser = chrome
	}
	s := session.New(browser, httpclient.NewProber(cfg.ProberConfig()), cfg.SessionOptions())
	defer func() {
		if err := s.Close(); err != nil {
			log.Warn("session close", "error", err)
		}
	}()

	defs, err := check.Default(cfg.CheckOptions())
	if err != nil {
		return fmt.Errorf("build checks: %w", err)
	}

	m := metrics.New()
	r := runner.New(runner.Config{
		Viewport:      cfg.Viewports.Desktop,
		ScreenshotDir: cfg.Output.Screenshots,
	}, runner.WithLogger(log), runner.WithMetrics(m), runner.WithTracer(tp.Tracer()))

	log.Info("probe started", "target", cfg.Target, "checks", len(defs))
	findings := r.Run(ctx, s, defs)
	m.ObserveRun(s.Elapsed())

	rep := report.Aggregate(findings, report.Environment{
		Browser:   browserName,
		OS:        runtime.GOOS + "/" + runtime.GOARCH,
		Viewports: s.TestedViewports(),
		RunTime:   s.Elapsed(),
	})
	log.Info("probe finished", "findings", rep.Summary.Total, "stability", rep.Summary.Stability)

	runID := history.NewRunID()
	recurring := recordHistory(ctx, log, cfg, runID, s.StartedAt(), rep)

	err = writeOutputs(log, cfg, runID, recurring, rep, m)
	if !opts.silent {
		output.PrintSummary(os.Stdout, cfg.Target, rep)
	}
	return err
}

// recordHistory stores the run when a history database is configured and
// returns the recurring count, or -1.
func recordHistory(ctx context.Context, log *slog.Logger, cfg config.Config, runID string, started time.Time, rep report.Report) int {
	if cfg.Output.History == "" {
		return -1
	}
	store, err := history.Open(ctx, cfg.Output.History)
	if err != nil {
		log.Warn("history unavailable", "error", err)
		return -1
	}
	defer store.Close()
	n, err := store.Record(ctx, history.Run{ID: runID, Target: cfg.Target, StartedAt: started, Summary: rep.Summary}, rep.Findings)
	if err != nil {
		log.Warn("history record", "error", err)
		return -1
	}
	if n < 0 {
		return n
	}
	attrs := []any{"recurring", n}
	if runs, err := store.Runs(ctx, cfg.Target, 2); err == nil && len(runs) == 2 {
		prev := runs[1]
		attrs = append(attrs, "previous_run", prev.ID, "previous_total", prev.Summary.Total, "previous_high", prev.Summary.High)
	}
	log.Info("compared with previous run", attrs...)
	return n
}

// writeOutputs writes every configured artifact. Each failure is logged and
// the rest are still attempted.
func writeOutputs(log *slog.Logger, cfg config.Config, runID string, recurring int, rep report.Report, m *metrics.Metrics) error {
	now := time.Now().UTC()
	var errs []error
	write := func(kind, path string, fn func() error) {
		if path == "" {
			return
		}
		if err := fn(); err != nil {
			log.Error("write failed", "output", kind, "path", path, "error", err)
			errs = append(errs, fmt.Errorf("write %s: %w", kind, err))
			return
		}
		log.Info("report written", "output", kind, "path", path)
	}

	write("xlsx", cfg.Output.XLSX, func() error { return output.WriteXLSX(cfg.Output.XLSX, rep) })
	write("html", cfg.Output.HTML, func() error {
		return output.WriteHTML(cfg.Output.HTML, output.PageData{
			Title:       "SiteHunter QA Report",
			Target:      cfg.Target,
			RunID:       runID,
			GeneratedAt: now,
			Params:      params(cfg),
			Report:      rep,
			Recurring:   recurring,
		})
	})
	write("jsonl", cfg.Output.JSONL, func() error {
		return output.WriteJSONLFile(cfg.Output.JSONL, output.BuildRecords(runID, cfg.Target, now, rep.Findings))
	})
	write("pdf", cfg.Output.PDF, func() error {
		return output.WritePDFFile(cfg.Output.PDF, "SiteHunter QA Report", cfg.Target, now, rep)
	})
	write("metrics", cfg.Output.Metrics, func() error { return m.WriteTextfile(cfg.Output.Metrics) })
	return errors.Join(errs...)
}

func params(cfg config.Config) map[string]string {
	p := map[string]string{
		"target":             cfg.Target,
		"desktop_viewport":   cfg.Viewports.Desktop.String(),
		"mobile_viewport":    cfg.Viewports.Mobile.String(),
		"navigation_timeout": cfg.Timeouts.Navigation.String(),
		"probe_timeout":      cfg.Timeouts.Probe.String(),
		"settle_delay":       cfg.Timeouts.Settle.String(),
		"headless":           strconv.FormatBool(cfg.Browser.Headless),
		"links_checked":      strconv.Itoa(cfg.Checks.Links),
		"same_site_only":     strconv.FormatBool(cfg.Checks.SameSiteLinksOnly),
		"search_term":        cfg.Checks.SearchTerm,
		"rate_limit":         strconv.FormatFloat(cfg.HTTP.RateLimit, 'f', -1, 64),
	}
	if cfg.HTTP.Proxy != "" {
		p["proxy"] = cfg.HTTP.Proxy
	}
	return p
}
