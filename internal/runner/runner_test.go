package runner

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selimozcann/SiteHunter/internal/check"
	"github.com/selimozcann/SiteHunter/internal/metrics"
	"github.com/selimozcann/SiteHunter/internal/model"
	"github.com/selimozcann/SiteHunter/internal/session"
	"github.com/selimozcann/SiteHunter/internal/session/sessiontest"
)

const target = "https://site.test/"

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func define(t *testing.T, pos int, k model.Kind, navigates bool, fn check.Func) check.Definition {
	t.Helper()
	d, err := check.Define(pos, check.New(k, fn), check.Meta{
		Name: string(k), ID: "T" + string(rune('0'+pos)), Title: "title " + string(k),
		Steps: []string{"step"}, Expected: "expected", Screenshot: string(k) + ".png",
	}, navigates)
	require.NoError(t, err)
	return d
}

func TestFaultySessionYieldsOneFindingPerCheck(t *testing.T) {
	defs, err := check.Default(check.DefaultOptions())
	require.NoError(t, err)
	s := session.New(sessiontest.Failing(), &sessiontest.Prober{Err: sessiontest.ErrFake}, session.Options{Target: target})

	findings := New(Config{}, WithLogger(quiet())).Run(context.Background(), s, defs)
	require.Len(t, findings, len(defs))
	for i, f := range findings {
		assert.Equal(t, defs[i].Kind, f.Kind)
		assert.Equal(t, defs[i].Severity, f.Severity)
		assert.True(t, strings.HasSuffix(f.Title, "check error"), f.Title)
		assert.True(t, strings.HasPrefix(f.Actual, "Error during check: "), f.Actual)
	}
	_, ok := s.BaselineLoad()
	assert.False(t, ok)
	assert.Empty(t, s.TestedViewports())
}

func TestPanicIsIsolated(t *testing.T) {
	defs := []check.Definition{
		define(t, 1, model.KindSpacing, false, func(context.Context, *session.Session) ([]model.Finding, error) {
			panic("boom")
		}),
		define(t, 2, model.KindFooterStack, false, func(context.Context, *session.Session) ([]model.Finding, error) {
			f, err := model.NewFinding("020", "Footer", model.SeverityLow, nil, "", "wide footer")
			return []model.Finding{f}, err
		}),
	}
	s := session.New(&sessiontest.Browser{}, nil, session.Options{Target: target})

	findings := New(Config{}, WithLogger(quiet())).Run(context.Background(), s, defs)
	require.Len(t, findings, 2)
	assert.Equal(t, model.KindSpacing, findings[0].Kind)
	assert.Equal(t, model.SeverityLow, findings[0].Severity)
	assert.Equal(t, "Error during check: check panicked: boom", findings[0].Actual)
	assert.Equal(t, "wide footer", findings[1].Actual)
}

func TestFillsKindAndSeverity(t *testing.T) {
	defs := []check.Definition{
		define(t, 1, model.KindBrokenLinks, false, func(context.Context, *session.Session) ([]model.Finding, error) {
			f, err := model.NewFinding("007", "Broken", "", nil, "", "404")
			return []model.Finding{f}, err
		}),
	}
	s := session.New(&sessiontest.Browser{}, nil, session.Options{Target: target})

	findings := New(Config{}, WithLogger(quiet())).Run(context.Background(), s, defs)
	require.Len(t, findings, 1)
	assert.Equal(t, model.KindBrokenLinks, findings[0].Kind)
	assert.Equal(t, model.SeverityHigh, findings[0].Severity)
}

func TestBaselineAndRestore(t *testing.T) {
	leave := func(ctx context.Context, s *session.Session) ([]model.Finding, error) {
		return nil, s.Navigate(ctx, "https://site.test/page/2")
	}
	defs := []check.Definition{
		define(t, 1, model.KindPaginationIssue, true, leave),
		define(t, 2, model.KindSpacing, false, func(context.Context, *session.Session) ([]model.Finding, error) {
			return nil, nil
		}),
		define(t, 3, model.KindSearchNotWorking, true, func(context.Context, *session.Session) ([]model.Finding, error) {
			return nil, nil
		}),
	}
	br := &sessiontest.Browser{}
	s := session.New(br, nil, session.Options{Target: target})

	findings := New(Config{}, WithLogger(quiet())).Run(context.Background(), s, defs)
	assert.Empty(t, findings)
	assert.Equal(t, []string{target, "https://site.test/page/2", target}, br.Navigations)
	assert.Equal(t, []session.Viewport{session.Desktop}, br.Viewports)

	_, ok := s.BaselineLoad()
	assert.True(t, ok)
}

func TestScreenshotsWritten(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	defs := []check.Definition{
		define(t, 1, model.KindHorizontalScroll, false, func(context.Context, *session.Session) ([]model.Finding, error) {
			f, err := model.NewFinding("017", "Scroll", model.SeverityHigh, nil, "", "wide",
				model.WithScreenshot("017_HorizontalScroll.png"))
			return []model.Finding{f}, err
		}),
	}
	s := session.New(&sessiontest.Browser{}, nil, session.Options{Target: target})

	New(Config{ScreenshotDir: dir}, WithLogger(quiet())).Run(context.Background(), s, defs)
	raw, err := os.ReadFile(filepath.Join(dir, "017_HorizontalScroll.png"))
	require.NoError(t, err)
	assert.NotEmpty(t, raw)
}

func TestCancelledContextStops(t *testing.T) {
	ran := false
	defs := []check.Definition{
		define(t, 1, model.KindSpacing, false, func(context.Context, *session.Session) ([]model.Finding, error) {
			ran = true
			return nil, nil
		}),
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := session.New(&sessiontest.Browser{}, nil, session.Options{Target: target})

	findings := New(Config{}, WithLogger(quiet())).Run(ctx, s, defs)
	assert.Empty(t, findings)
	assert.False(t, ran)
}

func TestMetricsRecorded(t *testing.T) {
	m := metrics.New()
	defs := []check.Definition{
		define(t, 1, model.KindSpacing, false, func(context.Context, *session.Session) ([]model.Finding, error) {
			return nil, check.ErrInconclusive
		}),
	}
	s := session.New(&sessiontest.Browser{}, nil, session.Options{Target: target})

	New(Config{}, WithLogger(quiet()), WithMetrics(m)).Run(context.Background(), s, defs)
	families, err := m.Registry().Gather()
	require.NoError(t, err)

	var checks float64
	for _, f := range families {
		if f.GetName() != "sitehunter_checks_total" {
			continue
		}
		for _, mm := range f.GetMetric() {
			checks += mm.GetCounter().GetValue()
			for _, lp := range mm.GetLabel() {
				if lp.GetName() == "outcome" {
					assert.Equal(t, metrics.OutcomeError, lp.GetValue())
				}
			}
		}
	}
	assert.Equal(t, 1.0, checks)
}

func TestSameURL(t *testing.T) {
	assert.True(t, sameURL("https://site.test", "https://site.test/"))
	assert.False(t, sameURL("https://site.test/page/2", "https://site.test/"))
}
