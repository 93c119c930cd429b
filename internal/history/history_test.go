package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selimozcann/SiteHunter/internal/model"
	"github.com/selimozcann/SiteHunter/internal/report"
)

func finding(id, title, actual string) model.Finding {
	return model.Finding{ID: id, Title: title, Kind: model.KindBrokenLinks, Severity: model.SeverityHigh, Actual: actual, Status: model.StatusNew}
}

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "db", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestFingerprint(t *testing.T) {
	a := finding("007", "Broken links found", "Broken links: https://a.test/x (404)")
	b := finding("007", "Broken links found", "Broken links: https://a.test/y (500)")
	c := finding("008", "Broken links found", "")
	assert.Equal(t, Fingerprint(a), Fingerprint(b))
	assert.NotEqual(t, Fingerprint(a), Fingerprint(c))
	assert.NotEmpty(t, Fingerprint(model.Finding{}))
}

func TestRecordRecurring(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	first := []model.Finding{finding("001", "Header overlaps", ""), finding("007", "Broken links found", "x")}
	n, err := s.Record(ctx, Run{ID: "r1", Target: "https://site.test/", StartedAt: start, Summary: report.Summary{Total: 2, High: 2}}, first)
	require.NoError(t, err)
	assert.Equal(t, -1, n)

	second := []model.Finding{finding("007", "Broken links found", "y"), finding("013", "Console errors", "")}
	n, err = s.Record(ctx, Run{ID: "r2", Target: "https://site.test/", StartedAt: start.Add(time.Hour)}, second)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = s.Record(ctx, Run{Target: "https://other.test/", StartedAt: start}, second)
	require.NoError(t, err)
	assert.Equal(t, -1, n)

	runs, err := s.Runs(ctx, "https://site.test/", 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "r2", runs[0].ID)
	assert.Equal(t, "r1", runs[1].ID)
	assert.Equal(t, 2, runs[1].Summary.High)
	assert.True(t, runs[1].StartedAt.Equal(start))
}

func TestRecordSkipsPlaceholder(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	passed := report.Aggregate(nil, report.Environment{}).Findings

	_, err := s.Record(ctx, Run{ID: "a", Target: "t", StartedAt: time.Unix(1, 0)}, passed)
	require.NoError(t, err)
	n, err := s.Record(ctx, Run{ID: "b", Target: "t", StartedAt: time.Unix(2, 0)}, passed)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestClosedStore(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.Close())
	_, err := s.Record(context.Background(), Run{}, nil)
	assert.ErrorIs(t, err, ErrClosed)
	_, err = s.Runs(context.Background(), "t", 1)
	assert.ErrorIs(t, err, ErrClosed)
	assert.NoError(t, s.Close())
}

func TestNewRunID(t *testing.T) {
	a, b := NewRunID(), NewRunID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
