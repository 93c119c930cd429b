// Package history keeps a SQLite log of past runs so a report can say how
// many findings recur from the previous run against the same target.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spaolacci/murmur3"
	_ "modernc.org/sqlite"

	"github.com/selimozcann/SiteHunter/internal/model"
	"github.com/selimozcann/SiteHunter/internal/report"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs(
	id TEXT PRIMARY KEY,
	target TEXT NOT NULL,
	started_at INTEGER NOT NULL,
	total INTEGER NOT NULL,
	high INTEGER NOT NULL,
	medium INTEGER NOT NULL,
	low INTEGER NOT NULL,
	stability TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS findings(
	run_id TEXT NOT NULL,
	fingerprint TEXT NOT NULL,
	bug_id TEXT NOT NULL,
	severity TEXT NOT NULL,
	title TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_findings_run ON findings(run_id);
CREATE INDEX IF NOT EXISTS idx_runs_target ON runs(target, started_at);`

// ErrClosed is returned by operations on a closed Store.
var ErrClosed = errors.New("history store closed")

// Run is one recorded probe run.
type Run struct {
	ID        string
	Target    string
	StartedAt time.Time
	Summary   report.Summary
}

// Store is a run history backed by a SQLite file.
type Store struct {
	db *sql.DB
}

// NewRunID returns a fresh run identifier.
func NewRunID() string { return uuid.NewString() }

// Fingerprint identifies a finding across runs. Actual is left out because
// it carries measurements that change from run to run.
func Fingerprint(f model.Finding) string {
	h := murmur3.New64()
	for _, part := range []string{string(f.Kind), f.ID, f.Title} {
		_, _ = h.Write([]byte(part))
		_, _ = h.Write([]byte{0})
	}
	return strconv.FormatUint(h.Sum64(), 16)
}

// Open opens (creating if needed) the history database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("history mkdir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("history open: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history ping: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Record stores run and its findings and returns how many of them were also
// reported by the previous run for the same target, or -1 when there is no
// previous run. Passed placeholder rows are not stored.
func (s *Store) Record(ctx context.Context, run Run, findings []model.Finding) (int, error) {
	if s == nil || s.db == nil {
		return -1, ErrClosed
	}
	if run.ID == "" {
		run.ID = NewRunID()
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return -1, fmt.Errorf("history begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	prev, err := previousFingerprints(ctx, tx, run.Target)
	if err != nil {
		return -1, err
	}

	sum := run.Summary
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs(id, target, started_at, total, high, medium, low, stability) VALUES(?,?,?,?,?,?,?,?)`,
		run.ID, run.Target, run.StartedAt.UnixNano(), sum.Total, sum.High, sum.Medium, sum.Low, sum.Stability); err != nil {
		return -1, fmt.Errorf("history insert run: %w", err)
	}

	recurring := 0
	for _, f := range findings {
		if f.Status == model.StatusPassed {
			continue
		}
		fp := Fingerprint(f)
		if _, ok := prev[fp]; ok {
			recurring++
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO findings(run_id, fingerprint, bug_id, severity, title) VALUES(?,?,?,?,?)`,
			run.ID, fp, f.ID, string(f.Severity), f.Title); err != nil {
			return -1, fmt.Errorf("history insert finding: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return -1, fmt.Errorf("history commit: %w", err)
	}
	if prev == nil {
		return -1, nil
	}
	return recurring, nil
}

// previousFingerprints returns the fingerprint set of the latest run for
// target, or nil when target has never been recorded.
func previousFingerprints(ctx context.Context, tx *sql.Tx, target string) (map[string]struct{}, error) {
	var id string
	err := tx.QueryRowContext(ctx,
		`SELECT id FROM runs WHERE target=? ORDER BY started_at DESC, rowid DESC LIMIT 1`, target).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("history previous run: %w", err)
	}
	rows, err := tx.QueryContext(ctx, `SELECT fingerprint FROM findings WHERE run_id=?`, id)
	if err != nil {
		return nil, fmt.Errorf("history previous findings: %w", err)
	}
	defer rows.Close()
	set := make(map[string]struct{})
	for rows.Next() {
		var fp string
		if err := rows.Scan(&fp); err != nil {
			return nil, err
		}
		set[fp] = struct{}{}
	}
	return set, rows.Err()
}

// Runs lists up to limit recorded runs for target, newest first.
func (s *Store) Runs(ctx context.Context, target string, limit int) ([]Run, error) {
	if s == nil || s.db == nil {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, target, started_at, total, high, medium, low, stability FROM runs WHERE target=? ORDER BY started_at DESC, rowid DESC LIMIT ?`,
		target, limit)
	if err != nil {
		return nil, fmt.Errorf("history runs: %w", err)
	}
	defer rows.Close()
	var out []Run
	for rows.Next() {
		var (
			r  Run
			ts int64
		)
		if err := rows.Scan(&r.ID, &r.Target, &ts, &r.Summary.Total, &r.Summary.High, &r.Summary.Medium, &r.Summary.Low, &r.Summary.Stability); err != nil {
			return nil, err
		}
		r.StartedAt = time.Unix(0, ts)
		out = append(out, r)
	}
	return out, rows.Err()
}
