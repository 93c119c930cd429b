package session

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/selimozcann/SiteHunter/internal/htmlscan"
	"github.com/selimozcann/SiteHunter/internal/httpclient"
)

// Console levels, normalised across browser event sources.
const (
	LevelSevere  = "SEVERE"
	LevelWarning = "WARNING"
	LevelInfo    = "INFO"
)

// ConsoleEntry is one message from the browser console.
type ConsoleEntry struct {
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	Source    string    `json:"source,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Browser drives a single page. Implementations need not be safe for
// concurrent use.
type Browser interface {
	Navigate(ctx context.Context, url string) error
	SetViewport(ctx context.Context, vp Viewport) error
	// Evaluate runs script and JSON-decodes its result into out. A null or
	// undefined result is an error.
	Evaluate(ctx context.Context, script string, out any) error
	Location(ctx context.Context) (string, error)
	HTML(ctx context.Context) (string, error)
	Click(ctx context.Context, selector string) error
	SetValue(ctx context.Context, selector, value string) error
	SendKeys(ctx context.Context, selector, text string) error
	Screenshot(ctx context.Context) ([]byte, error)
	ConsoleLogs(ctx context.Context) ([]ConsoleEntry, error)
	Close() error
}

// Prober issues plain HTTP probes outside the browser.
type Prober interface {
	Head(ctx context.Context, url string) httpclient.Result
	Get(ctx context.Context, url string) httpclient.Result
}

// Options configures a Session.
type Options struct {
	Target            string
	NavigationTimeout time.Duration
	ProbeTimeout      time.Duration
	ActionTimeout     time.Duration
	SettleDelay       time.Duration
}

const (
	DefaultNavigationTimeout = 30 * time.Second
	DefaultProbeTimeout      = 5 * time.Second
	DefaultActionTimeout     = 10 * time.Second
	DefaultSettleDelay       = 2 * time.Second
)

// Session is the shared browser and HTTP context every check runs against.
// The current viewport is whatever the last SetViewport call left behind.
type Session struct {
	browser   Browser
	prober    Prober
	opts      Options
	startedAt time.Time

	mu          sync.Mutex
	viewport    Viewport
	tested      []Viewport
	baseline    time.Duration
	hasBaseline bool

	closeOnce sync.Once
	closeErr  error
	closed    bool
}

// New wraps a browser and prober. Zero durations in opts take defaults.
func New(b Browser, p Prober, opts Options) *Session {
	if opts.NavigationTimeout <= 0 {
		opts.NavigationTimeout = DefaultNavigationTimeout
	}
	if opts.ProbeTimeout <= 0 {
		opts.ProbeTimeout = DefaultProbeTimeout
	}
	if opts.ActionTimeout <= 0 {
		opts.ActionTimeout = DefaultActionTimeout
	}
	if opts.SettleDelay < 0 {
		opts.SettleDelay = 0
	}
	return &Session{browser: b, prober: p, opts: opts, startedAt: time.Now()}
}

// Target is the homepage URL under test.
func (s *Session) Target() string { return s.opts.Target }

// StartedAt is when the session was created.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// Elapsed is the wall time since the session was created.
func (s *Session) Elapsed() time.Duration { return time.Since(s.startedAt) }

// Navigate loads target, bounded by the navigation timeout.
func (s *Session) Navigate(ctx context.Context, target string) error {
	if s.isClosed() {
		return &NavigationError{URL: target, Err: ErrClosed}
	}
	ctx, cancel := context.WithTimeout(ctx, s.opts.NavigationTimeout)
	defer cancel()
	if err := s.browser.Navigate(ctx, target); err != nil {
		return &NavigationError{URL: target, Err: err}
	}
	return nil
}

// SetViewport resizes the browser. Failures are ignored; the viewport is
// recorded as current either way but only counts as tested once the browser
// accepted it.
func (s *Session) SetViewport(ctx context.Context, vp Viewport) {
	applied := false
	if !s.isClosed() {
		ctx, cancel := context.WithTimeout(ctx, s.opts.ActionTimeout)
		applied = s.browser.SetViewport(ctx, vp) == nil
		cancel()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewport = vp
	if !applied {
		return
	}
	for _, t := range s.tested {
		if t == vp {
			return
		}
	}
	s.tested = append(s.tested, vp)
}

// Viewport returns the last viewport applied.
func (s *Session) Viewport() Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewport
}

// TestedViewports lists every distinct viewport the browser accepted, in
// first-use order.
func (s *Session) TestedViewports() []Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Viewport(nil), s.tested...)
}

// Evaluate runs script in the page and decodes the result into out. It
// returns false when the signal is not available for any reason.
func (s *Session) Evaluate(ctx context.Context, script string, out any) bool {
	if s.isClosed() {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, s.opts.ActionTimeout)
	defer cancel()
	return s.browser.Evaluate(ctx, script, out) == nil
}

// Head probes target with a bounded HEAD request.
func (s *Session) Head(ctx context.Context, target string) httpclient.Result {
	return s.probe(ctx, target, false)
}

// Get probes target with a bounded GET request.
func (s *Session) Get(ctx context.Context, target string) httpclient.Result {
	return s.probe(ctx, target, true)
}

func (s *Session) probe(ctx context.Context, target string, get bool) httpclient.Result {
	if s.prober == nil {
		return httpclient.Result{URL: target, Size: -1, Err: ErrUnavailable}
	}
	ctx, cancel := context.WithTimeout(ctx, s.opts.ProbeTimeout)
	defer cancel()
	if get {
		return s.prober.Get(ctx, target)
	}
	return s.prober.Head(ctx, target)
}

// ConsoleLogs returns console entries collected since the session started.
func (s *Session) ConsoleLogs(ctx context.Context) ([]ConsoleEntry, error) {
	if s.isClosed() {
		return nil, ErrClosed
	}
	return s.browser.ConsoleLogs(ctx)
}

// Location returns the URL currently loaded.
func (s *Session) Location(ctx context.Context) (string, error) {
	if s.isClosed() {
		return "", ErrClosed
	}
	ctx, cancel := context.WithTimeout(ctx, s.opts.ActionTimeout)
	defer cancel()
	return s.browser.Location(ctx)
}

// Document snapshots the live DOM. URLs are resolved against the current
// location, or the target when the location is unknown.
func (s *Session) Document(ctx context.Context) (*htmlscan.Document, error) {
	if s.isClosed() {
		return nil, ErrClosed
	}
	actx, cancel := context.WithTimeout(ctx, s.opts.ActionTimeout)
	defer cancel()
	markup, err := s.browser.HTML(actx)
	if err != nil {
		return nil, err
	}
	baseURL := s.opts.Target
	if loc, err := s.browser.Location(actx); err == nil && loc != "" {
		baseURL = loc
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		base = nil
	}
	return htmlscan.Parse(strings.NewReader(markup), base)
}

// Click clicks the first element matching a CSS selector.
func (s *Session) Click(ctx context.Context, selector string) error {
	if s.isClosed() {
		return ErrClosed
	}
	ctx, cancel := context.WithTimeout(ctx, s.opts.ActionTimeout)
	defer cancel()
	return s.browser.Click(ctx, selector)
}

// Fill replaces the value of an input with text typed key by key.
func (s *Session) Fill(ctx context.Context, selector, text string) error {
	if s.isClosed() {
		return ErrClosed
	}
	ctx, cancel := context.WithTimeout(ctx, s.opts.ActionTimeout)
	defer cancel()
	if err := s.browser.SetValue(ctx, selector, ""); err != nil {
		return err
	}
	return s.browser.SendKeys(ctx, selector, text)
}

// Screenshot captures the current viewport as PNG.
func (s *Session) Screenshot(ctx context.Context) ([]byte, error) {
	if s.isClosed() {
		return nil, ErrClosed
	}
	ctx, cancel := context.WithTimeout(ctx, s.opts.ActionTimeout)
	defer cancel()
	return s.browser.Screenshot(ctx)
}

// Settle waits for the page to react to an interaction.
func (s *Session) Settle(ctx context.Context) {
	if s.opts.SettleDelay <= 0 {
		return
	}
	t := time.NewTimer(s.opts.SettleDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// SetBaselineLoad records how long the initial homepage load took.
func (s *Session) SetBaselineLoad(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.baseline, s.hasBaseline = d, true
}

// BaselineLoad returns the initial homepage load time, if it was measured.
func (s *Session) BaselineLoad() (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.baseline, s.hasBaseline
}

// Close releases the browser. Later calls return the first result.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		s.closeErr = s.browser.Close()
	})
	return s.closeErr
}

func (s *Session) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
