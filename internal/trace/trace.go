package trace

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	// DefaultMaxHops bounds how many redirects a single probe follows.
	DefaultMaxHops = 10
	// DefaultMaxBody bounds how many bytes of a GET response are counted.
	DefaultMaxBody int64 = 16 << 20
	// keepBody is how much of a GET body is retained in the result.
	keepBody = 512 * 1024
)

var (
	ErrRedirectLoop     = errors.New("redirect loop")
	ErrTooManyRedirects = errors.New("too many redirects")
	ErrMissingLocation  = errors.New("redirect without Location header")
)

// Hop represents a single step in a redirect chain.
type Hop struct {
	Index  int    `json:"index"`
	URL    string `json:"url"`
	Status int    `json:"status"`
	TimeMs int64  `json:"time_ms"`
	Final  bool   `json:"final"`
}

// Result is the outcome of following one URL to its final response.
// Size is -1 when a HEAD response does not declare Content-Length.
type Result struct {
	Target     string
	Method     string
	Chain      []Hop
	Status     int
	Size       int64
	Body       []byte
	StartedAt  time.Time
	DurationMs int64
	Err        error
}

// FinalURL returns the last URL reached, or the target when no hop completed.
func (r Result) FinalURL() string {
	if len(r.Chain) == 0 {
		return r.Target
	}
	return r.Chain[len(r.Chain)-1].URL
}

// Tracer performs manual redirect tracing.
type Tracer struct {
	Client  *http.Client
	MaxHops int
	MaxBody int64
}

// New creates a new Tracer with default limits.
func New(c *http.Client) *Tracer {
	return &Tracer{Client: c, MaxHops: DefaultMaxHops, MaxBody: DefaultMaxBody}
}

// Follow issues method against target and follows Location headers until a
// non-redirect response, a loop, or the hop limit.
func (t *Tracer) Follow(ctx context.Context, method, target string) (res Result) {
	res = Result{Target: target, Method: method, Size: -1, StartedAt: time.Now()}
	defer func() { res.DurationMs = time.Since(res.StartedAt).Milliseconds() }()

	maxHops := t.MaxHops
	if maxHops <= 0 {
		maxHops = DefaultMaxHops
	}
	current := target
	seen := make(map[string]struct{})

	for i := 0; ; i++ {
		if i >= maxHops {
			res.Err = fmt.Errorf("%w after %d hops", ErrTooManyRedirects, maxHops)
			return res
		}
		if _, ok := seen[current]; ok {
			res.Err = fmt.Errorf("%w at %s", ErrRedirectLoop, current)
			return res
		}
		seen[current] = struct{}{}

		req, err := http.NewRequestWithContext(ctx, method, current, nil)
		if err != nil {
			res.Err = err
			return res
		}
		start := time.Now()
		resp, err := t.Client.Do(req)
		if err != nil {
			res.Err = err
			return res
		}
		hop := Hop{Index: i, URL: current, Status: resp.StatusCode, TimeMs: time.Since(start).Milliseconds()}
		res.Status = resp.StatusCode

		if resp.StatusCode >= 300 && resp.StatusCode < 400 {
			loc := resp.Header.Get("Location")
			_ = resp.Body.Close()
			res.Chain = append(res.Chain, hop)
			if loc == "" {
				res.Err = ErrMissingLocation
				return res
			}
			next, err := url.Parse(loc)
			if err != nil {
				res.Err = fmt.Errorf("invalid location %q: %w", loc, err)
				return res
			}
			current = resp.Request.URL.ResolveReference(next).String()
			continue
		}

		hop.Final = true
		res.Chain = append(res.Chain, hop)
		if method == http.MethodHead {
			res.Size = resp.ContentLength
			_ = resp.Body.Close()
			return res
		}
		res.Body, res.Size, res.Err = t.readBody(resp.Body)
		_ = resp.Body.Close()
		return res
	}
}

func (t *Tracer) readBody(r io.Reader) ([]byte, int64, error) {
	limit := t.MaxBody
	if limit <= 0 {
		limit = DefaultMaxBody
	}
	lr := io.LimitReader(r, limit)
	buf := make([]byte, keepBody)
	n, err := io.ReadFull(lr, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return buf[:n], int64(n), err
	}
	rest, err := io.Copy(io.Discard, lr)
	return buf[:n], int64(n) + rest, err
}
