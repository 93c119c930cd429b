package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/selimozcann/SiteHunter/internal/trace"
)

// Result is the outcome of one HEAD or GET probe. Err is set on transport
// failure; HTTP error statuses are reported through Status.
type Result struct {
	URL      string
	FinalURL string
	Method   string
	Status   int
	Size     int64
	Body     []byte
	Hops     int
	Duration time.Duration
	Err      error
}

// Failed reports a transport failure or a status of 400 or above.
func (r Result) Failed() bool {
	return r.Err != nil || r.Status >= 400
}

// Failure describes why the probe failed, or returns "" when it did not.
func (r Result) Failure() string {
	switch {
	case r.Err != nil:
		return r.Err.Error()
	case r.Status >= 400:
		return fmt.Sprintf("HTTP %d", r.Status)
	}
	return ""
}

// ProberConfig configures a Prober.
type ProberConfig struct {
	Client    Config
	MaxHops   int
	RateLimit float64 // requests per second, 0 = unlimited
}

// Prober issues sequential HEAD/GET probes with manual redirect following.
type Prober struct {
	tracer  *trace.Tracer
	limiter *rate.Limiter
}

// NewProber builds a Prober from cfg.
func NewProber(cfg ProberConfig) *Prober {
	tr := trace.New(New(cfg.Client))
	if cfg.MaxHops > 0 {
		tr.MaxHops = cfg.MaxHops
	}
	p := &Prober{tracer: tr}
	if cfg.RateLimit > 0 {
		p.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}
	return p
}

// Head probes target with a HEAD request.
func (p *Prober) Head(ctx context.Context, target string) Result {
	return p.probe(ctx, http.MethodHead, target)
}

// Get probes target with a GET request, counting the body size.
func (p *Prober) Get(ctx context.Context, target string) Result {
	return p.probe(ctx, http.MethodGet, target)
}

func (p *Prober) probe(ctx context.Context, method, target string) Result {
	res := Result{URL: target, Method: method, Size: -1}
	u, err := url.Parse(target)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		res.Err = fmt.Errorf("%w: %q", ErrBadURL, target)
		return res
	}
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			res.Err = classify(err)
			return res
		}
	}
	tr := p.tracer.Follow(ctx, method, target)
	res.FinalURL = tr.FinalURL()
	res.Status = tr.Status
	res.Size = tr.Size
	res.Body = tr.Body
	res.Hops = len(tr.Chain)
	res.Duration = time.Duration(tr.DurationMs) * time.Millisecond
	res.Err = classify(tr.Err)
	return res
}

func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return err
}
