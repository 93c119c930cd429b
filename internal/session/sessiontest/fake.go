// Package sessiontest provides scripted Browser and Prober fakes.
package sessiontest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/selimozcann/SiteHunter/internal/httpclient"
	"github.com/selimozcann/SiteHunter/internal/session"
)

var (
	ErrFake     = errors.New("fake failure")
	ErrNoScript = errors.New("script not scripted")
	ErrNull     = errors.New("script returned null")
)

// Browser is a scripted session.Browser. The zero value answers nothing:
// every Evaluate fails with ErrNoScript.
type Browser struct {
	mu sync.Mutex

	// Err, when set, fails every call.
	Err error
	// Scripts maps exact script text to the value Evaluate decodes. A nil
	// value behaves like a JavaScript null.
	Scripts map[string]any
	// EvalFunc, when set, is consulted before Scripts.
	EvalFunc func(script string) (any, error)
	HTMLDoc  string
	URL      string
	Logs     []session.ConsoleEntry
	// OnClick runs after a successful click; it may change URL or Scripts.
	OnClick     func(b *Browser, selector string)
	NavigateErr error
	ClickErr    error

	Navigations []string
	Viewports   []session.Viewport
	Clicks      []string
	Typed       map[string]string
	Closed      int
}

// Failing returns a Browser whose every call fails.
func Failing() *Browser { return &Browser{Err: ErrFake} }

func (b *Browser) Navigate(_ context.Context, url string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Navigations = append(b.Navigations, url)
	if b.Err != nil {
		return b.Err
	}
	if b.NavigateErr != nil {
		return b.NavigateErr
	}
	b.URL = url
	return nil
}

func (b *Browser) SetViewport(_ context.Context, vp session.Viewport) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Viewports = append(b.Viewports, vp)
	return b.Err
}

func (b *Browser) Evaluate(_ context.Context, script string, out any) error {
	b.mu.Lock()
	fail, eval := b.Err, b.EvalFunc
	b.mu.Unlock()
	if fail != nil {
		return fail
	}
	if eval != nil {
		v, err := eval(script)
		if !errors.Is(err, ErrNoScript) {
			if err != nil {
				return err
			}
			return decode(v, out)
		}
	}
	b.mu.Lock()
	v, ok := b.Scripts[script]
	b.mu.Unlock()
	if !ok {
		return ErrNoScript
	}
	return decode(v, out)
}

// decode mimics the browser's JSON round trip of an evaluation result.
func decode(v, out any) error {
	if v == nil {
		return ErrNull
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal scripted value: %w", err)
	}
	return json.Unmarshal(raw, out)
}

func (b *Browser) Location(context.Context) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Err != nil {
		return "", b.Err
	}
	return b.URL, nil
}

func (b *Browser) HTML(context.Context) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Err != nil {
		return "", b.Err
	}
	return b.HTMLDoc, nil
}

func (b *Browser) Click(_ context.Context, selector string) error {
	b.mu.Lock()
	if b.Err != nil || b.ClickErr != nil {
		defer b.mu.Unlock()
		if b.Err != nil {
			return b.Err
		}
		return b.ClickErr
	}
	b.Clicks = append(b.Clicks, selector)
	hook := b.OnClick
	b.mu.Unlock()
	if hook != nil {
		hook(b, selector)
	}
	return nil
}

func (b *Browser) SetValue(_ context.Context, selector, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Err != nil {
		return b.Err
	}
	if b.Typed == nil {
		b.Typed = make(map[string]string)
	}
	b.Typed[selector] = value
	return nil
}

func (b *Browser) SendKeys(_ context.Context, selector, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Err != nil {
		return b.Err
	}
	if b.Typed == nil {
		b.Typed = make(map[string]string)
	}
	b.Typed[selector] += text
	return nil
}

func (b *Browser) Screenshot(context.Context) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Err != nil {
		return nil, b.Err
	}
	return []byte("\x89PNG fake"), nil
}

func (b *Browser) ConsoleLogs(context.Context) ([]session.ConsoleEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Err != nil {
		return nil, b.Err
	}
	return append([]session.ConsoleEntry(nil), b.Logs...), nil
}

func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Closed++
	return nil
}

// SetScript sets the scripted value for script. Safe to call from OnClick.
func (b *Browser) SetScript(script string, v any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Scripts == nil {
		b.Scripts = make(map[string]any)
	}
	b.Scripts[script] = v
}

// SetURL changes the current location. Safe to call from OnClick.
func (b *Browser) SetURL(u string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.URL = u
}

// Prober is a scripted session.Prober. Unknown URLs answer 200 with an
// unknown size.
type Prober struct {
	mu sync.Mutex

	Err error
	// HeadResults and GetResults are keyed by URL and take precedence over Results.
	HeadResults map[string]httpclient.Result
	GetResults  map[string]httpclient.Result
	Results     map[string]httpclient.Result

	Heads []string
	Gets  []string
}

func (p *Prober) Head(_ context.Context, url string) httpclient.Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Heads = append(p.Heads, url)
	return p.lookup(url, p.HeadResults)
}

func (p *Prober) Get(_ context.Context, url string) httpclient.Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Gets = append(p.Gets, url)
	return p.lookup(url, p.GetResults)
}

func (p *Prober) lookup(url string, byMethod map[string]httpclient.Result) httpclient.Result {
	if p.Err != nil {
		return httpclient.Result{URL: url, Size: -1, Err: p.Err}
	}
	if r, ok := byMethod[url]; ok {
		r.URL = url
		return r
	}
	if r, ok := p.Results[url]; ok {
		r.URL = url
		return r
	}
	return httpclient.Result{URL: url, FinalURL: url, Status: 200, Size: -1}
}
