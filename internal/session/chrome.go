package session

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	cdplog "github.com/chromedp/cdproto/log"
	"github.com/chromedp/cdproto/page"
	cdpruntime "github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	json "github.com/go-json-experiment/json"
)

// LongTaskBuffer is the window property the injected observer appends
// long-task entries to.
const LongTaskBuffer = "__sitehunterLongTasks"

// longTaskObserver publishes the buffer only once a longtask observer is
// running, so its absence means long tasks cannot be observed.
var longTaskObserver = `(() => {
  try {
    if (!window.PerformanceObserver) return;
    if (!(PerformanceObserver.supportedEntryTypes || []).includes('longtask')) return;
    const buf = [];
    new PerformanceObserver(list => {
      for (const e of list.getEntries()) {
        buf.push({name: e.name, duration: e.duration, startTime: e.startTime});
      }
    }).observe({type: 'longtask', buffered: true});
    window.` + LongTaskBuffer + ` = buf;
  } catch (e) {}
})();`

// ChromeConfig controls how Chrome is launched.
type ChromeConfig struct {
	Headless   bool
	ExecPath   string
	NoSandbox  bool
	UserAgent  string
	Proxy      string
	WindowSize Viewport
}

// Chrome is a Browser backed by a chromedp-controlled Chrome tab.
type Chrome struct {
	ctx     context.Context
	release func()

	mu   sync.Mutex
	logs []ConsoleEntry
}

// NewChrome launches Chrome and opens a tab with console capture enabled.
func NewChrome(parent context.Context, cfg ChromeConfig) (*Chrome, error) {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if !cfg.Headless {
		opts = append(opts, chromedp.Flag("headless", false))
	}
	opts = append(opts,
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-infobars", true),
	)
	if cfg.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	if !cfg.WindowSize.IsZero() {
		opts = append(opts, chromedp.WindowSize(cfg.WindowSize.Width, cfg.WindowSize.Height))
	}
	if cfg.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(cfg.UserAgent))
	}
	if cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ExecPath))
	}
	if cfg.Proxy != "" {
		opts = append(opts, chromedp.ProxyServer(cfg.Proxy))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(parent, opts...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)

	c := &Chrome{ctx: tabCtx}
	c.release = func() {
		// grab the process before cancel clears it
		var proc *os.Process
		if bc := chromedp.FromContext(tabCtx); bc != nil && bc.Browser != nil {
			proc = bc.Browser.Process()
		}
		done := make(chan struct{})
		go func() {
			tabCancel()
			allocCancel()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			if proc != nil {
				_ = proc.Kill()
			}
		}
	}

	chromedp.ListenTarget(tabCtx, c.onEvent)

	err := chromedp.Run(tabCtx,
		cdpruntime.Enable(),
		cdplog.Enable(),
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(longTaskObserver).Do(ctx)
			return err
		}),
	)
	if err != nil {
		c.release()
		return nil, fmt.Errorf("start chrome: %w", err)
	}
	return c, nil
}

// run executes actions on the tab, bounded by ctx's deadline and cancellation.
func (c *Chrome) run(ctx context.Context, actions ...chromedp.Action) error {
	rctx, cancel := context.WithCancel(c.ctx)
	defer cancel()
	if dl, ok := ctx.Deadline(); ok {
		var cancelDeadline context.CancelFunc
		rctx, cancelDeadline = context.WithDeadline(rctx, dl)
		defer cancelDeadline()
	}
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return chromedp.Run(rctx, actions...)
}

func (c *Chrome) Navigate(ctx context.Context, url string) error {
	return c.run(ctx, chromedp.Navigate(url))
}

func (c *Chrome) SetViewport(ctx context.Context, vp Viewport) error {
	return c.run(ctx, chromedp.EmulateViewport(int64(vp.Width), int64(vp.Height)))
}

func (c *Chrome) Evaluate(ctx context.Context, script string, out any) error {
	return c.run(ctx, chromedp.Evaluate(script, out))
}

func (c *Chrome) Location(ctx context.Context) (string, error) {
	var loc string
	err := c.run(ctx, chromedp.Location(&loc))
	return loc, err
}

func (c *Chrome) HTML(ctx context.Context) (string, error) {
	var markup string
	err := c.run(ctx, chromedp.OuterHTML("html", &markup, chromedp.ByQuery))
	return markup, err
}

func (c *Chrome) Click(ctx context.Context, selector string) error {
	return c.run(ctx, chromedp.Click(selector, chromedp.ByQuery, chromedp.NodeVisible))
}

func (c *Chrome) SetValue(ctx context.Context, selector, value string) error {
	return c.run(ctx, chromedp.SetValue(selector, value, chromedp.ByQuery))
}

func (c *Chrome) SendKeys(ctx context.Context, selector, text string) error {
	return c.run(ctx, chromedp.SendKeys(selector, text, chromedp.ByQuery))
}

func (c *Chrome) Screenshot(ctx context.Context) ([]byte, error) {
	var buf []byte
	err := c.run(ctx, chromedp.CaptureScreenshot(&buf))
	return buf, err
}

func (c *Chrome) ConsoleLogs(ctx context.Context) ([]ConsoleEntry, error) {
	if err := c.ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]ConsoleEntry(nil), c.logs...), nil
}

// Close shuts Chrome down, killing it if it does not exit within 5s.
func (c *Chrome) Close() error {
	c.release()
	return nil
}

func (c *Chrome) onEvent(ev any) {
	switch e := ev.(type) {
	case *cdpruntime.EventConsoleAPICalled:
		c.record(ConsoleEntry{
			Level:     consoleLevel(string(e.Type)),
			Message:   formatArgs(e.Args),
			Source:    "console-api",
			Timestamp: stamp(e.Timestamp),
		})
	case *cdpruntime.EventExceptionThrown:
		if e.ExceptionDetails == nil {
			return
		}
		msg := e.ExceptionDetails.Text
		if ex := e.ExceptionDetails.Exception; ex != nil && ex.Description != "" {
			msg = msg + " " + ex.Description
		}
		c.record(ConsoleEntry{Level: LevelSevere, Message: msg, Source: "exception", Timestamp: stamp(e.Timestamp)})
	case *cdplog.EventEntryAdded:
		if e.Entry == nil {
			return
		}
		c.record(ConsoleEntry{
			Level:     consoleLevel(string(e.Entry.Level)),
			Message:   e.Entry.Text,
			Source:    string(e.Entry.Source),
			Timestamp: stamp(e.Entry.Timestamp),
		})
	}
}

func (c *Chrome) record(entry ConsoleEntry) {
	c.mu.Lock()
	c.logs = append(c.logs, entry)
	c.mu.Unlock()
}

func consoleLevel(level string) string {
	switch strings.ToLower(level) {
	case "error", "assert":
		return LevelSevere
	case "warning", "warn":
		return LevelWarning
	default:
		return LevelInfo
	}
}

func formatArgs(args []*cdpruntime.RemoteObject) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		if a == nil {
			continue
		}
		if len(a.Value) > 0 {
			var v any
			if err := json.Unmarshal([]byte(a.Value), &v); err == nil {
				if s, ok := v.(string); ok {
					parts = append(parts, s)
					continue
				}
			}
			parts = append(parts, string(a.Value))
			continue
		}
		if a.Description != "" {
			parts = append(parts, a.Description)
		}
	}
	return strings.Join(parts, " ")
}

func stamp(ts *cdpruntime.Timestamp) time.Time {
	if ts == nil {
		return time.Now()
	}
	return ts.Time()
}
