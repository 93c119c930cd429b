package check

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/selimozcann/SiteHunter/internal/model"
	"github.com/selimozcann/SiteHunter/internal/session"
)

func (b *battery) consoleErrors(ctx context.Context, s *session.Session) ([]model.Finding, error) {
	logs, err := s.ConsoleLogs(ctx)
	if err != nil {
		return nil, err
	}
	var errs []string
	for _, e := range logs {
		if e.Level != session.LevelSevere && !strings.Contains(strings.ToLower(e.Message), "error") {
			continue
		}
		errs = append(errs, fmt.Sprintf("[%s] %s", e.Level, truncate(e.Message, 160)))
	}
	if len(errs) == 0 {
		return nil, nil
	}
	return b.report(model.KindConsoleErrors, fmt.Sprintf("%d console errors: %s", len(errs), sample(errs)))
}

type longTasks struct {
	Supported bool `json:"supported"`
	Tasks     []struct {
		Name      string  `json:"name"`
		Duration  float64 `json:"duration"`
		StartTime float64 `json:"startTime"`
	} `json:"tasks"`
	NavigationMs float64 `json:"navigationMs"`
}

func (b *battery) jsBlocking(ctx context.Context, s *session.Session) ([]model.Finding, error) {
	var lt longTasks
	if !s.Evaluate(ctx, jsBlockingJS, &lt) {
		return nil, inconclusive("performance entries unavailable")
	}
	if lt.Supported {
		var long []string
		for _, t := range lt.Tasks {
			if t.Duration > LongTaskMs {
				long = append(long, fmt.Sprintf("%s %.0fms at %.0fms", t.Name, t.Duration, t.StartTime))
			}
		}
		if len(long) == 0 {
			return nil, nil
		}
		return b.report(model.KindJSBlocking, "Long tasks found sample: "+sample(long))
	}
	if lt.NavigationMs < 0 {
		return nil, inconclusive("long tasks unsupported and navigation timing missing")
	}
	if lt.NavigationMs <= MaxNavigationMs {
		return nil, nil
	}
	return b.reportTitled(model.KindJSBlocking, "JS blocking suspected",
		fmt.Sprintf("Page load time ~%.0fms suggests blocking scripts", lt.NavigationMs))
}

type loadTiming struct {
	Ms float64 `json:"ms"`
}

func (b *battery) homepageLoad(ctx context.Context, s *session.Session) ([]model.Finding, error) {
	var load time.Duration
	var lt loadTiming
	switch baseline, ok := s.BaselineLoad(); {
	case s.Evaluate(ctx, loadTimeJS, &lt) && lt.Ms >= 0:
		load = time.Duration(lt.Ms * float64(time.Millisecond))
	case ok:
		load = baseline
	default:
		return nil, inconclusive("homepage load time unavailable")
	}
	if load <= MaxHomepageLoad {
		return nil, nil
	}
	return b.report(model.KindHomepageLoad, fmt.Sprintf("Homepage load time %.2fs exceeds %s",
		load.Seconds(), MaxHomepageLoad))
}

func (b *battery) unoptimizedImages(ctx context.Context, s *session.Session) ([]model.Finding, error) {
	doc, err := document(ctx, s)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var large []string
	for _, img := range doc.Images {
		if len(seen) >= b.opts.LargeImages {
			break
		}
		if !isHTTP(img.Src) {
			continue
		}
		if _, ok := seen[img.Src]; ok {
			continue
		}
		seen[img.Src] = struct{}{}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r := s.Head(ctx, img.Src)
		if r.Err != nil || r.Size < 0 || r.Status == 405 || r.Status == 501 {
			r = s.Get(ctx, img.Src)
		}
		// error pages carry their own Content-Length
		if !r.Failed() && r.Size > MaxImageBytes {
			large = append(large, fmt.Sprintf("%s (%d bytes)", img.Src, r.Size))
		}
	}
	if len(large) == 0 {
		return nil, nil
	}
	return b.report(model.KindUnoptimizedImages, "Large images: "+sample(large))
}
