package check

import (
	"context"
	"fmt"

	"github.com/selimozcann/SiteHunter/internal/model"
	"github.com/selimozcann/SiteHunter/internal/session"
)

// Mobile checks switch the session to the mobile viewport and leave it there.

type widthProbe struct {
	InnerWidth float64 `json:"innerWidth"`
	MaxWidth   float64 `json:"maxWidth"`
}

func (b *battery) responsiveBreak(ctx context.Context, s *session.Session) ([]model.Finding, error) {
	s.SetViewport(ctx, b.opts.Mobile)
	var w widthProbe
	if !s.Evaluate(ctx, responsiveJS, &w) {
		return nil, inconclusive("element widths unavailable")
	}
	if w.MaxWidth <= w.InnerWidth+OverflowTolerancePx {
		return nil, nil
	}
	return b.report(model.KindResponsiveBreak, fmt.Sprintf(
		"A child element width %.0fpx exceeds viewport width %.0fpx by %.0fpx",
		w.MaxWidth, w.InnerWidth, w.MaxWidth-w.InnerWidth))
}

type menuLayout struct {
	Toggle     bool      `json:"toggle"`
	InnerWidth float64   `json:"innerWidth"`
	NavWidths  []float64 `json:"navWidths"`
}

func (b *battery) menuCollapse(ctx context.Context, s *session.Session) ([]model.Finding, error) {
	s.SetViewport(ctx, b.opts.Mobile)
	var m menuLayout
	if !s.Evaluate(ctx, menuJS, &m) {
		return nil, inconclusive("menu layout unavailable")
	}
	if m.Toggle {
		return nil, nil
	}
	limit := float64(s.Viewport().Width)
	if limit <= 0 {
		limit = m.InnerWidth
	}
	limit *= CollapsedNavRatio
	for _, w := range m.NavWidths {
		if w > limit {
			return b.report(model.KindMenuCollapse, fmt.Sprintf(
				"Menu remains full-size and overlaps content on mobile (nav width %.0fpx, no menu toggle)", w))
		}
	}
	return nil, nil
}

type imageWidths struct {
	Images []struct {
		Src   string  `json:"src"`
		Width float64 `json:"width"`
	} `json:"images"`
}

func (b *battery) imageResizeMobile(ctx context.Context, s *session.Session) ([]model.Finding, error) {
	s.SetViewport(ctx, b.opts.Mobile)
	var iw imageWidths
	if !s.Evaluate(ctx, b.imageWidthScript(), &iw) {
		return nil, inconclusive("image widths unavailable")
	}
	limit := float64(s.Viewport().Width) + OverflowTolerancePx
	var wide []string
	for _, img := range iw.Images {
		if img.Width > limit {
			wide = append(wide, fmt.Sprintf("%s (%.0fpx)", img.Src, img.Width))
		}
	}
	if len(wide) == 0 {
		return nil, nil
	}
	return b.report(model.KindImageResizeMobile, "Images wider than the viewport: "+sample(wide))
}

type scrollWidth struct {
	InnerWidth  float64 `json:"innerWidth"`
	ScrollWidth float64 `json:"scrollWidth"`
}

func (b *battery) horizontalScroll(ctx context.Context, s *session.Session) ([]model.Finding, error) {
	s.SetViewport(ctx, b.opts.Mobile)
	var sw scrollWidth
	if !s.Evaluate(ctx, scrollJS, &sw) {
		return nil, inconclusive("document width unavailable")
	}
	if sw.ScrollWidth <= sw.InnerWidth+OverflowTolerancePx {
		return nil, nil
	}
	return b.report(model.KindHorizontalScroll,
		fmt.Sprintf("Page scrollWidth %.0fpx > viewport %.0fpx", sw.ScrollWidth, sw.InnerWidth))
}

type footerLayout struct {
	Present    bool      `json:"present"`
	InnerWidth float64   `json:"innerWidth"`
	Widths     []float64 `json:"widths"`
}

func (b *battery) footerStack(ctx context.Context, s *session.Session) ([]model.Finding, error) {
	s.SetViewport(ctx, b.opts.Mobile)
	var fl footerLayout
	if !s.Evaluate(ctx, footerJS, &fl) {
		return nil, inconclusive("footer layout unavailable")
	}
	if !fl.Present {
		return nil, nil
	}
	widths := fl.Widths
	if len(widths) > FooterSample {
		widths = widths[:FooterSample]
	}
	for _, w := range widths {
		if w > fl.InnerWidth {
			return b.report(model.KindFooterStack, fmt.Sprintf(
				"Footer child elements exceed viewport width; possible stacking issue (%.0fpx > %.0fpx)", w, fl.InnerWidth))
		}
	}
	return nil, nil
}

type paragraphSizes struct {
	Sizes []string `json:"sizes"`
}

func (b *battery) fontSizeMobile(ctx context.Context, s *session.Session) ([]model.Finding, error) {
	s.SetViewport(ctx, b.opts.Mobile)
	var ps paragraphSizes
	if !s.Evaluate(ctx, b.fontSizeScript(), &ps) {
		return nil, inconclusive("paragraph font sizes unavailable")
	}
	var small []string
	for _, raw := range ps.Sizes {
		if px, ok := ParsePx(raw); ok && px < MinMobileFontPx {
			small = append(small, raw)
		}
	}
	if len(small) == 0 {
		return nil, nil
	}
	return b.report(model.KindFontSizeMobile, "Small paragraph font sizes: "+sample(small))
}

type overlapNodes struct {
	Nodes []struct {
		Tag       string       `json:"tag"`
		Rect      session.Rect `json:"rect"`
		Ancestors []int        `json:"ancestors"`
	} `json:"nodes"`
}

func (b *battery) textOverlapMobile(ctx context.Context, s *session.Session) ([]model.Finding, error) {
	s.SetViewport(ctx, b.opts.Mobile)
	var on overlapNodes
	if !s.Evaluate(ctx, b.overlapScript(), &on) {
		return nil, inconclusive("element boxes unavailable")
	}
	nested := func(i, j int) bool {
		for _, a := range on.Nodes[i].Ancestors {
			if a == j {
				return true
			}
		}
		return false
	}
	var pairs int
	var seen []string
	for i := range on.Nodes {
		for j := i + 1; j < len(on.Nodes); j++ {
			if nested(i, j) || nested(j, i) {
				continue
			}
			if on.Nodes[i].Rect.Intersects(on.Nodes[j].Rect) {
				pairs++
				if len(seen) < SampleSize {
					seen = append(seen, on.Nodes[i].Tag+"/"+on.Nodes[j].Tag)
				}
			}
		}
	}
	if pairs == 0 {
		return nil, nil
	}
	return b.report(model.KindTextOverlapMobile,
		fmt.Sprintf("Overlapping element pairs: %d (%s)", pairs, sample(seen)))
}
