package check

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/selimozcann/SiteHunter/internal/model"
	"github.com/selimozcann/SiteHunter/internal/session"
)

type headerLayout struct {
	Header   *session.Rect  `json:"header"`
	Logo     *session.Rect  `json:"logo"`
	Menu     *session.Rect  `json:"menu"`
	Children []session.Rect `json:"children"`
}

func (b *battery) headerOverlap(ctx context.Context, s *session.Session) ([]model.Finding, error) {
	s.SetViewport(ctx, b.opts.Desktop)
	var hl headerLayout
	if !s.Evaluate(ctx, headerJS, &hl) {
		return nil, inconclusive("header layout unavailable")
	}
	if hl.Header == nil || hl.Logo == nil {
		return b.reportTitled(model.KindHeaderOverlap, "Header or logo element not found",
			"Header or logo element couldn't be detected; manual check needed")
	}
	logo := *hl.Logo
	if hl.Menu != nil {
		if hl.Menu.Intersects(logo) {
			return b.report(model.KindHeaderOverlap, fmt.Sprintf(
				"Menu box (x=%.0f, w=%.0f) overlaps logo box (x=%.0f, w=%.0f)",
				hl.Menu.X, hl.Menu.Width, logo.X, logo.Width))
		}
		return nil, nil
	}
	for _, c := range hl.Children {
		if c.Intersects(logo) {
			return b.report(model.KindHeaderOverlap, fmt.Sprintf(
				"Header element at (x=%.0f, y=%.0f) overlaps logo box ending at x=%.0f, y=%.0f",
				c.X, c.Y, logo.Right(), logo.Bottom()))
		}
	}
	return nil, nil
}

type uiColors struct {
	Buttons []string `json:"buttons"`
	Links   []string `json:"links"`
}

func (b *battery) colorConsistency(ctx context.Context, s *session.Session) ([]model.Finding, error) {
	var c uiColors
	if !s.Evaluate(ctx, colorJS, &c) {
		return nil, inconclusive("computed colors unavailable")
	}
	seen := make(map[string]struct{})
	var distinct []string
	for _, col := range append(c.Buttons, c.Links...) {
		col = strings.TrimSpace(col)
		if col == "" {
			continue
		}
		if _, ok := seen[col]; ok {
			continue
		}
		seen[col] = struct{}{}
		distinct = append(distinct, col)
	}
	if len(distinct) <= MaxPrimaryColors {
		return nil, nil
	}
	return b.report(model.KindColorConsistency, "Multiple primary colors detected: "+sample(distinct))
}

type colorPairs struct {
	Pairs []struct {
		FG string `json:"fg"`
		BG string `json:"bg"`
	} `json:"pairs"`
}

func (b *battery) textContrast(ctx context.Context, s *session.Session) ([]model.Finding, error) {
	var cp colorPairs
	if !s.Evaluate(ctx, b.contrastScript(), &cp) {
		return nil, inconclusive("paragraph colors unavailable")
	}
	var low []string
	for _, p := range cp.Pairs {
		fg, err := ParseColor(p.FG)
		if err != nil {
			continue
		}
		bg, err := ParseColor(p.BG)
		if err != nil {
			continue
		}
		if r := ContrastRatio(fg, bg); r < MinContrastRatio {
			low = append(low, fmt.Sprintf("%s on %s (%.2f:1)", p.FG, p.BG, r))
		}
	}
	if len(low) == 0 {
		return nil, nil
	}
	return b.report(model.KindTextContrast, "Low contrast pairs: "+sample(low))
}

type sectionBoxes struct {
	Sections []struct {
		Y      float64 `json:"y"`
		Height float64 `json:"height"`
	} `json:"sections"`
}

func (b *battery) spacing(ctx context.Context, s *session.Session) ([]model.Finding, error) {
	var sb sectionBoxes
	if !s.Evaluate(ctx, spacingJS, &sb) {
		return nil, inconclusive("section positions unavailable")
	}
	if len(sb.Sections) < 3 {
		return nil, nil
	}
	gaps := make([]float64, 0, len(sb.Sections)-1)
	for i := 1; i < len(sb.Sections); i++ {
		prev := sb.Sections[i-1]
		gaps = append(gaps, sb.Sections[i].Y-(prev.Y+prev.Height))
	}
	if deviant, mean, ok := unevenGap(gaps); ok {
		return b.report(model.KindSpacing, fmt.Sprintf("Gap of %.0fpx deviates from the mean gap of %.1fpx", deviant, mean))
	}
	return nil, nil
}

// unevenGap returns the first gap deviating from the mean by more than
// SpacingFactor*mean + SpacingPadPx.
func unevenGap(gaps []float64) (gap, mean float64, ok bool) {
	if len(gaps) == 0 {
		return 0, 0, false
	}
	for _, g := range gaps {
		mean += g
	}
	mean /= float64(len(gaps))
	for _, g := range gaps {
		if math.Abs(g-mean) > mean*SpacingFactor+SpacingPadPx {
			return g, mean, true
		}
	}
	return 0, mean, false
}

type fontSizes struct {
	H1 []string `json:"h1"`
	H2 []string `json:"h2"`
	P  []string `json:"p"`
}

func (b *battery) typographyHierarchy(ctx context.Context, s *session.Session) ([]model.Finding, error) {
	var fs fontSizes
	if !s.Evaluate(ctx, typographyJS, &fs) {
		return nil, inconclusive("font sizes unavailable")
	}
	h1, ok1 := meanPx(fs.H1)
	h2, ok2 := meanPx(fs.H2)
	if !ok1 || !ok2 || h1 > h2 {
		return nil, nil
	}
	return b.report(model.KindTypographyHierarchy,
		fmt.Sprintf("H1 sizes are not larger than H2 sizes (mean H1 %.1fpx, mean H2 %.1fpx)", h1, h2))
}

func meanPx(values []string) (float64, bool) {
	var sum float64
	var n int
	for _, v := range values {
		if px, ok := ParsePx(v); ok {
			sum += px
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
