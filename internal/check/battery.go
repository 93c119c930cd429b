package check

import (
	"context"
	"fmt"
	"strings"

	"github.com/selimozcann/SiteHunter/internal/htmlscan"
	"github.com/selimozcann/SiteHunter/internal/httpclient"
	"github.com/selimozcann/SiteHunter/internal/model"
	"github.com/selimozcann/SiteHunter/internal/session"
)

// battery carries the options and report text shared by the stock checks.
type battery struct {
	opts Options
	meta map[model.Kind]Meta
	sev  map[model.Kind]model.Severity
}

func newBattery(opts Options) *battery {
	opts = opts.withDefaults()
	return &battery{opts: opts, meta: catalog(opts), sev: make(map[model.Kind]model.Severity)}
}

type entry struct {
	kind      model.Kind
	fn        Func
	navigates bool
}

func (b *battery) entries() []entry {
	return []entry{
		{model.KindHeaderOverlap, b.headerOverlap, false},
		{model.KindColorConsistency, b.colorConsistency, false},
		{model.KindTextContrast, b.textContrast, false},
		{model.KindSpacing, b.spacing, false},
		{model.KindTypographyHierarchy, b.typographyHierarchy, false},
		{model.KindResponsiveBreak, b.responsiveBreak, false},
		{model.KindBrokenLinks, b.brokenLinks, false},
		{model.KindMissingThumbnails, b.missingThumbnails, false},
		{model.KindEmbeddedImages, b.embeddedImages, false},
		{model.KindHeadlinePlaceholder, b.headlinePlaceholder, false},
		{model.KindSearchNotWorking, b.search, true},
		{model.KindSocialLinks, b.socialLinks, false},
		{model.KindReadMoreIssue, b.readMore, false},
		{model.KindPaginationIssue, b.pagination, true},
		{model.KindMenuCollapse, b.menuCollapse, false},
		{model.KindImageResizeMobile, b.imageResizeMobile, false},
		{model.KindHorizontalScroll, b.horizontalScroll, false},
		{model.KindConsoleErrors, b.consoleErrors, false},
		{model.KindJSBlocking, b.jsBlocking, false},
		{model.KindFooterStack, b.footerStack, false},
		{model.KindFontSizeMobile, b.fontSizeMobile, false},
		{model.KindHomepageLoad, b.homepageLoad, false},
		{model.KindUnoptimizedImages, b.unoptimizedImages, false},
		{model.KindPlaceholderText, b.placeholderText, false},
		{model.KindTwitterRedirect, b.twitterRedirect, false},
		{model.KindTextOverlapMobile, b.textOverlapMobile, false},
	}
}

// Default returns the stock battery in execution order.
func Default(opts Options) ([]Definition, error) {
	b := newBattery(opts)
	entries := b.entries()
	defs := make([]Definition, 0, len(entries))
	for i, e := range entries {
		d, err := Define(i+1, New(e.kind, e.fn), b.meta[e.kind], e.navigates)
		if err != nil {
			return nil, err
		}
		b.sev[e.kind] = d.Severity
		defs = append(defs, d)
	}
	if err := b.covers(model.Kinds()); err != nil {
		return nil, err
	}
	return defs, nil
}

// covers reports the first of kinds that no battery entry checks.
func (b *battery) covers(kinds []model.Kind) error {
	for _, k := range kinds {
		if _, ok := b.sev[k]; !ok {
			return fmt.Errorf("%w: %q", ErrUncoveredKind, k)
		}
	}
	return nil
}

func (b *battery) report(kind model.Kind, actual string) ([]model.Finding, error) {
	return b.reportTitled(kind, "", actual)
}

func (b *battery) reportTitled(kind model.Kind, title, actual string) ([]model.Finding, error) {
	sev, ok := b.sev[kind]
	if !ok {
		sev, _ = kind.Severity()
	}
	f, err := finding(kind, sev, b.meta[kind], title, actual)
	if err != nil {
		return nil, err
	}
	return []model.Finding{f}, nil
}

// document snapshots the DOM, mapping failure to an inconclusive result.
func document(ctx context.Context, s *session.Session) (*htmlscan.Document, error) {
	doc, err := s.Document(ctx)
	if err != nil {
		return nil, inconclusive("page markup unavailable: %v", err)
	}
	return doc, nil
}

// probe issues a HEAD and falls back to GET when HEAD fails or is refused.
func probe(ctx context.Context, s *session.Session, url string) httpclient.Result {
	r := s.Head(ctx, url)
	if r.Err != nil || r.Status == 405 || r.Status == 501 {
		return s.Get(ctx, url)
	}
	return r
}

// sample joins up to SampleSize items, noting how many were left out.
func sample(items []string) string {
	if len(items) <= SampleSize {
		return strings.Join(items, "; ")
	}
	return fmt.Sprintf("%s; (+%d more)", strings.Join(items[:SampleSize], "; "), len(items)-SampleSize)
}

func isHTTP(u string) bool {
	return strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")
}
