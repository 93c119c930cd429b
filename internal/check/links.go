package check

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/selimozcann/SiteHunter/internal/model"
	"github.com/selimozcann/SiteHunter/internal/session"
	"github.com/selimozcann/SiteHunter/internal/util"
)

func (b *battery) brokenLinks(ctx context.Context, s *session.Session) ([]model.Finding, error) {
	doc, err := document(ctx, s)
	if err != nil {
		return nil, err
	}
	links := doc.Links
	if len(links) > b.opts.Links {
		links = links[:b.opts.Links]
	}
	seen := make(map[string]struct{})
	var broken []string
	for _, l := range links {
		if !isHTTP(l.Href) {
			continue
		}
		if b.opts.SameSiteLinksOnly && !util.SameSite(l.Href, s.Target()) {
			continue
		}
		if _, ok := seen[l.Href]; ok {
			continue
		}
		seen[l.Href] = struct{}{}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if r := probe(ctx, s, l.Href); r.Failed() {
			broken = append(broken, fmt.Sprintf("%s (%s)", l.Href, r.Failure()))
		}
	}
	if len(broken) == 0 {
		return nil, nil
	}
	return b.report(model.KindBrokenLinks, "Broken links: "+sample(broken))
}

func (b *battery) missingThumbnails(ctx context.Context, s *session.Session) ([]model.Finding, error) {
	doc, err := document(ctx, s)
	if err != nil {
		return nil, err
	}
	images := doc.Images
	if len(images) > b.opts.Thumbnails {
		images = images[:b.opts.Thumbnails]
	}
	var missing []string
	for _, img := range images {
		if strings.TrimSpace(img.RawSrc) == "" {
			missing = append(missing, "empty-src")
			continue
		}
		if !isHTTP(img.Src) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if r := probe(ctx, s, img.Src); r.Failed() {
			missing = append(missing, fmt.Sprintf("%s (%s)", img.Src, r.Failure()))
		}
	}
	if len(missing) == 0 {
		return nil, nil
	}
	return b.report(model.KindMissingThumbnails, "Missing or failing thumbnails: "+sample(missing))
}

type imageLoads struct {
	Images []struct {
		Src          string  `json:"src"`
		NaturalWidth float64 `json:"naturalWidth"`
		Complete     bool    `json:"complete"`
	} `json:"images"`
}

func (b *battery) embeddedImages(ctx context.Context, s *session.Session) ([]model.Finding, error) {
	var il imageLoads
	if !s.Evaluate(ctx, b.embeddedScript(), &il) {
		return nil, inconclusive("image load state unavailable")
	}
	var failed []string
	for _, img := range il.Images {
		if img.Complete && img.NaturalWidth == 0 {
			src := img.Src
			if src == "" {
				src = "empty-src"
			}
			failed = append(failed, src)
		}
	}
	if len(failed) == 0 {
		return nil, nil
	}
	return b.report(model.KindEmbeddedImages, "Images failed to load: "+sample(failed))
}

// socialPlatforms maps registrable domains to the platform they belong to.
var socialPlatforms = map[string]string{
	"facebook.com":  "facebook",
	"twitter.com":   "twitter",
	"x.com":         "twitter",
	"instagram.com": "instagram",
	"linkedin.com":  "linkedin",
}

// socialPlatform classifies href, returning "" for non-social links.
func socialPlatform(href string) string {
	lower := strings.ToLower(href)
	if strings.HasPrefix(lower, "mailto:") {
		for domain, name := range socialPlatforms {
			if strings.Contains(lower, domain) {
				return name
			}
		}
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return socialPlatforms[util.ETLDPlusOne(u)]
}

func badSocialHref(href string) bool {
	lower := strings.ToLower(href)
	return strings.Contains(lower, "example.com") || strings.HasSuffix(lower, "#") || strings.HasPrefix(lower, "mailto:")
}

func (b *battery) socialLinks(ctx context.Context, s *session.Session) ([]model.Finding, error) {
	doc, err := document(ctx, s)
	if err != nil {
		return nil, err
	}
	var bad []string
	for _, l := range doc.Links {
		platform := socialPlatform(l.RawHref)
		if platform == "" {
			platform = socialPlatform(l.Href)
		}
		if platform == "" {
			continue
		}
		if badSocialHref(l.RawHref) || badSocialHref(l.Href) {
			bad = append(bad, fmt.Sprintf("%s: %s", platform, l.RawHref))
		}
	}
	if len(bad) == 0 {
		return nil, nil
	}
	return b.report(model.KindSocialLinks, "Social links with placeholder targets: "+sample(bad))
}

func (b *battery) readMore(ctx context.Context, s *session.Session) ([]model.Finding, error) {
	doc, err := document(ctx, s)
	if err != nil {
		return nil, err
	}
	var bad []string
	checked := 0
	for _, l := range doc.Links {
		if checked >= b.opts.ReadMore {
			break
		}
		if !strings.Contains(strings.ToLower(l.Text), "read more") && !strings.Contains(strings.ToLower(l.Class), "read-more") {
			continue
		}
		checked++
		raw := strings.TrimSpace(l.RawHref)
		if raw == "" || raw == "#" {
			bad = append(bad, fmt.Sprintf("%q (missing href)", l.Text))
			continue
		}
		if !isHTTP(l.Href) {
			continue
		}
		if r := probe(ctx, s, l.Href); r.Failed() {
			bad = append(bad, fmt.Sprintf("%s (%s)", l.Href, r.Failure()))
		}
	}
	if len(bad) == 0 {
		return nil, nil
	}
	return b.report(model.KindReadMoreIssue,
		"Some 'Read More' links are missing href or return error: "+sample(bad))
}

func (b *battery) twitterRedirect(ctx context.Context, s *session.Session) ([]model.Finding, error) {
	doc, err := document(ctx, s)
	if err != nil {
		return nil, err
	}
	var hits []string
	seen := make(map[string]struct{})
	for _, l := range doc.Links {
		u, err := url.Parse(l.Href)
		if err != nil || util.ETLDPlusOne(u) != "x.com" {
			continue
		}
		if strings.Contains(strings.ToLower(l.Href), "twitter.com") {
			continue
		}
		if _, ok := seen[l.Href]; ok {
			continue
		}
		seen[l.Href] = struct{}{}
		hits = append(hits, l.Href)
	}
	if len(hits) == 0 {
		return nil, nil
	}
	return b.report(model.KindTwitterRedirect, "Twitter links point to x.com: "+sample(hits))
}
