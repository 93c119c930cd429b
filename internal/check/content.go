package check

import (
	"context"
	"fmt"
	"strings"

	"github.com/selimozcann/SiteHunter/internal/model"
	"github.com/selimozcann/SiteHunter/internal/session"
)

// headlineTokens are draft markers that should never reach a live headline.
var headlineTokens = []string{"INSERT", "TODO", "TBD"}

func (b *battery) headlinePlaceholder(ctx context.Context, s *session.Session) ([]model.Finding, error) {
	doc, err := document(ctx, s)
	if err != nil {
		return nil, err
	}
	var hits []string
	checked := 0
	for _, h := range doc.Headings {
		if h.Level > 3 {
			continue
		}
		if checked >= b.opts.Headings {
			break
		}
		checked++
		for _, tok := range headlineTokens {
			if strings.Contains(h.Text, tok) {
				hits = append(hits, fmt.Sprintf("h%d %q", h.Level, truncate(h.Text, 80)))
				break
			}
		}
	}
	if len(hits) == 0 {
		return nil, nil
	}
	return b.report(model.KindHeadlinePlaceholder, "Placeholder tokens in headlines: "+sample(hits))
}

func (b *battery) placeholderText(ctx context.Context, s *session.Session) ([]model.Finding, error) {
	doc, err := document(ctx, s)
	if err != nil {
		return nil, err
	}
	var hits []string
	for _, t := range doc.Texts {
		if !strings.Contains(t, "INSERT") {
			continue
		}
		hits = append(hits, fmt.Sprintf("%q", truncate(t, 80)))
		if len(hits) >= b.opts.Placeholders {
			break
		}
	}
	if len(hits) == 0 {
		return nil, nil
	}
	return b.report(model.KindPlaceholderText, "Placeholder text found: "+sample(hits))
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
