package check

import (
	"context"
	"strings"

	"github.com/selimozcann/SiteHunter/internal/model"
	"github.com/selimozcann/SiteHunter/internal/session"
)

// Interactive checks. Both may leave the page they started on; the runner
// restores the target afterwards.

type searchControls struct {
	Input  bool `json:"input"`
	Button bool `json:"button"`
}

type searchResults struct {
	Found bool `json:"found"`
}

func (b *battery) search(ctx context.Context, s *session.Session) ([]model.Finding, error) {
	var sc searchControls
	if !s.Evaluate(ctx, searchJS, &sc) {
		return nil, inconclusive("search controls unavailable")
	}
	if !sc.Input || !sc.Button {
		return b.reportTitled(model.KindSearchNotWorking, "Search elements not found",
			"Search input/button not detected on page")
	}
	if err := s.Fill(ctx, searchInputSel, b.opts.SearchTerm); err != nil {
		return b.reportTitled(model.KindSearchNotWorking, "Search button error",
			"Error interacting with search: "+err.Error())
	}
	if err := s.Click(ctx, searchButtonSel); err != nil {
		return b.reportTitled(model.KindSearchNotWorking, "Search button error",
			"Error interacting with search: "+err.Error())
	}
	s.Settle(ctx)

	if loc, err := s.Location(ctx); err == nil && strings.Contains(strings.ToLower(loc), "search") {
		return nil, nil
	}
	var sr searchResults
	if !s.Evaluate(ctx, searchResultsJS, &sr) {
		return nil, inconclusive("search results unavailable")
	}
	if sr.Found {
		return nil, nil
	}
	return b.report(model.KindSearchNotWorking, "Search action did not produce results or navigate to results page")
}

type nextButton struct {
	Present  bool   `json:"present"`
	Visible  bool   `json:"visible"`
	Disabled bool   `json:"disabled"`
	Href     string `json:"href"`
}

// pagination walks Next up to PaginationMaxClicks times. Next is broken when a
// click leaves both the location and its own href unchanged while it stays
// visible and enabled.
func (b *battery) pagination(ctx context.Context, s *session.Session) ([]model.Finding, error) {
	for i := 0; i < PaginationMaxClicks; i++ {
		var before nextButton
		if !s.Evaluate(ctx, paginationJS, &before) {
			return nil, inconclusive("pagination controls unavailable")
		}
		if !before.Present || !before.Visible || before.Disabled {
			return nil, nil
		}
		locBefore, _ := s.Location(ctx)
		if err := s.Click(ctx, paginationNextSel); err != nil {
			return nil, inconclusive("pagination click failed: %v", err)
		}
		s.Settle(ctx)
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var after nextButton
		if !s.Evaluate(ctx, paginationJS, &after) {
			return nil, inconclusive("pagination controls unavailable after click")
		}
		if !after.Present || !after.Visible || after.Disabled {
			return nil, nil
		}
		locAfter, _ := s.Location(ctx)
		if locAfter == locBefore && after.Href == before.Href {
			return b.report(model.KindPaginationIssue, "Next button remains visible/enabled on last page")
		}
	}
	return nil, nil
}
