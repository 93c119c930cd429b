package check

import "github.com/selimozcann/SiteHunter/internal/session"

// Options tunes the battery. Zero values take defaults.
type Options struct {
	Desktop session.Viewport
	Mobile  session.Viewport

	// Sample caps bound per-check work on large pages.
	Links          int
	Thumbnails     int
	EmbeddedImages int
	ResizeImages   int
	LargeImages    int
	ReadMore       int
	Headings       int
	OverlapNodes   int
	Placeholders   int
	Paragraphs     int

	// SameSiteLinksOnly skips off-site anchors in the broken link probe.
	SameSiteLinksOnly bool
	SearchTerm        string
}

// DefaultOptions returns the stock battery settings.
func DefaultOptions() Options {
	return Options{
		Desktop:        session.Desktop,
		Mobile:         session.Mobile,
		Links:          120,
		Thumbnails:     120,
		EmbeddedImages: 60,
		ResizeImages:   60,
		LargeImages:    60,
		ReadMore:       8,
		Headings:       60,
		OverlapNodes:   80,
		Placeholders:   10,
		Paragraphs:     10,
		SearchTerm:     "test",
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Desktop.IsZero() {
		o.Desktop = d.Desktop
	}
	if o.Mobile.IsZero() {
		o.Mobile = d.Mobile
	}
	fill := func(v *int, def int) {
		if *v <= 0 {
			*v = def
		}
	}
	fill(&o.Links, d.Links)
	fill(&o.Thumbnails, d.Thumbnails)
	fill(&o.EmbeddedImages, d.EmbeddedImages)
	fill(&o.ResizeImages, d.ResizeImages)
	fill(&o.LargeImages, d.LargeImages)
	fill(&o.ReadMore, d.ReadMore)
	fill(&o.Headings, d.Headings)
	fill(&o.OverlapNodes, d.OverlapNodes)
	fill(&o.Placeholders, d.Placeholders)
	fill(&o.Paragraphs, d.Paragraphs)
	if o.SearchTerm == "" {
		o.SearchTerm = d.SearchTerm
	}
	return o
}
