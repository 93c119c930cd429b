package check

import "time"

// Heuristic thresholds shared by the battery.
const (
	// MinContrastRatio is the WCAG AA minimum for body text.
	MinContrastRatio = 4.5
	// OverflowTolerancePx absorbs sub-pixel rounding and scrollbars.
	OverflowTolerancePx = 5
	// MinMobileFontPx is the smallest paragraph size readable without zoom.
	MinMobileFontPx = 13.5
	// MaxImageBytes is the size above which an image counts as unoptimized.
	MaxImageBytes = 200000
	// LongTaskMs is the main-thread long task threshold.
	LongTaskMs = 50
	// MaxNavigationMs is the fallback load budget when long tasks are unobservable.
	MaxNavigationMs = 3000
	// MaxHomepageLoad is the homepage load budget.
	MaxHomepageLoad = 3 * time.Second
	// A gap deviates when |gap-mean| > SpacingFactor*mean + SpacingPadPx.
	SpacingFactor = 1.5
	SpacingPadPx  = 5
	// MaxPrimaryColors is how many distinct button/link colours are tolerated.
	MaxPrimaryColors = 2
	// CollapsedNavRatio is the widest a nav may be, relative to the viewport,
	// when there is no menu toggle.
	CollapsedNavRatio = 0.8
	// PaginationMaxClicks bounds how far the pagination check walks.
	PaginationMaxClicks = 6
	// FooterSample is how many footer children are measured.
	FooterSample = 6
	// SampleSize is how many offending items a finding lists.
	SampleSize = 6
)
