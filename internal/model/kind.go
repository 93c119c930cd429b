package model

// Kind names the category of defect a check looks for.
type Kind string

const (
	KindHeaderOverlap       Kind = "header_overlap"
	KindColorConsistency    Kind = "color_consistency"
	KindTextContrast        Kind = "text_contrast"
	KindSpacing             Kind = "spacing"
	KindTypographyHierarchy Kind = "typography_hierarchy"
	KindResponsiveBreak     Kind = "responsive_break"
	KindBrokenLinks         Kind = "broken_links"
	KindMissingThumbnails   Kind = "missing_thumbnails"
	KindEmbeddedImages      Kind = "embedded_images"
	KindHeadlinePlaceholder Kind = "headline_placeholder"
	KindSearchNotWorking    Kind = "search_not_working"
	KindSocialLinks         Kind = "social_links"
	KindReadMoreIssue       Kind = "read_more_issue"
	KindPaginationIssue     Kind = "pagination_issue"
	KindMenuCollapse        Kind = "menu_collapse"
	KindImageResizeMobile   Kind = "image_resize_mobile"
	KindHorizontalScroll    Kind = "horizontal_scroll"
	KindConsoleErrors       Kind = "console_errors"
	KindJSBlocking          Kind = "js_blocking"
	KindFooterStack         Kind = "footer_stack"
	KindFontSizeMobile      Kind = "font_size_mobile"
	KindHomepageLoad        Kind = "homepage_load"
	KindUnoptimizedImages   Kind = "unoptimized_images"
	KindPlaceholderText     Kind = "placeholder_text"
	KindTwitterRedirect     Kind = "twitter_redirect"
	KindTextOverlapMobile   Kind = "text_overlap_mobile"
)

var kindSeverity = map[Kind]Severity{
	KindHeaderOverlap:       SeverityHigh,
	KindColorConsistency:    SeverityMedium,
	KindTextContrast:        SeverityHigh,
	KindSpacing:             SeverityLow,
	KindTypographyHierarchy: SeverityMedium,
	KindResponsiveBreak:     SeverityHigh,
	KindBrokenLinks:         SeverityHigh,
	KindMissingThumbnails:   SeverityMedium,
	KindEmbeddedImages:      SeverityMedium,
	KindHeadlinePlaceholder: SeverityMedium,
	KindSearchNotWorking:    SeverityHigh,
	KindSocialLinks:         SeverityMedium,
	KindReadMoreIssue:       SeverityHigh,
	KindPaginationIssue:     SeverityMedium,
	KindMenuCollapse:        SeverityHigh,
	KindImageResizeMobile:   SeverityMedium,
	KindHorizontalScroll:    SeverityHigh,
	KindConsoleErrors:       SeverityHigh,
	KindJSBlocking:          SeverityMedium,
	KindFooterStack:         SeverityLow,
	KindFontSizeMobile:      SeverityMedium,
	KindHomepageLoad:        SeverityHigh,
	KindUnoptimizedImages:   SeverityMedium,
	KindPlaceholderText:     SeverityMedium,
	KindTwitterRedirect:     SeverityMedium,
	KindTextOverlapMobile:   SeverityHigh,
}

// Severity returns the fixed severity for k. ok is false for unknown kinds.
func (k Kind) Severity() (sev Severity, ok bool) {
	sev, ok = kindSeverity[k]
	return sev, ok
}

// Kinds returns every known kind.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kindSeverity))
	for k := range kindSeverity {
		out = append(out, k)
	}
	return out
}
