package check

import (
	"fmt"

	"github.com/selimozcann/SiteHunter/internal/model"
)

// catalog returns the report text for each kind, bound to the configured
// viewports.
func catalog(o Options) map[model.Kind]Meta {
	desktopEnv := fmt.Sprintf("Chrome, %s", o.Desktop)
	mobileEnv := fmt.Sprintf("Mobile %s", o.Mobile)

	return map[model.Kind]Meta{
		model.KindHeaderOverlap: {
			Name: "Header overlap", ID: "001", Title: "Header overlaps logo on desktop",
			Steps: []string{
				fmt.Sprintf("Open the homepage at desktop resolution (%s).", o.Desktop),
				"Inspect the header, menu and logo positions.",
			},
			Expected:    "Header and menu are aligned without overlapping the logo.",
			Screenshot:  "001_HeaderOverlap.png",
			Environment: desktopEnv,
		},
		model.KindColorConsistency: {
			Name: "Color consistency", ID: "002", Title: "Inconsistent color scheme across UI",
			Steps:      []string{"Open the homepage.", "Collect colors of primary buttons and links."},
			Expected:   "Buttons and primary links share the brand color.",
			Screenshot: "002_ColorMismatch.png",
		},
		model.KindTextContrast: {
			Name: "Text contrast", ID: "003", Title: "Poor text contrast on light background",
			Steps:      []string{"Inspect text and background colors of article paragraphs."},
			Expected:   fmt.Sprintf("Text is readable with a contrast ratio of at least %.1f:1 (WCAG AA).", MinContrastRatio),
			Screenshot: "003_TextContrast.png",
		},
		model.KindSpacing: {
			Name: "Spacing", ID: "004", Title: "Uneven spacing between sections",
			Steps:      []string{"Scroll through the homepage.", "Measure vertical gaps between the sections of the main content."},
			Expected:   "Consistent spacing between sections.",
			Screenshot: "004_SectionSpacing.png",
		},
		model.KindTypographyHierarchy: {
			Name: "Typography", ID: "005", Title: "Incorrect typography hierarchy",
			Steps:      []string{"Inspect H1, H2 and paragraph font sizes."},
			Expected:   "H1 > H2 > body text sizes.",
			Screenshot: "005_Typography.png",
		},
		model.KindResponsiveBreak: {
			Name: "Responsive layout", ID: "006", Title: "Responsive layout breaks on mobile",
			Steps: []string{
				fmt.Sprintf("Open the site at a mobile viewport (%s).", o.Mobile),
				"Inspect the width of major layout sections.",
			},
			Expected:    "Layout adapts to small screens.",
			Screenshot:  "006_Responsive.png",
			Environment: mobileEnv,
		},
		model.KindBrokenLinks: {
			Name: "Broken links", ID: "007", Title: "Broken navigation links",
			Steps:      []string{"Collect links from navigation and article lists.", "Request each link and record the HTTP status."},
			Expected:   "All links return a successful response.",
			Screenshot: "007_BrokenLinks.png",
		},
		model.KindMissingThumbnails: {
			Name: "Thumbnail", ID: "008", Title: "Missing article thumbnails",
			Steps:      []string{"Inspect article list thumbnails on the homepage."},
			Expected:   "Thumbnails display from a valid source.",
			Screenshot: "008_Thumbnails.png",
		},
		model.KindEmbeddedImages: {
			Name: "Embedded image", ID: "009", Title: "Embedded images not loading",
			Steps:      []string{"Open the page and check whether images finished loading (naturalWidth > 0)."},
			Expected:   "Images load fully.",
			Screenshot: "009_ImagesMissing.png",
		},
		model.KindHeadlinePlaceholder: {
			Name: "Headline placeholder", ID: "010", Title: "Spelling/placeholder found in headlines",
			Steps:      []string{"Scan headlines for placeholder tokens."},
			Expected:   "No placeholder or draft text in headlines.",
			Screenshot: "010_Grammar.png",
		},
		model.KindSearchNotWorking: {
			Name: "Search", ID: "011", Title: "Search button not working",
			Steps:      []string{"Enter a common keyword into the search field.", "Click the search button."},
			Expected:   "Search returns results or opens a results page.",
			Screenshot: "011_SearchButton.png",
		},
		model.KindSocialLinks: {
			Name: "Social link", ID: "012", Title: "Incorrect social media links",
			Steps:      []string{"Inspect social icons in the header and footer.", "Check the domain each href points to."},
			Expected:   "Social icons link to the official pages.",
			Screenshot: "012_SocialLinks.png",
		},
		model.KindReadMoreIssue: {
			Name: "Read more", ID: "013", Title: "Read More button navigation issue",
			Steps:      []string{"Click 'Read More' on news cards.", "Confirm the full article opens."},
			Expected:   "Read More navigates to the full article page.",
			Screenshot: "013_ReadMore.png",
		},
		model.KindPaginationIssue: {
			Name: "Pagination", ID: "014", Title: "Pagination Next button visible on last page",
			Steps:      []string{"Use the pagination Next button on article lists.", "Check its behavior on the last page."},
			Expected:   "Next is hidden or disabled on the last page.",
			Screenshot: "014_Pagination.png",
		},
		model.KindMenuCollapse: {
			Name: "Header menu mobile", ID: "015", Title: "Header menu not collapsing on mobile",
			Steps: []string{
				fmt.Sprintf("Open the site at a mobile viewport (%s).", o.Mobile),
				"Open the header menu.",
			},
			Expected:    "Header collapses to a hamburger menu on mobile.",
			Screenshot:  "015_HeaderMenu.png",
			Environment: mobileEnv,
		},
		model.KindImageResizeMobile: {
			Name: "Image resize mobile", ID: "016", Title: "Images not resizing on mobile",
			Steps:       []string{"Open image-rich pages on mobile.", "Compare image widths with the viewport."},
			Expected:    "Images scale to fit the screen width.",
			Screenshot:  "016_ImageResize.png",
			Environment: mobileEnv,
		},
		model.KindHorizontalScroll: {
			Name: "Horizontal scroll", ID: "017", Title: "Horizontal scrolling required on mobile",
			Steps:       []string{"On a mobile viewport, compare the document scroll width with the viewport width."},
			Expected:    "No horizontal scrolling required.",
			Screenshot:  "017_HorizontalScroll.png",
			Environment: mobileEnv,
		},
		model.KindConsoleErrors: {
			Name: "Console log", ID: "018", Title: "Console errors logged",
			Steps:      []string{"Open the browser console.", "Look for JavaScript errors."},
			Expected:   "No JavaScript console errors.",
			Screenshot: "018_ConsoleErrors.png",
		},
		model.KindJSBlocking: {
			Name: "JS blocking", ID: "019", Title: "JS blocking main-thread rendering",
			Steps:      []string{"Inspect performance entries for long main-thread tasks."},
			Expected:   "No long main-thread tasks delaying the initial load.",
			Screenshot: "019_JSBlocking.png",
		},
		model.KindFooterStack: {
			Name: "Footer stacking", ID: "020", Title: "Footer stacking issues on mobile",
			Steps:       []string{"Scroll to the footer on mobile.", "Check how footer columns stack."},
			Expected:    "Footer stacks correctly on mobile.",
			Screenshot:  "020_Footer.png",
			Environment: mobileEnv,
		},
		model.KindFontSizeMobile: {
			Name: "Font size", ID: "021", Title: "Font size on mobile too small",
			Steps:       []string{"Check the computed font size of paragraphs on a mobile viewport."},
			Expected:    "Text is readable without pinch-zoom (14px or more preferred).",
			Screenshot:  "021_FontSize.png",
			Environment: mobileEnv,
		},
		model.KindHomepageLoad: {
			Name: "Homepage load measurement", ID: "022", Title: "Homepage load performance slow",
			Steps:      []string{"Measure homepage load time with Navigation Timing."},
			Expected:   fmt.Sprintf("Homepage loads within %s.", MaxHomepageLoad),
			Screenshot: "022_HomepageLoad.png",
		},
		model.KindUnoptimizedImages: {
			Name: "Unoptimized images", ID: "023", Title: "Unoptimized images causing slow rendering",
			Steps:      []string{fmt.Sprintf("Detect image resources larger than %dKB on the page.", MaxImageBytes/1000)},
			Expected:   "Images are compressed and lazy-loaded where appropriate.",
			Screenshot: "023_UnoptimizedImages.png",
		},
		model.KindPlaceholderText: {
			Name: "Placeholder", ID: "024", Title: "Placeholder text visible in Privacy section",
			Steps:      []string{"Open the Privacy and Contact sections.", "Look for placeholder tokens such as 'INSERT'."},
			Expected:   "No placeholder text is visible on the live site.",
			Screenshot: "024_Placeholder.png",
		},
		model.KindTwitterRedirect: {
			Name: "Twitter link", ID: "025", Title: "Twitter icon redirects to x.com",
			Steps:      []string{"Inspect the Twitter icon href.", "Check which domain it points to."},
			Expected:   "Twitter icon links to the official twitter.com profile.",
			Screenshot: "025_TwitterLink.png",
		},
		model.KindTextOverlapMobile: {
			Name: "Text overlap detection", ID: "011b", Title: "Text overlap with interactive elements on mobile",
			Steps:       []string{"On mobile, compare bounding boxes of text, links, buttons and cards."},
			Expected:    "Text does not overlap interactive elements.",
			Screenshot:  "011b_TextOverlapMobile.png",
			Environment: mobileEnv,
		},
	}
}
