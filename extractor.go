package pagemd

// ExtractResult holds the main content extracted from a full HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML with boilerplate
	// (nav, footer, sidebar, ads) removed.
	ContentHTML string
}

// Extractor extracts main content from full HTML pages. It is used in
// whole-page mode (no search term) and to measure how much readable
// content script execution actually added.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	Extract(html string) (*ExtractResult, error)
}
