package pagemd

// Converter converts an HTML fragment to structured markdown.
// Structural boilerplate removal (nav/footer, utility classes) happens
// before conversion; post-conversion text cleanup is applied separately
// via CleanupRules.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	Convert(html string) (string, error)
}

// Cleaner strips structural boilerplate from raw HTML before conversion.
type Cleaner interface {
	// Clean removes navigation, footers, scripts, hidden utility
	// elements, and inline emphasis wrappers, returning the cleaned HTML.
	Clean(rawHTML string) (string, error)
}
