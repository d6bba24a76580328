package pagemd

// LinkTarget is an absolute URL classified as a content link (not an
// asset, image, mailto, in-page anchor, or script link).
type LinkTarget struct {
	// URL is the absolute URL after resolution against the page base.
	URL string

	// Text is the link's visible text, if any.
	Text string

	// Source records where the link was found: "anchor" for hyperlink
	// elements, "markdown" for markdown-style links already present in
	// partially-converted text.
	Source string
}

// LinkCollector discovers outbound content links in HTML or in
// partially-converted markdown text.
type LinkCollector interface {
	// CollectLinks returns content links in discovery order, with
	// relative URLs resolved against baseURL. Unresolvable, empty,
	// javascript:, mailto:, fragment-only and asset links are dropped.
	// Duplicate URLs keep their first occurrence.
	CollectLinks(text, baseURL string) ([]LinkTarget, error)
}
