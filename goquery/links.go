package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagemd"
)

// Ensure Collector implements pagemd.LinkCollector at compile time.
var _ pagemd.LinkCollector = (*Collector)(nil)

// markdownLinkRe matches markdown-style links, capturing the optional
// image marker so image references can be skipped.
var markdownLinkRe = regexp.MustCompile(`(!?)\[([^\]]*)\]\(([^)\s]+)\)`)

// Extensions of asset targets that are never content links.
var assetExtensions = []string{
	".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg", ".ico", ".bmp",
	".avif", ".css", ".js", ".mjs", ".woff", ".woff2", ".ttf", ".mp4",
	".webm", ".mp3",
}

// Collector discovers outbound content links from hyperlink elements
// and from markdown-style links already present in partially-converted
// text.
type Collector struct{}

// NewCollector creates a new Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// CollectLinks returns content links in discovery order: hyperlink
// elements in document order first, then markdown-style matches in text
// order. Javascript/mailto/anchor/empty links and asset targets are
// dropped, relative URLs are resolved against baseURL, and duplicate
// URLs keep their first occurrence.
func (c *Collector) CollectLinks(text, baseURL string) ([]pagemd.LinkTarget, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, pagemd.Errorf(pagemd.EINVALID, "invalid base URL %q", baseURL)
	}

	seen := make(map[string]struct{})
	var links []pagemd.LinkTarget

	add := func(raw, label, source string) {
		resolved, ok := resolveContentLink(base, raw)
		if !ok {
			return
		}
		if _, dup := seen[resolved]; dup {
			return
		}
		seen[resolved] = struct{}{}
		links = append(links, pagemd.LinkTarget{
			URL:    resolved,
			Text:   strings.TrimSpace(label),
			Source: source,
		})
	}

	// Structural hyperlinks. Parse errors are tolerated because the
	// input may be partially-converted text rather than a document.
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(text)); err == nil {
		doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
			href, _ := s.Attr("href")
			add(href, s.Text(), "anchor")
		})
	}

	// Markdown-style links introduced by earlier conversion passes.
	for _, m := range markdownLinkRe.FindAllStringSubmatch(text, -1) {
		if m[1] == "!" {
			continue // Image reference.
		}
		add(m[3], m[2], "markdown")
	}

	return links, nil
}

// resolveContentLink resolves raw against base and reports whether the
// result is an absolute http(s) content URL.
func resolveContentLink(base *url.URL, raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "#") {
		return "", false
	}

	lower := strings.ToLower(raw)
	for _, scheme := range []string{"javascript:", "mailto:", "tel:", "data:"} {
		if strings.HasPrefix(lower, scheme) {
			return "", false
		}
	}

	ref, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", false
	}

	path := strings.ToLower(resolved.Path)
	for _, ext := range assetExtensions {
		if strings.HasSuffix(path, ext) {
			return "", false
		}
	}
	if strings.Contains(lower, "image/") {
		return "", false
	}

	// In-page anchors resolve to the page itself; drop the fragment so
	// they dedupe against the base document.
	resolved.Fragment = ""

	return resolved.String(), true
}
