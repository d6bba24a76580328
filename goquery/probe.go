// Package goquery provides goquery-based implementations of the pagemd
// document interfaces: the rendering probe, the radial fragment
// extractor, the link collector, and the structural cleaner.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagemd"
)

// DefaultMinRepeat is the minimum number of repeated card-like elements
// a complete listing page is expected to carry.
const DefaultMinRepeat = 2

// Hosts that serve placeholder images. Their presence means the real
// images have not been swapped in yet.
var placeholderHosts = []string{
	"via.placeholder.com",
	"placehold.co",
	"placehold.it",
	"placeholder.com",
	"dummyimage.com",
	"placekitten.com",
}

// Markers in body markup that indicate skeleton screens.
var skeletonMarkers = []string{
	"skeleton",
	"placeholder",
}

// Class-name substrings of repeating "card" containers on listing pages.
var cardClassPatterns = []string{
	"card",
	"listing",
	"product",
	"result-item",
	"search-result",
	"tile",
	"offer",
}

// Ensure Probe implements pagemd.RenderProber at compile time.
var _ pagemd.RenderProber = (*Probe)(nil)

// Probe decides from raw HTML whether a page likely needs script
// execution before its real content exists. The heuristic is coarse by
// design: any one signal (placeholder image hosts, skeleton markers,
// too few repeated cards) triggers rendering. False positives and
// negatives are accepted.
type Probe struct {
	minRepeat int
}

// ProbeOption configures a Probe.
type ProbeOption func(*Probe)

// WithMinRepeat sets the repeated-card threshold.
// Defaults to DefaultMinRepeat (2) if not specified.
func WithMinRepeat(n int) ProbeOption {
	return func(p *Probe) {
		p.minRepeat = n
	}
}

// NewProbe creates a new Probe.
func NewProbe(opts ...ProbeOption) *Probe {
	p := &Probe{minRepeat: DefaultMinRepeat}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NeedsRendering reports whether the page looks incomplete without
// JavaScript. It is a pure function of the HTML input.
func (p *Probe) NeedsRendering(html string) bool {
	lower := strings.ToLower(html)

	for _, host := range placeholderHosts {
		if strings.Contains(lower, host) {
			return true
		}
	}

	for _, marker := range skeletonMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}

	return p.cardCount(html) < p.minRepeat
}

// cardCount counts elements whose class attribute matches a known
// repeating-card pattern.
func (p *Probe) cardCount(html string) int {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return 0 // Unparseable pages count as incomplete.
	}

	count := 0
	doc.Find("[class]").Each(func(_ int, s *goquery.Selection) {
		class, _ := s.Attr("class")
		class = strings.ToLower(class)
		for _, pattern := range cardClassPatterns {
			if strings.Contains(class, pattern) {
				count++
				return
			}
		}
	})
	return count
}
