package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagemd"
	"golang.org/x/net/html"
)

// Elements dropped entirely before markdown conversion.
var boilerplateSelectors = []string{
	"nav",
	"footer",
	"script",
	"style",
	"noscript",
	"iframe",
}

// Utility and visually-hidden class names whose elements carry no
// readable content.
var utilityClassNames = []string{
	"sr-only",
	"visually-hidden",
	"screen-reader",
	"skip-link",
	"cookie-banner",
	"cookie-consent",
	"modal",
	"popup",
	"tooltip",
}

// Inline emphasis elements collapsed to their trimmed text.
var emphasisTags = []string{"b", "strong", "i", "em", "u", "mark"}

var _ pagemd.Cleaner = (*Cleaner)(nil)

// Cleaner removes structural boilerplate from HTML before markdown
// conversion: nav/footer elements, utility-class elements, and inline
// emphasis wrappers (collapsed to their trimmed text plus one trailing
// space so word boundaries survive).
type Cleaner struct{}

// NewCleaner creates a new Cleaner.
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// Clean returns the HTML with boilerplate removed.
func (c *Cleaner) Clean(rawHTML string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", err
	}

	for _, sel := range boilerplateSelectors {
		doc.Find(sel).Remove()
	}

	for _, class := range utilityClassNames {
		doc.Find("[class*='" + class + "']").Remove()
	}

	for _, tag := range emphasisTags {
		doc.Find(tag).Each(func(_ int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			s.ReplaceWithNodes(&html.Node{
				Type: html.TextNode,
				Data: text + " ",
			})
		})
	}

	return doc.Html()
}
