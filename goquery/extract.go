package goquery

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagemd"
	"golang.org/x/net/html"
)

// DefaultRadiusLevels is the default number of ancestor levels captured
// around a term match.
const DefaultRadiusLevels = 3

// Ensure Extractor implements pagemd.FragmentExtractor at compile time.
var _ pagemd.FragmentExtractor = (*Extractor)(nil)

// Extractor performs radial search: it locates text nodes matching a
// term and extracts a bounded ancestor fragment around each match.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractFragments scans the document for text nodes whose content
// contains term (case-insensitive), ascends up to radiusLevels
// ancestors from each match's parent element, and returns one fragment
// per match. The page's top-level body and html containers are never
// selected as a fragment boundary. SVG subtrees inside a fragment are
// emptied to bound output size. Matches in the same container produce
// separate, likely identical fragments; no merging is performed.
func (e *Extractor) ExtractFragments(rawHTML, term string, radiusLevels int) ([]pagemd.Fragment, error) {
	if strings.TrimSpace(term) == "" {
		return nil, pagemd.Errorf(pagemd.EINVALID, "search term required")
	}
	if radiusLevels <= 0 {
		radiusLevels = DefaultRadiusLevels
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, err
	}

	root := doc.Get(0)
	anchors := findAnchors(root, strings.ToLower(term))

	frags := make([]pagemd.Fragment, 0, len(anchors))
	for _, anchor := range anchors {
		boundary := ascend(anchor, radiusLevels)
		if boundary == nil {
			continue
		}
		stripSVG(boundary)
		snapshot, err := renderNode(boundary)
		if err != nil {
			return nil, err
		}
		frags = append(frags, pagemd.Fragment{
			HTML:     snapshot,
			Selector: selectorHint(boundary),
			Method:   pagemd.MethodRadial,
			Term:     term,
		})
	}

	return frags, nil
}

// findAnchors walks the tree depth-first and returns the parent element
// of every text node containing the lower-cased term. Script and style
// subtrees are skipped.
func findAnchors(n *html.Node, lowerTerm string) []*html.Node {
	var anchors []*html.Node

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode && strings.Contains(strings.ToLower(n.Data), lowerTerm) {
			if parent := elementParent(n); parent != nil {
				anchors = append(anchors, parent)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return anchors
}

// elementParent returns the nearest element ancestor of a text node.
func elementParent(n *html.Node) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			return p
		}
	}
	return nil
}

// ascend walks up to levels ancestors from start, stopping early when
// the next ancestor is the document's top-level body or html container.
// The widest allowed ancestor is the fragment boundary.
func ascend(start *html.Node, levels int) *html.Node {
	if isTopLevel(start) {
		return nil
	}
	node := start
	for i := 0; i < levels; i++ {
		next := node.Parent
		if next == nil || isTopLevel(next) {
			break
		}
		node = next
	}
	return node
}

func isTopLevel(n *html.Node) bool {
	if n.Type == html.DocumentNode {
		return true
	}
	return n.Type == html.ElementNode && (n.Data == "body" || n.Data == "html")
}

// stripSVG empties every SVG subtree within the fragment, keeping only
// a bare tag with its namespace attribute so the markup stays valid.
func stripSVG(n *html.Node) {
	if n.Type == html.ElementNode && n.Data == "svg" {
		for n.FirstChild != nil {
			n.RemoveChild(n.FirstChild)
		}
		var kept []html.Attribute
		for _, a := range n.Attr {
			if a.Key == "xmlns" {
				kept = append(kept, a)
			}
		}
		n.Attr = kept
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		stripSVG(c)
	}
}

// selectorHint describes the boundary element: its dot-joined class
// list if present, else its tag name.
func selectorHint(n *html.Node) string {
	for _, a := range n.Attr {
		if a.Key == "class" && strings.TrimSpace(a.Val) != "" {
			return strings.Join(strings.Fields(a.Val), ".")
		}
	}
	return n.Data
}

// renderNode serializes an html.Node subtree.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
