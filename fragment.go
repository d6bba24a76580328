package pagemd

import (
	"fmt"
	"strings"
)

// Extraction methods recorded on fragments.
const (
	// MethodRadial marks fragments produced by radial search.
	MethodRadial = "radial"

	// MethodFullPage marks whole-page content extraction.
	MethodFullPage = "full-page"
)

// FragmentSeparator delimits fragment blocks in formatted output.
// The duplicate remover treats it as a section boundary.
const FragmentSeparator = "---"

// NoFragmentPlaceholder is emitted when radial search matches nothing.
// An empty result is a valid outcome, not an error.
const NoFragmentPlaceholder = "no fragment found"

// Fragment is one self-contained HTML subtree captured around a term
// match, paired with extraction metadata. Immutable once produced.
// Fragments from the same container are never merged or deduplicated
// against each other; provenance is one fragment per match.
type Fragment struct {
	// HTML is the serialized subtree with SVG children stripped.
	HTML string

	// Selector is a hint locating the fragment: the boundary element's
	// dot-joined class list if present, else its tag name.
	Selector string

	// Method is the extraction method that produced the fragment.
	Method string

	// Term is the search term the fragment was anchored on.
	Term string
}

// FragmentExtractor locates term matches in a document and extracts
// bounded ancestor fragments around each.
type FragmentExtractor interface {
	// ExtractFragments scans the document for text nodes containing term
	// (case-insensitive), then for each match ascends up to radiusLevels
	// ancestors, stopping early before the document's top-level body or
	// html container. One fragment is emitted per match.
	ExtractFragments(html, term string, radiusLevels int) ([]Fragment, error)
}

// FormatFragments renders fragments as delimited text blocks. Each
// block carries a header identifying the fragment followed by its body,
// which may be raw HTML or already-converted markdown; blocks are
// separated by FragmentSeparator lines. An empty slice yields the
// no-fragment placeholder.
func FormatFragments(frags []Fragment) string {
	if len(frags) == 0 {
		return NoFragmentPlaceholder
	}

	parts := make([]string, 0, len(frags))
	for i, f := range frags {
		header := fmt.Sprintf("FRAGMENT %d | SELECTOR: %s | METHOD: %s | TERM: %s", i+1, f.Selector, f.Method, f.Term)
		parts = append(parts, header+"\n\n"+f.HTML)
	}

	return strings.Join(parts, "\n\n"+FragmentSeparator+"\n\n")
}
