package pagemd

import (
	"regexp"
	"strings"
)

// TransformRule is one named, pure text transform applied after markdown
// conversion. Rules are independent and order-sensitive; ApplyRules runs
// them in slice order.
type TransformRule struct {
	// Name identifies the rule in diagnostics.
	Name string

	// Apply performs the transform. It must be pure: same input, same
	// output, no side effects.
	Apply func(text string) string
}

// ApplyRules runs rules over text in order.
func ApplyRules(text string, rules []TransformRule) string {
	for _, r := range rules {
		text = r.Apply(text)
	}
	return text
}

// JSON key markers that identify embedded state blobs which survive
// markdown conversion as opaque text: framework hydration payloads,
// build metadata, and analytics configuration.
var stateBlobMarkers = []string{
	`"buildId"`,
	`"__N_SSG"`,
	`"__N_SSP"`,
	`"props":{"pageProps"`,
	`"runtimeConfig"`,
	`"gtmId"`,
	`"dataLayer"`,
	`"hydrate"`,
	`window.__INITIAL_STATE__`,
	`window.__NUXT__`,
	`self.__next_f`,
}

var (
	scriptBodyRe = regexp.MustCompile(`(?s)<script\b[^>]*>.*?</script>`)
	// Function-ish leftovers that markdown conversion sometimes keeps as
	// plain text when scripts were inlined without tags.
	inlineScriptRe = regexp.MustCompile(`(?m)^\s*(?:!?function\s*\(|\(function\s*\(|window\.\w+\s*=\s*window\.\w+\s*\|\|).*$`)
	blankRunRe     = regexp.MustCompile(`\n{3,}`)
)

// CleanupRules returns the ordered transform rules applied to converted
// markdown: state-blob stripping, script-body stripping, blank-line
// collapsing. Each rule is independently testable.
func CleanupRules() []TransformRule {
	return []TransformRule{
		{Name: "strip-state-blobs", Apply: stripStateBlobs},
		{Name: "strip-script-bodies", Apply: stripScriptBodies},
		{Name: "collapse-blank-lines", Apply: collapseBlankLines},
	}
}

// stripStateBlobs removes lines dominated by embedded JSON state,
// recognized by known key markers.
func stripStateBlobs(text string) string {
	lines := strings.Split(text, "\n")
	out := lines[:0]
	for _, line := range lines {
		if isStateBlobLine(line) {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func isStateBlobLine(line string) bool {
	for _, marker := range stateBlobMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

// stripScriptBodies removes residual <script> elements and bare inline
// script leftovers that escaped structural removal.
func stripScriptBodies(text string) string {
	text = scriptBodyRe.ReplaceAllString(text, "")
	return inlineScriptRe.ReplaceAllString(text, "")
}

// collapseBlankLines reduces runs of 3+ consecutive newlines to exactly
// one blank line.
func collapseBlankLines(text string) string {
	return blankRunRe.ReplaceAllString(text, "\n\n")
}
