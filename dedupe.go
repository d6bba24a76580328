package pagemd

import (
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Patterns for the repetitive listing shapes that templated markup
// produces after markdown conversion.
var (
	imageRefRe  = regexp.MustCompile(`^\s*!\[[^\]]*\]\([^)]*\)\s*$`)
	yearLineRe  = regexp.MustCompile(`^\s*(?:19|20)\d{2}\s*$`)
	priceLineRe = regexp.MustCompile(`^\s*(?:[$€£¥]\s?[\d,.]+|[\d,.]+\s?(?:USD|EUR|GBP|PLN|zł))\s*$`)
)

// Dedupe removes repeated lines and patterns introduced by the
// normalization of repetitive templated markup. The text is split into
// sections at fragment separator lines; within each section it collapses
// runs of consecutive image-reference lines to their unique subset,
// collapses an immediately repeated year-line/price-line pair, and then
// drops remaining exact-duplicate non-blank lines, preserving first-seen
// order throughout. Dedupe is idempotent.
func Dedupe(text string) string {
	sections := splitSections(text)
	for i, s := range sections {
		s = collapseImageRuns(s)
		s = collapseYearPricePairs(s)
		s = dropDuplicateLines(s)
		sections[i] = s
	}
	return strings.Join(sections, "\n"+FragmentSeparator+"\n")
}

// splitSections splits at fragment separator lines so dedupe never
// crosses fragment boundaries.
func splitSections(text string) []string {
	lines := strings.Split(text, "\n")
	var sections []string
	var cur []string
	for _, line := range lines {
		if strings.TrimSpace(line) == FragmentSeparator {
			sections = append(sections, strings.Join(cur, "\n"))
			cur = cur[:0]
			continue
		}
		cur = append(cur, line)
	}
	sections = append(sections, strings.Join(cur, "\n"))
	return sections
}

// collapseImageRuns reduces each run of consecutive image-reference
// lines to its unique subset, first occurrence first.
func collapseImageRuns(section string) string {
	lines := strings.Split(section, "\n")
	out := make([]string, 0, len(lines))
	i := 0
	for i < len(lines) {
		if !imageRefRe.MatchString(lines[i]) {
			out = append(out, lines[i])
			i++
			continue
		}
		seen := make(map[uint64]struct{})
		for i < len(lines) && imageRefRe.MatchString(lines[i]) {
			key := xxhash.Sum64String(strings.TrimSpace(lines[i]))
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				out = append(out, lines[i])
			}
			i++
		}
	}
	return strings.Join(out, "\n")
}

// collapseYearPricePairs removes an immediately repeated year-line
// followed by price-line pair, a shape produced by duplicated listing
// cards.
func collapseYearPricePairs(section string) string {
	lines := strings.Split(section, "\n")
	out := make([]string, 0, len(lines))
	i := 0
	for i < len(lines) {
		if i+3 < len(lines) &&
			yearLineRe.MatchString(lines[i]) && priceLineRe.MatchString(lines[i+1]) &&
			lines[i+2] == lines[i] && lines[i+3] == lines[i+1] {
			out = append(out, lines[i], lines[i+1])
			i += 4
			// Swallow further immediate repeats of the same pair.
			for i+1 < len(lines) && lines[i] == out[len(out)-2] && lines[i+1] == out[len(out)-1] {
				i += 2
			}
			continue
		}
		out = append(out, lines[i])
		i++
	}
	return strings.Join(out, "\n")
}

// dropDuplicateLines removes exact-duplicate non-blank lines across the
// section, keeping the first occurrence. Blank lines are preserved so
// paragraph structure survives.
func dropDuplicateLines(section string) string {
	lines := strings.Split(section, "\n")
	seen := make(map[uint64]struct{}, len(lines))
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			out = append(out, line)
			continue
		}
		key := xxhash.Sum64String(line)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
