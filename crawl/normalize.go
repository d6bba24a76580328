package crawl

import (
	"strings"

	"github.com/fwojciec/pagemd"
)

// Normalizer turns an HTML fragment into clean markdown. Structural
// boilerplate is stripped before conversion and residual text noise
// (state blobs, script bodies, blank-line runs) is stripped after.
type Normalizer struct {
	cleaner   pagemd.Cleaner
	converter pagemd.Converter
	rules     []pagemd.TransformRule
}

// NormalizerOption configures a Normalizer.
type NormalizerOption func(*Normalizer)

// WithRules replaces the post-conversion cleanup rules.
func WithRules(rules []pagemd.TransformRule) NormalizerOption {
	return func(n *Normalizer) {
		n.rules = rules
	}
}

// NewNormalizer creates a Normalizer using the default cleanup rules.
func NewNormalizer(cleaner pagemd.Cleaner, converter pagemd.Converter, opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{
		cleaner:   cleaner,
		converter: converter,
		rules:     pagemd.CleanupRules(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize converts html to markdown, applying structural cleanup
// before conversion and textual cleanup after.
func (n *Normalizer) Normalize(html string) (string, error) {
	cleaned, err := n.cleaner.Clean(html)
	if err != nil {
		return "", err
	}

	markdown, err := n.converter.Convert(cleaned)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(pagemd.ApplyRules(markdown, n.rules)), nil
}
