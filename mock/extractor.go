package mock

import "github.com/fwojciec/pagemd"

var _ pagemd.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of pagemd.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*pagemd.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*pagemd.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ pagemd.FragmentExtractor = (*FragmentExtractor)(nil)

// FragmentExtractor is a mock implementation of pagemd.FragmentExtractor.
type FragmentExtractor struct {
	ExtractFragmentsFn func(html, term string, radiusLevels int) ([]pagemd.Fragment, error)
}

func (e *FragmentExtractor) ExtractFragments(html, term string, radiusLevels int) ([]pagemd.Fragment, error) {
	return e.ExtractFragmentsFn(html, term, radiusLevels)
}
