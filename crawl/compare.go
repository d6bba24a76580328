package crawl

import "github.com/fwojciec/pagemd"

// ContentGain compares content extracted from statically fetched HTML
// vs browser-rendered HTML. Returns true if the rendered content is
// significantly longer (>50%), suggesting JavaScript execution adds
// meaningful content. Also returns true on extraction errors (assumes
// rendering needed).
func ContentGain(staticHTML, renderedHTML string, extractor pagemd.Extractor) bool {
	staticResult, err := extractor.Extract(staticHTML)
	if err != nil {
		return true
	}

	renderedResult, err := extractor.Extract(renderedHTML)
	if err != nil {
		return true
	}

	staticLen := len(staticResult.ContentHTML)
	renderedLen := len(renderedResult.ContentHTML)

	if staticLen == 0 && renderedLen > 0 {
		return true
	}

	threshold := float64(staticLen) * 1.5
	return float64(renderedLen) > threshold
}
