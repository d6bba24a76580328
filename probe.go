package pagemd

// RenderProber decides, from a raw first fetch, whether a page's real
// content likely requires script execution to appear.
type RenderProber interface {
	// NeedsRendering inspects HTML and reports whether the page looks
	// incomplete without JavaScript. It is a pure function of its input:
	// deterministic, no side effects. The heuristic is deliberately
	// coarse; false positives and negatives are acceptable.
	NeedsRendering(html string) bool
}
