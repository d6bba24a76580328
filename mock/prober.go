package mock

import "github.com/fwojciec/pagemd"

var _ pagemd.RenderProber = (*RenderProber)(nil)

// RenderProber is a mock implementation of pagemd.RenderProber.
type RenderProber struct {
	NeedsRenderingFn func(html string) bool
}

func (p *RenderProber) NeedsRendering(html string) bool {
	return p.NeedsRenderingFn(html)
}
