package mock

import "github.com/fwojciec/pagemd"

var _ pagemd.LinkCollector = (*LinkCollector)(nil)

// LinkCollector is a mock implementation of pagemd.LinkCollector.
type LinkCollector struct {
	CollectLinksFn func(text, baseURL string) ([]pagemd.LinkTarget, error)
}

func (c *LinkCollector) CollectLinks(text, baseURL string) ([]pagemd.LinkTarget, error) {
	return c.CollectLinksFn(text, baseURL)
}
