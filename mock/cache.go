package mock

import (
	"context"

	"github.com/fwojciec/pagemd"
)

var _ pagemd.PageCache = (*PageCache)(nil)

// PageCache is a mock implementation of pagemd.PageCache.
type PageCache struct {
	GetPageFn func(ctx context.Context, url string) (*pagemd.CachedPage, error)
	PutPageFn func(ctx context.Context, url, body string) error
	CloseFn   func() error
}

func (c *PageCache) GetPage(ctx context.Context, url string) (*pagemd.CachedPage, error) {
	return c.GetPageFn(ctx, url)
}

func (c *PageCache) PutPage(ctx context.Context, url, body string) error {
	return c.PutPageFn(ctx, url, body)
}

func (c *PageCache) Close() error {
	if c.CloseFn == nil {
		return nil
	}
	return c.CloseFn()
}
