package pagemd

import (
	"context"
	"time"
)

// CachedPage is one stored acquisition result.
type CachedPage struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Body        string    `json:"body"`
	ContentHash string    `json:"contentHash"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the cached page contains invalid fields.
func (p *CachedPage) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "cached page URL required")
	}
	return nil
}

// PageCache stores fetched page bodies keyed by URL so link expansion
// can skip refetching URLs it has already processed.
type PageCache interface {
	// GetPage returns the cached page for a URL.
	// Returns ENOTFOUND if the URL has not been cached.
	GetPage(ctx context.Context, url string) (*CachedPage, error)

	// PutPage stores a page body, replacing any previous entry for the URL.
	PutPage(ctx context.Context, url, body string) error

	// Close releases cache resources.
	Close() error
}
