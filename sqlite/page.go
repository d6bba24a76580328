package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pagemd"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ pagemd.PageCache = (*PageService)(nil)

// PageService implements pagemd.PageCache using SQLite.
type PageService struct {
	db *DB
}

// NewPageService creates a new PageService.
func NewPageService(db *DB) *PageService {
	return &PageService{db: db}
}

// hashContent computes xxHash of content and returns a hex string.
func hashContent(content string) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64String(content))
	return hex.EncodeToString(b)
}

// GetPage retrieves a cached page by URL.
func (s *PageService) GetPage(ctx context.Context, url string) (*pagemd.CachedPage, error) {
	var page pagemd.CachedPage
	var fetchedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, url, body, content_hash, fetched_at
		FROM pages
		WHERE url = ?
	`, url).Scan(&page.ID, &page.URL, &page.Body, &page.ContentHash, &fetchedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pagemd.Errorf(pagemd.ENOTFOUND, "page not cached")
	}
	if err != nil {
		return nil, err
	}

	page.FetchedAt, err = time.Parse(time.RFC3339, fetchedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fetched_at: %w", err)
	}

	return &page, nil
}

// PutPage stores a page body under its URL, replacing any previous
// entry for the same URL.
func (s *PageService) PutPage(ctx context.Context, url, body string) error {
	if url == "" {
		return pagemd.Errorf(pagemd.EINVALID, "url is required")
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pages (id, url, body, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			body = excluded.body,
			content_hash = excluded.content_hash,
			fetched_at = excluded.fetched_at
	`, uuid.New().String(), url, body, hashContent(body), now)

	return err
}

// Close closes the underlying database.
func (s *PageService) Close() error {
	return s.db.Close()
}
