// Package slog provides logging decorators for the core interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagemd"
)

// Ensure LoggingFetcher implements pagemd.Fetcher.
var _ pagemd.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with diagnostic logging.
type LoggingFetcher struct {
	next   pagemd.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next pagemd.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the outcome of each fetch and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (outcome *pagemd.FetchOutcome, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		}
		if outcome != nil {
			attrs = append(attrs,
				"class", string(outcome.Class),
				"attempts", outcome.Attempts,
				"bytes", len(outcome.Body),
			)
		}
		f.logger.Info("fetch", attrs...)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
