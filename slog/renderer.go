package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagemd"
)

// Ensure LoggingRenderer implements pagemd.Renderer.
var _ pagemd.Renderer = (*LoggingRenderer)(nil)

// LoggingRenderer wraps a Renderer with diagnostic logging.
type LoggingRenderer struct {
	next   pagemd.Renderer
	logger *slog.Logger
}

// NewLoggingRenderer creates a new LoggingRenderer.
func NewLoggingRenderer(next pagemd.Renderer, logger *slog.Logger) *LoggingRenderer {
	return &LoggingRenderer{next: next, logger: logger}
}

// Render logs each browser render and delegates to the wrapped renderer.
func (r *LoggingRenderer) Render(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		r.logger.Info("render",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Render(ctx, url)
}

// Close delegates to the wrapped renderer.
func (r *LoggingRenderer) Close() error {
	return r.next.Close()
}
