package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/pagemd"
	"github.com/fwojciec/pagemd/stabilize"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultClickDelay is the pause between the synthetic scroll and the
// "load more" click attempt.
const DefaultClickDelay = 300 * time.Millisecond

// Ensure Renderer implements pagemd.Renderer at compile time.
var _ pagemd.Renderer = (*Renderer)(nil)

// Renderer retrieves rendered HTML using Chrome browser automation.
// Each Render call creates one session (page + request counter +
// mutation feed) that is exclusively owned by that call and torn down
// on every exit path. Renders are meant to run one at a time per
// pipeline; the browser itself is shared and recycled by the manager.
type Renderer struct {
	manager    *BrowserManager
	quiet      stabilize.QuietConfig
	idle       stabilize.IdleConfig
	clickDelay time.Duration
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithQuietConfig overrides the DOM quiescence wait configuration.
func WithQuietConfig(cfg stabilize.QuietConfig) RendererOption {
	return func(r *Renderer) {
		r.quiet = cfg
	}
}

// WithIdleConfig overrides the network idle wait configuration.
func WithIdleConfig(cfg stabilize.IdleConfig) RendererOption {
	return func(r *Renderer) {
		r.idle = cfg
	}
}

// WithClickDelay sets the pause before the "load more" click attempt.
func WithClickDelay(d time.Duration) RendererOption {
	return func(r *Renderer) {
		r.clickDelay = d
	}
}

// NewRenderer creates a Renderer on top of a browser manager.
func NewRenderer(manager *BrowserManager, opts ...RendererOption) *Renderer {
	r := &Renderer{
		manager:    manager,
		clickDelay: DefaultClickDelay,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render navigates to the URL, waits for the load event, simulates a
// scroll and a "load more" click, waits for DOM quiescence and network
// idle (both bounded by ceilings; timeouts are not errors), and returns
// the serialized document.
func (r *Renderer) Render(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := r.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("creating page: %w", err)
	}
	page = page.Context(ctx)

	session, err := newSession(page)
	if err != nil {
		_ = page.Close()
		return "", fmt.Errorf("attaching session: %w", err)
	}
	defer session.Close()

	if err := page.Navigate(url); err != nil {
		return "", fmt.Errorf("navigating to %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("waiting for load: %w", err)
	}

	session.Interact(ctx, r.clickDelay)

	if err := session.Stabilize(ctx, r.quiet, r.idle); err != nil {
		return "", err
	}

	html, err := session.HTML()
	if err != nil {
		return "", err
	}

	r.manager.IncrementPageCount()
	return html, nil
}

// Close releases browser resources.
func (r *Renderer) Close() error {
	return r.manager.Close()
}
