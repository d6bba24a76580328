package crawl

import (
	"context"
	"net/url"

	"github.com/fwojciec/pagemd"
)

// Acquisition is the result of acquiring a page by whichever strategy
// succeeded.
type Acquisition struct {
	// HTML is the acquired document markup.
	HTML string

	// Rendered reports whether a browser render produced the HTML.
	Rendered bool

	// Outcome is the static fetch outcome, if a static fetch happened.
	// Nil when the page came from the cache or a forced render.
	Outcome *pagemd.FetchOutcome
}

// Acquirer selects and runs the acquisition strategy for a page.
// Escalation is monotonic: static fetch first, then a browser render
// when the fetch fails or the probe reports incomplete content, then
// the already-fetched HTML as the final fallback when rendering fails.
type Acquirer struct {
	fetcher      pagemd.Fetcher
	renderer     pagemd.Renderer
	prober       pagemd.RenderProber
	extractor    pagemd.Extractor
	limiter      pagemd.DomainLimiter
	cache        pagemd.PageCache
	forceBrowser bool
}

// AcquirerOption configures an Acquirer.
type AcquirerOption func(*Acquirer)

// WithLimiter sets a per-domain rate limiter consulted before every
// network acquisition.
func WithLimiter(limiter pagemd.DomainLimiter) AcquirerOption {
	return func(a *Acquirer) {
		a.limiter = limiter
	}
}

// WithCache sets a page cache consulted before, and filled after,
// network acquisition.
func WithCache(cache pagemd.PageCache) AcquirerOption {
	return func(a *Acquirer) {
		a.cache = cache
	}
}

// WithGainCheck sets an extractor used to compare statically fetched
// and rendered content. When set, a render triggered by the probe only
// replaces the fetched HTML if it actually adds content.
func WithGainCheck(extractor pagemd.Extractor) AcquirerOption {
	return func(a *Acquirer) {
		a.extractor = extractor
	}
}

// WithForceBrowser makes every acquisition go straight to the browser,
// skipping the static fetch and the probe.
func WithForceBrowser(force bool) AcquirerOption {
	return func(a *Acquirer) {
		a.forceBrowser = force
	}
}

// NewAcquirer creates an Acquirer. The renderer and prober may be nil,
// in which case acquisition never escalates to a browser.
func NewAcquirer(fetcher pagemd.Fetcher, renderer pagemd.Renderer, prober pagemd.RenderProber, opts ...AcquirerOption) *Acquirer {
	a := &Acquirer{
		fetcher:  fetcher,
		renderer: renderer,
		prober:   prober,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Acquire fetches the page at rawURL using the cheapest strategy that
// produces complete content.
func (a *Acquirer) Acquire(ctx context.Context, rawURL string) (*Acquisition, error) {
	if a.limiter != nil {
		if err := a.limiter.Wait(ctx, domainOf(rawURL)); err != nil {
			return nil, err
		}
	}

	if a.cache != nil {
		if page, err := a.cache.GetPage(ctx, rawURL); err == nil {
			return &Acquisition{HTML: page.Body}, nil
		}
	}

	if a.forceBrowser {
		if a.renderer == nil {
			return nil, pagemd.Errorf(pagemd.EINVALID, "browser rendering forced but no renderer configured")
		}
		html, err := a.renderer.Render(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		return a.store(ctx, rawURL, &Acquisition{HTML: html, Rendered: true}), nil
	}

	outcome, err := a.fetcher.Fetch(ctx, rawURL)
	if err != nil || !outcome.OK() {
		// Static fetch exhausted its retries. Escalate to a render if
		// one is available, otherwise surface the failure.
		if a.renderer != nil {
			if html, rerr := a.renderer.Render(ctx, rawURL); rerr == nil {
				return a.store(ctx, rawURL, &Acquisition{HTML: html, Rendered: true, Outcome: outcome}), nil
			}
		}
		if err != nil {
			return nil, err
		}
		return nil, pagemd.Errorf(pagemd.EUNAVAILABLE, "fetching %s failed with an upstream error after %d attempts", rawURL, outcome.Attempts)
	}

	if a.renderer != nil && a.prober != nil && a.prober.NeedsRendering(outcome.Body) {
		if html, rerr := a.renderer.Render(ctx, rawURL); rerr == nil {
			if a.extractor != nil && !ContentGain(outcome.Body, html, a.extractor) {
				// Rendering added nothing. Keep the fetched HTML.
				return a.store(ctx, rawURL, &Acquisition{HTML: outcome.Body, Outcome: outcome}), nil
			}
			return a.store(ctx, rawURL, &Acquisition{HTML: html, Rendered: true, Outcome: outcome}), nil
		}
		// Render failed. The fetched HTML is the final fallback.
	}

	return a.store(ctx, rawURL, &Acquisition{HTML: outcome.Body, Outcome: outcome}), nil
}

// store writes the acquired HTML to the cache. Cache writes are best
// effort and never fail the acquisition.
func (a *Acquirer) store(ctx context.Context, rawURL string, acq *Acquisition) *Acquisition {
	if a.cache != nil {
		_ = a.cache.PutPage(ctx, rawURL, acq.HTML)
	}
	return acq
}

// domainOf returns the host portion of rawURL, or the raw string when
// it does not parse. A stable key is all the limiter needs.
func domainOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}
