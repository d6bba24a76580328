package crawl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/pagemd"
	"github.com/fwojciec/pagemd/bloom"
)

// DefaultMaxLinks caps how many links one expansion pass follows.
const DefaultMaxLinks = 10

// DefaultLinkTimeout bounds the processing of a single linked page.
const DefaultLinkTimeout = 15 * time.Second

// minLinkText is the markdown length below which a statically fetched
// linked page is considered incomplete and retried with a render.
const minLinkText = 200

// expectedLinks sizes the seen-URL filter. Expansion is single level
// so the population stays tiny; the headroom keeps false positives
// negligible.
const expectedLinks = 10000

// Expander follows content links out of a processed page and appends
// each linked page's markdown as a delimited section. Links are
// processed sequentially to bound load on the target host.
type Expander struct {
	fetcher     pagemd.Fetcher
	renderer    pagemd.Renderer
	collector   pagemd.LinkCollector
	normalizer  *Normalizer
	limiter     pagemd.DomainLimiter
	cache       pagemd.PageCache
	seen        *bloom.Filter
	maxLinks    int
	linkTimeout time.Duration
}

// ExpanderOption configures an Expander.
type ExpanderOption func(*Expander)

// WithRenderer enables a browser-render fallback for linked pages that
// come back too thin from a static fetch.
func WithRenderer(renderer pagemd.Renderer) ExpanderOption {
	return func(e *Expander) {
		e.renderer = renderer
	}
}

// WithMaxLinks caps how many candidate links are followed.
func WithMaxLinks(n int) ExpanderOption {
	return func(e *Expander) {
		e.maxLinks = n
	}
}

// WithLinkTimeout bounds the processing of each linked page.
func WithLinkTimeout(d time.Duration) ExpanderOption {
	return func(e *Expander) {
		e.linkTimeout = d
	}
}

// WithExpandLimiter sets a per-domain rate limiter consulted before
// each link fetch.
func WithExpandLimiter(limiter pagemd.DomainLimiter) ExpanderOption {
	return func(e *Expander) {
		e.limiter = limiter
	}
}

// WithExpandCache sets a page cache consulted before each link fetch.
func WithExpandCache(cache pagemd.PageCache) ExpanderOption {
	return func(e *Expander) {
		e.cache = cache
	}
}

// NewExpander creates an Expander.
func NewExpander(fetcher pagemd.Fetcher, collector pagemd.LinkCollector, normalizer *Normalizer, opts ...ExpanderOption) *Expander {
	e := &Expander{
		fetcher:     fetcher,
		collector:   collector,
		normalizer:  normalizer,
		seen:        bloom.NewFilter(expectedLinks, 0.01),
		maxLinks:    DefaultMaxLinks,
		linkTimeout: DefaultLinkTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Expand collects content links from the page HTML and the already
// converted markdown, follows at most maxLinks of them in discovery
// order, and returns the markdown with one "Linked Content N" section
// appended per candidate. A failed link contributes a section naming
// the failure instead of aborting the batch.
func (e *Expander) Expand(ctx context.Context, markdown, html, baseURL string) (string, error) {
	candidates, err := e.candidates(html, markdown, baseURL)
	if err != nil {
		return "", err
	}
	if len(candidates) > e.maxLinks {
		candidates = candidates[:e.maxLinks]
	}

	var b strings.Builder
	b.WriteString(markdown)

	for i, link := range candidates {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		section, err := e.processLink(ctx, link.URL)
		if err != nil {
			section = fmt.Sprintf("(failed: %v)", err)
		}

		fmt.Fprintf(&b, "\n\n%s\n\nLinked Content %d: %s\n\n%s", pagemd.FragmentSeparator, i+1, link.URL, section)
	}

	return b.String(), nil
}

// candidates merges links discovered in the HTML and in the markdown,
// in discovery order, skipping URLs already followed by this Expander.
func (e *Expander) candidates(html, markdown, baseURL string) ([]pagemd.LinkTarget, error) {
	fromHTML, err := e.collector.CollectLinks(html, baseURL)
	if err != nil {
		return nil, err
	}
	fromMarkdown, err := e.collector.CollectLinks(markdown, baseURL)
	if err != nil {
		return nil, err
	}

	e.seen.Add(baseURL)

	var out []pagemd.LinkTarget
	for _, link := range append(fromHTML, fromMarkdown...) {
		if e.seen.Test(link.URL) {
			continue
		}
		e.seen.Add(link.URL)
		out = append(out, link)
	}
	return out, nil
}

// processLink runs a lightweight acquisition of a single linked page
// and returns its normalized markdown. A static fetch comes first; a
// render happens only when the fetch fails or yields too little text.
func (e *Expander) processLink(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.linkTimeout)
	defer cancel()

	if e.limiter != nil {
		if err := e.limiter.Wait(ctx, domainOf(url)); err != nil {
			return "", err
		}
	}

	if e.cache != nil {
		if page, err := e.cache.GetPage(ctx, url); err == nil {
			return e.normalizer.Normalize(page.Body)
		}
	}

	html, err := e.acquireLink(ctx, url)
	if err != nil {
		return "", err
	}

	markdown, err := e.normalizer.Normalize(html)
	if err != nil {
		return "", err
	}

	if len(markdown) < minLinkText && e.renderer != nil {
		if rendered, rerr := e.renderer.Render(ctx, url); rerr == nil {
			if renderedMD, nerr := e.normalizer.Normalize(rendered); nerr == nil && len(renderedMD) > len(markdown) {
				html, markdown = rendered, renderedMD
			}
		}
	}

	if e.cache != nil {
		_ = e.cache.PutPage(ctx, url, html)
	}
	return markdown, nil
}

// acquireLink fetches a linked page statically, falling back to a
// render when the fetch fails outright.
func (e *Expander) acquireLink(ctx context.Context, url string) (string, error) {
	outcome, err := e.fetcher.Fetch(ctx, url)
	if err == nil && outcome.OK() {
		return outcome.Body, nil
	}

	if e.renderer != nil {
		if html, rerr := e.renderer.Render(ctx, url); rerr == nil {
			return html, nil
		}
	}

	if err != nil {
		return "", err
	}
	return "", pagemd.Errorf(pagemd.EUNAVAILABLE, "fetching %s failed with an upstream error after %d attempts", url, outcome.Attempts)
}
