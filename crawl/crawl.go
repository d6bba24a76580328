// Package crawl provides page processing orchestration.
// It coordinates acquisition strategy selection, content extraction,
// markdown normalization, link expansion, and deduplication into a
// single pipeline producing model-ready text.
package crawl

import (
	"context"
	"strings"

	"github.com/fwojciec/pagemd"
)

// Request describes a single page processing run.
type Request struct {
	// URL is the page to process.
	URL string

	// Radial enables term-anchored fragment extraction. When false the
	// whole page's main content is extracted instead.
	Radial bool

	// Term anchors radial extraction. Required when Radial is set.
	Term string

	// RadiusLevels is how many ancestor levels to ascend from each
	// term match. Zero means the extractor default.
	RadiusLevels int

	// ExpandLinks appends linked page content after the main output.
	ExpandLinks bool
}

// Pipeline runs the full page-to-markdown flow.
type Pipeline struct {
	Acquirer   *Acquirer
	Fragments  pagemd.FragmentExtractor
	Extractor  pagemd.Extractor
	Normalizer *Normalizer
	Expander   *Expander
}

// Run processes a single page and returns the final markdown.
func (p *Pipeline) Run(ctx context.Context, req Request) (string, error) {
	if req.URL == "" {
		return "", pagemd.Errorf(pagemd.EINVALID, "url is required")
	}
	if req.Radial && req.Term == "" {
		return "", pagemd.Errorf(pagemd.EINVALID, "term is required in radial mode")
	}

	acq, err := p.Acquirer.Acquire(ctx, req.URL)
	if err != nil {
		return "", err
	}

	var markdown string
	if req.Radial {
		markdown, err = p.radialMarkdown(acq.HTML, req.Term, req.RadiusLevels)
	} else {
		markdown, err = p.fullPageMarkdown(acq.HTML)
	}
	if err != nil {
		return "", err
	}

	if req.ExpandLinks && p.Expander != nil {
		markdown, err = p.Expander.Expand(ctx, markdown, acq.HTML, req.URL)
		if err != nil {
			return "", err
		}
	}

	return pagemd.Dedupe(markdown), nil
}

// radialMarkdown extracts term-anchored fragments and renders each as
// a delimited markdown block. An empty match set yields the placeholder
// text rather than an error.
func (p *Pipeline) radialMarkdown(html, term string, radiusLevels int) (string, error) {
	fragments, err := p.Fragments.ExtractFragments(html, term, radiusLevels)
	if err != nil {
		return "", err
	}

	rendered := make([]pagemd.Fragment, 0, len(fragments))
	for _, f := range fragments {
		body, err := p.Normalizer.Normalize(f.HTML)
		if err != nil {
			return "", err
		}
		f.HTML = body
		rendered = append(rendered, f)
	}
	return pagemd.FormatFragments(rendered), nil
}

// fullPageMarkdown extracts the page's main content and renders it as
// a single markdown document. If main-content extraction fails the
// whole page is normalized instead.
func (p *Pipeline) fullPageMarkdown(html string) (string, error) {
	source := html
	var title string
	if p.Extractor != nil {
		if result, err := p.Extractor.Extract(html); err == nil {
			source = result.ContentHTML
			title = result.Title
		}
	}

	markdown, err := p.Normalizer.Normalize(source)
	if err != nil {
		return "", err
	}
	if title != "" && !strings.HasPrefix(markdown, "#") {
		markdown = "# " + title + "\n\n" + markdown
	}
	return markdown, nil
}
