package crawl_test

import (
	"testing"

	"github.com/fwojciec/pagemd"
	"github.com/fwojciec/pagemd/crawl"
	"github.com/fwojciec/pagemd/mock"
	"github.com/stretchr/testify/assert"
)

func TestContentGain(t *testing.T) {
	t.Parallel()

	t.Run("returns true when rendered content is more than 50% longer", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{
			ExtractFn: func(html string) (*pagemd.ExtractResult, error) {
				if html == "static-html" {
					return &pagemd.ExtractResult{
						ContentHTML: "short content",
					}, nil
				}
				return &pagemd.ExtractResult{
					ContentHTML: "much longer content from the browser which is significantly bigger",
				}, nil
			},
		}

		assert.True(t, crawl.ContentGain("static-html", "rendered-html", extractor))
	})

	t.Run("returns false when content lengths are similar", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{
			ExtractFn: func(html string) (*pagemd.ExtractResult, error) {
				if html == "static-html" {
					return &pagemd.ExtractResult{ContentHTML: "some content here"}, nil
				}
				return &pagemd.ExtractResult{ContentHTML: "similar size text"}, nil
			},
		}

		assert.False(t, crawl.ContentGain("static-html", "rendered-html", extractor))
	})

	t.Run("returns true when static extraction fails", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{
			ExtractFn: func(html string) (*pagemd.ExtractResult, error) {
				if html == "static-html" {
					return nil, pagemd.Errorf(pagemd.EINTERNAL, "extraction failed")
				}
				return &pagemd.ExtractResult{ContentHTML: "content"}, nil
			},
		}

		assert.True(t, crawl.ContentGain("static-html", "rendered-html", extractor))
	})

	t.Run("returns true when static content is empty and rendered is not", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{
			ExtractFn: func(html string) (*pagemd.ExtractResult, error) {
				if html == "static-html" {
					return &pagemd.ExtractResult{ContentHTML: ""}, nil
				}
				return &pagemd.ExtractResult{ContentHTML: "rendered content"}, nil
			},
		}

		assert.True(t, crawl.ContentGain("static-html", "rendered-html", extractor))
	})

	t.Run("returns false when both are empty", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{
			ExtractFn: func(html string) (*pagemd.ExtractResult, error) {
				return &pagemd.ExtractResult{ContentHTML: ""}, nil
			},
		}

		assert.False(t, crawl.ContentGain("static-html", "rendered-html", extractor))
	})
}
