package goquery_test

import (
	"testing"

	pagemdquery "github.com/fwojciec/pagemd/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleaner_Clean(t *testing.T) {
	t.Parallel()

	t.Run("drops nav and footer entirely", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<nav><a href="/">Home</a></nav>
<main><p>Real content</p></main>
<footer>Copyright</footer>
</body></html>`

		c := pagemdquery.NewCleaner()
		out, err := c.Clean(html)

		require.NoError(t, err)
		assert.NotContains(t, out, "<nav")
		assert.NotContains(t, out, "Copyright")
		assert.Contains(t, out, "Real content")
	})

	t.Run("drops utility and visually-hidden elements", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<span class="sr-only">screen reader text</span>
<div class="cookie-banner">Accept cookies</div>
<p>Visible text</p>
</body></html>`

		c := pagemdquery.NewCleaner()
		out, err := c.Clean(html)

		require.NoError(t, err)
		assert.NotContains(t, out, "screen reader text")
		assert.NotContains(t, out, "Accept cookies")
		assert.Contains(t, out, "Visible text")
	})

	t.Run("collapses inline emphasis to trimmed text with trailing space", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>A <strong> bold </strong>statement</p></body></html>`

		c := pagemdquery.NewCleaner()
		out, err := c.Clean(html)

		require.NoError(t, err)
		assert.NotContains(t, out, "<strong>")
		assert.Contains(t, out, "bold statement")
	})

	t.Run("drops scripts and styles", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><script>alert(1)</script><style>p{}</style><p>kept</p></body></html>`

		c := pagemdquery.NewCleaner()
		out, err := c.Clean(html)

		require.NoError(t, err)
		assert.NotContains(t, out, "alert(1)")
		assert.Contains(t, out, "kept")
	})
}
