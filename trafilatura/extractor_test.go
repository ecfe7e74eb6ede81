package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/prex"
	"github.com/fwojciec/prex/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements prex.ContentExtractor at compile time.
var _ prex.ContentExtractor = (*trafilatura.Extractor)(nil)

func TestExtractor_ExtractContent(t *testing.T) {
	t.Parallel()

	t.Run("extracts main content and drops boilerplate", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Silk Dress | Example Shop</title></head>
<body>
	<nav><a href="/">Home</a> <a href="/collections/all">Shop</a></nav>
	<main>
		<article>
			<h1>Silk Dress</h1>
			<p>A floor-length evening dress cut from heavyweight silk charmeuse,
			finished with a hand-rolled hem and a concealed side zip. Fully lined
			in matching habotai silk for comfort against the skin.</p>
			<p>Made in Italy from mulberry silk certified by our mill partners,
			this piece is part of the permanent collection and re-cut each season
			in a small number of colourways.</p>
		</article>
	</main>
	<footer>© 2026 Example Shop. All rights reserved.</footer>
</body>
</html>`

		e := trafilatura.NewExtractor()
		content, err := e.ExtractContent(html)

		require.NoError(t, err)
		assert.Contains(t, content.HTML, "silk charmeuse")
		assert.NotContains(t, content.HTML, "All rights reserved")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		e := trafilatura.NewExtractor()
		_, err := e.ExtractContent("")

		assert.Equal(t, prex.EINVALID, prex.ErrorCode(err))
	})
}
