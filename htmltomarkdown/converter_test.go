package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/prex"
	"github.com/fwojciec/prex/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements prex.Converter at compile time.
var _ prex.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts paragraphs and emphasis", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<p>A <strong>hand-finished</strong> silk dress.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "**hand-finished**")
	})

	t.Run("converts description lists", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<ul><li>100% silk</li><li>Dry clean only</li></ul>`)

		require.NoError(t, err)
		assert.Contains(t, md, "- 100% silk")
		assert.Contains(t, md, "- Dry clean only")
	})

	t.Run("converts size chart tables", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<table>
			<tr><th>Size</th><th>Bust</th></tr>
			<tr><td>S</td><td>86cm</td></tr>
		</table>`)

		require.NoError(t, err)
		assert.Contains(t, md, "| Size | Bust |")
		// Table cells are padded to the column width.
		assert.Regexp(t, `\| S\s+\| 86cm \|`, md)
	})

	t.Run("preserves links", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<p>See the <a href="/pages/size-guide">size guide</a>.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "[size guide](/pages/size-guide)")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert("   ")

		assert.Equal(t, prex.EINVALID, prex.ErrorCode(err))
	})
}
