package goquery_test

import (
	"testing"

	"github.com/fwojciec/prex/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocator_Locate(t *testing.T) {
	t.Parallel()

	t.Run("finds the card container for a product URL", func(t *testing.T) {
		t.Parallel()

		html := `<div class="products">
			<div class="product-card">
				<a href="/p/dress"><img src="/img/dress.jpg"></a>
				<h3>Silk Evening Dress</h3>
				<span>$1,299.00</span>
			</div>
		</div>`

		l := goquery.NewLocator()
		f, ok := l.Locate(html, "https://shop.example.com/p/dress")

		require.True(t, ok)
		assert.True(t, f.HasImage)
		assert.True(t, f.HasLink)
		assert.True(t, f.HasHeading)
		assert.Equal(t, "product-card", f.Class)
		assert.Contains(t, f.Text, "Silk Evening Dress")
		assert.Contains(t, f.Text, "$1,299.00")
	})

	t.Run("absolute hrefs match too", func(t *testing.T) {
		t.Parallel()

		html := `<li class="item"><a href="https://shop.example.com/p/tote">Tote</a></li>`

		l := goquery.NewLocator()
		f, ok := l.Locate(html, "https://shop.example.com/p/tote")

		require.True(t, ok)
		assert.True(t, f.HasLink)
	})

	t.Run("returns false when no anchor matches", func(t *testing.T) {
		t.Parallel()

		l := goquery.NewLocator()
		_, ok := l.Locate(`<a href="/p/other">Other</a>`, "https://shop.example.com/p/dress")

		assert.False(t, ok)
	})
}
