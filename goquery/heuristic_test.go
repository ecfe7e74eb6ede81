package goquery_test

import (
	"testing"

	"github.com/fwojciec/prex"
	"github.com/fwojciec/prex/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeuristicExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts product cards from a listing grid", func(t *testing.T) {
		t.Parallel()

		html := `<div class="products">
			<div class="product-card">
				<a href="/p/dress"><img src="/img/dress.jpg" alt="dress"></a>
				<h3>Silk Evening Dress</h3>
				<div class="brand">Valentino</div>
				<span class="price">$1,299.00</span>
				<span class="price-was">was $1,599.00</span>
				<span class="discount">20% off</span>
			</div>
			<div class="product-card">
				<a href="/p/tote"><img data-src="/img/tote.jpg" alt="tote"></a>
				<h3>Canvas Tote</h3>
				<span class="price">$89.00</span>
				<p>Sold out</p>
			</div>
		</div>`

		e := goquery.NewHeuristicExtractor()
		products, err := e.Extract(html, "https://shop.example.com")

		require.NoError(t, err)
		require.Len(t, products, 2)

		dress := products[0]
		assert.Equal(t, "Silk Evening Dress", dress.Name)
		assert.Equal(t, "https://shop.example.com/p/dress", dress.URL)
		assert.Equal(t, "https://shop.example.com/img/dress.jpg", dress.Image)
		assert.Equal(t, "Valentino", dress.Brand)
		require.NotNil(t, dress.Price)
		assert.Equal(t, 1299.0, *dress.Price)
		assert.Equal(t, "USD", dress.Currency)
		require.NotNil(t, dress.OriginalPrice)
		assert.Equal(t, 1599.0, *dress.OriginalPrice)
		assert.Equal(t, "20% off", dress.Discount)
		assert.Equal(t, prex.InStock, dress.Availability)
		assert.Equal(t, prex.SourceHeuristic, dress.Source)

		tote := products[1]
		assert.Equal(t, "Canvas Tote", tote.Name)
		assert.Equal(t, "https://shop.example.com/img/tote.jpg", tote.Image)
		assert.Equal(t, prex.OutOfStock, tote.Availability)
	})

	t.Run("nav-ish containers are never emitted", func(t *testing.T) {
		t.Parallel()

		html := `<div class="footer-featured">
			<a href="/p/promo"><img src="/img/promo.jpg"></a>
			<span>$19.99</span>
		</div>`

		e := goquery.NewHeuristicExtractor()
		products, err := e.Extract(html, "https://shop.example.com")

		require.NoError(t, err)
		assert.Empty(t, products)
	})

	t.Run("image and link alone are not sufficient", func(t *testing.T) {
		t.Parallel()

		html := `<div class="hero-banner">
			<a href="/sale"><img src="/img/banner.jpg"></a>
			<p>Summer collection</p>
		</div>`

		e := goquery.NewHeuristicExtractor()
		products, err := e.Extract(html, "https://shop.example.com")

		require.NoError(t, err)
		assert.Empty(t, products)
	})

	t.Run("duplicate URLs are merged into one candidate", func(t *testing.T) {
		t.Parallel()

		html := `
		<div class="product-card">
			<a href="/p/dress"><img src="/img/a.jpg"></a><h3>Dress</h3><span>$10.00</span>
		</div>
		<div class="product-card">
			<a href="/p/dress"><img src="/img/b.jpg"></a><h3>Dress</h3><span>$10.00</span>
		</div>`

		e := goquery.NewHeuristicExtractor()
		products, err := e.Extract(html, "https://shop.example.com")

		require.NoError(t, err)
		assert.Len(t, products, 1)
	})

	t.Run("collects variant options without placeholders", func(t *testing.T) {
		t.Parallel()

		html := `<div class="product-card">
			<a href="/p/shirt"><img src="/img/shirt.jpg"></a>
			<h3>Linen Shirt</h3>
			<span>$59.00</span>
			<select>
				<option>Select size</option>
				<option>S</option>
				<option>M</option>
			</select>
		</div>`

		e := goquery.NewHeuristicExtractor()
		products, err := e.Extract(html, "https://shop.example.com")

		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, []string{"S", "M"}, products[0].Variants)
	})

	t.Run("empty page yields empty list", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewHeuristicExtractor()
		products, err := e.Extract("<html><body></body></html>", "https://shop.example.com")

		require.NoError(t, err)
		assert.Empty(t, products)
	})
}
