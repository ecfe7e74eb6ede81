package goquery_test

import (
	"testing"

	"github.com/fwojciec/prex"
	"github.com/fwojciec/prex/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetailExtractor_ExtractDetail(t *testing.T) {
	t.Parallel()

	t.Run("prefers structured markup", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
		<script type="application/ld+json">
		{"@type": "Product", "name": "Silk Scarf", "brand": "Gucci",
		 "offers": {"price": 295, "priceCurrency": "USD"}}
		</script>
		<meta property="og:title" content="Some Other Title">
		</head><body><h1>Ignored Heading</h1></body></html>`

		e := goquery.NewDetailExtractor()
		p, err := e.ExtractDetail(html, "https://shop.example.com/p/scarf")

		require.NoError(t, err)
		assert.Equal(t, "Silk Scarf", p.Name)
		assert.Equal(t, "Gucci", p.Brand)
		require.NotNil(t, p.Price)
		assert.Equal(t, 295.0, *p.Price)
		// Markup carried no URL of its own, so the page URL is the identity.
		assert.Equal(t, "https://shop.example.com/p/scarf", p.URL)
		assert.Equal(t, prex.SourceStructured, p.Source)
	})

	t.Run("falls back to meta tags", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
		<meta property="og:title" content="Leather Belt">
		<meta property="og:image" content="/img/belt.jpg">
		<meta property="product:price:amount" content="120.00 USD">
		<meta property="product:price:currency" content="USD">
		<meta property="og:description" content="A leather belt.">
		</head><body></body></html>`

		e := goquery.NewDetailExtractor()
		p, err := e.ExtractDetail(html, "https://shop.example.com/p/belt")

		require.NoError(t, err)
		assert.Equal(t, "Leather Belt", p.Name)
		assert.Equal(t, "https://shop.example.com/img/belt.jpg", p.Image)
		require.NotNil(t, p.Price)
		assert.Equal(t, 120.0, *p.Price)
		assert.Equal(t, "USD", p.Currency)
		assert.Equal(t, "A leather belt.", p.Description)
		assert.Equal(t, "https://shop.example.com/p/belt", p.URL)
	})

	t.Run("falls back to document structure", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
		<h1>Wool Coat</h1>
		<span class="price">$450.00</span>
		<div class="brand">Burberry</div>
		<p>Out of stock</p>
		</body></html>`

		e := goquery.NewDetailExtractor()
		p, err := e.ExtractDetail(html, "https://shop.example.com/p/coat")

		require.NoError(t, err)
		assert.Equal(t, "Wool Coat", p.Name)
		require.NotNil(t, p.Price)
		assert.Equal(t, 450.0, *p.Price)
		assert.Equal(t, "Burberry", p.Brand)
		assert.Equal(t, prex.OutOfStock, p.Availability)
	})

	t.Run("sparse page still returns a record", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewDetailExtractor()
		p, err := e.ExtractDetail("<html><body></body></html>", "https://shop.example.com/p/x")

		require.NoError(t, err)
		assert.Equal(t, "https://shop.example.com/p/x", p.URL)
		assert.Empty(t, p.Name)
		assert.Nil(t, p.Price)
	})
}
