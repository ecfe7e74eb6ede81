package goquery_test

import (
	"testing"

	"github.com/fwojciec/prex/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextPage_ResolveNext(t *testing.T) {
	t.Parallel()

	t.Run("prefers rel=next", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><link rel="next" href="/products?page=3"></head></html>`

		r := goquery.NewNextPage()
		next, ok := r.ResolveNext(html, "https://shop.example.com/products?page=2")

		require.True(t, ok)
		assert.Equal(t, "https://shop.example.com/products?page=3", next)
	})

	t.Run("finds next-text anchors", func(t *testing.T) {
		t.Parallel()

		html := `<a href="/products?page=1">1</a>
		<a href="/products?page=2">2</a>
		<a href="/products?page=2">Next</a>`

		r := goquery.NewNextPage()
		next, ok := r.ResolveNext(html, "https://shop.example.com/products")

		require.True(t, ok)
		assert.Equal(t, "https://shop.example.com/products?page=2", next)
	})

	t.Run("matches pagination classes", func(t *testing.T) {
		t.Parallel()

		html := `<a class="pagination-next" href="/products?page=5">›</a>`

		r := goquery.NewNextPage()
		next, ok := r.ResolveNext(html, "https://shop.example.com/products?page=4")

		require.True(t, ok)
		assert.Equal(t, "https://shop.example.com/products?page=5", next)
	})

	t.Run("increments an existing page parameter", func(t *testing.T) {
		t.Parallel()

		r := goquery.NewNextPage()
		next, ok := r.ResolveNext("<html><body></body></html>", "https://shop.example.com/products?page=2")

		require.True(t, ok)
		assert.Equal(t, "https://shop.example.com/products?page=3", next)
	})

	t.Run("no pagination yields false", func(t *testing.T) {
		t.Parallel()

		r := goquery.NewNextPage()
		_, ok := r.ResolveNext("<html><body></body></html>", "https://shop.example.com/products")

		assert.False(t, ok)
	})
}
