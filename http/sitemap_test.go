package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/fwojciec/prex"
	prexhttp "github.com/fwojciec/prex/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSitemapService_DiscoverURLs(t *testing.T) {
	t.Parallel()

	t.Run("resolves a sitemap index from robots.txt", func(t *testing.T) {
		t.Parallel()

		var srv *httptest.Server
		srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/robots.txt":
				_, _ = w.Write([]byte("User-agent: *\nSitemap: " + srv.URL + "/sitemap.xml\n"))
			case "/sitemap.xml":
				_, _ = w.Write([]byte(`<?xml version="1.0"?>
				<sitemapindex>
					<sitemap><loc>` + srv.URL + `/sitemap_products.xml</loc></sitemap>
				</sitemapindex>`))
			case "/sitemap_products.xml":
				_, _ = w.Write([]byte(`<?xml version="1.0"?>
				<urlset>
					<url><loc>` + srv.URL + `/products/silk-dress</loc></url>
					<url><loc>` + srv.URL + `/products/canvas-tote</loc></url>
					<url><loc>` + srv.URL + `/pages/about</loc></url>
				</urlset>`))
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		defer srv.Close()

		s := prexhttp.NewSitemapService(nil)
		urls, err := s.DiscoverURLs(context.Background(), srv.URL, nil)

		require.NoError(t, err)
		assert.Len(t, urls, 3)
	})

	t.Run("applies include and exclude filters", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/robots.txt":
				w.WriteHeader(http.StatusNotFound)
			case "/sitemap.xml":
				_, _ = w.Write([]byte(`<?xml version="1.0"?>
				<urlset>
					<url><loc>https://shop.example.com/products/dress</loc></url>
					<url><loc>https://shop.example.com/products/gift-card</loc></url>
					<url><loc>https://shop.example.com/pages/about</loc></url>
				</urlset>`))
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		defer srv.Close()

		filter := &prex.URLFilter{
			Include: []*regexp.Regexp{regexp.MustCompile(`/products/`)},
			Exclude: []*regexp.Regexp{regexp.MustCompile(`gift-card`)},
		}

		s := prexhttp.NewSitemapService(nil)
		urls, err := s.DiscoverURLs(context.Background(), srv.URL, filter)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://shop.example.com/products/dress"}, urls)
	})

	t.Run("no sitemap yields an empty slice", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		s := prexhttp.NewSitemapService(nil)
		urls, err := s.DiscoverURLs(context.Background(), srv.URL, nil)

		require.NoError(t, err)
		assert.Empty(t, urls)
	})
}
