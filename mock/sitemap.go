package mock

import (
	"context"

	"github.com/fwojciec/prex"
)

var _ prex.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of prex.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *prex.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *prex.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
