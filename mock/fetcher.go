package mock

import (
	"context"

	"github.com/fwojciec/prex"
)

var _ prex.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of prex.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ prex.NextPageResolver = (*NextPageResolver)(nil)

// NextPageResolver is a mock implementation of prex.NextPageResolver.
type NextPageResolver struct {
	ResolveNextFn func(html, currentURL string) (string, bool)
}

func (r *NextPageResolver) ResolveNext(html, currentURL string) (string, bool) {
	return r.ResolveNextFn(html, currentURL)
}
