// Package rod provides a browser-based implementation of prex.Fetcher for
// storefronts that render product data with JavaScript. Server-rendered
// shops should use the cheaper http.Fetcher instead.
package rod

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fwojciec/prex"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout is the default timeout for a single page fetch.
// Kept consistent with http.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements prex.Fetcher at compile time.
var _ prex.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// The underlying browser is recycled periodically to keep Chrome's memory
// growth bounded during long catalog crawls.
//
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager *BrowserManager
	timeout time.Duration
	closed  atomic.Bool
}

type options struct {
	timeout  time.Duration
	maxPages int64
}

// Option configures a Fetcher.
type Option func(*options)

// WithFetchTimeout sets the timeout for a single page fetch.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithFetchTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithMaxPages sets the number of pages fetched before the browser is
// recycled. Defaults to DefaultMaxPages if not specified.
func WithMaxPages(n int64) Option {
	return func(o *options) {
		o.maxPages = n
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	o := options{
		timeout:  DefaultFetchTimeout,
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(&o)
	}

	manager, err := NewBrowserManager(WithManagerMaxPages(o.maxPages))
	if err != nil {
		return nil, err
	}

	return &Fetcher{manager: manager, timeout: o.timeout}, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", prex.Errorf(prex.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", classifyBrowserErr(ctx, url, err)
	}
	defer page.Close()

	// Bind the context so navigation and DOM queries respect cancellation.
	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", classifyBrowserErr(ctx, url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", classifyBrowserErr(ctx, url, err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", classifyBrowserErr(ctx, url, err)
	}

	f.manager.IncrementPageCount()

	return html, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}

// classifyBrowserErr maps browser failures onto the fetcher error contract.
// Context errors pass through unchanged so callers can distinguish their
// own cancellation from a flaky page; everything else is treated as a
// transient condition worth retrying.
func classifyBrowserErr(ctx context.Context, url string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return prex.Errorf(prex.EUNAVAILABLE, "browser fetch %s: %v", url, err)
}
