// Package http provides an HTTP-based implementation of prex.Fetcher for
// fetching storefront pages that don't require JavaScript rendering, and
// a sitemap-based product URL discovery service.
package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/fwojciec/prex"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// defaultUserAgents is the rotation pool. Many storefronts throttle or
// block repeated requests from a single agent string.
var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
}

// Ensure Fetcher implements prex.Fetcher at compile time.
var _ prex.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP requests.
// Unlike rod.Fetcher, this does not execute JavaScript and is suitable
// for server-rendered storefronts only. Failures are classified per the
// prex.Fetcher contract: transient conditions are EUNAVAILABLE, client
// errors EINVALID, server errors EINTERNAL.
type Fetcher struct {
	client     *http.Client
	timeout    time.Duration
	userAgents []string
	next       atomic.Uint64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgents replaces the default user agent rotation pool.
func WithUserAgents(agents ...string) Option {
	return func(f *Fetcher) {
		f.userAgents = agents
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:    DefaultFetchTimeout,
		userAgents: defaultUserAgents,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", prex.Errorf(prex.EINVALID, "invalid URL %q: %v", url, err)
	}
	if ua := f.nextUserAgent(); ua != "" {
		req.Header.Set("User-Agent", ua)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		// Transport failures and timeouts are transient from the
		// caller's perspective.
		if errors.Is(err, context.Canceled) {
			return "", err
		}
		return "", prex.Errorf(prex.EUNAVAILABLE, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp.StatusCode, url); err != nil {
		return "", err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", prex.Errorf(prex.EUNAVAILABLE, "read %s: %v", url, err)
	}

	return string(body), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// nextUserAgent returns user agents round-robin.
func (f *Fetcher) nextUserAgent() string {
	if len(f.userAgents) == 0 {
		return ""
	}
	n := f.next.Add(1) - 1
	return f.userAgents[n%uint64(len(f.userAgents))]
}

// classifyStatus maps HTTP status codes onto the fetcher error contract.
// 429 and 503/504 indicate throttling or temporary outage and may be
// retried; other client errors are permanent for this URL.
func classifyStatus(code int, url string) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusTooManyRequests,
		code == http.StatusServiceUnavailable,
		code == http.StatusGatewayTimeout:
		return prex.Errorf(prex.EUNAVAILABLE, "HTTP %d for %s", code, url)
	case code >= 400 && code < 500:
		return prex.Errorf(prex.EINVALID, "HTTP %d for %s", code, url)
	default:
		return prex.Errorf(prex.EINTERNAL, "HTTP %d for %s", code, url)
	}
}
