package prex

import "context"

// PageKind distinguishes listing pages from product detail pages.
type PageKind int

// Page kinds, ordered by crawl priority: listing pages are processed
// before the detail pages they discover.
const (
	PageUnknown PageKind = iota
	PageDetail
	PageListing
)

// PageRef is a URL queued for crawling.
type PageRef struct {
	URL  string
	Kind PageKind
}

// PageFrontier manages a crawl queue with deduplication.
type PageFrontier interface {
	// Push adds a page to the frontier.
	// Returns false if the URL has already been seen.
	Push(ref PageRef) bool

	// Pop returns the next page by priority.
	// Returns false if the frontier is empty.
	Pop() (PageRef, bool)

	// Len returns the number of pages in the queue.
	Len() int

	// Seen returns true if the URL has been processed or queued.
	Seen(url string) bool
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
