package prex

import "context"

// Fetcher retrieves raw HTML from URLs. Implementations classify failures:
// transient conditions (timeouts, 429/503/504) carry the EUNAVAILABLE code
// and may be retried, other client errors carry EINVALID and are fatal.
// The extraction core never retries; that is the caller's job.
type Fetcher interface {
	// Fetch returns the HTML content of the given URL.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases fetcher resources (connections, browser processes).
	Close() error
}

// NextPageResolver discovers pagination links.
type NextPageResolver interface {
	// ResolveNext returns the URL of the page following currentURL.
	// The bool result is false when the page has no next link.
	ResolveNext(html, currentURL string) (string, bool)
}

// Converter converts HTML fragments to Markdown. Used for product
// descriptions, which frequently arrive as rich markup.
type Converter interface {
	Convert(html string) (string, error)
}

// Content is main-content extraction output used as a description fallback
// on detail pages without recognizable description markup. HTML holds the
// extracted content markup, ready for Markdown conversion.
type Content struct {
	Title string
	HTML  string
}

// ContentExtractor extracts the main content from an HTML page, removing
// boilerplate.
type ContentExtractor interface {
	ExtractContent(html string) (*Content, error)
}
