// Package crawl provides product scraping orchestration. It coordinates
// URL discovery, fetching, extraction, and storage of product records
// across listing pagination and batches of detail pages.
package crawl

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/prex"
	"golang.org/x/sync/errgroup"
)

// Scraper orchestrates product scraping. Fetcher and Pipeline are
// required; everything else is optional and enables a feature when set.
type Scraper struct {
	Fetcher     prex.Fetcher
	Pipeline    prex.Pipeline
	NextPage    prex.NextPageResolver
	Sitemaps    prex.SitemapService
	Products    prex.ProductService
	Content     prex.ContentExtractor
	Converter   prex.Converter
	RateLimiter prex.DomainLimiter
	Frontier    prex.PageFrontier
	Concurrency int
	MaxPages    int
	RetryDelays []time.Duration
}

// Result holds the outcome of a scrape operation.
type Result struct {
	Products []*prex.Reconciled
	Pages    int
	Saved    int
	Failed   int
}

// ProgressEvent reports progress during a scrape operation.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting scrape progress.
type ProgressFunc func(event ProgressEvent)

// ScrapeListing walks listing pages starting at startURL, following
// pagination up to MaxPages (default 10). Products are deduplicated by
// URL across pages. Pagination stops early when a page contributes no new
// products, which guards against resolvers that guess page parameters.
func (s *Scraper) ScrapeListing(ctx context.Context, startURL string, progress ProgressFunc) (*Result, error) {
	maxPages := s.MaxPages
	if maxPages <= 0 {
		maxPages = 10
	}

	var result Result
	seen := make(map[string]bool)
	pageURL := startURL

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: maxPages})
	}

	for page := 0; page < maxPages && pageURL != ""; page++ {
		if ctx.Err() != nil {
			break
		}

		html, err := s.fetchPage(ctx, pageURL)
		if err != nil {
			result.Failed++
			if progress != nil {
				progress(ProgressEvent{Type: ProgressFailed, URL: pageURL, Error: err})
			}
			break
		}

		recs, err := s.Pipeline.ExtractListing(html, pageURL)
		if err != nil {
			return nil, err
		}

		added := 0
		for _, rec := range recs {
			if seen[rec.URL] {
				continue
			}
			seen[rec.URL] = true
			result.Products = append(result.Products, rec)
			added++

			if s.Products != nil {
				if err := s.saveRecord(ctx, rec, pageURL); err != nil {
					result.Failed++
					continue
				}
				result.Saved++
			}
		}
		result.Pages++

		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: page + 1,
				Total:     maxPages,
				URL:       pageURL,
			})
		}

		if added == 0 || s.NextPage == nil {
			break
		}
		next, ok := s.NextPage.ResolveNext(html, pageURL)
		if !ok || next == pageURL {
			break
		}
		pageURL = next
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: result.Pages, Total: maxPages})
	}
	return &result, nil
}

// ScrapeDetail fetches one product detail page and extracts its record.
func (s *Scraper) ScrapeDetail(ctx context.Context, pageURL string) (*prex.Reconciled, error) {
	html, err := s.fetchPage(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	rec, err := s.Pipeline.ExtractDetail(html, pageURL)
	if err != nil {
		return nil, err
	}
	s.fillDescription(rec, html)
	if s.Products != nil {
		if err := s.saveRecord(ctx, rec, pageURL); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

// detailResult holds the outcome of processing a single detail URL.
type detailResult struct {
	position int
	url      string
	rec      *prex.Reconciled
	err      error
}

// BatchScrapeDetails fetches detail pages concurrently, preserving the
// input order in the result. Individual page failures are counted, not
// fatal.
func (s *Scraper) BatchScrapeDetails(ctx context.Context, urls []string, progress ProgressFunc) (*Result, error) {
	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	resultCh := make(chan detailResult, len(urls))
	var completed atomic.Int64
	total := len(urls)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, u := range urls {
			g.Go(func() error {
				html, err := s.fetchPage(gctx, u)
				if err != nil {
					resultCh <- detailResult{position: i, url: u, err: err}
					return nil
				}
				rec, err := s.Pipeline.ExtractDetail(html, u)
				if err == nil {
					s.fillDescription(rec, html)
				}
				resultCh <- detailResult{position: i, url: u, rec: rec, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]detailResult, len(urls))
	var result Result
	for r := range resultCh {
		completed.Add(1)
		results[r.position] = r

		eventType := ProgressCompleted
		if r.err != nil {
			result.Failed++
			eventType = ProgressFailed
		}
		if progress != nil {
			progress(ProgressEvent{
				Type:      eventType,
				Completed: int(completed.Load()),
				Total:     total,
				URL:       r.url,
				Error:     r.err,
			})
		}
	}

	for _, r := range results {
		if r.err != nil || r.rec == nil {
			continue
		}
		result.Products = append(result.Products, r.rec)
		result.Pages++

		if s.Products != nil {
			if err := s.saveRecord(ctx, r.rec, r.url); err != nil {
				result.Failed++
				continue
			}
			result.Saved++
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}
	return &result, nil
}

// DiscoverDetails finds product detail URLs via the sitemap service and
// scrapes them as a batch. The filter restricts which sitemap URLs are
// scraped; with a nil filter, URL path heuristics keep detail pages only.
// Duplicate URLs are scraped once. A Scraper with a Frontier set also
// skips URLs it has pushed on previous calls, so repeated discovery runs
// against the same site only fetch pages not seen before.
func (s *Scraper) DiscoverDetails(ctx context.Context, baseURL string, filter *prex.URLFilter, progress ProgressFunc) (*Result, error) {
	if s.Sitemaps == nil {
		return nil, prex.Errorf(prex.EINVALID, "no sitemap service configured")
	}
	urls, err := s.Sitemaps.DiscoverURLs(ctx, baseURL, filter)
	if err != nil {
		return nil, err
	}
	if filter == nil {
		kept := urls[:0]
		for _, u := range urls {
			if DetectPageKind(u) == prex.PageDetail {
				kept = append(kept, u)
			}
		}
		urls = kept
	}

	// Sitemap indexes commonly repeat URLs across sub-sitemaps.
	frontier := s.Frontier
	if frontier == nil {
		frontier = NewFrontier(uint(len(urls))+1, 0.01)
	}
	fresh := urls[:0]
	for _, u := range urls {
		if frontier.Push(prex.PageRef{URL: u, Kind: DetectPageKind(u)}) {
			fresh = append(fresh, u)
		}
	}
	urls = fresh

	return s.BatchScrapeDetails(ctx, urls, progress)
}

// fetchPage rate-limits, fetches and retries one URL.
func (s *Scraper) fetchPage(ctx context.Context, pageURL string) (string, error) {
	if s.RateLimiter != nil {
		u, err := url.Parse(pageURL)
		if err != nil {
			return "", prex.Errorf(prex.EINVALID, "invalid URL %q: %v", pageURL, err)
		}
		if err := s.RateLimiter.Wait(ctx, u.Host); err != nil {
			return "", err
		}
	}

	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return FetchWithRetryDelays(ctx, pageURL, s.Fetcher.Fetch, nil, delays)
}

// fillDescription backfills a missing description from the page's main
// content, converted to Markdown when a converter is configured. Detail
// pages frequently keep the description outside any recognizable product
// markup, where the extractors cannot see it.
func (s *Scraper) fillDescription(rec *prex.Reconciled, html string) {
	if rec == nil || rec.Description != "" || s.Content == nil {
		return
	}
	content, err := s.Content.ExtractContent(html)
	if err != nil || content == nil || content.HTML == "" {
		return
	}
	desc := content.HTML
	if s.Converter != nil {
		if md, err := s.Converter.Convert(content.HTML); err == nil {
			desc = md
		}
	}
	rec.Description = strings.TrimSpace(desc)
}

// saveRecord persists a reconciled record keyed by its product URL.
func (s *Scraper) saveRecord(ctx context.Context, rec *prex.Reconciled, sourceURL string) error {
	return s.Products.SaveProduct(ctx, &prex.ProductRecord{
		Product:     *rec,
		Fingerprint: Fingerprint(rec),
		SourceURL:   sourceURL,
		FetchedAt:   time.Now().UTC(),
	})
}

// Fingerprint computes a stable content hash of a record using xxhash
// over its canonical JSON form. Used for change detection between runs.
func Fingerprint(rec *prex.Reconciled) string {
	data, err := json.Marshal(rec)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%x", xxhash.Sum64(data))
}
