package main

import (
	"fmt"
	"regexp"

	"github.com/fwojciec/prex"
	"github.com/fwojciec/prex/crawl"
)

// Run executes the discover command.
func (c *DiscoverCmd) Run(deps *Dependencies) error {
	// Compile filters to URLFilter (validates regex patterns early)
	var urlFilter *prex.URLFilter
	if len(c.Filter) > 0 {
		urlFilter = &prex.URLFilter{}
		for _, pattern := range c.Filter {
			re, err := regexp.Compile(pattern)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error: invalid filter pattern %q: %v\n", pattern, err)
				return err
			}
			urlFilter.Include = append(urlFilter.Include, re)
		}
	}

	// Preview mode: show URLs without scraping
	if c.Preview {
		urls, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, c.URL, urlFilter)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", prex.ErrorMessage(err))
			return err
		}
		if urlFilter == nil {
			kept := urls[:0]
			for _, u := range urls {
				if crawl.DetectPageKind(u) == prex.PageDetail {
					kept = append(kept, u)
				}
			}
			urls = kept
		}
		for _, u := range urls {
			fmt.Fprintln(deps.Stdout, u)
		}
		return nil
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Found %d URLs\n", event.Total)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		}
	}

	result, err := deps.Scraper.DiscoverDetails(deps.Ctx, c.URL, urlFilter, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", prex.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d of %d products", result.Saved, len(result.Products))
	if result.Failed > 0 {
		fmt.Fprintf(deps.Stdout, " (%d failed)", result.Failed)
	}
	fmt.Fprintln(deps.Stdout)

	return nil
}
