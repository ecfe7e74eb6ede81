package main

import (
	"fmt"

	"github.com/fwojciec/prex"
	"github.com/fwojciec/prex/crawl"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  page %d/%d %s\n", event.Completed, event.Total, crawl.TruncateURL(event.URL, 60))
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		}
	}

	result, err := deps.Scraper.ScrapeListing(deps.Ctx, c.URL, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", prex.ErrorMessage(err))
		return err
	}

	for _, rec := range result.Products {
		fmt.Fprintf(deps.Stdout, "%-12s  %-40s  %s\n",
			crawl.FormatPrice(rec.Price, rec.Currency), truncateName(rec.Name, 40), rec.URL)
	}

	fmt.Fprintf(deps.Stdout, "Saved %d of %d products from %d pages",
		result.Saved, len(result.Products), result.Pages)
	if result.Failed > 0 {
		fmt.Fprintf(deps.Stdout, " (%d failed)", result.Failed)
	}
	fmt.Fprintln(deps.Stdout)

	return nil
}

// truncateName shortens a product name for column output.
func truncateName(name string, maxLen int) string {
	if len(name) <= maxLen {
		return name
	}
	if maxLen <= 3 {
		return name[:maxLen]
	}
	return name[:maxLen-3] + "..."
}
