package main

import (
	"context"
	"io"

	"github.com/fwojciec/prex"
	"github.com/fwojciec/prex/crawl"
	"github.com/fwojciec/prex/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	DB       *sqlite.DB
	Products prex.ProductService
	Sitemaps prex.SitemapService
	Pipeline prex.Pipeline
	Scraper  *crawl.Scraper
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Scrape   ScrapeCmd   `cmd:"" help:"Scrape products from a listing page, following pagination"`
	Detail   DetailCmd   `cmd:"" help:"Scrape a single product detail page"`
	Discover DiscoverCmd `cmd:"" help:"Discover detail pages via the sitemap and scrape them"`
	List     ListCmd     `cmd:"" help:"List stored products"`
	Delete   DeleteCmd   `cmd:"" help:"Delete a stored product"`
	Export   ExportCmd   `cmd:"" help:"Export stored products as JSON files"`
	Stats    StatsCmd    `cmd:"" help:"Show pipeline and database statistics"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL      string  `arg:"" help:"Listing page URL"`
	MaxPages int     `short:"m" default:"10" help:"Maximum listing pages to follow"`
	Quality  float64 `short:"q" default:"0.8" help:"Minimum quality score for listing output"`
	Policy   string  `default:"weighted" help:"Ensemble policy (weighted, confidence, majority)"`
	RPS      float64 `name:"rps" default:"1" help:"Per-domain requests per second"`
	Browser  bool    `short:"b" help:"Render pages in a headless browser"`
}

// DetailCmd is the "detail" subcommand.
type DetailCmd struct {
	URL     string `arg:"" help:"Product detail page URL"`
	Policy  string `default:"weighted" help:"Ensemble policy (weighted, confidence, majority)"`
	Browser bool   `short:"b" help:"Render the page in a headless browser"`
}

// DiscoverCmd is the "discover" subcommand.
type DiscoverCmd struct {
	URL         string   `arg:"" help:"Shop base URL"`
	Preview     bool     `short:"p" help:"Show URLs without scraping them"`
	Filter      []string `short:"F" name:"filter" help:"Filter URLs by regex (repeatable)"`
	Concurrency int      `short:"c" default:"10" help:"Concurrent fetch limit"`
	RPS         float64  `name:"rps" default:"1" help:"Per-domain requests per second"`
	Browser     bool     `short:"b" help:"Render pages in a headless browser"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Brand        *string  `help:"Filter by brand"`
	Availability *string  `help:"Filter by availability (InStock, OutOfStock, Unknown)"`
	MinQuality   *float64 `name:"min-quality" help:"Filter by minimum quality score"`
	Limit        int      `help:"Maximum number of records"`
	Offset       int      `help:"Number of records to skip"`
	Full         bool     `help:"Print full records as JSON"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	URL   string `arg:"" help:"Product URL"`
	Force bool   `help:"Confirm deletion"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Dir  string `arg:"" optional:"" default:"." help:"Output directory"`
	Name string `default:"products" help:"Export directory name"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct{}
