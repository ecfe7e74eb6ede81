package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/prex"
	"github.com/fwojciec/prex/crawl"
	"github.com/fwojciec/prex/extract"
	"github.com/fwojciec/prex/goquery"
	"github.com/fwojciec/prex/htmltomarkdown"
	prexhttp "github.com/fwojciec/prex/http"
	"github.com/fwojciec/prex/predict"
	"github.com/fwojciec/prex/rod"
	prexslog "github.com/fwojciec/prex/slog"
	"github.com/fwojciec/prex/sqlite"
	"github.com/fwojciec/prex/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ProductService prex.ProductService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("prex"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'prex --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	logger := slog.New(slog.NewTextHandler(stderr, nil))

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set PREX_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.ProductService = sqlite.NewProductService(m.DB)
	deps.DB = m.DB
	deps.Products = m.ProductService
	deps.Sitemaps = prexhttp.NewSitemapService(nil)
	if cli.Verbose {
		deps.Sitemaps = prexslog.NewLoggingSitemapService(deps.Sitemaps, logger)
	}

	// Wire scrape dependencies based on command
	settings := scrapeSettingsFor(cli, cmd)
	if settings.needed || cmd == "stats" {
		pipeline, err := buildPipeline(settings)
		if err != nil {
			return err
		}
		if cli.Verbose {
			pipeline = prexslog.NewLoggingPipeline(pipeline, logger)
		}
		deps.Pipeline = pipeline
	}

	if settings.needed {
		var fetcher prex.Fetcher
		if settings.browser {
			fetcher, err = rod.NewFetcher()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				return fmt.Errorf("failed to start browser: %w", err)
			}
		} else {
			fetcher = prexhttp.NewFetcher()
		}
		if cli.Verbose {
			fetcher = prexslog.NewLoggingFetcher(fetcher, logger)
		}
		defer fetcher.Close()

		deps.Scraper = &crawl.Scraper{
			Fetcher:     fetcher,
			Pipeline:    deps.Pipeline,
			NextPage:    goquery.NewNextPage(),
			Sitemaps:    deps.Sitemaps,
			Products:    deps.Products,
			Content:     trafilatura.NewExtractor(),
			Converter:   htmltomarkdown.NewConverter(),
			RateLimiter: crawl.NewDomainLimiter(settings.rps),
			Concurrency: settings.concurrency,
			MaxPages:    settings.maxPages,
		}
	}

	return kongCtx.Run(deps)
}

// scrapeSettings collects per-command knobs that shape the scraper and
// pipeline wired in Run.
type scrapeSettings struct {
	needed      bool
	browser     bool
	rps         float64
	concurrency int
	maxPages    int
	quality     float64
	policy      string
}

func scrapeSettingsFor(cli *CLI, cmd string) scrapeSettings {
	switch cmd {
	case "scrape":
		return scrapeSettings{
			needed:   true,
			browser:  cli.Scrape.Browser,
			rps:      cli.Scrape.RPS,
			maxPages: cli.Scrape.MaxPages,
			quality:  cli.Scrape.Quality,
			policy:   cli.Scrape.Policy,
		}
	case "detail":
		return scrapeSettings{
			needed:  true,
			browser: cli.Detail.Browser,
			rps:     1,
			policy:  cli.Detail.Policy,
		}
	case "discover":
		return scrapeSettings{
			needed:      !cli.Discover.Preview,
			browser:     cli.Discover.Browser,
			rps:         cli.Discover.RPS,
			concurrency: cli.Discover.Concurrency,
		}
	}
	return scrapeSettings{}
}

// buildPipeline assembles the hybrid extraction pipeline: structured data
// first, heuristic DOM extraction second, signal predictors for
// enrichment.
func buildPipeline(settings scrapeSettings) (prex.Pipeline, error) {
	cfg := prex.DefaultConfig()
	if settings.policy != "" {
		policy, err := prex.ParsePolicy(settings.policy)
		if err != nil {
			return nil, err
		}
		cfg.Policy = policy
	}
	if settings.quality > 0 {
		cfg.QualityThreshold = settings.quality
	}

	return extract.NewPipeline(cfg,
		extract.WithExtractors(
			goquery.NewStructuredExtractor(),
			goquery.NewHeuristicExtractor(),
		),
		extract.WithDetailExtractor(goquery.NewDetailExtractor()),
		extract.WithSignals(predict.FromConfig(cfg)),
		extract.WithLocator(goquery.NewLocator()),
	)
}

func defaultDBPath() string {
	if path := os.Getenv("PREX_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "prex.db"
	}
	dir := filepath.Join(home, ".prex")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "prex.db")
}
