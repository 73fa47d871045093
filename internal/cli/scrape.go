package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/opencapitol/gavel/internal/fetch"
	"github.com/opencapitol/gavel/internal/store"
)

var scrapeTimeout time.Duration

// scrapeCmd represents the scrape command
var scrapeCmd = &cobra.Command{
	Use:   "scrape <seed-url>",
	Short: "Crawl the document repository and store hearing records",
	Long: `Scrape walks the repository's browse pages from the seed URL,
discovers hearing packages, and stores each hearing's transcript and
metadata in the database.

The crawler honors robots.txt, rate-limits requests, caches pages, and
retries transient failures. Pages already stored are skipped.

Example:
  gavel scrape https://www.govinfo.gov/app/collection/CHRG`,
	Args: cobra.ExactArgs(1),
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().DurationVar(&scrapeTimeout, "timeout", 12*time.Hour, "total timeout for the crawl")
}

func runScrape(cmd *cobra.Command, args []string) error {
	seed := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.Output.Verbose)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), scrapeTimeout)
	defer cancel()

	st, err := store.Open(cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	client := fetch.NewClient(fetch.Options{
		Timeout:           cfg.Fetch.Timeout,
		UserAgent:         cfg.Fetch.UserAgent,
		MaxBodyBytes:      cfg.Fetch.MaxBodyBytes,
		MaxRetries:        cfg.Fetch.MaxRetries,
		RequestsPerSecond: cfg.Fetch.RequestsPerSecond,
		BurstSize:         cfg.Fetch.BurstSize,
		CacheTTL:          cfg.Fetch.CacheTTL,
	})

	fmt.Fprintf(os.Stderr, "Crawling %s; discovered pages are logged as they are scraped.\n", seed)
	fmt.Fprintf(os.Stderr, "The initial crawl takes a while on a fresh database.\n\n")

	scraper := fetch.NewScraper(client, st, log)
	return scraper.Crawl(ctx, seed)
}
