package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ews-cloud/hawkins-county-commission-search/internal/crawler"
	"github.com/ews-cloud/hawkins-county-commission-search/internal/extractor"
	"github.com/ews-cloud/hawkins-county-commission-search/internal/fetcher"
	"github.com/ews-cloud/hawkins-county-commission-search/internal/harvest"
)

var harvestURL string

var harvestCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Crawl the commission site and rebuild the corpus",
	Long: `Crawl the configured commission website, extract text from the
linked PDF documents, and write the assembled corpus to storage.

Examples:
  # Harvest the configured source
  commission-search harvest

  # Harvest a specific root URL
  commission-search harvest --url https://www.hawkinscountyclerk.com/commission-information/`,
	RunE: runHarvest,
}

func init() {
	rootCmd.AddCommand(harvestCmd)

	harvestCmd.Flags().StringVar(&harvestURL, "url", "", "Root URL to harvest instead of the configured source")
}

func runHarvest(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := GetConfig()
	slog.Debug("harvest command starting", "verbose", verbose)

	rootURL := harvestURL
	if rootURL == "" {
		rootURL = cfg.Source.RootURL
	}
	if rootURL == "" {
		return fmt.Errorf("no source configured and no --url provided")
	}

	st, err := newStore(ctx, cfg.Storage)
	if err != nil {
		return err
	}

	discoverer := crawler.New(crawler.Config{
		AllowedDomain: cfg.Source.AllowedDomain,
		Delay:         cfg.Crawler.Delay,
		Timeout:       cfg.Crawler.Timeout,
		UserAgent:     cfg.Crawler.UserAgent,
		Parallelism:   cfg.Crawler.Parallelism,
	})
	client := fetcher.New(cfg.Harvest.FetchTimeout, cfg.Crawler.UserAgent)

	pipeline := harvest.New(discoverer, client, extractor.New(), st, harvest.Config{
		Workers: cfg.Harvest.Workers,
	})

	fmt.Printf("Harvesting: %s\n", rootURL)

	result, err := pipeline.Run(ctx, rootURL)
	if err != nil {
		return fmt.Errorf("harvest failed: %w", err)
	}

	fmt.Printf("  Attachments: %d, Records: %d, Pages archived: %d, Duration: %v\n",
		result.Attachments, result.Records, result.PagesArchived, result.Duration)
	fmt.Printf("  Archive prefix: %s\n", result.Prefix)

	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			fmt.Printf("  Warning: %v\n", e)
		}
	}

	return nil
}
