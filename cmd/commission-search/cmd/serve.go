package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ews-cloud/hawkins-county-commission-search/internal/mcpserver"
	"github.com/ews-cloud/hawkins-county-commission-search/internal/search"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the MCP server for commission record retrieval.

The server communicates via stdio and provides two tools:
  - search_documents: Search harvested records by query and filters
  - get_document: Get a specific record by ID

Example:
  commission-search serve`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := GetConfig()

	st, err := newStore(ctx, cfg.Storage)
	if err != nil {
		return err
	}

	corpus, err := st.GetCorpus(ctx)
	if err != nil {
		return fmt.Errorf("load corpus (run 'commission-search harvest' first): %w", err)
	}

	server := mcpserver.NewServer(mcpserver.Config{
		Name:    cfg.MCP.Name,
		Version: cfg.MCP.Version,
	}, search.NewEngine(corpus))

	fmt.Fprintf(cmd.ErrOrStderr(), "Starting MCP server over %d records...\n", len(corpus))

	return server.ServeStdio()
}
