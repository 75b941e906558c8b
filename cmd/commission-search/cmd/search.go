package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ews-cloud/hawkins-county-commission-search/internal/search"
	"github.com/ews-cloud/hawkins-county-commission-search/internal/snippet"
)

var (
	searchType   string
	searchYear   int
	searchStart  string
	searchEnd    string
	searchPDF    string
	searchMeet   string
	searchTitle  string
	searchSort   string
	searchLimit  int
	searchFormat string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the harvested corpus",
	Long: `Search the harvested commission records. With no query, all records
matching the filters are listed.

Examples:
  # Basic search
  commission-search search "solid waste budget"

  # Filter by record type and year
  commission-search search budget --type minutes --year 2023

  # All resolutions, newest first
  commission-search search --type resolution --sort newest

  # JSON output for scripting
  commission-search search zoning --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&searchType, "type", "", "Filter by type: agenda, minutes, or resolution")
	searchCmd.Flags().IntVar(&searchYear, "year", 0, "Filter by meeting year")
	searchCmd.Flags().StringVar(&searchStart, "start", "", "Earliest meeting date (YYYY-MM-DD)")
	searchCmd.Flags().StringVar(&searchEnd, "end", "", "Latest meeting date (YYYY-MM-DD)")
	searchCmd.Flags().StringVar(&searchPDF, "pdf", "", "Filter by attachment presence: 1 or 0")
	searchCmd.Flags().StringVar(&searchMeet, "meet", "", "Filter by meeting label substring")
	searchCmd.Flags().StringVar(&searchTitle, "title", "", "Filter by title substring")
	searchCmd.Flags().StringVar(&searchSort, "sort", "", "Sort order: relevance, newest, oldest, or title")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 10, "Maximum number of results")
	searchCmd.Flags().StringVar(&searchFormat, "format", "text", "Output format: text or json")
}

func runSearch(cmd *cobra.Command, args []string) error {
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

	engine := search.NewEngine(corpus)
	state := searchState(args)

	docs := engine.Evaluate(state)
	if searchLimit > 0 && len(docs) > searchLimit {
		docs = docs[:searchLimit]
	}

	if len(docs) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	terms := search.Terms(state.Query)

	if searchFormat == "json" {
		output, err := json.MarshalIndent(docs, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(output))
		return nil
	}

	fmt.Printf("Found %d results:\n\n", len(docs))
	for i, doc := range docs {
		fmt.Printf("─── Result %d ───\n", i+1)
		fmt.Printf("Title:   %s\n", doc.Title)
		fmt.Printf("Type:    %s\n", doc.Type)
		fmt.Printf("Date:    %s\n", doc.Date.Format("2006-01-02"))
		if doc.Meeting != "" {
			fmt.Printf("Meeting: %s\n", doc.Meeting)
		}
		fmt.Printf("URL:     %s\n", doc.SourceURL)
		fmt.Printf("ID:      %s\n", doc.ID)

		if excerpt := snippet.Excerpt(doc.Body, terms); excerpt != "" {
			fmt.Printf("Excerpt: %s\n", renderHighlight(excerpt, terms))
		}
		fmt.Println()
	}

	return nil
}

// searchState assembles the query state from the command flags,
// reusing the URL codec so flag values get the same lenient parsing as
// shared query strings.
func searchState(args []string) search.State {
	values := url.Values{}
	if len(args) > 0 {
		values.Set("q", args[0])
	}
	setNonEmpty(values, "type", searchType)
	if searchYear != 0 {
		values.Set("year", fmt.Sprintf("%d", searchYear))
	}
	setNonEmpty(values, "start", searchStart)
	setNonEmpty(values, "end", searchEnd)
	setNonEmpty(values, "pdf", searchPDF)
	setNonEmpty(values, "meet", searchMeet)
	setNonEmpty(values, "title", searchTitle)
	setNonEmpty(values, "sort", searchSort)
	return search.ParseState(values.Encode())
}

func setNonEmpty(values url.Values, key, value string) {
	if value != "" {
		values.Set(key, value)
	}
}

// renderHighlight marks query-term matches in terminal output.
func renderHighlight(text string, terms []string) string {
	var b strings.Builder
	for _, span := range snippet.Highlight(text, terms) {
		if span.Emphasized {
			b.WriteString("[" + span.Text + "]")
		} else {
			b.WriteString(span.Text)
		}
	}
	return b.String()
}
