package main

import (
	"fmt"
	"strings"

	"github.com/mwhitt/arc/internal/index"
	"github.com/spf13/cobra"
)

var searchLimit int

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVar(&searchLimit, "limit", DefaultSearchLimit, "Maximum number of results")
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over records",
	Long: `Search record titles, authors, and content bodies.

The query runs against the SQLite full-text index derived from the document.
The index is rebuilt automatically when the document has changed since the
last rebuild. File-mode record bodies are extracted for indexing (PDF pages
or plain text); files that cannot be read are indexed by their metadata only.

Example:
  arc search "annual report"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db := mustOpenDatabase()

	hits, err := searchWithIndex(db, query, searchLimit)
	if err != nil {
		exitWithError(ExitError, "searching: %v", err)
	}

	if !humanOutput {
		if hits == nil {
			hits = []index.Hit{}
		}
		outputJSON(hits)
		return nil
	}

	if len(hits) == 0 {
		fmt.Println("No matches.")
		return nil
	}
	for i, h := range hits {
		fmt.Printf("%d. %s\n", i+1, h.Index)
		fmt.Printf("   %s\n", truncateString(h.Title, SearchTitleMaxLen))
		fmt.Printf("   %s (%s)\n\n", h.AuthorOrPublisher, h.CreatedAt)
	}
	return nil
}
