package main

import (
	"fmt"

	"github.com/mwhitt/arc/internal/index"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the query index from the document",
	Long: `Rebuild the SQLite full-text index from the database document.

The index normally rebuilds itself when the document changes; use this
after deleting the index file or if it becomes corrupted.`,
	Args: cobra.NoArgs,
	RunE: runRebuild,
}

// RebuildResult is the response for the rebuild command.
type RebuildResult struct {
	Status  string `json:"status"`
	Records int    `json:"records"`
	Path    string `json:"path"`
}

func runRebuild(cmd *cobra.Command, args []string) error {
	db := mustOpenDatabase()

	idx, err := index.Open(index.PathFor(db.Path()))
	if err != nil {
		exitWithError(ExitError, "opening index: %v", err)
	}
	defer idx.Close()

	hash, err := index.ComputeSourceHash(db.Path())
	if err != nil {
		exitWithError(ExitStorageError, "hashing document: %v", err)
	}

	n, err := rebuildIndex(db, idx, hash)
	if err != nil {
		exitWithError(ExitError, "rebuilding index: %v", err)
	}

	if humanOutput {
		fmt.Printf("Indexed %d records into %s\n", n, index.PathFor(db.Path()))
	} else {
		outputJSON(RebuildResult{Status: "rebuilt", Records: n, Path: index.PathFor(db.Path())})
	}
	return nil
}
