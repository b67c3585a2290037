// Package main provides the arc CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/mwhitt/arc/internal/archive"
	"github.com/mwhitt/arc/internal/config"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

// databaseFlag overrides the database path resolution
var databaseFlag string

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		// This ensures Cobra errors (like missing required flags) are visible
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arc",
	Short: "Schema-driven archive record keeper",
	Long: `arc manages a personal or departmental archive of document records.

Records carry four fixed fields (Index, Title, time, author_or_publisher)
plus user-declared custom fields, and their content is either inline text
or a reference to a file on disk. Everything persists to a single JSON
document; an ephemeral SQLite index provides full-text search.

Run arc with no subcommand for the interactive menu. Subcommands output
JSON by default for scripting; pass --human for formatted output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE:          runMenu,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&databaseFlag, "db", "", "Path to the archive database document")
	rootCmd.Version = Version
}

// mustResolveDatabasePath resolves the database document path, exits on error.
func mustResolveDatabasePath() string {
	path, err := config.ResolveDatabasePath(databaseFlag)
	if err != nil {
		exitWithError(ExitConfigError, "resolving database path: %v", err)
	}
	return path
}

// mustOpenDatabase loads the archive document, exits on storage errors.
// A missing document yields a fresh database with the default schema.
func mustOpenDatabase() *archive.Database {
	path := mustResolveDatabasePath()
	db, err := archive.Open(path)
	if err != nil {
		exitWithError(ExitStorageError, "%v", err)
	}
	return db
}

// mustSave persists the document, exits on storage errors.
func mustSave(db *archive.Database) {
	if err := db.Save(); err != nil {
		exitWithError(ExitStorageError, "%v", err)
	}
}
