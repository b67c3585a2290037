package main

import (
	"github.com/spf13/cobra"
)

func init() {
	recordCmd.AddCommand(recordGetCmd)
}

var recordGetCmd = &cobra.Command{
	Use:   "get <index>",
	Short: "Get the first record with the given Index",
	Long: `Get the first record whose Index matches.

Example:
  arc record get A-001`,
	Args: cobra.ExactArgs(1),
	RunE: runRecordGet,
}

func runRecordGet(cmd *cobra.Command, args []string) error {
	db := mustOpenDatabase()

	rec := db.FindByIndex(args[0])
	if rec == nil {
		exitWithError(ExitNotFound, "record not found: %s", args[0])
	}

	if humanOutput {
		printRecordDetail(rec)
	} else {
		outputJSON(rec)
	}
	return nil
}
