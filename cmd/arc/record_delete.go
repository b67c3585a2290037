package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RecordDeleteResult is the response for record delete.
type RecordDeleteResult struct {
	Status string `json:"status"`
	Index  string `json:"index"`
}

func init() {
	recordCmd.AddCommand(recordDeleteCmd)
}

var recordDeleteCmd = &cobra.Command{
	Use:   "delete <index>",
	Short: "Delete the first record with the given Index",
	Long: `Delete the first record whose Index matches and rewrite the document.

Example:
  arc record delete A-001`,
	Args: cobra.ExactArgs(1),
	RunE: runRecordDelete,
}

func runRecordDelete(cmd *cobra.Command, args []string) error {
	db := mustOpenDatabase()

	if err := db.DeleteByIndex(args[0]); err != nil {
		exitWithError(ExitNotFound, "%v", err)
	}
	mustSave(db)

	if humanOutput {
		fmt.Printf("Record %s deleted.\n", args[0])
	} else {
		outputJSON(RecordDeleteResult{Status: "deleted", Index: args[0]})
	}
	return nil
}
