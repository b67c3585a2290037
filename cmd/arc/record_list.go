package main

import (
	"fmt"

	"github.com/mwhitt/arc/internal/archive"
	"github.com/spf13/cobra"
)

func init() {
	recordCmd.AddCommand(recordListCmd)
}

var recordListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all records",
	Long: `List all records in insertion order.

Example:
  arc record list`,
	Args: cobra.NoArgs,
	RunE: runRecordList,
}

func runRecordList(cmd *cobra.Command, args []string) error {
	db := mustOpenDatabase()
	records := db.List()

	if !humanOutput {
		if records == nil {
			records = []*archive.Record{}
		}
		outputJSON(records)
		return nil
	}

	if len(records) == 0 {
		fmt.Println("No records yet.")
		return nil
	}

	idxWidth := 5 // "INDEX"
	for _, rec := range records {
		if len(rec.Index) > idxWidth {
			idxWidth = len(rec.Index)
		}
	}

	fmt.Printf("%s  %s  %s\n", padRight("INDEX", idxWidth), padRight("TITLE", ListTitleMaxLen), "CREATED")
	for _, rec := range records {
		fmt.Printf("%s  %s  %s\n",
			padRight(rec.Index, idxWidth),
			padRight(truncateString(rec.Title, ListTitleMaxLen), ListTitleMaxLen),
			rec.CreatedAt)
	}
	return nil
}
