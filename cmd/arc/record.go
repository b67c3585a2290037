package main

import (
	"github.com/spf13/cobra"
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Manage archive records",
	Long: `Create, list, look up, and delete archive records.

Every mutation rewrites the whole database document. Run arc with no
subcommand for the interactive equivalent of these commands.`,
}

func init() {
	rootCmd.AddCommand(recordCmd)
}
