package main

import (
	"fmt"
	"os"

	"github.com/mwhitt/arc/internal/archive"
	"github.com/mwhitt/arc/internal/content"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify file-mode content references",
	Long: `Verify archive integrity: every file-mode record's referenced path
must exist. Text-mode records always pass; references are never checked at
write time, only here.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

// CheckResult is the response for the check command.
type CheckResult struct {
	Status  string       `json:"status"`
	Records int          `json:"records"`
	Issues  []CheckIssue `json:"issues"`
}

// CheckIssue represents a single issue found during check.
type CheckIssue struct {
	Index  string `json:"index"`
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	db := mustOpenDatabase()

	var issues []CheckIssue
	for _, rec := range db.List() {
		if rec.ContentMode != archive.ModeFile {
			continue
		}
		if err := content.Check(rec); err != nil {
			issues = append(issues, CheckIssue{
				Index:  rec.Index,
				Path:   rec.Content,
				Reason: err.Error(),
			})
		}
	}

	status := "ok"
	if len(issues) > 0 {
		status = "issues_found"
	}
	result := CheckResult{
		Status:  status,
		Records: len(db.Records),
		Issues:  issues,
	}
	if result.Issues == nil {
		result.Issues = []CheckIssue{}
	}

	if humanOutput {
		if len(issues) == 0 {
			fmt.Printf("OK: %d records, all file references resolve\n", result.Records)
		} else {
			fmt.Printf("%d issue(s) in %d records:\n", len(issues), result.Records)
			for _, issue := range issues {
				fmt.Printf("- %s: %s\n", issue.Index, issue.Reason)
			}
		}
	} else {
		outputJSON(result)
	}

	if len(issues) > 0 {
		os.Exit(ExitDataError)
	}
	return nil
}
