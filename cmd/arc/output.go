package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mwhitt/arc/internal/archive"
)

// Constants for output formatting.
const (
	DefaultSearchLimit = 50 // Default limit for search results

	ListTitleMaxLen   = 50 // Title truncation in record list output
	ListContentMaxLen = 60 // Content truncation in record list output
	SearchTitleMaxLen = 70 // Title truncation in search result summaries
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// exitCodeFor maps archive error kinds to exit codes.
func exitCodeFor(err error) int {
	var ve *archive.ValidationError
	var de *archive.DuplicateFieldError
	var se *archive.StorageError
	switch {
	case errors.As(err, &ve), errors.As(err, &de):
		return ExitDataError
	case errors.As(err, &se):
		return ExitStorageError
	default:
		return ExitError
	}
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// padRight pads a string with spaces on the right.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// printRecordDetail prints one record in human-readable detail form.
func printRecordDetail(rec *archive.Record) {
	fmt.Println(rec.Index)
	fmt.Println(strings.Repeat("=", SearchTitleMaxLen))
	fmt.Printf("Title:      %s\n", rec.Title)
	fmt.Printf("Time:       %s\n", rec.Time)
	fmt.Printf("Author:     %s\n", rec.AuthorOrPublisher)
	fmt.Printf("Mode:       %s\n", rec.ContentMode)
	if rec.ContentMode == archive.ModeFile {
		fmt.Printf("File:       %s\n", rec.Content)
	} else {
		fmt.Printf("Content:    %s\n", truncateString(rec.Content, ListContentMaxLen))
	}
	if rec.CustomFields != nil {
		for _, name := range rec.CustomFields.Names() {
			value, _ := rec.CustomFields.Get(name)
			fmt.Printf("%s%s\n", padRight(name+":", 12), value)
		}
	}
	fmt.Printf("Created:    %s\n", rec.CreatedAt)
}
