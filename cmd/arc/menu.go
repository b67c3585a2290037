package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mwhitt/arc/internal/archive"
	"github.com/mwhitt/arc/internal/content"
	"github.com/mwhitt/arc/internal/index"
	"github.com/spf13/cobra"
)

// runMenu runs the interactive menu loop. This is the root command: running
// arc with no subcommand lands here. Output is always human-formatted.
func runMenu(cmd *cobra.Command, args []string) error {
	db := mustOpenDatabase()
	return menuLoop(db, cmd.InOrStdin(), cmd.OutOrStdout())
}

// menuLoop drives the menu until the user exits or input runs out.
// Every mutation rewrites the document before the menu is shown again.
func menuLoop(db *archive.Database, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)

	for {
		fmt.Fprintln(out, "\nArchive Management Menu")
		fmt.Fprintln(out, "1) Show field schema")
		fmt.Fprintln(out, "2) Add custom field")
		fmt.Fprintln(out, "3) Add archive record")
		fmt.Fprintln(out, "4) List records")
		fmt.Fprintln(out, "5) Find record by Index")
		fmt.Fprintln(out, "6) Search records")
		fmt.Fprintln(out, "0) Exit")

		choice, err := promptLine(reader, out, "Select an option: ")
		if err != nil {
			return nil // EOF ends the session
		}

		switch choice {
		case "0":
			fmt.Fprintln(out, "Bye.")
			return nil
		case "1":
			menuShowSchema(db, out)
		case "2":
			menuAddField(db, reader, out)
		case "3":
			menuAddRecord(db, reader, out)
		case "4":
			menuListRecords(db, out)
		case "5":
			menuFindByIndex(db, reader, out)
		case "6":
			menuSearch(db, reader, out)
		default:
			fmt.Fprintln(out, "Invalid choice.")
		}
	}
}

// promptLine prints a prompt and reads one trimmed line.
func promptLine(reader *bufio.Reader, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func menuShowSchema(db *archive.Database, out io.Writer) {
	fmt.Fprintln(out, "\nBasic fields:")
	for _, name := range db.Schema.BasicFields.Names() {
		desc, _ := db.Schema.BasicFields.Get(name)
		fmt.Fprintf(out, "- %s: %s\n", name, desc)
	}

	fmt.Fprintln(out, "Custom fields:")
	if db.Schema.CustomFields.Len() == 0 {
		fmt.Fprintln(out, "- (none)")
		return
	}
	for _, name := range db.Schema.CustomFields.Names() {
		desc, _ := db.Schema.CustomFields.Get(name)
		fmt.Fprintf(out, "- %s: %s\n", name, desc)
	}
}

func menuAddField(db *archive.Database, reader *bufio.Reader, out io.Writer) {
	name, err := promptLine(reader, out, "Custom field name (e.g., department): ")
	if err != nil {
		return
	}
	description, err := promptLine(reader, out, "Description: ")
	if err != nil {
		return
	}

	if err := db.AddCustomField(name, description); err != nil {
		fmt.Fprintf(out, "%v\n", err)
		return
	}
	if err := db.Save(); err != nil {
		fmt.Fprintf(out, "%v\n", err)
		return
	}
	fmt.Fprintf(out, "Custom field %q saved.\n", name)
}

func menuAddRecord(db *archive.Database, reader *bufio.Reader, out io.Writer) {
	fmt.Fprintln(out, "\nFill in basic fields")
	idx, err := promptLine(reader, out, "Index: ")
	if err != nil {
		return
	}
	title, err := promptLine(reader, out, "Title: ")
	if err != nil {
		return
	}
	pubTime, err := promptLine(reader, out, "Published time: ")
	if err != nil {
		return
	}
	author, err := promptLine(reader, out, "Author or publisher: ")
	if err != nil {
		return
	}

	modeStr, err := promptLine(reader, out, "Store content as (text/file): ")
	if err != nil {
		return
	}
	mode := archive.ContentMode(strings.ToLower(modeStr))
	if !mode.Valid() {
		fmt.Fprintln(out, `Invalid content mode; choose "text" or "file".`)
		return
	}

	var body string
	if mode == archive.ModeText {
		body, err = promptLine(reader, out, "Enter text content: ")
	} else {
		body, err = promptLine(reader, out, "Enter local file path: ")
	}
	if err != nil {
		return
	}

	custom := archive.NewFieldMap()
	for _, name := range db.Schema.CustomFields.Names() {
		value, err := promptLine(reader, out, name+": ")
		if err != nil {
			return
		}
		custom.Set(name, value)
	}

	rec := archive.NewRecord(idx, title, pubTime, author, mode, body, custom)
	if err := db.AddRecord(rec); err != nil {
		fmt.Fprintf(out, "%v\n", err)
		return
	}
	if err := db.Save(); err != nil {
		fmt.Fprintf(out, "%v\n", err)
		return
	}
	fmt.Fprintln(out, "Record saved.")
}

func menuListRecords(db *archive.Database, out io.Writer) {
	records := db.List()
	if len(records) == 0 {
		fmt.Fprintln(out, "No records yet.")
		return
	}
	for i, rec := range records {
		fmt.Fprintf(out, "\n[%d] %s | %s\n", i+1, rec.Index, truncateString(rec.Title, ListTitleMaxLen))
		fmt.Fprintf(out, "    %s | %s | created %s\n", rec.Time, rec.AuthorOrPublisher, rec.CreatedAt)
	}
}

func menuFindByIndex(db *archive.Database, reader *bufio.Reader, out io.Writer) {
	idx, err := promptLine(reader, out, "Index to find: ")
	if err != nil {
		return
	}
	rec := db.FindByIndex(idx)
	if rec == nil {
		fmt.Fprintln(out, "Not found.")
		return
	}
	printMenuRecord(rec, out)
}

func menuSearch(db *archive.Database, reader *bufio.Reader, out io.Writer) {
	query, err := promptLine(reader, out, "Search query: ")
	if err != nil || query == "" {
		return
	}

	hits, err := searchWithIndex(db, query, DefaultSearchLimit)
	if err != nil {
		fmt.Fprintf(out, "search failed: %v\n", err)
		return
	}
	if len(hits) == 0 {
		fmt.Fprintln(out, "No matches.")
		return
	}
	for i, h := range hits {
		fmt.Fprintf(out, "%d. %s | %s\n", i+1, h.Index, truncateString(h.Title, SearchTitleMaxLen))
	}
}

// printMenuRecord writes a record's fields to the menu output.
func printMenuRecord(rec *archive.Record, out io.Writer) {
	fmt.Fprintf(out, "Index:               %s\n", rec.Index)
	fmt.Fprintf(out, "Title:               %s\n", rec.Title)
	fmt.Fprintf(out, "time:                %s\n", rec.Time)
	fmt.Fprintf(out, "author_or_publisher: %s\n", rec.AuthorOrPublisher)
	fmt.Fprintf(out, "content_mode:        %s\n", rec.ContentMode)
	fmt.Fprintf(out, "content:             %s\n", truncateString(rec.Content, ListContentMaxLen))
	if rec.CustomFields != nil {
		for _, name := range rec.CustomFields.Names() {
			value, _ := rec.CustomFields.Get(name)
			fmt.Fprintf(out, "%s%s\n", padRight(name+":", 21), value)
		}
	}
	fmt.Fprintf(out, "created_at:          %s\n", rec.CreatedAt)
}

// searchWithIndex opens the document's query index, rebuilds it when the
// document hash has changed, and runs the query.
func searchWithIndex(db *archive.Database, query string, limit int) ([]index.Hit, error) {
	idx, err := index.Open(index.PathFor(db.Path()))
	if err != nil {
		return nil, err
	}
	defer idx.Close()

	if err := rebuildIfStale(db, idx); err != nil {
		return nil, err
	}

	return idx.Search(query, limit)
}

// rebuildIfStale rebuilds the index when the stored source hash no longer
// matches the document on disk.
func rebuildIfStale(db *archive.Database, idx *index.Index) error {
	hash, err := index.ComputeSourceHash(db.Path())
	if err != nil {
		return err
	}
	stale, err := idx.NeedsRebuild(hash)
	if err != nil || stale {
		if _, err := rebuildIndex(db, idx, hash); err != nil {
			return err
		}
	}
	return nil
}

// rebuildIndex repopulates the index from the loaded document and records
// the source hash.
func rebuildIndex(db *archive.Database, idx *index.Index, hash string) (int, error) {
	n, err := idx.Rebuild(db.Records, content.Body)
	if err != nil {
		return 0, err
	}
	if err := idx.SetStoredHash(hash); err != nil {
		return 0, err
	}
	if err := idx.SetLastRebuildTime(time.Now()); err != nil {
		return 0, err
	}
	return n, nil
}
