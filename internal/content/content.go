// Package content resolves a record's body text and checks file-mode
// references.
package content

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/mwhitt/arc/internal/archive"
)

// MaxFileBytes caps how much of a referenced plain file is read for
// indexing and preview.
const MaxFileBytes = 1024 * 1024

// Body returns the searchable text for a record. Text-mode records return
// the content string. File-mode records return the referenced file's text:
// PDFs are extracted page by page, anything else is read as UTF-8 up to
// MaxFileBytes. Files that are missing, unreadable, or not text yield an
// empty body and no error, so indexing degrades instead of failing.
func Body(rec *archive.Record) string {
	if rec.ContentMode == archive.ModeText {
		return rec.Content
	}

	path := rec.Content
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		text, err := pdfText(path, maxPDFPages)
		if err != nil {
			return ""
		}
		return text
	}

	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxFileBytes))
	if err != nil || len(data) == 0 {
		return ""
	}
	if !utf8.Valid(data) {
		return "" // Binary content is not indexable
	}
	return string(data)
}

// Check verifies a record's content reference. Text-mode records always
// pass; file-mode records fail if the referenced path does not exist or is
// a directory.
func Check(rec *archive.Record) error {
	if rec.ContentMode != archive.ModeFile {
		return nil
	}
	info, err := os.Stat(rec.Content)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("referenced file does not exist: %s", rec.Content)
		}
		return fmt.Errorf("stat %s: %w", rec.Content, err)
	}
	if info.IsDir() {
		return fmt.Errorf("referenced path is a directory: %s", rec.Content)
	}
	return nil
}
