package content

import (
	"strings"

	"github.com/ledongthuc/pdf"
)

// maxPDFPages bounds how many pages are extracted from a referenced PDF.
// Searchable text from the opening pages is enough to locate a document.
const maxPDFPages = 10

// pdfText extracts plain text from the first maxPages pages of a PDF.
func pdfText(path string, maxPages int) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if r.NumPage() < maxPages {
		maxPages = r.NumPage()
	}

	var sb strings.Builder
	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}
