package parser

import (
	"fmt"
	"os"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/dgallion1/doctrans/internal/document"
)

// parsePDF extracts page text in document order. Pages are separated by
// PageBreak blocks so pagination survives the translation round-trip.
func parsePDF(data []byte) ([]document.Block, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "doctrans-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	f, reader, err := pdflib.Open(tmpPath)
	if err != nil {
		return nil, &CorruptFileError{Format: document.FormatPDF, Err: err}
	}
	defer f.Close()

	var blocks []document.Block
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil || strings.TrimSpace(text) == "" {
			continue
		}
		if len(blocks) > 0 {
			blocks = append(blocks, document.PageBreak())
		}
		blocks = append(blocks, ParseText(text)...)
	}

	return blocks, nil
}
