package parser

import (
	"bytes"
	"encoding/csv"

	"github.com/dgallion1/doctrans/internal/document"
)

// csvSheetName is the implicit worksheet name for CSV uploads, so CSV and
// XLSX travel through the same sheet-header convention.
const csvSheetName = "Sheet1"

func parseCSV(data []byte) ([]document.Block, error) {
	reader := csv.NewReader(bytes.NewReader([]byte(decodeText(data))))
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &CorruptFileError{Format: document.FormatCSV, Err: err}
	}

	blocks := []document.Block{document.SheetHeaderBlock(csvSheetName)}
	for _, row := range records {
		blocks = append(blocks, document.SheetRow(row, csvSheetName))
	}
	return blocks, nil
}
