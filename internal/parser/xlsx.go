package parser

import (
	"bytes"

	"github.com/xuri/excelize/v2"

	"github.com/dgallion1/doctrans/internal/document"
)

func parseXLSX(data []byte) ([]document.Block, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &CorruptFileError{Format: document.FormatXLSX, Err: err}
	}
	defer f.Close()

	var blocks []document.Block
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, &CorruptFileError{Format: document.FormatXLSX, Err: err}
		}
		blocks = append(blocks, document.SheetHeaderBlock(sheet))
		for _, row := range rows {
			blocks = append(blocks, document.SheetRow(row, sheet))
		}
	}
	return blocks, nil
}
