// Package parser converts uploaded file bytes into the ordered Block model.
package parser

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/dgallion1/doctrans/internal/document"
)

// ErrUnsupportedFormat is returned when the declared type is not in the
// supported upload set.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// CorruptFileError indicates the file container could not be parsed.
type CorruptFileError struct {
	Format document.Format
	Err    error
}

func (e *CorruptFileError) Error() string {
	return fmt.Sprintf("corrupt %s file: %v", e.Format, e.Err)
}

func (e *CorruptFileError) Unwrap() error { return e.Err }

// Parse extracts the normalized Block sequence from raw file bytes. Image
// formats are not handled here; the pipeline routes those through OCR and
// feeds the recognized text back through ParseText.
func Parse(data []byte, format document.Format) ([]document.Block, error) {
	switch format {
	case document.FormatPDF:
		return parsePDF(data)
	case document.FormatDOCX:
		return parseDOCX(data)
	case document.FormatTXT:
		return ParseText(decodeText(data)), nil
	case document.FormatCSV:
		return parseCSV(data)
	case document.FormatXLSX:
		return parseXLSX(data)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

// decodeText interprets bytes as UTF-8, falling back to Latin-1 for legacy
// exports.
func decodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}
