// Package render turns the reassembled Markdown document into downloadable
// bytes for each supported output format.
package render

import (
	"errors"
	"fmt"

	"github.com/dgallion1/doctrans/internal/document"
)

// ErrUnsupportedTarget is returned for a download format this renderer does
// not produce or that the format policy disallows for the source.
var ErrUnsupportedTarget = errors.New("unsupported target format")

// Render produces the bytes for one output format. Callers are expected to
// have checked the format policy; Render only knows how to produce the five
// target formats.
func Render(markdown string, target document.Format) ([]byte, error) {
	switch target {
	case document.FormatTXT:
		return renderTXT(markdown), nil
	case document.FormatDOCX:
		return renderDOCX(markdown)
	case document.FormatPDF:
		return renderPDF(markdown)
	case document.FormatCSV:
		return renderCSV(markdown)
	case document.FormatXLSX:
		return renderXLSX(markdown)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedTarget, target)
}
