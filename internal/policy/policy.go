// Package policy maps a source file format to the set of output formats the
// download boundary may serve for it.
package policy

import "github.com/dgallion1/doctrans/internal/document"

// AllowedOutputs returns the output formats permitted for a source format,
// preferred format first. The result is deterministic; an unknown source
// yields nil.
func AllowedOutputs(source document.Format) []document.Format {
	switch source {
	case document.FormatXLSX:
		return []document.Format{document.FormatXLSX, document.FormatCSV}
	case document.FormatCSV:
		return []document.Format{document.FormatCSV, document.FormatXLSX}
	case document.FormatPDF:
		return []document.Format{document.FormatPDF, document.FormatDOCX, document.FormatTXT}
	case document.FormatDOCX:
		return []document.Format{document.FormatDOCX, document.FormatPDF, document.FormatTXT}
	case document.FormatTXT:
		return []document.Format{document.FormatTXT}
	case document.FormatPNG, document.FormatJPG:
		return []document.Format{document.FormatTXT, document.FormatDOCX, document.FormatPDF}
	}
	return nil
}

// Allows reports whether target is a permitted output for source.
func Allows(source, target document.Format) bool {
	for _, f := range AllowedOutputs(source) {
		if f == target {
			return true
		}
	}
	return false
}
