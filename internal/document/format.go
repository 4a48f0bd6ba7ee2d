package document

import (
	"fmt"
	"strings"
)

// Format identifies a file format at the upload or download boundary.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatTXT  Format = "txt"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPNG  Format = "png"
	FormatJPG  Format = "jpg"
)

// FormatForFile maps a filename to its source Format by extension.
func FormatForFile(filename string) (Format, error) {
	ext := strings.ToLower(filename)
	if i := strings.LastIndex(ext, "."); i >= 0 {
		ext = ext[i+1:]
	}
	switch ext {
	case "pdf":
		return FormatPDF, nil
	case "docx":
		return FormatDOCX, nil
	case "txt":
		return FormatTXT, nil
	case "csv":
		return FormatCSV, nil
	case "xlsx":
		return FormatXLSX, nil
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPG, nil
	}
	return "", fmt.Errorf("unrecognized file extension: %q", ext)
}

// ParseFormat validates a download format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatTXT:
		return FormatTXT, nil
	case FormatDOCX:
		return FormatDOCX, nil
	case FormatPDF:
		return FormatPDF, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unknown output format: %q", s)
}

// IsImage reports whether the format is a raster image handled by OCR.
func (f Format) IsImage() bool {
	return f == FormatPNG || f == FormatJPG
}

// IsSpreadsheet reports whether the format carries tabular data.
func (f Format) IsSpreadsheet() bool {
	return f == FormatCSV || f == FormatXLSX
}

// ContentType returns the MIME type served for downloads of this format.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case FormatCSV:
		return "text/csv"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/plain; charset=utf-8"
	}
}
