package render

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/dgallion1/doctrans/internal/document"
)

const (
	pdfBodySize   = 11.0
	pdfLineHeight = 5.5
)

// renderPDF builds a flowed A4 document: wrapped paragraphs with styled
// runs, indented list items, and a new page at every page-break marker.
func renderPDF(markdown string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	counters := listCounter{}
	for _, b := range parseMarkdown(markdown) {
		switch b.kind {
		case mdPageBreak:
			pdf.AddPage()
		case mdHeading:
			counters.reset()
			pdf.SetFont("Helvetica", "B", pdfHeadingSize(b.level))
			pdf.MultiCell(0, 8, tr(b.plainText()), "", "L", false)
			pdf.Ln(2)
		case mdSheetHeader:
			counters.reset()
			pdf.SetFont("Helvetica", "B", 13)
			pdf.MultiCell(0, 7, tr(document.SheetHeader(b.sheet)), "", "L", false)
			pdf.Ln(2)
		case mdListItem:
			pdf.SetLeftMargin(20 + 5*float64(b.level))
			pdf.SetX(20 + 5*float64(b.level))
			pdf.SetFont("Helvetica", "", pdfBodySize)
			pdf.Write(pdfLineHeight, tr(counters.marker(b, "• ")))
			writeSpans(pdf, tr, b.spans)
			pdf.SetLeftMargin(20)
			pdf.Ln(pdfLineHeight + 1.5)
		default:
			counters.reset()
			pdf.SetFont("Helvetica", "", pdfBodySize)
			writeSpans(pdf, tr, b.spans)
			pdf.Ln(pdfLineHeight + 2.5)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSpans(pdf *fpdf.Fpdf, tr func(string) string, spans []span) {
	for _, s := range spans {
		if s.text == "" {
			continue
		}
		style := ""
		if s.bold {
			style += "B"
		}
		if s.italic {
			style += "I"
		}
		pdf.SetFont("Helvetica", style, pdfBodySize)
		pdf.Write(pdfLineHeight, tr(s.text))
	}
}

func pdfHeadingSize(level int) float64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 14
	default:
		return 12
	}
}
