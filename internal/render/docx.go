package render

import (
	"bytes"
	"fmt"
	"strings"

	docx "github.com/fumiama/go-docx"

	"github.com/dgallion1/doctrans/internal/document"
)

// renderDOCX maps Markdown emphasis to run formatting and list lines to
// bulleted paragraphs.
func renderDOCX(markdown string) ([]byte, error) {
	w := docx.New().WithDefaultTheme()

	counters := listCounter{}
	for _, b := range parseMarkdown(markdown) {
		switch b.kind {
		case mdPageBreak:
			w.AddParagraph().AddPageBreaks()
		case mdHeading:
			counters.reset()
			p := w.AddParagraph()
			for _, s := range b.spans {
				r := p.AddText(s.text)
				r.Bold()
				r.Size(headingSize(b.level))
			}
		case mdSheetHeader:
			counters.reset()
			p := w.AddParagraph()
			r := p.AddText(document.SheetHeader(b.sheet))
			r.Bold()
		case mdListItem:
			p := w.AddParagraph()
			p.AddText(strings.Repeat("    ", b.level) + counters.marker(b, "• "))
			addSpans(p, b.spans)
		default:
			counters.reset()
			addSpans(w.AddParagraph(), b.spans)
		}
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write docx: %w", err)
	}
	return buf.Bytes(), nil
}

func addSpans(p *docx.Paragraph, spans []span) {
	for _, s := range spans {
		if s.text == "" {
			continue
		}
		r := p.AddText(s.text)
		if s.bold {
			r.Bold()
		}
		if s.italic {
			r.Italic()
		}
	}
}

// headingSize returns the half-point font size for a heading level.
func headingSize(level int) string {
	switch level {
	case 1:
		return "32"
	case 2:
		return "28"
	default:
		return "24"
	}
}
