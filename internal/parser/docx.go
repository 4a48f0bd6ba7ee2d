package parser

import (
	"bytes"
	"strings"

	docx "github.com/fumiama/go-docx"

	"github.com/dgallion1/doctrans/internal/document"
)

// parseDOCX walks body paragraphs in document order. Paragraph text goes
// through the same line rules as plain text, so list markers and literal
// "---" lines keep their structural meaning.
func parseDOCX(data []byte) ([]document.Block, error) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &CorruptFileError{Format: document.FormatDOCX, Err: err}
	}

	var blocks []document.Block
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := docxParagraphText(para)
		if text == "" {
			continue
		}
		blocks = append(blocks, ParseText(text)...)
	}

	return blocks, nil
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
