package render

import (
	"strings"

	"github.com/dgallion1/doctrans/internal/document"
)

// renderTXT strips all Markdown markup, keeping paragraph breaks and plain
// "- " bullets for list items.
func renderTXT(markdown string) []byte {
	var parts []string
	counters := listCounter{}
	for _, b := range parseMarkdown(markdown) {
		switch b.kind {
		case mdPageBreak:
			// A page boundary degrades to a paragraph break in plain text.
			continue
		case mdListItem:
			parts = append(parts, strings.Repeat("  ", b.level)+counters.marker(b, "- ")+b.plainText())
		case mdSheetHeader:
			counters.reset()
			parts = append(parts, document.SheetHeader(b.sheet))
		default:
			counters.reset()
			parts = append(parts, b.plainText())
		}
	}
	out := strings.Join(parts, "\n\n")
	if out != "" {
		out += "\n"
	}
	return []byte(out)
}
