package parser

import (
	"bufio"
	"regexp"
	"strings"

	"github.com/dgallion1/doctrans/internal/document"
)

var listMarkerRe = regexp.MustCompile(`^([-*\x{2022}]|\d+\.)\s+(.*)$`)

// ParseText splits plain text into Blocks: blank lines separate paragraphs,
// list-marker lines become ListItems with indentation-derived levels, and a
// line that is exactly "---" becomes a page break.
func ParseText(text string) []document.Block {
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var blocks []document.Block
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			blocks = append(blocks, document.Paragraph(current.String()))
			current.Reset()
		}
	}

	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			flush()
		case trimmed == document.PageBreakMarker:
			flush()
			blocks = append(blocks, document.PageBreak())
		default:
			if m := listMarkerRe.FindStringSubmatch(trimmed); m != nil {
				flush()
				blocks = append(blocks, document.ListItem(m[2], indentLevel(line)))
				continue
			}
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	flush()

	return blocks
}

// indentLevel derives a list nesting level from leading whitespace, two
// spaces (or one tab) per level.
func indentLevel(line string) int {
	indent := 0
	for _, r := range line {
		switch r {
		case ' ':
			indent++
		case '\t':
			indent += 2
		default:
			return indent / 2
		}
	}
	return indent / 2
}
