// Package document holds the structural model shared by the extraction,
// chunking and rendering stages: ordered Blocks plus the file format enums.
package document

import (
	"regexp"
	"strings"
)

// BlockKind discriminates the Block variants.
type BlockKind int

const (
	KindParagraph BlockKind = iota
	KindListItem
	KindSheetRow
	KindSheetHeader
	KindPageBreak
)

// PageBreakMarker is the literal line that represents a page boundary in the
// text channel. It is never sent to the translator.
const PageBreakMarker = "---"

// CellDelimiter joins spreadsheet cells inside the text channel. The exact
// string (space-pipe-space) is part of the wire contract with the renderer.
const CellDelimiter = " | "

// Block is one structural unit of an extracted document. Order of Blocks is
// significant and preserved end-to-end.
type Block struct {
	Kind  BlockKind
	Text  string   // paragraph or list item text
	Level int      // list nesting level, 0-based
	Cells []string // sheet row cells
	Sheet string   // worksheet name for sheet rows and headers
}

// Paragraph builds a paragraph Block.
func Paragraph(text string) Block {
	return Block{Kind: KindParagraph, Text: text}
}

// ListItem builds a list item Block at the given nesting level.
func ListItem(text string, level int) Block {
	return Block{Kind: KindListItem, Text: text, Level: level}
}

// SheetRow builds a spreadsheet row Block belonging to the named sheet.
func SheetRow(cells []string, sheet string) Block {
	return Block{Kind: KindSheetRow, Cells: cells, Sheet: sheet}
}

// SheetHeaderBlock builds the header Block that opens a worksheet section.
func SheetHeaderBlock(sheet string) Block {
	return Block{Kind: KindSheetHeader, Sheet: sheet}
}

// PageBreak builds a page boundary Block.
func PageBreak() Block {
	return Block{Kind: KindPageBreak}
}

// Wire renders the Block into the plain-text channel carried to the model.
func (b Block) Wire() string {
	switch b.Kind {
	case KindListItem:
		return strings.Repeat("  ", b.Level) + "- " + b.Text
	case KindSheetRow:
		return strings.TrimRight(strings.Join(b.Cells, CellDelimiter), " ")
	case KindSheetHeader:
		return SheetHeader(b.Sheet)
	case KindPageBreak:
		return PageBreakMarker
	default:
		return b.Text
	}
}

// SheetHeader formats the worksheet marker line. This exact textual form is
// the contract between extraction and rendering for spreadsheet round-trips.
func SheetHeader(name string) string {
	return "===== Sheet: " + name + " ====="
}

var sheetHeaderRe = regexp.MustCompile(`(?i)^=+\s*Sheet:\s*(.+?)\s*=+$`)

// ParseSheetHeader reports whether line is a worksheet marker and returns the
// sheet name if so.
func ParseSheetHeader(line string) (string, bool) {
	m := sheetHeaderRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", false
	}
	return m[1], true
}
