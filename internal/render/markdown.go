package render

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/dgallion1/doctrans/internal/document"
)

// span is a run of text with inline styling.
type span struct {
	text   string
	bold   bool
	italic bool
}

type mdKind int

const (
	mdParagraph mdKind = iota
	mdListItem
	mdHeading
	mdSheetHeader
	mdPageBreak
)

// mdBlock is one renderable unit of the translated Markdown document.
type mdBlock struct {
	kind    mdKind
	level   int // heading level or list nesting level
	ordered bool
	spans   []span
	sheet   string
}

func (b mdBlock) plainText() string {
	var buf strings.Builder
	for _, s := range b.spans {
		buf.WriteString(s.text)
	}
	return buf.String()
}

// parseMarkdown flattens the translated Markdown into renderable blocks.
// Thematic breaks are page boundaries; paragraphs matching the sheet-header
// convention are tagged so renderers can treat them structurally.
func parseMarkdown(src string) []mdBlock {
	source := []byte(src)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var blocks []mdBlock
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		blocks = appendBlocks(blocks, n, source, 0)
	}
	return blocks
}

func appendBlocks(blocks []mdBlock, n ast.Node, src []byte, listLevel int) []mdBlock {
	switch node := n.(type) {
	case *ast.Heading:
		return append(blocks, mdBlock{
			kind:  mdHeading,
			level: node.Level,
			spans: inlineSpans(node, src, false, false),
		})
	case *ast.ThematicBreak:
		return append(blocks, mdBlock{kind: mdPageBreak})
	case *ast.List:
		for item := node.FirstChild(); item != nil; item = item.NextSibling() {
			for c := item.FirstChild(); c != nil; c = c.NextSibling() {
				if nested, ok := c.(*ast.List); ok {
					blocks = appendBlocks(blocks, nested, src, listLevel+1)
					continue
				}
				blocks = append(blocks, mdBlock{
					kind:    mdListItem,
					level:   listLevel,
					ordered: node.IsOrdered(),
					spans:   inlineSpans(c, src, false, false),
				})
			}
		}
		return blocks
	case *ast.Paragraph, *ast.TextBlock:
		b := mdBlock{kind: mdParagraph, spans: inlineSpans(n, src, false, false)}
		if name, ok := document.ParseSheetHeader(b.plainText()); ok {
			b.kind = mdSheetHeader
			b.sheet = name
		}
		return append(blocks, b)
	default:
		// Code blocks, quotes and anything else degrade to plain paragraphs.
		t := strings.TrimSpace(rawLines(n, src))
		if t == "" {
			return blocks
		}
		return append(blocks, mdBlock{kind: mdParagraph, spans: []span{{text: t}}})
	}
}

// inlineSpans walks inline children collecting styled text runs.
func inlineSpans(n ast.Node, src []byte, bold, italic bool) []span {
	var spans []span
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Text:
			spans = append(spans, span{text: string(node.Value(src)), bold: bold, italic: italic})
			if node.SoftLineBreak() || node.HardLineBreak() {
				spans = append(spans, span{text: "\n", bold: bold, italic: italic})
			}
		case *ast.Emphasis:
			b, i := bold, italic
			if node.Level >= 2 {
				b = true
			} else {
				i = true
			}
			spans = append(spans, inlineSpans(node, src, b, i)...)
		case *ast.String:
			spans = append(spans, span{text: string(node.Value), bold: bold, italic: italic})
		default:
			spans = append(spans, inlineSpans(c, src, bold, italic)...)
		}
	}
	return spans
}

// listCounter numbers consecutive ordered list items per nesting level.
// Renderers reset it at every non-list block so separate lists restart at 1.
type listCounter map[int]int

// marker returns the list prefix for b: the bullet for unordered items, or
// "1. ", "2. ", ... for ordered ones. Returning to a shallower level drops
// the deeper counters.
func (c listCounter) marker(b mdBlock, bullet string) string {
	for l := range c {
		if l > b.level {
			delete(c, l)
		}
	}
	if !b.ordered {
		delete(c, b.level)
		return bullet
	}
	c[b.level]++
	return fmt.Sprintf("%d. ", c[b.level])
}

func (c listCounter) reset() {
	for l := range c {
		delete(c, l)
	}
}

// rawLines returns the source text covered by a block node.
func rawLines(n ast.Node, src []byte) string {
	var buf strings.Builder
	if n.Type() == ast.TypeBlock {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		buf.WriteString(rawLines(c, src))
	}
	return buf.String()
}
