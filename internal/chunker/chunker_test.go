package chunker

import (
	"strings"
	"testing"

	"github.com/dgallion1/doctrans/internal/document"
)

func paragraphs(n, words int) []document.Block {
	var blocks []document.Block
	for i := 0; i < n; i++ {
		blocks = append(blocks, document.Paragraph(strings.TrimSpace(strings.Repeat("mot ", words))))
	}
	return blocks
}

func TestSplit_SmallInputFitsOneChunk(t *testing.T) {
	chunks := Split(paragraphs(3, 20), 1500)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Index != 0 {
		t.Errorf("expected index 0, got %d", chunks[0].Index)
	}
	if len(chunks[0].Blocks) != 3 {
		t.Errorf("expected 3 blocks in chunk, got %d", len(chunks[0].Blocks))
	}
}

func TestSplit_BudgetRespected(t *testing.T) {
	const maxTokens = 100
	chunks := Split(paragraphs(40, 30), maxTokens)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if c.Index != i {
			t.Errorf("chunk %d: expected index %d, got %d", i, i, c.Index)
		}
		if c.Tokens > maxTokens && len(c.Blocks) > 1 {
			t.Errorf("chunk %d: %d tokens over budget with %d blocks", i, c.Tokens, len(c.Blocks))
		}
	}
}

func TestSplit_OversizedBlockEmittedWhole(t *testing.T) {
	huge := document.Paragraph(strings.TrimSpace(strings.Repeat("mot ", 500)))
	blocks := []document.Block{
		document.Paragraph("petit"),
		huge,
		document.Paragraph("fin"),
	}
	chunks := Split(blocks, 50)

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if len(chunks[1].Blocks) != 1 || chunks[1].Blocks[0].Text != huge.Text {
		t.Errorf("oversized block must travel alone and untruncated")
	}
	if chunks[1].Tokens <= 50 {
		t.Errorf("oversized chunk should exceed the budget, got %d tokens", chunks[1].Tokens)
	}
}

func TestSplit_PageBreakIsolation(t *testing.T) {
	blocks := []document.Block{
		document.Paragraph("page un"),
		document.PageBreak(),
		document.Paragraph("page deux"),
	}
	chunks := Split(blocks, 1500)

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if !chunks[1].PageBreak {
		t.Fatalf("middle chunk must be a page break, got %+v", chunks[1])
	}
	if chunks[1].Text() != document.PageBreakMarker {
		t.Errorf("page break chunk text: got %q", chunks[1].Text())
	}
	if chunks[0].PageBreak || chunks[2].PageBreak {
		t.Error("text chunks must not be marked as page breaks")
	}
}

func TestSplit_SheetHeaderCarriedAcrossBoundary(t *testing.T) {
	blocks := []document.Block{document.SheetHeaderBlock("Ventes")}
	for i := 0; i < 60; i++ {
		blocks = append(blocks, document.SheetRow([]string{"un deux trois quatre", "cinq six sept huit"}, "Ventes"))
	}
	chunks := Split(blocks, 60)

	if len(chunks) < 2 {
		t.Fatalf("expected a mid-sheet boundary, got %d chunk(s)", len(chunks))
	}
	for i, c := range chunks {
		first := c.Blocks[0]
		if first.Kind != document.KindSheetHeader || first.Sheet != "Ventes" {
			t.Errorf("chunk %d: expected repeated sheet header first, got %+v", i, first)
		}
	}
}

func TestSplit_NewSheetHeaderNotDuplicated(t *testing.T) {
	blocks := []document.Block{
		document.SheetHeaderBlock("A"),
		document.SheetRow([]string{"x"}, "A"),
		document.SheetHeaderBlock("B"),
		document.SheetRow([]string{"y"}, "B"),
	}
	chunks := Split(blocks, 1500)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	headerCount := 0
	for _, b := range chunks[0].Blocks {
		if b.Kind == document.KindSheetHeader {
			headerCount++
		}
	}
	if headerCount != 2 {
		t.Errorf("expected 2 headers, got %d", headerCount)
	}
}

func TestChunkText_SheetRowsStayLineAdjacent(t *testing.T) {
	c := Chunk{Blocks: []document.Block{
		document.SheetHeaderBlock("S"),
		document.SheetRow([]string{"a", "b"}, "S"),
		document.SheetRow([]string{"c", "d"}, "S"),
	}}
	want := "===== Sheet: S =====\na | b\nc | d"
	if got := c.Text(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestChunkText_ProseBlankLineSeparated(t *testing.T) {
	c := Chunk{Blocks: []document.Block{
		document.Paragraph("un"),
		document.ListItem("deux", 0),
	}}
	want := "un\n\n- deux"
	if got := c.Text(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSplit_ZeroBudgetUsesDefault(t *testing.T) {
	chunks := Split(paragraphs(2, 10), 0)
	if len(chunks) != 1 {
		t.Errorf("expected defaults to apply, got %d chunks", len(chunks))
	}
}

func TestEstimateTokens(t *testing.T) {
	if EstimateTokens("") != 0 {
		t.Error("empty text must estimate 0 tokens")
	}
	if EstimateTokens("mot") < 1 {
		t.Error("non-empty text must estimate at least 1 token")
	}
	short := EstimateTokens("un deux trois")
	long := EstimateTokens(strings.Repeat("un deux trois ", 50))
	if long <= short {
		t.Errorf("longer text must estimate more tokens: %d vs %d", long, short)
	}
}
