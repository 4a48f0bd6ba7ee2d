// Package chunker groups ordered Blocks into model-call sized Chunks.
package chunker

import (
	"strings"

	"github.com/dgallion1/doctrans/internal/document"
)

// DefaultMaxTokens is the per-chunk token budget used when none is configured.
const DefaultMaxTokens = 1500

// Chunk is an ordered group of Blocks sized to fit one model call.
type Chunk struct {
	Index  int
	Blocks []document.Block
	Tokens int

	// PageBreak marks a chunk that carries only a page boundary. Such
	// chunks bypass the translator and are reinserted verbatim.
	PageBreak bool
}

// Text renders the chunk's blocks into the single text channel sent to the
// model. Sheet rows stay line-adjacent; prose blocks are blank-line separated.
func (c Chunk) Text() string {
	var buf strings.Builder
	for i, b := range c.Blocks {
		if i > 0 {
			if sheetKind(b) && sheetKind(c.Blocks[i-1]) {
				buf.WriteString("\n")
			} else {
				buf.WriteString("\n\n")
			}
		}
		buf.WriteString(b.Wire())
	}
	return buf.String()
}

func sheetKind(b document.Block) bool {
	return b.Kind == document.KindSheetRow || b.Kind == document.KindSheetHeader
}

// Split greedily accumulates Blocks into Chunks while the token estimate
// stays under maxTokens. Page breaks are emitted as their own marker chunks,
// and a chunk boundary falling mid-sheet repeats the sheet header at the top
// of the continuation so the model keeps its context per call. A single Block
// over the budget is emitted whole as its own chunk rather than truncated.
func Split(blocks []document.Block, maxTokens int) []Chunk {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	var chunks []Chunk
	var current []document.Block
	currentTokens := 0
	currentSheet := "" // sheet open at the current write position

	flush := func() {
		if len(current) == 0 {
			return
		}
		chunks = append(chunks, Chunk{
			Index:  len(chunks),
			Blocks: current,
			Tokens: currentTokens,
		})
		current = nil
		currentTokens = 0
	}

	appendBlock := func(b document.Block, tokens int) {
		current = append(current, b)
		currentTokens += tokens
	}

	for _, b := range blocks {
		if b.Kind == document.KindPageBreak {
			flush()
			chunks = append(chunks, Chunk{
				Index:     len(chunks),
				Blocks:    []document.Block{b},
				PageBreak: true,
			})
			continue
		}

		tokens := EstimateTokens(b.Wire())
		if len(current) > 0 && currentTokens+tokens > maxTokens {
			flush()
		}

		// Re-open the sheet header on a continuation chunk.
		if b.Kind == document.KindSheetRow && len(current) == 0 && b.Sheet == currentSheet {
			header := document.SheetHeaderBlock(b.Sheet)
			appendBlock(header, EstimateTokens(header.Wire()))
		}

		switch b.Kind {
		case document.KindSheetHeader:
			currentSheet = b.Sheet
		case document.KindSheetRow:
			currentSheet = b.Sheet
		default:
			currentSheet = ""
		}

		appendBlock(b, tokens)
	}
	flush()

	return chunks
}
