// Package pipeline runs one upload through extraction, chunking, translation
// and reassembly, synchronously within the scope of a single request.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgallion1/doctrans/internal/chunker"
	"github.com/dgallion1/doctrans/internal/document"
	"github.com/dgallion1/doctrans/internal/parser"
	"github.com/dgallion1/doctrans/internal/translate"
)

// ErrEmptyDocument is returned when no translatable text could be extracted.
var ErrEmptyDocument = errors.New("no translatable content in upload")

// Translator is the translation capability consumed by the pipeline.
// Satisfied by *translate.Client; tests substitute fakes.
type Translator interface {
	Translate(ctx context.Context, text string, mode translate.Mode) (string, error)
}

// Recognizer is the OCR capability consumed by the pipeline.
// Satisfied by *ocr.Adapter; tests substitute fakes.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// Processor wires the pipeline stages together.
type Processor struct {
	translator Translator
	ocr        Recognizer
	log        *slog.Logger

	maxTokens     int
	maxConcurrent int
}

func NewProcessor(translator Translator, recognizer Recognizer, log *slog.Logger, maxTokens, maxConcurrent int) *Processor {
	if maxTokens <= 0 {
		maxTokens = chunker.DefaultMaxTokens
	}
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}
	return &Processor{
		translator:    translator,
		ocr:           recognizer,
		log:           log,
		maxTokens:     maxTokens,
		maxConcurrent: maxConcurrent,
	}
}

// Process translates one uploaded file and returns the reassembled English
// Markdown document.
func (p *Processor) Process(ctx context.Context, data []byte, source document.Format) (string, error) {
	log := p.log.With("format", string(source))

	var blocks []document.Block
	if source.IsImage() {
		text, err := p.recognize(ctx, data, log)
		if err != nil {
			return "", err
		}
		blocks = parser.ParseText(text)
	} else {
		var err error
		blocks, err = parser.Parse(data, source)
		if err != nil {
			return "", err
		}
	}

	if !hasTranslatableText(blocks) {
		return "", ErrEmptyDocument
	}

	mode := translate.ModeForFormat(source.IsSpreadsheet(), source.IsImage())
	return p.translateBlocks(ctx, blocks, mode, log)
}

// ProcessText translates raw pasted text, treated as a txt source.
func (p *Processor) ProcessText(ctx context.Context, text string) (string, error) {
	blocks := parser.ParseText(text)
	if !hasTranslatableText(blocks) {
		return "", ErrEmptyDocument
	}
	return p.translateBlocks(ctx, blocks, translate.ModeDocument, p.log)
}

// translateBlocks chunks the blocks and translates the chunks with bounded
// concurrency, then reassembles strictly by chunk index. Page-break chunks
// never reach the translator.
func (p *Processor) translateBlocks(ctx context.Context, blocks []document.Block, mode translate.Mode, log *slog.Logger) (string, error) {
	chunks := chunker.Split(blocks, p.maxTokens)
	log.Info("chunked document", "chunks", len(chunks), "mode", string(mode))

	type chunkResult struct {
		idx      int
		markdown string
		err      error
	}
	results := make(chan chunkResult, len(chunks))
	sem := make(chan struct{}, p.maxConcurrent)

	for _, c := range chunks {
		if c.PageBreak {
			results <- chunkResult{idx: c.Index, markdown: document.PageBreakMarker}
			continue
		}
		sem <- struct{}{}
		go func(c chunker.Chunk) {
			defer func() { <-sem }()
			out, err := p.translateChunk(ctx, c.Text(), mode, log)
			results <- chunkResult{idx: c.Index, markdown: out, err: err}
		}(c)
	}

	translated := make([]TranslatedChunk, 0, len(chunks))
	var firstErr error
	for range chunks {
		r := <-results
		if r.err != nil {
			log.Error("chunk translation failed", "chunk", r.idx, "error", r.err)
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		translated = append(translated, TranslatedChunk{Index: r.idx, Markdown: r.markdown})
	}
	if firstErr != nil {
		// No partial-success state: the whole request fails.
		return "", firstErr
	}

	return Reassemble(translated), nil
}

func (p *Processor) translateChunk(ctx context.Context, text string, mode translate.Mode, log *slog.Logger) (string, error) {
	var lastErr error
	for attempt := 0; attempt < MaxAttempts; attempt++ {
		out, err := p.translator.Translate(ctx, text, mode)
		if err == nil {
			// A blank answer for a non-blank chunk is content loss, not
			// success; fail the request rather than drop the chunk.
			if strings.TrimSpace(out) == "" && strings.TrimSpace(text) != "" {
				return "", &translate.Error{Message: "provider returned an empty translation for a non-empty chunk"}
			}
			return out, nil
		}
		lastErr = err
		if !IsRetryable(err) || attempt == MaxAttempts-1 {
			break
		}
		log.Warn("retryable translation error", "attempt", attempt, "error", err)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return "", lastErr
}

// recognize runs OCR with the single bounded retry.
func (p *Processor) recognize(ctx context.Context, image []byte, log *slog.Logger) (string, error) {
	var lastErr error
	for attempt := 0; attempt < MaxAttempts; attempt++ {
		text, err := p.ocr.Recognize(ctx, image)
		if err == nil {
			if strings.TrimSpace(text) == "" {
				return "", ErrEmptyDocument
			}
			return text, nil
		}
		lastErr = err
		if !IsRetryable(err) || attempt == MaxAttempts-1 {
			break
		}
		log.Warn("retryable ocr error", "attempt", attempt, "error", err)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return "", fmt.Errorf("ocr: %w", lastErr)
}

// hasTranslatableText reports whether any block carries text or cells.
func hasTranslatableText(blocks []document.Block) bool {
	for _, b := range blocks {
		switch b.Kind {
		case document.KindParagraph, document.KindListItem:
			if strings.TrimSpace(b.Text) != "" {
				return true
			}
		case document.KindSheetRow:
			for _, c := range b.Cells {
				if strings.TrimSpace(c) != "" {
					return true
				}
			}
		}
	}
	return false
}
