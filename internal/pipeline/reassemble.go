package pipeline

import (
	"sort"
	"strings"
)

// TranslatedChunk is one chunk's translation, attributable to its original
// position regardless of completion order.
type TranslatedChunk struct {
	Index    int
	Markdown string
}

// Reassemble concatenates translations strictly by original chunk index with
// blank-line separators. Page-break chunks arrive here as their literal
// marker and are reinserted untouched.
func Reassemble(chunks []TranslatedChunk) string {
	sorted := make([]TranslatedChunk, len(chunks))
	copy(sorted, chunks)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Index < sorted[j].Index })

	parts := make([]string, 0, len(sorted))
	for _, c := range sorted {
		if strings.TrimSpace(c.Markdown) == "" {
			continue
		}
		parts = append(parts, strings.TrimSpace(c.Markdown))
	}
	return strings.Join(parts, "\n\n")
}
