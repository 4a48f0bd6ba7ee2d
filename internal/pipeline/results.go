package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dgallion1/doctrans/internal/document"
)

// Result is one completed translation, kept only for the download window.
// Outputs are rendered on demand from the stored Markdown.
type Result struct {
	ID           string
	SourceFormat document.Format
	Markdown     string
	CreatedAt    time.Time
}

// ResultStore is a thread-safe in-memory result registry with TTL eviction.
type ResultStore struct {
	mu      sync.Mutex
	results map[string]Result
	ttl     time.Duration
}

func NewResultStore(ttl time.Duration) *ResultStore {
	return &ResultStore{
		results: make(map[string]Result),
		ttl:     ttl,
	}
}

// Create stores a new result under a fresh ID and returns it.
func (s *ResultStore) Create(source document.Format, markdown string) Result {
	res := Result{
		ID:           uuid.NewString(),
		SourceFormat: source,
		Markdown:     markdown,
		CreatedAt:    time.Now(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[res.ID] = res
	return res
}

// Get returns a result by ID.
func (s *ResultStore) Get(id string) (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.results[id]
	return res, ok
}

// Cleanup removes expired results.
func (s *ResultStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, res := range s.results {
		if now.Sub(res.CreatedAt) > s.ttl {
			delete(s.results, id)
		}
	}
}

// Run evicts expired results until the context is cancelled.
func (s *ResultStore) Run(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Cleanup()
		}
	}
}
