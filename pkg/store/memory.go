package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore implements Store in process memory.
// Used for tests and single-process development; contents are lost on exit.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]Document
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]Document)}
}

// Save upserts the document by ID.
func (s *MemoryStore) Save(ctx context.Context, doc *Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc.UpdatedAt = time.Now().UTC()
	s.docs[doc.ID] = *doc
	return nil
}

// Get retrieves a document by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, notFound(id)
	}
	return &doc, nil
}

// List returns summaries of all documents, most recently updated first.
func (s *MemoryStore) List(ctx context.Context) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Summary, 0, len(s.docs))
	for _, doc := range s.docs {
		out = append(out, Summary{
			ID:        doc.ID,
			Name:      doc.Name,
			ItemCount: doc.Layout.ItemCount,
			UpdatedAt: doc.UpdatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// Delete removes a document by ID.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return notFound(id)
	}
	delete(s.docs, id)
	return nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
