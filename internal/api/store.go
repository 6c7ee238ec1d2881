package api

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/matzehuels/laneflow/pkg/errors"
)

// Diagram is a stored diagram: the raw input descriptor plus bookkeeping.
// Artifacts are not stored - they are re-rendered (or served from the
// artifact cache) on demand, so a stored diagram always reflects the
// current layout configuration.
type Diagram struct {
	ID         string          `json:"id" bson:"_id"`
	Descriptor json.RawMessage `json:"descriptor" bson:"descriptor"`
	CreatedAt  time.Time       `json:"created_at" bson:"created_at"`
}

// Store persists diagrams. Implementations must be safe for concurrent use.
type Store interface {
	// Put stores a diagram under its ID.
	Put(ctx context.Context, d Diagram) error

	// Get retrieves a diagram. Missing IDs return an error with code
	// errors.ErrCodeDiagramNotFound.
	Get(ctx context.Context, id string) (Diagram, error)

	// Delete removes a diagram. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases any underlying resources.
	Close(ctx context.Context) error
}

// MemoryStore is an in-process Store for tests and single-node setups.
type MemoryStore struct {
	mu       sync.RWMutex
	diagrams map[string]Diagram
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{diagrams: make(map[string]Diagram)}
}

// Put stores a diagram.
func (s *MemoryStore) Put(ctx context.Context, d Diagram) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.diagrams[d.ID] = d
	return nil
}

// Get retrieves a diagram.
func (s *MemoryStore) Get(ctx context.Context, id string) (Diagram, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.diagrams[id]
	if !ok {
		return Diagram{}, errors.New(errors.ErrCodeDiagramNotFound, "diagram %s not found", id)
	}
	return d, nil
}

// Delete removes a diagram.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.diagrams, id)
	return nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
