package trip

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"tripdraft/internal/types"
)

// Store persists trip records. Save assigns the identifier.
type Store interface {
	Save(ctx context.Context, rec *Record) (types.ID, error)
	Get(ctx context.Context, id types.ID) (*Record, error)
}

// MemoryStore keeps records in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[types.ID]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[types.ID]Record)}
}

func (s *MemoryStore) Save(_ context.Context, rec *Record) (types.ID, error) {
	id := types.ID(uuid.NewString())
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = id
	s.records[id] = *rec
	return id, nil
}

func (s *MemoryStore) Get(_ context.Context, id types.ID) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}
