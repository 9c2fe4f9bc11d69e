package archive

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is an in-memory run store for development and testing.
type MemoryStore struct {
	mu   sync.RWMutex
	runs []Run
	byID map[string]int
}

// NewMemoryStore creates an empty in-memory run store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[string]int)}
}

func (s *MemoryStore) Put(ctx context.Context, run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.byID[run.ID]; ok {
		s.runs[i] = run
		return nil
	}
	s.byID[run.ID] = len(s.runs)
	s.runs = append(s.runs, run)
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.runs[i], nil
}

func (s *MemoryStore) List(ctx context.Context, circuitHash string, limit int) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Run
	for i := len(s.runs) - 1; i >= 0; i-- {
		if circuitHash != "" && s.runs[i].CircuitHash != circuitHash {
			continue
		}
		out = append(out, s.runs[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *MemoryStore) Close(ctx context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
