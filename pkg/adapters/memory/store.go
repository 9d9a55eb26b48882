package memory

import (
	"context"
	"sync"

	"github.com/aretw0/cursorkeep/pkg/domain"
)

// Store implements ports.TableStore in memory.
// Safe for concurrent use. Nothing survives the process.
type Store struct {
	table domain.Table
	mu    sync.RWMutex
	saves int
}

// NewStore creates a new in-memory store, optionally seeded with a table.
func NewStore(seed ...domain.Table) *Store {
	s := &Store{table: domain.NewTable()}
	for _, t := range seed {
		for k, v := range t {
			s.table[k] = v
		}
	}
	return s
}

// Load returns a copy so callers can't mutate store state directly.
func (s *Store) Load(ctx context.Context) (domain.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Clone(), nil
}

// Save replaces the table with a copy of table.
func (s *Store) Save(ctx context.Context, table domain.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = table.Clone()
	s.saves++
	return nil
}

// Saves returns the number of Save calls.
func (s *Store) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}
