package memory

import (
	"context"
	"sync"

	"tripeaks/internal/ports"
)

// Store is an in-memory ports.ScoreStore for tests and offline runs.
type Store struct {
	mu     sync.Mutex
	values map[string]int64
	writes int
}

// NewStore returns a store seeded with the given values.
func NewStore(seed map[string]int64) *Store {
	values := make(map[string]int64, len(seed))
	for k, v := range seed {
		values[k] = v
	}
	return &Store{values: values}
}

// Get returns the value for key, or 0.
func (s *Store) Get(ctx context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key], nil
}

// Set stores value under key.
func (s *Store) Set(ctx context.Context, key string, value int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	s.writes++
	return nil
}

// Writes returns how many Set calls succeeded.
func (s *Store) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

var _ ports.ScoreStore = (*Store)(nil)
