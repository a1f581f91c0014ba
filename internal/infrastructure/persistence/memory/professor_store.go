// Package memory provides in-memory store implementations. They back the
// tests and let the server run without PostgreSQL in development.
package memory

import (
	"context"
	"sync"

	"github.com/fantaprof/fantaprof-server/internal/domain/professor"
)

// ProfessorStore implements professor.Store in memory.
type ProfessorStore struct {
	mu    sync.RWMutex
	byID  map[string]*professor.Professor
	order []string
}

// NewProfessorStore creates an empty store.
func NewProfessorStore() *ProfessorStore {
	return &ProfessorStore{byID: make(map[string]*professor.Professor)}
}

// Get returns the professor by id, or professor.ErrNotFound.
func (s *ProfessorStore) Get(ctx context.Context, id string) (*professor.Professor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byID[id]
	if !ok {
		return nil, professor.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

// Save inserts or updates the professor.
func (s *ProfessorStore) Save(ctx context.Context, p *professor.Professor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[p.ID]; !exists {
		s.order = append(s.order, p.ID)
	}
	clone := *p
	s.byID[p.ID] = &clone
	return nil
}

// Delete removes the professor, or returns professor.ErrNotFound.
func (s *ProfessorStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return professor.ErrNotFound
	}
	delete(s.byID, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// All returns every professor in insertion order.
func (s *ProfessorStore) All(ctx context.Context) ([]*professor.Professor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	professors := make([]*professor.Professor, 0, len(s.order))
	for _, id := range s.order {
		clone := *s.byID[id]
		professors = append(professors, &clone)
	}
	return professors, nil
}
