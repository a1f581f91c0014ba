package memory

import (
	"context"
	"sync"

	"github.com/fantaprof/fantaprof-server/internal/domain/user"
)

// UserStore implements user.Store in memory.
type UserStore struct {
	mu         sync.RWMutex
	byID       map[string]*user.User
	byUsername map[string]*user.User
}

// NewUserStore creates an empty store.
func NewUserStore() *UserStore {
	return &UserStore{
		byID:       make(map[string]*user.User),
		byUsername: make(map[string]*user.User),
	}
}

// Create inserts the user, or returns user.ErrAlreadyExists on a
// duplicate username.
func (s *UserStore) Create(ctx context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byUsername[u.Username]; exists {
		return user.ErrAlreadyExists
	}
	clone := *u
	s.byID[u.ID] = &clone
	s.byUsername[u.Username] = &clone
	return nil
}

// GetByID returns the user by id, or user.ErrNotFound.
func (s *UserStore) GetByID(ctx context.Context, id string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

// GetByUsername returns the user by username, or user.ErrNotFound.
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byUsername[username]
	if !ok {
		return nil, user.ErrNotFound
	}
	clone := *u
	return &clone, nil
}
