package memory

import (
	"context"
	"sync"

	"github.com/fantaprof/fantaprof-server/internal/domain/team"
)

// TeamStore implements team.Store in memory. Rows keep insertion order,
// which is what makes leaderboard tie-breaking stable.
type TeamStore struct {
	mu   sync.RWMutex
	rows []*team.Membership
}

// NewTeamStore creates an empty store.
func NewTeamStore() *TeamStore {
	return &TeamStore{}
}

// Save appends a membership row.
func (s *TeamStore) Save(ctx context.Context, m *team.Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *m
	s.rows = append(s.rows, &clone)
	return nil
}

// FindByUserID returns the user's rows in insertion order.
func (s *TeamStore) FindByUserID(ctx context.Context, userID string) ([]*team.Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*team.Membership, 0)
	for _, m := range s.rows {
		if m.UserID == userID {
			clone := *m
			result = append(result, &clone)
		}
	}
	return result, nil
}

// All returns every row in insertion order.
func (s *TeamStore) All(ctx context.Context) ([]*team.Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*team.Membership, 0, len(s.rows))
	for _, m := range s.rows {
		clone := *m
		result = append(result, &clone)
	}
	return result, nil
}
