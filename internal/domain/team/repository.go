package team

import "context"

// Store is the persistence port for team memberships. Each Save is atomic
// on its own; assembling a team issues one Save per row, so a mid-batch
// failure leaves earlier rows persisted.
type Store interface {
	// Save inserts a membership row.
	Save(ctx context.Context, m *Membership) error

	// FindByUserID returns the user's membership rows in insertion order.
	// An empty slice means the user has no team.
	FindByUserID(ctx context.Context, userID string) ([]*Membership, error)

	// All returns every membership row in insertion order. The ordering
	// is what makes leaderboard tie-breaking stable.
	All(ctx context.Context) ([]*Membership, error)
}
