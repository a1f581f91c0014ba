package professor

import "context"

// Store is the persistence port for professors. Implementations guarantee
// atomicity per call only; callers must not assume cross-call transactions.
type Store interface {
	// Get returns the professor by id, or ErrNotFound.
	Get(ctx context.Context, id string) (*Professor, error)

	// Save inserts the professor, or updates it when the id already exists.
	Save(ctx context.Context, p *Professor) error

	// Delete removes the professor by id, or returns ErrNotFound.
	// Team memberships referencing the id are left in place.
	Delete(ctx context.Context, id string) error

	// All returns every professor ordered by creation time.
	All(ctx context.Context) ([]*Professor, error)
}
