package query

import (
	"context"

	"github.com/fantaprof/fantaprof-server/internal/domain/professor"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIST PROFESSORS QUERY
// Returns the full roster ordered by creation time.
// ══════════════════════════════════════════════════════════════════════════════

// ListProfessorsHandler serves the roster listing.
type ListProfessorsHandler struct {
	professors professor.Store
}

// NewListProfessorsHandler creates the handler.
func NewListProfessorsHandler(professors professor.Store) *ListProfessorsHandler {
	return &ListProfessorsHandler{professors: professors}
}

// Handle returns every professor.
func (h *ListProfessorsHandler) Handle(ctx context.Context) ([]*professor.Professor, error) {
	return h.professors.All(ctx)
}
