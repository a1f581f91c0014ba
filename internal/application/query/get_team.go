package query

import (
	"context"

	"github.com/fantaprof/fantaprof-server/internal/domain/scoring"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET TEAM QUERY
// Returns one user's team: members, captain, name and total score.
// ══════════════════════════════════════════════════════════════════════════════

// GetTeamHandler serves a user's team view.
type GetTeamHandler struct {
	engine *scoring.Engine
}

// NewGetTeamHandler creates the handler.
func NewGetTeamHandler(engine *scoring.Engine) *GetTeamHandler {
	return &GetTeamHandler{engine: engine}
}

// Handle returns the team view, or scoring.ErrNoTeam when the user has
// no membership rows.
func (h *GetTeamHandler) Handle(ctx context.Context, userID string) (*scoring.TeamView, error) {
	return h.engine.TeamView(ctx, userID)
}
