package command

import (
	"context"

	"github.com/fantaprof/fantaprof-server/internal/domain/team"
	"github.com/fantaprof/fantaprof-server/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// ASSEMBLE TEAM COMMAND
// Persists a user's professor selection as membership rows. Submitting
// the same selection twice stores the rows twice.
// ══════════════════════════════════════════════════════════════════════════════

// AssembleTeamCommand contains the user's selection.
type AssembleTeamCommand struct {
	UserID       string
	TeamName     string
	ProfessorIDs []string

	// CaptainID is optional; when set it must be one of ProfessorIDs.
	CaptainID string
}

// AssembleTeamHandler handles team assembly.
type AssembleTeamHandler struct {
	assembler *team.Assembler
	publisher EventPublisher
	log       *logger.Logger
}

// NewAssembleTeamHandler creates the handler.
func NewAssembleTeamHandler(assembler *team.Assembler, publisher EventPublisher, log *logger.Logger) *AssembleTeamHandler {
	return &AssembleTeamHandler{
		assembler: assembler,
		publisher: publisher,
		log:       log,
	}
}

// Handle validates and persists the selection. Invalid selections are
// rejected before any row is written.
func (h *AssembleTeamHandler) Handle(ctx context.Context, cmd AssembleTeamCommand) ([]*team.Membership, error) {
	rows, err := h.assembler.Assemble(ctx, cmd.UserID, cmd.TeamName, cmd.ProfessorIDs, cmd.CaptainID)
	if err != nil {
		return rows, err
	}

	h.log.Info("team assembled",
		logger.UserID(cmd.UserID),
		logger.TeamName(cmd.TeamName),
		logger.F("size", len(rows)),
	)

	if h.publisher != nil {
		_ = h.publisher.Publish(ctx, team.NewAssembledEvent(cmd.UserID, cmd.TeamName, len(rows)))
	}
	return rows, nil
}
