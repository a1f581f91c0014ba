package command

import (
	"context"

	"github.com/fantaprof/fantaprof-server/internal/domain/professor"
	"github.com/fantaprof/fantaprof-server/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// DELETE PROFESSOR COMMAND
// Removes a professor from the roster. Team memberships referencing the
// professor stay in place; the slot simply contributes zero from now on.
// ══════════════════════════════════════════════════════════════════════════════

// DeleteProfessorCommand identifies the professor to remove.
type DeleteProfessorCommand struct {
	ProfessorID string
}

// DeleteProfessorHandler handles professor removal.
type DeleteProfessorHandler struct {
	professors professor.Store
	publisher  EventPublisher
	log        *logger.Logger
}

// NewDeleteProfessorHandler creates the handler.
func NewDeleteProfessorHandler(professors professor.Store, publisher EventPublisher, log *logger.Logger) *DeleteProfessorHandler {
	return &DeleteProfessorHandler{
		professors: professors,
		publisher:  publisher,
		log:        log,
	}
}

// Handle removes the professor and publishes a deleted event. Returns
// professor.ErrNotFound when the id is unknown.
func (h *DeleteProfessorHandler) Handle(ctx context.Context, cmd DeleteProfessorCommand) error {
	if err := h.professors.Delete(ctx, cmd.ProfessorID); err != nil {
		return err
	}

	h.log.Info("professor deleted", logger.ProfessorID(cmd.ProfessorID))

	if h.publisher != nil {
		_ = h.publisher.Publish(ctx, professor.NewDeletedEvent(cmd.ProfessorID))
	}
	return nil
}
