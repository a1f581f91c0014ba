// Package command contains write operations (CQRS - Commands).
// Commands are responsible for changing the state of the system.
package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/fantaprof/fantaprof-server/internal/domain/professor"
	"github.com/fantaprof/fantaprof-server/internal/domain/shared"
	"github.com/fantaprof/fantaprof-server/pkg/logger"
)

// EventPublisher delivers domain events to in-process subscribers.
type EventPublisher interface {
	Publish(ctx context.Context, event shared.Event) error
}

// ══════════════════════════════════════════════════════════════════════════════
// CREATE PROFESSOR COMMAND
// Adds a professor to the roster with a zero starting score.
// ══════════════════════════════════════════════════════════════════════════════

// CreateProfessorCommand contains the data needed to create a professor.
type CreateProfessorCommand struct {
	// Name is the display name, unique across the roster.
	Name string

	// Cost is the hiring cost in game currency.
	Cost int
}

// CreateProfessorHandler handles professor creation.
type CreateProfessorHandler struct {
	professors professor.Store
	publisher  EventPublisher
	log        *logger.Logger
}

// NewCreateProfessorHandler creates the handler.
func NewCreateProfessorHandler(professors professor.Store, publisher EventPublisher, log *logger.Logger) *CreateProfessorHandler {
	return &CreateProfessorHandler{
		professors: professors,
		publisher:  publisher,
		log:        log,
	}
}

// Handle validates the command, persists the professor and publishes a
// created event.
func (h *CreateProfessorHandler) Handle(ctx context.Context, cmd CreateProfessorCommand) (*professor.Professor, error) {
	p, err := professor.New(uuid.NewString(), professor.Name(cmd.Name), professor.Cost(cmd.Cost))
	if err != nil {
		return nil, err
	}

	if err := h.professors.Save(ctx, p); err != nil {
		return nil, err
	}

	h.log.Info("professor created",
		logger.ProfessorID(p.ID),
		logger.F("name", p.Name.String()),
		logger.F("cost", int(p.Cost)),
	)

	if h.publisher != nil {
		_ = h.publisher.Publish(ctx, professor.NewCreatedEvent(p))
	}
	return p, nil
}
