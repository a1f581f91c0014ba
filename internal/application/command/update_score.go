package command

import (
	"context"

	"github.com/fantaprof/fantaprof-server/internal/domain/professor"
	"github.com/fantaprof/fantaprof-server/internal/domain/scoring"
	"github.com/fantaprof/fantaprof-server/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// UPDATE SCORE COMMAND
// Applies a signed delta to a professor's score, at most once per local
// calendar day. The throttle serializes the whole read-modify-write per
// professor, so concurrent deltas cannot both land in the same window.
// ══════════════════════════════════════════════════════════════════════════════

// UpdateScoreCommand contains the professor id and the signed delta.
type UpdateScoreCommand struct {
	ProfessorID string
	Delta       int
}

// UpdateScoreHandler handles throttled score updates.
type UpdateScoreHandler struct {
	professors professor.Store
	throttle   *scoring.Throttle
	publisher  EventPublisher
	log        *logger.Logger
}

// NewUpdateScoreHandler creates the handler.
func NewUpdateScoreHandler(professors professor.Store, throttle *scoring.Throttle, publisher EventPublisher, log *logger.Logger) *UpdateScoreHandler {
	return &UpdateScoreHandler{
		professors: professors,
		throttle:   throttle,
		publisher:  publisher,
		log:        log,
	}
}

// Handle applies the delta under the throttle's per-professor lock.
// Returns scoring.ErrThrottled when the daily window is closed and
// professor.ErrNotFound for an unknown id; a failed load or save leaves
// the window open.
func (h *UpdateScoreHandler) Handle(ctx context.Context, cmd UpdateScoreCommand) (*professor.Professor, error) {
	var updated *professor.Professor

	err := h.throttle.Apply(cmd.ProfessorID, func() error {
		p, err := h.professors.Get(ctx, cmd.ProfessorID)
		if err != nil {
			return err
		}
		p.ApplyDelta(cmd.Delta)
		if err := h.professors.Save(ctx, p); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	h.log.Info("score updated",
		logger.ProfessorID(updated.ID),
		logger.ScoreDelta(cmd.Delta),
		logger.F("new_score", updated.Score),
	)

	if h.publisher != nil {
		_ = h.publisher.Publish(ctx, professor.NewScoreUpdatedEvent(updated, cmd.Delta))
	}
	return updated, nil
}
