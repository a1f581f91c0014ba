// Package eventhandler contains subscribers wired onto the in-process
// event bus.
package eventhandler

import (
	"context"

	"github.com/fantaprof/fantaprof-server/internal/domain/shared"
	"github.com/fantaprof/fantaprof-server/pkg/logger"
)

// StandingsInvalidator drops the cached leaderboard snapshot.
type StandingsInvalidator interface {
	InvalidateStandings(ctx context.Context) error
}

// InvalidateStandingsOnChange returns a handler that drops the cached
// standings whenever a score moves, a professor leaves the roster or a
// team is assembled. The next leaderboard read recomputes from the
// stores.
func InvalidateStandingsOnChange(cache StandingsInvalidator, log *logger.Logger) shared.EventHandler {
	return func(ctx context.Context, event shared.Event) error {
		switch event.EventType() {
		case shared.EventProfessorScoreUpdated, shared.EventProfessorDeleted, shared.EventTeamAssembled:
		default:
			return nil
		}

		if err := cache.InvalidateStandings(ctx); err != nil {
			return err
		}
		log.Debug("standings cache invalidated",
			logger.F("event_type", string(event.EventType())),
		)
		return nil
	}
}
