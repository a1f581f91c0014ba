// Package query contains read operations following CQRS pattern.
// Queries never modify state - they only read and return data.
package query

import (
	"context"

	"github.com/fantaprof/fantaprof-server/internal/domain/scoring"
	"github.com/fantaprof/fantaprof-server/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET LEADERBOARD QUERY
// Returns every team with its own total, highest first. Reads through an
// optional cache; the engine stays the source of truth and a cache
// failure degrades to a direct computation, never to an error.
// ══════════════════════════════════════════════════════════════════════════════

// StandingsCache is the optional read-through cache for standings.
type StandingsCache interface {
	// GetStandings returns cached standings, or a miss error.
	GetStandings(ctx context.Context) ([]scoring.Standing, error)

	// SetStandings replaces the cached standings.
	SetStandings(ctx context.Context, standings []scoring.Standing) error
}

// GetLeaderboardHandler serves the leaderboard.
type GetLeaderboardHandler struct {
	engine *scoring.Engine
	cache  StandingsCache
	log    *logger.Logger
}

// NewGetLeaderboardHandler creates the handler. cache may be nil.
func NewGetLeaderboardHandler(engine *scoring.Engine, cache StandingsCache, log *logger.Logger) *GetLeaderboardHandler {
	return &GetLeaderboardHandler{
		engine: engine,
		cache:  cache,
		log:    log,
	}
}

// Handle returns the standings, preferring the cache when it holds a
// fresh snapshot.
func (h *GetLeaderboardHandler) Handle(ctx context.Context) ([]scoring.Standing, error) {
	if h.cache != nil {
		if standings, err := h.cache.GetStandings(ctx); err == nil {
			return standings, nil
		}
	}

	standings, err := h.engine.Leaderboard(ctx)
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		if err := h.cache.SetStandings(ctx, standings); err != nil {
			h.log.Warn("standings cache write failed", logger.Err(err))
		}
	}
	return standings, nil
}
