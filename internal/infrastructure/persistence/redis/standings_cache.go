package redis

import (
	"context"

	"github.com/fantaprof/fantaprof-server/internal/domain/scoring"
)

// ══════════════════════════════════════════════════════════════════════════════
// STANDINGS CACHE
// ══════════════════════════════════════════════════════════════════════════════

// standingsKey holds the full ordered snapshot as one JSON value. A
// sorted set would reorder equal scores lexicographically and lose the
// first-seen tie order the engine guarantees.
const standingsKey = PrefixLeaderboard + "standings"

// StandingsCache caches the computed leaderboard snapshot. It satisfies
// both the read-through cache port of the leaderboard query and the
// invalidator port of the event handler.
type StandingsCache struct {
	cache *Cache
}

// NewStandingsCache creates a StandingsCache on top of the given Cache.
func NewStandingsCache(cache *Cache) *StandingsCache {
	return &StandingsCache{cache: cache}
}

// GetStandings returns the cached snapshot, or ErrCacheMiss.
func (s *StandingsCache) GetStandings(ctx context.Context) ([]scoring.Standing, error) {
	var standings []scoring.Standing
	if err := s.cache.Get(ctx, standingsKey, &standings); err != nil {
		return nil, err
	}
	return standings, nil
}

// SetStandings replaces the cached snapshot.
func (s *StandingsCache) SetStandings(ctx context.Context, standings []scoring.Standing) error {
	return s.cache.Set(ctx, standingsKey, standings, TTLStandings)
}

// InvalidateStandings drops the cached snapshot so the next read
// recomputes from the stores.
func (s *StandingsCache) InvalidateStandings(ctx context.Context) error {
	return s.cache.Delete(ctx, standingsKey)
}
