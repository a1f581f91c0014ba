// Package jobs contains the background jobs of the fantaprof server.
package jobs

import (
	"context"

	"github.com/fantaprof/fantaprof-server/internal/application/query"
	"github.com/fantaprof/fantaprof-server/internal/domain/scoring"
	"github.com/fantaprof/fantaprof-server/pkg/logger"
	"github.com/fantaprof/fantaprof-server/pkg/retry"
)

// ══════════════════════════════════════════════════════════════════════════════
// REBUILD STANDINGS JOB
// ══════════════════════════════════════════════════════════════════════════════

// RebuildStandingsJob periodically recomputes the leaderboard and writes
// the snapshot into the cache, so most reads never touch the engine. The
// cache write is retried with backoff; the computation itself is not,
// the next tick will redo it anyway.
type RebuildStandingsJob struct {
	engine  *scoring.Engine
	cache   query.StandingsCache
	retrier *retry.Retrier
	log     *logger.Logger
}

// NewRebuildStandingsJob creates the job.
func NewRebuildStandingsJob(engine *scoring.Engine, cache query.StandingsCache, log *logger.Logger) *RebuildStandingsJob {
	return &RebuildStandingsJob{
		engine:  engine,
		cache:   cache,
		retrier: retry.CacheRetrier(),
		log:     log,
	}
}

// Name identifies the job in logs.
func (j *RebuildStandingsJob) Name() string {
	return "rebuild_standings"
}

// Run recomputes the standings and refreshes the cached snapshot.
func (j *RebuildStandingsJob) Run(ctx context.Context) error {
	standings, err := j.engine.Leaderboard(ctx)
	if err != nil {
		return err
	}

	err = j.retrier.Do(ctx, func(ctx context.Context) error {
		if err := j.cache.SetStandings(ctx, standings); err != nil {
			return retry.Retryable(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	j.log.Debug("standings rebuilt", logger.F("teams", len(standings)))
	return nil
}
