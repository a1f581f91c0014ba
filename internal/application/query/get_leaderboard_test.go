package query_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fantaprof/fantaprof-server/internal/application/query"
	"github.com/fantaprof/fantaprof-server/internal/domain/professor"
	"github.com/fantaprof/fantaprof-server/internal/domain/scoring"
	"github.com/fantaprof/fantaprof-server/internal/domain/team"
	"github.com/fantaprof/fantaprof-server/internal/infrastructure/persistence/memory"
	"github.com/fantaprof/fantaprof-server/pkg/logger"
)

// fakeStandingsCache records cache traffic for assertions.
type fakeStandingsCache struct {
	standings []scoring.Standing
	missErr   error
	gets      int
	sets      int
}

func (c *fakeStandingsCache) GetStandings(ctx context.Context) ([]scoring.Standing, error) {
	c.gets++
	if c.missErr != nil {
		return nil, c.missErr
	}
	return c.standings, nil
}

func (c *fakeStandingsCache) SetStandings(ctx context.Context, standings []scoring.Standing) error {
	c.sets++
	c.standings = standings
	c.missErr = nil
	return nil
}

func seedLeaderboard(t *testing.T) *scoring.Engine {
	t.Helper()
	ctx := context.Background()

	professors := memory.NewProfessorStore()
	teams := memory.NewTeamStore()

	p, err := professor.New("prof-1", "rossi", 10)
	require.NoError(t, err)
	p.Score = 40
	require.NoError(t, professors.Save(ctx, p))

	_, err = team.NewAssembler(professors, teams).
		Assemble(ctx, "user-1", "Alpha", []string{"prof-1"}, "")
	require.NoError(t, err)

	return scoring.NewEngine(professors, teams)
}

func TestGetLeaderboard(t *testing.T) {
	ctx := context.Background()

	t.Run("cache miss computes and backfills", func(t *testing.T) {
		cache := &fakeStandingsCache{missErr: errors.New("cache miss")}
		handler := query.NewGetLeaderboardHandler(seedLeaderboard(t), cache, logger.Default())

		standings, err := handler.Handle(ctx)
		require.NoError(t, err)
		require.Len(t, standings, 1)
		assert.Equal(t, scoring.Standing{TeamName: "Alpha", Score: 40}, standings[0])
		assert.Equal(t, 1, cache.sets, "miss backfills the cache")
	})

	t.Run("cache hit skips the engine", func(t *testing.T) {
		cache := &fakeStandingsCache{standings: []scoring.Standing{{TeamName: "Cached", Score: 99}}}
		handler := query.NewGetLeaderboardHandler(seedLeaderboard(t), cache, logger.Default())

		standings, err := handler.Handle(ctx)
		require.NoError(t, err)
		require.Len(t, standings, 1)
		assert.Equal(t, "Cached", standings[0].TeamName)
		assert.Zero(t, cache.sets)
	})

	t.Run("nil cache serves straight from the engine", func(t *testing.T) {
		handler := query.NewGetLeaderboardHandler(seedLeaderboard(t), nil, logger.Default())

		standings, err := handler.Handle(ctx)
		require.NoError(t, err)
		require.Len(t, standings, 1)
		assert.Equal(t, "Alpha", standings[0].TeamName)
	})
}
