package scoring_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fantaprof/fantaprof-server/internal/domain/professor"
	"github.com/fantaprof/fantaprof-server/internal/domain/scoring"
	"github.com/fantaprof/fantaprof-server/internal/domain/team"
	"github.com/fantaprof/fantaprof-server/internal/infrastructure/persistence/memory"
)

type fixture struct {
	professors *memory.ProfessorStore
	teams      *memory.TeamStore
	engine     *scoring.Engine
	assembler  *team.Assembler
}

func newFixture() *fixture {
	professors := memory.NewProfessorStore()
	teams := memory.NewTeamStore()
	return &fixture{
		professors: professors,
		teams:      teams,
		engine:     scoring.NewEngine(professors, teams),
		assembler:  team.NewAssembler(professors, teams),
	}
}

func (f *fixture) addProfessor(t *testing.T, id string, score int) {
	t.Helper()
	p, err := professor.New(id, professor.Name("prof "+id), 10)
	require.NoError(t, err)
	p.Score = score
	require.NoError(t, f.professors.Save(context.Background(), p))
}

func (f *fixture) assemble(t *testing.T, userID, teamName string, ids []string, captainID string) {
	t.Helper()
	_, err := f.assembler.Assemble(context.Background(), userID, teamName, ids, captainID)
	require.NoError(t, err)
}

func TestTeamScore(t *testing.T) {
	ctx := context.Background()

	t.Run("captain counts double", func(t *testing.T) {
		f := newFixture()
		f.addProfessor(t, "a", 10)
		f.addProfessor(t, "b", 20)
		f.addProfessor(t, "c", 30)
		f.assemble(t, "user-1", "Squadra", []string{"a", "b", "c"}, "c")

		total, err := f.engine.TeamScore(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, 90, total, "10 + 20 + 2*30")
	})

	t.Run("no captain means plain sum", func(t *testing.T) {
		f := newFixture()
		f.addProfessor(t, "a", 10)
		f.addProfessor(t, "b", 20)
		f.assemble(t, "user-1", "Squadra", []string{"a", "b"}, "")

		total, err := f.engine.TeamScore(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, 30, total)
	})

	t.Run("user without a team scores zero", func(t *testing.T) {
		f := newFixture()
		total, err := f.engine.TeamScore(ctx, "nobody")
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("deleted professor contributes zero", func(t *testing.T) {
		f := newFixture()
		f.addProfessor(t, "a", 10)
		f.addProfessor(t, "b", 20)
		f.assemble(t, "user-1", "Squadra", []string{"a", "b"}, "b")
		require.NoError(t, f.professors.Delete(ctx, "b"))

		total, err := f.engine.TeamScore(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, 10, total, "deleted captain drops its doubled share")
	})

	t.Run("negative scores flow into the total", func(t *testing.T) {
		f := newFixture()
		f.addProfessor(t, "a", -15)
		f.addProfessor(t, "b", 5)
		f.assemble(t, "user-1", "Squadra", []string{"a", "b"}, "a")

		total, err := f.engine.TeamScore(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, -25, total)
	})
}

func TestTeamName(t *testing.T) {
	ctx := context.Background()

	t.Run("named team", func(t *testing.T) {
		f := newFixture()
		f.addProfessor(t, "a", 1)
		f.assemble(t, "user-1", "Squadra", []string{"a"}, "")

		name, ok, err := f.engine.TeamName(ctx, "user-1")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "Squadra", name)
	})

	t.Run("no team", func(t *testing.T) {
		f := newFixture()
		_, ok, err := f.engine.TeamName(ctx, "nobody")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("blank stored name renders as no team", func(t *testing.T) {
		f := newFixture()
		f.addProfessor(t, "a", 1)
		f.assemble(t, "user-1", "", []string{"a"}, "")

		_, ok, err := f.engine.TeamName(ctx, "user-1")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestTeamView(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves members with contributions", func(t *testing.T) {
		f := newFixture()
		f.addProfessor(t, "a", 10)
		f.addProfessor(t, "b", 20)
		f.assemble(t, "user-1", "Squadra", []string{"a", "b"}, "b")

		view, err := f.engine.TeamView(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, "Squadra", view.TeamName)
		assert.Equal(t, "b", view.CaptainID)
		assert.Equal(t, 50, view.TotalScore)
		require.Len(t, view.Members, 2)
		assert.Equal(t, 10, view.Members[0].Contribution)
		assert.Equal(t, 40, view.Members[1].Contribution)
	})

	t.Run("no team returns ErrNoTeam", func(t *testing.T) {
		f := newFixture()
		_, err := f.engine.TeamView(ctx, "nobody")
		assert.ErrorIs(t, err, scoring.ErrNoTeam)
	})

	t.Run("deleted professor keeps its row with zero contribution", func(t *testing.T) {
		f := newFixture()
		f.addProfessor(t, "a", 10)
		f.addProfessor(t, "b", 20)
		f.assemble(t, "user-1", "Squadra", []string{"a", "b"}, "")
		require.NoError(t, f.professors.Delete(ctx, "a"))

		view, err := f.engine.TeamView(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, view.Members, 2)
		assert.Zero(t, view.Members[0].Contribution)
		assert.Empty(t, view.Members[0].Name)
		assert.Equal(t, 20, view.TotalScore)
	})
}

func TestLeaderboard(t *testing.T) {
	ctx := context.Background()

	t.Run("each team carries its own total, highest first", func(t *testing.T) {
		f := newFixture()
		f.addProfessor(t, "a", 10)
		f.addProfessor(t, "b", 20)
		f.addProfessor(t, "c", 75)
		f.assemble(t, "user-1", "Alpha", []string{"a", "b"}, "b") // 10 + 40 = 50
		f.assemble(t, "user-2", "Beta", []string{"c"}, "c")       // 150

		standings, err := f.engine.Leaderboard(ctx)
		require.NoError(t, err)
		require.Len(t, standings, 2)
		assert.Equal(t, scoring.Standing{TeamName: "Beta", Score: 150}, standings[0])
		assert.Equal(t, scoring.Standing{TeamName: "Alpha", Score: 50}, standings[1])
	})

	t.Run("ties keep first-seen order", func(t *testing.T) {
		f := newFixture()
		f.addProfessor(t, "a", 40)
		f.addProfessor(t, "b", 40)
		f.addProfessor(t, "c", 100)
		f.assemble(t, "user-1", "Zulu", []string{"a"}, "")
		f.assemble(t, "user-2", "Alpha", []string{"b"}, "")
		f.assemble(t, "user-3", "Mid", []string{"c"}, "")

		standings, err := f.engine.Leaderboard(ctx)
		require.NoError(t, err)
		require.Len(t, standings, 3)
		assert.Equal(t, "Mid", standings[0].TeamName)
		assert.Equal(t, "Zulu", standings[1].TeamName, "Zulu was assembled before Alpha, no lexicographic re-sort")
		assert.Equal(t, "Alpha", standings[2].TeamName)
	})

	t.Run("equal totals rank after a higher one in first-seen order", func(t *testing.T) {
		f := newFixture()
		f.addProfessor(t, "a", 80)
		f.addProfessor(t, "b", 75)
		f.addProfessor(t, "c", 80)
		f.assemble(t, "user-1", "A", []string{"a"}, "")
		f.assemble(t, "user-2", "B", []string{"b"}, "b") // 150
		f.assemble(t, "user-3", "C", []string{"c"}, "")

		standings, err := f.engine.Leaderboard(ctx)
		require.NoError(t, err)
		require.Len(t, standings, 3)
		assert.Equal(t, scoring.Standing{TeamName: "B", Score: 150}, standings[0])
		assert.Equal(t, scoring.Standing{TeamName: "A", Score: 80}, standings[1])
		assert.Equal(t, scoring.Standing{TeamName: "C", Score: 80}, standings[2])
	})

	t.Run("repeated calls over unchanged data are identical", func(t *testing.T) {
		f := newFixture()
		f.addProfessor(t, "a", 40)
		f.addProfessor(t, "b", 40)
		f.assemble(t, "user-1", "One", []string{"a"}, "")
		f.assemble(t, "user-2", "Two", []string{"b"}, "")

		first, err := f.engine.Leaderboard(ctx)
		require.NoError(t, err)
		second, err := f.engine.Leaderboard(ctx)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("empty data gives empty standings", func(t *testing.T) {
		f := newFixture()
		standings, err := f.engine.Leaderboard(ctx)
		require.NoError(t, err)
		assert.Empty(t, standings)
	})
}
