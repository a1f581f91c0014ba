package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fantaprof/fantaprof-server/internal/domain/professor"
	"github.com/fantaprof/fantaprof-server/internal/domain/team"
)

func TestProfessorStore(t *testing.T) {
	ctx := context.Background()

	t.Run("get after save", func(t *testing.T) {
		store := NewProfessorStore()
		p, err := professor.New("prof-1", "rossi", 10)
		require.NoError(t, err)
		require.NoError(t, store.Save(ctx, p))

		got, err := store.Get(ctx, "prof-1")
		require.NoError(t, err)
		assert.Equal(t, "rossi", got.Name.String())
	})

	t.Run("get unknown id", func(t *testing.T) {
		store := NewProfessorStore()
		_, err := store.Get(ctx, "ghost")
		assert.ErrorIs(t, err, professor.ErrNotFound)
	})

	t.Run("save is an upsert", func(t *testing.T) {
		store := NewProfessorStore()
		p, err := professor.New("prof-1", "rossi", 10)
		require.NoError(t, err)
		require.NoError(t, store.Save(ctx, p))

		p.ApplyDelta(5)
		require.NoError(t, store.Save(ctx, p))

		got, err := store.Get(ctx, "prof-1")
		require.NoError(t, err)
		assert.Equal(t, 5, got.Score)

		all, err := store.All(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("delete removes the professor", func(t *testing.T) {
		store := NewProfessorStore()
		p, err := professor.New("prof-1", "rossi", 10)
		require.NoError(t, err)
		require.NoError(t, store.Save(ctx, p))

		require.NoError(t, store.Delete(ctx, "prof-1"))
		_, err = store.Get(ctx, "prof-1")
		assert.ErrorIs(t, err, professor.ErrNotFound)

		assert.ErrorIs(t, store.Delete(ctx, "prof-1"), professor.ErrNotFound)
	})

	t.Run("all preserves insertion order", func(t *testing.T) {
		store := NewProfessorStore()
		for _, name := range []string{"zeta", "alpha", "mid"} {
			p, err := professor.New(name+"-id", professor.Name(name), 10)
			require.NoError(t, err)
			require.NoError(t, store.Save(ctx, p))
		}

		all, err := store.All(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "zeta", all[0].Name.String())
		assert.Equal(t, "alpha", all[1].Name.String())
	})

	t.Run("returned values are copies", func(t *testing.T) {
		store := NewProfessorStore()
		p, err := professor.New("prof-1", "rossi", 10)
		require.NoError(t, err)
		require.NoError(t, store.Save(ctx, p))

		got, err := store.Get(ctx, "prof-1")
		require.NoError(t, err)
		got.Score = 999

		again, err := store.Get(ctx, "prof-1")
		require.NoError(t, err)
		assert.Zero(t, again.Score)
	})
}

func TestTeamStore(t *testing.T) {
	ctx := context.Background()

	save := func(t *testing.T, store *TeamStore, id, teamName, userID, profID string) {
		t.Helper()
		m, err := team.NewMembership(id, teamName, userID, profID, false)
		require.NoError(t, err)
		require.NoError(t, store.Save(ctx, m))
	}

	t.Run("find by user filters rows", func(t *testing.T) {
		store := NewTeamStore()
		save(t, store, "r1", "Alpha", "user-1", "prof-1")
		save(t, store, "r2", "Beta", "user-2", "prof-2")
		save(t, store, "r3", "Alpha", "user-1", "prof-3")

		rows, err := store.FindByUserID(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "prof-1", rows[0].ProfessorID)
		assert.Equal(t, "prof-3", rows[1].ProfessorID)
	})

	t.Run("all keeps insertion order across users", func(t *testing.T) {
		store := NewTeamStore()
		save(t, store, "r1", "Beta", "user-2", "prof-2")
		save(t, store, "r2", "Alpha", "user-1", "prof-1")

		rows, err := store.All(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "Beta", rows[0].TeamName)
	})

	t.Run("unknown user gets an empty slice", func(t *testing.T) {
		store := NewTeamStore()
		rows, err := store.FindByUserID(ctx, "nobody")
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}
