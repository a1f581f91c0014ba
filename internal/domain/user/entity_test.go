package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("valid user", func(t *testing.T) {
		u, err := New("user-1", "  mario  ", "hash", RolePlayer)
		require.NoError(t, err)
		assert.Equal(t, "mario", u.Username, "username is trimmed")
		assert.False(t, u.IsAdmin())
	})

	t.Run("admin role", func(t *testing.T) {
		u, err := New("user-1", "root", "hash", RoleAdmin)
		require.NoError(t, err)
		assert.True(t, u.IsAdmin())
	})

	t.Run("blank username rejected", func(t *testing.T) {
		_, err := New("user-1", "  ", "hash", RolePlayer)
		assert.ErrorIs(t, err, ErrEmptyUsername)
	})

	t.Run("empty password hash rejected", func(t *testing.T) {
		_, err := New("user-1", "mario", "", RolePlayer)
		assert.ErrorIs(t, err, ErrEmptyPassword)
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		_, err := New("user-1", "mario", "hash", Role("superuser"))
		assert.ErrorIs(t, err, ErrInvalidRole)
	})
}
