package userservice

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sushihentaime/blogapi/internal/common"
)

func TestDBModel(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}

	db := common.TestDB("file://../../migrations", t)
	m := NewDBModel(db)
	ctx := context.Background()

	cleanup := func() {
		_, err := db.Exec("DELETE FROM users")
		assert.NoError(t, err)
	}

	t.Run("insert and get", func(t *testing.T) {
		t.Cleanup(cleanup)

		u := User{ID: uuid.New(), FirstName: "Test", LastName: "User", Email: "testuser@example.com"}
		require.NoError(t, u.Password.set("TestPassword123!"))
		require.NoError(t, m.insertUser(ctx, &u))
		assert.False(t, u.CreatedAt.IsZero())

		byEmail, err := m.getUserByEmail(ctx, u.Email)
		require.NoError(t, err)
		assert.Equal(t, u.ID, byEmail.ID)
		ok, err := byEmail.Password.compare("TestPassword123!")
		assert.NoError(t, err)
		assert.True(t, ok)

		byID, err := m.getUserByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, u.Email, byID.Email)
		assert.Empty(t, byID.Password.hash)
	})

	t.Run("duplicate email", func(t *testing.T) {
		t.Cleanup(cleanup)

		first := User{ID: uuid.New(), FirstName: "A", LastName: "B", Email: "dup@example.com", Password: Password{hash: []byte("x")}}
		require.NoError(t, m.insertUser(ctx, &first))

		second := User{ID: uuid.New(), FirstName: "C", LastName: "D", Email: "dup@example.com", Password: Password{hash: []byte("y")}}
		assert.ErrorIs(t, m.insertUser(ctx, &second), ErrDuplicateEmail)

		var count int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count))
		assert.Equal(t, 1, count)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := m.getUserByID(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = m.getUserByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
