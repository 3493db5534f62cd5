package users

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/rentals/internal/database"
	"github.com/mrlokans/rentals/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Repository) {
	dbPath := filepath.Join(t.TempDir(), "test_users.db")

	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db.DB, NewRepository(db.DB)
}

func TestRepository_CreateUser(t *testing.T) {
	_, repo := setupTestDB(t)

	user, err := repo.CreateUser(&entities.User{
		Username:     "alice",
		PasswordHash: "hash",
		Email:        "alice@example.com",
		Phone:        "555-0100",
	})

	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.False(t, user.IsAdmin)
}

func TestRepository_CreateUser_DuplicateUsername(t *testing.T) {
	db, repo := setupTestDB(t)

	_, err := repo.CreateUser(&entities.User{Username: "alice", PasswordHash: "hash"})
	require.NoError(t, err)

	_, err = repo.CreateUser(&entities.User{Username: "alice", PasswordHash: "other"})
	assert.ErrorIs(t, err, ErrUsernameExists)

	var count int64
	require.NoError(t, db.Model(&entities.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRepository_GetUserByUsername(t *testing.T) {
	_, repo := setupTestDB(t)

	created, err := repo.CreateUser(&entities.User{Username: "alice", PasswordHash: "hash"})
	require.NoError(t, err)

	found, err := repo.GetUserByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = repo.GetUserByUsername("nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRepository_GetUserByID(t *testing.T) {
	_, repo := setupTestDB(t)

	created, err := repo.CreateUser(&entities.User{Username: "alice", PasswordHash: "hash"})
	require.NoError(t, err)

	found, err := repo.GetUserByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", found.Username)

	_, err = repo.GetUserByID(999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
