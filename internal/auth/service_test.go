package auth

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mrlokans/rentals/internal/config"
	"github.com/mrlokans/rentals/internal/database"
	"github.com/mrlokans/rentals/internal/database/users"
)

func setupService(t *testing.T) *Service {
	dbPath := filepath.Join(t.TempDir(), "test_auth.db")

	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := config.Auth{
		BcryptCost:       bcrypt.MinCost,
		MaxLoginAttempts: 3,
		LockoutDuration:  30 * time.Minute,
	}
	return NewService(users.NewRepository(db.DB), cfg)
}

func TestService_SignUpAndAuthenticate(t *testing.T) {
	svc := setupService(t)

	created, err := svc.SignUp("alice", "sufficiently-long", "alice@example.com", "555-0100")
	require.NoError(t, err)
	assert.NotEqual(t, "sufficiently-long", created.PasswordHash)

	user, err := svc.Authenticate("alice", "sufficiently-long")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = svc.Authenticate("alice", "not-the-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_SignUp_Validation(t *testing.T) {
	svc := setupService(t)

	_, err := svc.SignUp("", "sufficiently-long", "", "")
	assert.ErrorIs(t, err, ErrUsernameRequired)

	_, err = svc.SignUp("alice", "", "", "")
	assert.ErrorIs(t, err, ErrPasswordRequired)

	_, err = svc.SignUp("a", "sufficiently-long", "", "")
	assert.ErrorIs(t, err, ErrUsernameInvalid)

	_, err = svc.SignUp("alice", "short", "", "")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestService_SignUp_DuplicateUsername(t *testing.T) {
	svc := setupService(t)

	_, err := svc.SignUp("alice", "sufficiently-long", "", "")
	require.NoError(t, err)

	_, err = svc.SignUp("alice", "different-password", "", "")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestService_Authenticate_UnknownUserIndistinguishable(t *testing.T) {
	svc := setupService(t)

	_, err := svc.Authenticate("ghost", "whatever-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Authenticate_LockoutAfterRepeatedFailures(t *testing.T) {
	svc := setupService(t)

	_, err := svc.SignUp("alice", "sufficiently-long", "", "")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = svc.Authenticate("alice", "wrong-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	// Locked now, even with the correct password.
	_, err = svc.Authenticate("alice", "sufficiently-long")
	assert.ErrorIs(t, err, ErrAccountLocked)
}
