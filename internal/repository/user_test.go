package repository

import (
	"testing"

	"agora/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_GetByEmail(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewUserRepository(db)
	alice := createUser(t, db, "alice@agora.local", "Alice")

	got, err := repo.GetByEmail(testCtx(), "alice@agora.local")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, alice.ID, got.ID)

	// Absence is not an error; the caller folds it into the uniform
	// bad-credentials path.
	missing, err := repo.GetByEmail(testCtx(), "ghost@agora.local")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepository_GetByID(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewUserRepository(db)
	alice := createUser(t, db, "alice@agora.local", "Alice")

	got, err := repo.GetByID(testCtx(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)

	_, err = repo.GetByID(testCtx(), 999)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewUserRepository(db)
	createUser(t, db, "alice@agora.local", "Alice")

	err := repo.Create(testCtx(), &models.User{
		Email:        "alice@agora.local",
		Name:         "Impostor",
		PasswordHash: "0000",
		PasswordSalt: "0000",
	})
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, models.CodeConflict, appErr.Code)
}
