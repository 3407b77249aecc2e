package repository

import (
	"context"
	"testing"
	"time"

	"agora/internal/config"
	"agora/internal/database"
	"agora/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens a fresh in-memory SQLite database with the schema migrated.
// Every test gets its own database, so tests can run in parallel.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &config.Config{
		Port:              "0",
		DBPath:            ":memory:",
		SessionTTLMinutes: 60,
		Env:               "test",
	}
	db, err := database.Connect(cfg)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

func createUser(t *testing.T, db *gorm.DB, email, name string) *models.User {
	t.Helper()

	user := &models.User{
		Email:        email,
		Name:         name,
		PasswordHash: "0000",
		PasswordSalt: "0000",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createPost(t *testing.T, db *gorm.DB, userID uint, title string, maxComments *int, createdAt time.Time) *models.Post {
	t.Helper()

	post := &models.Post{
		Title:       title,
		Text:        "body of " + title,
		MaxComments: maxComments,
		UserID:      userID,
		CreatedAt:   createdAt,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func createComment(t *testing.T, db *gorm.DB, postID uint, userID *uint, text string, createdAt time.Time) *models.Comment {
	t.Helper()

	comment := &models.Comment{
		Text:      text,
		PostID:    postID,
		UserID:    userID,
		CreatedAt: createdAt,
	}
	require.NoError(t, db.Create(comment).Error)
	return comment
}

func testCtx() context.Context {
	return context.Background()
}
