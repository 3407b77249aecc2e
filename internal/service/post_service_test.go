package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"agora/internal/models"
	"agora/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appErrCode(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T", err)
	return appErr.Code
}

func TestPostService_Create(t *testing.T) {
	t.Parallel()

	stored := map[uint]*models.Post{}
	repo := &postRepoStub{
		createFn: func(_ context.Context, post *models.Post) error {
			post.ID = 1
			stored[post.ID] = post
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) {
			post, ok := stored[id]
			if !ok {
				return nil, models.NewNotFoundError("Post", id)
			}
			out := *post
			out.AuthorName = "Alice"
			return &out, nil
		},
	}
	svc := NewPostService(repo)

	post, err := svc.Create(context.Background(), CreatePostInput{
		AuthorID: 1,
		Title:    "First post",
		Text:     "hello world",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(1), post.ID)
	assert.Equal(t, "Alice", post.AuthorName, "create returns the enriched read")
	assert.Nil(t, post.MaxComments)
}

func TestPostService_Create_Validation(t *testing.T) {
	t.Parallel()

	// The repository must never be reached on invalid input; the nil function
	// fields panic if it is.
	svc := NewPostService(&postRepoStub{})
	negative := -1

	cases := []struct {
		name  string
		input CreatePostInput
	}{
		{"empty title", CreatePostInput{AuthorID: 1, Title: "", Text: "x"}},
		{"long title", CreatePostInput{AuthorID: 1, Title: strings.Repeat("a", 201), Text: "x"}},
		{"empty text", CreatePostInput{AuthorID: 1, Title: "t", Text: "  "}},
		{"negative cap", CreatePostInput{AuthorID: 1, Title: "t", Text: "x", MaxComments: &negative}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.input)
			assert.Equal(t, models.CodeValidation, appErrCode(t, err))
		})
	}
}

func TestPostService_Create_DuplicateTitle(t *testing.T) {
	t.Parallel()

	repo := &postRepoStub{
		createFn: func(_ context.Context, _ *models.Post) error {
			return models.NewConflictError("A post with this title already exists.")
		},
	}
	svc := NewPostService(repo)

	_, err := svc.Create(context.Background(), CreatePostInput{AuthorID: 1, Title: "dupe", Text: "x"})
	assert.Equal(t, models.CodeConflict, appErrCode(t, err))
}

func TestPostService_Delete(t *testing.T) {
	t.Parallel()

	ownerID := uint(1)
	post := &models.Post{ID: 5, Title: "t", Text: "x", UserID: ownerID}

	newRepo := func(deleted *bool) *postRepoStub {
		return &postRepoStub{
			getByIDFn: func(_ context.Context, id uint) (*models.Post, error) {
				if id == post.ID {
					return post, nil
				}
				return nil, models.NewNotFoundError("Post", id)
			},
			deleteFn: func(_ context.Context, _ uint) (int64, error) {
				if deleted != nil {
					*deleted = true
				}
				return 1, nil
			},
		}
	}

	t.Run("owner deletes", func(t *testing.T) {
		t.Parallel()
		deleted := false
		svc := NewPostService(newRepo(&deleted))
		sess := session.New(ownerID, "alice@agora.local", "Alice", false, time.Hour)

		rows, err := svc.Delete(context.Background(), sess, post.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), rows)
		assert.True(t, deleted)
	})

	t.Run("admin deletes", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(newRepo(nil))
		sess := session.New(9, "mod@agora.local", "Mod", true, time.Hour)
		sess.State = session.Elevated

		rows, err := svc.Delete(context.Background(), sess, post.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), rows)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(newRepo(nil))
		sess := session.New(2, "bob@agora.local", "Bob", false, time.Hour)

		_, err := svc.Delete(context.Background(), sess, post.ID)
		assert.Equal(t, models.CodeForbidden, appErrCode(t, err))
	})

	t.Run("missing post is 404 before authorization", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(newRepo(nil))
		sess := session.New(2, "bob@agora.local", "Bob", false, time.Hour)

		_, err := svc.Delete(context.Background(), sess, 999)
		assert.Equal(t, models.CodeNotFound, appErrCode(t, err))
	})
}
