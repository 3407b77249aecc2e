package service

import (
	"context"

	"agora/internal/models"
	"agora/internal/repository"
	"agora/internal/session"
	"agora/internal/validation"
)

// PostService implements post creation, listing and moderation.
type PostService struct {
	postRepo repository.PostRepository
}

// CreatePostInput carries the fields for a new post. AuthorID comes from the
// trusted session, never from the request body.
type CreatePostInput struct {
	AuthorID    uint
	Title       string
	Text        string
	MaxComments *int
}

// NewPostService creates a new PostService.
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// List returns all posts, newest first, with author names and comment counts.
func (s *PostService) List(ctx context.Context) ([]*models.Post, error) {
	return s.postRepo.List(ctx)
}

// Get returns a single post by id.
func (s *PostService) Get(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// Create validates and stores a new post. A duplicate title surfaces as a
// CONFLICT error distinguishable from generic store failures.
func (s *PostService) Create(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validation.ValidateTitle(in.Title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateText(in.Text); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateMaxComments(in.MaxComments); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post := &models.Post{
		Title:       in.Title,
		Text:        in.Text,
		MaxComments: in.MaxComments,
		UserID:      in.AuthorID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	// Re-read to pick up the computed author name and comment count.
	return s.postRepo.GetByID(ctx, post.ID)
}

// Delete removes a post after checking existence, then authorization, in
// that order: a missing post is 404 even for a caller with no rights.
func (s *PostService) Delete(ctx context.Context, sess *session.Session, postID uint) (int64, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return 0, err
	}

	if !CanModify(sess, &post.UserID) {
		return 0, models.NewForbiddenError("Not authorized to delete this post.")
	}

	return s.postRepo.Delete(ctx, postID)
}
