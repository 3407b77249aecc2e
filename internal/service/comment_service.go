package service

import (
	"context"

	"agora/internal/models"
	"agora/internal/repository"
	"agora/internal/session"
	"agora/internal/validation"
)

// CommentService implements comment CRUD, the per-post comment cap and the
// interest-mark relation.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// CreateCommentInput carries the fields for a new comment. A nil RequesterID
// produces an anonymous comment.
type CreateCommentInput struct {
	RequesterID *uint
	PostID      uint
	Text        string
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// ListByPost returns the comments visible to the requester, newest first.
// Anonymous requesters see only anonymous comments.
func (s *CommentService) ListByPost(ctx context.Context, requesterID *uint, postID uint) ([]*models.Comment, error) {
	return s.commentRepo.ListByPost(ctx, requesterID, postID)
}

// Get returns one comment, subject to the same visibility rule as listing.
func (s *CommentService) Get(ctx context.Context, requesterID *uint, id uint) (*models.Comment, error) {
	return s.commentRepo.GetByID(ctx, requesterID, id)
}

// Create adds a comment to a post, enforcing the post's comment cap. The cap
// is checked immediately before the insert; the read-then-insert window is a
// documented, accepted gap rather than a transactional guarantee.
func (s *CommentService) Create(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if err := validation.ValidateText(in.Text); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	if post.MaxComments != nil {
		count, err := s.postRepo.CountComments(ctx, in.PostID)
		if err != nil {
			return nil, err
		}
		if count >= int64(*post.MaxComments) {
			return nil, models.NewConflictError("Comment limit reached for this post.")
		}
	}

	comment := &models.Comment{
		Text:   in.Text,
		PostID: in.PostID,
		UserID: in.RequesterID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	// Re-read to pick up the author name and interest aggregates.
	return s.commentRepo.GetByID(ctx, in.RequesterID, comment.ID)
}

// UpdateText replaces a comment's text. Existence is checked before
// ownership so a missing comment reads as 404 regardless of the caller.
func (s *CommentService) UpdateText(ctx context.Context, sess *session.Session, commentID uint, text string) (*models.Comment, error) {
	if err := validation.ValidateText(text); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	requesterID := sess.UserID
	comment, err := s.commentRepo.GetByID(ctx, &requesterID, commentID)
	if err != nil {
		return nil, err
	}

	if !CanModify(sess, comment.UserID) {
		return nil, models.NewForbiddenError("Not authorized to edit this comment.")
	}

	rows, err := s.commentRepo.UpdateText(ctx, commentID, text)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, models.NewNotFoundError("Comment", commentID)
	}

	return s.commentRepo.GetByID(ctx, &requesterID, commentID)
}

// Delete removes a comment after the existence and ownership checks.
func (s *CommentService) Delete(ctx context.Context, sess *session.Session, commentID uint) (int64, error) {
	requesterID := sess.UserID
	comment, err := s.commentRepo.GetByID(ctx, &requesterID, commentID)
	if err != nil {
		return 0, err
	}

	if !CanModify(sess, comment.UserID) {
		return 0, models.NewForbiddenError("Not authorized to delete this comment.")
	}

	return s.commentRepo.Delete(ctx, commentID)
}

// SetInteresting marks or unmarks a comment as interesting for the user.
// Both directions are idempotent: repeating either is a no-op success.
func (s *CommentService) SetInteresting(ctx context.Context, sess *session.Session, commentID uint, interesting bool) error {
	requesterID := sess.UserID
	if _, err := s.commentRepo.GetByID(ctx, &requesterID, commentID); err != nil {
		return err
	}

	if interesting {
		return s.commentRepo.Mark(ctx, sess.UserID, commentID)
	}
	return s.commentRepo.Unmark(ctx, sess.UserID, commentID)
}
