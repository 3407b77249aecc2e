package repository

import (
	"context"
	"errors"

	"agora/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentRepository defines comment persistence including the per-user
// interest relation. List and Get are parameterized by the requester:
// a nil requesterID means anonymous, which sees only anonymous comments.
type CommentRepository interface {
	ListByPost(ctx context.Context, requesterID *uint, postID uint) ([]*models.Comment, error)
	GetByID(ctx context.Context, requesterID *uint, id uint) (*models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) error
	UpdateText(ctx context.Context, id uint, text string) (int64, error)
	// Delete removes the comment by id and returns the number of rows
	// deleted. Authorization is the caller's job.
	Delete(ctx context.Context, id uint) (int64, error)
	// Mark and Unmark are idempotent: repeating either is a no-op success.
	Mark(ctx context.Context, userID, commentID uint) error
	Unmark(ctx context.Context, userID, commentID uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// applyCommentDetails joins the author name and computes the interest
// aggregates relative to the requester. For anonymous requesters the
// interest flag is constantly false and only anonymous comments match.
func (r *commentRepository) applyCommentDetails(db *gorm.DB, requesterID *uint) *gorm.DB {
	base := db.Model(&models.Comment{}).
		Joins("LEFT JOIN users ON users.id = comments.user_id")

	countSelect := "comments.*, users.name AS user_name, " +
		"(SELECT COUNT(*) FROM interest_marks im WHERE im.comment_id = comments.id) AS count_interesting_marks"

	if requesterID == nil {
		return base.
			Select(countSelect + ", 0 AS is_interesting_for_current_user").
			Where("comments.user_id IS NULL")
	}

	return base.Select(countSelect+
		", EXISTS(SELECT 1 FROM interest_marks im2 WHERE im2.comment_id = comments.id AND im2.user_id = ?) AS is_interesting_for_current_user",
		*requesterID)
}

func (r *commentRepository) ListByPost(ctx context.Context, requesterID *uint, postID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.applyCommentDetails(r.db.WithContext(ctx), requesterID).
		Where("comments.post_id = ?", postID).
		Order("comments.created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

func (r *commentRepository) GetByID(ctx context.Context, requesterID *uint, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.applyCommentDetails(r.db.WithContext(ctx), requesterID).
		Where("comments.id = ?", id).
		First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *commentRepository) UpdateText(ctx context.Context, id uint, text string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ?", id).
		Update("text", text)
	if result.Error != nil {
		return 0, models.NewInternalError(result.Error)
	}
	return result.RowsAffected, nil
}

func (r *commentRepository) Delete(ctx context.Context, id uint) (int64, error) {
	// Interest marks reference the comment; clear them first.
	if err := r.db.WithContext(ctx).
		Where("comment_id = ?", id).
		Delete(&models.InterestMark{}).Error; err != nil {
		return 0, models.NewInternalError(err)
	}

	result := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if result.Error != nil {
		return 0, models.NewInternalError(result.Error)
	}
	return result.RowsAffected, nil
}

func (r *commentRepository) Mark(ctx context.Context, userID, commentID uint) error {
	// ON CONFLICT DO NOTHING keeps repeated marks idempotent without a
	// read-modify-write round trip.
	mark := &models.InterestMark{UserID: userID, CommentID: commentID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(mark).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *commentRepository) Unmark(ctx context.Context, userID, commentID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Delete(&models.InterestMark{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
