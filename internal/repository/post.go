package repository

import (
	"context"
	"errors"

	"agora/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	// List returns every post, newest first. The forum is small by design;
	// there is no pagination.
	List(ctx context.Context) ([]*models.Post, error)
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	// Delete removes the post by id and returns the number of rows deleted
	// (0 when the post was already gone). Authorization is the caller's job.
	Delete(ctx context.Context, id uint) (int64, error)
	CountComments(ctx context.Context, postID uint) (int64, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// applyPostDetails joins the author name and computes the comment count in a
// single query. Counts are always derived, never stored.
func (r *postRepository) applyPostDetails(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Post{}).
		Select("posts.*, users.name AS author_name, " +
			"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comment_count").
		Joins("LEFT JOIN users ON users.id = posts.user_id")
}

func (r *postRepository) List(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx)).
		Order("posts.created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx)).
		Where("posts.id = ?", id).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.NewConflictError("A post with this title already exists.")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) (int64, error) {
	// Comments and their interest marks go with the post.
	if err := r.db.WithContext(ctx).
		Where("comment_id IN (SELECT id FROM comments WHERE post_id = ?)", id).
		Delete(&models.InterestMark{}).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
		return 0, models.NewInternalError(err)
	}

	result := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if result.Error != nil {
		return 0, models.NewInternalError(result.Error)
	}
	return result.RowsAffected, nil
}

func (r *postRepository) CountComments(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
