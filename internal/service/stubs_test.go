package service

import (
	"context"

	"agora/internal/models"
)

// Function-field stubs for the repository interfaces. Tests set only the
// functions they expect to be called; an unset function panics, which makes
// unexpected calls fail loudly.

type userRepoStub struct {
	getByIDFn    func(ctx context.Context, id uint) (*models.User, error)
	getByEmailFn func(ctx context.Context, email string) (*models.User, error)
	createFn     func(ctx context.Context, user *models.User) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}

func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}

type postRepoStub struct {
	listFn          func(ctx context.Context) ([]*models.Post, error)
	getByIDFn       func(ctx context.Context, id uint) (*models.Post, error)
	createFn        func(ctx context.Context, post *models.Post) error
	deleteFn        func(ctx context.Context, id uint) (int64, error)
	countCommentsFn func(ctx context.Context, postID uint) (int64, error)
}

func (s *postRepoStub) List(ctx context.Context) ([]*models.Post, error) {
	return s.listFn(ctx)
}

func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}

func (s *postRepoStub) Delete(ctx context.Context, id uint) (int64, error) {
	return s.deleteFn(ctx, id)
}

func (s *postRepoStub) CountComments(ctx context.Context, postID uint) (int64, error) {
	return s.countCommentsFn(ctx, postID)
}

type commentRepoStub struct {
	listByPostFn func(ctx context.Context, requesterID *uint, postID uint) ([]*models.Comment, error)
	getByIDFn    func(ctx context.Context, requesterID *uint, id uint) (*models.Comment, error)
	createFn     func(ctx context.Context, comment *models.Comment) error
	updateTextFn func(ctx context.Context, id uint, text string) (int64, error)
	deleteFn     func(ctx context.Context, id uint) (int64, error)
	markFn       func(ctx context.Context, userID, commentID uint) error
	unmarkFn     func(ctx context.Context, userID, commentID uint) error
}

func (s *commentRepoStub) ListByPost(ctx context.Context, requesterID *uint, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, requesterID, postID)
}

func (s *commentRepoStub) GetByID(ctx context.Context, requesterID *uint, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, requesterID, id)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}

func (s *commentRepoStub) UpdateText(ctx context.Context, id uint, text string) (int64, error) {
	return s.updateTextFn(ctx, id, text)
}

func (s *commentRepoStub) Delete(ctx context.Context, id uint) (int64, error) {
	return s.deleteFn(ctx, id)
}

func (s *commentRepoStub) Mark(ctx context.Context, userID, commentID uint) error {
	return s.markFn(ctx, userID, commentID)
}

func (s *commentRepoStub) Unmark(ctx context.Context, userID, commentID uint) error {
	return s.unmarkFn(ctx, userID, commentID)
}
