// Package service implements the application's business rules on top of the
// repository layer.
package service

import (
	"context"

	"agora/internal/auth"
	"agora/internal/models"
	"agora/internal/repository"
	"agora/internal/session"
)

// AuthService verifies credentials and second factors.
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// errBadCredentials is shared by every login failure so a caller cannot
// distinguish "no such user" from "wrong password".
func errBadCredentials() *models.AppError {
	return models.NewUnauthorizedError("Incorrect email or password.")
}

// Login verifies the password for email and returns the matching user.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errBadCredentials()
	}
	if !auth.VerifyPassword(password, user.PasswordHash, user.PasswordSalt) {
		return nil, errBadCredentials()
	}
	return user, nil
}

// VerifyTOTP checks a one-time code for the session's user. It fails when the
// user has no secret configured or the code is outside the accepted window.
func (s *AuthService) VerifyTOTP(ctx context.Context, userID uint, code string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.CanDoTOTP() {
		return models.NewUnauthorizedError("Two-factor authentication is not configured for this account.")
	}
	if !auth.VerifyTOTP(*user.TOTPSecret, code) {
		return models.NewUnauthorizedError("Invalid TOTP code.")
	}
	return nil
}

// UserInfoFor builds the safe user view for a session. IsTOTP reflects the
// session, not the user record: elevation must be re-established per session.
func UserInfoFor(sess *session.Session) models.UserInfo {
	return models.UserInfo{
		ID:        sess.UserID,
		Username:  sess.Email,
		Name:      sess.Name,
		CanDoTOTP: sess.CanDoTOTP,
		IsTOTP:    sess.IsElevated(),
	}
}

// CanModify is the single authorization predicate for mutating content:
// the requester must be the resource owner or hold an elevated session.
// Anonymous content (nil owner) can only be modified by an admin.
func CanModify(sess *session.Session, ownerID *uint) bool {
	if sess == nil {
		return false
	}
	if sess.IsElevated() {
		return true
	}
	return ownerID != nil && *ownerID == sess.UserID
}
