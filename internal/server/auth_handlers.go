package server

import (
	"errors"
	"log/slog"
	"time"

	"agora/internal/middleware"
	"agora/internal/models"
	"agora/internal/service"
	"agora/internal/session"

	"github.com/gofiber/fiber/v2"
)

// Login handles POST /api/sessions. A successful password check replaces any
// existing session with a fresh Authenticated one, so elevation never leaks
// across logins.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewValidationError("Invalid request body"))
	}

	// The login handle is the email; clients may send it under either key.
	email := req.Username
	if email == "" {
		email = req.Email
	}
	if email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewValidationError("Username and password are required"))
	}

	user, err := s.authService.Login(c.UserContext(), email, req.Password)
	if err != nil {
		return respondServiceError(c, err)
	}

	// Drop the previous session record, if any.
	if old := middleware.CurrentSession(c); old != nil {
		if derr := s.sessions.Destroy(c.UserContext(), old.Token); derr != nil {
			middleware.Logger.WarnContext(c.UserContext(), "failed to destroy previous session",
				slog.String("error", derr.Error()))
		}
	}

	ttl := time.Duration(s.config.SessionTTLMinutes) * time.Minute
	sess := session.New(user.ID, user.Email, user.Name, user.CanDoTOTP(), ttl)
	if err := s.sessions.Save(c.UserContext(), sess); err != nil {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewInternalError(err))
	}

	s.setSessionCookie(c, sess)
	return c.JSON(service.UserInfoFor(sess))
}

// TOTPLogin handles POST /api/login-totp. It elevates an Authenticated
// session to Elevated after verifying a one-time code. Elevation is a
// property of the session, re-established from scratch each login.
func (s *Server) TOTPLogin(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)

	var req struct {
		Code string `json:"code"`
	}
	if err := c.BodyParser(&req); err != nil || req.Code == "" {
		return models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewValidationError("Code is required"))
	}

	if err := s.authService.VerifyTOTP(c.UserContext(), sess.UserID, req.Code); err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
			// The session references a user that no longer exists.
			err = models.NewUnauthorizedError("Not authorized")
		}
		return respondServiceError(c, err)
	}

	sess.State = session.Elevated
	if err := s.sessions.Save(c.UserContext(), sess); err != nil {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewInternalError(err))
	}

	return c.JSON(service.UserInfoFor(sess))
}

// GetCurrentSession handles GET /api/sessions/current.
func (s *Server) GetCurrentSession(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	if sess == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Not authenticated"))
	}
	return c.JSON(service.UserInfoFor(sess))
}

// Logout handles DELETE /api/sessions/current. Logging out an anonymous
// requester is a harmless success.
func (s *Server) Logout(c *fiber.Ctx) error {
	if sess := middleware.CurrentSession(c); sess != nil {
		if err := s.sessions.Destroy(c.UserContext(), sess.Token); err != nil {
			middleware.Logger.WarnContext(c.UserContext(), "failed to destroy session",
				slog.String("error", err.Error()))
		}
	}
	s.clearSessionCookie(c)
	return c.SendStatus(fiber.StatusOK)
}
