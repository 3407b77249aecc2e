package middleware

import (
	"context"
	"errors"
	"log/slog"

	"agora/internal/models"
	"agora/internal/session"

	"github.com/gofiber/fiber/v2"
)

// SessionCookie is the name of the HTTP-only cookie carrying the session token.
const SessionCookie = "agora_session"

// sessionLocal is the Fiber locals key holding the resolved *session.Session.
const sessionLocal = "session"

// SessionMiddleware resolves the session cookie against the store and, when a
// live session exists, attaches it to the request. It never rejects: routes
// that require identity use LoginRequired on top of this.
func SessionMiddleware(store session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookie)
		if token == "" {
			return c.Next()
		}

		sess, err := store.Get(c.UserContext(), token)
		if err != nil {
			if !errors.Is(err, session.ErrNotFound) {
				// Store trouble degrades the request to anonymous rather
				// than failing every public route.
				Logger.ErrorContext(c.UserContext(), "session lookup failed",
					slog.String("error", err.Error()))
			}
			return c.Next()
		}

		c.Locals(sessionLocal, sess)
		ctx := context.WithValue(c.UserContext(), UserIDKey, sess.UserID)
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// LoginRequired rejects requests without at least an Authenticated session.
// Must be placed after SessionMiddleware.
func LoginRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentSession(c) == nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Not authorized"))
		}
		return c.Next()
	}
}

// CurrentSession returns the session attached by SessionMiddleware, or nil
// for anonymous requests.
func CurrentSession(c *fiber.Ctx) *session.Session {
	sess, _ := c.Locals(sessionLocal).(*session.Session)
	return sess
}

// RequesterID returns the authenticated user's id, or nil for anonymous
// requests. Handlers pass it straight to the visibility-aware repository.
func RequesterID(c *fiber.Ctx) *uint {
	sess := CurrentSession(c)
	if sess == nil {
		return nil
	}
	id := sess.UserID
	return &id
}
