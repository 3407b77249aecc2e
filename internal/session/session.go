// Package session implements server-side sessions: an explicit state machine
// (Anonymous, Authenticated, Elevated) and a pluggable token-keyed store.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// State describes how far a session has progressed through authentication.
// Elevated implies Authenticated; there is no way to represent an elevated
// session without an identity.
type State int

const (
	// Anonymous means no identity is attached. Requests without a valid
	// session cookie are anonymous; no store record exists for them.
	Anonymous State = iota
	// Authenticated means the password check succeeded.
	Authenticated
	// Elevated means a valid TOTP code was also verified in this session.
	// Elevation never outlives the session.
	Elevated
)

func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case Elevated:
		return "elevated"
	default:
		return "anonymous"
	}
}

// ErrNotFound is returned by Store.Get when no live session matches the token.
var ErrNotFound = errors.New("session not found")

// Session is the server-side record bound to a cookie token.
type Session struct {
	Token     string    `json:"token"`
	UserID    uint      `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CanDoTOTP bool      `json:"can_do_totp"`
	State     State     `json:"state"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsElevated reports whether the session passed the second factor.
func (s *Session) IsElevated() bool {
	return s.State == Elevated
}

// Store persists sessions by token. Implementations must treat Get on an
// expired session as ErrNotFound.
type Store interface {
	Get(ctx context.Context, token string) (*Session, error)
	Save(ctx context.Context, sess *Session) error
	Destroy(ctx context.Context, token string) error
}

// New creates an Authenticated session with a fresh random token.
func New(userID uint, email, name string, canDoTOTP bool, ttl time.Duration) *Session {
	return &Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		Email:     email,
		Name:      name,
		CanDoTOTP: canDoTOTP,
		State:     Authenticated,
		ExpiresAt: time.Now().UTC().Add(ttl),
	}
}
