package session

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no session exists for the given ID.
var ErrNotFound = errors.New("session not found")

// Session is the browser-session-scoped state: written on login or
// registration, cleared on logout, read by every authenticated
// operation. Balance uses integer arithmetic throughout.
type Session struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Balance  int    `json:"balance"`
}

// Authenticated reports whether the session carries a backend token.
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}

// Store is the session-scoped key/value store. Implementations must be
// safe for concurrent use.
type Store interface {
	// Get returns the session for the given ID, or ErrNotFound.
	Get(ctx context.Context, sid string) (*Session, error)

	// Put stores the session under the given ID, replacing any previous
	// value.
	Put(ctx context.Context, sid string, sess *Session) error

	// Clear removes the session. Clearing an absent session is not an
	// error.
	Clear(ctx context.Context, sid string) error
}
