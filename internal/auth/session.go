// Package auth issues and verifies session tokens and carries the verified
// session through request contexts.
package auth

import (
	"context"
	"time"
)

// Session is the verified caller of one request.
type Session struct {
	UserID    string
	Email     string
	ExpiresAt time.Time
}

type sessionKey struct{}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFrom returns the session stored in ctx. A session without a user id
// is reported as absent.
func SessionFrom(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	if !ok || s == nil || s.UserID == "" {
		return nil, false
	}
	return s, true
}
