package middleware

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/internal/auth"
)

// SessionVerifier turns a bearer token into a session.
type SessionVerifier interface {
	Verify(token string) (*auth.Session, error)
}

// RequireSession rejects calls without a valid bearer token and hands the
// verified session to the handler through the context.
func RequireSession(v SessionVerifier) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			token, err := bearerToken(req.Header())
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			session, err := v.Verify(token)
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			noteCaller(ctx, session.UserID)
			return next(auth.WithSession(ctx, session), req)
		}
	}
}

func bearerToken(h http.Header) (string, error) {
	value := strings.TrimSpace(h.Get("Authorization"))
	if value == "" {
		return "", auth.ErrMissingToken
	}
	scheme, token, ok := strings.Cut(value, " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", auth.ErrInvalidToken
	}
	return token, nil
}
