// internal/adapters/in/http/middleware/context.go
package middleware

import (
	"context"

	"gamestore/internal/domain/session"
)

// context keys use a private struct type to avoid collisions (SA1029).
type ctxKey struct{ name string }

var ctxKeySession = ctxKey{name: "session"}

// WithSession stores the resolved session on the request context.
func WithSession(ctx context.Context, s session.Session) context.Context {
	return context.WithValue(ctx, ctxKeySession, s)
}

// SessionFrom returns the session resolved by SessionMiddleware.
// The zero Session (anonymous, no device) is returned when absent.
func SessionFrom(ctx context.Context) session.Session {
	if s, ok := ctx.Value(ctxKeySession).(session.Session); ok {
		return s
	}
	return session.Session{}
}
