package auth

import (
	"context"

	"github.com/google/uuid"
)

type contextKey struct{}

// Caller is the authenticated identity attached to a request.
// ParticipantID is uuid.Nil when the auth user has no participant profile yet.
type Caller struct {
	AuthUserID    uuid.UUID
	ParticipantID uuid.UUID
	Email         string
	IsAdmin       bool
}

// HasParticipant reports whether the caller resolved to a participant.
func (c Caller) HasParticipant() bool {
	return c.ParticipantID != uuid.Nil
}

// WithCaller returns a copy of ctx carrying caller.
func WithCaller(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, contextKey{}, caller)
}

// CallerFromContext returns the caller attached by the interceptor, if any.
func CallerFromContext(ctx context.Context) (Caller, bool) {
	caller, ok := ctx.Value(contextKey{}).(Caller)
	return caller, ok
}

// RequireParticipant returns the caller when it is authenticated and resolved
// to a participant.
func RequireParticipant(ctx context.Context) (Caller, error) {
	caller, ok := CallerFromContext(ctx)
	if !ok {
		return Caller{}, ErrUnauthenticated
	}
	if !caller.HasParticipant() {
		return Caller{}, ErrNoParticipant
	}
	return caller, nil
}

// RequireAdmin returns the caller when it is a participant with admin rights.
func RequireAdmin(ctx context.Context) (Caller, error) {
	caller, err := RequireParticipant(ctx)
	if err != nil {
		return Caller{}, err
	}
	if !caller.IsAdmin {
		return Caller{}, ErrForbidden
	}
	return caller, nil
}
