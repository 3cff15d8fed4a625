package auth

import (
	"context"
	"errors"
	"strings"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/scotty-olympics/olympics/go/internal/models"
)

// ParticipantResolver maps an auth user to its participant profile. It returns
// nil without error when the user has no profile.
type ParticipantResolver interface {
	ResolveParticipant(ctx context.Context, authUserID uuid.UUID) (*models.Participant, error)
}

// NewInterceptor authenticates bearer tokens on incoming requests and attaches
// the resolved Caller to the context. Requests without a token pass through
// anonymously so public reads keep working.
func NewInterceptor(verifier *Verifier, resolver ParticipantResolver) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if req.Spec().IsClient {
				return next(ctx, req)
			}

			header := req.Header().Get("Authorization")
			if header == "" {
				return next(ctx, req)
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				return nil, connect.NewError(connect.CodeUnauthenticated, errors.New("authorization header must use the Bearer scheme"))
			}

			authUserID, claims, err := verifier.Verify(strings.TrimSpace(token))
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			caller := Caller{AuthUserID: authUserID, Email: claims.Email}
			participant, err := resolver.ResolveParticipant(ctx, authUserID)
			if err != nil {
				log.Error().Err(err).Str("auth_user_id", authUserID.String()).Msg("failed to resolve participant")
				return nil, connect.NewError(connect.CodeInternal, errors.New("failed to resolve caller"))
			}
			if participant != nil {
				caller.ParticipantID = participant.ID
				caller.IsAdmin = participant.IsAdmin
			}

			return next(WithCaller(ctx, caller), req)
		}
	}
}
