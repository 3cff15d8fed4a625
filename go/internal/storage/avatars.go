// Package storage turns stored avatar object keys into URLs clients can load.
package storage

import (
	"context"

	"github.com/rs/zerolog/log"
)

// AvatarResolver returns a fetchable URL for an avatar object key.
type AvatarResolver interface {
	AvatarURL(ctx context.Context, key string) (string, error)
}

// ResolveAvatarURL is a nil-safe helper for projections: a missing key, a nil
// resolver or a resolver failure all yield an empty URL.
func ResolveAvatarURL(ctx context.Context, resolver AvatarResolver, key *string) string {
	if resolver == nil || key == nil || *key == "" {
		return ""
	}
	url, err := resolver.AvatarURL(ctx, *key)
	if err != nil {
		log.Warn().Err(err).Str("avatar_key", *key).Msg("failed to resolve avatar url")
		return ""
	}
	return url
}
