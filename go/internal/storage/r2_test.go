package storage

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketResolver_PublicBaseURL(t *testing.T) {
	r, err := NewBucketResolver(t.Context(), R2Config{
		BucketName:    "avatars",
		PublicBaseURL: "https://cdn.example.com/avatars",
	})
	require.NoError(t, err)

	got, err := r.AvatarURL(t.Context(), "/participants/abc.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/avatars/participants/abc.png", got)
}

func TestBucketResolver_Presigns(t *testing.T) {
	r, err := NewBucketResolver(t.Context(), R2Config{
		AccessKeyID:     "AKIDEXAMPLE",
		SecretAccessKey: "secret",
		BucketName:      "avatars",
		Endpoint:        "https://storage.example.com",
		PresignTTL:      5 * time.Minute,
	})
	require.NoError(t, err)

	got, err := r.AvatarURL(t.Context(), "participants/abc.png")
	require.NoError(t, err)

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "storage.example.com", u.Host)
	assert.Equal(t, "/avatars/participants/abc.png", u.Path)
	assert.Equal(t, "300", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
}

func TestNewBucketResolver_Validation(t *testing.T) {
	_, err := NewBucketResolver(t.Context(), R2Config{})
	assert.Error(t, err)

	_, err = NewBucketResolver(t.Context(), R2Config{BucketName: "avatars"})
	assert.Error(t, err)

	_, err = NewBucketResolver(t.Context(), R2Config{BucketName: "avatars", AccessKeyID: "a", SecretAccessKey: "b"})
	assert.Error(t, err)
}

type failingResolver struct{}

func (failingResolver) AvatarURL(context.Context, string) (string, error) {
	return "", errors.New("boom")
}

func TestResolveAvatarURL(t *testing.T) {
	key := "a.png"
	empty := ""

	assert.Empty(t, ResolveAvatarURL(t.Context(), nil, &key))
	assert.Empty(t, ResolveAvatarURL(t.Context(), failingResolver{}, &key))
	assert.Empty(t, ResolveAvatarURL(t.Context(), failingResolver{}, nil))
	assert.Empty(t, ResolveAvatarURL(t.Context(), failingResolver{}, &empty))
}
