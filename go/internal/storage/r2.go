package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// R2Config configures avatar access on Cloudflare R2 or any S3 compatible store.
type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	// Endpoint overrides the R2 endpoint derived from AccountID.
	Endpoint string
	// PublicBaseURL serves avatars from a public bucket domain instead of presigning.
	PublicBaseURL string
	PresignTTL    time.Duration
}

// BucketResolver resolves avatar keys against an S3 compatible bucket.
type BucketResolver struct {
	presigner     *s3.PresignClient
	bucketName    string
	publicBaseURL *url.URL
	ttl           time.Duration
}

var _ AvatarResolver = (*BucketResolver)(nil)

func NewBucketResolver(ctx context.Context, cfg R2Config) (*BucketResolver, error) {
	if cfg.BucketName == "" {
		return nil, errors.New("invalid avatar storage configuration: bucket name is required")
	}

	r := &BucketResolver{bucketName: cfg.BucketName, ttl: cfg.PresignTTL}
	if r.ttl <= 0 {
		r.ttl = 15 * time.Minute
	}

	if cfg.PublicBaseURL != "" {
		base, err := url.Parse(cfg.PublicBaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid public base url: %w", err)
		}
		if !strings.HasSuffix(base.Path, "/") {
			base.Path += "/"
		}
		r.publicBaseURL = base
		return r, nil
	}

	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, errors.New("invalid avatar storage configuration: credentials are required to presign")
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		if cfg.AccountID == "" {
			return nil, errors.New("invalid avatar storage configuration: account id or endpoint is required")
		}
		endpoint = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)
	}

	sdkCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config for R2: %w", err)
	}

	client := s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})
	r.presigner = s3.NewPresignClient(client)
	return r, nil
}

func (r *BucketResolver) AvatarURL(ctx context.Context, key string) (string, error) {
	key = strings.TrimPrefix(key, "/")
	if key == "" {
		return "", errors.New("empty avatar key")
	}

	if r.publicBaseURL != nil {
		return r.publicBaseURL.JoinPath(key).String(), nil
	}

	req, err := r.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucketName),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(r.ttl))
	if err != nil {
		return "", fmt.Errorf("failed to presign avatar (key: %s): %w", key, err)
	}
	return req.URL, nil
}
