package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicBaseURL   string
}

func (c R2Config) validate() error {
	if c.AccountID == "" || c.AccessKeyID == "" || c.SecretAccessKey == "" || c.BucketName == "" || c.PublicBaseURL == "" {
		return errors.New("invalid R2 configuration: account, keys, bucket and public url are required")
	}
	return nil
}

type r2Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
	logger  zerolog.Logger
}

// NewR2Store talks to Cloudflare R2 through its S3 compatible endpoint.
func NewR2Store(ctx context.Context, cfg R2Config, logger zerolog.Logger) (ObjectStore, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	sdkCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config for r2: %w", err)
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)
	return &r2Store{
		client: s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
		}),
		bucket:  cfg.BucketName,
		baseURL: cfg.PublicBaseURL,
		logger:  logger.With().Str("component", "battle_store").Str("bucket", cfg.BucketName).Logger(),
	}, nil
}

func (s *r2Store) Put(ctx context.Context, key, contentType string, body io.Reader) (*StoredObject, error) {
	out, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to put %s: %w", key, err)
	}

	obj := &StoredObject{Key: key, URL: s.URL(key)}
	if out.ETag != nil {
		obj.ETag = strings.Trim(*out.ETag, `"`)
	}
	s.logger.Debug().Str("key", key).Str("etag", obj.ETag).Msg("battle object stored")
	return obj, nil
}

func (s *r2Store) Delete(ctx context.Context, key string) error {
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	s.logger.Debug().Str("key", key).Msg("battle object deleted")
	return nil
}

func (s *r2Store) URL(key string) string {
	return publicURL(s.baseURL, key, s.logger)
}

func publicURL(base, key string, logger zerolog.Logger) string {
	if base == "" || key == "" {
		return ""
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		logger.Error().Err(err).Str("public_base_url", base).Msg("invalid public base url")
		return ""
	}
	return baseURL.JoinPath(strings.TrimPrefix(key, "/")).String()
}
