package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/instantfun/soundboard/internal/config"
)

// S3Store talks to an S3-compatible object store with static credentials.
type S3Store struct {
	client   *s3.Client
	presign  *s3.PresignClient
	bucket   string
	tokenTTL time.Duration
}

// NewS3Store creates a new store from storage configuration.
func NewS3Store(cfg config.StorageConfig) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	ttl := cfg.UploadTokenTTL
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &S3Store{
		client:   client,
		presign:  s3.NewPresignClient(client),
		bucket:   cfg.Bucket,
		tokenTTL: ttl,
	}, nil
}

// objectKey generates a fresh storage key for an upload.
// Layout: sounds/{year}/{month}/{uuid}
func objectKey() string {
	now := time.Now()
	return fmt.Sprintf("sounds/%d/%02d/%s", now.Year(), now.Month(), uuid.New())
}

// MintUploadToken returns a presigned PUT URL scoped to the configured
// bucket. The holder can push bytes directly to storage until it expires.
func (s *S3Store) MintUploadToken(ctx context.Context) (*UploadCredential, error) {
	key := objectKey()

	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.tokenTTL))
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	return &UploadCredential{
		Token:     req.URL,
		Key:       key,
		ExpiresAt: time.Now().Add(s.tokenTTL),
	}, nil
}

// DeleteObject deletes an object from the bucket by key.
func (s *S3Store) DeleteObject(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from storage: %w", err)
	}
	return nil
}
