// Package storage stores images in S3 compatible object storage.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	"laundry_desk/internal/infrastructure/config"
	"laundry_desk/internal/usecase/interfaces"
)

var _ interfaces.IBlobStorage = (*S3BlobStorage)(nil)

// s3API is the subset of *s3.Client used here.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
}

// S3BlobStorage works against AWS S3 or any compatible server (MinIO, RustFS).
type S3BlobStorage struct {
	client    s3API
	bucket    string
	publicURL string
	logger    *zap.Logger
}

// S3BlobStorageOption is a functional option for configuring S3BlobStorage
type S3BlobStorageOption func(*S3BlobStorage)

// WithLogger sets a custom logger for S3BlobStorage
func WithLogger(logger *zap.Logger) S3BlobStorageOption {
	return func(s *S3BlobStorage) {
		s.logger = logger
	}
}

// WithClient replaces the S3 client.
func WithClient(client s3API) S3BlobStorageOption {
	return func(s *S3BlobStorage) {
		s.client = client
	}
}

// NewS3BlobStorage creates the storage from the shared AWS config.
//
// References returned by Upload are "<public_url>/<key>". Without a public
// URL they are built from the endpoint (path style) or the virtual-hosted
// AWS address.
func NewS3BlobStorage(awsCfg aws.Config, cfg config.StorageConfig, opts ...S3BlobStorageOption) (*S3BlobStorage, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}

	endpoint := cfg.Endpoint
	if endpoint != "" && !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "http://" + endpoint
	}
	if endpoint != "" {
		if _, err := url.Parse(endpoint); err != nil {
			return nil, fmt.Errorf("invalid storage endpoint: %w", err)
		}
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	s := &S3BlobStorage{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: publicBase(cfg, endpoint, awsCfg.Region),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func publicBase(cfg config.StorageConfig, endpoint, region string) string {
	switch {
	case cfg.PublicURL != "":
		return strings.TrimRight(cfg.PublicURL, "/")
	case endpoint != "":
		return strings.TrimRight(endpoint, "/") + "/" + cfg.Bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, region)
	}
}

// EnsureBucket creates the bucket if it doesn't exist.
func (s *S3BlobStorage) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	s.logger.Info("Creating storage bucket", zap.String("bucket", s.bucket))
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Upload stores body under key and returns its public URL.
func (s *S3BlobStorage) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}

	in := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if size > 0 {
		in.ContentLength = aws.Int64(size)
	}
	if _, err := s.client.PutObject(ctx, in); err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	s.logger.Debug("object uploaded", zap.String("key", key), zap.Int64("size", size))
	return s.URL(key), nil
}

// Delete removes key. S3 reports success for missing keys.
func (s *S3BlobStorage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// URL returns the public reference for key.
func (s *S3BlobStorage) URL(key string) string {
	return s.publicURL + "/" + strings.TrimLeft(key, "/")
}
