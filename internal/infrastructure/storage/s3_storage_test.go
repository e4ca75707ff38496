package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laundry_desk/internal/infrastructure/config"
)

type fakeS3 struct {
	put        *s3.PutObjectInput
	body       string
	deleted    []string
	putErr     error
	headErr    error
	createErr  error
	createdFor string
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	f.put = in
	b, _ := io.ReadAll(in.Body)
	f.body = string(b)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deleted = append(f.deleted, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) HeadBucket(context.Context, *s3.HeadBucketInput, ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	if f.headErr != nil {
		return nil, f.headErr
	}
	return &s3.HeadBucketOutput{}, nil
}

func (f *fakeS3) CreateBucket(_ context.Context, in *s3.CreateBucketInput, _ ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.createdFor = aws.ToString(in.Bucket)
	return &s3.CreateBucketOutput{}, nil
}

func newTestStorage(t *testing.T, cfg config.StorageConfig, f *fakeS3) *S3BlobStorage {
	t.Helper()
	s, err := NewS3BlobStorage(aws.Config{Region: "eu-west-3"}, cfg, WithClient(f))
	require.NoError(t, err)
	return s
}

func TestNewS3BlobStorage_RequiresBucket(t *testing.T) {
	_, err := NewS3BlobStorage(aws.Config{}, config.StorageConfig{})
	assert.Error(t, err)
}

func TestPublicURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.StorageConfig
		want string
	}{
		{"explicit public url", config.StorageConfig{Bucket: "img", PublicURL: "https://cdn.example/"}, "https://cdn.example/services/a.png"},
		{"endpoint without scheme", config.StorageConfig{Bucket: "img", Endpoint: "minio:9000"}, "http://minio:9000/img/services/a.png"},
		{"aws virtual host", config.StorageConfig{Bucket: "img"}, "https://img.s3.eu-west-3.amazonaws.com/services/a.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStorage(t, tt.cfg, &fakeS3{})
			assert.Equal(t, tt.want, s.URL("services/a.png"))
		})
	}
}

func TestUpload(t *testing.T) {
	f := &fakeS3{}
	s := newTestStorage(t, config.StorageConfig{Bucket: "img", PublicURL: "https://cdn.example"}, f)

	ref, err := s.Upload(context.Background(), "uploads/x.jpg", "image/jpeg", strings.NewReader("jpeg"), 4)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/uploads/x.jpg", ref)
	assert.Equal(t, "img", aws.ToString(f.put.Bucket))
	assert.Equal(t, "image/jpeg", aws.ToString(f.put.ContentType))
	assert.Equal(t, int64(4), aws.ToInt64(f.put.ContentLength))
	assert.Equal(t, "jpeg", f.body)

	_, err = s.Upload(context.Background(), "", "image/jpeg", strings.NewReader("x"), 1)
	assert.Error(t, err)
}

func TestUpload_Error(t *testing.T) {
	cause := errors.New("throttled")
	s := newTestStorage(t, config.StorageConfig{Bucket: "img"}, &fakeS3{putErr: cause})

	_, err := s.Upload(context.Background(), "k", "image/png", strings.NewReader("x"), 1)
	assert.ErrorIs(t, err, cause)
}

func TestDelete(t *testing.T) {
	f := &fakeS3{}
	s := newTestStorage(t, config.StorageConfig{Bucket: "img"}, f)

	require.NoError(t, s.Delete(context.Background(), "services/a.png"))
	assert.Equal(t, []string{"services/a.png"}, f.deleted)
}

func TestEnsureBucket(t *testing.T) {
	t.Run("exists", func(t *testing.T) {
		f := &fakeS3{}
		require.NoError(t, newTestStorage(t, config.StorageConfig{Bucket: "img"}, f).EnsureBucket(context.Background()))
		assert.Empty(t, f.createdFor)
	})

	t.Run("creates missing bucket", func(t *testing.T) {
		f := &fakeS3{headErr: &types.NotFound{}}
		require.NoError(t, newTestStorage(t, config.StorageConfig{Bucket: "img"}, f).EnsureBucket(context.Background()))
		assert.Equal(t, "img", f.createdFor)
	})

	t.Run("already owned is fine", func(t *testing.T) {
		f := &fakeS3{headErr: &types.NoSuchBucket{}, createErr: &types.BucketAlreadyOwnedByYou{}}
		assert.NoError(t, newTestStorage(t, config.StorageConfig{Bucket: "img"}, f).EnsureBucket(context.Background()))
	})

	t.Run("other head error", func(t *testing.T) {
		f := &fakeS3{headErr: errors.New("forbidden")}
		assert.Error(t, newTestStorage(t, config.StorageConfig{Bucket: "img"}, f).EnsureBucket(context.Background()))
	})
}
