package interfaces

import (
	"context"
	"io"
)

// IBlobStorage stores opaque images (service pictures, line-item photos).
//
// Upload returns the public reference to store on records. Delete of a
// missing key is not an error.
type IBlobStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
	Delete(ctx context.Context, key string) error
}

// IIdentityCache is a read-through cache in front of IAdminRepository.
type IIdentityCache interface {
	Get(ctx context.Context, key string) (name string, found bool, err error)
	Set(ctx context.Context, key, name string) error
}
