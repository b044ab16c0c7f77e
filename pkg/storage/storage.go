package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrStorageUnavailable means the backend could not even be listed.
	ErrStorageUnavailable = errors.New("storage service unavailable")

	// ErrBucketMissing means the configured bucket does not exist on the backend.
	ErrBucketMissing = errors.New("attachments storage bucket not found")

	// ErrUploadConflict means an object already exists under the target key.
	ErrUploadConflict = errors.New("object already exists at storage path")
)

type BucketInfo struct {
	Name string
}

type ObjectInfo struct {
	Name string
	Size int64
}

// Gateway abstracts the blob storage backend holding uploaded attachment bytes.
// All objects live in a single logical bucket configured at construction.
type Gateway interface {
	ListBuckets(ctx context.Context) ([]BucketInfo, error)
	Upload(ctx context.Context, key string, data []byte, contentType string, overwrite bool) error
	Download(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	// List returns objects under prefix whose name contains search.
	List(ctx context.Context, prefix string, search string) ([]ObjectInfo, error)
	SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}
