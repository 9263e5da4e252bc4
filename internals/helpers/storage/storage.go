package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

var ErrNotConfigured = errors.New("object storage is not configured")

type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// ObjectStorage is the bucket surface used by uploads, students and the receipt reaper.
type ObjectStorage interface {
	PutObject(ctx context.Context, key string, r io.Reader, contentType string) error
	// SignPutURL lets a client upload directly; contentType must match the PUT header.
	SignPutURL(key, contentType string, expires time.Duration) (string, error)
	SignGetURL(key string, expires time.Duration) (string, error)
	PublicURL(key string) string
	KeyFromURL(publicURL string) (string, error)
	ListObjects(ctx context.Context, prefix string, visit func(ObjectInfo) error) error
	DeleteObjects(ctx context.Context, keys []string) error
}
