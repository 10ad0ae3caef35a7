package storage

import (
	"context"
	"time"
)

// Package storage holds the external blob store abstraction. The metadata
// service never touches object bytes; it only issues time-limited signed URLs
// that clients use to upload or download directly.

// BlobStore issues signed URLs bound to a single object key.
// Implementations must be safe for concurrent use.
type BlobStore interface {
	// PresignPut returns a URL authorizing one PUT of key with the given content type until expiry.
	PresignPut(ctx context.Context, key, contentType string, expiry time.Duration) (string, error)
	// PresignGet returns a URL authorizing downloads of key until expiry.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
