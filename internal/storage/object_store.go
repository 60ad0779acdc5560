package storage

import "context"

// ObjectStore is the capability the ingestion pipeline and cleanup executor
// need from a binary blob store. Keys are store-relative and opaque to
// callers once written.
type ObjectStore interface {
	// EnsureBucket creates the configured bucket if it does not exist.
	// Safe to call repeatedly.
	EnsureBucket(ctx context.Context) error

	// Put stores data under key with the given content type. It fails if
	// an object already exists under key rather than silently replacing it.
	Put(ctx context.Context, key string, data []byte, contentType string) error

	// Delete removes the object under key.
	Delete(ctx context.Context, key string) error
}
