package storage

import (
	"context"
	"io"
)

// Storage defines the interface for blob storage operations.
// Paths are relative keys; the implementation decides the physical layout.
type Storage interface {
	// Save writes content under the given key, replacing any existing blob.
	Save(ctx context.Context, key string, content io.Reader) error

	// Get opens the blob stored under the given key.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the blob stored under the given key.
	// Deleting a missing blob is not an error.
	Delete(ctx context.Context, key string) error
}
