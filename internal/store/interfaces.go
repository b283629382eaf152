// Package store implements the local image cache: a SQLite index holding
// cache entry metadata and a flat blob directory holding the image payloads.
package store

import (
	"context"
	"time"

	"github.com/avelichko/imagegate/models"
)

// CacheIndex is the metadata side of the image cache. Implementations must
// be safe for concurrent use.
type CacheIndex interface {
	// Get returns the index entry for key, or ErrCacheMiss when absent.
	// Expiry is not evaluated here; callers decide whether a returned
	// entry is still servable.
	Get(ctx context.Context, key string) (models.CachedImage, error)

	// Put inserts or replaces the index entry for entry.Key.
	Put(ctx context.Context, entry models.CachedImage) error

	// ExpiredKeys returns the keys of every entry whose expiry is at or
	// before cutoff.
	ExpiredKeys(ctx context.Context, cutoff time.Time) ([]string, error)

	// Delete removes the entries with the given keys. Unknown keys are
	// ignored.
	Delete(ctx context.Context, keys ...string) error
}

// BlobStore is the payload side of the image cache.
type BlobStore interface {
	// Save persists the payload under key, replacing any previous blob.
	Save(ctx context.Context, key string, data []byte) error

	// Load returns the payload stored under key, or ErrCacheMiss.
	Load(ctx context.Context, key string) ([]byte, error)

	// Remove deletes the blob under key. Removing an absent blob is not
	// an error.
	Remove(ctx context.Context, key string) error
}
