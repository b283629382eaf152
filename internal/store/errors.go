package store

import "errors"

var (
	// ErrCacheMiss is returned when neither the index nor the blob store
	// holds the requested key.
	ErrCacheMiss = errors.New("cache entry not found")
)
