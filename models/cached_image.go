package models

import "time"

// CachedImage is the cache index descriptor of a remote image stored by the
// gateway. The binary payload itself lives in the blob store under Key;
// the index row carries only metadata.
type CachedImage struct {
	// Key is the SHA-256 hex digest of the source URL. It identifies both
	// the index row and the blob file.
	Key string

	// SourceURL is the original remote URL the image was fetched from.
	SourceURL string

	// ContentType is the MIME type reported by the upstream server.
	ContentType string

	// Size is the payload length in bytes.
	Size int64

	// FetchedAt is when the upstream fetch completed.
	FetchedAt time.Time

	// ExpiresAt is when the entry stops being served from cache.
	// Always at least MinimumCacheTTL after FetchedAt.
	ExpiresAt time.Time
}

// Expired reports whether the entry must not be served at the given moment.
func (c CachedImage) Expired(now time.Time) bool {
	return !c.ExpiresAt.After(now)
}
