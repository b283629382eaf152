package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// CacheKey computes the cache identifier for a remote image URL.
//
// Behavior:
//   - Hashes the raw URL with SHA-256
//   - Returns the digest hex-encoded
//
// The resulting key is filesystem-safe, so it doubles as both the primary
// key of the cache index and the blob file name.
//
// Parameters:
//
//	rawURL - the remote image URL as requested by the client
//
// Returns:
//
//	string - hex-encoded SHA-256 digest
//
// Example usage:
//
//	key := utils.CacheKey("https://img.example.com/a.png")
func CacheKey(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	return hex.EncodeToString(sum[:])
}
