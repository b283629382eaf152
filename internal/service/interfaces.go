package service

import (
	"context"
	"time"

	"github.com/avelichko/imagegate/internal/allowlist"
	"github.com/avelichko/imagegate/models"
)

type ImageService interface {
	// Fetch returns the image at rawURL, serving from the local cache when a
	// fresh entry exists and going upstream otherwise. Sources that do not
	// match the allowlist are rejected with ErrSourceNotAllowed.
	Fetch(ctx context.Context, rawURL string) (models.CachedImage, []byte, error)

	// Check evaluates rawURL against the allowlist without fetching it.
	Check(ctx context.Context, rawURL string) (allowlist.Verdict, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// RemoteFetcher retrieves image payloads from origin servers. maxAge is the
// upstream cache lifetime (zero when the origin did not send one).
type RemoteFetcher interface {
	FetchImage(ctx context.Context, url string) (data []byte, contentType string, maxAge time.Duration, err error)
}
