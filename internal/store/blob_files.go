// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/avelichko/imagegate/internal/config"
	"github.com/avelichko/imagegate/internal/logger"
)

type fileBlobStore struct {
	dir    string
	logger *logger.Logger
}

// NewFileBlobStore returns a [BlobStore] that keeps one file per cache key
// under cfg.CacheDir. The directory is created if it does not exist.
func NewFileBlobStore(cfg config.Files, logger *logger.Logger) (BlobStore, error) {
	if cfg.CacheDir == "" {
		return nil, fmt.Errorf("blob store: cache directory is not set")
	}

	if err := os.MkdirAll(cfg.CacheDir, 0o700); err != nil {
		return nil, fmt.Errorf("error creating cache directory: %w", err)
	}

	return &fileBlobStore{dir: cfg.CacheDir, logger: logger}, nil
}

// path maps a cache key to its blob file. Keys are hex digests, so they are
// always safe as file names.
func (s *fileBlobStore) path(key string) string {
	return filepath.Join(s.dir, key)
}

func (s *fileBlobStore) Save(_ context.Context, key string, data []byte) error {
	if err := os.WriteFile(s.path(key), data, 0o600); err != nil {
		return fmt.Errorf("error writing blob %s: %w", key, err)
	}
	return nil
}

func (s *fileBlobStore) Load(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("error reading blob %s: %w", key, err)
	}
	return data, nil
}

func (s *fileBlobStore) Remove(_ context.Context, key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("error removing blob %s: %w", key, err)
	}
	return nil
}
