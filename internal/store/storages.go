// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"

	"github.com/avelichko/imagegate/internal/config"
	"github.com/avelichko/imagegate/internal/logger"
)

// Storages bundles both halves of the image cache so consumers can take a
// single dependency.
type Storages struct {
	CacheIndex CacheIndex
	Blobs      BlobStore

	db *sql.DB
}

// NewStorages opens the SQLite cache index, prepares the blob directory and
// returns the assembled cache storage. Call [Storages.Close] on shutdown.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectSQLite(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	blobs, err := NewFileBlobStore(cfg.Files, log)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Storages{
		CacheIndex: NewCacheIndexRepository(db, log),
		Blobs:      blobs,
		db:         db,
	}, nil
}

// Close releases the underlying database connection.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
