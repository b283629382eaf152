// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/avelichko/imagegate/internal/logger"
	"github.com/avelichko/imagegate/models"
)

type cacheIndexRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
	logger  *logger.Logger
}

// NewCacheIndexRepository returns a [CacheIndex] backed by the given SQLite
// database. The schema is expected to be migrated already (see
// [NewConnectSQLite]).
func NewCacheIndexRepository(db *sql.DB, logger *logger.Logger) CacheIndex {
	return &cacheIndexRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
		logger:  logger,
	}
}

func (r *cacheIndexRepository) Get(ctx context.Context, key string) (models.CachedImage, error) {
	query, args, err := r.builder.
		Select("key", "source_url", "content_type", "size_bytes", "fetched_at", "expires_at").
		From("cache_index").
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return models.CachedImage{}, fmt.Errorf("error building cache index select: %w", err)
	}

	var entry models.CachedImage
	row := r.db.QueryRowContext(ctx, query, args...)
	err = row.Scan(&entry.Key, &entry.SourceURL, &entry.ContentType, &entry.Size, &entry.FetchedAt, &entry.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.CachedImage{}, ErrCacheMiss
	}
	if err != nil {
		return models.CachedImage{}, fmt.Errorf("error reading cache index entry: %w", err)
	}

	return entry, nil
}

func (r *cacheIndexRepository) Put(ctx context.Context, entry models.CachedImage) error {
	query, args, err := r.builder.
		Insert("cache_index").
		Columns("key", "source_url", "content_type", "size_bytes", "fetched_at", "expires_at").
		Values(entry.Key, entry.SourceURL, entry.ContentType, entry.Size, entry.FetchedAt, entry.ExpiresAt).
		Suffix(`ON CONFLICT(key) DO UPDATE SET
			source_url = excluded.source_url,
			content_type = excluded.content_type,
			size_bytes = excluded.size_bytes,
			fetched_at = excluded.fetched_at,
			expires_at = excluded.expires_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building cache index upsert: %w", err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("error writing cache index entry: %w", err)
	}

	return nil
}

func (r *cacheIndexRepository) ExpiredKeys(ctx context.Context, cutoff time.Time) ([]string, error) {
	query, args, err := r.builder.
		Select("key").
		From("cache_index").
		Where(sq.LtOrEq{"expires_at": cutoff}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building expired keys select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying expired keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err = rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("error scanning expired key: %w", err)
		}
		keys = append(keys, key)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expired keys: %w", err)
	}

	return keys, nil
}

func (r *cacheIndexRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	query, args, err := r.builder.
		Delete("cache_index").
		Where(sq.Eq{"key": keys}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building cache index delete: %w", err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("error deleting cache index entries: %w", err)
	}

	return nil
}
