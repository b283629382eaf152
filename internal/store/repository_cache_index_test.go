package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelichko/imagegate/internal/logger"
	"github.com/avelichko/imagegate/models"
)

const selectCacheEntrySQL = `SELECT key, source_url, content_type, size_bytes, fetched_at, expires_at FROM cache_index WHERE key = ?`

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func newTestIndex(t *testing.T, db *sql.DB) CacheIndex {
	t.Helper()
	return NewCacheIndexRepository(db, logger.Nop())
}

var cacheEntryColumns = []string{"key", "source_url", "content_type", "size_bytes", "fetched_at", "expires_at"}

func TestCacheIndexRepository_Get(t *testing.T) {
	db, mock := newTestDB(t)
	index := newTestIndex(t, db)

	fetched := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	expires := fetched.Add(time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta(selectCacheEntrySQL)).
		WithArgs("abc123").
		WillReturnRows(sqlmock.NewRows(cacheEntryColumns).
			AddRow("abc123", "https://cdn.example.com/a.png", "image/png", int64(2048), fetched, expires))

	entry, err := index.Get(context.Background(), "abc123")

	require.NoError(t, err)
	assert.Equal(t, "abc123", entry.Key)
	assert.Equal(t, "https://cdn.example.com/a.png", entry.SourceURL)
	assert.Equal(t, "image/png", entry.ContentType)
	assert.Equal(t, int64(2048), entry.Size)
	assert.Equal(t, expires, entry.ExpiresAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheIndexRepository_Get_Miss(t *testing.T) {
	db, mock := newTestDB(t)
	index := newTestIndex(t, db)

	mock.ExpectQuery(regexp.QuoteMeta(selectCacheEntrySQL)).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := index.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheIndexRepository_Get_QueryError(t *testing.T) {
	db, mock := newTestDB(t)
	index := newTestIndex(t, db)

	mock.ExpectQuery(regexp.QuoteMeta(selectCacheEntrySQL)).
		WithArgs("abc123").
		WillReturnError(errors.New("disk I/O error"))

	_, err := index.Get(context.Background(), "abc123")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestCacheIndexRepository_Put(t *testing.T) {
	db, mock := newTestDB(t)
	index := newTestIndex(t, db)

	fetched := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	entry := models.CachedImage{
		Key:         "abc123",
		SourceURL:   "https://cdn.example.com/a.png",
		ContentType: "image/png",
		Size:        2048,
		FetchedAt:   fetched,
		ExpiresAt:   fetched.Add(time.Hour),
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO cache_index`)).
		WithArgs(entry.Key, entry.SourceURL, entry.ContentType, entry.Size, entry.FetchedAt, entry.ExpiresAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := index.Put(context.Background(), entry)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheIndexRepository_ExpiredKeys(t *testing.T) {
	db, mock := newTestDB(t)
	index := newTestIndex(t, db)

	cutoff := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT key FROM cache_index WHERE expires_at <= ?`)).
		WithArgs(cutoff).
		WillReturnRows(sqlmock.NewRows([]string{"key"}).AddRow("one").AddRow("two"))

	keys, err := index.ExpiredKeys(context.Background(), cutoff)

	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, keys)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheIndexRepository_ExpiredKeys_Empty(t *testing.T) {
	db, mock := newTestDB(t)
	index := newTestIndex(t, db)

	cutoff := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT key FROM cache_index WHERE expires_at <= ?`)).
		WithArgs(cutoff).
		WillReturnRows(sqlmock.NewRows([]string{"key"}))

	keys, err := index.ExpiredKeys(context.Background(), cutoff)

	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestCacheIndexRepository_Delete(t *testing.T) {
	db, mock := newTestDB(t)
	index := newTestIndex(t, db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM cache_index WHERE key IN (?,?)`)).
		WithArgs("one", "two").
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := index.Delete(context.Background(), "one", "two")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheIndexRepository_Delete_NoKeys(t *testing.T) {
	db, mock := newTestDB(t)
	index := newTestIndex(t, db)

	// no expectations registered: Delete must not touch the database
	err := index.Delete(context.Background())

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
