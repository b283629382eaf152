package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelichko/imagegate/internal/config"
	"github.com/avelichko/imagegate/internal/logger"
)

func newTestBlobStore(t *testing.T) BlobStore {
	t.Helper()
	blobs, err := NewFileBlobStore(config.Files{CacheDir: t.TempDir()}, logger.Nop())
	require.NoError(t, err)
	return blobs
}

func TestNewFileBlobStore_EmptyDir(t *testing.T) {
	_, err := NewFileBlobStore(config.Files{}, logger.Nop())
	assert.Error(t, err)
}

func TestNewFileBlobStore_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache", "blobs")

	_, err := NewFileBlobStore(config.Files{CacheDir: dir}, logger.Nop())

	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFileBlobStore_SaveLoad(t *testing.T) {
	blobs := newTestBlobStore(t)
	ctx := context.Background()
	payload := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}

	err := blobs.Save(ctx, "abc123", payload)
	require.NoError(t, err)

	got, err := blobs.Load(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestFileBlobStore_SaveOverwrites(t *testing.T) {
	blobs := newTestBlobStore(t)
	ctx := context.Background()

	require.NoError(t, blobs.Save(ctx, "abc123", []byte("old")))
	require.NoError(t, blobs.Save(ctx, "abc123", []byte("new")))

	got, err := blobs.Load(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)
}

func TestFileBlobStore_Load_Miss(t *testing.T) {
	blobs := newTestBlobStore(t)

	_, err := blobs.Load(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestFileBlobStore_Remove(t *testing.T) {
	blobs := newTestBlobStore(t)
	ctx := context.Background()

	require.NoError(t, blobs.Save(ctx, "abc123", []byte("data")))
	require.NoError(t, blobs.Remove(ctx, "abc123"))

	_, err := blobs.Load(ctx, "abc123")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestFileBlobStore_Remove_Absent(t *testing.T) {
	blobs := newTestBlobStore(t)

	err := blobs.Remove(context.Background(), "missing")

	assert.NoError(t, err)
}
