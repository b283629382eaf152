// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avelichko/imagegate/internal/allowlist"
	"github.com/avelichko/imagegate/internal/config"
	"github.com/avelichko/imagegate/internal/logger"
	"github.com/avelichko/imagegate/internal/store"
	"github.com/avelichko/imagegate/internal/utils"
	"github.com/avelichko/imagegate/models"
)

type imageService struct {
	matcher *allowlist.Matcher
	index   store.CacheIndex
	blobs   store.BlobStore
	fetcher RemoteFetcher

	minCacheTTL time.Duration

	logger *logger.Logger
}

// NewImageService assembles the image delivery pipeline: allowlist check,
// cache lookup, upstream fetch and cache fill.
func NewImageService(matcher *allowlist.Matcher, index store.CacheIndex, blobs store.BlobStore, fetcher RemoteFetcher, cfg config.Images, logger *logger.Logger) ImageService {
	return &imageService{
		matcher:     matcher,
		index:       index,
		blobs:       blobs,
		fetcher:     fetcher,
		minCacheTTL: cfg.MinimumCacheTTL,
		logger:      logger,
	}
}

func (s *imageService) Check(ctx context.Context, rawURL string) (allowlist.Verdict, error) {
	return s.matcher.Match(rawURL)
}

func (s *imageService) Fetch(ctx context.Context, rawURL string) (models.CachedImage, []byte, error) {
	verdict, err := s.matcher.Match(rawURL)
	if err != nil {
		return models.CachedImage{}, nil, err
	}
	if !verdict.Allowed {
		return models.CachedImage{}, nil, fmt.Errorf("%w: %s", ErrSourceNotAllowed, rawURL)
	}

	key := utils.CacheKey(rawURL)

	if entry, data, ok := s.lookupCache(ctx, key); ok {
		return entry, data, nil
	}

	data, contentType, maxAge, err := s.fetcher.FetchImage(ctx, rawURL)
	if err != nil {
		return models.CachedImage{}, nil, err
	}

	now := time.Now().UTC()
	entry := models.CachedImage{
		Key:         key,
		SourceURL:   rawURL,
		ContentType: contentType,
		Size:        int64(len(data)),
		FetchedAt:   now,
		ExpiresAt:   now.Add(s.cacheTTL(maxAge)),
	}

	// cache fill failures degrade to pass-through, the image is still served
	if err = s.blobs.Save(ctx, key, data); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("error occured during blob save")
	} else if err = s.index.Put(ctx, entry); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("error occured during cache index write")
		// an unindexed blob is invisible to the sweeper; undo the save
		if removeErr := s.blobs.Remove(ctx, key); removeErr != nil {
			s.logger.Error().Err(removeErr).Str("key", key).Msg("error occured during blob rollback")
		}
	}

	return entry, data, nil
}

// lookupCache returns a servable cache hit: a non-expired index entry whose
// blob is still present. Any miss half falls back to an upstream fetch.
func (s *imageService) lookupCache(ctx context.Context, key string) (models.CachedImage, []byte, bool) {
	entry, err := s.index.Get(ctx, key)
	if errors.Is(err, store.ErrCacheMiss) {
		return models.CachedImage{}, nil, false
	}
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("error occured during cache index read")
		return models.CachedImage{}, nil, false
	}

	if entry.Expired(time.Now().UTC()) {
		return models.CachedImage{}, nil, false
	}

	data, err := s.blobs.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, store.ErrCacheMiss) {
			s.logger.Error().Err(err).Str("key", key).Msg("error occured during blob read")
		}
		return models.CachedImage{}, nil, false
	}

	return entry, data, true
}

// cacheTTL applies the configured floor to the upstream cache lifetime.
func (s *imageService) cacheTTL(maxAge time.Duration) time.Duration {
	if maxAge < s.minCacheTTL {
		return s.minCacheTTL
	}
	return maxAge
}
