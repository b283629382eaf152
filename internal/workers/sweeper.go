// SPDX-License-Identifier: Apache-2.0

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/avelichko/imagegate/internal/config"
	"github.com/avelichko/imagegate/internal/logger"
	"github.com/avelichko/imagegate/internal/store"
)

// aggressiveSweepFeature is the experimental toggle that makes the sweeper
// also evict entries expiring before its next pass.
const aggressiveSweepFeature = "aggressiveSweep"

type cacheSweeper struct {
	storages   *store.Storages
	interval   time.Duration
	aggressive bool

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	logger *logger.Logger
}

// NewCacheSweeper returns a worker that periodically evicts expired cache
// entries, or nil when cfg.SweepInterval disables sweeping.
func NewCacheSweeper(storages *store.Storages, cfg config.Workers, experimental config.Experimental, logger *logger.Logger) Worker {
	if cfg.SweepInterval <= 0 {
		return nil
	}

	return &cacheSweeper{
		storages:   storages,
		interval:   cfg.SweepInterval,
		aggressive: experimental.Enabled(aggressiveSweepFeature),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

func (s *cacheSweeper) Run() {
	s.logger.Info().
		Dur("interval", s.interval).
		Bool("aggressive", s.aggressive).
		Msg("starting cache sweeper")

	go s.loop()
}

func (s *cacheSweeper) loop() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(context.Background())
		case <-s.stop:
			s.logger.Info().Msg("cache sweeper stopped")
			return
		}
	}
}

// Stop signals the sweeper to exit after any pass in flight. It is safe to
// call more than once.
func (s *cacheSweeper) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// sweep removes every cache entry expired at its cutoff: blobs first, then
// index rows. A key whose blob could not be removed stays indexed and is
// retried on the next pass.
func (s *cacheSweeper) sweep(ctx context.Context) {
	cutoff := time.Now().UTC()
	if s.aggressive {
		// evict entries that would expire before the next pass anyway
		cutoff = cutoff.Add(s.interval)
	}

	keys, err := s.storages.CacheIndex.ExpiredKeys(ctx, cutoff)
	if err != nil {
		s.logger.Err(err).Str("func", "*cacheSweeper.sweep").Msg("error occured during expired keys lookup")
		return
	}
	if len(keys) == 0 {
		return
	}

	removed := make([]string, 0, len(keys))
	for _, key := range keys {
		if err = s.storages.Blobs.Remove(ctx, key); err != nil {
			s.logger.Err(err).Str("key", key).Msg("error occured during blob eviction")
			continue
		}
		removed = append(removed, key)
	}

	if err = s.storages.CacheIndex.Delete(ctx, removed...); err != nil {
		s.logger.Err(err).Str("func", "*cacheSweeper.sweep").Msg("error occured during cache index eviction")
		return
	}

	s.logger.Info().Int("evicted", len(removed)).Msg("cache sweep finished")
}
