package playsync

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tunewave/audio-stream-encoder/internal/config"
	"github.com/tunewave/audio-stream-encoder/internal/models"
	"github.com/tunewave/audio-stream-encoder/internal/songs"
	"github.com/tunewave/audio-stream-encoder/internal/transcode"
	"github.com/tunewave/audio-stream-encoder/pkg/logger"
)

// Worker is the write-behind aggregator for pending play counters. External
// collaborators bump view:<songID> on every play; on each interval one
// instance across the fleet (guarded by its own lock) folds those counters
// into the catalog and clears them.
type Worker struct {
	cfg       *config.Config
	logger    logger.Logger
	redisRepo transcode.RedisRepository
	songsRepo songs.Repository
	wg        sync.WaitGroup
}

func NewWorker(cfg *config.Config, logger logger.Logger, redisRepo transcode.RedisRepository, songsRepo songs.Repository) *Worker {
	return &Worker{
		cfg:       cfg,
		logger:    logger,
		redisRepo: redisRepo,
		songsRepo: songsRepo,
	}
}

func (w *Worker) Start(ctx context.Context) {
	interval := w.cfg.PlaySync.Interval
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	w.logger.Infof("starting play-count sync, interval %s", interval)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := w.runOnce(ctx); err != nil {
					w.logger.Errorf("play-count sync failed: %v", err)
				}
			}
		}
	}()
}

func (w *Worker) Wait() {
	w.wg.Wait()
}

// ForceSyncNow runs the same routine synchronously, for operator-triggered
// reconciliation.
func (w *Worker) ForceSyncNow(ctx context.Context) (*models.PlaySyncResult, error) {
	return w.runOnce(ctx)
}

func (w *Worker) runOnce(ctx context.Context) (result *models.PlaySyncResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in play-count sync: %v", r)
		}
	}()

	locked, err := w.redisRepo.TryLock(ctx, transcode.PlaySyncLockKey, w.cfg.PlaySync.LockTTL)
	if err != nil {
		return nil, err
	}
	if !locked {
		// Another instance owns this interval.
		w.logger.Debugf("play-count sync lock held elsewhere, skipping")
		return &models.PlaySyncResult{}, nil
	}
	defer func() {
		if unlockErr := w.redisRepo.Unlock(ctx, transcode.PlaySyncLockKey); unlockErr != nil {
			w.logger.Errorf("failed to release play-count sync lock: %v", unlockErr)
		}
	}()

	start := time.Now()

	keys, err := w.redisRepo.Scan(ctx, transcode.ViewKeyPattern)
	if err != nil {
		return nil, err
	}

	pending := make(map[string]int64, len(keys))
	for _, key := range keys {
		songID, ok := transcode.SongIDFromViewKey(key)
		if !ok {
			continue
		}
		count, err := w.redisRepo.GetInt(ctx, key)
		if err != nil {
			w.logger.Warnf("failed to read view counter %s: %v", key, err)
			continue
		}
		if count > 0 {
			pending[songID] = count
		}
	}

	result = &models.PlaySyncResult{}
	for songID, count := range pending {
		id, parseErr := uuid.Parse(songID)
		if parseErr != nil {
			// Malformed keys are dropped so they cannot poison every
			// future batch.
			w.logger.Warnf("dropping malformed view counter key for %q", songID)
			if err := w.redisRepo.Del(ctx, transcode.ViewKey(songID)); err != nil {
				w.logger.Warnf("failed to drop view counter for %q: %v", songID, err)
			}
			continue
		}
		if err := w.applyOne(ctx, id, songID, count); err != nil {
			// One bad entry must not abort the batch; the counter stays
			// put for the next interval.
			w.logger.Warnf("failed to sync plays for song %s: %v", songID, err)
			continue
		}
		result.SongsApplied++
		result.PlaysApplied += count
	}

	if result.SongsApplied > 0 {
		if err := w.redisRepo.Del(ctx, transcode.TrendingCacheKey); err != nil {
			w.logger.Warnf("failed to invalidate trending cache: %v", err)
		}
	}

	result.ElapsedMs = time.Since(start).Milliseconds()
	w.logger.Infof("play-count sync applied %d plays across %d songs in %dms",
		result.PlaysApplied, result.SongsApplied, result.ElapsedMs)
	return result, nil
}

// applyOne adds the aggregated count to the catalog, then deletes the view
// counter so the same plays are never applied twice. Plays arriving in the
// read-then-clear window are lost for this cycle; the platform tolerates
// that imprecision.
func (w *Worker) applyOne(ctx context.Context, id uuid.UUID, songID string, count int64) error {
	if err := w.songsRepo.AddPlays(ctx, id, count); err != nil {
		return err
	}
	return w.redisRepo.Del(ctx, transcode.ViewKey(songID))
}
