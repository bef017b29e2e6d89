package worker

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/tunewave/audio-stream-encoder/internal/config"
	"github.com/tunewave/audio-stream-encoder/internal/models"
	"github.com/tunewave/audio-stream-encoder/internal/songs"
	"github.com/tunewave/audio-stream-encoder/internal/transcode"
	"github.com/tunewave/audio-stream-encoder/pkg/logger"
)

// Transcoder converts one downloaded input file into an HLS rendition under
// outputDir, within its own wall-clock ceiling.
type Transcoder interface {
	TranscodeToHLS(ctx context.Context, inputPath, outputDir string) error
}

// Processor runs the per-job state machine: lock, look up, download,
// transcode, upload, commit, with the retry and dead-letter policy on
// failure. Lock release and temp directory removal happen on every exit
// path, panics included.
type Processor struct {
	cfg        *config.Config
	logger     logger.Logger
	redisRepo  transcode.RedisRepository
	awsRepo    transcode.AWSRepository
	songsRepo  songs.Repository
	transcoder Transcoder
}

func NewProcessor(
	cfg *config.Config,
	logger logger.Logger,
	redisRepo transcode.RedisRepository,
	awsRepo transcode.AWSRepository,
	songsRepo songs.Repository,
	transcoder Transcoder,
) *Processor {
	return &Processor{
		cfg:        cfg,
		logger:     logger,
		redisRepo:  redisRepo,
		awsRepo:    awsRepo,
		songsRepo:  songsRepo,
		transcoder: transcoder,
	}
}

// ProcessJob handles one dequeued subject id. If the lock is already held the
// cycle is abandoned silently: another worker, or a crashed one whose lock
// has not yet expired, owns this subject.
func (p *Processor) ProcessJob(ctx context.Context, songID string) {
	lockKey := transcode.LockKey(songID)
	locked, err := p.redisRepo.TryLock(ctx, lockKey, p.cfg.Worker.LockTTL)
	if err != nil {
		p.logger.Errorf("failed to acquire lock for song %s: %v", songID, err)
		return
	}
	if !locked {
		return
	}
	defer func() {
		if err := p.redisRepo.Unlock(ctx, lockKey); err != nil {
			p.logger.Errorf("failed to release lock for song %s: %v", songID, err)
		}
	}()

	start := time.Now()
	err = p.runAttempt(ctx, songID)
	switch {
	case err == nil:
		if err := p.redisRepo.Del(ctx, transcode.RetryKey(songID)); err != nil {
			p.logger.Errorf("failed to clear retry counter for song %s: %v", songID, err)
		}
		p.recordSuccess(ctx, time.Since(start))
		p.logger.Infof("song %s transcoded in %s", songID, time.Since(start))
	case errors.Is(err, songs.ErrSongNotFound):
		// Permanent skip: nothing to retry against.
		p.logger.Warnf("abandoning job for song %s: %v", songID, err)
	default:
		p.logger.Errorf("processing song %s failed: %v", songID, err)
		p.handleFailure(ctx, songID)
	}
}

// runAttempt is the fallible middle of the state machine. Panics are caught
// here and surface as ordinary failures so one bad job cannot escape past
// the retry policy.
func (p *Processor) runAttempt(ctx context.Context, songID string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while processing song %s: %v", songID, r)
		}
	}()

	id, parseErr := uuid.Parse(songID)
	if parseErr != nil {
		return errors.Wrapf(songs.ErrSongNotFound, "malformed song id %q", songID)
	}

	song, err := p.songsRepo.GetSongByID(ctx, id)
	if err != nil {
		return err
	}

	if err = p.songsRepo.UpdateStatus(ctx, id, models.SongStatusProcessing); err != nil {
		return err
	}

	inputDir, err := os.MkdirTemp("", "transcode_in_")
	if err != nil {
		return errors.Wrap(err, "failed to create input dir")
	}
	defer os.RemoveAll(inputDir)

	outputDir, err := os.MkdirTemp("", "transcode_out_")
	if err != nil {
		return errors.Wrap(err, "failed to create output dir")
	}
	defer os.RemoveAll(outputDir)

	localPath, err := p.awsRepo.Download(ctx, p.cfg.S3.RawBucket, song.RawS3Key, inputDir)
	if err != nil {
		return err
	}

	if err = p.transcoder.TranscodeToHLS(ctx, localPath, outputDir); err != nil {
		return err
	}

	manifestURL, err := p.awsRepo.UploadDirectory(ctx, p.cfg.S3.StreamBucket, outputDir, "hls/"+songID)
	if err != nil {
		return err
	}
	if manifestURL == "" {
		return errors.New("upload produced no manifest URL")
	}

	if err = p.songsRepo.SetStreamURL(ctx, id, manifestURL, models.SongStatusAwaitingReview); err != nil {
		return err
	}
	return nil
}

// handleFailure applies the retry and dead-letter policy: increment the
// retry counter, re-enqueue at the tail while attempts remain, otherwise
// dead-letter the subject and mark the catalog record failed.
func (p *Processor) handleFailure(ctx context.Context, songID string) {
	p.recordFailure(ctx)

	count, err := p.redisRepo.Incr(ctx, transcode.RetryKey(songID))
	if err != nil {
		p.logger.Errorf("failed to bump retry counter for song %s: %v", songID, err)
		return
	}

	if count <= int64(p.cfg.Worker.MaxRetries) {
		if err := p.redisRepo.Enqueue(ctx, transcode.QueueKey, songID); err != nil {
			p.logger.Errorf("failed to re-enqueue song %s: %v", songID, err)
			return
		}
		p.logger.Warnf("song %s re-enqueued, attempt %d of %d", songID, count, p.cfg.Worker.MaxRetries)
		return
	}

	if err := p.redisRepo.Enqueue(ctx, transcode.DeadLetterKey, songID); err != nil {
		p.logger.Errorf("failed to dead-letter song %s: %v", songID, err)
		return
	}
	if err := p.redisRepo.Del(ctx, transcode.RetryKey(songID)); err != nil {
		p.logger.Errorf("failed to clear retry counter for song %s: %v", songID, err)
	}
	if id, parseErr := uuid.Parse(songID); parseErr == nil {
		if err := p.songsRepo.UpdateStatus(ctx, id, models.SongStatusFailed); err != nil {
			p.logger.Errorf("failed to mark song %s failed: %v", songID, err)
		}
	}
	p.logger.Errorf("song %s exhausted %d retries, moved to dead-letter queue", songID, p.cfg.Worker.MaxRetries)
}

// Metrics are best-effort: a down metrics store must never change a job's
// outcome.
func (p *Processor) recordSuccess(ctx context.Context, duration time.Duration) {
	if err := p.redisRepo.RecordSuccess(ctx, duration); err != nil {
		p.logger.Warnf("failed to record success metric: %v", err)
	}
}

func (p *Processor) recordFailure(ctx context.Context) {
	if err := p.redisRepo.RecordFailure(ctx); err != nil {
		p.logger.Warnf("failed to record failure metric: %v", err)
	}
}
