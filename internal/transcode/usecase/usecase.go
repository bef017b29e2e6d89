package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tunewave/audio-stream-encoder/internal/config"
	"github.com/tunewave/audio-stream-encoder/internal/models"
	"github.com/tunewave/audio-stream-encoder/internal/songs"
	"github.com/tunewave/audio-stream-encoder/internal/transcode"
	"github.com/tunewave/audio-stream-encoder/pkg/logger"
	"github.com/tunewave/audio-stream-encoder/pkg/utils"
)

type transcodeUC struct {
	cfg       *config.Config
	redisRepo transcode.RedisRepository
	awsRepo   transcode.AWSRepository
	songsRepo songs.Repository
	logger    logger.Logger
}

func NewTranscodeUseCase(
	cfg *config.Config,
	redisRepo transcode.RedisRepository,
	awsRepo transcode.AWSRepository,
	songsRepo songs.Repository,
	log logger.Logger,
) transcode.UseCase {
	return &transcodeUC{
		cfg:       cfg,
		redisRepo: redisRepo,
		awsRepo:   awsRepo,
		songsRepo: songsRepo,
		logger:    log,
	}
}

func (u *transcodeUC) EnqueueJob(ctx context.Context, input *models.EnqueueInput) error {
	if err := utils.ValidateStruct(ctx, input); err != nil {
		u.logger.Errorf("EnqueueJob - ValidateStruct error: %v", err)
		return fmt.Errorf("invalid input: %v", err)
	}

	songID, err := uuid.Parse(input.SongID)
	if err != nil {
		return fmt.Errorf("invalid song id: %v", err)
	}
	if _, err = u.songsRepo.GetSongByID(ctx, songID); err != nil {
		u.logger.Errorf("EnqueueJob - GetSongByID error: %v", err)
		return err
	}

	if err = u.redisRepo.Enqueue(ctx, transcode.QueueKey, input.SongID); err != nil {
		u.logger.Errorf("EnqueueJob - Enqueue error: %v", err)
		return fmt.Errorf("failed to queue the job: %v", err)
	}
	u.logger.Infof("queued transcode job for song %s", input.SongID)
	return nil
}

func (u *transcodeUC) GetPresignUploadURL(ctx context.Context, input *models.UploadInput) (string, error) {
	if err := utils.ValidateStruct(ctx, input); err != nil {
		u.logger.Errorf("GetPresignUploadURL - ValidateStruct error: %v", err)
		return "", fmt.Errorf("invalid input: %v", err)
	}

	u.logger.Infof("generating presigned URL for song %s, file %s", input.SongID, input.Name)
	url, err := u.awsRepo.GetPresignedURL(ctx, u.cfg.S3.RawBucket, input)
	if err != nil {
		u.logger.Errorf("GetPresignUploadURL - GetPresignedURL error: %v", err)
		return "", fmt.Errorf("failed to generate presigned URL: %v", err)
	}
	return url, nil
}

func (u *transcodeUC) GetMetrics(ctx context.Context) (*models.TranscodeMetrics, error) {
	metrics, err := u.redisRepo.Snapshot(ctx)
	if err != nil {
		u.logger.Errorf("GetMetrics - Snapshot error: %v", err)
		return nil, err
	}
	if metrics.QueueDepth, err = u.redisRepo.Depth(ctx, transcode.QueueKey); err != nil {
		u.logger.Errorf("GetMetrics - queue depth error: %v", err)
		return nil, err
	}
	if metrics.DeadLetterDepth, err = u.redisRepo.Depth(ctx, transcode.DeadLetterKey); err != nil {
		u.logger.Errorf("GetMetrics - dead-letter depth error: %v", err)
		return nil, err
	}
	return metrics, nil
}
