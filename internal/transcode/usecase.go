package transcode

import (
	"context"

	"github.com/tunewave/audio-stream-encoder/internal/models"
)

type UseCase interface {
	EnqueueJob(ctx context.Context, input *models.EnqueueInput) error
	GetPresignUploadURL(ctx context.Context, input *models.UploadInput) (string, error)
	GetMetrics(ctx context.Context) (*models.TranscodeMetrics, error)
}
