package songs

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/tunewave/audio-stream-encoder/internal/models"
)

// ErrSongNotFound marks a permanent skip: the job referenced a deleted or
// invalid song, so there is nothing to retry against.
var ErrSongNotFound = errors.New("song not found")

// Repository is the narrow catalog contract the pipeline is allowed to use.
type Repository interface {
	GetSongByID(ctx context.Context, songID uuid.UUID) (*models.Song, error)
	UpdateStatus(ctx context.Context, songID uuid.UUID, status models.SongStatus) error
	SetStreamURL(ctx context.Context, songID uuid.UUID, streamURL string, status models.SongStatus) error
	AddPlays(ctx context.Context, songID uuid.UUID, plays int64) error
}
