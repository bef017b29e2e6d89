package transcode

import (
	"context"

	"github.com/tunewave/audio-stream-encoder/internal/models"
)

// AWSRepository moves assets between object storage and the local working
// directories of a job attempt.
type AWSRepository interface {
	// Download fetches bucket/key into localDir and returns the local path.
	Download(ctx context.Context, bucket, key, localDir string) (string, error)
	// UploadDirectory walks every file under localDir, uploads it beneath
	// prefix with a suffix-inferred content type, and returns the public URL
	// of the manifest (.m3u8) file. An empty URL after a non-empty upload
	// means no manifest was produced and is a failure for the caller.
	UploadDirectory(ctx context.Context, bucket, localDir, prefix string) (string, error)
	GetPresignedURL(ctx context.Context, bucket string, input *models.UploadInput) (string, error)
}
