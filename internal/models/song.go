package models

import (
	"time"

	"github.com/google/uuid"
)

type SongStatus string

const (
	SongStatusPending        SongStatus = "pending"
	SongStatusProcessing     SongStatus = "processing"
	SongStatusAwaitingReview SongStatus = "awaiting_review"
	SongStatusPublished      SongStatus = "published"
	SongStatusFailed         SongStatus = "failed"
)

// Song is the catalog record the pipeline reads and writes. Only the fields
// the worker touches live here; the rest of the catalog schema belongs to
// the CRUD side of the platform.
type Song struct {
	SongID     uuid.UUID  `json:"song_id" db:"song_id" validate:"omitempty"`
	Title      string     `json:"title" db:"title" validate:"required,lte=255"`
	RawS3Key   string     `json:"raw_s3_key" db:"raw_s3_key" validate:"required,lte=512"`
	StreamURL  string     `json:"stream_url" db:"stream_url" validate:"omitempty,lte=1024"`
	DurationMs int64      `json:"duration_ms" db:"duration_ms" validate:"omitempty"`
	PlayCount  int64      `json:"play_count" db:"play_count" validate:"omitempty"`
	Status     SongStatus `json:"status" db:"status" validate:"omitempty"`
	UploadedAt time.Time  `json:"uploaded_at" db:"uploaded_at" validate:"omitempty"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at" validate:"omitempty"`
}

type EnqueueInput struct {
	SongID string `json:"song_id" validate:"required,uuid4"`
}

type UploadInput struct {
	Name     string `json:"name" validate:"required,lte=255"`
	MimeType string `json:"mime_type" validate:"required,lte=100"`
	Size     int64  `json:"size" validate:"required,gt=0"`
	SongID   string `json:"song_id" validate:"required,uuid4"`
}
