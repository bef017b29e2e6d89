package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/tunewave/audio-stream-encoder/internal/models"
	"github.com/tunewave/audio-stream-encoder/internal/songs"
)

type songsRepo struct {
	db *sqlx.DB
}

func NewSongsRepo(db *sqlx.DB) songs.Repository {
	return &songsRepo{
		db: db,
	}
}

func (s *songsRepo) GetSongByID(ctx context.Context, songID uuid.UUID) (*models.Song, error) {
	song := &models.Song{}
	if err := s.db.QueryRowxContext(
		ctx,
		getSongByIDQuery,
		songID,
	).StructScan(song); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, songs.ErrSongNotFound
		}
		return nil, errors.Wrap(err, "songsRepo.GetSongByID")
	}
	return song, nil
}

func (s *songsRepo) UpdateStatus(ctx context.Context, songID uuid.UUID, status models.SongStatus) error {
	res, err := s.db.ExecContext(ctx, updateStatusQuery, songID, status)
	if err != nil {
		return errors.Wrap(err, "songsRepo.UpdateStatus")
	}
	count, _ := res.RowsAffected()
	if count == 0 {
		return songs.ErrSongNotFound
	}
	return nil
}

func (s *songsRepo) SetStreamURL(ctx context.Context, songID uuid.UUID, streamURL string, status models.SongStatus) error {
	res, err := s.db.ExecContext(ctx, setStreamURLQuery, songID, streamURL, status)
	if err != nil {
		return errors.Wrap(err, "songsRepo.SetStreamURL")
	}
	count, _ := res.RowsAffected()
	if count == 0 {
		return songs.ErrSongNotFound
	}
	return nil
}

func (s *songsRepo) AddPlays(ctx context.Context, songID uuid.UUID, plays int64) error {
	res, err := s.db.ExecContext(ctx, addPlaysQuery, songID, plays)
	if err != nil {
		return errors.Wrap(err, "songsRepo.AddPlays")
	}
	count, _ := res.RowsAffected()
	if count == 0 {
		return songs.ErrSongNotFound
	}
	return nil
}
