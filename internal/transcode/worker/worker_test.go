package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tunewave/audio-stream-encoder/internal/models"
	"github.com/tunewave/audio-stream-encoder/internal/transcode"
)

func TestTickProcessesQueuedJob(t *testing.T) {
	song := testSong()
	redisRepo := newFakeRedisRepo()
	awsRepo := newFakeAWSRepo()
	songsRepo := newFakeSongsRepo(song)
	tr := &fakeTranscoder{}

	require.NoError(t, redisRepo.Enqueue(context.Background(), transcode.QueueKey, song.SongID.String()))

	cfg := testConfig()
	w := NewWorker(cfg, testLogger{}, redisRepo, NewProcessor(cfg, testLogger{}, redisRepo, awsRepo, songsRepo, tr))
	w.tick(context.Background())

	assert.Equal(t, models.SongStatusAwaitingReview, songsRepo.song(song.SongID).Status)
	assert.Empty(t, redisRepo.queue(transcode.QueueKey))
}

func TestTickEmptyQueueIsNoop(t *testing.T) {
	redisRepo := newFakeRedisRepo()
	awsRepo := newFakeAWSRepo()
	songsRepo := newFakeSongsRepo()
	tr := &fakeTranscoder{}

	cfg := testConfig()
	w := NewWorker(cfg, testLogger{}, redisRepo, NewProcessor(cfg, testLogger{}, redisRepo, awsRepo, songsRepo, tr))
	w.tick(context.Background())

	assert.Zero(t, tr.calls)
	assert.Empty(t, awsRepo.inputDirs)
}
