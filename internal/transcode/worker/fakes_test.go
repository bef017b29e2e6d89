package worker

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/tunewave/audio-stream-encoder/internal/models"
	"github.com/tunewave/audio-stream-encoder/internal/songs"
)

type testLogger struct{}

func (testLogger) InitLogger()                          {}
func (testLogger) Debug(args ...interface{})            {}
func (testLogger) Debugf(t string, args ...interface{}) {}
func (testLogger) Info(args ...interface{})             {}
func (testLogger) Infof(t string, args ...interface{})  {}
func (testLogger) Warn(args ...interface{})             {}
func (testLogger) Warnf(t string, args ...interface{})  {}
func (testLogger) Error(args ...interface{})            {}
func (testLogger) Errorf(t string, args ...interface{}) {}
func (testLogger) Fatal(args ...interface{})            {}
func (testLogger) Fatalf(t string, args ...interface{}) {}

// fakeRedisRepo is an in-memory stand-in for the shared store.
type fakeRedisRepo struct {
	mu       sync.Mutex
	queues   map[string][]string
	locks    map[string]bool
	counters map[string]int64

	successCount int64
	failureCount int64
	durationMs   int64

	metricsErr error
}

func newFakeRedisRepo() *fakeRedisRepo {
	return &fakeRedisRepo{
		queues:   make(map[string][]string),
		locks:    make(map[string]bool),
		counters: make(map[string]int64),
	}
}

func (f *fakeRedisRepo) Enqueue(ctx context.Context, queue, songID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queues[queue] = append(f.queues[queue], songID)
	return nil
}

func (f *fakeRedisRepo) Dequeue(ctx context.Context, queue string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q := f.queues[queue]
	if len(q) == 0 {
		return "", nil
	}
	head := q[0]
	f.queues[queue] = q[1:]
	return head, nil
}

func (f *fakeRedisRepo) Depth(ctx context.Context, queue string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.queues[queue])), nil
}

func (f *fakeRedisRepo) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.locks[key] {
		return false, nil
	}
	f.locks[key] = true
	return true, nil
}

func (f *fakeRedisRepo) Unlock(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.locks, key)
	return nil
}

func (f *fakeRedisRepo) Incr(ctx context.Context, key string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counters[key]++
	return f.counters[key], nil
}

func (f *fakeRedisRepo) GetInt(ctx context.Context, key string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counters[key], nil
}

func (f *fakeRedisRepo) Del(ctx context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, key := range keys {
		delete(f.counters, key)
	}
	return nil
}

func (f *fakeRedisRepo) Scan(ctx context.Context, pattern string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var keys []string
	for k := range f.counters {
		if ok, _ := filepath.Match(pattern, k); ok {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func (f *fakeRedisRepo) RecordSuccess(ctx context.Context, duration time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.metricsErr != nil {
		return f.metricsErr
	}
	f.successCount++
	f.durationMs += duration.Milliseconds()
	return nil
}

func (f *fakeRedisRepo) RecordFailure(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.metricsErr != nil {
		return f.metricsErr
	}
	f.failureCount++
	return nil
}

func (f *fakeRedisRepo) Snapshot(ctx context.Context) (*models.TranscodeMetrics, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &models.TranscodeMetrics{
		SuccessCount:    f.successCount,
		FailureCount:    f.failureCount,
		TotalDurationMs: f.durationMs,
	}, nil
}

func (f *fakeRedisRepo) counter(key string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counters[key]
}

func (f *fakeRedisRepo) hasCounter(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.counters[key]
	return ok
}

func (f *fakeRedisRepo) locked(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.locks[key]
}

func (f *fakeRedisRepo) queue(name string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queues[name]...)
}

// fakeAWSRepo downloads by writing a marker file and records the directories
// each attempt used so tests can assert on cleanup.
type fakeAWSRepo struct {
	mu          sync.Mutex
	downloadErr error
	uploadErr   error
	manifestURL string
	inputDirs   []string
	uploadDirs  []string
}

func newFakeAWSRepo() *fakeAWSRepo {
	return &fakeAWSRepo{manifestURL: "https://cdn.example.com/stream-audio/hls/x/playlist.m3u8"}
}

func (f *fakeAWSRepo) Download(ctx context.Context, bucket, key, localDir string) (string, error) {
	f.mu.Lock()
	f.inputDirs = append(f.inputDirs, localDir)
	f.mu.Unlock()
	if f.downloadErr != nil {
		return "", f.downloadErr
	}
	localPath := filepath.Join(localDir, filepath.Base(key))
	if err := os.WriteFile(localPath, []byte("raw audio"), 0o644); err != nil {
		return "", err
	}
	return localPath, nil
}

func (f *fakeAWSRepo) UploadDirectory(ctx context.Context, bucket, localDir, prefix string) (string, error) {
	f.mu.Lock()
	f.uploadDirs = append(f.uploadDirs, localDir)
	f.mu.Unlock()
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	return f.manifestURL, nil
}

func (f *fakeAWSRepo) GetPresignedURL(ctx context.Context, bucket string, input *models.UploadInput) (string, error) {
	return "https://example.com/presigned", nil
}

// fakeSongsRepo keeps the catalog in a map.
type fakeSongsRepo struct {
	mu    sync.Mutex
	songs map[uuid.UUID]*models.Song

	updateErr error
}

func newFakeSongsRepo(existing ...*models.Song) *fakeSongsRepo {
	repo := &fakeSongsRepo{songs: make(map[uuid.UUID]*models.Song)}
	for _, s := range existing {
		repo.songs[s.SongID] = s
	}
	return repo
}

func (f *fakeSongsRepo) GetSongByID(ctx context.Context, songID uuid.UUID) (*models.Song, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	song, ok := f.songs[songID]
	if !ok {
		return nil, songs.ErrSongNotFound
	}
	copied := *song
	return &copied, nil
}

func (f *fakeSongsRepo) UpdateStatus(ctx context.Context, songID uuid.UUID, status models.SongStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	song, ok := f.songs[songID]
	if !ok {
		return songs.ErrSongNotFound
	}
	song.Status = status
	return nil
}

func (f *fakeSongsRepo) SetStreamURL(ctx context.Context, songID uuid.UUID, streamURL string, status models.SongStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	song, ok := f.songs[songID]
	if !ok {
		return songs.ErrSongNotFound
	}
	song.StreamURL = streamURL
	song.Status = status
	return nil
}

func (f *fakeSongsRepo) AddPlays(ctx context.Context, songID uuid.UUID, plays int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	song, ok := f.songs[songID]
	if !ok {
		return songs.ErrSongNotFound
	}
	song.PlayCount += plays
	return nil
}

func (f *fakeSongsRepo) song(songID uuid.UUID) *models.Song {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.songs[songID]
}

// fakeTranscoder records the output dir of every attempt and fails or
// panics on demand.
type fakeTranscoder struct {
	mu         sync.Mutex
	err        error
	failures   int // fail this many calls, then succeed
	panicMsg   string
	outputDirs []string
	calls      int
}

func (f *fakeTranscoder) TranscodeToHLS(ctx context.Context, inputPath, outputDir string) error {
	f.mu.Lock()
	f.calls++
	call := f.calls
	f.outputDirs = append(f.outputDirs, outputDir)
	f.mu.Unlock()
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	if f.err != nil {
		return f.err
	}
	if call <= f.failures {
		return errors.New("ffmpeg exited with code 1")
	}
	return nil
}
