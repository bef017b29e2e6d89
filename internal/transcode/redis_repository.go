package transcode

import (
	"context"
	"time"

	"github.com/tunewave/audio-stream-encoder/internal/models"
)

// The shared store backs three distinct concerns. They are split into narrow
// interfaces so any one of them can be swapped (say, a real broker for the
// queue) without touching the others; the redis repository implements all of
// them over one client.

// Queue is a FIFO over subject ids. Dequeue is non-blocking: an empty queue
// returns ("", nil), a normal nothing-to-do signal rather than an error.
type Queue interface {
	Enqueue(ctx context.Context, queue, songID string) error
	Dequeue(ctx context.Context, queue string) (string, error)
	Depth(ctx context.Context, queue string) (int64, error)
}

// Locker is the per-subject mutual exclusion primitive. TryLock fails fast;
// a false result means another actor holds the claim and the caller must
// silently skip. The TTL is the crash-recovery ceiling, not a lease to renew.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key string) error
}

// CounterStore covers the retry and view counters.
type CounterStore interface {
	Incr(ctx context.Context, key string) (int64, error)
	GetInt(ctx context.Context, key string) (int64, error)
	Del(ctx context.Context, keys ...string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// MetricsRecorder writes the aggregate job counters. Implementations refresh
// the snapshot's retention TTL on every write. Callers treat failures as
// best-effort: log and move on, never fail the job.
type MetricsRecorder interface {
	RecordSuccess(ctx context.Context, duration time.Duration) error
	RecordFailure(ctx context.Context) error
	Snapshot(ctx context.Context) (*models.TranscodeMetrics, error)
}

type RedisRepository interface {
	Queue
	Locker
	CounterStore
	MetricsRecorder
}
