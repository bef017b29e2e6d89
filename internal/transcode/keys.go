package transcode

import (
	"strings"
	"time"
)

// Shared-store key namespace. Everything the pipeline keeps in redis lives
// under these keys; external collaborators write the view counters.
const (
	QueueKey      = "transcode:queue"
	DeadLetterKey = "transcode:dead"
	MetricsKey    = "transcode:metrics"

	retryKeyPrefix = "transcode:retry:"
	lockKeyPrefix  = "lock:transcode:"
	viewKeyPrefix  = "view:"

	PlaySyncLockKey  = "lock:playsync"
	TrendingCacheKey = "cache:trending"

	ViewKeyPattern = viewKeyPrefix + "*"

	MetricsTTL = 7 * 24 * time.Hour
)

func RetryKey(songID string) string {
	return retryKeyPrefix + songID
}

func LockKey(songID string) string {
	return lockKeyPrefix + songID
}

func ViewKey(songID string) string {
	return viewKeyPrefix + songID
}

// SongIDFromViewKey parses the subject id back out of a view counter key.
func SongIDFromViewKey(key string) (string, bool) {
	id := strings.TrimPrefix(key, viewKeyPrefix)
	if id == key || id == "" {
		return "", false
	}
	return id, true
}
