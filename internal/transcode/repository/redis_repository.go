package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"github.com/tunewave/audio-stream-encoder/internal/models"
	"github.com/tunewave/audio-stream-encoder/internal/transcode"
)

const (
	metricsSuccessField  = "success_count"
	metricsFailureField  = "failure_count"
	metricsDurationField = "total_duration_ms"

	lockSentinel = 1
)

type transcodeRedisRepo struct {
	redisClient *redis.Client
}

func NewTranscodeRedisRepo(redisClient *redis.Client) transcode.RedisRepository {
	return &transcodeRedisRepo{
		redisClient: redisClient,
	}
}

func (t *transcodeRedisRepo) Enqueue(ctx context.Context, queue, songID string) error {
	if err := t.redisClient.RPush(ctx, queue, songID).Err(); err != nil {
		return errors.Wrap(err, "transcodeRedisRepo.Enqueue")
	}
	return nil
}

// Dequeue pops the head without blocking; redis.Nil maps to the empty signal.
func (t *transcodeRedisRepo) Dequeue(ctx context.Context, queue string) (string, error) {
	songID, err := t.redisClient.LPop(ctx, queue).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", errors.Wrap(err, "transcodeRedisRepo.Dequeue")
	}
	return songID, nil
}

func (t *transcodeRedisRepo) Depth(ctx context.Context, queue string) (int64, error) {
	depth, err := t.redisClient.LLen(ctx, queue).Result()
	if err != nil {
		return 0, errors.Wrap(err, "transcodeRedisRepo.Depth")
	}
	return depth, nil
}

func (t *transcodeRedisRepo) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	locked, err := t.redisClient.SetNX(ctx, key, lockSentinel, ttl).Result()
	if err != nil {
		return false, errors.Wrap(err, "transcodeRedisRepo.TryLock")
	}
	return locked, nil
}

func (t *transcodeRedisRepo) Unlock(ctx context.Context, key string) error {
	if err := t.redisClient.Del(ctx, key).Err(); err != nil {
		return errors.Wrap(err, "transcodeRedisRepo.Unlock")
	}
	return nil
}

func (t *transcodeRedisRepo) Incr(ctx context.Context, key string) (int64, error) {
	count, err := t.redisClient.Incr(ctx, key).Result()
	if err != nil {
		return 0, errors.Wrap(err, "transcodeRedisRepo.Incr")
	}
	return count, nil
}

// GetInt returns 0 for a missing key; a counter that was never written is a
// zero counter.
func (t *transcodeRedisRepo) GetInt(ctx context.Context, key string) (int64, error) {
	val, err := t.redisClient.Get(ctx, key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, errors.Wrap(err, "transcodeRedisRepo.GetInt")
	}
	return val, nil
}

func (t *transcodeRedisRepo) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := t.redisClient.Del(ctx, keys...).Err(); err != nil {
		return errors.Wrap(err, "transcodeRedisRepo.Del")
	}
	return nil
}

func (t *transcodeRedisRepo) Scan(ctx context.Context, pattern string) ([]string, error) {
	var (
		keys   []string
		cursor uint64
	)
	for {
		batch, next, err := t.redisClient.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return nil, errors.Wrap(err, "transcodeRedisRepo.Scan")
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return keys, nil
}

func (t *transcodeRedisRepo) RecordSuccess(ctx context.Context, duration time.Duration) error {
	pipe := t.redisClient.Pipeline()
	pipe.HIncrBy(ctx, transcode.MetricsKey, metricsSuccessField, 1)
	pipe.HIncrBy(ctx, transcode.MetricsKey, metricsDurationField, duration.Milliseconds())
	pipe.Expire(ctx, transcode.MetricsKey, transcode.MetricsTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "transcodeRedisRepo.RecordSuccess")
	}
	return nil
}

func (t *transcodeRedisRepo) RecordFailure(ctx context.Context) error {
	pipe := t.redisClient.Pipeline()
	pipe.HIncrBy(ctx, transcode.MetricsKey, metricsFailureField, 1)
	pipe.Expire(ctx, transcode.MetricsKey, transcode.MetricsTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "transcodeRedisRepo.RecordFailure")
	}
	return nil
}

func (t *transcodeRedisRepo) Snapshot(ctx context.Context) (*models.TranscodeMetrics, error) {
	fields, err := t.redisClient.HGetAll(ctx, transcode.MetricsKey).Result()
	if err != nil {
		return nil, errors.Wrap(err, "transcodeRedisRepo.Snapshot")
	}
	metrics := &models.TranscodeMetrics{
		SuccessCount:    parseCounterField(fields, metricsSuccessField),
		FailureCount:    parseCounterField(fields, metricsFailureField),
		TotalDurationMs: parseCounterField(fields, metricsDurationField),
	}
	return metrics, nil
}

func parseCounterField(fields map[string]string, name string) int64 {
	val, err := strconv.ParseInt(fields[name], 10, 64)
	if err != nil {
		return 0
	}
	return val
}
