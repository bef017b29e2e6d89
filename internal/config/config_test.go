package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
server:
  AppVersion: 1.0.0
  Port: ":8080"
  Mode: Development

logger:
  Development: true
  Encoding: console
  Level: debug

worker:
  WorkerCount: 3
  PollInterval: 2s
  MaxRetries: 3
  LockTTL: 10m
  TranscodeTimeout: 5m
  MaxCPUUsage: 80.0

playsync:
  Interval: 5m
  LockTTL: 2m

transcode:
  AudioBitrate: 128k
  SegmentSeconds: 10
`

func TestLoadAndParseConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigYAML), 0o644))

	v, err := LoadConfig(path)
	require.NoError(t, err)

	cfg, err := ParseConfig(v)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, 3, cfg.Worker.WorkerCount)
	assert.Equal(t, 2*time.Second, cfg.Worker.PollInterval)
	assert.Equal(t, 10*time.Minute, cfg.Worker.LockTTL)
	assert.Equal(t, 5*time.Minute, cfg.Worker.TranscodeTimeout)
	assert.Equal(t, 3, cfg.Worker.MaxRetries)
	assert.Equal(t, 5*time.Minute, cfg.PlaySync.Interval)
	assert.Equal(t, "128k", cfg.Transcode.AudioBitrate)
	assert.Equal(t, 10, cfg.Transcode.SegmentSeconds)

	// The crash-recovery ceiling has to outlive the transcoder's own
	// timeout or a live worker could lose its lock mid-job.
	assert.Greater(t, cfg.Worker.LockTTL, cfg.Worker.TranscodeTimeout)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
