package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetContentType(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "hls/s1/playlist.m3u8", want: "application/vnd.apple.mpegurl"},
		{path: "hls/s1/segment_000.ts", want: "video/MP2T"},
		{path: "hls/s1/cover.jpg", want: "application/octet-stream"},
		{path: "README", want: "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, getContentType(tt.path))
		})
	}
}

func TestParseCounterField(t *testing.T) {
	fields := map[string]string{
		"success_count":     "42",
		"total_duration_ms": "1500",
		"mangled":           "abc",
	}

	assert.Equal(t, int64(42), parseCounterField(fields, "success_count"))
	assert.Equal(t, int64(1500), parseCounterField(fields, "total_duration_ms"))
	assert.Equal(t, int64(0), parseCounterField(fields, "mangled"))
	assert.Equal(t, int64(0), parseCounterField(fields, "missing"))
}
