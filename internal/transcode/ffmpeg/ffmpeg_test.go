package ffmpeg

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildArgs(t *testing.T) {
	tr := NewTranscoder("96k", 6, time.Minute)
	args := tr.BuildArgs("/tmp/in/track.mp3", "/tmp/out")

	assert.Equal(t, []string{
		"-i", "/tmp/in/track.mp3",
		"-vn",
		"-c:a", "aac",
		"-b:a", "96k",
		"-f", "hls",
		"-hls_time", "6",
		"-hls_playlist_type", "vod",
		"-hls_segment_filename", filepath.Join("/tmp/out", "segment_%03d.ts"),
		"-y", filepath.Join("/tmp/out", ManifestName),
	}, args)
}

func TestNewTranscoderDefaults(t *testing.T) {
	tr := NewTranscoder("", 0, 0)
	args := tr.BuildArgs("in.wav", "out")

	require.Contains(t, args, "128k")
	require.Contains(t, args, "10")
}

func TestTranscodeErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  *TranscodeError
		want string
	}{
		{
			name: "non-zero exit",
			err:  &TranscodeError{ExitCode: 1},
			want: "transcode failed: ffmpeg exit code 1",
		},
		{
			name: "timeout",
			err:  &TranscodeError{ExitCode: -1, TimedOut: true},
			want: "transcode failed: wall-clock timeout exceeded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}
