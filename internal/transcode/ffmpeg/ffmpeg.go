package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	ManifestName   = "playlist.m3u8"
	segmentPattern = "segment_%03d.ts"
	defaultBitrate = "128k"
	defaultSegSecs = 10
)

// TranscodeError is the single failure shape the invoker reports. Callers
// branch on TimedOut or ExitCode without parsing subprocess output.
type TranscodeError struct {
	ExitCode int
	TimedOut bool
	Output   string
}

func (e *TranscodeError) Error() string {
	if e.TimedOut {
		return "transcode failed: wall-clock timeout exceeded"
	}
	return fmt.Sprintf("transcode failed: ffmpeg exit code %d", e.ExitCode)
}

// Transcoder shells out to ffmpeg to produce a single-bitrate audio-only HLS
// rendition: one playlist plus fixed-duration transport-stream segments.
type Transcoder struct {
	audioBitrate   string
	segmentSeconds int
	timeout        time.Duration
}

func NewTranscoder(audioBitrate string, segmentSeconds int, timeout time.Duration) *Transcoder {
	if audioBitrate == "" {
		audioBitrate = defaultBitrate
	}
	if segmentSeconds <= 0 {
		segmentSeconds = defaultSegSecs
	}
	return &Transcoder{
		audioBitrate:   audioBitrate,
		segmentSeconds: segmentSeconds,
		timeout:        timeout,
	}
}

// BuildArgs returns the fixed ffmpeg argument shape for one input file.
func (t *Transcoder) BuildArgs(inputPath, outputDir string) []string {
	return []string{
		"-i", inputPath,
		"-vn",
		"-c:a", "aac",
		"-b:a", t.audioBitrate,
		"-f", "hls",
		"-hls_time", strconv.Itoa(t.segmentSeconds),
		"-hls_playlist_type", "vod",
		"-hls_segment_filename", filepath.Join(outputDir, segmentPattern),
		"-y", filepath.Join(outputDir, ManifestName),
	}
}

// TranscodeToHLS runs ffmpeg with a hard wall-clock ceiling. Timeout expiry
// and non-zero exit are reported the same way, as a *TranscodeError.
func (t *Transcoder) TranscodeToHLS(ctx context.Context, inputPath, outputDir string) error {
	runCtx := ctx
	if t.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, "ffmpeg", t.BuildArgs(inputPath, outputDir)...)

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	err := cmd.Run()
	if err == nil {
		return nil
	}

	tErr := &TranscodeError{
		ExitCode: -1,
		Output:   strings.TrimSpace(output.String()),
	}
	if runCtx.Err() == context.DeadlineExceeded {
		tErr.TimedOut = true
		return tErr
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		tErr.ExitCode = exitErr.ExitCode()
	}
	return tErr
}
