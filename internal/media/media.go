// Package media wraps the external ffmpeg/ffprobe tools for container
// probing, frame extraction, and audio transcoding. All artifacts are
// written next to the input or into the OS temp dir; cleanup is the
// caller's responsibility and is best-effort.
package media

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// ProbeDuration returns the container duration in seconds via ffprobe.
// Returns an error if the tool is missing or the output is unparsable.
func ProbeDuration(ctx context.Context, path string) (float64, error) {
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return 0, fmt.Errorf("ffprobe not found: %w", err)
	}

	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w", err)
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", strings.TrimSpace(string(output)), err)
	}
	return seconds, nil
}

// ExtractFrame grabs one representative video frame at a fixed 1-second
// offset and writes it as a JPEG into the temp dir. The caller removes the
// returned file when done.
func ExtractFrame(ctx context.Context, path string) (string, error) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return "", fmt.Errorf("ffmpeg not found: %w", err)
	}

	out := filepath.Join(os.TempDir(), fmt.Sprintf("noted-thumb-%d.jpg", os.Getpid()))
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-i", path,
		"-ss", "00:00:01",
		"-vframes", "1",
		"-q:v", "2",
		"-y", out)
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("ffmpeg frame extraction: %w", err)
	}
	if _, err := os.Stat(out); err != nil {
		return "", fmt.Errorf("no frame produced: %w", err)
	}
	return out, nil
}

// TranscodeFLAC re-encodes the media to audio-only FLAC next to the input
// file and returns the new path.
func TranscodeFLAC(ctx context.Context, path string) (string, error) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return "", fmt.Errorf("ffmpeg not found: %w", err)
	}

	out := strings.TrimSuffix(path, filepath.Ext(path)) + ".flac"
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-i", path,
		"-vn",
		"-acodec", "flac",
		"-y", out)
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("ffmpeg flac transcode: %w", err)
	}
	return out, nil
}

// RemoveQuietly deletes a temp artifact, logging (not surfacing) failures.
func RemoveQuietly(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("media: failed to remove %s: %v", path, err)
	}
}
