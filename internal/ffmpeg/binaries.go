package ffmpeg

import (
	"fmt"
	"os"
	"os/exec"
)

// FFprobePath locates the ffprobe binary: an explicit override via
// CAPTIONFORGE_FFPROBE_PATH wins, then PATH lookup.
func FFprobePath() (string, error) {
	if path := os.Getenv("CAPTIONFORGE_FFPROBE_PATH"); path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("CAPTIONFORGE_FFPROBE_PATH points to %s: %w", path, err)
		}
		return path, nil
	}
	path, err := exec.LookPath("ffprobe")
	if err != nil {
		return "", fmt.Errorf("ffprobe not found on PATH: %w", err)
	}
	return path, nil
}

// Available reports whether ffprobe can be invoked.
func Available() bool {
	_, err := FFprobePath()
	return err == nil
}
