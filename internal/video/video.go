package video

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// video stream facts the caption pipeline needs
type Info struct {
	Path   string
	Width  int
	Height int
	FPSNum int
	FPSDen int
}

func (i Info) FPS() float64 {
	if i.FPSDen == 0 {
		return 0
	}
	return float64(i.FPSNum) / float64(i.FPSDen)
}

// DefaultInfo is the fallback when probing fails: 30 fps full HD.
func DefaultInfo(path string) Info {
	return Info{Path: path, Width: 1920, Height: 1080, FPSNum: 30, FPSDen: 1}
}

// JSON output from ffprobe
type probeStream struct {
	CodecType  string `json:"codec_type"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	RFrameRate string `json:"r_frame_rate"`
}

type probeResult struct {
	Streams []probeStream `json:"streams"`
}

// Probe reads frame rate and pixel dimensions of the first video
// stream. The frame rate stays an exact num/den pair; 24000/1001 must
// not collapse to 23.976.
func Probe(ctx context.Context, videoPath string) (*Info, error) {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("video file not found: %s", videoPath)
	}

	out, err := ffmpeg.Probe(videoPath)
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	var probe probeResult
	if err := json.Unmarshal([]byte(out), &probe); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	for _, stream := range probe.Streams {
		if stream.CodecType != "video" {
			continue
		}
		num, den, err := parseFrameRate(stream.RFrameRate)
		if err != nil {
			return nil, err
		}
		if stream.Width <= 0 || stream.Height <= 0 {
			return nil, fmt.Errorf("video stream has no dimensions: %dx%d", stream.Width, stream.Height)
		}
		return &Info{
			Path:   videoPath,
			Width:  stream.Width,
			Height: stream.Height,
			FPSNum: num,
			FPSDen: den,
		}, nil
	}
	return nil, fmt.Errorf("no video stream in %s", videoPath)
}

// parseFrameRate splits an ffprobe rational like "30000/1001".
func parseFrameRate(s string) (num, den int, err error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("unexpected frame rate %q", s)
	}
	num, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("unexpected frame rate %q: %w", s, err)
	}
	den, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("unexpected frame rate %q: %w", s, err)
	}
	if num <= 0 || den <= 0 {
		return 0, 0, fmt.Errorf("non-positive frame rate %q", s)
	}
	return num, den, nil
}
