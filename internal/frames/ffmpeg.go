package frames

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

const (
	defaultFFprobe  = "ffprobe"
	defaultFFmpeg   = "ffmpeg"
	defaultMaxWidth = 1280
)

// ffmpegDecoder shells out to ffprobe for frame counting and to ffmpeg for
// per-index extraction. Extraction selects a single frame by index and emits
// it as JPEG on stdout, downscaling anything wider than maxWidth to keep
// vision payloads small.
type ffmpegDecoder struct {
	ffprobePath string
	ffmpegPath  string
	maxWidth    int
}

// NewFFmpegDecoder builds a Decoder backed by the ffprobe and ffmpeg
// binaries. Empty paths resolve from PATH; a non-positive maxWidth falls
// back to the default bound.
func NewFFmpegDecoder(ffprobePath, ffmpegPath string, maxWidth int) Decoder {
	if ffprobePath == "" {
		ffprobePath = defaultFFprobe
	}

	if ffmpegPath == "" {
		ffmpegPath = defaultFFmpeg
	}

	if maxWidth <= 0 {
		maxWidth = defaultMaxWidth
	}

	return &ffmpegDecoder{
		ffprobePath: ffprobePath,
		ffmpegPath:  ffmpegPath,
		maxWidth:    maxWidth,
	}
}

func (d *ffmpegDecoder) Probe(ctx context.Context, path string) (int, error) {
	cmd := exec.CommandContext(ctx, d.ffprobePath,
		"-v", "error",
		"-select_streams", "v:0",
		"-count_packets",
		"-show_entries", "stream=nb_read_packets",
		"-of", "csv=p=0",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("probe video: %w", err)
	}

	text := strings.TrimSpace(string(out))
	total, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("probe video: unexpected output %q", text)
	}

	return total, nil
}

func (d *ffmpegDecoder) DecodeFrame(ctx context.Context, path string, index int) ([]byte, error) {
	filter := fmt.Sprintf("select='eq(n,%d)',scale='min(%d,iw)':-2", index, d.maxWidth)

	cmd := exec.CommandContext(ctx, d.ffmpegPath,
		"-v", "error",
		"-i", path,
		"-vf", filter,
		"-frames:v", "1",
		"-f", "image2pipe",
		"-vcodec", "mjpeg",
		"-",
	)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("decode frame %d: %w", index, err)
	}

	if stdout.Len() == 0 {
		return nil, fmt.Errorf("decode frame %d: empty output", index)
	}

	return stdout.Bytes(), nil
}
