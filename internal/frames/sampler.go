package frames

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"veritas/internal/payload"
)

// Decoder abstracts the video probe and per-frame decode operations so the
// sampler can be tested without a media toolchain on the host.
type Decoder interface {
	// Probe reports the total number of video frames in the file.
	Probe(ctx context.Context, path string) (int, error)
	// DecodeFrame decodes the frame at index as a self-contained JPEG.
	DecodeFrame(ctx context.Context, path string, index int) ([]byte, error)
}

type Sampler struct {
	decoder Decoder
	logger  *slog.Logger
}

func NewSampler(decoder Decoder, logger *slog.Logger) *Sampler {
	return &Sampler{
		decoder: decoder,
		logger:  logger.With("system", "frames"),
	}
}

// Sample stages the media bytes to a temp file, probes the total frame count,
// and decodes up to maxFrames evenly-spread frames with bounded concurrency.
// A probe failure or a zero frame count fails with ErrUnreadableMedia. A
// decode failure at a single position is logged and skipped, so the returned
// set may hold fewer than maxFrames frames; it is empty only when every
// position failed. The temp file is removed on every exit path.
func (s *Sampler) Sample(ctx context.Context, media *payload.MediaBlob, maxFrames int) (FrameSet, error) {
	path, err := s.stage(media)
	if err != nil {
		return nil, err
	}
	defer os.Remove(path)

	total, err := s.decoder.Probe(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadableMedia, err)
	}

	if total <= 0 {
		return nil, fmt.Errorf("%w: no frames reported", ErrUnreadableMedia)
	}

	positions := SamplePositions(total, maxFrames)
	decoded := make([]Frame, len(positions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(len(positions)))

	for i, idx := range positions {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			data, err := s.decoder.DecodeFrame(gctx, path, idx)
			if err != nil {
				s.logger.Warn("frame decode failed", "index", idx, "error", err)
				return nil
			}

			decoded[i] = Frame{Index: idx, Data: data, MIME: "image/jpeg"}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	set := make(FrameSet, 0, len(decoded))
	for _, frame := range decoded {
		if len(frame.Data) > 0 {
			set = append(set, frame)
		}
	}

	s.logger.Debug(
		"sampled video frames",
		"total", total,
		"requested", maxFrames,
		"decoded", len(set),
	)

	return set, nil
}

func (s *Sampler) stage(media *payload.MediaBlob) (string, error) {
	f, err := os.CreateTemp("", "veritas-media-*"+filepath.Ext(media.Filename))
	if err != nil {
		return "", fmt.Errorf("stage media: %w", err)
	}

	if _, err := f.Write(media.Data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("stage media: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("stage media: %w", err)
	}

	return f.Name(), nil
}

func workerCount(positionCount int) int {
	return max(min(runtime.NumCPU(), positionCount), 1)
}
