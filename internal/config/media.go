package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvMediaMaxFrames         = "VERITAS_MEDIA_MAX_FRAMES"
	EnvMediaMaxImageDimension = "VERITAS_MEDIA_MAX_IMAGE_DIMENSION"
	EnvMediaFFmpegPath        = "VERITAS_MEDIA_FFMPEG_PATH"
	EnvMediaFFprobePath       = "VERITAS_MEDIA_FFPROBE_PATH"
)

// MediaConfig bounds media preprocessing: how many frames are sampled from
// an uploaded video and how large a forwarded image may be.
type MediaConfig struct {
	MaxFrames         int    `toml:"max_frames"`
	MaxImageDimension int    `toml:"max_image_dimension"`
	FFmpegPath        string `toml:"ffmpeg_path"`
	FFprobePath       string `toml:"ffprobe_path"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *MediaConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *MediaConfig) Merge(overlay *MediaConfig) {
	if overlay.MaxFrames != 0 {
		c.MaxFrames = overlay.MaxFrames
	}
	if overlay.MaxImageDimension != 0 {
		c.MaxImageDimension = overlay.MaxImageDimension
	}
	if overlay.FFmpegPath != "" {
		c.FFmpegPath = overlay.FFmpegPath
	}
	if overlay.FFprobePath != "" {
		c.FFprobePath = overlay.FFprobePath
	}
}

func (c *MediaConfig) loadDefaults() {
	if c.MaxFrames == 0 {
		c.MaxFrames = 4
	}
	if c.MaxImageDimension == 0 {
		c.MaxImageDimension = 1280
	}
	if c.FFmpegPath == "" {
		c.FFmpegPath = "ffmpeg"
	}
	if c.FFprobePath == "" {
		c.FFprobePath = "ffprobe"
	}
}

func (c *MediaConfig) loadEnv() {
	if v := os.Getenv(EnvMediaMaxFrames); v != "" {
		if frames, err := strconv.Atoi(v); err == nil {
			c.MaxFrames = frames
		}
	}
	if v := os.Getenv(EnvMediaMaxImageDimension); v != "" {
		if dim, err := strconv.Atoi(v); err == nil {
			c.MaxImageDimension = dim
		}
	}
	if v := os.Getenv(EnvMediaFFmpegPath); v != "" {
		c.FFmpegPath = v
	}
	if v := os.Getenv(EnvMediaFFprobePath); v != "" {
		c.FFprobePath = v
	}
}

func (c *MediaConfig) validate() error {
	if c.MaxFrames < 1 || c.MaxFrames > 8 {
		return fmt.Errorf("invalid max_frames: %d", c.MaxFrames)
	}
	if c.MaxImageDimension < 16 {
		return fmt.Errorf("invalid max_image_dimension: %d", c.MaxImageDimension)
	}
	return nil
}
