package frames_test

import (
	"slices"
	"testing"

	"veritas/internal/frames"
)

func TestSamplePositions(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		maxFrames int
		want      []int
	}{
		{"even spread", 100, 4, []int{0, 25, 50, 75}},
		{"small stride", 10, 4, []int{0, 2, 4, 6}},
		{"exact count", 4, 4, []int{0, 1, 2, 3}},
		{"fewer frames than requested", 2, 4, []int{0, 1}},
		{"single frame video", 1, 4, []int{0}},
		{"single requested frame", 300, 1, []int{0}},
		{"zero total", 0, 4, nil},
		{"zero max", 100, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := frames.SamplePositions(tt.total, tt.maxFrames)
			if !slices.Equal(got, tt.want) {
				t.Errorf("SamplePositions(%d, %d) = %v, want %v", tt.total, tt.maxFrames, got, tt.want)
			}
		})
	}
}

func TestSamplePositionsBounds(t *testing.T) {
	// For any video at least as long as the request, positions are unique,
	// strictly increasing, and within range.
	for maxFrames := 1; maxFrames <= 4; maxFrames++ {
		for _, total := range []int{maxFrames, maxFrames + 1, 17, 240, 86400} {
			positions := frames.SamplePositions(total, maxFrames)

			if len(positions) < 1 || len(positions) > maxFrames {
				t.Errorf("total=%d max=%d: got %d positions", total, maxFrames, len(positions))
			}

			for i, idx := range positions {
				if idx < 0 || idx >= total {
					t.Errorf("total=%d max=%d: position %d out of range", total, maxFrames, idx)
				}
				if i > 0 && idx <= positions[i-1] {
					t.Errorf("total=%d max=%d: positions not strictly increasing: %v", total, maxFrames, positions)
				}
			}
		}
	}
}
