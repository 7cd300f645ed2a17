package frames

// SamplePositions selects up to maxFrames frame indices spread evenly across
// a video of total frames using a constant stride of total/maxFrames (minimum
// 1). Indices are clamped to the final frame and deduplicated, so the result
// is strictly increasing and may be shorter than maxFrames when the video has
// fewer frames than requested.
func SamplePositions(total, maxFrames int) []int {
	if total <= 0 || maxFrames <= 0 {
		return nil
	}

	stride := max(total/maxFrames, 1)
	positions := make([]int, 0, maxFrames)

	for i := range maxFrames {
		idx := min(i*stride, total-1)
		if n := len(positions); n > 0 && idx <= positions[n-1] {
			break
		}
		positions = append(positions, idx)
	}

	return positions
}
