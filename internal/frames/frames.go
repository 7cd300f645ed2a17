// Package frames reduces a video to a bounded set of representative still
// images. Sampling spreads frame positions evenly across the full duration
// so the set captures beginning, middle, and end rather than a clustered
// burst, and tolerates individual decode failures.
package frames

// Frame is a single decoded still image.
type Frame struct {
	Index int    // source frame index within the video
	Data  []byte // encoded image bytes
	MIME  string
}

// FrameSet is an ordered sequence of sampled frames. It is empty only when
// no sampled position decoded; callers treat that as unreadable media.
type FrameSet []Frame
