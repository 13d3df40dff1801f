package posemirror

import "gocv.io/x/gocv"

// Detector is the interface a pose landmark detector implements.  The
// detector is an external collaborator: it may be slow and its latency
// varies per frame, but given identical pixel input it must return the
// same landmarks.
type Detector interface {
	// Detect analyzes a single decoded frame and returns the detected
	// pose, or nil when no person was found.  A nil pose is a normal
	// per-frame outcome, not an error; errors report detector failures
	// such as a lost connection to the inference backend.
	Detect(frame gocv.Mat) (*Pose, error)

	// Close releases any resources held by the detector.
	Close() error
}
