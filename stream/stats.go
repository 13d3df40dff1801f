package stream

import (
	"sync"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// FPSStats summarizes the pipeline cadence over a window of recent
// frames.
type FPSStats struct {
	// Frames is the number of frames in the window
	Frames int
	// Mean is the mean instantaneous FPS
	Mean float64
	// StdDev is the standard deviation of instantaneous FPS
	StdDev float64
	// Min and Max are the extremes of instantaneous FPS
	Min float64
	Max float64
}

// CalculateFPSStats derives FPS statistics from a series of frame
// emission timestamps.  Fewer than two timestamps yields zero stats.
func CalculateFPSStats(frameTimes []time.Time) FPSStats {

	if len(frameTimes) < 2 {
		return FPSStats{Frames: len(frameTimes)}
	}

	// instantaneous FPS for each frame interval
	fps := make([]float64, 0, len(frameTimes)-1)

	for i := 1; i < len(frameTimes); i++ {
		dt := frameTimes[i].Sub(frameTimes[i-1]).Seconds()

		if dt <= 0 {
			continue
		}

		fps = append(fps, 1.0/dt)
	}

	if len(fps) == 0 {
		return FPSStats{Frames: len(frameTimes)}
	}

	stddev := 0.0
	if len(fps) > 1 {
		stddev = stat.StdDev(fps, nil)
	}

	return FPSStats{
		Frames: len(frameTimes),
		Mean:   stat.Mean(fps, nil),
		StdDev: stddev,
		Min:    floats.Min(fps),
		Max:    floats.Max(fps),
	}
}

// Tracker keeps a sliding window of frame timestamps for live FPS
// reporting.  Safe for concurrent use.
type Tracker struct {
	mu     sync.Mutex
	window int
	times  []time.Time
}

// NewTracker returns a Tracker retaining the most recent window frame
// timestamps.
func NewTracker(window int) *Tracker {
	return &Tracker{
		window: window,
		times:  make([]time.Time, 0, window),
	}
}

// Mark records one emitted frame.
func (t *Tracker) Mark(now time.Time) {

	t.mu.Lock()
	defer t.mu.Unlock()

	t.times = append(t.times, now)

	if len(t.times) > t.window {
		t.times = t.times[len(t.times)-t.window:]
	}
}

// Snapshot returns stats over the current window.
func (t *Tracker) Snapshot() FPSStats {

	t.mu.Lock()
	times := make([]time.Time, len(t.times))
	copy(times, t.times)
	t.mu.Unlock()

	return CalculateFPSStats(times)
}
