// Package compose orchestrates the per-frame pipeline: detect a pose,
// mirror it, and draw both skeletons onto one output buffer.
package compose

import (
	"fmt"

	"github.com/dancekit/go-posemirror"
	"github.com/dancekit/go-posemirror/render"
	"gocv.io/x/gocv"
)

// Compositor runs the four stage pipeline (detect, maybe mirror, render
// original, render mirrored) for one video stream.  It holds no
// per-frame state: the connection graph, offset and styles are fixed
// for the session, so independent frames may be composited
// concurrently.
type Compositor struct {
	detector posemirror.Detector
	offsetX  int
	original render.Style
	mirrored render.Style
	conns    [][2]int
}

// New returns a Compositor drawing with the given horizontal offset and
// styles.  The detector is owned by the caller and must outlive the
// compositor.
func New(detector posemirror.Detector, offsetX int, original, mirrored render.Style) *Compositor {
	return &Compositor{
		detector: detector,
		offsetX:  offsetX,
		original: original,
		mirrored: mirrored,
		conns:    posemirror.Connections,
	}
}

// Composite runs the detector on src and returns a new frame holding
// the result.  When a pose is found the returned frame is a copy of src
// with the original skeleton and its mirrored twin drawn onto the one
// canvas.  When no pose is found the returned frame is an exact copy of
// src (pass-through); detected reports which case occurred.
//
// A failed detection is a valid per-frame state.  A non-nil error means
// the detector itself failed; the returned frame is still valid and
// holds the unmodified source so a live stream can keep displaying.
// The caller owns the returned Mat and must Close it.  src is never
// mutated.
func (c *Compositor) Composite(src gocv.Mat) (out gocv.Mat, detected bool, err error) {

	out = src.Clone()

	pose, err := c.detector.Detect(src)

	if err != nil {
		return out, false, fmt.Errorf("detect: %w", err)
	}

	if pose == nil {
		// pass-through
		return out, false, nil
	}

	render.Skeleton(&out, pose, c.conns, c.original)

	cfg := posemirror.MirrorConfig{
		OffsetX:     c.offsetX,
		FrameWidth:  src.Cols(),
		FrameHeight: src.Rows(),
	}

	render.Skeleton(&out, posemirror.Mirror(pose, cfg), c.conns, c.mirrored)

	return out, true, nil
}
