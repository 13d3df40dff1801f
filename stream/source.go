// Package stream drives the per-frame pipeline for one video stream:
// it pulls frames from a source, hands them to the compositor and
// pushes the composited frames to a sink, with cooperative cancellation
// at frame boundaries.
package stream

import (
	"fmt"
	"io"

	"gocv.io/x/gocv"
)

// FrameSource produces a sequence of decoded frames.  The sequence is
// finite for file sources (Read returns io.EOF) and effectively
// infinite for live sources.  A source is not restartable mid-stream
// without reopening it.
type FrameSource interface {
	// Read places the next frame into img.  io.EOF signals a clean end
	// of stream.
	Read(img *gocv.Mat) error

	// Live reports whether the source is a capture device rather than
	// a file.
	Live() bool

	Close() error
}

// Source reads frames from a video file or a capture device.  Open
// failures (missing file, busy device) surface once here, never per
// frame.
type Source struct {
	cap  *gocv.VideoCapture
	live bool
	desc string
}

// OpenFile opens a video file source.
func OpenFile(path string) (*Source, error) {

	cap, err := gocv.VideoCaptureFile(path)

	if err != nil {
		return nil, fmt.Errorf("error opening video file %s: %w", path, err)
	}

	if !cap.IsOpened() {
		cap.Close()
		return nil, fmt.Errorf("could not open video file %s", path)
	}

	return &Source{cap: cap, desc: path}, nil
}

// OpenDevice opens a webcam source by device index.
func OpenDevice(index int) (*Source, error) {

	cap, err := gocv.VideoCaptureDevice(index)

	if err != nil {
		return nil, fmt.Errorf("error opening capture device %d: %w", index, err)
	}

	if !cap.IsOpened() {
		cap.Close()
		return nil, fmt.Errorf("could not open capture device %d", index)
	}

	return &Source{cap: cap, live: true, desc: fmt.Sprintf("device %d", index)}, nil
}

// Read places the next decoded frame into img, skipping empty frames.
// Returns io.EOF when the stream has ended.
func (s *Source) Read(img *gocv.Mat) error {

	for {
		if ok := s.cap.Read(img); !ok {
			// reached last video frame, or the device went away
			return io.EOF
		}

		if img.Empty() {
			continue
		}

		return nil
	}
}

// Live reports whether the source is a capture device.
func (s *Source) Live() bool {
	return s.live
}

// Desc returns a human readable description of the source.
func (s *Source) Desc() string {
	return s.desc
}

// Close releases the underlying capture handle.
func (s *Source) Close() error {
	return s.cap.Close()
}
