package stream

import (
	"errors"

	"gocv.io/x/gocv"
)

// ErrDisplayClosed is returned by a sink's Write when the user closed
// the display.  The driver treats it as a clean stop, not a failure.
var ErrDisplayClosed = errors.New("display closed")

// Sink accepts one composited frame at a time for display or encoding.
// A sink may be rate limiting (display refresh); Write blocks until the
// frame is accepted.  The frame is only valid for the duration of the
// call.
type Sink interface {
	Write(img gocv.Mat) error
	Close() error
}

// WindowSink displays frames in a desktop window.  Pressing 'q' or
// escape closes the stream.
type WindowSink struct {
	window *gocv.Window
}

// NewWindowSink opens a display window with the given title.
func NewWindowSink(title string) *WindowSink {
	return &WindowSink{
		window: gocv.NewWindow(title),
	}
}

// Write shows the frame and services the window event loop.
func (w *WindowSink) Write(img gocv.Mat) error {

	w.window.IMShow(img)

	// WaitKey pumps window events; 1ms keeps the display at source
	// cadence
	key := w.window.WaitKey(1)

	if key == 'q' || key == 27 {
		return ErrDisplayClosed
	}

	return nil
}

// Close destroys the window.
func (w *WindowSink) Close() error {
	return w.window.Close()
}
