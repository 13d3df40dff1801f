package stream

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dancekit/go-posemirror"
	"github.com/dancekit/go-posemirror/compose"
	"github.com/dancekit/go-posemirror/render"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"gocv.io/x/gocv"
)

// stubSource yields frames whose first pixel encodes the frame index,
// so sinks can verify emission order
type stubSource struct {
	frames int
	live   bool
	count  int
}

func (s *stubSource) Read(img *gocv.Mat) error {

	if !s.live && s.count >= s.frames {
		return io.EOF
	}

	if s.live {
		// keep a fake camera from spinning the reader flat out
		time.Sleep(time.Millisecond)
	}

	idx := s.count
	s.count++

	tmp := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(float64(idx%256), 0, 0, 0),
		48, 64, gocv.MatTypeCV8UC3)
	defer tmp.Close()

	tmp.CopyTo(img)

	return nil
}

func (s *stubSource) Live() bool   { return s.live }
func (s *stubSource) Close() error { return nil }

// stubSink records the frame index pixel of every written frame
type stubSink struct {
	mu        sync.Mutex
	order     []int
	failAfter int
	failWith  error
}

func (s *stubSink) Write(img gocv.Mat) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	vec := img.GetVecbAt(0, 0)
	s.order = append(s.order, int(vec[0]))

	if s.failAfter > 0 && len(s.order) >= s.failAfter {
		return s.failWith
	}

	return nil
}

func (s *stubSink) Close() error { return nil }

func (s *stubSink) written() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, len(s.order))
	copy(out, s.order)
	return out
}

// jitterDetector never finds a pose but takes a varying amount of time
// per frame, forcing out-of-order completion in the parallel path
type jitterDetector struct {
	calls atomic.Uint64
}

func (d *jitterDetector) Detect(frame gocv.Mat) (*posemirror.Pose, error) {
	n := d.calls.Add(1)
	time.Sleep(time.Duration(n%4) * 2 * time.Millisecond)
	return nil, nil
}

func (d *jitterDetector) Close() error { return nil }

func testDriver(src FrameSource, sink Sink, workers int) (*Driver, *Metrics) {

	comp := compose.New(&jitterDetector{}, 150,
		render.DefaultStyle(), render.MirroredStyle())

	m := NewMetrics()

	cfg := Config{Workers: workers, Overlay: false, StatsInterval: 0}

	return NewDriver(src, comp, sink, m, cfg), m
}

func assertAscending(t *testing.T, order []int, want int) {
	t.Helper()

	if len(order) != want {
		t.Fatalf("sink received %d frames, want %d", len(order), want)
	}

	for i, v := range order {
		if v != i%256 {
			t.Fatalf("frame %d arrived with index %d, capture order broken", i, v)
		}
	}
}

func TestDriverSequentialEmitsAllFrames(t *testing.T) {

	src := &stubSource{frames: 8}
	sink := &stubSink{}

	d, m := testDriver(src, sink, 1)

	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	assertAscending(t, sink.written(), 8)

	if got := testutil.ToFloat64(m.FramesRead); got != 8 {
		t.Errorf("frames_read_total = %f, want 8", got)
	}

	if got := testutil.ToFloat64(m.FramesPassedThrough); got != 8 {
		t.Errorf("frames_passed_through_total = %f, want 8", got)
	}
}

func TestDriverParallelPreservesCaptureOrder(t *testing.T) {

	src := &stubSource{frames: 24}
	sink := &stubSink{}

	d, _ := testDriver(src, sink, 4)

	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	assertAscending(t, sink.written(), 24)
}

func TestDriverCancellation(t *testing.T) {

	for _, workers := range []int{1, 3} {

		src := &stubSource{live: true}
		sink := &stubSink{}

		d, _ := testDriver(src, sink, workers)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)

		done := make(chan error, 1)

		go func() {
			done <- d.Run(ctx)
		}()

		select {
		case err := <-done:
			if err != nil {
				t.Errorf("workers=%d: Run after cancellation = %v, want nil", workers, err)
			}
		case <-time.After(5 * time.Second):
			t.Errorf("workers=%d: Run did not stop after cancellation", workers)
		}

		cancel()
	}
}

func TestDriverDisplayClosedStopsCleanly(t *testing.T) {

	src := &stubSource{frames: 10}
	sink := &stubSink{failAfter: 3, failWith: ErrDisplayClosed}

	d, _ := testDriver(src, sink, 1)

	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run after display close = %v, want nil", err)
	}

	if got := len(sink.written()); got != 3 {
		t.Errorf("sink received %d frames after close, want 3", got)
	}
}

func TestDriverSinkFailureSurfaces(t *testing.T) {

	sinkErr := errors.New("encoder broke")

	src := &stubSource{frames: 10}
	sink := &stubSink{failAfter: 2, failWith: sinkErr}

	d, _ := testDriver(src, sink, 1)

	if err := d.Run(context.Background()); !errors.Is(err, sinkErr) {
		t.Errorf("Run = %v, want wrapped sink error", err)
	}
}
