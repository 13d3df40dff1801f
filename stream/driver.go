package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/dancekit/go-posemirror/compose"
	"github.com/dancekit/go-posemirror/render"
	"gocv.io/x/gocv"
)

// Config holds the driver's pipeline settings, fixed for the session.
type Config struct {
	// Workers is the number of frames composited concurrently.  1 runs
	// the pipeline frame synchronous; higher values bound the in-flight
	// window and resequence output to capture order before the sink.
	Workers int

	// Overlay draws the FPS/status line onto emitted frames
	Overlay bool

	// StatsInterval is how often cadence statistics are logged; zero
	// disables the log line
	StatsInterval time.Duration
}

// DefaultConfig returns the default driver settings.
func DefaultConfig() Config {
	return Config{
		Workers:       1,
		Overlay:       true,
		StatsInterval: 10 * time.Second,
	}
}

// Driver runs the per-frame pipeline for one video stream: read frame,
// composite, write to sink.  No state crosses frames apart from the
// cadence tracker and the emitted-frame count; each frame is processed
// independently.
type Driver struct {
	source  FrameSource
	comp    *compose.Compositor
	sink    Sink
	metrics *Metrics
	cfg     Config
	tracker *Tracker
	font    render.Font
	emitted uint64
}

// NewDriver wires a source, compositor and sink into a pipeline.  The
// caller retains ownership of source and sink and closes them after Run
// returns; metrics may be nil.
func NewDriver(source FrameSource, comp *compose.Compositor, sink Sink,
	metrics *Metrics, cfg Config) *Driver {

	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	if metrics == nil {
		metrics = NewMetrics()
	}

	return &Driver{
		source:  source,
		comp:    comp,
		sink:    sink,
		metrics: metrics,
		cfg:     cfg,
		tracker: NewTracker(90),
		font:    render.DefaultFont(),
	}
}

// Run processes the stream until the source ends, the display is
// closed, or ctx is cancelled.  Cancellation is cooperative and happens
// at frame boundaries, never mid-frame, so a partially rendered buffer
// is never emitted.  A clean end of stream returns nil.
func (d *Driver) Run(ctx context.Context) error {

	if d.cfg.Workers == 1 {
		return d.runSequential(ctx)
	}

	return d.runParallel(ctx)
}

// frameJob is one captured frame queued for compositing
type frameJob struct {
	seq    uint64
	img    gocv.Mat
	readAt time.Time
}

func (d *Driver) runSequential(ctx context.Context) error {

	lastStats := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		img := gocv.NewMat()
		readAt := time.Now()

		if err := d.source.Read(&img); err != nil {
			img.Close()

			if errors.Is(err, io.EOF) {
				return nil
			}

			return fmt.Errorf("error reading frame: %w", err)
		}

		d.metrics.FramesRead.Inc()

		out, detected, err := d.comp.Composite(img)
		img.Close()

		if err != nil {
			// detector outage must not kill a live display
			d.metrics.DetectorErrors.Inc()
			log.Printf("Detector error, passing frame through: %v", err)
		}

		werr := d.emit(&out, detected, readAt)
		out.Close()

		if werr != nil {
			if errors.Is(werr, ErrDisplayClosed) {
				return nil
			}

			return fmt.Errorf("error writing frame to sink: %w", werr)
		}

		lastStats = d.maybeLogStats(lastStats)
	}
}

func (d *Driver) runParallel(ctx context.Context) error {

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan frameJob)
	results := make(chan frameResult, d.cfg.Workers)

	// compositing workers; each frame is independent and stateless so
	// they need no coordination beyond the job queue
	var wg sync.WaitGroup

	for i := 0; i < d.cfg.Workers; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for job := range jobs {
				out, detected, err := d.comp.Composite(job.img)
				job.img.Close()

				results <- frameResult{
					seq:      job.seq,
					img:      out,
					detected: detected,
					err:      err,
					readAt:   job.readAt,
				}
			}
		}()
	}

	// reader feeds the job queue until end of stream or cancellation
	readErr := make(chan error, 1)

	go func() {
		defer close(jobs)

		var seq uint64

		for {
			select {
			case <-ctx.Done():
				readErr <- nil
				return
			default:
			}

			img := gocv.NewMat()
			readAt := time.Now()

			if err := d.source.Read(&img); err != nil {
				img.Close()

				if errors.Is(err, io.EOF) {
					readErr <- nil
				} else {
					readErr <- fmt.Errorf("error reading frame: %w", err)
				}

				return
			}

			d.metrics.FramesRead.Inc()

			select {
			case jobs <- frameJob{seq: seq, img: img, readAt: readAt}:
				seq++
			case <-ctx.Done():
				img.Close()
				readErr <- nil
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	// collector resequences completed frames to capture order and
	// drives the sink
	buf := newReorderBuffer()
	lastStats := time.Now()
	stopped := false

	var runErr error

	for res := range results {
		for _, r := range buf.add(res) {

			if stopped {
				r.img.Close()
				continue
			}

			if r.err != nil {
				d.metrics.DetectorErrors.Inc()
				log.Printf("Detector error, passing frame through: %v", r.err)
			}

			werr := d.emit(&r.img, r.detected, r.readAt)
			r.img.Close()

			if werr != nil {
				// stop feeding frames but keep draining the pipeline so
				// worker buffers get released
				stopped = true
				cancel()

				if !errors.Is(werr, ErrDisplayClosed) {
					runErr = fmt.Errorf("error writing frame to sink: %w", werr)
				}
			}

			lastStats = d.maybeLogStats(lastStats)
		}
	}

	for _, r := range buf.flush() {
		r.img.Close()
	}

	if rerr := <-readErr; runErr == nil {
		runErr = rerr
	}

	return runErr
}

// emit finalizes one composited frame: cadence tracking, metrics, the
// optional status overlay and the sink write
func (d *Driver) emit(img *gocv.Mat, detected bool, readAt time.Time) error {

	now := time.Now()

	d.emitted++
	d.tracker.Mark(now)
	d.metrics.FrameLatency.Observe(now.Sub(readAt).Seconds())

	if detected {
		d.metrics.FramesComposited.Inc()
	} else {
		d.metrics.FramesPassedThrough.Inc()
	}

	if d.cfg.Overlay {
		s := d.tracker.Snapshot()

		text := fmt.Sprintf("Frame %d  %.1f FPS", d.emitted, s.Mean)

		if !detected {
			text += "  no pose"
		}

		render.Status(img, text, d.font)
	}

	return d.sink.Write(*img)
}

func (d *Driver) maybeLogStats(last time.Time) time.Time {

	if d.cfg.StatsInterval <= 0 || time.Since(last) < d.cfg.StatsInterval {
		return last
	}

	s := d.tracker.Snapshot()

	log.Printf("FPS mean=%.1f stddev=%.1f min=%.1f max=%.1f over %d frames",
		s.Mean, s.StdDev, s.Min, s.Max, s.Frames)

	return time.Now()
}
