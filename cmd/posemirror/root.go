package main

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/dancekit/go-posemirror/compose"
	"github.com/dancekit/go-posemirror/detect"
	"github.com/dancekit/go-posemirror/render"
	"github.com/dancekit/go-posemirror/stream"
	"github.com/spf13/cobra"
)

// Version is the application version.
const Version = "1.0.0"

// Options holds the validated configuration for one run.  The core
// packages never parse raw configuration; everything is normalized
// here before the stream opens.
type Options struct {
	Input       string
	Webcam      int
	Offset      int
	Radius      int
	Thickness   int
	Workers     int
	Listen      string
	DetectorURL string
	Overlay     bool
}

// Validate rejects configuration the pipeline cannot run with.  All
// failures here are fatal before any frame is processed.
func (o Options) Validate() error {

	if (o.Input == "") == (o.Webcam < 0) {
		return errors.New("exactly one of --input or --webcam must be given")
	}

	if o.Radius < 1 {
		return fmt.Errorf("point radius must be positive, got %d", o.Radius)
	}

	if o.Thickness < 1 {
		return fmt.Errorf("line thickness must be positive, got %d", o.Thickness)
	}

	if o.Workers < 1 {
		return fmt.Errorf("worker count must be at least 1, got %d", o.Workers)
	}

	return nil
}

var opts = Options{}

var rootCmd = &cobra.Command{
	Use:   "posemirror",
	Short: "Mirrored pose overlay for dance self-assessment",
	Long: `posemirror detects body pose landmarks in a video stream and draws the
skeleton alongside its horizontally mirrored twin on one canvas, so a
solo dancer can compare their movement against its mirror image.`,
	Version: Version,
	RunE:    run,
	// the pipeline reports its own errors; cobra only prints usage for
	// flag mistakes
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().StringVar(&opts.Input, "input", "", "Path to video file")
	rootCmd.Flags().IntVar(&opts.Webcam, "webcam", -1, "Webcam device index")
	rootCmd.MarkFlagsMutuallyExclusive("input", "webcam")

	rootCmd.Flags().IntVar(&opts.Offset, "offset", 150, "Horizontal offset for mirrored pose in pixels")
	rootCmd.Flags().IntVar(&opts.Radius, "radius", 3, "Radius of landmark circles in pixels")
	rootCmd.Flags().IntVar(&opts.Thickness, "thickness", 2, "Thickness of connection lines in pixels")
	rootCmd.Flags().IntVar(&opts.Workers, "workers", 1, "Frames composited concurrently")
	rootCmd.Flags().StringVar(&opts.Listen, "listen", "", "Serve MJPEG stream on this address instead of a window, eg: :8080")
	rootCmd.Flags().StringVar(&opts.DetectorURL, "detector", "", "Pose landmark service URL (default http://127.0.0.1:9091)")
	rootCmd.Flags().BoolVar(&opts.Overlay, "overlay", true, "Draw the FPS/status overlay")
}

func run(cmd *cobra.Command, args []string) error {

	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// detector client
	detCfg := detect.DefaultConfig()

	if opts.DetectorURL != "" {
		detCfg.BaseURL = opts.DetectorURL
	}

	detector, err := detect.NewClient(detCfg)

	if err != nil {
		return err
	}

	defer detector.Close()

	// video source; open failures are fatal here, never per frame
	var source *stream.Source

	if opts.Input != "" {
		source, err = stream.OpenFile(opts.Input)
	} else {
		source, err = stream.OpenDevice(opts.Webcam)
	}

	if err != nil {
		return err
	}

	defer source.Close()

	log.Printf("Streaming from %s", source.Desc())

	// both skeletons share the configured geometry but keep
	// distinguishable colors
	original := render.DefaultStyle()
	original.PointRadius = opts.Radius
	original.LineThickness = opts.Thickness

	mirrored := render.MirroredStyle()
	mirrored.PointRadius = opts.Radius
	mirrored.LineThickness = opts.Thickness

	comp := compose.New(detector, opts.Offset, original, mirrored)

	metrics := stream.NewMetrics()

	var sink stream.Sink

	if opts.Listen != "" {
		mjpeg := stream.NewMJPEGSink(opts.Listen, metrics)

		go func() {
			if err := mjpeg.ListenAndServe(); err != nil {
				log.Printf("MJPEG server error: %v", err)
			}
		}()

		log.Printf("Serving MJPEG stream on http://%s/stream", opts.Listen)
		sink = mjpeg
	} else {
		sink = stream.NewWindowSink("Pose Mirror")
	}

	defer sink.Close()

	driver := stream.NewDriver(source, comp, sink, metrics, stream.Config{
		Workers:       opts.Workers,
		Overlay:       opts.Overlay,
		StatsInterval: 10 * time.Second,
	})

	return driver.Run(cmd.Context())
}
