package stream

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the pipeline's prometheus collectors.  All collectors
// live on a private registry so tests and embedding applications do not
// fight over the global one.
type Metrics struct {
	registry *prometheus.Registry

	FramesRead          prometheus.Counter
	FramesComposited    prometheus.Counter
	FramesPassedThrough prometheus.Counter
	DetectorErrors      prometheus.Counter
	FrameLatency        prometheus.Histogram
	StreamClients       prometheus.Gauge
}

// NewMetrics creates a Metrics instance with all collectors registered.
func NewMetrics() *Metrics {

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		FramesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "posemirror",
			Name:      "frames_read_total",
			Help:      "Frames read from the video source",
		}),
		FramesComposited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "posemirror",
			Name:      "frames_composited_total",
			Help:      "Frames with a detected pose and mirrored overlay drawn",
		}),
		FramesPassedThrough: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "posemirror",
			Name:      "frames_passed_through_total",
			Help:      "Frames emitted unmodified because no pose was detected",
		}),
		DetectorErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "posemirror",
			Name:      "detector_errors_total",
			Help:      "Detector failures absorbed as pass-through frames",
		}),
		FrameLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "posemirror",
			Name:      "frame_latency_seconds",
			Help:      "Time from frame read to sink write",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		}),
		StreamClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "posemirror",
			Name:      "stream_clients",
			Help:      "Connected MJPEG stream clients",
		}),
	}

	m.registry.MustRegister(m.FramesRead, m.FramesComposited,
		m.FramesPassedThrough, m.DetectorErrors, m.FrameLatency,
		m.StreamClients)

	return m
}

// Handler returns the HTTP handler exposing the registered collectors.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for callers that aggregate
// collectors from several components.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
