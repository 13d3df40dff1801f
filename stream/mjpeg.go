package stream

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"log"
	"net/http"
	"sync"
	"time"

	"gocv.io/x/gocv"
	"golang.org/x/image/draw"
)

// MJPEGSink streams composited frames to browsers as a
// multipart/x-mixed-replace MJPEG feed.  It also serves a scaled
// snapshot of the latest frame and, when metrics are attached, a
// prometheus endpoint.
type MJPEGSink struct {
	mu sync.Mutex
	// latest encoded frame, kept for snapshots and late joining clients
	frame   []byte
	clients map[chan []byte]struct{}

	server  *http.Server
	metrics *Metrics
}

// NewMJPEGSink returns a sink serving on addr.  Call ListenAndServe to
// start accepting clients; metrics may be nil.
func NewMJPEGSink(addr string, metrics *Metrics) *MJPEGSink {

	s := &MJPEGSink{
		clients: make(map[chan []byte]struct{}),
		metrics: metrics,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/stream", s.handleStream)
	mux.HandleFunc("/snapshot", s.handleSnapshot)

	if metrics != nil {
		mux.Handle("/metrics", metrics.Handler())
	}

	s.server = &http.Server{Addr: addr, Handler: mux}

	return s
}

// ListenAndServe blocks serving HTTP clients until Close is called.
func (s *MJPEGSink) ListenAndServe() error {

	err := s.server.ListenAndServe()

	if err == http.ErrServerClosed {
		return nil
	}

	return err
}

// Write encodes the frame as JPEG and fans it out to all connected
// clients.  A client that cannot keep up skips frames rather than
// stalling the pipeline.
func (s *MJPEGSink) Write(img gocv.Mat) error {

	buf, err := gocv.IMEncode(".jpg", img)

	if err != nil {
		return fmt.Errorf("error encoding frame: %w", err)
	}

	defer buf.Close()

	// the native buffer dies with this call, clients need their own copy
	data := make([]byte, len(buf.GetBytes()))
	copy(data, buf.GetBytes())

	s.mu.Lock()
	s.frame = data

	for c := range s.clients {
		select {
		case c <- data:
		default:
			// slow client, drop this frame for it
		}
	}
	s.mu.Unlock()

	return nil
}

// Close stops the HTTP server and disconnects all clients.
func (s *MJPEGSink) Close() error {

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}

func (s *MJPEGSink) subscribe() chan []byte {

	c := make(chan []byte, 1)

	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.StreamClients.Inc()
	}

	return c
}

func (s *MJPEGSink) unsubscribe(c chan []byte) {

	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.StreamClients.Dec()
	}
}

// handleStream is the HTTP handler function used to stream video frames
// to the browser
func (s *MJPEGSink) handleStream(w http.ResponseWriter, r *http.Request) {

	log.Printf("New stream client connection established\n")

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")

	c := s.subscribe()
	defer s.unsubscribe(c)

	flusher, _ := w.(http.Flusher)

	for {
		select {
		case <-r.Context().Done():
			log.Printf("Stream client disconnected\n")
			return

		case frame := <-c:
			w.Write([]byte("--frame\r\n"))
			w.Write([]byte("Content-Type: image/jpeg\r\n\r\n"))
			w.Write(frame)
			w.Write([]byte("\r\n"))

			if flusher != nil {
				flusher.Flush()
			}
		}
	}
}

// handleSnapshot serves the latest frame as a single JPEG scaled to
// half size, handy as a lightweight preview
func (s *MJPEGSink) handleSnapshot(w http.ResponseWriter, r *http.Request) {

	s.mu.Lock()
	frame := s.frame
	s.mu.Unlock()

	if frame == nil {
		http.Error(w, "no frame yet", http.StatusServiceUnavailable)
		return
	}

	src, err := jpeg.Decode(bytes.NewReader(frame))

	if err != nil {
		http.Error(w, "decode failed", http.StatusInternalServerError)
		return
	}

	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()/2, b.Dy()/2))

	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	w.Header().Set("Content-Type", "image/jpeg")

	if err := jpeg.Encode(w, dst, &jpeg.Options{Quality: 85}); err != nil {
		log.Printf("Error writing snapshot: %v", err)
	}
}
