// Package detect provides a Detector implementation backed by an
// external pose landmark service over HTTP.  The service receives one
// JPEG encoded frame per request and answers with the detected
// landmarks as JSON, or a null pose when no person was found.
package detect

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/dancekit/go-posemirror"
	"gocv.io/x/gocv"
)

// Config holds configuration options for the landmark service client.
type Config struct {
	// BaseURL is the root URL of the landmark service,
	// eg: http://127.0.0.1:9091
	BaseURL string

	// MinDetectionConfidence is the minimum confidence for the person
	// detection to be considered successful (0.0-1.0)
	MinDetectionConfidence float64

	// MinTrackingConfidence is the minimum confidence for the landmarks
	// to be considered tracked successfully (0.0-1.0)
	MinTrackingConfidence float64

	// Timeout bounds a single detection request.  The detector may be
	// slow, but a live stream cannot wait forever on one frame.
	Timeout time.Duration
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		BaseURL:                "http://127.0.0.1:9091",
		MinDetectionConfidence: 0.5,
		MinTrackingConfidence:  0.5,
		Timeout:                2 * time.Second,
	}
}

// Client implements posemirror.Detector against a landmark service.
type Client struct {
	cfg       Config
	detectURL string
	client    *http.Client
}

// landmark and pose mirror the service's JSON wire format
type wireLandmark struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Visibility float64 `json:"visibility"`
}

type wirePose struct {
	Landmarks []wireLandmark `json:"landmarks"`
}

type detectResponse struct {
	Pose *wirePose `json:"pose"`
}

// NewClient returns a Client for the landmark service at cfg.BaseURL.
func NewClient(cfg Config) (*Client, error) {

	base, err := url.Parse(cfg.BaseURL)

	if err != nil {
		return nil, fmt.Errorf("invalid landmark service URL %q: %w", cfg.BaseURL, err)
	}

	// confidence thresholds ride along as query parameters so the
	// service can configure its model per client
	q := url.Values{}
	q.Set("min_detection_confidence", fmt.Sprintf("%.2f", cfg.MinDetectionConfidence))
	q.Set("min_tracking_confidence", fmt.Sprintf("%.2f", cfg.MinTrackingConfidence))

	detectURL := base.JoinPath("detect")
	detectURL.RawQuery = q.Encode()

	return &Client{
		cfg:       cfg,
		detectURL: detectURL.String(),
		client:    &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Detect encodes the frame as JPEG, posts it to the landmark service
// and decodes the response into a Pose.  A null pose in the response is
// the normal no-detection outcome and returns (nil, nil).
func (c *Client) Detect(frame gocv.Mat) (*posemirror.Pose, error) {

	buf, err := gocv.IMEncode(".jpg", frame)

	if err != nil {
		return nil, fmt.Errorf("error encoding frame: %w", err)
	}

	defer buf.Close()

	resp, err := c.client.Post(c.detectURL, "image/jpeg",
		bytes.NewReader(buf.GetBytes()))

	if err != nil {
		return nil, fmt.Errorf("landmark service request failed: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("landmark service returned status %d", resp.StatusCode)
	}

	var dr detectResponse

	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return nil, fmt.Errorf("error decoding landmark response: %w", err)
	}

	if dr.Pose == nil {
		// no pose in this frame
		return nil, nil
	}

	if len(dr.Pose.Landmarks) != posemirror.NumLandmarks {
		return nil, fmt.Errorf("landmark service returned %d landmarks, want %d",
			len(dr.Pose.Landmarks), posemirror.NumLandmarks)
	}

	pose := &posemirror.Pose{}

	for i, lm := range dr.Pose.Landmarks {
		pose[i] = posemirror.Landmark{
			X:          lm.X,
			Y:          lm.Y,
			Z:          lm.Z,
			Visibility: lm.Visibility,
		}
	}

	return pose, nil
}

// Close releases idle connections held by the client.
func (c *Client) Close() error {
	c.client.CloseIdleConnections()
	return nil
}
