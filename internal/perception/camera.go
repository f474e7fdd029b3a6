// File: internal/perception/camera.go
package perception

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	json "github.com/json-iterator/go"
)

// ErrCameraUnavailable is returned when a frame cannot be captured. The
// service layer converts it into an unavailable-status envelope.
var ErrCameraUnavailable = errors.New("camera not available")

// Frame is one captured camera image. The pixel data is opaque to this
// package; it is passed through to the detector untouched.
type Frame struct {
	Width  int
	Height int
	Image  []byte
}

// Camera abstracts the frame source. The production implementation talks to
// an external capture daemon; tests substitute a fixed-frame double.
type Camera interface {
	Start(ctx context.Context) error
	Stop()
	Capture(ctx context.Context) (Frame, error)
}

// HTTPCamera captures frames from the vision backend's snapshot endpoint.
type HTTPCamera struct {
	baseURL string
	index   int
	client  *http.Client
	started bool
}

// NewHTTPCamera builds a camera adapter for the given backend and device index.
func NewHTTPCamera(baseURL string, index int, timeout time.Duration) *HTTPCamera {
	return &HTTPCamera{
		baseURL: baseURL,
		index:   index,
		client:  &http.Client{Timeout: timeout},
	}
}

type frameResponse struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Image  string `json:"image"` // base64 encoded
}

// Start probes the backend so a dead camera fails fast at startup.
func (c *HTTPCamera) Start(ctx context.Context) error {
	if _, err := c.Capture(ctx); err != nil {
		return err
	}
	c.started = true
	return nil
}

// Stop releases the handle. The HTTP backend holds no per-client state, so
// this only clears the local flag.
func (c *HTTPCamera) Stop() { c.started = false }

// Capture fetches a single frame snapshot.
func (c *HTTPCamera) Capture(ctx context.Context) (Frame, error) {
	endpoint := fmt.Sprintf("%s/frame?%s", c.baseURL,
		url.Values{"index": []string{strconv.Itoa(c.index)}}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Frame{}, fmt.Errorf("%w: %v", ErrCameraUnavailable, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Frame{}, fmt.Errorf("%w: %v", ErrCameraUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Frame{}, fmt.Errorf("%w: backend returned %s", ErrCameraUnavailable, resp.Status)
	}

	var fr frameResponse
	if err := json.NewDecoder(resp.Body).Decode(&fr); err != nil {
		return Frame{}, fmt.Errorf("%w: malformed frame response: %v", ErrCameraUnavailable, err)
	}

	img, err := base64.StdEncoding.DecodeString(fr.Image)
	if err != nil {
		return Frame{}, fmt.Errorf("%w: malformed frame payload: %v", ErrCameraUnavailable, err)
	}

	return Frame{Width: fr.Width, Height: fr.Height, Image: img}, nil
}
