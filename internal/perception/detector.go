// File: internal/perception/detector.go
package perception

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	json "github.com/json-iterator/go"
)

// RawDetection is one (class, confidence, box) tuple as reported by the
// external object detector, before graspability and position annotation.
type RawDetection struct {
	Class      string  `json:"class_name"`
	Confidence float64 `json:"confidence"`
	X1         int     `json:"x1"`
	Y1         int     `json:"y1"`
	X2         int     `json:"x2"`
	Y2         int     `json:"y2"`
}

// Detector abstracts the pretrained object-detection model. It is an opaque
// external collaborator; only its request/response contract matters here.
type Detector interface {
	Detect(ctx context.Context, frame Frame) ([]RawDetection, error)
}

// HTTPDetector runs inference against an external detection server.
type HTTPDetector struct {
	baseURL       string
	minConfidence float64
	client        *http.Client
}

// NewHTTPDetector builds a detector adapter. Detections below minConfidence
// are filtered server-side via the request payload.
func NewHTTPDetector(baseURL string, minConfidence float64, timeout time.Duration) *HTTPDetector {
	return &HTTPDetector{
		baseURL:       baseURL,
		minConfidence: minConfidence,
		client:        &http.Client{Timeout: timeout},
	}
}

type detectRequest struct {
	Image         string  `json:"image"` // base64 encoded
	MinConfidence float64 `json:"min_confidence"`
}

type detectResponse struct {
	Detections []RawDetection `json:"detections"`
}

// Detect submits one frame for inference and returns the raw detections in
// the order the detector reported them.
func (d *HTTPDetector) Detect(ctx context.Context, frame Frame) ([]RawDetection, error) {
	body, err := json.Marshal(detectRequest{
		Image:         base64.StdEncoding.EncodeToString(frame.Image),
		MinConfidence: d.minConfidence,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode detect request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/detect", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build detect request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("detector call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("detector returned %s", resp.Status)
	}

	var dr detectResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return nil, fmt.Errorf("malformed detector response: %w", err)
	}
	return dr.Detections, nil
}
