// File: internal/perception/adapters_test.go
package perception

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPCameraCapture(t *testing.T) {
	img := []byte{0xff, 0xd8, 0x01, 0x02}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/frame", r.URL.Path)
		require.Equal(t, "2", r.URL.Query().Get("index"))
		resp := frameResponse{
			Width:  640,
			Height: 480,
			Image:  base64.StdEncoding.EncodeToString(img),
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	cam := NewHTTPCamera(srv.URL, 2, time.Second)
	require.NoError(t, cam.Start(context.Background()))

	frame, err := cam.Capture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 640, frame.Width)
	assert.Equal(t, 480, frame.Height)
	assert.Equal(t, img, frame.Image)
}

func TestHTTPCameraUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such device", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	cam := NewHTTPCamera(srv.URL, 0, time.Second)

	_, err := cam.Capture(context.Background())
	require.ErrorIs(t, err, ErrCameraUnavailable)

	assert.Error(t, cam.Start(context.Background()), "start must probe the backend")
}

func TestHTTPDetectorDetect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/detect", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var req detectRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 0.5, req.MinConfidence)
		assert.NotEmpty(t, req.Image)

		resp := detectResponse{Detections: []RawDetection{
			{Class: "bottle", Confidence: 0.87, X1: 10, Y1: 20, X2: 110, Y2: 220},
		}}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	det := NewHTTPDetector(srv.URL, 0.5, time.Second)
	out, err := det.Detect(context.Background(), Frame{Width: 640, Height: 480, Image: []byte{1, 2, 3}})

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "bottle", out[0].Class)
	assert.Equal(t, 0.87, out[0].Confidence)
}

func TestHTTPDetectorServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	det := NewHTTPDetector(srv.URL, 0.5, time.Second)
	_, err := det.Detect(context.Background(), Frame{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}
