// File: cmd/cmd_test.go
package cmd

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxarm/voxarm-cli/internal/observability"
)

// resetGlobals clears viper and logger state that PersistentPreRunE touches.
func resetGlobals(t *testing.T) {
	t.Helper()
	viper.Reset()
	observability.ResetForTest()
	t.Cleanup(func() {
		viper.Reset()
		observability.ResetForTest()
	})
}

// newVisionBackend serves one fixed frame and one fixed detection, enough to
// drive a full scan through the real HTTP adapters.
func newVisionBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/frame", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"width":640,"height":480,"image":%q}`,
			base64.StdEncoding.EncodeToString([]byte("frame-bytes")))
	})
	mux.HandleFunc("/detect", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"detections":[
			{"class_name":"bottle","confidence":0.92,"x1":100,"y1":120,"x2":220,"y2":360},
			{"class_name":"tv","confidence":0.85,"x1":0,"y1":0,"x2":300,"y2":200}
		]}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommandSubcommands(t *testing.T) {
	root := NewRootCommand()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "run")
	assert.Contains(t, names, "scan")
	assert.Contains(t, names, "report")
	assert.Contains(t, names, "version")
}

func TestVersionFlag(t *testing.T) {
	out, err := execute(t, "", "--version")
	require.NoError(t, err)
	assert.Equal(t, Version, strings.TrimSpace(out))
}

func TestConfirmKeywordOnly(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"lowercase y", "y\n", true},
		{"yes", "yes\n", true},
		{"uppercase", "YES\n", true},
		{"no", "n\n", false},
		{"empty line", "\n", false},
		{"eof", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			got := confirmKeywordOnly(strings.NewReader(tc.input), &out)
			assert.Equal(t, tc.want, got)
			assert.Contains(t, out.String(), "Continue?")
		})
	}
}

func TestScanCommandAgainstBackend(t *testing.T) {
	resetGlobals(t)
	srv := newVisionBackend(t)
	t.Setenv("VOXARM_VISION_CAMERA_URL", srv.URL)
	t.Setenv("VOXARM_VISION_DETECTOR_URL", srv.URL)

	out, err := execute(t, "", "scan")
	require.NoError(t, err)

	assert.Contains(t, out, "objects detected: 2")
	assert.Contains(t, out, "graspable:        1")
	assert.Contains(t, out, "bottle")
}

func TestScanCommandFailsWithoutBackend(t *testing.T) {
	resetGlobals(t)
	t.Setenv("VOXARM_VISION_CAMERA_URL", "http://127.0.0.1:1")
	t.Setenv("VOXARM_VISION_DETECTOR_URL", "http://127.0.0.1:1")

	_, err := execute(t, "", "scan")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "camera not available")
}

func TestRunCommandScriptedSession(t *testing.T) {
	resetGlobals(t)
	srv := newVisionBackend(t)
	ledgerPath := filepath.Join(t.TempDir(), "actions.json")
	t.Setenv("VOXARM_VISION_CAMERA_URL", srv.URL)
	t.Setenv("VOXARM_VISION_DETECTOR_URL", srv.URL)
	t.Setenv("VOXARM_LEARNING_LOG_FILE", ledgerPath)
	t.Setenv("VOXARM_MOTOR_MOVE_DELAY", "0s")
	t.Setenv("VOXARM_MOTOR_GRIP_DELAY", "0s")

	out, err := execute(t, "",
		"run", "--yes",
		"--text", "show me the scene",
		"--text", "pick up the bottle",
		"--text", "stop")
	require.NoError(t, err)

	assert.Contains(t, out, "voice-controlled robotic grasping")
	assert.Contains(t, out, "Scan results")
	assert.Contains(t, out, "pick bottle")
	assert.Contains(t, out, "Stopping system")
	assert.Contains(t, out, "Performance statistics")
	assert.Contains(t, out, "total actions: 1")
}

func TestRunCommandEndsWhenTranscriptExhausted(t *testing.T) {
	// No trailing stop command: the loop ends when the transcript runs out.
	resetGlobals(t)
	srv := newVisionBackend(t)
	t.Setenv("VOXARM_VISION_CAMERA_URL", srv.URL)
	t.Setenv("VOXARM_VISION_DETECTOR_URL", srv.URL)
	t.Setenv("VOXARM_LEARNING_LOG_FILE", filepath.Join(t.TempDir(), "actions.json"))
	t.Setenv("VOXARM_MOTOR_MOVE_DELAY", "0s")
	t.Setenv("VOXARM_MOTOR_GRIP_DELAY", "0s")

	out, err := execute(t, "",
		"run", "--yes",
		"--text", "show me the scene")
	require.NoError(t, err)

	assert.Contains(t, out, "Scan results")
	assert.Contains(t, out, "Stopping system")
	assert.Contains(t, out, "Performance statistics")
}

func TestRunCommandAbortsWithoutConfirmation(t *testing.T) {
	resetGlobals(t)

	_, err := execute(t, "n\n", "run", "--text", "stop")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no NLU API key")
}

func TestReportCommandOnEmptyLedger(t *testing.T) {
	resetGlobals(t)
	t.Setenv("VOXARM_LEARNING_LOG_FILE", filepath.Join(t.TempDir(), "actions.json"))

	out, err := execute(t, "", "report")
	require.NoError(t, err)
	assert.Contains(t, out, "total actions: 0")
}

func TestReportCommandJSON(t *testing.T) {
	resetGlobals(t)
	t.Setenv("VOXARM_LEARNING_LOG_FILE", filepath.Join(t.TempDir(), "actions.json"))

	out, err := execute(t, "", "report", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"overall_performance"`)
	assert.Contains(t, out, `"total_actions": 0`)
}
