// File: internal/config/config_test.go
package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	// Verify a few key defaults to ensure the mechanism works.
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "voxarm", cfg.Logger.ServiceName)
	assert.Equal(t, 5*time.Second, cfg.Speech.ListenTimeout)
	assert.Equal(t, 0.7, cfg.Speech.ConfidenceThreshold)
	assert.True(t, cfg.Speech.UseNLU)
	assert.Equal(t, "gemini-2.5-flash", cfg.Speech.Model)
	assert.Empty(t, cfg.Speech.ListenURL)
	assert.Equal(t, "http://127.0.0.1:8601", cfg.Vision.CameraURL)
	assert.Equal(t, 0.5, cfg.Vision.ConfidenceThreshold)
	assert.Equal(t, 640, cfg.Vision.FrameWidth)
	assert.Equal(t, 480, cfg.Vision.FrameHeight)
	assert.True(t, cfg.Motor.SimulationMode)
	assert.Equal(t, 500*time.Millisecond, cfg.Motor.MoveDelay)
	assert.Equal(t, 10, cfg.Learning.SaveFrequency)
}

func TestConfigValidation(t *testing.T) {
	cfg := NewDefaultConfig()
	require.NoError(t, cfg.Validate(), "defaults must validate")

	t.Run("speech threshold out of range", func(t *testing.T) {
		bad := *cfg
		bad.Speech.ConfidenceThreshold = 1.5
		err := bad.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "speech.confidence_threshold")
	})

	t.Run("zero listen timeout", func(t *testing.T) {
		bad := *cfg
		bad.Speech.ListenTimeout = 0
		err := bad.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "speech.listen_timeout")
	})

	t.Run("invalid frame size", func(t *testing.T) {
		bad := *cfg
		bad.Vision.FrameWidth = 0
		err := bad.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "vision.frame_width")
	})

	t.Run("zero save frequency", func(t *testing.T) {
		bad := *cfg
		bad.Learning.SaveFrequency = 0
		err := bad.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "learning.save_frequency")
	})
}

func TestConfigUnmarshalFromYAML(t *testing.T) {
	yamlCfg := []byte(`
logger:
  level: debug
  format: json
speech:
  listen_timeout: 7s
  confidence_threshold: 0.9
  use_nlu: false
vision:
  detector_url: http://detector:9000
  graspable_classes: [bottle, mug]
motor:
  move_delay: 1ms
learning:
  save_frequency: 3
`)

	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(bytes.NewReader(yamlCfg)))

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, 7*time.Second, cfg.Speech.ListenTimeout)
	assert.Equal(t, 0.9, cfg.Speech.ConfidenceThreshold)
	assert.False(t, cfg.Speech.UseNLU)
	assert.Equal(t, "http://detector:9000", cfg.Vision.DetectorURL)
	assert.Equal(t, []string{"bottle", "mug"}, cfg.Vision.GraspableClasses)
	assert.Equal(t, time.Millisecond, cfg.Motor.MoveDelay)
	assert.Equal(t, 3, cfg.Learning.SaveFrequency)

	// Untouched keys keep their defaults.
	assert.Equal(t, 0.5, cfg.Vision.ConfidenceThreshold)
	assert.Equal(t, 0, cfg.Vision.CameraIndex)
}

func TestLedgerPath(t *testing.T) {
	cfg := NewDefaultConfig()

	t.Run("explicit path wins", func(t *testing.T) {
		cfg.Learning.LogFile = "/tmp/voxarm/actions.json"
		p, err := cfg.LedgerPath()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/voxarm/actions.json", p)
	})

	t.Run("defaults under home", func(t *testing.T) {
		cfg.Learning.LogFile = ""
		p, err := cfg.LedgerPath()
		require.NoError(t, err)
		assert.Contains(t, p, ".voxarm")
		assert.Contains(t, p, "actions.json")
	})
}
