// File: internal/config/config.go
package config

import (
	"fmt"
	"path/filepath"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config holds the entire application configuration, one section per agent
// plus the ambient logger settings.
type Config struct {
	Logger   LoggerConfig   `mapstructure:"logger" yaml:"logger"`
	Speech   SpeechConfig   `mapstructure:"speech" yaml:"speech"`
	Vision   VisionConfig   `mapstructure:"vision" yaml:"vision"`
	Motor    MotorConfig    `mapstructure:"motor" yaml:"motor"`
	Learning LearningConfig `mapstructure:"learning" yaml:"learning"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// SpeechConfig tunes the intent service: audio capture, the keyword stage and
// the Gemini fallback.
type SpeechConfig struct {
	// APIKey enables the Gemini NLU fallback. Empty means keyword-only mode.
	APIKey string `mapstructure:"api_key" yaml:"-"`
	Model  string `mapstructure:"model" yaml:"model"`
	// ListenURL points at the speech-capture service. Empty reads commands
	// from the terminal instead.
	ListenURL           string        `mapstructure:"listen_url" yaml:"listen_url"`
	ListenTimeout       time.Duration `mapstructure:"listen_timeout" yaml:"listen_timeout"`
	ConfidenceThreshold float64       `mapstructure:"confidence_threshold" yaml:"confidence_threshold"`
	UseNLU              bool          `mapstructure:"use_nlu" yaml:"use_nlu"`
	// RequestsPerMinute caps calls to the NLU service.
	RequestsPerMinute float64 `mapstructure:"requests_per_minute" yaml:"requests_per_minute"`
}

// VisionConfig tunes the perception service and its detector adapter.
type VisionConfig struct {
	CameraURL           string        `mapstructure:"camera_url" yaml:"camera_url"`
	DetectorURL         string        `mapstructure:"detector_url" yaml:"detector_url"`
	ConfidenceThreshold float64       `mapstructure:"confidence_threshold" yaml:"confidence_threshold"`
	CameraIndex         int           `mapstructure:"camera_index" yaml:"camera_index"`
	FrameWidth          int           `mapstructure:"frame_width" yaml:"frame_width"`
	FrameHeight         int           `mapstructure:"frame_height" yaml:"frame_height"`
	RequestTimeout      time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
	// GraspableClasses overrides the built-in allow-set when non-empty.
	GraspableClasses []string `mapstructure:"graspable_classes" yaml:"graspable_classes"`
}

// MotorConfig tunes the actuation service.
type MotorConfig struct {
	SimulationMode bool `mapstructure:"simulation_mode" yaml:"simulation_mode"`
	// MoveDelay and GripDelay are the fixed pauses standing in for real
	// motion time. Tests set them to zero.
	MoveDelay time.Duration `mapstructure:"move_delay" yaml:"move_delay"`
	GripDelay time.Duration `mapstructure:"grip_delay" yaml:"grip_delay"`
}

// LearningConfig tunes the ledger service.
type LearningConfig struct {
	// LogFile is the path of the persisted JSON ledger. Empty resolves to
	// <home>/.voxarm/logs/actions.json.
	LogFile string `mapstructure:"log_file" yaml:"log_file"`
	// SaveFrequency flushes the ledger to disk every Nth logged action.
	SaveFrequency int `mapstructure:"save_frequency" yaml:"save_frequency"`
}

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// This should not happen with defaults, but good to be safe.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for all configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "voxarm")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)

	// -- Speech --
	v.SetDefault("speech.model", "gemini-2.5-flash")
	v.SetDefault("speech.listen_url", "")
	v.SetDefault("speech.listen_timeout", "5s")
	v.SetDefault("speech.confidence_threshold", 0.7)
	v.SetDefault("speech.use_nlu", true)
	v.SetDefault("speech.requests_per_minute", 30.0)

	// -- Vision --
	v.SetDefault("vision.camera_url", "http://127.0.0.1:8601")
	v.SetDefault("vision.detector_url", "http://127.0.0.1:8600")
	v.SetDefault("vision.confidence_threshold", 0.5)
	v.SetDefault("vision.camera_index", 0)
	v.SetDefault("vision.frame_width", 640)
	v.SetDefault("vision.frame_height", 480)
	v.SetDefault("vision.request_timeout", "10s")

	// -- Motor --
	v.SetDefault("motor.simulation_mode", true)
	v.SetDefault("motor.move_delay", "500ms")
	v.SetDefault("motor.grip_delay", "300ms")

	// -- Learning --
	v.SetDefault("learning.log_file", "")
	v.SetDefault("learning.save_frequency", 10)
}

// Validate checks the configuration for values that would break the pipeline
// at runtime.
func (c *Config) Validate() error {
	if c.Speech.ConfidenceThreshold < 0 || c.Speech.ConfidenceThreshold > 1 {
		return fmt.Errorf("speech.confidence_threshold must be within [0, 1], got %v", c.Speech.ConfidenceThreshold)
	}
	if c.Speech.ListenTimeout <= 0 {
		return fmt.Errorf("speech.listen_timeout must be a positive duration")
	}
	if c.Vision.ConfidenceThreshold < 0 || c.Vision.ConfidenceThreshold > 1 {
		return fmt.Errorf("vision.confidence_threshold must be within [0, 1], got %v", c.Vision.ConfidenceThreshold)
	}
	if c.Vision.FrameWidth <= 0 || c.Vision.FrameHeight <= 0 {
		return fmt.Errorf("vision.frame_width and vision.frame_height must be positive integers")
	}
	if c.Learning.SaveFrequency < 1 {
		return fmt.Errorf("learning.save_frequency must be a positive integer")
	}
	return nil
}

// LedgerPath resolves the ledger file location, defaulting beneath the user's
// home directory when the config leaves it unset.
func (c *Config) LedgerPath() (string, error) {
	if c.Learning.LogFile != "" {
		return c.Learning.LogFile, nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".voxarm", "logs", "actions.json"), nil
}
