// File: cmd/wiring.go
package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/voxarm/voxarm-cli/internal/actuation"
	"github.com/voxarm/voxarm-cli/internal/config"
	"github.com/voxarm/voxarm-cli/internal/coordinator"
	"github.com/voxarm/voxarm-cli/internal/intent"
	"github.com/voxarm/voxarm-cli/internal/ledger"
	"github.com/voxarm/voxarm-cli/internal/perception"
	"github.com/voxarm/voxarm-cli/internal/report"
)

// loadConfig pulls the finalized configuration out of viper. PersistentPreRunE
// has already validated it.
func loadConfig() (*config.Config, error) {
	var cfg config.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return &cfg, nil
}

// newPerceptionService wires the camera and detector adapters from config.
func newPerceptionService(cfg *config.Config, logger *zap.Logger) *perception.Service {
	camera := perception.NewHTTPCamera(cfg.Vision.CameraURL, cfg.Vision.CameraIndex, cfg.Vision.RequestTimeout)
	detector := perception.NewHTTPDetector(cfg.Vision.DetectorURL, cfg.Vision.ConfidenceThreshold, cfg.Vision.RequestTimeout)
	return perception.NewService(camera, detector, cfg.Vision, logger)
}

// newIntentService picks the recognizer and the optional NLU fallback from
// config. A scripted transcript takes priority over both capture backends.
func newIntentService(ctx context.Context, cfg *config.Config, transcript []string, in io.Reader, out io.Writer, logger *zap.Logger) (*intent.Service, error) {
	var recognizer intent.Recognizer
	switch {
	case len(transcript) > 0:
		recognizer = intent.NewScriptedRecognizer(transcript...)
	case cfg.Speech.ListenURL != "":
		recognizer = intent.NewHTTPRecognizer(cfg.Speech.ListenURL, cfg.Speech.ListenTimeout)
	default:
		recognizer = intent.NewTerminalRecognizer(in, out)
	}

	var extractor intent.Extractor
	if cfg.Speech.UseNLU && cfg.Speech.APIKey != "" {
		gemini, err := intent.NewGeminiExtractor(ctx, cfg.Speech, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize NLU extractor: %w", err)
		}
		extractor = gemini
	}

	resolver := intent.NewResolver(cfg.Speech.ConfidenceThreshold, extractor, logger)
	return intent.NewService(recognizer, resolver, cfg.Speech.ListenTimeout, logger), nil
}

// newLedger resolves the ledger path and opens it.
func newLedger(cfg *config.Config, logger *zap.Logger) (*ledger.Ledger, error) {
	path, err := cfg.LedgerPath()
	if err != nil {
		return nil, err
	}
	return ledger.New(path, cfg.Learning.SaveFrequency, logger), nil
}

// buildPipeline assembles the full coordinator from configuration.
func buildPipeline(ctx context.Context, cfg *config.Config, transcript []string, in io.Reader, out io.Writer, logger *zap.Logger) (*coordinator.Coordinator, error) {
	intentSvc, err := newIntentService(ctx, cfg, transcript, in, out, logger)
	if err != nil {
		return nil, err
	}

	actuationSvc, err := actuation.NewService(cfg.Motor, logger)
	if err != nil {
		return nil, err
	}

	led, err := newLedger(cfg, logger)
	if err != nil {
		return nil, err
	}

	perceptionSvc := newPerceptionService(cfg, logger)
	console := report.NewConsole(out)
	return coordinator.New(intentSvc, perceptionSvc, actuationSvc, led, console, logger), nil
}
