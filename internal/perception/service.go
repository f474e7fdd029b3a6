// File: internal/perception/service.go
package perception

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/voxarm/voxarm-cli/api/schemas"
	"github.com/voxarm/voxarm-cli/internal/config"
)

const agentName = "perception"

// defaultGraspable is the built-in allow-set of detector class names the arm
// can physically grip.
var defaultGraspable = []string{
	"bottle", "cup", "wine glass", "bowl",
	"banana", "apple", "orange", "sandwich",
	"cell phone", "book", "remote", "mouse",
	"keyboard", "scissors", "teddy bear",
}

// Service turns camera frames into annotated detections. It holds no mutable
// state beyond the camera handle; position bucketing is purely derived.
type Service struct {
	camera    Camera
	detector  Detector
	graspable map[string]struct{}
	logger    *zap.Logger
}

// NewService wires a perception service from its two external adapters. An
// empty allow-set override in cfg falls back to the built-in set.
func NewService(camera Camera, detector Detector, cfg config.VisionConfig, logger *zap.Logger) *Service {
	classes := cfg.GraspableClasses
	if len(classes) == 0 {
		classes = defaultGraspable
	}
	allow := make(map[string]struct{}, len(classes))
	for _, c := range classes {
		allow[c] = struct{}{}
	}

	return &Service{
		camera:    camera,
		detector:  detector,
		graspable: allow,
		logger:    logger.Named(agentName),
	}
}

// StartCamera opens the frame source. Failure here is fatal for the pipeline.
func (s *Service) StartCamera(ctx context.Context) error {
	if err := s.camera.Start(ctx); err != nil {
		return err
	}
	s.logger.Info("Camera started")
	return nil
}

// StopCamera releases the frame source.
func (s *Service) StopCamera() {
	s.camera.Stop()
	s.logger.Info("Camera stopped")
}

// ScanScene captures one frame, runs the detector and returns every detection
// plus the graspable subset.
func (s *Service) ScanScene(ctx context.Context) schemas.ScanResult {
	detections, _, err := s.detectFrame(ctx)
	if err != nil {
		s.logger.Warn("Scene scan failed", zap.Error(err))
		return schemas.ScanResult{
			Envelope: schemas.NewErrorEnvelope(agentName, schemas.MessageScan, schemas.CodeUnavailable, err.Error()),
		}
	}

	graspable := make([]schemas.Detection, 0, len(detections))
	for _, det := range detections {
		if det.Graspable {
			graspable = append(graspable, det)
		}
	}

	s.logger.Info("Scene scanned",
		zap.Int("total_objects", len(detections)),
		zap.Int("graspable_count", len(graspable)))

	return schemas.ScanResult{
		Envelope:       schemas.NewEnvelope(agentName, schemas.MessageScan),
		TotalObjects:   len(detections),
		GraspableCount: len(graspable),
		Detections:     detections,
		Graspable:      graspable,
	}
}

// FindObject captures one frame and returns the first detection, in detector
// output order, whose class name contains target case-insensitively and is
// graspable. Candidates are not re-ranked by confidence.
func (s *Service) FindObject(ctx context.Context, target string) schemas.FindResult {
	detections, frame, err := s.detectFrame(ctx)
	if err != nil {
		s.logger.Warn("Object search failed", zap.String("target", target), zap.Error(err))
		return schemas.FindResult{
			Envelope: schemas.NewErrorEnvelope(agentName, schemas.MessageDetection, schemas.CodeUnavailable, err.Error()),
			Target:   target,
		}
	}

	needle := strings.ToLower(target)
	for i := range detections {
		det := detections[i]
		if !det.Graspable || !strings.Contains(strings.ToLower(det.Class), needle) {
			continue
		}

		position := EstimatePosition(det.Box, frame.Width, frame.Height)
		s.logger.Info("Object found",
			zap.String("target", target),
			zap.String("class", det.Class),
			zap.Float64("confidence", det.Confidence),
			zap.String("horizontal", string(position.Horizontal)),
			zap.String("vertical", string(position.Vertical)),
			zap.String("depth", string(position.Depth)))

		return schemas.FindResult{
			Envelope:     schemas.NewEnvelope(agentName, schemas.MessageDetection),
			Found:        true,
			Target:       target,
			TotalObjects: len(detections),
			Object:       &det,
			Position:     &position,
		}
	}

	s.logger.Info("Object not found", zap.String("target", target), zap.Int("total_objects", len(detections)))
	return schemas.FindResult{
		Envelope:     schemas.NewErrorEnvelope(agentName, schemas.MessageDetection, schemas.CodeNotFound, "object not found in scene"),
		Found:        false,
		Target:       target,
		TotalObjects: len(detections),
	}
}

// detectFrame captures a frame, runs inference and annotates graspability.
func (s *Service) detectFrame(ctx context.Context) ([]schemas.Detection, Frame, error) {
	frame, err := s.camera.Capture(ctx)
	if err != nil {
		return nil, Frame{}, err
	}

	raw, err := s.detector.Detect(ctx, frame)
	if err != nil {
		return nil, Frame{}, err
	}

	detections := make([]schemas.Detection, 0, len(raw))
	for _, r := range raw {
		_, graspable := s.graspable[r.Class]
		detections = append(detections, schemas.Detection{
			Class:      r.Class,
			Confidence: r.Confidence,
			Box:        schemas.NewBoundingBox(r.X1, r.Y1, r.X2, r.Y2),
			Graspable:  graspable,
		})
	}
	return detections, frame, nil
}
