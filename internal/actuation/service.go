// File: internal/actuation/service.go
package actuation

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/voxarm/voxarm-cli/api/schemas"
	"github.com/voxarm/voxarm-cli/internal/config"
)

const agentName = "actuation"

// Service runs the fixed pick/place choreographies against the simulated arm.
// A hardware mode would speak a serial byte protocol instead; it is not
// implemented.
type Service struct {
	arm    *simulatedArm
	mode   string
	logger *zap.Logger
}

// NewService builds the actuation service. Only simulation mode exists today;
// the flag is honored so a hardware build fails loudly instead of silently
// pretending.
func NewService(cfg config.MotorConfig, logger *zap.Logger) (*Service, error) {
	if !cfg.SimulationMode {
		return nil, fmt.Errorf("hardware mode is not implemented; set motor.simulation_mode")
	}
	named := logger.Named(agentName)
	return &Service{
		arm:    newSimulatedArm(cfg, named),
		mode:   "simulation",
		logger: named,
	}, nil
}

// PickObject runs the pick choreography: move to the object, open the
// gripper, lower, close, lift. Sub-steps emit their own envelopes; only the
// aggregate crosses the boundary. The sole way a simulated step can fail is a
// panic, which is caught here and converted into an actuation-failure
// envelope. Once started, the sequence cannot be cancelled.
func (s *Service) PickObject(ctx context.Context, object schemas.Detection, position schemas.Position) (result schemas.ActionResult) {
	defer s.recoverStep(schemas.ActionPick, object.Class, &result)

	s.logger.Info("Starting pick sequence", zap.String("object", object.Class))

	s.arm.moveTo(ctx, position)
	s.arm.openGripper(ctx)
	s.arm.lower(ctx)
	s.arm.closeGripper(ctx)
	s.arm.raise(ctx)

	s.logger.Info("Pick sequence complete", zap.String("object", object.Class))
	return schemas.ActionResult{
		Envelope: schemas.NewEnvelope(agentName, schemas.MessageAction),
		Action:   schemas.ActionPick,
		Object:   object.Class,
	}
}

// PlaceObject runs the symmetric place choreography: move, lower, open, raise.
func (s *Service) PlaceObject(ctx context.Context, position schemas.Position) (result schemas.ActionResult) {
	defer s.recoverStep(schemas.ActionPlace, "", &result)

	s.logger.Info("Starting place sequence")

	s.arm.moveTo(ctx, position)
	s.arm.lower(ctx)
	s.arm.openGripper(ctx)
	s.arm.raise(ctx)

	s.logger.Info("Place sequence complete")
	return schemas.ActionResult{
		Envelope: schemas.NewEnvelope(agentName, schemas.MessageAction),
		Action:   schemas.ActionPlace,
	}
}

// Stop reports the stopped state immediately. It does not interrupt a
// choreography already in flight; no cancellation token threads through the
// step sequence.
func (s *Service) Stop() schemas.ActionResult {
	s.logger.Warn("Emergency stop requested")
	return schemas.ActionResult{
		Envelope: schemas.NewEnvelope(agentName, schemas.MessageAction),
		Action:   schemas.ActionStop,
	}
}

// Status returns a read-only snapshot of the arm state.
func (s *Service) Status() schemas.ArmStatus {
	return schemas.ArmStatus{
		Position: s.arm.position,
		Gripper:  s.arm.gripper,
		Mode:     s.mode,
	}
}

// recoverStep is the single place structural choreography failures surface:
// a panicking step aborts the sequence and becomes an error envelope carrying
// the raw panic text.
func (s *Service) recoverStep(action schemas.Action, object string, result *schemas.ActionResult) {
	r := recover()
	if r == nil {
		return
	}
	cause := fmt.Sprintf("%v", r)
	s.logger.Error("Choreography step failed",
		zap.String("action", string(action)),
		zap.String("cause", cause))
	*result = schemas.ActionResult{
		Envelope: schemas.NewErrorEnvelope(agentName, schemas.MessageAction, schemas.CodeActuationFailure, cause),
		Action:   action,
		Object:   object,
	}
}
