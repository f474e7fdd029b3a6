// File: internal/actuation/arm.go
package actuation

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/voxarm/voxarm-cli/api/schemas"
	"github.com/voxarm/voxarm-cli/internal/config"
)

// simulatedArm holds the in-memory arm state. It is mutated only by the
// actuation service and read by nothing else except a status query; the
// pipeline is strictly sequential, so no locking discipline applies.
type simulatedArm struct {
	position  schemas.Position
	gripper   schemas.GripperState
	moveDelay time.Duration
	gripDelay time.Duration
	logger    *zap.Logger
}

func newSimulatedArm(cfg config.MotorConfig, logger *zap.Logger) *simulatedArm {
	return &simulatedArm{
		gripper:   schemas.GripperOpen,
		moveDelay: cfg.MoveDelay,
		gripDelay: cfg.GripDelay,
		logger:    logger,
	}
}

// pause blocks for the fixed motion delay standing in for real-world travel
// time. It is not a suspension point that yields work to anyone; the single
// thread of control simply waits.
func (a *simulatedArm) pause(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

// moveTo drives the arm to the target position.
func (a *simulatedArm) moveTo(ctx context.Context, target schemas.Position) schemas.Envelope {
	a.logger.Debug("Moving to position",
		zap.String("horizontal", string(target.Horizontal)),
		zap.String("vertical", string(target.Vertical)),
		zap.String("depth", string(target.Depth)))
	a.pause(a.moveDelay)
	a.position = target
	return schemas.NewEnvelope(agentName, schemas.MessageMovement)
}

// lower and raise adjust height between the approach and the grasp plane.
func (a *simulatedArm) lower(ctx context.Context) schemas.Envelope {
	a.logger.Debug("Lowering arm")
	a.pause(a.moveDelay)
	return schemas.NewEnvelope(agentName, schemas.MessageMovement)
}

func (a *simulatedArm) raise(ctx context.Context) schemas.Envelope {
	a.logger.Debug("Raising arm")
	a.pause(a.moveDelay)
	return schemas.NewEnvelope(agentName, schemas.MessageMovement)
}

func (a *simulatedArm) openGripper(ctx context.Context) schemas.Envelope {
	a.logger.Debug("Opening gripper")
	a.pause(a.gripDelay)
	a.gripper = schemas.GripperOpen
	return schemas.NewEnvelope(agentName, schemas.MessageGripper)
}

func (a *simulatedArm) closeGripper(ctx context.Context) schemas.Envelope {
	a.logger.Debug("Closing gripper")
	a.pause(a.gripDelay)
	a.gripper = schemas.GripperClosed
	return schemas.NewEnvelope(agentName, schemas.MessageGripper)
}
