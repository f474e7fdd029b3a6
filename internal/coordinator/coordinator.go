// File: internal/coordinator/coordinator.go

// Package coordinator drives the command loop: capture one command, dispatch
// it to the perception and actuation services, record the outcome. It owns no
// domain logic of its own; everything it knows arrives through the injected
// service interfaces.
package coordinator

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/voxarm/voxarm-cli/api/schemas"
	"github.com/voxarm/voxarm-cli/internal/ledger"
	"github.com/voxarm/voxarm-cli/internal/report"
)

// State is the coordinator's current phase. The coordinator is driven from a
// single goroutine, so the state is a plain field; it exists for logging and
// for tests to observe, not for synchronization.
type State string

const (
	StateIdle        State = "idle"
	StateListening   State = "listening"
	StateDispatching State = "dispatching"
	StateScanning    State = "scanning"
	StatePicking     State = "picking"
	StatePlacing     State = "placing"
	StateStopped     State = "stopped"
)

// IntentService captures and interprets one spoken or typed command.
type IntentService interface {
	GetCommand(ctx context.Context) schemas.IntentResult
}

// PerceptionService provides scene scanning and targeted object search.
type PerceptionService interface {
	StartCamera(ctx context.Context) error
	StopCamera()
	ScanScene(ctx context.Context) schemas.ScanResult
	FindObject(ctx context.Context, target string) schemas.FindResult
}

// ActuationService executes arm choreographies.
type ActuationService interface {
	PickObject(ctx context.Context, object schemas.Detection, position schemas.Position) schemas.ActionResult
	PlaceObject(ctx context.Context, position schemas.Position) schemas.ActionResult
	Stop() schemas.ActionResult
}

// Recorder persists action outcomes and produces the performance report.
type Recorder interface {
	LogAction(e ledger.Entry)
	PerformanceReport() ledger.Report
	Close() error
}

// set aside for tests to freeze durations
var timeNow = time.Now

// defaultPlaceTarget is where the arm puts objects down when the command does
// not carry a location. Matches the arm's natural workspace center.
var defaultPlaceTarget = schemas.Position{
	Horizontal: schemas.HorizontalCenter,
	Vertical:   schemas.VerticalMiddle,
	Depth:      schemas.DepthClose,
}

// Coordinator sequences the pipeline. One command cycle at a time; no
// concurrent dispatch.
type Coordinator struct {
	intent     IntentService
	perception PerceptionService
	actuation  ActuationService
	recorder   Recorder
	console    *report.Console
	logger     *zap.Logger

	state   State
	running bool
}

// New wires the coordinator from its injected services.
func New(intent IntentService, perception PerceptionService, actuation ActuationService, recorder Recorder, console *report.Console, logger *zap.Logger) *Coordinator {
	return &Coordinator{
		intent:     intent,
		perception: perception,
		actuation:  actuation,
		recorder:   recorder,
		console:    console,
		logger:     logger.Named("coordinator"),
		state:      StateIdle,
	}
}

// State returns the coordinator's current phase.
func (c *Coordinator) State() State { return c.state }

// Running reports whether the command loop should keep going.
func (c *Coordinator) Running() bool { return c.running }

func (c *Coordinator) setState(s State) {
	c.logger.Debug("State transition", zap.String("from", string(c.state)), zap.String("to", string(s)))
	c.state = s
}

// Start brings the camera up and marks the loop runnable. A camera that
// fails to start is fatal: the pipeline is useless blind.
func (c *Coordinator) Start(ctx context.Context) error {
	if err := c.perception.StartCamera(ctx); err != nil {
		return err
	}
	c.running = true
	c.setState(StateIdle)
	return nil
}

// Run executes command cycles until a stop command, a context cancellation
// or a closed input ends the loop, then shuts the pipeline down.
func (c *Coordinator) Run(ctx context.Context) error {
	if err := c.Start(ctx); err != nil {
		return err
	}
	for c.running && ctx.Err() == nil {
		c.RunCommandCycle(ctx)
	}
	c.Shutdown()
	return nil
}

// RunCommandCycle captures one command and dispatches it. Uninterpretable
// input ends the cycle with a console notice and no ledger entry.
func (c *Coordinator) RunCommandCycle(ctx context.Context) {
	start := timeNow()

	c.setState(StateListening)
	cmd := c.intent.GetCommand(ctx)
	if cmd.Code == schemas.CodeInputClosed {
		// The command source is exhausted; retrying would spin forever.
		c.logger.Info("Command input closed, ending loop")
		c.console.Stopping()
		c.running = false
		c.setState(StateStopped)
		return
	}
	if !cmd.OK() || cmd.Action == schemas.ActionNone {
		c.logger.Info("Command not understood",
			zap.String("code", string(cmd.Code)),
			zap.String("raw_text", cmd.RawText))
		c.console.Misunderstood()
		c.setState(StateIdle)
		return
	}
	c.console.Understood(cmd.Intent)

	c.setState(StateDispatching)
	switch cmd.Action {
	case schemas.ActionStop:
		c.stop()
	case schemas.ActionShow:
		c.scan(ctx)
	case schemas.ActionPick:
		c.pick(ctx, cmd.Object, start)
	case schemas.ActionPlace:
		c.place(ctx, cmd.Object, start)
	default:
		c.logger.Warn("No handler for action", zap.String("action", string(cmd.Action)))
		c.console.Unsupported(cmd.Action)
	}

	if c.state != StateStopped {
		c.setState(StateIdle)
	}
}

// stop marks the loop finished. An in-flight choreography is never
// interrupted; the arm halts only between cycles.
func (c *Coordinator) stop() {
	c.setState(StateStopped)
	c.running = false
	c.console.Stopping()
	c.actuation.Stop()
}

func (c *Coordinator) scan(ctx context.Context) {
	c.setState(StateScanning)
	res := c.perception.ScanScene(ctx)
	if !res.OK() {
		c.logger.Warn("Scene scan failed", zap.String("error", res.Error))
	}
	c.console.Scan(res)
}

// pick runs the full grasp workflow: locate the target, then execute the
// choreography. Exactly one ledger entry per invocation, success or failure.
func (c *Coordinator) pick(ctx context.Context, target string, start time.Time) {
	if target == "" {
		// An empty target would substring-match every graspable object;
		// treat it as an incomplete command instead of grabbing at random.
		c.logger.Info("Pick command without a target object")
		c.console.Misunderstood()
		return
	}
	c.setState(StatePicking)

	find := c.perception.FindObject(ctx, target)
	if !find.OK() || !find.Found {
		c.console.ObjectMissing(target)
		c.recorder.LogAction(ledger.Entry{
			Action:   schemas.ActionPick,
			Object:   target,
			Result:   ledger.ResultFailure,
			Duration: timeNow().Sub(start).Seconds(),
			Error:    "Object not found",
		})
		return
	}

	act := c.actuation.PickObject(ctx, *find.Object, *find.Position)
	duration := timeNow().Sub(start).Seconds()
	c.console.ActionOutcome(act, duration)
	c.recorder.LogAction(entryFor(schemas.ActionPick, target, act, duration))
}

// place lowers the held object at the default workspace target. The pipeline
// does not track what the gripper holds, so when the command names no object
// the ledger falls back to "unknown".
func (c *Coordinator) place(ctx context.Context, target string, start time.Time) {
	c.setState(StatePlacing)

	act := c.actuation.PlaceObject(ctx, defaultPlaceTarget)
	duration := timeNow().Sub(start).Seconds()
	c.console.ActionOutcome(act, duration)
	if target == "" {
		target = "unknown"
	}
	c.recorder.LogAction(entryFor(schemas.ActionPlace, target, act, duration))
}

// Shutdown releases the camera, prints the final performance report and
// flushes the ledger.
func (c *Coordinator) Shutdown() {
	c.perception.StopCamera()
	c.console.Performance(c.recorder.PerformanceReport())
	if err := c.recorder.Close(); err != nil {
		c.logger.Error("Failed to flush action ledger", zap.Error(err))
	}
	c.logger.Info("Pipeline shut down")
}

func entryFor(action schemas.Action, object string, act schemas.ActionResult, duration float64) ledger.Entry {
	e := ledger.Entry{
		Action:   action,
		Object:   object,
		Result:   ledger.ResultSuccess,
		Duration: duration,
	}
	if !act.OK() {
		e.Result = ledger.ResultFailure
		e.Error = act.Error
	}
	return e
}
