// File: api/schemas/action.go
package schemas

// GripperState is the binary state of the simulated gripper.
type GripperState string

const (
	GripperOpen   GripperState = "open"
	GripperClosed GripperState = "closed"
)

// ArmStatus is a read-only snapshot of the actuation service's internal state.
type ArmStatus struct {
	Position Position     `json:"position"`
	Gripper  GripperState `json:"gripper_state"`
	Mode     string       `json:"mode"`
}

// ActionResult is the aggregated outcome of one actuation choreography
// (pick, place or stop). Sub-steps produce their own envelopes internally;
// only this aggregate crosses the service boundary.
type ActionResult struct {
	Envelope
	Action Action `json:"action"`
	Object string `json:"object,omitempty"`
}
