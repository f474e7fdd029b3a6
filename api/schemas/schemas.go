// File: api/schemas/schemas.go
package schemas

import (
	"time"

	"github.com/google/uuid"
)

// Status indicates the overall outcome of a service call.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
	StatusWarning Status = "warning"
)

// MessageType categorizes the payload carried alongside an Envelope. Payload
// shape is determined entirely by the message type; the two are never mixed.
type MessageType string

const (
	MessageIntent    MessageType = "intent"
	MessageDetection MessageType = "detection"
	MessageScan      MessageType = "scan"
	MessageMovement  MessageType = "movement"
	MessageGripper   MessageType = "gripper"
	MessageAction    MessageType = "action"
	MessageReport    MessageType = "report"
)

// ErrorCode classifies failures that cross a service boundary. Raw errors
// never propagate past a service; they are converted into an error-status
// envelope carrying one of these codes.
type ErrorCode string

const (
	CodeNotFound         ErrorCode = "not_found"         // object absent from the scene
	CodeUnavailable      ErrorCode = "unavailable"       // camera or microphone not ready
	CodeTimeout          ErrorCode = "timeout"           // no speech within the listen window
	CodeInputClosed      ErrorCode = "input_closed"      // command source exhausted, no more input will come
	CodeExternalService  ErrorCode = "external_service"  // NLU call failed or returned garbage
	CodeActuationFailure ErrorCode = "actuation_failure" // a choreography step raised
)

// Envelope is the uniform header wrapped around every inter-service result.
// Concrete result types embed it, so each cross-service call returns exactly
// one envelope with a payload typed to its message type.
type Envelope struct {
	ID        string      `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Agent     string      `json:"agent"`
	Type      MessageType `json:"type"`
	Status    Status      `json:"status"`
	Code      ErrorCode   `json:"code,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// Allows freezing IDs/timestamps in tests.
var (
	newID = uuid.NewString
	now   = time.Now
)

// NewEnvelope returns a success-status envelope stamped with a fresh ID and
// the current time.
func NewEnvelope(agent string, msgType MessageType) Envelope {
	return Envelope{
		ID:        newID(),
		Timestamp: now(),
		Agent:     agent,
		Type:      msgType,
		Status:    StatusSuccess,
	}
}

// NewErrorEnvelope returns an error-status envelope carrying a taxonomy code
// and a human-readable cause.
func NewErrorEnvelope(agent string, msgType MessageType, code ErrorCode, cause string) Envelope {
	env := NewEnvelope(agent, msgType)
	env.Status = StatusError
	env.Code = code
	env.Error = cause
	return env
}

// OK reports whether the envelope carries a success status.
func (e Envelope) OK() bool { return e.Status == StatusSuccess }
