// File: api/schemas/intent.go
package schemas

// Action is the structured vocabulary of commands the pipeline understands.
type Action string

const (
	ActionNone  Action = ""
	ActionPick  Action = "pick"
	ActionPlace Action = "place"
	ActionMove  Action = "move"
	ActionShow  Action = "show"
	ActionStop  Action = "stop"
)

// Intent is the structured interpretation of one user utterance. Confidence
// from the keyword stage is additive (+0.5 for a matched action, +0.5 for a
// matched object), so its domain is {0, 0.5, 1.0}; the NLU stage reports its
// own continuous confidence verbatim.
type Intent struct {
	Action     Action  `json:"action"`
	Object     string  `json:"object"`
	Confidence float64 `json:"confidence"`
	RawText    string  `json:"raw_text"`
}

// IntentResult is the intent-service payload for one captured command.
type IntentResult struct {
	Envelope
	Intent
}
