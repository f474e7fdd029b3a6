// File: internal/intent/keywords.go
package intent

import (
	"strings"

	"github.com/voxarm/voxarm-cli/api/schemas"
)

// actionCategory pairs an action with its synonym keywords. Table order is
// the tie-break: the first category with any matching synonym wins.
type actionCategory struct {
	action   schemas.Action
	keywords []string
}

var actionTable = []actionCategory{
	{schemas.ActionPick, []string{"pick", "grab", "take", "get", "pickup"}},
	{schemas.ActionPlace, []string{"place", "put", "drop", "set", "release"}},
	{schemas.ActionMove, []string{"move", "shift", "transfer"}},
	{schemas.ActionShow, []string{"show", "display", "list", "find"}},
	{schemas.ActionStop, []string{"stop", "halt", "cancel", "abort"}},
}

// knownObjects are the object names the keyword stage recognizes. First match
// in this order wins.
var knownObjects = []string{
	"bottle", "cup", "glass", "bowl", "can",
	"phone", "book", "pen", "remote", "ball",
	"banana", "apple", "orange", "box",
}

// ExtractKeywords runs the cheap rule-based stage: substring matching of
// action synonyms and object names against the lowercased utterance.
// Confidence is additive, +0.5 per matched slot, so it lands in {0, 0.5, 1.0}.
func ExtractKeywords(text string) schemas.Intent {
	lowered := strings.ToLower(text)
	result := schemas.Intent{RawText: text}

	for _, cat := range actionTable {
		for _, kw := range cat.keywords {
			if strings.Contains(lowered, kw) {
				result.Action = cat.action
				result.Confidence += 0.5
				break
			}
		}
		if result.Action != schemas.ActionNone {
			break
		}
	}

	for _, obj := range knownObjects {
		if strings.Contains(lowered, obj) {
			result.Object = obj
			result.Confidence += 0.5
			break
		}
	}

	return result
}
