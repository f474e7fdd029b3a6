// File: internal/ledger/report.go
package ledger

import (
	"fmt"
	"time"

	"github.com/voxarm/voxarm-cli/api/schemas"
)

// Recommendation thresholds. The three overall messages are mutually
// exclusive; the per-object and recent-failure rules stack on top.
const (
	lowSuccessRate      = 50.0
	moderateSuccessRate = 70.0
	minObjectAttempts   = 3
	recentWindow        = 10
	recentFailureLimit  = 5
)

const (
	msgLowSuccess      = "Low success rate - check camera positioning and lighting"
	msgModerateSuccess = "Moderate success rate - consider recalibrating the vision system"
	msgGoodSuccess     = "Good success rate - system performing well"
	msgMaintenance     = "Multiple recent failures - system may need maintenance"
)

// NamedObjectStats pairs an object class with its counters for ordered
// report emission.
type NamedObjectStats struct {
	Name string `json:"name"`
	ObjectStats
}

// Report is a point-in-time snapshot of the ledger's view of the system.
type Report struct {
	schemas.Envelope
	GeneratedAt     time.Time          `json:"generated_at"`
	Overall         Stats              `json:"overall_performance"`
	Objects         []NamedObjectStats `json:"object_performance"`
	Recent          []Entry            `json:"recent_actions"`
	Recommendations []string           `json:"recommendations"`
}

// PerformanceReport snapshots the aggregates, per-object stats in first-seen
// order, the last ten entries and the rule-generated recommendations.
func (l *Ledger) PerformanceReport() Report {
	recent := l.history
	if len(recent) > recentWindow {
		recent = recent[len(recent)-recentWindow:]
	}

	objects := make([]NamedObjectStats, 0, len(l.objectOrder))
	for _, name := range l.objectOrder {
		objects = append(objects, NamedObjectStats{Name: name, ObjectStats: *l.objectStats[name]})
	}

	return Report{
		Envelope:        schemas.NewEnvelope(agentName, schemas.MessageReport),
		GeneratedAt:     time.Now(),
		Overall:         l.stats,
		Objects:         objects,
		Recent:          append([]Entry(nil), recent...),
		Recommendations: l.recommendations(recent),
	}
}

// recommendations applies the fixed threshold rules: overall rate first, then
// per-object difficulty in first-seen order, then the recent-failure check.
func (l *Ledger) recommendations(recent []Entry) []string {
	recs := make([]string, 0, 3)

	switch {
	case l.stats.SuccessRate < lowSuccessRate:
		recs = append(recs, msgLowSuccess)
	case l.stats.SuccessRate < moderateSuccessRate:
		recs = append(recs, msgModerateSuccess)
	default:
		recs = append(recs, msgGoodSuccess)
	}

	for _, name := range l.objectOrder {
		stats := l.objectStats[name]
		if stats.Attempts >= minObjectAttempts && stats.SuccessRate < lowSuccessRate {
			recs = append(recs, fmt.Sprintf("Difficulty grasping %s - may need a custom grip strategy", name))
		}
	}

	failures := 0
	for _, e := range recent {
		if e.Result == ResultFailure {
			failures++
		}
	}
	if failures >= recentFailureLimit {
		recs = append(recs, msgMaintenance)
	}

	return recs
}
