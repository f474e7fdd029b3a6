// File: internal/ledger/ledger.go
package ledger

import (
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/voxarm/voxarm-cli/api/schemas"
)

const agentName = "ledger"

// Result is the recorded outcome of one attempted action.
type Result string

const (
	ResultSuccess Result = "success"
	ResultFailure Result = "failure"
	ResultUnknown Result = "unknown"
)

// Entry is one immutable action record. Ordering in the history is append
// order, which is chronological.
type Entry struct {
	Timestamp time.Time      `json:"timestamp"`
	Action    schemas.Action `json:"action"`
	Object    string         `json:"object"`
	Result    Result         `json:"result"`
	Duration  float64        `json:"duration"` // seconds
	Error     string         `json:"error,omitempty"`
}

// Stats are the cumulative counters. SuccessRate is derived and recomputed
// from scratch on every append rather than maintained incrementally.
type Stats struct {
	TotalActions      int     `json:"total_actions"`
	SuccessfulActions int     `json:"successful_actions"`
	FailedActions     int     `json:"failed_actions"`
	SuccessRate       float64 `json:"success_rate"`
}

// ObjectStats are the per-object-class counters.
type ObjectStats struct {
	Attempts    int     `json:"attempts"`
	Successes   int     `json:"successes"`
	Failures    int     `json:"failures"`
	SuccessRate float64 `json:"success_rate"`
}

// Ledger owns the action history and performance statistics. It is the only
// stateful component of the pipeline and is touched from a single goroutine;
// the coordinator holds the sole reference.
type Ledger struct {
	path      string
	saveEvery int

	history     []Entry
	stats       Stats
	objectStats map[string]*ObjectStats
	// objectOrder preserves first-seen order for report emission.
	objectOrder []string

	logger *zap.Logger
}

// New opens the ledger at path, loading persisted state when present. A
// missing or unreadable file starts a fresh ledger; losing history must not
// keep the arm from running.
func New(path string, saveEvery int, logger *zap.Logger) *Ledger {
	l := &Ledger{
		path:        path,
		saveEvery:   saveEvery,
		objectStats: make(map[string]*ObjectStats),
		logger:      logger.Named(agentName),
	}
	l.load()
	return l
}

// LogAction appends one entry, updates the counters and flushes to disk on
// every saveEvery-th append. A zero timestamp is stamped with the current time.
func (l *Ledger) LogAction(e Entry) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	if e.Result == "" {
		e.Result = ResultUnknown
	}

	l.history = append(l.history, e)
	l.updateStats(e)

	if len(l.history)%l.saveEvery == 0 {
		if err := l.save(); err != nil {
			l.logger.Warn("Could not persist ledger", zap.Error(err))
		}
	}

	l.logger.Info("Logged action",
		zap.String("action", string(e.Action)),
		zap.String("object", e.Object),
		zap.String("result", string(e.Result)),
		zap.Float64("duration_s", e.Duration))
}

// Close flushes the ledger unconditionally. Call exactly once at shutdown.
func (l *Ledger) Close() error {
	return l.save()
}

// Stats returns a copy of the cumulative counters.
func (l *Ledger) Stats() Stats { return l.stats }

// History returns the append-ordered action history.
func (l *Ledger) History() []Entry { return l.history }

func (l *Ledger) updateStats(e Entry) {
	l.stats.TotalActions++
	switch e.Result {
	case ResultSuccess:
		l.stats.SuccessfulActions++
	case ResultFailure:
		l.stats.FailedActions++
	}
	l.stats.SuccessRate = rate(l.stats.SuccessfulActions, l.stats.TotalActions)

	if e.Object == "" {
		return
	}
	st, ok := l.objectStats[e.Object]
	if !ok {
		st = &ObjectStats{}
		l.objectStats[e.Object] = st
		l.objectOrder = append(l.objectOrder, e.Object)
	}
	st.Attempts++
	switch e.Result {
	case ResultSuccess:
		st.Successes++
	case ResultFailure:
		st.Failures++
	}
	st.SuccessRate = rate(st.Successes, st.Attempts)
}

// rate computes successes/attempts*100, with the zero-attempts edge pinned
// to 0 rather than NaN.
func rate(successes, attempts int) float64 {
	if attempts == 0 {
		return 0
	}
	return float64(successes) / float64(attempts) * 100
}

// exists reports whether the ledger file is present on disk.
func (l *Ledger) exists() bool {
	_, err := os.Stat(l.path)
	return err == nil
}
