// File: internal/ledger/persist.go
package ledger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/json-iterator/go"
	"go.uber.org/zap"
)

// document is the single JSON file layout. The whole document is rewritten
// on every flush; the on-disk file is not append-only.
type document struct {
	History     []Entry                `json:"history"`
	Stats       Stats                  `json:"stats"`
	ObjectStats map[string]ObjectStats `json:"object_stats"`
	LastUpdated time.Time              `json:"last_updated"`
}

// load restores persisted state. Any failure degrades to a fresh ledger.
func (l *Ledger) load() {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if !os.IsNotExist(err) {
			l.logger.Warn("Could not read ledger file, starting fresh", zap.Error(err))
		}
		return
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		l.logger.Warn("Ledger file is corrupt, starting fresh", zap.Error(err))
		return
	}

	l.history = doc.History
	l.stats = doc.Stats
	l.objectStats = make(map[string]*ObjectStats, len(doc.ObjectStats))
	for name, st := range doc.ObjectStats {
		stats := st
		l.objectStats[name] = &stats
	}

	// JSON objects do not preserve insertion order; recover first-seen order
	// from the history so reports stay stable across restarts.
	seen := make(map[string]bool, len(l.objectStats))
	for _, e := range l.history {
		if e.Object == "" || seen[e.Object] {
			continue
		}
		if _, ok := l.objectStats[e.Object]; ok {
			seen[e.Object] = true
			l.objectOrder = append(l.objectOrder, e.Object)
		}
	}

	l.logger.Info("Loaded previous actions", zap.Int("count", len(l.history)))
}

// save rewrites the document wholesale via a temp-file rename, so a crash
// mid-write never truncates the only durable state.
func (l *Ledger) save() error {
	objectStats := make(map[string]ObjectStats, len(l.objectStats))
	for name, st := range l.objectStats {
		objectStats[name] = *st
	}

	doc := document{
		History:     l.history,
		Stats:       l.stats,
		ObjectStats: objectStats,
		LastUpdated: time.Now(),
	}
	if doc.History == nil {
		doc.History = []Entry{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode ledger: %w", err)
	}

	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create ledger directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".actions-*.json")
	if err != nil {
		return fmt.Errorf("failed to create ledger temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close ledger temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set ledger permissions: %w", err)
	}
	if err := os.Rename(tmpName, l.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace ledger file: %w", err)
	}
	return nil
}
