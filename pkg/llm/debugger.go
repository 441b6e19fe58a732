package llm

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hypecode-tech/saafir/pkg/utils"
)

// CaptureRetention is how long debug captures are kept. Files older than
// this are pruned the next time a debugger is created for the provider.
const CaptureRetention = 72 * time.Hour

// CompletionDebugger persists raw model completions for offline inspection.
// Malformed envelopes are debugged from the exact bytes the model produced,
// so the capture happens before any parsing or repair.
type CompletionDebugger struct {
	dir     string
	enabled bool
}

// NewCompletionDebugger creates a debugger instance. When disabled it is a
// no-op and costs nothing on the hot path. Enabling it also prunes captures
// older than CaptureRetention from the provider's debug directory.
//
// Parameters:
//   - provider: Name of the chat provider (e.g., "gemini", "openai")
//   - enabled: Whether completion capture is globally enabled
func NewCompletionDebugger(provider string, enabled bool) *CompletionDebugger {
	if !enabled {
		return &CompletionDebugger{enabled: false}
	}

	debugDir := filepath.Join("debug", "completions", provider)
	if err := os.MkdirAll(debugDir, 0755); err != nil {
		slog.Error("Failed to create debug directory", "dir", debugDir, "error", err)
		return &CompletionDebugger{enabled: false}
	}

	d := &CompletionDebugger{dir: debugDir, enabled: true}
	d.pruneOldCaptures()
	return d
}

// Capture appends one request/response exchange to a log file named by
// timestamp prefix and run ID.
func (d *CompletionDebugger) Capture(runID string, messages []Message, raw string) {
	if !d.enabled {
		return
	}

	filename := filepath.Join(d.dir, utils.GenerateTimestampPrefix()+runID+".log")

	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		slog.Error("Failed to open debug file", "file", filename, "error", err)
		return
	}
	defer f.Close()

	for _, m := range messages {
		fmt.Fprintf(f, "--- %s ---\n%s\n", m.Role, m.Content)
	}
	fmt.Fprintf(f, "--- completion ---\n%s\n", raw)

	slog.Debug("Captured completion", "file", filename)
}

// pruneOldCaptures deletes expired capture files. The creation time is read
// straight from the filename's timestamp prefix; files without one are left
// alone.
func (d *CompletionDebugger) pruneOldCaptures() {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		// IsOlderThan reads the age from the filename's timestamp prefix
		// and skips names that don't carry one.
		if utils.IsOlderThan(entry.Name(), CaptureRetention) {
			path := filepath.Join(d.dir, entry.Name())
			if err := os.Remove(path); err != nil {
				slog.Warn("Failed to prune old capture", "file", path, "error", err)
			} else {
				slog.Debug("Pruned old capture", "file", path)
			}
		}
	}
}
