// Package logging provides leveled logging and run tracing for mrgc.
// It offers two complementary outputs:
//   - A leveled slog.Logger for stderr (operational output)
//   - A TraceLogger for structured JSONL run traces (<dir>/trace.jsonl)
package logging

import (
	"encoding/json"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JieUpup/MRGC/internal/models"
)

// TraceFile is the name of the JSONL file written by TraceLogger.
const TraceFile = "trace.jsonl"

// LevelTrace is a custom slog level below Debug.
// At this level, per-slot occupancy and graph sizes are logged as well.
const LevelTrace = slog.LevelDebug - 4

// ParseLevel maps a string level name to a slog.Level.
// Supported values: "info", "debug", "trace" (case-insensitive).
// Unknown values default to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "trace":
		return LevelTrace
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a leveled slog.Logger writing to w.
func NewLogger(level string, w io.Writer) *slog.Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// TraceLogger writes structured run events to a JSONL file.
// It is safe for concurrent use. A nil TraceLogger is safe to use;
// all methods are no-ops on nil receiver.
type TraceLogger struct {
	mu      sync.Mutex
	file    *os.File
	session string
}

// NewTraceLogger creates a trace logger writing to dir/trace.jsonl.
// At "info" level (the default), returns nil and no file is created.
// At "debug" or "trace" level, the file is opened for append.
// Returns nil if the file cannot be opened. All methods are nil-safe.
func NewTraceLogger(dir string, level string) *TraceLogger {
	lvl := ParseLevel(level)
	if lvl == slog.LevelInfo || dir == "" {
		return nil
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil
	}

	path := filepath.Join(dir, TraceFile)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil
	}

	return &TraceLogger{file: f, session: uuid.NewString()}
}

// Session returns the id stamped on every event this logger writes, so
// runs appending to the same file can be told apart. Empty on nil.
func (tl *TraceLogger) Session() string {
	if tl == nil {
		return ""
	}
	return tl.session
}

// Log writes an event as a single JSONL line.
// "time" and "session" fields are added automatically. The caller's map is
// not mutated.
func (tl *TraceLogger) Log(event map[string]any) {
	if tl == nil || tl.file == nil {
		return
	}

	entry := make(map[string]any, len(event)+2)
	maps.Copy(entry, event)
	entry["time"] = time.Now().UTC().Format(time.RFC3339Nano)
	entry["session"] = tl.session

	tl.mu.Lock()
	defer tl.mu.Unlock()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	data = append(data, '\n')
	_, _ = tl.file.Write(data)
}

// LogRecord writes one metrics record as a "record" event.
func (tl *TraceLogger) LogRecord(m models.Metrics) {
	if tl == nil {
		return
	}
	tl.Log(map[string]any{
		"event":        "record",
		"episode":      m.Episode,
		"strategy":     string(m.Strategy),
		"conflicts":    m.Conflicts,
		"delay":        m.Delay,
		"utilization":  m.Utilization,
		"success_rate": m.SuccessRate,
		"throughput":   m.Throughput,
	})
}

// Close closes the underlying file. Safe to call on nil receiver.
func (tl *TraceLogger) Close() {
	if tl == nil || tl.file == nil {
		return
	}

	tl.mu.Lock()
	defer tl.mu.Unlock()

	tl.file.Close()
	tl.file = nil
}
