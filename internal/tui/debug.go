package tui

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/weekview/internal/edit"
)

// DebugLogPath is the fixed path for debug logs
const DebugLogPath = "weekview-debug.log"

// debugLogger logs TUI state, keystrokes, and edits as JSON lines.
// It is nil when debugging is off, so every helper checks it first.
type debugLogger struct {
	logger *slog.Logger
	closer io.Closer
	seq    atomic.Int64
}

// Global debug logger instance
var debugLog *debugLogger

// InitDebugLogger opens the debug log if debug mode is enabled.
func InitDebugLogger(enabled bool) error {
	if !enabled {
		debugLog = nil
		return nil
	}

	// Create log file in current directory with fixed name (easy to find)
	f, err := os.Create(DebugLogPath)
	if err != nil {
		return fmt.Errorf("creating debug log: %w", err)
	}
	setDebugOutput(f, f)

	debugLog.log("DEBUG_START", "log_file", DebugLogPath, "time", time.Now().Format(time.RFC3339))
	return nil
}

// setDebugOutput points the debug logger at w. closer may be nil.
func setDebugOutput(w io.Writer, closer io.Closer) {
	debugLog = &debugLogger{
		logger: slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})),
		closer: closer,
	}
}

// CloseDebugLogger closes the debug log file.
func CloseDebugLogger() {
	if debugLog == nil {
		return
	}
	debugLog.log("DEBUG_END", "time", time.Now().Format(time.RFC3339))
	if debugLog.closer != nil {
		_ = debugLog.closer.Close()
	}
	debugLog = nil
}

// log writes a structured log entry.
func (d *debugLogger) log(event string, args ...any) {
	if d == nil {
		return
	}
	args = append([]any{"seq", d.seq.Add(1)}, args...)
	d.logger.Debug(event, args...)
}

// LogKeyPress logs a key press event.
func LogKeyPress(msg tea.KeyMsg) {
	debugLog.log("KEY_PRESS", "key", msg.String())
}

// LogModeChange logs a mode change.
func LogModeChange(from, to Mode, reason string) {
	if from == to {
		return
	}
	debugLog.log("MODE_CHANGE", "from", from.String(), "to", to.String(), "reason", reason)
}

// LogCursorMove logs cursor movement.
func LogCursorMove(c Position, reason string) {
	debugLog.log("CURSOR_MOVE", "day", c.Day, "minute", c.Minute, "reason", reason)
}

// LogNotifications logs what an edit session reported to the host.
func LogNotifications(ns []edit.Notification) {
	if debugLog == nil {
		return
	}
	for _, n := range ns {
		id := ""
		if n.Event != nil {
			id = n.Event.ID
		}
		debugLog.log("EDIT", "kind", n.Kind.String(), "event", id,
			"start", n.Start.Format(time.DateTime), "end", n.End.Format(time.DateTime))
	}
}

// LogPage logs a layout recomputation.
func LogPage(start time.Time, days, events int, warnings int) {
	debugLog.log("PAGE", "start", start.Format(time.DateOnly), "days", days, "events", events, "warnings", warnings)
}

// LogError logs an error.
func LogError(context string, err error) {
	if err == nil {
		return
	}
	debugLog.log("ERROR", "context", context, "error", err.Error())
}
