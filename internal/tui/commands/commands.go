// Package commands provides TUI command constructors and message types.
package commands

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/weekview/internal/config"
	"github.com/javiermolinar/weekview/internal/constraint"
	"github.com/javiermolinar/weekview/internal/event"
	"github.com/javiermolinar/weekview/internal/source"
)

// EventsLoadedMsg is sent when the events file has been read.
type EventsLoadedMsg struct {
	Events []*event.Event
	// Disabled holds ranges declared in the events file.
	Disabled  constraint.Week
	Truncated []string
	// Start is the page the events were expanded for.
	Start time.Time
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// Window is the span recurring events are expanded over.
type Window struct {
	Start time.Time
	End   time.Time
}

// LoadEvents reads the events file at path. Recurring events are expanded
// over w. An empty path loads nothing.
func LoadEvents(path string, w Window) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return EventsLoadedMsg{Start: w.Start}
		}
		res, err := source.Load(path, source.Options{
			Location:    w.Start.Location(),
			WindowStart: w.Start,
			WindowEnd:   w.End,
		})
		if err != nil {
			return ErrMsg{Err: err}
		}

		msg := EventsLoadedMsg{Events: res.Events, Truncated: res.Truncated, Start: w.Start}
		if len(res.Disabled) > 0 {
			fileCfg := config.Config{Disabled: res.Disabled}
			week, err := fileCfg.DisabledWeek()
			if err != nil {
				return ErrMsg{Err: fmt.Errorf("%s: %w", path, err)}
			}
			msg.Disabled = week
		}
		slog.Debug("events loaded", "path", path, "events", len(msg.Events), "truncated", len(msg.Truncated))
		return msg
	}
}

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// CopyToClipboard copies text and reports the outcome as a status message.
func CopyToClipboard(text, what string) tea.Cmd {
	return func() tea.Msg {
		if err := writeClipboard(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying %s: %w", what, err)}
		}
		return StatusMsgCmd{Msg: fmt.Sprintf("Copied %s to clipboard", what)}
	}
}

// ClearStatusAfter clears the status line after d.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
