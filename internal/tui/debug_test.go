package tui

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/weekview/internal/edit"
	"github.com/javiermolinar/weekview/internal/event"
)

func TestDebugLogger(t *testing.T) {
	var buf bytes.Buffer
	setDebugOutput(&buf, nil)
	t.Cleanup(func() { debugLog = nil })

	LogKeyPress(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	LogModeChange(ModeNormal, ModeNormal, "noop")
	LogModeChange(ModeNormal, ModeDrag, "press drag")
	LogNotifications([]edit.Notification{{
		Kind:  edit.IntervalChanged,
		Event: &event.Event{ID: "standup"},
		Start: at(9, 0),
		End:   at(10, 0),
	}})
	LogError("load", errors.New("boom"))
	LogError("load", nil)
	CloseDebugLogger()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	want := []string{`"msg":"KEY_PRESS"`, `"msg":"MODE_CHANGE"`, `"msg":"EDIT"`, `"msg":"ERROR"`, `"msg":"DEBUG_END"`}
	if len(lines) != len(want) {
		t.Fatalf("got %d log lines, want %d:\n%s", len(lines), len(want), buf.String())
	}
	for i, w := range want {
		if !strings.Contains(lines[i], w) {
			t.Errorf("line %d = %s, want %s", i, lines[i], w)
		}
		if !strings.Contains(lines[i], `"seq":`) {
			t.Errorf("line %d has no sequence number", i)
		}
	}
	if !strings.Contains(lines[1], `"to":"drag"`) {
		t.Errorf("mode change = %s", lines[1])
	}
	if !strings.Contains(lines[2], `"event":"standup"`) || !strings.Contains(lines[2], time.Date(2025, 1, 13, 9, 0, 0, 0, time.UTC).Format(time.DateTime)) {
		t.Errorf("edit = %s", lines[2])
	}
	if debugLog != nil {
		t.Error("debugLog not cleared on close")
	}
}

func TestDebugLoggerDisabled(t *testing.T) {
	if err := InitDebugLogger(false); err != nil {
		t.Fatalf("InitDebugLogger(false) error = %v", err)
	}
	// Logging with no logger must not panic.
	LogKeyPress(tea.KeyMsg{Type: tea.KeyEnter})
	LogPage(testNow, 5, 2, 0)
	CloseDebugLogger()
}

func TestModeHelp(t *testing.T) {
	k := newKeyMap()
	normal := modeHelp{keys: k, mode: ModeNormal}.ShortHelp()
	editing := modeHelp{keys: k, mode: ModeDrag}.ShortHelp()

	helpKeys := func(m Mode) []string {
		var out []string
		for _, b := range (modeHelp{keys: k, mode: m}).ShortHelp() {
			out = append(out, b.Help().Key)
		}
		return out
	}

	if len(normal) == 0 || len(editing) == 0 {
		t.Fatal("empty help")
	}
	if !slices.Contains(helpKeys(ModeNormal), "s") || slices.Contains(helpKeys(ModeNormal), "esc") {
		t.Errorf("normal help = %v", helpKeys(ModeNormal))
	}
	if !slices.Contains(helpKeys(ModeResize), "esc") || slices.Contains(helpKeys(ModeResize), "s") {
		t.Errorf("edit help = %v", helpKeys(ModeResize))
	}
	if rows := (modeHelp{keys: k, mode: ModeNormal}).FullHelp(); len(rows) != 5 {
		t.Errorf("full help rows = %d, want 5", len(rows))
	}
}
