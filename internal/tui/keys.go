package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/weekview/internal/edit"
	"github.com/javiermolinar/weekview/internal/event"
	"github.com/javiermolinar/weekview/internal/geometry"
	"github.com/javiermolinar/weekview/internal/interval"
	"github.com/javiermolinar/weekview/internal/position"
	"github.com/javiermolinar/weekview/internal/tui/commands"
)

// keyMap holds every binding. Normal and edit modes share the movement keys.
type keyMap struct {
	Left, Right, Up, Down key.Binding
	PrevPage, NextPage    key.Binding
	Today                 key.Binding
	Cycle                 key.Binding
	Select                key.Binding
	Drag                  key.Binding
	ResizeEnd             key.Binding
	ResizeStart           key.Binding
	GrowDays, ShrinkDays  key.Binding
	Copy                  key.Binding
	Reload                key.Binding
	Commit                key.Binding
	Cancel                key.Binding
	Help                  key.Binding
	Quit                  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Left:        key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("←/h", "day")),
		Right:       key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("→/l", "day")),
		Up:          key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "earlier")),
		Down:        key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "later")),
		PrevPage:    key.NewBinding(key.WithKeys("H", "shift+left", "pgup"), key.WithHelp("H", "prev page")),
		NextPage:    key.NewBinding(key.WithKeys("L", "shift+right", "pgdown"), key.WithHelp("L", "next page")),
		Today:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Cycle:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next event")),
		Select:      key.NewBinding(key.WithKeys("s", "enter"), key.WithHelp("s", "select")),
		Drag:        key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move")),
		ResizeEnd:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "resize end")),
		ResizeStart: key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "resize start")),
		GrowDays:    key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "resize days")),
		ShrinkDays:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "resize from left")),
		Copy:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Reload:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Commit:      key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "commit")),
		Cancel:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// modeHelp adapts keyMap to help.KeyMap for the current mode.
type modeHelp struct {
	keys keyMap
	mode Mode
}

func (h modeHelp) ShortHelp() []key.Binding {
	k := h.keys
	if h.mode != ModeNormal {
		return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Commit, k.Cancel}
	}
	return []key.Binding{k.Select, k.Drag, k.ResizeEnd, k.Cycle, k.PrevPage, k.NextPage, k.Help, k.Quit}
}

func (h modeHelp) FullHelp() [][]key.Binding {
	k := h.keys
	if h.mode != ModeNormal {
		return [][]key.Binding{h.ShortHelp()}
	}
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.PrevPage, k.NextPage, k.Today, k.Cycle},
		{k.Select, k.Drag, k.ResizeEnd, k.ResizeStart},
		{k.GrowDays, k.ShrinkDays, k.Copy, k.Reload},
		{k.Help, k.Quit},
	}
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg)

	// Global keys (work in all modes)
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.mode != ModeNormal {
		return m.handleEditKeys(msg)
	}
	return m.handleNormalKeys(msg)
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit

	case key.Matches(msg, k.Left):
		if m.cursor.Day > 0 {
			m.cursor.Day--
			m.focus = 0
			break
		}
		m.cursor.Day = m.view.NumberOfDays - 1
		return m, m.shiftPage(-1)
	case key.Matches(msg, k.Right):
		if m.cursor.Day < len(m.page.Days)-1 {
			m.cursor.Day++
			m.focus = 0
			break
		}
		m.cursor.Day = 0
		return m, m.shiftPage(1)
	case key.Matches(msg, k.Up):
		m.moveCursor(-m.rowMinutes)
	case key.Matches(msg, k.Down):
		m.moveCursor(m.rowMinutes)

	case key.Matches(msg, k.PrevPage):
		return m, m.shiftPage(-1)
	case key.Matches(msg, k.NextPage):
		return m, m.shiftPage(1)
	case key.Matches(msg, k.Today):
		return m, m.goTo(m.now())

	case key.Matches(msg, k.Cycle):
		if n := len(m.eventsAtCursor()); n > 0 {
			m.focus = (m.focus + 1) % n
		}

	case key.Matches(msg, k.Select):
		if _, ok := m.focusedBox(); ok {
			return m.press(edit.Drag, edit.SideRight)
		}
		return m.press(edit.Select, edit.SideRight)
	case key.Matches(msg, k.Drag):
		return m.press(edit.Drag, edit.SideRight)
	case key.Matches(msg, k.ResizeEnd):
		return m.press(edit.ResizeEnd, edit.SideRight)
	case key.Matches(msg, k.ResizeStart):
		return m.press(edit.ResizeStart, edit.SideLeft)
	case key.Matches(msg, k.GrowDays):
		return m.press(edit.ResizeDays, edit.SideRight)
	case key.Matches(msg, k.ShrinkDays):
		return m.press(edit.ResizeDays, edit.SideLeft)

	case key.Matches(msg, k.Copy):
		return m, m.copyCmd()
	case key.Matches(msg, k.Reload):
		m.loading = true
		m.memo.Invalidate()
		return m, m.loadCmd()
	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.fitRows()
	}
	return m, nil
}

// handleEditKeys handles keys while a gesture is active.
func (m Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	steps := max(m.rowMinutes/geometry.StepMinutes, 1)
	days := 1
	if m.config.View.RightToLeft {
		days = -1
	}

	switch {
	case key.Matches(msg, k.Up):
		return m.adjust(edit.Delta{Days: m.delta.Days, Steps: m.delta.Steps - steps})
	case key.Matches(msg, k.Down):
		return m.adjust(edit.Delta{Days: m.delta.Days, Steps: m.delta.Steps + steps})
	case key.Matches(msg, k.Left):
		return m.adjust(edit.Delta{Days: m.delta.Days - days, Steps: m.delta.Steps})
	case key.Matches(msg, k.Right):
		return m.adjust(edit.Delta{Days: m.delta.Days + days, Steps: m.delta.Steps})
	case key.Matches(msg, k.Commit):
		return m.release()
	case key.Matches(msg, k.Cancel):
		m.session = m.session.Cancel().Reset()
		m.setMode(ModeNormal, "cancel")
		return m, m.setStatus("Cancelled", false)
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) setMode(mode Mode, reason string) {
	LogModeChange(m.mode, mode, reason)
	m.mode = mode
}

// moveCursor moves the cursor by minutes, scrolling to keep it visible.
func (m *Model) moveCursor(minutes int) {
	v := m.view.Vertical
	last := geometry.Snap(v.End-1, m.rowMinutes)
	m.cursor.Minute = min(max(m.cursor.Minute+minutes, v.Begin), last)
	m.focus = 0
	m.ensureCursorVisible()
	LogCursorMove(m.cursor, "key")
}

// eventsAtCursor returns the boxes under the cursor row, in lane order.
func (m Model) eventsAtCursor() []position.Positioned {
	if m.cursor.Day >= len(m.page.Days) {
		return nil
	}
	row := rowSpan{start: m.cursor.Minute, end: m.cursor.Minute + m.rowMinutes}
	var out []position.Positioned
	for _, b := range m.page.Days[m.cursor.Day].Boxes {
		if row.overlaps(b.StartMinute(), b.EndMinute()) {
			out = append(out, b)
		}
	}
	return out
}

// focusedBox returns the event the cursor points at, if any.
func (m Model) focusedBox() (position.Positioned, bool) {
	boxes := m.eventsAtCursor()
	if len(boxes) == 0 {
		return position.Positioned{}, false
	}
	return boxes[m.focus%len(boxes)], true
}

// press starts a gesture at the cursor.
func (m Model) press(kind edit.Kind, side edit.Side) (tea.Model, tea.Cmd) {
	target := edit.Target{Date: m.cursorDate(), Minute: m.cursor.Minute, Side: side}
	if kind != edit.Select {
		box, ok := m.focusedBox()
		if !ok {
			return m, m.setStatus("No event under the cursor", true)
		}
		target.Event = box.Event
	}

	session, err := m.session.Press(kind, target)
	if err != nil {
		LogError("press", err)
		msg := err.Error()
		if errors.Is(err, edit.ErrDragDisabled) {
			msg = fmt.Sprintf("%q cannot be moved", target.Event.Description)
		}
		return m, m.setStatus(msg, true)
	}
	m.session = session
	m.delta = edit.Delta{}
	m.setMode(modeFor(kind), "press "+kind.String())
	return m, nil
}

// adjust applies a cumulative offset to the active gesture.
func (m Model) adjust(d edit.Delta) (tea.Model, tea.Cmd) {
	session, notes := m.session.Adjust(d)
	m.session = session
	if len(notes) > 0 {
		m.delta = d
		LogNotifications(notes)
	}
	return m, nil
}

// release commits the gesture and applies the result.
func (m Model) release() (tea.Model, tea.Cmd) {
	session, notes := m.session.Release()
	LogNotifications(notes)
	m.setMode(ModeNormal, "release")

	if session.State() != edit.Committed {
		m.session = session.Reset()
		return m, m.setStatus("Not admissible, edit cancelled", true)
	}

	var status string
	if updated := session.Result(); updated != nil {
		m.events = event.Replace(m.events, updated)
		m.edited[updated.ID] = updated
		m.recompute()
		status = fmt.Sprintf("%s: %s", updated.Description, m.formatSpan(updated.Start, updated.End))
	} else {
		c := session.Candidate()
		m.selection = &c
		status = "Selected " + m.formatSpan(c.Start, c.End)
	}
	m.session = session.Reset()
	return m, m.setStatus(status, false)
}

// copyCmd copies the last selection, or the focused event, as text.
func (m Model) copyCmd() tea.Cmd {
	if box, ok := m.focusedBox(); ok {
		e := box.Event
		return commands.CopyToClipboard(e.Description+" "+m.formatSpan(e.Start, e.End), "event")
	}
	if m.selection != nil {
		return commands.CopyToClipboard(m.formatSpan(m.selection.Start, m.selection.End), "selection")
	}
	status := "Nothing to copy"
	return func() tea.Msg { return commands.StatusMsgCmd{Msg: status} }
}

// formatSpan renders an interval with the locale, e.g. "Mon 13 Jan 09:00-10:30".
func (m Model) formatSpan(start, end time.Time) string {
	from := m.locale.Format(start, "ddd D MMM") + " " + interval.FormatClock(interval.MinuteOfDay(start))
	if interval.StartOfDay(start).Equal(interval.StartOfDay(end)) || end.Equal(interval.StartOfDay(start).AddDate(0, 0, 1)) {
		endMinute := interval.MinuteOfDay(end)
		if !interval.StartOfDay(start).Equal(interval.StartOfDay(end)) {
			endMinute = interval.MinutesPerDay
		}
		return from + "-" + interval.FormatClock(endMinute)
	}
	return from + " - " + m.locale.Format(end, "ddd D MMM") + " " + interval.FormatClock(interval.MinuteOfDay(end))
}
