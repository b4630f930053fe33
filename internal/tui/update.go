package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/weekview/internal/geometry"
	"github.com/javiermolinar/weekview/internal/tui/commands"
)

// Screen lines outside the grid.
const (
	headerLines    = 2 // title and day names
	maxAllDayLines = 3
)

// rowResolutions are the minutes per grid row the TUI can show, finest first.
var rowResolutions = []int{15, 30, 60}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.fitRows()
		return m, nil

	case commands.EventsLoadedMsg:
		// A slow load for a page we already left.
		if !msg.Start.Equal(m.view.Start) {
			return m, nil
		}
		m.applyLoaded(msg)
		m.fitRows()
		if len(msg.Truncated) > 0 {
			return m, m.setStatus("Some recurrences were not expanded", true)
		}
		return m, nil

	case commands.ErrMsg:
		m.err = msg.Err
		m.loading = false
		LogError("command", msg.Err)
		return m, m.setStatus(fmt.Sprintf("Error: %v", msg.Err), true)

	case commands.StatusMsgCmd:
		return m, m.setStatus(msg.Msg, false)

	case commands.ClearStatusMsg:
		if !m.now().Before(m.statusTime) {
			m.statusMsg = ""
			m.statusErr = false
		}
		return m, nil
	}
	return m, nil
}

// allDayLines is the number of screen lines used by all-day rows.
func (m Model) allDayLines() int {
	return min(m.page.AllDayLanes, maxAllDayLines)
}

// footerLines is the status line plus the help, which grows when expanded.
func (m Model) footerLines() int {
	return 1 + lipgloss.Height(m.helpView())
}

// gridRows is the number of screen lines left for the time grid.
func (m Model) gridRows() int {
	return max(m.height-headerLines-m.footerLines()-m.allDayLines(), 0)
}

// fitRows picks the finest row resolution that shows the configured hours
// on screen, then keeps the cursor visible.
func (m *Model) fitRows() {
	rows := m.gridRows()
	if rows <= 0 {
		return
	}
	want := int(m.config.View.HoursInDisplay * 60)
	span := m.view.Vertical.End - m.view.Vertical.Begin
	if want <= 0 || want > span {
		want = span
	}
	m.rowMinutes = rowResolutions[len(rowResolutions)-1]
	for _, r := range rowResolutions {
		if rows*r >= want {
			m.rowMinutes = r
			break
		}
	}
	m.cursor.Minute = geometry.Snap(m.cursor.Minute, m.rowMinutes)
	m.ensureCursorVisible()
}

// ensureCursorVisible scrolls so the cursor row is on screen.
func (m *Model) ensureCursorVisible() {
	v := m.view.Vertical
	rows := max(m.gridRows(), 1)
	m.scroll = geometry.Snap(m.scroll, m.rowMinutes)
	if m.cursor.Minute < m.scroll {
		m.scroll = m.cursor.Minute
	}
	if bottom := m.scroll + rows*m.rowMinutes; m.cursor.Minute >= bottom {
		m.scroll = m.cursor.Minute - (rows-1)*m.rowMinutes
	}
	// Never scroll past the end of the window.
	last := geometry.Snap(v.End-1, m.rowMinutes) - (rows-1)*m.rowMinutes
	m.scroll = max(min(m.scroll, last), geometry.Snap(v.Begin, m.rowMinutes))
}
