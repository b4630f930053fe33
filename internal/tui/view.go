package tui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/weekview/internal/dateutil"
	"github.com/javiermolinar/weekview/internal/geometry"
	"github.com/javiermolinar/weekview/internal/interval"
	"github.com/javiermolinar/weekview/internal/layout"
)

// View renders the TUI.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "Loading..."
	}
	if m.colWidth() < 1 {
		return "Terminal too small"
	}

	lines := []string{m.renderTitle(), m.renderDayHeaders()}
	lines = append(lines, m.renderAllDay()...)
	lines = append(lines, m.renderGrid()...)
	lines = append(lines, m.renderStatus(), m.helpView())
	return strings.Join(lines, "\n")
}

// colWidth is the width of one day column in characters.
func (m Model) colWidth() int {
	if len(m.page.Days) == 0 {
		return 0
	}
	return (m.width - timeColumnWidth) / len(m.page.Days)
}

// fit truncates or pads s to exactly width cells.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "…")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

func (m Model) renderTitle() string {
	title := "weekview"
	if len(m.page.Days) > 0 {
		first, last := m.page.Days[0].Date, m.page.Days[len(m.page.Days)-1].Date
		if last.Before(first) {
			first, last = last, first
		}
		title = m.locale.Format(first, "D MMM") + " - " + m.locale.Format(last, "D MMM YYYY")
	}
	if m.loading {
		title += " …"
	}
	return m.styles.TitleStyle.Render(fit(title, m.width))
}

func (m Model) renderDayHeaders() string {
	var b strings.Builder
	b.WriteString(m.styles.TimeColumnStyle.Render(""))
	today := dateutil.TruncateToDay(m.now())
	w := m.colWidth()
	for _, d := range m.page.Days {
		style := m.styles.DayHeaderStyle
		if d.Date.Equal(today) {
			style = m.styles.DayHeaderTodayStyle
		}
		label := m.locale.Format(d.Date, m.config.View.FormatDateHeader)
		b.WriteString(style.Width(w).Render(ansi.Truncate(label, w, "…")))
	}
	return b.String()
}

// renderAllDay draws one line per all-day lane, up to maxAllDayLines.
func (m Model) renderAllDay() []string {
	n := m.allDayLines()
	lines := make([]string, 0, n)
	w := m.colWidth()
	for lane := 0; lane < n; lane++ {
		var b strings.Builder
		label := ""
		if lane == 0 {
			label = "all"
		}
		b.WriteString(m.styles.TimeColumnStyle.Render(label))
		for _, d := range m.page.Days {
			b.WriteString(m.allDayCell(d, lane, w))
		}
		lines = append(lines, b.String())
	}
	return lines
}

func (m Model) allDayCell(d layout.Day, lane, w int) string {
	for _, e := range d.AllDay {
		if e.Lane != lane {
			continue
		}
		text := e.Event.Description
		if e.Continued {
			text = "… " + text
		}
		style := m.styles.AllDayStyle
		if e.Event.Color != "" {
			style = m.styles.Event(e.Event.Color, false, false)
		}
		return style.Render(fit(text, w))
	}
	return m.styles.EmptyCellStyle.Render(strings.Repeat(" ", w))
}

// renderGrid draws the visible time rows.
func (m Model) renderGrid() []string {
	rows := m.gridRows()
	lines := make([]string, 0, rows)
	w := m.colWidth()
	now := m.now()
	nowDay := m.visibleDayOf(now)
	nowMinute := interval.MinuteOfDay(now)

	focusID := ""
	if box, ok := m.focusedBox(); ok && m.mode == ModeNormal {
		focusID = box.Event.ID
	}

	for r := 0; r < rows; r++ {
		start := m.scroll + r*m.rowMinutes
		if start >= m.view.Vertical.End {
			lines = append(lines, strings.Repeat(" ", m.width))
			continue
		}
		row := rowSpan{start: start, end: start + m.rowMinutes}

		var b strings.Builder
		isNow := m.config.View.ShowNowLine && nowDay >= 0 && row.overlaps(nowMinute, nowMinute)
		b.WriteString(m.timeLabel(row, isNow))

		for i, d := range m.page.Days {
			layers := dayLayers(d, m.page.View.DayWidth, row, m.rowMinutes, m.scroll, w, focusID)
			if l, ok := m.candidateLayer(d, row, w); ok {
				layers = append(layers, l)
			}
			cursor := m.mode == ModeNormal && i == m.cursor.Day && start == m.cursor.Minute
			b.WriteString(m.renderCell(flatten(layers, w), cursor))
		}
		lines = append(lines, b.String())
	}
	return lines
}

func (m Model) timeLabel(row rowSpan, isNow bool) string {
	step := max(m.config.View.TimeStep, m.rowMinutes)
	label := ""
	if row.start%step == 0 {
		label = geometry.FormatClock(row.start, m.config.View.FormatTimeLabel)
	}
	if isNow {
		return m.styles.TimeNowStyle.Render(ansi.Truncate("▸"+label, timeColumnWidth-1, ""))
	}
	return m.styles.TimeColumnStyle.Render(ansi.Truncate(label, timeColumnWidth-1, ""))
}

// candidateLayer draws the active gesture's candidate on the part of day it covers.
func (m Model) candidateLayer(d layout.Day, row rowSpan, w int) (layer, bool) {
	if !m.session.State().Active() {
		return layer{}, false
	}
	c := m.session.Candidate()
	dayStart := dateutil.TruncateToDay(d.Date)
	dayEnd := dayStart.AddDate(0, 0, 1)
	if !c.Start.Before(dayEnd) || !c.End.After(dayStart) {
		return layer{}, false
	}
	startMin := 0
	if c.Start.After(dayStart) {
		startMin = interval.MinuteOfDay(c.Start)
	}
	endMin := interval.MinutesPerDay
	if c.End.Before(dayEnd) {
		endMin = interval.MinuteOfDay(c.End)
	}
	if !row.overlaps(startMin, endMin) {
		return layer{}, false
	}

	text := ""
	if row.start == max(geometry.Snap(startMin, m.rowMinutes), m.scroll) {
		text = interval.FormatClock(startMin) + "-" + interval.FormatClock(endMin)
	}
	return layer{
		kind:     cellCandidate,
		from:     0,
		to:       w,
		text:     text,
		rejected: !m.view.Disabled.Admissible(c, nil),
	}, true
}

func (m Model) renderCell(segs []segment, cursor bool) string {
	var b strings.Builder
	for _, s := range segs {
		var style lipgloss.Style
		switch s.kind {
		case cellDisabled:
			style = m.styles.DisabledCellStyle
		case cellEvent:
			style = m.styles.Event(s.event.Color, s.alt, s.focus)
		case cellCandidate:
			style = m.styles.CandidateStyle
			if s.rejected {
				style = m.styles.RejectedStyle
			}
		default:
			style = m.styles.EmptyCellStyle
			if cursor {
				style = m.styles.CursorStyle
			}
		}
		b.WriteString(style.Render(fit(s.text, s.width)))
	}
	return b.String()
}

func (m Model) renderStatus() string {
	mode := m.styles.ModeStyle.Render(strings.ToUpper(m.mode.String()))
	text := m.statusMsg
	style := m.styles.StatusStyle
	if m.statusErr {
		style = m.styles.StatusErrorStyle
	}
	if text == "" {
		text = m.summary()
	}
	rest := max(m.width-lipgloss.Width(mode)-1, 0)
	return mode + " " + style.Render(fit(text, rest))
}

// summary describes the page when there is no status to show.
func (m Model) summary() string {
	events := 0
	for _, d := range m.page.Days {
		events += len(d.Boxes) + len(d.AllDay)
	}
	s := m.locale.Format(m.cursorDate(), "dddd D MMMM") + " " + interval.FormatClock(m.cursor.Minute)
	if events > 0 {
		s += "  |  " + pluralize(events, "block")
	}
	if n := len(m.page.Warnings); n > 0 {
		s += "  |  " + pluralize(n, "warning")
	}
	return s
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}

func (m Model) helpView() string {
	return m.styles.HelpStyle.Render(m.help.View(modeHelp{keys: m.keys, mode: m.mode}))
}

// visibleDayOf returns the column showing t, or -1.
func (m Model) visibleDayOf(t time.Time) int {
	day := dateutil.TruncateToDay(t)
	for i, d := range m.page.Days {
		if d.Date.Equal(day) {
			return i
		}
	}
	return -1
}
