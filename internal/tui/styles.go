package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/weekview/internal/tui/theme"
)

// timeColumnWidth is the width of the time labels column.
const timeColumnWidth = 6

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	// Header
	TitleStyle          lipgloss.Style
	DayHeaderStyle      lipgloss.Style
	DayHeaderTodayStyle lipgloss.Style

	// Time column
	TimeColumnStyle lipgloss.Style
	TimeNowStyle    lipgloss.Style

	// Grid cells
	EmptyCellStyle    lipgloss.Style
	DisabledCellStyle lipgloss.Style
	CursorStyle       lipgloss.Style
	CandidateStyle    lipgloss.Style
	RejectedStyle     lipgloss.Style
	AllDayStyle       lipgloss.Style

	// Footer
	StatusStyle      lipgloss.Style
	StatusErrorStyle lipgloss.Style
	ModeStyle        lipgloss.Style
	HelpStyle        lipgloss.Style

	// event styles by color and shade
	events map[eventStyleKey]lipgloss.Style
}

type eventStyleKey struct {
	color string
	alt   bool
	focus bool
}

// NewStyles creates styles from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)

	base := lipgloss.NewStyle().Background(p.Bg).Foreground(p.Fg)

	return &Styles{
		palette: p,

		TitleStyle:          base.Foreground(p.Accent).Bold(true),
		DayHeaderStyle:      base.Foreground(p.Fg).Bold(true).Align(lipgloss.Center),
		DayHeaderTodayStyle: lipgloss.NewStyle().Background(p.Accent).Foreground(p.TextOnAccent).Bold(true).Align(lipgloss.Center),

		TimeColumnStyle: base.Foreground(p.FgMuted).Width(timeColumnWidth).Align(lipgloss.Right).PaddingRight(1),
		TimeNowStyle:    base.Foreground(p.Now).Bold(true).Width(timeColumnWidth).Align(lipgloss.Right).PaddingRight(1),

		EmptyCellStyle:    base,
		DisabledCellStyle: lipgloss.NewStyle().Background(p.DisabledBg).Foreground(p.FgMuted),
		CursorStyle:       lipgloss.NewStyle().Background(p.BgSelection).Foreground(p.Fg),
		CandidateStyle:    lipgloss.NewStyle().Background(p.Accent).Foreground(p.TextOnAccent).Bold(true),
		RejectedStyle:     lipgloss.NewStyle().Background(p.Warning).Foreground(p.Bg).Bold(true),
		AllDayStyle:       lipgloss.NewStyle().Background(p.AllDayBg).Foreground(p.TextOnAllDay),

		StatusStyle:      base.Foreground(p.FgMuted),
		StatusErrorStyle: base.Foreground(p.Warning).Bold(true),
		ModeStyle:        lipgloss.NewStyle().Background(p.Accent).Foreground(p.TextOnAccent).Bold(true).Padding(0, 1),
		HelpStyle:        base.Foreground(p.FgMuted),

		events: make(map[eventStyleKey]lipgloss.Style),
	}
}

// Event returns the style for an event block, honoring the event's own color.
func (s *Styles) Event(color string, alt, focus bool) lipgloss.Style {
	key := eventStyleKey{color: color, alt: alt, focus: focus}
	if style, ok := s.events[key]; ok {
		return style
	}
	bg, fg := s.palette.EventColors(color, alt)
	style := lipgloss.NewStyle().Background(bg).Foreground(fg)
	if focus {
		style = style.Bold(true).Underline(true)
	}
	s.events[key] = style
	return style
}
