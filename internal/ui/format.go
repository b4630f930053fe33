package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/weekview/internal/interval"
	"github.com/javiermolinar/weekview/internal/layout"
	"github.com/javiermolinar/weekview/internal/locale"
)

// PageJSON is the machine-readable form of a laid-out page.
type PageJSON struct {
	Start        string    `json:"start"`
	NumberOfDays int       `json:"number_of_days"`
	DayWidth     float64   `json:"day_width"`
	AllDayLanes  int       `json:"all_day_lanes"`
	Days         []DayJSON `json:"days"`
	Warnings     []string  `json:"warnings,omitempty"`
}

// DayJSON is one day column.
type DayJSON struct {
	Date     string         `json:"date"`
	Header   string         `json:"header"`
	Events   []BoxJSON      `json:"events"`
	AllDay   []AllDayJSON   `json:"all_day,omitempty"`
	Disabled []DisabledJSON `json:"disabled,omitempty"`
}

// BoxJSON is one positioned event.
type BoxJSON struct {
	ID            string  `json:"id"`
	Description   string  `json:"description"`
	Start         string  `json:"start"`
	End           string  `json:"end"`
	Lane          int     `json:"lane"`
	Lanes         int     `json:"lanes"`
	StackPosition int     `json:"stack_position,omitempty"`
	ClippedStart  bool    `json:"clipped_start,omitempty"`
	ClippedEnd    bool    `json:"clipped_end,omitempty"`
	Top           float64 `json:"top"`
	Left          float64 `json:"left"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
}

// AllDayJSON is one all-day header entry.
type AllDayJSON struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Lane        int    `json:"lane"`
	Continues   bool   `json:"continues,omitempty"`
	Continued   bool   `json:"continued,omitempty"`
}

// DisabledJSON is one disabled range clamped to the visible hours.
type DisabledJSON struct {
	Start  string  `json:"start"`
	End    string  `json:"end"`
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

// PageToJSON converts a page using l and headerLayout for day headers.
func PageToJSON(page layout.Page, l locale.Locale, headerLayout string) PageJSON {
	out := PageJSON{
		Start:        page.View.Start.Format("2006-01-02"),
		NumberOfDays: page.View.NumberOfDays,
		DayWidth:     page.View.DayWidth,
		AllDayLanes:  page.AllDayLanes,
		Days:         make([]DayJSON, 0, len(page.Days)),
	}
	for _, w := range page.Warnings {
		out.Warnings = append(out.Warnings, w.String())
	}
	for _, d := range page.Days {
		day := DayJSON{
			Date:   d.Key,
			Header: l.Format(d.Date, headerLayout),
			Events: make([]BoxJSON, 0, len(d.Boxes)),
		}
		for _, b := range d.Boxes {
			day.Events = append(day.Events, BoxJSON{
				ID:            b.Event.ID,
				Description:   b.Event.Description,
				Start:         interval.FormatClock(b.StartMinute()),
				End:           interval.FormatClock(b.EndMinute()),
				Lane:          b.Lane,
				Lanes:         b.NLanes,
				StackPosition: b.StackPosition,
				ClippedStart:  b.ClippedStart,
				ClippedEnd:    b.ClippedEnd,
				Top:           b.Box.Top,
				Left:          b.Box.Left,
				Width:         b.Box.Width,
				Height:        b.Box.Height,
			})
		}
		for _, e := range d.AllDay {
			day.AllDay = append(day.AllDay, AllDayJSON{
				ID:          e.Event.ID,
				Description: e.Event.Description,
				Lane:        e.Lane,
				Continues:   e.Continues,
				Continued:   e.Continued,
			})
		}
		for _, r := range d.Disabled {
			day.Disabled = append(day.Disabled, DisabledJSON{
				Start:  interval.FormatClock(r.Range.Start),
				End:    interval.FormatClock(r.Range.End),
				Top:    r.Box.Top,
				Height: r.Box.Height,
			})
		}
		out.Days = append(out.Days, day)
	}
	return out
}

// PrintOpts configures the text rendering of a page.
type PrintOpts struct {
	Locale       locale.Locale
	HeaderLayout string
	Verbose      bool // Show pixel boxes
	MaxDescWidth int  // Maximum description width (0 = auto)
}

// CalcMaxDescWidth calculates the maximum description width based on options.
func (o PrintOpts) CalcMaxDescWidth(defaultWidth int) int {
	if o.MaxDescWidth > 0 {
		return o.MaxDescWidth
	}
	// "    HH:MM-HH:MM  [l/n]  " plus the box suffix when verbose.
	overhead := 24
	if o.Verbose {
		overhead += 36
	}
	if available := termWidth() - overhead; available > defaultWidth {
		return available
	}
	return defaultWidth
}

// PrintPage writes a day-by-day listing of page.
func PrintPage(w io.Writer, page layout.Page, opts PrintOpts) {
	descWidth := opts.CalcMaxDescWidth(30)

	for i, d := range page.Days {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "  %s\n", formatHeader(opts.Locale.Format(d.Date, opts.HeaderLayout)))

		for _, e := range d.AllDay {
			marks := ""
			if e.Continued {
				marks += "◀"
			}
			if e.Continues {
				marks += "▶"
			}
			fmt.Fprintf(w, "    %-11s  %s  %s %s\n", "all day",
				formatMuted(fmt.Sprintf("[%d]", e.Lane)),
				formatAllDay(ansi.Truncate(e.Event.Description, descWidth, "…")), marks)
		}
		for _, r := range d.Disabled {
			fmt.Fprintf(w, "    %s\n", formatDisabled(fmt.Sprintf("%s  disabled", r.Range)))
		}
		if len(d.Boxes) == 0 && len(d.AllDay) == 0 {
			fmt.Fprintf(w, "    %s\n", formatMuted("no events"))
			continue
		}
		for _, b := range d.Boxes {
			span := fmt.Sprintf("%s-%s", interval.FormatClock(b.StartMinute()), interval.FormatClock(b.EndMinute()))
			lane := fmt.Sprintf("[%d/%d]", b.Lane+1, b.NLanes)
			if b.StackPosition > 0 {
				lane = fmt.Sprintf("[+%d]", b.StackPosition)
			}
			desc := ansi.Truncate(b.Event.Description, descWidth, "…")
			line := fmt.Sprintf("    %s  %s  %s", span, formatMuted(lane), formatEvent(desc))
			if opts.Verbose {
				line += formatMuted(fmt.Sprintf("  x=%.0f y=%.0f w=%.0f h=%.0f",
					b.Box.Left, b.Box.Top, b.Box.Width, b.Box.Height))
			}
			fmt.Fprintln(w, line)
		}
	}

	if len(page.Warnings) > 0 {
		fmt.Fprintln(w)
		for _, warn := range page.Warnings {
			fmt.Fprintf(w, "  %s\n", formatWarn(warn.String()))
		}
	}
}

// FormatDuration formats minutes as a human-readable duration.
func FormatDuration(minutes int) string {
	if minutes == 0 {
		return "0m"
	}
	hours := minutes / 60
	mins := minutes % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh%dm", hours, mins)
}

// rule returns a horizontal separator as wide as the terminal allows.
func rule(limit int) string {
	return strings.Repeat("─", min(termWidth(), limit))
}
