package edit

import (
	"time"

	"github.com/javiermolinar/weekview/internal/event"
	"github.com/javiermolinar/weekview/internal/geometry"
	"github.com/javiermolinar/weekview/internal/interval"
)

// Side is the handle grabbed on an event box.
type Side int

const (
	SideNone Side = iota
	SideLeft
	SideRight
	SideTop
	SideBottom
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	default:
		return "none"
	}
}

// Grid converts pointer positions on the events area into times.
// X is measured from the left edge of the first visible day, Y from the top
// of the visible window.
type Grid struct {
	FirstDay time.Time
	DayWidth float64
	Vertical geometry.Vertical
}

// atSeconds returns midnight of date shifted by whole days and then by secs.
func atSeconds(date time.Time, days, secs int) time.Time {
	d := interval.StartOfDay(date).AddDate(0, 0, days)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, secs, 0, d.Location())
}

// GridTouch returns the day column and instant under (x, y).
func (g Grid) GridTouch(x, y float64) (dayIndex int, at time.Time) {
	dayIndex = geometry.XToDayIndex(x, g.DayWidth)
	return dayIndex, atSeconds(g.FirstDay, dayIndex, g.Vertical.ToSecondsInDay(y))
}

// DragTarget returns the new interval for an event dropped at (newX, newY).
// newX is relative to the event's own day column and eventWidth is its box
// width; the day changes once the box centre crosses a column boundary.
// The duration is preserved.
func (g Grid) DragTarget(e *event.Event, newX, newY, eventWidth float64) (start, end time.Time) {
	anchor := min(eventWidth, g.DayWidth) / 2
	movedDays := geometry.XToDayIndex(newX+anchor, g.DayWidth)
	start = atSeconds(e.Start, movedDays, g.Vertical.ToSecondsInDay(newY))
	return start, start.Add(e.Duration())
}

// EditTarget returns the new interval after dragging one handle of e to
// position. Left/right positions are horizontal offsets relative to the
// event's start column; top/bottom positions are vertical offsets.
func (g Grid) EditTarget(e *event.Event, side Side, position float64) (start, end time.Time) {
	start, end = e.Start, e.End
	switch side {
	case SideLeft:
		start = start.AddDate(0, 0, geometry.XToDayIndex(position, g.DayWidth))
	case SideRight:
		newRight := geometry.XToDayIndex(position, g.DayWidth)
		prevRight := int(e.End.Sub(e.Start) / (24 * time.Hour))
		end = end.AddDate(0, 0, newRight-prevRight)
	case SideTop:
		start = atSeconds(start, 0, g.Vertical.ToSecondsInDay(position))
	case SideBottom:
		end = atSeconds(end, 0, g.Vertical.ToSecondsInDay(position))
	}
	return start, end
}
