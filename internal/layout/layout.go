// Package layout runs the full pipeline: bucket events per day, resolve
// overlaps and compute boxes.
package layout

import (
	"errors"
	"fmt"
	"time"

	"github.com/javiermolinar/weekview/internal/bucket"
	"github.com/javiermolinar/weekview/internal/constraint"
	"github.com/javiermolinar/weekview/internal/event"
	"github.com/javiermolinar/weekview/internal/geometry"
	"github.com/javiermolinar/weekview/internal/overlap"
	"github.com/javiermolinar/weekview/internal/position"
)

// ErrInvalidView is returned when the view parameters cannot be laid out.
var ErrInvalidView = errors.New("invalid view")

// View is everything the pipeline needs besides the events.
type View struct {
	Start        time.Time
	NumberOfDays int
	Direction    bucket.Direction
	DayWidth     float64
	Vertical     geometry.Vertical
	Disabled     constraint.Week
}

// Validate checks the view.
func (v View) Validate() error {
	if v.Start.IsZero() {
		return fmt.Errorf("%w: start date is not set", ErrInvalidView)
	}
	if v.NumberOfDays <= 0 {
		return fmt.Errorf("%w: number of days must be positive, got %d", ErrInvalidView, v.NumberOfDays)
	}
	if v.DayWidth <= 0 {
		return fmt.Errorf("%w: day width must be positive, got %v", ErrInvalidView, v.DayWidth)
	}
	if v.Vertical.Resolution <= 0 || v.Vertical.Begin >= v.Vertical.End {
		return fmt.Errorf("%w: %w", ErrInvalidView, geometry.ErrInvalidWindow)
	}
	return nil
}

// Day is one laid-out column.
type Day struct {
	Key      string
	Date     time.Time
	Boxes    []position.Positioned
	Disabled []position.DisabledBox
	AllDay   []bucket.AllDayEntry
}

// Page is the layout of every visible day.
type Page struct {
	View View
	Days []Day
	// AllDayLanes is the number of header rows for all-day events.
	AllDayLanes int
	Warnings    []bucket.Warning
}

// Find returns the box of the event with id on the day with key.
func (p Page) Find(key, id string) (position.Positioned, bool) {
	for _, d := range p.Days {
		if d.Key != key {
			continue
		}
		for _, b := range d.Boxes {
			if b.Event.ID == id {
				return b, true
			}
		}
	}
	return position.Positioned{}, false
}

// Compute lays out events for the view. It never modifies events.
func Compute(events []*event.Event, view View) (Page, error) {
	if err := view.Validate(); err != nil {
		return Page{}, err
	}

	res, err := bucket.Events(events, view.Start, view.NumberOfDays, view.Direction)
	if err != nil {
		return Page{}, fmt.Errorf("bucket events: %w", err)
	}

	page := Page{
		View:        view,
		Days:        make([]Day, len(res.Days)),
		AllDayLanes: res.AllDay.MaxConcurrent,
		Warnings:    res.Warnings,
	}
	for i, d := range res.Days {
		visible := visibleOccurrences(d.Events, view.Vertical)
		page.Days[i] = Day{
			Key:      d.Key,
			Date:     d.Date,
			Boxes:    position.Day(overlap.Resolve(visible), view.DayWidth, view.Vertical),
			Disabled: position.DisabledBoxes(view.Disabled.ForDate(d.Date), view.DayWidth, view.Vertical),
			AllDay:   res.AllDay.Days[i],
		}
	}
	return page, nil
}

// visibleOccurrences drops occurrences entirely outside the visible hours.
func visibleOccurrences(occs []bucket.Occurrence, v geometry.Vertical) []bucket.Occurrence {
	out := make([]bucket.Occurrence, 0, len(occs))
	for _, o := range occs {
		start, end := o.StartMinute(), o.EndMinute()
		if start == end {
			if start >= v.Begin && start < v.End {
				out = append(out, o)
			}
			continue
		}
		if start < v.End && end > v.Begin {
			out = append(out, o)
		}
	}
	return out
}
