// Package bucket splits events into per-day collections for a window of days.
package bucket

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/javiermolinar/weekview/internal/event"
	"github.com/javiermolinar/weekview/internal/interval"
)

// ErrInvalidWindow is returned when the day window cannot be built.
var ErrInvalidWindow = errors.New("invalid day window")

// KeyLayout is the layout of Day.Key.
const KeyLayout = "2006-01-02"

// Direction controls the order of Result.Days.
type Direction int

const (
	// Forward lists days oldest first.
	Forward Direction = iota
	// Reversed lists days newest first (right-to-left calendars).
	Reversed
)

// Occurrence is the part of an event that falls on one day.
type Occurrence struct {
	Event *event.Event
	// Day is local midnight of the day this occurrence belongs to.
	Day   time.Time
	Start time.Time
	End   time.Time
	// ClippedStart is set when the event began on an earlier day,
	// ClippedEnd when it continues past this day.
	ClippedStart bool
	ClippedEnd   bool

	order int
}

// StartMinute returns the occurrence start as minutes since Day.
func (o Occurrence) StartMinute() int {
	return interval.MinuteOfDay(o.Start)
}

// EndMinute returns the occurrence end as minutes since Day.
// An end at the following midnight is 1440.
func (o Occurrence) EndMinute() int {
	if !o.End.Before(o.Day.AddDate(0, 0, 1)) {
		return interval.MinutesPerDay
	}
	return interval.MinuteOfDay(o.End)
}

// Order returns the position of the event in the input slice.
func (o Occurrence) Order() int {
	return o.order
}

// Day is one column of the window.
type Day struct {
	Key    string
	Date   time.Time
	Events []Occurrence
}

// Warning records an event dropped during bucketing.
type Warning struct {
	EventID string
	Err     error
}

func (w Warning) String() string {
	return fmt.Sprintf("event %q dropped: %v", w.EventID, w.Err)
}

// Result is the output of Events.
type Result struct {
	Days     []Day
	AllDay   AllDay
	Warnings []Warning
}

// Index returns the position of date in Days, or -1.
func (r Result) Index(date time.Time) int {
	key := interval.StartOfDay(date).Format(KeyLayout)
	for i, d := range r.Days {
		if d.Key == key {
			return i
		}
	}
	return -1
}

// Events buckets events into numDays consecutive days starting at the day of
// windowStart. Events outside the window are skipped. Events with an end
// before their start are dropped and reported in Result.Warnings.
func Events(events []*event.Event, windowStart time.Time, numDays int, direction Direction) (Result, error) {
	if numDays <= 0 {
		return Result{}, fmt.Errorf("%w: number of days must be positive, got %d", ErrInvalidWindow, numDays)
	}
	if windowStart.IsZero() {
		return Result{}, fmt.Errorf("%w: window start is not set", ErrInvalidWindow)
	}

	first := interval.StartOfDay(windowStart)
	dates := make([]time.Time, numDays)
	for i := range dates {
		dates[i] = first.AddDate(0, 0, i)
	}

	timed := make([][]Occurrence, numDays)
	var allDay []*event.Event
	var allDayOrder []int
	var warnings []Warning

	for idx, e := range events {
		if e == nil {
			continue
		}
		if err := e.Validate(); err != nil {
			warnings = append(warnings, Warning{EventID: e.ID, Err: err})
			slog.Warn("dropping event", "id", e.ID, "error", err)
			continue
		}
		if e.AllDay {
			allDay = append(allDay, e)
			allDayOrder = append(allDayOrder, idx)
			continue
		}
		for i, date := range dates {
			if occ, ok := clip(e, date, idx); ok {
				timed[i] = append(timed[i], occ)
			}
		}
	}

	days := make([]Day, numDays)
	for i, date := range dates {
		occs := timed[i]
		slices.SortStableFunc(occs, compareOccurrences)
		days[i] = Day{
			Key:    date.Format(KeyLayout),
			Date:   date,
			Events: occs,
		}
	}

	all := assignAllDay(allDay, allDayOrder, dates)

	if direction == Reversed {
		slices.Reverse(days)
		slices.Reverse(all.Days)
	}

	return Result{Days: days, AllDay: all, Warnings: warnings}, nil
}

// clip returns the part of e that falls on date.
func clip(e *event.Event, date time.Time, order int) (Occurrence, bool) {
	dayStart := date
	dayEnd := date.AddDate(0, 0, 1)

	if e.IsZeroDuration() {
		if e.Start.Before(dayStart) || !e.Start.Before(dayEnd) {
			return Occurrence{}, false
		}
		return Occurrence{Event: e, Day: date, Start: e.Start, End: e.End, order: order}, true
	}

	// Half-open [start, end): an event ending exactly at dayStart does not
	// leave a zero-length tail on this day.
	if !e.Start.Before(dayEnd) || !e.End.After(dayStart) {
		return Occurrence{}, false
	}

	occ := Occurrence{Event: e, Day: date, Start: e.Start, End: e.End, order: order}
	if e.Start.Before(dayStart) {
		occ.Start = dayStart
		occ.ClippedStart = true
	}
	if e.End.After(dayEnd) {
		occ.End = dayEnd
		occ.ClippedEnd = true
	}
	return occ, true
}

func compareOccurrences(a, b Occurrence) int {
	if c := a.Start.Compare(b.Start); c != 0 {
		return c
	}
	if c := a.End.Compare(b.End); c != 0 {
		return c
	}
	return cmp.Compare(a.order, b.order)
}
