// Package event defines the calendar event model consumed by the layout engine.
package event

import (
	"errors"
	"fmt"
	"time"
)

// Validation errors.
var (
	ErrEmptyID          = errors.New("event id cannot be empty")
	ErrInvalidInterval  = errors.New("event end must be after start")
	ErrInvalidOverlap   = errors.New("overlap mode must be 'lane', 'stack' or 'ignore'")
	ErrMissingTimestamp = errors.New("event start and end are required")
)

// OverlapMode controls how an event shares its day column with others.
type OverlapMode string

const (
	// OverlapLane splits overlapping events into side-by-side lanes.
	OverlapLane OverlapMode = "lane"
	// OverlapStack draws overlapping events on top of each other, offset.
	OverlapStack OverlapMode = "stack"
	// OverlapIgnore takes the full day width regardless of overlaps.
	OverlapIgnore OverlapMode = "ignore"
)

// Valid reports whether the mode is a known value. Empty means lane.
func (m OverlapMode) Valid() bool {
	switch m {
	case "", OverlapLane, OverlapStack, OverlapIgnore:
		return true
	default:
		return false
	}
}

// Event is a time-boxed calendar entry. The engine never mutates events;
// layout results point back at the caller's value.
type Event struct {
	ID          string
	Description string
	Start       time.Time
	End         time.Time
	AllDay      bool

	// Optional per-event overrides.
	Color            string
	DisableDrag      bool
	DisablePress     bool
	DisableLongPress bool
	Overlap          OverlapMode
}

// New creates a timed event with validation.
func New(id, description string, start, end time.Time) (*Event, error) {
	e := &Event{
		ID:          id,
		Description: description,
		Start:       start,
		End:         end,
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Validate checks the event for structural problems.
// Zero-duration timed events are valid; they get a minimum height on layout.
func (e *Event) Validate() error {
	if e.ID == "" {
		return ErrEmptyID
	}
	if e.Start.IsZero() || e.End.IsZero() {
		return ErrMissingTimestamp
	}
	if e.End.Before(e.Start) {
		return fmt.Errorf("%w: %q ends %s before it starts %s",
			ErrInvalidInterval, e.ID,
			e.End.Format(time.RFC3339), e.Start.Format(time.RFC3339))
	}
	if e.AllDay && !e.End.After(e.Start) {
		return fmt.Errorf("%w: all-day event %q has no duration", ErrInvalidInterval, e.ID)
	}
	if !e.Overlap.Valid() {
		return ErrInvalidOverlap
	}
	return nil
}

// Mode returns the effective overlap mode.
func (e *Event) Mode() OverlapMode {
	if e.Overlap == "" {
		return OverlapLane
	}
	return e.Overlap
}

// Duration returns the event length.
func (e *Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// IsZeroDuration reports whether the event starts and ends at the same instant.
func (e *Event) IsZeroDuration() bool {
	return e.Start.Equal(e.End)
}

// CanDrag reports whether drag edits are allowed for this event.
func (e *Event) CanDrag() bool {
	return !e.DisableDrag
}

// CanPress reports whether press callbacks are allowed for this event.
func (e *Event) CanPress() bool {
	return !e.DisablePress
}

// CanLongPress reports whether long-press callbacks are allowed for this event.
func (e *Event) CanLongPress() bool {
	return !e.DisableLongPress
}

// WithTimes returns a copy of the event with a new interval.
// Used by drag and resize edits; the receiver is left untouched.
func (e *Event) WithTimes(start, end time.Time) *Event {
	c := *e
	c.Start = start
	c.End = end
	return &c
}

// Replace returns a copy of events with the event sharing updated's ID
// swapped for updated. Events are matched by ID; other entries are shared.
func Replace(events []*Event, updated *Event) []*Event {
	out := make([]*Event, 0, len(events))
	for _, e := range events {
		if e != nil && updated != nil && e.ID == updated.ID {
			out = append(out, updated)
			continue
		}
		out = append(out, e)
	}
	return out
}
