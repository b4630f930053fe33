// Package edit implements the press/adjust/release cycle for selecting time
// and dragging or resizing events.
package edit

import (
	"errors"
	"fmt"
	"time"

	"github.com/javiermolinar/weekview/internal/constraint"
	"github.com/javiermolinar/weekview/internal/event"
	"github.com/javiermolinar/weekview/internal/geometry"
	"github.com/javiermolinar/weekview/internal/interval"
)

// Session errors.
var (
	ErrAlreadyActive = errors.New("an edit is already in progress")
	ErrNoEvent       = errors.New("edit requires an event")
	ErrDragDisabled  = errors.New("event does not allow dragging")
	ErrNotAdmissible = errors.New("interval overlaps disabled time")
	ErrUnknownKind   = errors.New("unknown edit kind")
)

// State is the lifecycle position of a Session.
type State int

const (
	Idle State = iota
	Pressed
	Adjusting
	Committed
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pressed:
		return "pressed"
	case Adjusting:
		return "adjusting"
	case Committed:
		return "committed"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Active reports whether a gesture is in progress.
func (s State) Active() bool {
	return s == Pressed || s == Adjusting
}

// Kind is what the gesture edits.
type Kind int

const (
	// Select marks a new interval on the empty grid.
	Select Kind = iota
	// Drag moves an event, possibly to another day.
	Drag
	// ResizeStart moves the top handle.
	ResizeStart
	// ResizeEnd moves the bottom handle.
	ResizeEnd
	// ResizeDays moves the left or right handle by whole days.
	ResizeDays
)

func (k Kind) String() string {
	switch k {
	case Select:
		return "select"
	case Drag:
		return "drag"
	case ResizeStart:
		return "resize-start"
	case ResizeEnd:
		return "resize-end"
	case ResizeDays:
		return "resize-days"
	default:
		return "unknown"
	}
}

// NotificationKind tells the host what happened.
type NotificationKind int

const (
	// IntervalChanged is sent for every accepted adjustment.
	IntervalChanged NotificationKind = iota
	// IntervalSelected is sent once when the gesture is released.
	IntervalSelected
)

func (k NotificationKind) String() string {
	if k == IntervalSelected {
		return "selected"
	}
	return "changed"
}

// Notification carries the candidate interval to the host.
type Notification struct {
	Kind  NotificationKind
	Event *event.Event // nil for selections
	Start time.Time
	End   time.Time
}

// Config holds the constraints applied while editing.
type Config struct {
	Disabled  constraint.Week
	Validator constraint.Validator
	// MinSteps is the shortest interval in quarter-hour steps (default 1).
	MinSteps int
	// TimeStep is the selection length and snap in minutes (default 60).
	TimeStep int
}

func (c Config) timeStep() int {
	if c.TimeStep <= 0 {
		return 60
	}
	return c.TimeStep
}

// Target identifies what a press landed on.
type Target struct {
	Date   time.Time // any instant on the pressed day
	Minute int       // minute of day under the pointer
	Event  *event.Event
	Side   Side // ResizeDays only: SideLeft or SideRight
}

// Delta is the pointer offset since the press, in whole days and
// quarter-hour steps. Offsets are cumulative, not incremental.
type Delta struct {
	Days  int
	Steps int
}

// Session is one edit gesture. It is a value: every transition returns a
// new Session and leaves the receiver untouched. A Session is not safe for
// concurrent use; the host owns it.
type Session struct {
	cfg   Config
	state State
	kind  Kind
	side  Side
	event *event.Event

	origin    constraint.Candidate
	candidate constraint.Candidate
}

// New creates an idle session.
func New(cfg Config) Session {
	return Session{cfg: cfg}
}

// State returns the lifecycle state.
func (s Session) State() State { return s.state }

// Kind returns the gesture kind. Meaningless while idle.
func (s Session) Kind() Kind { return s.kind }

// Event returns the event being edited, or nil for selections.
func (s Session) Event() *event.Event { return s.event }

// Candidate returns the current proposed interval.
func (s Session) Candidate() constraint.Candidate { return s.candidate }

// Result returns a copy of the edited event with the candidate interval.
// It returns nil for selections and idle sessions.
func (s Session) Result() *event.Event {
	if s.event == nil || s.state == Idle || s.state == Cancelled {
		return nil
	}
	return s.event.WithTimes(s.candidate.Start, s.candidate.End)
}

// Press starts a gesture. Selections snap to the time step containing the
// pressed minute and last one step; event gestures start from the event's
// own interval.
func (s Session) Press(kind Kind, t Target) (Session, error) {
	if s.state.Active() {
		return s, ErrAlreadyActive
	}

	next := Session{cfg: s.cfg, state: Pressed, kind: kind, side: t.Side}

	switch kind {
	case Select:
		step := s.cfg.timeStep()
		start := geometry.Snap(min(max(t.Minute, 0), interval.MinutesPerDay-1), step)
		end := min(start+step, interval.MinutesPerDay)
		next.candidate = constraint.Candidate{
			Start: interval.OnDate(t.Date, start),
			End:   interval.OnDate(t.Date, end),
		}
		if !s.admissible(next.candidate) {
			return s, fmt.Errorf("%w: %s-%s", ErrNotAdmissible,
				interval.FormatClock(start), interval.FormatClock(end))
		}
	case Drag, ResizeStart, ResizeEnd, ResizeDays:
		if t.Event == nil {
			return s, ErrNoEvent
		}
		if kind == Drag && !t.Event.CanDrag() {
			return s, ErrDragDisabled
		}
		next.event = t.Event
		next.candidate = constraint.Candidate{Start: t.Event.Start, End: t.Event.End}
	default:
		return s, fmt.Errorf("%w: %d", ErrUnknownKind, kind)
	}

	next.origin = next.candidate
	return next, nil
}

// Adjust applies a pointer offset. Offsets that would produce an invalid
// interval are ignored; accepted ones move the candidate and produce an
// IntervalChanged notification. Adjusting an inactive session does nothing.
func (s Session) Adjust(d Delta) (Session, []Notification) {
	if !s.state.Active() {
		return s, nil
	}

	cand, ok := s.propose(d)
	if !ok {
		return s, nil
	}

	next := s
	next.state = Adjusting
	if cand.Start.Equal(s.candidate.Start) && cand.End.Equal(s.candidate.End) {
		return next, nil
	}
	next.candidate = cand
	return next, []Notification{next.notify(IntervalChanged)}
}

// Release commits the gesture and reports the final interval.
// Releasing an idle or finished session returns it unchanged.
func (s Session) Release() (Session, []Notification) {
	if !s.state.Active() {
		return s, nil
	}
	if !s.admissible(s.candidate) {
		next := s
		next.state = Cancelled
		return next, nil
	}
	next := s
	next.state = Committed
	return next, []Notification{next.notify(IntervalSelected)}
}

// Cancel abandons the gesture without notifying the host.
func (s Session) Cancel() Session {
	if !s.state.Active() {
		return s
	}
	next := s
	next.state = Cancelled
	next.candidate = next.origin
	return next
}

// Reset returns an idle session with the same configuration.
func (s Session) Reset() Session {
	return New(s.cfg)
}

func (s Session) notify(kind NotificationKind) Notification {
	return Notification{
		Kind:  kind,
		Event: s.event,
		Start: s.candidate.Start,
		End:   s.candidate.End,
	}
}

func (s Session) admissible(c constraint.Candidate) bool {
	return s.cfg.Disabled.Admissible(c, s.cfg.Validator)
}

// propose computes the candidate for an offset from the origin.
func (s Session) propose(d Delta) (constraint.Candidate, bool) {
	o := s.origin
	step := time.Duration(geometry.StepMinutes) * time.Minute

	switch s.kind {
	case Select, ResizeStart, ResizeEnd:
		return s.clampSameDay(d.Steps)

	case Drag:
		start := o.Start.AddDate(0, 0, d.Days).Add(time.Duration(d.Steps) * step)
		c := constraint.Candidate{Start: start, End: start.Add(o.End.Sub(o.Start))}
		return c, s.admissible(c)

	case ResizeDays:
		c := o
		switch s.side {
		case SideLeft:
			c.Start = o.Start.AddDate(0, 0, d.Days)
		default:
			c.End = o.End.AddDate(0, 0, d.Days)
		}
		if !c.Start.Before(c.End) {
			return o, false
		}
		return c, s.admissible(c)
	}
	return o, false
}

// clampSameDay moves one boundary of the origin by steps quarter hours,
// staying on the day that boundary belongs to. A zero offset returns the
// origin even when its boundaries are off the grid.
func (s Session) clampSameDay(steps int) (constraint.Candidate, bool) {
	o := s.origin
	if steps == 0 {
		return o, true
	}

	edge := constraint.EdgeEnd
	anchor := o.End
	if s.kind == ResizeStart {
		edge = constraint.EdgeStart
		anchor = o.Start
	}
	day := interval.StartOfDay(anchor)
	if edge == constraint.EdgeEnd && anchor.Equal(day) && o.Start.Before(anchor) {
		// an end at midnight is the bottom of the previous day
		day = day.AddDate(0, 0, -1)
	}
	nextDay := day.AddDate(0, 0, 1)

	startIdx := 0
	if !o.Start.Before(day) {
		startIdx = geometry.MinutesToIndex(interval.MinuteOfDay(o.Start))
	}
	endIdx := constraint.SlotsPerDay
	if o.End.Before(nextDay) {
		endIdx = geometry.MinutesToIndex(interval.MinuteOfDay(o.End) + geometry.StepMinutes - 1)
	}

	b := constraint.Bounds{
		Start:    startIdx,
		End:      endIdx,
		Edge:     edge,
		MinSteps: s.cfg.MinSteps,
		Disabled: s.cfg.Disabled.ForDate(day),
	}
	proposed := endIdx + steps
	if edge == constraint.EdgeStart {
		proposed = startIdx + steps
	}

	c := constraint.ClampEdit(proposed, b)
	if !c.Accepted {
		return o, false
	}

	cand := o
	if edge == constraint.EdgeStart {
		cand.Start = interval.OnDate(day, geometry.IndexToMinutes(c.Start))
	} else {
		cand.End = interval.OnDate(day, geometry.IndexToMinutes(c.End))
	}
	if s.cfg.Validator != nil && !s.cfg.Validator(cand.Start, cand.End) {
		return o, false
	}
	return cand, true
}
