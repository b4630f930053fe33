package constraint

import (
	"time"

	"github.com/javiermolinar/weekview/internal/interval"
)

// Validator is an optional host check run after the disabled ranges pass.
type Validator func(start, end time.Time) bool

// Candidate is a proposed interval, such as a selection or an edited event.
type Candidate struct {
	Start time.Time
	End   time.Time
}

// IsAdmissible reports whether [start, end) avoids every range, applied to
// the calendar date of start, and the validator (if any) approves.
// Touching a disabled range is allowed. An inverted interval is never
// admissible.
func IsAdmissible(start, end time.Time, ranges []Range, validator Validator) bool {
	if end.Before(start) {
		return false
	}
	for _, r := range ranges {
		rs, re := r.On(start)
		if interval.Overlaps(start, end, rs, re) {
			return false
		}
	}
	if validator != nil {
		return validator(start, end)
	}
	return true
}

// Admissible checks a candidate against the week. Candidates that cross
// midnight are checked against the ranges of every day they touch.
func (w Week) Admissible(c Candidate, validator Validator) bool {
	if c.End.Before(c.Start) {
		return false
	}
	day := interval.StartOfDay(c.Start)
	for {
		for _, r := range w.ForDate(day) {
			rs, re := r.On(day)
			if interval.Overlaps(c.Start, c.End, rs, re) {
				return false
			}
		}
		day = day.AddDate(0, 0, 1)
		if !day.Before(c.End) {
			break
		}
	}
	if validator != nil {
		return validator(c.Start, c.End)
	}
	return true
}
