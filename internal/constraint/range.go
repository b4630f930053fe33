// Package constraint decides whether proposed intervals avoid disabled time.
package constraint

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/javiermolinar/weekview/internal/interval"
)

// ErrInvalidRange is returned for a disabled range outside the day or with
// start >= end.
var ErrInvalidRange = errors.New("disabled range must satisfy 00:00 <= start < end <= 24:00")

// Range is a disabled [Start, End) span in minutes of day. Ranges are
// templates: they apply to every date with the matching weekday.
type Range struct {
	Start int
	End   int
}

// Validate checks the range bounds.
func (r Range) Validate() error {
	if r.Start < 0 || r.End > interval.MinutesPerDay || r.Start >= r.End {
		return fmt.Errorf("%w: %s", ErrInvalidRange, r)
	}
	return nil
}

func (r Range) String() string {
	return interval.FormatClock(r.Start) + "-" + interval.FormatClock(r.End)
}

// On returns the range applied to the calendar date of date.
func (r Range) On(date time.Time) (start, end time.Time) {
	return interval.OnDate(date, r.Start), interval.OnDate(date, r.End)
}

// Clamp limits the range to [begin, end) and reports whether anything is left.
func (r Range) Clamp(begin, end int) (Range, bool) {
	c := Range{Start: max(r.Start, begin), End: min(r.End, end)}
	return c, c.Start < c.End
}

// ParseRange parses "HH:MM-HH:MM".
func ParseRange(s string) (Range, error) {
	from, to, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return Range{}, fmt.Errorf("%w: %q is not HH:MM-HH:MM", ErrInvalidRange, s)
	}
	start, err := interval.ParseClock(strings.TrimSpace(from))
	if err != nil {
		return Range{}, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	end, err := interval.ParseClock(strings.TrimSpace(to))
	if err != nil {
		return Range{}, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	r := Range{Start: start, End: end}
	if err := r.Validate(); err != nil {
		return Range{}, err
	}
	return r, nil
}

// Week holds disabled ranges per weekday, indexed by time.Weekday.
// Each day's ranges are sorted by start.
type Week [7][]Range

// NewWeek validates and sorts the given ranges.
func NewWeek(ranges map[time.Weekday][]Range) (Week, error) {
	var w Week
	for day, rs := range ranges {
		if day < time.Sunday || day > time.Saturday {
			return Week{}, fmt.Errorf("%w: unknown weekday %d", ErrInvalidRange, day)
		}
		for _, r := range rs {
			if err := r.Validate(); err != nil {
				return Week{}, fmt.Errorf("%s: %w", day, err)
			}
		}
		sorted := slices.Clone(rs)
		slices.SortFunc(sorted, compareRanges)
		w[day] = sorted
	}
	return w, nil
}

func compareRanges(a, b Range) int {
	if a.Start != b.Start {
		return a.Start - b.Start
	}
	return a.End - b.End
}

// ForDay returns the ranges for a weekday.
func (w Week) ForDay(day time.Weekday) []Range {
	if day < time.Sunday || day > time.Saturday {
		return nil
	}
	return w[day]
}

// ForDate returns the ranges for the weekday of date.
func (w Week) ForDate(date time.Time) []Range {
	return w.ForDay(date.Weekday())
}

// IsEmpty reports whether no day has disabled ranges.
func (w Week) IsEmpty() bool {
	for _, rs := range w {
		if len(rs) > 0 {
			return false
		}
	}
	return true
}

// Merge returns a week holding the ranges of both w and other.
func (w Week) Merge(other Week) Week {
	var out Week
	for day := range w {
		merged := append(slices.Clone(w[day]), other[day]...)
		slices.SortFunc(merged, compareRanges)
		out[day] = merged
	}
	return out
}
