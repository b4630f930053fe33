// Package interval provides half-open time interval helpers shared by the
// layout and constraint packages.
package interval

import (
	"fmt"
	"time"
)

// Tolerance is the overlap epsilon used everywhere an overlap is decided:
// lane packing, group detection and disabled-range admissibility.
// Intervals that touch, or overlap by less than Tolerance, do not conflict.
const Tolerance = 5 * time.Second

// MinutesPerDay is 24 hours * 60 minutes.
const MinutesPerDay = 1440

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) overlap by more
// than Tolerance. A shared boundary instant is not an overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd.Add(-Tolerance)) && bStart.Before(aEnd.Add(-Tolerance))
}

// EndsBefore reports whether an interval ending at end leaves room for one
// starting at start, allowing for Tolerance.
func EndsBefore(end, start time.Time) bool {
	return !end.Add(-Tolerance).After(start)
}

// MinutesOverlap reports whether two minute-of-day ranges overlap.
// Minute ranges are whole minutes, so touching ranges never overlap.
func MinutesOverlap(start1, end1, start2, end2 int) bool {
	return start1 < end2 && start2 < end1
}

// OverlapMinutes returns the number of minutes two minute-of-day ranges share.
func OverlapMinutes(start1, end1, start2, end2 int) int {
	overlapStart := max(start1, start2)
	overlapEnd := min(end1, end2)
	if overlapEnd <= overlapStart {
		return 0
	}
	return overlapEnd - overlapStart
}

// MinuteOfDay returns the minutes elapsed since local midnight of t.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// SecondOfDay returns the seconds elapsed since local midnight of t.
func SecondOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

// StartOfDay returns local midnight of the day containing t.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// OnDate returns the instant minute minutes after midnight of date's day.
// A minute of 1440 yields the following midnight.
func OnDate(date time.Time, minute int) time.Time {
	d := StartOfDay(date)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, minute, 0, 0, d.Location())
}

// ParseClock converts "HH:MM" to minutes since midnight.
// "24:00" is accepted as the end of the day.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("time must be in HH:MM format, got %q", s)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("time must be in HH:MM format, got %q", s)
		}
	}
	hours := int(s[0]-'0')*10 + int(s[1]-'0')
	mins := int(s[3]-'0')*10 + int(s[4]-'0')
	if mins > 59 || hours > 24 || (hours == 24 && mins != 0) {
		return 0, fmt.Errorf("time out of range: %q", s)
	}
	return hours*60 + mins, nil
}

// FormatClock converts minutes since midnight to "HH:MM".
// Values are clamped to [00:00, 24:00].
func FormatClock(m int) string {
	if m < 0 {
		m = 0
	}
	if m > MinutesPerDay {
		m = MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
