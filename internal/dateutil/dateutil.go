// Package dateutil provides day windows, page navigation and date parsing.
package dateutil

import (
	"errors"
	"strings"
	"time"
)

// Validation errors.
var (
	ErrInvalidDateFormat = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidWeekday    = errors.New("unknown weekday")
)

// weekdayMap maps weekday names to time.Weekday values.
var weekdayMap = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sun":       time.Sunday,
	"mon":       time.Monday,
	"tue":       time.Tuesday,
	"wed":       time.Wednesday,
	"thu":       time.Thursday,
	"fri":       time.Friday,
	"sat":       time.Saturday,
}

// ParseWeekday parses a full or three-letter weekday name, case-insensitively.
func ParseWeekday(s string) (time.Weekday, error) {
	d, ok := weekdayMap[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, ErrInvalidWeekday
	}
	return d, nil
}

// ParseDate parses a date string in YYYY-MM-DD format.
// If the string is empty, returns today's date.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return TruncateToDay(time.Now()), nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekRange returns the Monday and Sunday of the ISO week containing t.
func WeekRange(t time.Time) (monday, sunday time.Time) {
	t = TruncateToDay(t)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday becomes day 7 in ISO week
	}
	monday = t.AddDate(0, 0, -(weekday - 1))
	sunday = monday.AddDate(0, 0, 6)
	return monday, sunday
}

// Days returns n consecutive dates starting at the day of initial.
// With rtl the dates are listed newest first.
func Days(initial time.Time, n int, rtl bool) []time.Time {
	if n <= 0 {
		return nil
	}
	first := TruncateToDay(initial)
	days := make([]time.Time, n)
	for i := range days {
		idx := i
		if rtl {
			idx = n - 1 - i
		}
		days[idx] = first.AddDate(0, 0, i)
	}
	return days
}

// PageStartAt controls where a page begins relative to a date.
// When UseWeekday is set, pages begin on the last Weekday on or before the
// date. Otherwise they begin Left days before it.
type PageStartAt struct {
	Left       int
	Weekday    time.Weekday
	UseWeekday bool
}

// PageStart returns the first day of the page that shows date.
func PageStart(date time.Time, at PageStartAt) time.Time {
	d := TruncateToDay(date)
	if at.UseWeekday {
		back := (int(d.Weekday()) - int(at.Weekday) + 7) % 7
		return d.AddDate(0, 0, -back)
	}
	return d.AddDate(0, 0, -max(at.Left, 0))
}

// NextPage returns the first day of the page after the one starting at start.
func NextPage(start time.Time, numberOfDays int) time.Time {
	return TruncateToDay(start).AddDate(0, 0, numberOfDays)
}

// PrevPage returns the first day of the page before the one starting at start.
func PrevPage(start time.Time, numberOfDays int) time.Time {
	return TruncateToDay(start).AddDate(0, 0, -numberOfDays)
}

// fixedWeekStart is a Sunday; FixedWeekDate builds dates in that week.
var fixedWeekStart = time.Date(2023, 1, 1, 0, 0, 0, 0, time.Local)

// FixedWeekDate returns a date in a fixed reference week with the given
// weekday and time. It is useful for week templates that are not tied to
// a real calendar week.
func FixedWeekDate(day time.Weekday, hour, minute int) time.Time {
	d := fixedWeekStart.AddDate(0, 0, int(day))
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, d.Location())
}

// ParseRelativeDate parses a date string that can be:
//   - Empty string or "today": returns relativeTo date
//   - Absolute date: "2025-01-15" (YYYY-MM-DD)
//   - Keywords: "tomorrow", "yesterday"
//   - Weekday names: "monday" through "sunday" (next occurrence, always future)
//   - Next prefixed: "next-monday" through "next-sunday", "next-week"
//   - Last prefixed: "last-monday" through "last-sunday", "last-week"
//
// All inputs are case-insensitive.
// Returns ErrInvalidDateFormat for unrecognized input.
func ParseRelativeDate(s string, relativeTo time.Time) (time.Time, error) {
	today := TruncateToDay(relativeTo)
	input := strings.ToLower(strings.TrimSpace(s))

	switch input {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	case "next-week":
		return today.AddDate(0, 0, 7), nil
	case "last-week":
		return today.AddDate(0, 0, -7), nil
	}

	if name, ok := strings.CutPrefix(input, "next-"); ok {
		if targetDay, ok := weekdayMap[name]; ok {
			return nextWeekday(today, targetDay), nil
		}
		return time.Time{}, ErrInvalidDateFormat
	}
	if name, ok := strings.CutPrefix(input, "last-"); ok {
		if targetDay, ok := weekdayMap[name]; ok {
			return prevWeekday(today, targetDay), nil
		}
		return time.Time{}, ErrInvalidDateFormat
	}

	if targetDay, ok := weekdayMap[input]; ok {
		return nextWeekday(today, targetDay), nil
	}

	result, err := time.ParseInLocation("2006-01-02", input, relativeTo.Location())
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return result, nil
}

// nextWeekday returns the next occurrence of the given weekday after today.
// If today is the target weekday, returns one week from today.
func nextWeekday(today time.Time, target time.Weekday) time.Time {
	daysUntil := int(target) - int(today.Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return today.AddDate(0, 0, daysUntil)
}

// prevWeekday returns the last occurrence of the given weekday before today.
func prevWeekday(today time.Time, target time.Weekday) time.Time {
	daysBack := int(today.Weekday()) - int(target)
	if daysBack <= 0 {
		daysBack += 7
	}
	return today.AddDate(0, 0, -daysBack)
}
