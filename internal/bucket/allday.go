package bucket

import (
	"cmp"
	"slices"
	"time"

	"github.com/javiermolinar/weekview/internal/event"
)

// AllDayEntry places an all-day event in the header of one day.
type AllDayEntry struct {
	Event *event.Event
	// Lane is the header row. It is the same on every day the event covers.
	Lane int
	// Continues/Continued are set when the event extends past this day or
	// started before it.
	Continues bool
	Continued bool
}

// AllDay holds the header rows for all-day events.
// Days is aligned with Result.Days.
type AllDay struct {
	Days          [][]AllDayEntry
	MaxConcurrent int
}

// MaxVisibleLanes returns the number of header rows needed to show days
// [from, from+n) of the window.
func (a AllDay) MaxVisibleLanes(from, n int) int {
	from = max(from, 0)
	to := min(from+n, len(a.Days))
	lanes := 0
	for i := from; i < to; i++ {
		for _, entry := range a.Days[i] {
			lanes = max(lanes, entry.Lane+1)
		}
	}
	return lanes
}

// assignAllDay gives every all-day event one header lane across all the days
// it covers. Events are placed by start, longest first, in input order.
func assignAllDay(events []*event.Event, order []int, dates []time.Time) AllDay {
	out := AllDay{Days: make([][]AllDayEntry, len(dates))}
	if len(events) == 0 {
		return out
	}

	idx := make([]int, len(events))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		ea, eb := events[a], events[b]
		if c := ea.Start.Compare(eb.Start); c != 0 {
			return c
		}
		if c := eb.End.Compare(ea.End); c != 0 {
			return c
		}
		return cmp.Compare(order[a], order[b])
	})

	// used[day][lane]
	used := make([][]bool, len(dates))

	for _, i := range idx {
		e := events[i]
		covered := coveredDays(e, dates)
		if len(covered) == 0 {
			continue
		}

		lane := 0
		for !laneFree(used, covered, lane) {
			lane++
		}
		for _, d := range covered {
			for len(used[d]) <= lane {
				used[d] = append(used[d], false)
			}
			used[d][lane] = true
			out.Days[d] = append(out.Days[d], AllDayEntry{
				Event:     e,
				Lane:      lane,
				Continued: e.Start.Before(dates[d]),
				Continues: e.End.After(dates[d].AddDate(0, 0, 1)),
			})
		}
		out.MaxConcurrent = max(out.MaxConcurrent, lane+1)
	}

	for d := range out.Days {
		slices.SortStableFunc(out.Days[d], func(a, b AllDayEntry) int {
			return cmp.Compare(a.Lane, b.Lane)
		})
	}
	return out
}

// coveredDays returns the window indices the all-day event spans.
func coveredDays(e *event.Event, dates []time.Time) []int {
	var out []int
	for i, date := range dates {
		dayEnd := date.AddDate(0, 0, 1)
		if e.Start.Before(dayEnd) && e.End.After(date) {
			out = append(out, i)
		}
	}
	return out
}

func laneFree(used [][]bool, days []int, lane int) bool {
	for _, d := range days {
		if lane < len(used[d]) && used[d][lane] {
			return false
		}
	}
	return true
}
