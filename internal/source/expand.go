package source

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/javiermolinar/weekview/internal/event"
)

// occurrenceIDLayout suffixes the IDs of expanded occurrences.
const occurrenceIDLayout = "20060102T150405"

// expand turns items into events, unrolling recurrence rules inside the
// options window. It returns the IDs of events whose expansion was capped.
func expand(items []item, opts Options) ([]*event.Event, []string) {
	limit := opts.MaxOccurrences
	if limit <= 0 {
		limit = DefaultMaxOccurrences
	}

	var (
		events    []*event.Event
		truncated []string
	)
	for _, it := range items {
		if it.rule == "" || opts.WindowEnd.IsZero() {
			e := it.event
			events = append(events, &e)
			continue
		}

		starts, err := occurrences(it, opts.WindowStart, opts.WindowEnd)
		if err != nil {
			slog.Warn("keeping first occurrence of recurring event", "id", it.event.ID, "rrule", it.rule, "error", err)
			e := it.event
			events = append(events, &e)
			continue
		}
		if len(starts) > limit {
			starts = starts[:limit]
			truncated = append(truncated, it.event.ID)
			slog.Warn("recurrence truncated", "id", it.event.ID, "cap", limit)
		}

		duration := it.event.End.Sub(it.event.Start)
		loc := it.event.Start.Location()
		for _, s := range starts {
			e := it.event
			e.ID = it.event.ID + "@" + s.In(loc).Format(occurrenceIDLayout)
			e.Start = s.In(loc)
			if e.AllDay {
				days := int(duration.Hours()+12) / 24
				e.End = e.Start.AddDate(0, 0, max(days, 1))
			} else {
				e.End = e.Start.Add(duration)
			}
			events = append(events, &e)
		}
	}
	return events, truncated
}

// occurrences returns the starts of every occurrence that intersects
// [windowStart, windowEnd).
func occurrences(it item, windowStart, windowEnd time.Time) ([]time.Time, error) {
	r, err := rrule.StrToRRule(it.rule)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecurrence, err)
	}
	r.DTStart(it.event.Start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range it.exdates {
		set.ExDate(ex.In(it.event.Start.Location()))
	}

	// Occurrences that began before the window can still reach into it.
	from := windowStart.Add(-it.event.End.Sub(it.event.Start))
	starts := set.Between(from, windowEnd, true)

	out := starts[:0]
	for _, s := range starts {
		if s.Before(windowEnd) {
			out = append(out, s)
		}
	}
	return out, nil
}
