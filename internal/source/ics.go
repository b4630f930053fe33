package source

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/javiermolinar/weekview/internal/event"
)

var errMissingUID = errors.New("missing UID")

// decodeICS reads VEVENTs. Events that cannot be read are logged and
// skipped; a calendar that cannot be parsed at all is an error.
// RECURRENCE-ID overrides are skipped; only the master rule is expanded.
func decodeICS(r io.Reader, loc *time.Location) ([]item, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("parsing calendar: %w", err)
	}

	var items []item
	for _, ve := range cal.Events() {
		if p := ve.GetProperty(ical.ComponentPropertyRecurrenceId); p != nil {
			slog.Debug("skipping recurrence override", "uid", ve.Id())
			continue
		}
		it, err := parseVEvent(ve, loc)
		if err != nil {
			slog.Warn("skipping calendar event", "uid", ve.Id(), "error", err)
			continue
		}
		items = append(items, it)
	}
	return items, nil
}

func parseVEvent(ve *ical.VEvent, loc *time.Location) (item, error) {
	var it item

	uid := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uid == nil || uid.Value == "" {
		return it, errMissingUID
	}
	it.event.ID = uid.Value

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		it.event.Description = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyColor); p != nil {
		it.event.Color = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		it.rule = strings.TrimPrefix(p.Value, "RRULE:")
	}

	if isAllDay(ve) {
		start, err := ve.GetAllDayStartAt()
		if err != nil {
			return it, fmt.Errorf("DTSTART: %w", err)
		}
		start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
		end := start.AddDate(0, 0, 1)
		if e, err := ve.GetAllDayEndAt(); err == nil {
			end = time.Date(e.Year(), e.Month(), e.Day(), 0, 0, 0, 0, loc)
		}
		it.event.AllDay = true
		it.event.Start, it.event.End = start, end
	} else {
		start, err := ve.GetStartAt()
		if err != nil {
			return it, fmt.Errorf("DTSTART: %w", err)
		}
		end := start
		if e, err := ve.GetEndAt(); err == nil {
			end = e
		}
		it.event.Start, it.event.End = start.In(loc), end.In(loc)
	}

	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			if t, err := parseICSTime(part, loc); err == nil {
				it.exdates = append(it.exdates, t)
			}
		}
	}

	return it, nil
}

// isAllDay reports whether DTSTART is a DATE rather than a DATE-TIME.
func isAllDay(ve *ical.VEvent) bool {
	p := ve.GetProperty(ical.ComponentPropertyDtStart)
	if p == nil {
		return false
	}
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

// parseICSTime parses the basic DATE and DATE-TIME forms used by EXDATE.
func parseICSTime(v string, loc *time.Location) (time.Time, error) {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidTime)
	case strings.HasSuffix(v, "Z"):
		t, err := time.Parse("20060102T150405Z", v)
		return t.In(loc), err
	case strings.Contains(v, "T"):
		return time.ParseInLocation("20060102T150405", v, loc)
	default:
		return time.ParseInLocation("20060102", v, loc)
	}
}

// Encode writes events as an iCalendar document.
func Encode(w io.Writer, events []*event.Event) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//weekview//EN")
	for _, e := range events {
		if e == nil {
			continue
		}
		ve := cal.AddEvent(e.ID)
		ve.SetSummary(e.Description)
		if e.AllDay {
			ve.SetAllDayStartAt(e.Start)
			ve.SetAllDayEndAt(e.End)
		} else {
			ve.SetStartAt(e.Start)
			ve.SetEndAt(e.End)
		}
		if e.Color != "" {
			ve.SetColor(e.Color)
		}
	}
	return cal.SerializeTo(w)
}
