package source

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/weekview/internal/event"
)

func at(day, hour, minute int) time.Time {
	return time.Date(2025, 1, day, hour, minute, 0, 0, time.UTC)
}

var utc = Options{Location: time.UTC}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"week.toml", FormatTOML, false},
		{"week.yaml", FormatYAML, false},
		{"WEEK.YML", FormatYAML, false},
		{"week.json", FormatJSON, false},
		{"calendar.ics", FormatICS, false},
		{"week.csv", "", true},
		{"week", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := DetectFormat(tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownFormat) {
					t.Errorf("expected ErrUnknownFormat, got %v", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("DetectFormat(%q) = %q, %v", tt.path, got, err)
			}
		})
	}
}

func TestDecode_YAML(t *testing.T) {
	doc := `
events:
  - id: standup
    description: Standup
    start: 2025-01-13T09:00
    end: 2025-01-13T09:15
    color: "#a6e3a1"
    overlap: Stack
  - id: offsite
    description: Offsite
    start: 2025-01-14
    end: 2025-01-16
    all_day: true
  - id: flight
    description: Flight
    start: 2025-01-15T22:00:00+01:00
    end: 2025-01-16T02:00:00+01:00
    disable_drag: true
disabled:
  monday: ["12:00-13:00"]
`
	res, err := Decode(strings.NewReader(doc), FormatYAML, utc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(res.Events) != 3 {
		t.Fatalf("got %d events, want 3", len(res.Events))
	}

	standup := res.Events[0]
	if !standup.Start.Equal(at(13, 9, 0)) || !standup.End.Equal(at(13, 9, 15)) {
		t.Errorf("standup = %v..%v", standup.Start, standup.End)
	}
	if standup.Overlap != event.OverlapStack || standup.Color != "#a6e3a1" {
		t.Errorf("standup options = %q %q", standup.Overlap, standup.Color)
	}

	offsite := res.Events[1]
	if !offsite.AllDay || !offsite.Start.Equal(at(14, 0, 0)) || !offsite.End.Equal(at(16, 0, 0)) {
		t.Errorf("offsite = %+v", offsite)
	}

	flight := res.Events[2]
	if !flight.Start.Equal(at(15, 21, 0)) || !flight.DisableDrag {
		t.Errorf("flight = %v drag disabled %v", flight.Start, flight.DisableDrag)
	}
	if flight.Start.Location() != time.UTC {
		t.Errorf("offset times should be converted to the configured location, got %v", flight.Start.Location())
	}

	if got := res.Disabled["monday"]; len(got) != 1 || got[0] != "12:00-13:00" {
		t.Errorf("Disabled = %v", res.Disabled)
	}
}

func TestDecode_TOMLGeneratesStableIDs(t *testing.T) {
	doc := `
[[events]]
description = "Focus"
start = "2025-01-13 10:00"
end = "2025-01-13 12:00"

[[events]]
description = "Holiday"
start = "2025-01-17"
all_day = true
`
	first, err := Decode(strings.NewReader(doc), FormatTOML, utc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	second, err := Decode(strings.NewReader(doc), FormatTOML, utc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	for i := range first.Events {
		id := first.Events[i].ID
		if len(id) != 36 {
			t.Errorf("generated ID %q is not a UUID", id)
		}
		if id != second.Events[i].ID {
			t.Errorf("IDs differ between loads: %q vs %q", id, second.Events[i].ID)
		}
	}
	if first.Events[0].ID == first.Events[1].ID {
		t.Error("distinct events should get distinct IDs")
	}

	holiday := first.Events[1]
	if !holiday.End.Equal(at(18, 0, 0)) {
		t.Errorf("all-day event without end should last one day, ends %v", holiday.End)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		doc     string
		wantErr error
	}{
		{"missing end", FormatYAML, "events:\n  - id: a\n    start: 2025-01-13T09:00\n", ErrMissingEnd},
		{"bad start", FormatYAML, "events:\n  - id: a\n    start: monday\n    end: 2025-01-13T09:00\n", ErrInvalidTime},
		{"bad exdate", FormatJSON, `{"events":[{"id":"a","start":"2025-01-13T09:00","end":"2025-01-13T10:00","rrule":"FREQ=DAILY","exdates":["soon"]}]}`, ErrInvalidTime},
		{"bad rrule", FormatJSON, `{"events":[{"id":"a","start":"2025-01-13T09:00","end":"2025-01-13T10:00","rrule":"FREQ=HOURLYISH"}]}`, ErrInvalidRecurrence},
		{"unknown format", Format("csv"), "", ErrUnknownFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc), tt.format, utc)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("unknown field", func(t *testing.T) {
		_, err := Decode(strings.NewReader(`{"events":[{"id":"a","begin":"09:00"}]}`), FormatJSON, utc)
		if err == nil {
			t.Error("expected error for unknown field")
		}
	})
}

func TestDecode_Empty(t *testing.T) {
	for _, f := range []Format{FormatTOML, FormatYAML, FormatJSON} {
		t.Run(string(f), func(t *testing.T) {
			res, err := Decode(strings.NewReader(""), f, utc)
			if err != nil || len(res.Events) != 0 {
				t.Errorf("Decode(empty) = %d events, %v", len(res.Events), err)
			}
		})
	}
}

func TestRecurrence(t *testing.T) {
	doc := `
events:
  - id: daily
    description: Daily sync
    start: 2025-01-13T09:00
    end: 2025-01-13T10:00
    rrule: RRULE:FREQ=DAILY;COUNT=10
    exdates: ["2025-01-15T09:00"]
  - id: late
    description: Night shift
    start: 2025-01-06T23:00
    end: 2025-01-07T01:00
    rrule: FREQ=DAILY
`
	week := Options{
		Location:    time.UTC,
		WindowStart: at(13, 0, 0),
		WindowEnd:   at(18, 0, 0),
	}

	t.Run("expands inside window", func(t *testing.T) {
		res, err := Decode(strings.NewReader(doc), FormatYAML, week)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		var daily, late []*event.Event
		for _, e := range res.Events {
			switch {
			case strings.HasPrefix(e.ID, "daily@"):
				daily = append(daily, e)
			case strings.HasPrefix(e.ID, "late@"):
				late = append(late, e)
			}
		}
		// 13, 14, 16, 17; the 15th is excluded.
		if len(daily) != 4 {
			t.Fatalf("got %d daily occurrences, want 4", len(daily))
		}
		if daily[0].ID != "daily@20250113T090000" {
			t.Errorf("first ID = %q", daily[0].ID)
		}
		if !daily[2].Start.Equal(at(16, 9, 0)) || !daily[2].End.Equal(at(16, 10, 0)) {
			t.Errorf("third occurrence = %v..%v", daily[2].Start, daily[2].End)
		}
		// The occurrence starting on the 12th reaches into the window.
		if len(late) != 6 {
			t.Fatalf("got %d late occurrences, want 6", len(late))
		}
		if !late[0].Start.Equal(at(12, 23, 0)) {
			t.Errorf("first late occurrence starts %v", late[0].Start)
		}
	})

	t.Run("no window keeps the first occurrence", func(t *testing.T) {
		res, err := Decode(strings.NewReader(doc), FormatYAML, utc)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if len(res.Events) != 2 || res.Events[0].ID != "daily" {
			t.Errorf("got %d events", len(res.Events))
		}
	})

	t.Run("cap", func(t *testing.T) {
		capped := week
		capped.MaxOccurrences = 2
		res, err := Decode(strings.NewReader(doc), FormatYAML, capped)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if len(res.Events) != 4 {
			t.Errorf("got %d events, want 4", len(res.Events))
		}
		if len(res.Truncated) != 2 {
			t.Errorf("Truncated = %v", res.Truncated)
		}
	})
}

const calendar = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//test//EN
BEGIN:VEVENT
UID:review@example.com
SUMMARY:Design review
DTSTART:20250113T140000Z
DTEND:20250113T153000Z
COLOR:tomato
END:VEVENT
BEGIN:VEVENT
UID:conf@example.com
SUMMARY:Conference
DTSTART;VALUE=DATE:20250114
DTEND;VALUE=DATE:20250116
END:VEVENT
BEGIN:VEVENT
UID:gym@example.com
SUMMARY:Gym
DTSTART:20250113T070000Z
DTEND:20250113T080000Z
RRULE:FREQ=DAILY;COUNT=3
EXDATE:20250114T070000Z
END:VEVENT
BEGIN:VEVENT
UID:gym@example.com
RECURRENCE-ID:20250115T070000Z
SUMMARY:Gym (moved)
DTSTART:20250115T080000Z
DTEND:20250115T090000Z
END:VEVENT
BEGIN:VEVENT
SUMMARY:No UID
DTSTART:20250113T100000Z
DTEND:20250113T110000Z
END:VEVENT
END:VCALENDAR
`

func TestDecode_ICS(t *testing.T) {
	doc := strings.ReplaceAll(calendar, "\n", "\r\n")
	opts := Options{Location: time.UTC, WindowStart: at(13, 0, 0), WindowEnd: at(20, 0, 0)}

	res, err := Decode(strings.NewReader(doc), FormatICS, opts)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	byID := make(map[string]*event.Event)
	for _, e := range res.Events {
		byID[e.ID] = e
	}
	if len(byID) != 4 {
		t.Fatalf("got events %v, want review, conf and two gym occurrences", keys(byID))
	}

	review := byID["review@example.com"]
	if review == nil || !review.Start.Equal(at(13, 14, 0)) || !review.End.Equal(at(13, 15, 30)) || review.Color != "tomato" {
		t.Errorf("review = %+v", review)
	}
	conf := byID["conf@example.com"]
	if conf == nil || !conf.AllDay || !conf.Start.Equal(at(14, 0, 0)) || !conf.End.Equal(at(16, 0, 0)) {
		t.Errorf("conf = %+v", conf)
	}
	if _, ok := byID["gym@example.com@20250113T070000"]; !ok {
		t.Error("missing first gym occurrence")
	}
	if _, ok := byID["gym@example.com@20250114T070000"]; ok {
		t.Error("excluded gym occurrence should be skipped")
	}
	if _, ok := byID["gym@example.com@20250115T070000"]; !ok {
		t.Error("missing third gym occurrence")
	}
}

func TestDecode_ICSInvalid(t *testing.T) {
	if _, err := Decode(strings.NewReader("BEGIN:VTODO\r\nEND:VTODO\r\n"), FormatICS, utc); err == nil {
		t.Error("expected error for a document that is not a calendar")
	}
}

func TestEncode(t *testing.T) {
	events := []*event.Event{
		{ID: "a", Description: "Planning", Start: at(13, 9, 0), End: at(13, 10, 30), Color: "blue"},
		{ID: "b", Description: "Away", Start: at(14, 0, 0), End: at(15, 0, 0), AllDay: true},
		nil,
	}
	var buf bytes.Buffer
	if err := Encode(&buf, events); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	res, err := Decode(&buf, FormatICS, utc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(res.Events) != 2 {
		t.Fatalf("got %d events, want 2", len(res.Events))
	}
	a, b := res.Events[0], res.Events[1]
	if a.ID != "a" || !a.Start.Equal(at(13, 9, 0)) || !a.End.Equal(at(13, 10, 30)) || a.Color != "blue" {
		t.Errorf("timed event = %+v", a)
	}
	if !b.AllDay || !b.Start.Equal(at(14, 0, 0)) || !b.End.Equal(at(15, 0, 0)) {
		t.Errorf("all-day event = %+v", b)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "week.json")
	doc := `{"events":[{"id":"x","description":"Lunch","start":"2025-01-13T12:00:00Z","end":"2025-01-13T13:00:00Z"}]}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := Load(path, utc)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(res.Events) != 1 || res.Events[0].Description != "Lunch" {
		t.Errorf("Load = %+v", res.Events)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml"), utc); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := Load(filepath.Join(dir, "notes.txt"), utc); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func keys(m map[string]*event.Event) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
