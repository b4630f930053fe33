package bucket

import (
	"errors"
	"testing"
	"time"

	"github.com/javiermolinar/weekview/internal/event"
)

var monday = time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)

func at(day, hour, minute int) time.Time {
	return monday.AddDate(0, 0, day).Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func ev(id string, start, end time.Time) *event.Event {
	return &event.Event{ID: id, Start: start, End: end}
}

func ids(occs []Occurrence) []string {
	out := make([]string, len(occs))
	for i, o := range occs {
		out[i] = o.Event.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestEvents_InvalidWindow(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		days  int
	}{
		{"zero days", monday, 0},
		{"negative days", monday, -3},
		{"zero start", time.Time{}, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Events(nil, tt.start, tt.days, Forward)
			if !errors.Is(err, ErrInvalidWindow) {
				t.Errorf("expected ErrInvalidWindow, got %v", err)
			}
		})
	}
}

func TestEvents_DaysAndOrder(t *testing.T) {
	events := []*event.Event{
		ev("late", at(0, 14, 0), at(0, 15, 0)),
		ev("early", at(0, 9, 0), at(0, 10, 0)),
		ev("early-long", at(0, 9, 0), at(0, 11, 0)),
		ev("early-twin", at(0, 9, 0), at(0, 10, 0)),
		ev("tuesday", at(1, 8, 0), at(1, 9, 0)),
	}

	res, err := Events(events, monday.Add(13*time.Hour), 3, Forward)
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if len(res.Days) != 3 {
		t.Fatalf("got %d days, want 3", len(res.Days))
	}
	if res.Days[0].Key != "2025-01-13" || res.Days[2].Key != "2025-01-15" {
		t.Errorf("keys = %s..%s", res.Days[0].Key, res.Days[2].Key)
	}

	want := []string{"early", "early-twin", "early-long", "late"}
	if got := ids(res.Days[0].Events); !equalIDs(got, want) {
		t.Errorf("monday = %v, want %v", got, want)
	}
	if got := ids(res.Days[1].Events); !equalIDs(got, []string{"tuesday"}) {
		t.Errorf("tuesday = %v", got)
	}
	if len(res.Days[2].Events) != 0 {
		t.Errorf("wednesday should be empty, got %v", ids(res.Days[2].Events))
	}
}

func TestEvents_Reversed(t *testing.T) {
	res, err := Events(nil, monday, 3, Reversed)
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if res.Days[0].Key != "2025-01-15" || res.Days[2].Key != "2025-01-13" {
		t.Errorf("reversed keys = %s..%s", res.Days[0].Key, res.Days[2].Key)
	}
	if res.Index(at(0, 10, 0)) != 2 {
		t.Errorf("Index(monday) = %d, want 2", res.Index(at(0, 10, 0)))
	}
	if res.Index(at(5, 0, 0)) != -1 {
		t.Error("Index outside window should be -1")
	}
}

func TestEvents_MultiDayClipping(t *testing.T) {
	night := ev("night", at(0, 22, 0), at(2, 2, 0))
	res, err := Events([]*event.Event{night}, monday, 3, Forward)
	if err != nil {
		t.Fatalf("Events: %v", err)
	}

	tests := []struct {
		day                      int
		startMin, endMin         int
		clippedStart, clippedEnd bool
	}{
		{0, 22 * 60, 1440, false, true},
		{1, 0, 1440, true, true},
		{2, 0, 2 * 60, true, false},
	}
	for _, tt := range tests {
		occs := res.Days[tt.day].Events
		if len(occs) != 1 {
			t.Fatalf("day %d: got %d occurrences", tt.day, len(occs))
		}
		o := occs[0]
		if o.Event != night {
			t.Errorf("day %d: occurrence lost event identity", tt.day)
		}
		if o.StartMinute() != tt.startMin || o.EndMinute() != tt.endMin {
			t.Errorf("day %d: minutes = %d-%d, want %d-%d", tt.day, o.StartMinute(), o.EndMinute(), tt.startMin, tt.endMin)
		}
		if o.ClippedStart != tt.clippedStart || o.ClippedEnd != tt.clippedEnd {
			t.Errorf("day %d: clipped = %v/%v", tt.day, o.ClippedStart, o.ClippedEnd)
		}
	}
	if !night.Start.Equal(at(0, 22, 0)) || !night.End.Equal(at(2, 2, 0)) {
		t.Error("input event was mutated")
	}
}

func TestEvents_EndsAtMidnight(t *testing.T) {
	e := ev("evening", at(0, 20, 0), at(1, 0, 0))
	res, err := Events([]*event.Event{e}, monday, 2, Forward)
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if len(res.Days[0].Events) != 1 {
		t.Fatalf("monday should hold the event")
	}
	if res.Days[0].Events[0].EndMinute() != 1440 || res.Days[0].Events[0].ClippedEnd {
		t.Errorf("monday occurrence = %+v", res.Days[0].Events[0])
	}
	if len(res.Days[1].Events) != 0 {
		t.Errorf("tuesday should not get a zero-length tail, got %v", ids(res.Days[1].Events))
	}
}

func TestEvents_ZeroDuration(t *testing.T) {
	e := ev("ping", at(1, 10, 0), at(1, 10, 0))
	midnight := ev("midnight", at(1, 0, 0), at(1, 0, 0))
	res, err := Events([]*event.Event{e, midnight}, monday, 2, Forward)
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if len(res.Days[0].Events) != 0 {
		t.Errorf("monday = %v", ids(res.Days[0].Events))
	}
	if got := ids(res.Days[1].Events); !equalIDs(got, []string{"midnight", "ping"}) {
		t.Errorf("tuesday = %v", got)
	}
}

func TestEvents_InvalidDropped(t *testing.T) {
	events := []*event.Event{
		ev("good", at(0, 9, 0), at(0, 10, 0)),
		ev("backwards", at(0, 11, 0), at(0, 10, 0)),
		nil,
		ev("sibling", at(0, 9, 30), at(0, 10, 30)),
	}
	res, err := Events(events, monday, 1, Forward)
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if got := ids(res.Days[0].Events); !equalIDs(got, []string{"good", "sibling"}) {
		t.Errorf("monday = %v", got)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(res.Warnings))
	}
	w := res.Warnings[0]
	if w.EventID != "backwards" || !errors.Is(w.Err, event.ErrInvalidInterval) {
		t.Errorf("warning = %v", w)
	}
}

func TestEvents_OutOfWindow(t *testing.T) {
	events := []*event.Event{
		ev("before", at(-1, 9, 0), at(-1, 10, 0)),
		ev("after", at(7, 9, 0), at(7, 10, 0)),
	}
	res, err := Events(events, monday, 7, Forward)
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	for _, d := range res.Days {
		if len(d.Events) != 0 {
			t.Errorf("%s holds %v", d.Key, ids(d.Events))
		}
	}
	if len(res.Warnings) != 0 {
		t.Errorf("out-of-window events should not warn: %v", res.Warnings)
	}
}
