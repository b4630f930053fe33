package bucket

import (
	"testing"

	"github.com/javiermolinar/weekview/internal/event"
)

func allDay(id string, fromDay, days int) *event.Event {
	return &event.Event{ID: id, Start: at(fromDay, 0, 0), End: at(fromDay+days, 0, 0), AllDay: true}
}

func TestEvents_AllDayLanes(t *testing.T) {
	events := []*event.Event{
		allDay("trip", 0, 3),    // mon-wed
		allDay("holiday", 1, 1), // tue
		allDay("deadline", 3, 1),
		ev("meeting", at(1, 9, 0), at(1, 10, 0)),
	}
	res, err := Events(events, monday, 5, Forward)
	if err != nil {
		t.Fatalf("Events: %v", err)
	}

	for _, d := range res.Days {
		for _, o := range d.Events {
			if o.Event.AllDay {
				t.Errorf("%s: all-day event %q in timed bucket", d.Key, o.Event.ID)
			}
		}
	}

	lane := func(day int, id string) int {
		for _, e := range res.AllDay.Days[day] {
			if e.Event.ID == id {
				return e.Lane
			}
		}
		return -1
	}

	for day := 0; day < 3; day++ {
		if got := lane(day, "trip"); got != 0 {
			t.Errorf("trip lane on day %d = %d, want 0", day, got)
		}
	}
	if got := lane(3, "trip"); got != -1 {
		t.Errorf("trip should end before thursday, lane %d", got)
	}
	if got := lane(1, "holiday"); got != 1 {
		t.Errorf("holiday lane = %d, want 1", got)
	}
	if got := lane(3, "deadline"); got != 0 {
		t.Errorf("deadline lane = %d, want 0", got)
	}
	if res.AllDay.MaxConcurrent != 2 {
		t.Errorf("MaxConcurrent = %d, want 2", res.AllDay.MaxConcurrent)
	}

	mid := res.AllDay.Days[1][0]
	if mid.Event.ID != "trip" || !mid.Continued || !mid.Continues {
		t.Errorf("tuesday trip entry = %+v", mid)
	}
}

func TestAllDay_MaxVisibleLanes(t *testing.T) {
	events := []*event.Event{
		allDay("a", 0, 1),
		allDay("b", 0, 1),
		allDay("c", 4, 1),
	}
	res, err := Events(events, monday, 7, Forward)
	if err != nil {
		t.Fatalf("Events: %v", err)
	}

	tests := []struct {
		from, n, want int
	}{
		{0, 7, 2},
		{0, 1, 2},
		{1, 3, 0},
		{3, 3, 1},
		{6, 10, 0},
		{-2, 3, 2},
	}
	for _, tt := range tests {
		if got := res.AllDay.MaxVisibleLanes(tt.from, tt.n); got != tt.want {
			t.Errorf("MaxVisibleLanes(%d, %d) = %d, want %d", tt.from, tt.n, got, tt.want)
		}
	}
}

func TestEvents_AllDayReversed(t *testing.T) {
	res, err := Events([]*event.Event{allDay("a", 0, 1)}, monday, 3, Reversed)
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if len(res.AllDay.Days[2]) != 1 || len(res.AllDay.Days[0]) != 0 {
		t.Errorf("all-day rows not aligned with reversed days: %+v", res.AllDay.Days)
	}
}
