package event

import (
	"errors"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	start := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	tests := []struct {
		name    string
		id      string
		start   time.Time
		end     time.Time
		wantErr error
	}{
		{"valid", "a", start, end, nil},
		{"zero duration is valid", "a", start, start, nil},
		{"empty id", "", start, end, ErrEmptyID},
		{"missing start", "a", time.Time{}, end, ErrMissingTimestamp},
		{"end before start", "a", end, start, ErrInvalidInterval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := New(tt.id, "Standup", tt.start, tt.end)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if e.Description != "Standup" {
				t.Errorf("Description = %q", e.Description)
			}
		})
	}
}

func TestValidate_AllDay(t *testing.T) {
	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	e := &Event{ID: "holiday", Start: day, End: day, AllDay: true}
	if err := e.Validate(); !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("expected ErrInvalidInterval for empty all-day event, got %v", err)
	}
	e.End = day.AddDate(0, 0, 1)
	if err := e.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_OverlapMode(t *testing.T) {
	start := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	e := &Event{ID: "a", Start: start, End: start.Add(time.Hour), Overlap: "float"}
	if err := e.Validate(); !errors.Is(err, ErrInvalidOverlap) {
		t.Errorf("expected ErrInvalidOverlap, got %v", err)
	}
	e.Overlap = ""
	if e.Mode() != OverlapLane {
		t.Errorf("Mode() = %q, want lane", e.Mode())
	}
	e.Overlap = OverlapStack
	if e.Mode() != OverlapStack {
		t.Errorf("Mode() = %q, want stack", e.Mode())
	}
}

func TestEvent_Flags(t *testing.T) {
	e := &Event{ID: "a", DisableDrag: true, DisableLongPress: true}
	if e.CanDrag() {
		t.Error("expected drag disabled")
	}
	if !e.CanPress() {
		t.Error("expected press enabled")
	}
	if e.CanLongPress() {
		t.Error("expected long press disabled")
	}
}

func TestEvent_WithTimes(t *testing.T) {
	start := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	orig := &Event{ID: "a", Start: start, End: start.Add(time.Hour), Color: "blue"}

	moved := orig.WithTimes(start.Add(24*time.Hour), start.Add(25*time.Hour))
	if !orig.Start.Equal(start) {
		t.Error("original event was mutated")
	}
	if moved.Color != "blue" || moved.ID != "a" {
		t.Errorf("copy lost fields: %+v", moved)
	}
	if moved.Duration() != time.Hour {
		t.Errorf("Duration = %v", moved.Duration())
	}
	if moved.IsZeroDuration() {
		t.Error("moved event should not be zero duration")
	}
}

func TestReplace(t *testing.T) {
	start := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	a := &Event{ID: "a", Start: start, End: start.Add(time.Hour)}
	b := &Event{ID: "b", Start: start, End: start.Add(time.Hour)}
	events := []*Event{a, b}

	b2 := b.WithTimes(start.Add(time.Hour), start.Add(2*time.Hour))
	out := Replace(events, b2)

	if len(out) != 2 || out[0] != a || out[1] != b2 {
		t.Fatalf("Replace() = %v", out)
	}
	if events[1] != b {
		t.Error("input slice was modified")
	}
}
