package position

import (
	"math"
	"testing"
	"time"

	"github.com/javiermolinar/weekview/internal/bucket"
	"github.com/javiermolinar/weekview/internal/constraint"
	"github.com/javiermolinar/weekview/internal/event"
	"github.com/javiermolinar/weekview/internal/geometry"
	"github.com/javiermolinar/weekview/internal/overlap"
)

// one pixel per minute over the whole day
var fullDay = geometry.FromHours(0, 24, 1)

func TestComputeBox(t *testing.T) {
	tests := []struct {
		name string
		in   BoxInput
		want Box
	}{
		{
			name: "single lane",
			in:   BoxInput{Start: 540, End: 600, NLanes: 1, DayWidth: 100, Vertical: fullDay},
			want: Box{Top: 540, Left: 0, Width: 100 - Padding, Height: 60},
		},
		{
			name: "second of two lanes uses tight padding",
			in:   BoxInput{Start: 540, End: 600, Lane: 1, NLanes: 2, Tight: true, DayWidth: 100, Vertical: fullDay},
			want: Box{Top: 540, Left: 50, Width: 50 - TightPadding, Height: 60},
		},
		{
			name: "stacked",
			in:   BoxInput{Start: 540, End: 600, NLanes: 1, StackPosition: 2, DayWidth: 100, Vertical: fullDay},
			want: Box{Top: 540, Left: 2 * StackOffset, Width: 100 - Padding - 2*StackOffset, Height: 60},
		},
		{
			name: "zero duration gets minimum height",
			in:   BoxInput{Start: 600, End: 600, NLanes: 1, DayWidth: 100, Vertical: fullDay},
			want: Box{Top: 600, Left: 0, Width: 100 - Padding, Height: MinHeight},
		},
		{
			name: "narrow lanes get minimum width",
			in:   BoxInput{Start: 0, End: 60, Lane: 3, NLanes: 10, DayWidth: 50, Vertical: fullDay},
			want: Box{Top: 0, Left: 15, Width: MinWidth, Height: 60},
		},
		{
			name: "zero lanes treated as one",
			in:   BoxInput{Start: 0, End: 60, DayWidth: 80, Vertical: fullDay},
			want: Box{Top: 0, Left: 0, Width: 80 - Padding, Height: 60},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeBox(tt.in); got != tt.want {
				t.Errorf("ComputeBox = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestComputeBox_ClampsToWindow(t *testing.T) {
	v := geometry.FromHours(8, 18, 2)
	got := ComputeBox(BoxInput{Start: 7 * 60, End: 9 * 60, NLanes: 1, DayWidth: 100, Vertical: v})
	if got.Top != 0 || got.Height != 120 {
		t.Errorf("box = %+v, want top 0 height 120", got)
	}
}

func TestComputeBox_LanesDoNotCollide(t *testing.T) {
	for n := 1; n <= 8; n++ {
		var prevRight float64
		for lane := 0; lane < n; lane++ {
			b := ComputeBox(BoxInput{Start: 0, End: 60, Lane: lane, NLanes: n, DayWidth: 400, Vertical: fullDay})
			if lane > 0 && b.Left < prevRight {
				t.Fatalf("n=%d lane %d starts at %v before previous right %v", n, lane, b.Left, prevRight)
			}
			if b.Height <= 0 {
				t.Fatalf("n=%d lane %d has no height", n, lane)
			}
			prevRight = b.Right()
		}
	}
}

func TestLaneWidths(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 7} {
		widths := LaneWidths(100, n)
		sum := 0.0
		for _, w := range widths {
			sum += w
		}
		if math.Abs(sum-100) > 1e-9 {
			t.Errorf("n=%d widths sum to %v", n, sum)
		}
	}
}

func TestDay(t *testing.T) {
	day := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)
	events := []*event.Event{
		{ID: "a", Start: day.Add(9 * time.Hour), End: day.Add(10 * time.Hour)},
		{ID: "b", Start: day.Add(9*time.Hour + 30*time.Minute), End: day.Add(10*time.Hour + 30*time.Minute)},
		{ID: "late", Start: day.Add(23 * time.Hour), End: day.Add(26 * time.Hour)},
	}
	res, err := bucket.Events(events, day, 1, bucket.Forward)
	if err != nil {
		t.Fatalf("bucket.Events: %v", err)
	}

	out := Day(overlap.Resolve(res.Days[0].Events), 100, fullDay)
	if len(out) != 3 {
		t.Fatalf("got %d boxes", len(out))
	}
	if out[0].Box.Left != 0 || out[1].Box.Left != 50 {
		t.Errorf("lefts = %v, %v", out[0].Box.Left, out[1].Box.Left)
	}
	late := out[2].Box
	if late.Top != 23*60 || late.Bottom() != 24*60 {
		t.Errorf("clipped event box = %+v", late)
	}
}

func TestDisabledBoxes(t *testing.T) {
	v := geometry.FromHours(8, 20, 1)
	ranges := []constraint.Range{
		{Start: 0, End: 9 * 60},
		{Start: 12 * 60, End: 13 * 60},
		{Start: 21 * 60, End: 22 * 60},
	}
	got := DisabledBoxes(ranges, 120, v)
	if len(got) != 2 {
		t.Fatalf("got %d boxes, want 2", len(got))
	}
	if got[0].Range.Start != 8*60 || got[0].Box != (Box{Top: 0, Left: 0, Width: 120, Height: 60}) {
		t.Errorf("first box = %+v", got[0])
	}
	if got[1].Box.Top != 240 || got[1].Box.Height != 60 {
		t.Errorf("second box = %+v", got[1].Box)
	}
}
