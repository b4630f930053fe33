// Package position turns lane assignments into pixel boxes.
package position

import (
	"github.com/javiermolinar/weekview/internal/geometry"
	"github.com/javiermolinar/weekview/internal/overlap"
)

// Box sizing constants, in pixels.
const (
	MinHeight    = 2.0
	MinWidth     = 4.0
	Padding      = 2.0
	TightPadding = 1.0
	StackOffset  = 8.0
)

// Box is an event rectangle relative to its day column.
type Box struct {
	Top    float64
	Left   float64
	Width  float64
	Height float64
}

// Bottom returns Top + Height.
func (b Box) Bottom() float64 { return b.Top + b.Height }

// Right returns Left + Width.
func (b Box) Right() float64 { return b.Left + b.Width }

// BoxInput is everything ComputeBox needs for one event.
// Start and End are minutes of day; End may be 1440.
type BoxInput struct {
	Start         int
	End           int
	Lane          int
	NLanes        int
	StackPosition int
	Tight         bool
	DayWidth      float64
	Vertical      geometry.Vertical
}

// ComputeBox places one event inside its day column.
func ComputeBox(in BoxInput) Box {
	nLanes := max(in.NLanes, 1)
	lane := min(max(in.Lane, 0), nLanes-1)
	laneWidth := in.DayWidth / float64(nLanes)
	stack := float64(max(in.StackPosition, 0)) * StackOffset

	padding := Padding
	if in.Tight {
		padding = TightPadding
	}

	top := in.Vertical.ToY(in.Start)
	height := max(in.Vertical.ToY(in.End)-top, MinHeight)

	return Box{
		Top:    top,
		Left:   float64(lane)*laneWidth + stack,
		Width:  max(laneWidth-padding-stack, MinWidth),
		Height: height,
	}
}

// LaneWidths returns the pre-padding width of each lane. The widths always
// sum to dayWidth.
func LaneWidths(dayWidth float64, nLanes int) []float64 {
	nLanes = max(nLanes, 1)
	out := make([]float64, nLanes)
	w := dayWidth / float64(nLanes)
	sum := 0.0
	for i := range out {
		out[i] = w
		sum += w
	}
	// absorb float rounding in the last lane
	out[nLanes-1] += dayWidth - sum
	return out
}

// Positioned pairs a placement with its box.
type Positioned struct {
	overlap.Placement
	Box Box
}

// Day computes boxes for a day's placements, preserving their order.
func Day(placements []overlap.Placement, dayWidth float64, v geometry.Vertical) []Positioned {
	out := make([]Positioned, len(placements))
	for i, p := range placements {
		out[i] = Positioned{
			Placement: p,
			Box: ComputeBox(BoxInput{
				Start:         p.StartMinute(),
				End:           p.EndMinute(),
				Lane:          p.Lane,
				NLanes:        p.NLanes,
				StackPosition: p.StackPosition,
				Tight:         p.Tight,
				DayWidth:      dayWidth,
				Vertical:      v,
			}),
		}
	}
	return out
}
