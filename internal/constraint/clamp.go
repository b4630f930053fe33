package constraint

import (
	"github.com/javiermolinar/weekview/internal/geometry"
	"github.com/javiermolinar/weekview/internal/interval"
)

// SlotsPerDay is the number of quarter-hour grid steps in a day.
const SlotsPerDay = interval.MinutesPerDay / geometry.StepMinutes

// Edge names the boundary an edit moves.
type Edge int

const (
	// EdgeStart moves the start; the end stays.
	EdgeStart Edge = iota
	// EdgeEnd moves the end; the start stays.
	EdgeEnd
	// EdgeBoth moves the whole interval, keeping its length.
	EdgeBoth
)

func (e Edge) String() string {
	switch e {
	case EdgeStart:
		return "start"
	case EdgeEnd:
		return "end"
	case EdgeBoth:
		return "both"
	default:
		return "unknown"
	}
}

// Bounds is the interval being edited, in quarter-hour grid indices.
type Bounds struct {
	Start int
	End   int
	Edge  Edge
	// MinSteps is the shortest allowed interval. Values below 1 mean 1.
	MinSteps int
	// Disabled ranges for the day being edited.
	Disabled []Range
}

// Clamp is the outcome of ClampEdit. On rejection Boundary, Start and End
// are the previous values.
type Clamp struct {
	Accepted bool
	Boundary int
	Start    int
	End      int
}

// ClampEdit tries to move one boundary of b to proposed. For EdgeBoth the
// proposed value is the new start. The edit is rejected if it would invert
// the interval, shrink it below MinSteps, leave the day or overlap a
// disabled range.
func ClampEdit(proposed int, b Bounds) Clamp {
	minSteps := max(b.MinSteps, 1)

	start, end := b.Start, b.End
	previous := b.Start
	switch b.Edge {
	case EdgeStart:
		start = proposed
	case EdgeEnd:
		previous = b.End
		end = proposed
	case EdgeBoth:
		end = proposed + (b.End - b.Start)
		start = proposed
	}

	reject := Clamp{Accepted: false, Boundary: previous, Start: b.Start, End: b.End}

	if start >= end || end-start < minSteps {
		return reject
	}
	if start < 0 || end > SlotsPerDay {
		return reject
	}
	startMin := geometry.IndexToMinutes(start)
	endMin := geometry.IndexToMinutes(end)
	for _, r := range b.Disabled {
		if interval.MinutesOverlap(startMin, endMin, r.Start, r.End) {
			return reject
		}
	}

	return Clamp{Accepted: true, Boundary: proposed, Start: start, End: end}
}
