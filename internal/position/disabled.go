package position

import (
	"github.com/javiermolinar/weekview/internal/constraint"
	"github.com/javiermolinar/weekview/internal/geometry"
)

// DisabledBox is a disabled range drawn across a whole day column.
type DisabledBox struct {
	Range constraint.Range
	Box   Box
}

// DisabledBoxes clamps ranges to the visible hours and lays them out at full
// day width. Ranges entirely outside the visible hours are skipped.
func DisabledBoxes(ranges []constraint.Range, dayWidth float64, v geometry.Vertical) []DisabledBox {
	var out []DisabledBox
	for _, r := range ranges {
		visible, ok := r.Clamp(v.Begin, v.End)
		if !ok {
			continue
		}
		top := v.ToY(visible.Start)
		out = append(out, DisabledBox{
			Range: visible,
			Box: Box{
				Top:    top,
				Left:   0,
				Width:  dayWidth,
				Height: v.ToY(visible.End) - top,
			},
		})
	}
	return out
}
