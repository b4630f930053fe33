package tui

import (
	"math"

	"github.com/javiermolinar/weekview/internal/event"
	"github.com/javiermolinar/weekview/internal/geometry"
	"github.com/javiermolinar/weekview/internal/interval"
	"github.com/javiermolinar/weekview/internal/layout"
)

// cellKind is what a run of grid characters shows.
type cellKind int

const (
	cellEmpty cellKind = iota
	cellDisabled
	cellEvent
	cellCandidate
)

// layer is one thing drawn over a grid row. Later layers cover earlier ones.
type layer struct {
	kind     cellKind
	from, to int // columns [from, to)
	text     string
	event    *event.Event
	alt      bool // odd lane, drawn in the alternate shade
	focus    bool
	rejected bool // candidate that would not be admissible
}

// segment is a run of characters owned by one layer.
type segment struct {
	layer
	width int
}

// rowSpan is the minute range covered by one grid row.
type rowSpan struct {
	start, end int
}

func (r rowSpan) overlaps(start, end int) bool {
	if start == end {
		return start >= r.start && start < r.end
	}
	return start < r.end && end > r.start
}

// columns maps a box's horizontal extent in layout units to character columns.
func columns(left, width, dayWidth float64, colWidth int) (from, to int) {
	if dayWidth <= 0 || colWidth <= 0 {
		return 0, 0
	}
	scale := float64(colWidth) / dayWidth
	from = int(math.Round(left * scale))
	to = int(math.Round((left + width) * scale))
	from = min(max(from, 0), colWidth-1)
	to = min(max(to, from+1), colWidth)
	return from, to
}

// rowLabel is the text an event shows on a row: its description on the
// first visible row, its time span on the second.
func rowLabel(description string, start, end int, row rowSpan, rowMinutes, top int) string {
	first := max(geometry.Snap(start, rowMinutes), top)
	switch {
	case row.start == first:
		return description
	case row.start == first+rowMinutes:
		return interval.FormatClock(start) + "-" + interval.FormatClock(end)
	}
	return ""
}

// dayLayers collects what one day column draws on a row.
// focusID marks the focused event; top is the first visible minute.
func dayLayers(day layout.Day, dayWidth float64, row rowSpan, rowMinutes, top, colWidth int, focusID string) []layer {
	var layers []layer
	for _, d := range day.Disabled {
		if row.overlaps(d.Range.Start, d.Range.End) {
			layers = append(layers, layer{kind: cellDisabled, from: 0, to: colWidth})
		}
	}
	for _, b := range day.Boxes {
		start, end := b.StartMinute(), b.EndMinute()
		if !row.overlaps(start, end) {
			continue
		}
		from, to := columns(b.Box.Left, b.Box.Width, dayWidth, colWidth)
		layers = append(layers, layer{
			kind:  cellEvent,
			from:  from,
			to:    to,
			text:  rowLabel(b.Event.Description, start, end, row, rowMinutes, top),
			event: b.Event,
			alt:   b.Lane%2 == 1 || b.StackPosition%2 == 1,
			focus: focusID != "" && b.Event.ID == focusID,
		})
	}
	return layers
}

// flatten resolves overlapping layers into runs of characters.
// Text is kept only on the first run of each layer.
func flatten(layers []layer, colWidth int) []segment {
	if colWidth <= 0 {
		return nil
	}
	owner := make([]int, colWidth)
	for i := range owner {
		owner[i] = -1
	}
	for li, l := range layers {
		for c := max(l.from, 0); c < min(l.to, colWidth); c++ {
			owner[c] = li
		}
	}

	var segs []segment
	labelled := make(map[int]bool)
	for c := 0; c < colWidth; {
		o := owner[c]
		end := c
		for end < colWidth && owner[end] == o {
			end++
		}
		seg := segment{width: end - c}
		if o >= 0 {
			seg.layer = layers[o]
			if labelled[o] {
				seg.text = ""
			}
			labelled[o] = true
		}
		segs = append(segs, seg)
		c = end
	}
	return segs
}
