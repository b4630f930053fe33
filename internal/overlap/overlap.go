// Package overlap assigns side-by-side lanes to events that share time on a day.
package overlap

import (
	"cmp"
	"slices"
	"time"

	"github.com/javiermolinar/weekview/internal/bucket"
	"github.com/javiermolinar/weekview/internal/event"
	"github.com/javiermolinar/weekview/internal/interval"
)

// Placement is an occurrence annotated with its lane.
type Placement struct {
	bucket.Occurrence

	// Lane is in [0, NLanes).
	Lane   int
	NLanes int
	// StackPosition is the number of earlier events of the group still open
	// when a stack-mode event starts. Zero for lane and ignore modes.
	StackPosition int
	// Tight is set for two-event groups, which use the narrower padding.
	Tight bool
}

// Group is a maximal set of occurrences that transitively overlap.
type Group struct {
	// Members are indices into the slice passed to Groups, in start order.
	Members []int
	Start   time.Time
	End     time.Time
}

// Groups partitions a day's occurrences into overlap groups. An occurrence
// joins the open group when it starts before the group's latest end, less
// interval.Tolerance.
// Occurrences in ignore mode never join a group and are returned alone.
func Groups(occs []bucket.Occurrence) []Group {
	var groups []Group
	open := -1
	for _, i := range startOrder(occs) {
		o := occs[i]
		if o.Event != nil && o.Event.Mode() == event.OverlapIgnore {
			groups = append(groups, Group{Members: []int{i}, Start: o.Start, End: o.End})
			continue
		}
		if open >= 0 && joins(groups[open].End, o) {
			g := &groups[open]
			g.Members = append(g.Members, i)
			if o.End.After(g.End) {
				g.End = o.End
			}
			continue
		}
		groups = append(groups, Group{Members: []int{i}, Start: o.Start, End: o.End})
		open = len(groups) - 1
	}
	return groups
}

func joins(end time.Time, o bucket.Occurrence) bool {
	return o.Start.Before(end.Add(-interval.Tolerance))
}

// chains splits members, already in start order, into runs connected by
// the same rule Groups uses.
func chains(occs []bucket.Occurrence, members []int) [][]int {
	var out [][]int
	var end time.Time
	for _, m := range members {
		o := occs[m]
		if len(out) > 0 && joins(end, o) {
			out[len(out)-1] = append(out[len(out)-1], m)
			if o.End.After(end) {
				end = o.End
			}
			continue
		}
		out = append(out, []int{m})
		end = o.End
	}
	return out
}

// Resolve assigns lanes to a day's occurrences. The result is in input order.
//
// Groups of one event take the full width. Two-event groups split the width
// evenly. Larger groups are packed greedily: each event goes into the first
// lane whose last event has ended, otherwise a new lane is opened. The
// packing is deterministic but does not always use the fewest lanes.
func Resolve(occs []bucket.Occurrence) []Placement {
	out := make([]Placement, len(occs))
	for i, o := range occs {
		out[i] = Placement{Occurrence: o, NLanes: 1}
	}

	for _, g := range Groups(occs) {
		var lanes, stacked []int
		for _, m := range g.Members {
			if occs[m].Event != nil && occs[m].Event.Mode() == event.OverlapStack {
				stacked = append(stacked, m)
				continue
			}
			lanes = append(lanes, m)
		}

		// Stacked events can bridge lane events that never meet.
		for _, c := range chains(occs, lanes) {
			assignLanes(occs, c, out)
		}
		assignStack(occs, g.Members, stacked, out)
	}
	return out
}

func assignLanes(occs []bucket.Occurrence, members []int, out []Placement) {
	switch len(members) {
	case 0:
		return
	case 1:
		out[members[0]].Lane = 0
		out[members[0]].NLanes = 1
		return
	case 2:
		for lane, m := range members {
			out[m].Lane = lane
			out[m].NLanes = 2
			out[m].Tight = true
		}
		return
	}

	// laneEnds[i] is the end of the last event placed in lane i.
	var laneEnds []time.Time
	for _, m := range members {
		o := occs[m]
		lane := -1
		for i, end := range laneEnds {
			if interval.EndsBefore(end, o.Start) {
				lane = i
				break
			}
		}
		if lane < 0 {
			lane = len(laneEnds)
			laneEnds = append(laneEnds, o.End)
		} else {
			laneEnds[lane] = o.End
		}
		out[m].Lane = lane
	}
	for _, m := range members {
		out[m].NLanes = len(laneEnds)
	}
}

func assignStack(occs []bucket.Occurrence, group, stacked []int, out []Placement) {
	for _, s := range stacked {
		o := occs[s]
		pos := 0
		for _, m := range group {
			if m == s {
				break
			}
			if interval.Overlaps(occs[m].Start, occs[m].End, o.Start, o.End) {
				pos++
			}
		}
		out[s].Lane = 0
		out[s].NLanes = 1
		out[s].StackPosition = pos
	}
}

// startOrder returns occurrence indices sorted by start, then end, then
// input position.
func startOrder(occs []bucket.Occurrence) []int {
	idx := make([]int, len(occs))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		if c := occs[a].Start.Compare(occs[b].Start); c != 0 {
			return c
		}
		if c := occs[a].End.Compare(occs[b].End); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return idx
}
