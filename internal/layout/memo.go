package layout

import (
	"github.com/javiermolinar/weekview/internal/event"
)

// Memo remembers the last Compute call and returns its result when called
// again with the same event slice and view. It is not safe for concurrent use.
type Memo struct {
	valid  bool
	events []*event.Event
	view   View
	page   Page
	err    error

	hits   int
	misses int
}

// Compute returns the cached page when inputs are unchanged, otherwise
// recomputes it.
func (m *Memo) Compute(events []*event.Event, view View) (Page, error) {
	if m.valid && sameEvents(m.events, events) && sameView(m.view, view) {
		m.hits++
		return m.page, m.err
	}
	m.misses++
	m.page, m.err = Compute(events, view)
	m.events = events
	m.view = view
	m.valid = true
	return m.page, m.err
}

// Invalidate forces the next Compute to run the pipeline.
func (m *Memo) Invalidate() {
	m.valid = false
}

// Stats returns the number of cache hits and misses.
func (m *Memo) Stats() (hits, misses int) {
	return m.hits, m.misses
}

// sameEvents compares slice identity, not contents.
func sameEvents(a, b []*event.Event) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return (a == nil) == (b == nil)
	}
	return &a[0] == &b[0]
}

func sameView(a, b View) bool {
	if !a.Start.Equal(b.Start) ||
		a.NumberOfDays != b.NumberOfDays ||
		a.Direction != b.Direction ||
		a.DayWidth != b.DayWidth ||
		a.Vertical != b.Vertical {
		return false
	}
	for d := range a.Disabled {
		x, y := a.Disabled[d], b.Disabled[d]
		if len(x) != len(y) {
			return false
		}
		if len(x) > 0 && &x[0] != &y[0] {
			return false
		}
	}
	return true
}
