package lyrics

import "sort"

// ActiveIndex returns the index of the last Karaoke entry whose time is at
// or before pos. Entries sharing a time resolve to the latest one. It
// returns (-1, false) when pos precedes the first entry or m is not
// Karaoke.
func ActiveIndex(m Model, pos float64) (int, bool) {
	return search(Timeline(m), pos)
}

func search(lines []Line, pos float64) (int, bool) {
	i := sort.Search(len(lines), func(i int) bool {
		return lines[i].Time > pos
	}) - 1
	if i < 0 {
		return -1, false
	}
	return i, true
}

// Tracker follows the active line of a Karaoke model across successive
// playback positions. Forward progress advances a cursor; seeks fall back
// to a binary search. A Tracker is not safe for concurrent use.
type Tracker struct {
	lines []Line
	index int
}

// NewTracker returns a Tracker for m. Non-karaoke models never have an
// active line.
func NewTracker(m Model) *Tracker {
	t := &Tracker{}
	t.Reset(m)
	return t
}

// Reset switches the tracker to a new model and forgets the cursor.
func (t *Tracker) Reset(m Model) {
	t.lines = Timeline(m)
	t.index = -1
}

// Index returns the last computed active index.
func (t *Tracker) Index() (int, bool) {
	return t.index, t.index >= 0
}

// Update returns the active index for pos.
func (t *Tracker) Update(pos float64) (int, bool) {
	if len(t.lines) == 0 {
		return -1, false
	}

	i := t.index
	if i >= 0 && t.lines[i].Time > pos {
		t.index, _ = search(t.lines, pos)
		return t.index, t.index >= 0
	}

	// Ordinary ticks move at most a line or two.
	for step := 0; i+1 < len(t.lines) && t.lines[i+1].Time <= pos; step++ {
		if step == 2 {
			i, _ = search(t.lines, pos)
			break
		}
		i++
	}

	t.index = i
	return i, i >= 0
}
