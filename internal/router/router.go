package router

// Router owns the navigation history: an ordered list of visited states
// and a cursor on the current one. Every transition bumps a generation
// counter that asynchronous work can use to detect that the view changed.
// A Router is not safe for concurrent use.
type Router struct {
	entries []State
	cursor  int
	gen     uint64
}

// New returns a Router with empty history. Its current state is Home.
func New() *Router {
	return &Router{cursor: -1}
}

// Current returns the state under the cursor, or Home when the history is
// empty.
func (r *Router) Current() State {
	if r.cursor < 0 {
		return Home{}
	}
	return r.entries[r.cursor]
}

// Navigate makes s current, discarding any forward history, and returns
// the new generation. A nil state is recorded as Home.
func (r *Router) Navigate(s State) uint64 {
	if s == nil {
		s = Home{}
	}
	r.entries = append(r.entries[:r.cursor+1], s)
	r.cursor = len(r.entries) - 1
	r.gen++
	return r.gen
}

// Replace swaps the current entry for s without growing the history.
// With an empty history it behaves like Navigate.
func (r *Router) Replace(s State) uint64 {
	if r.cursor < 0 {
		return r.Navigate(s)
	}
	if s == nil {
		s = Home{}
	}
	r.entries[r.cursor] = s
	r.gen++
	return r.gen
}

// Back moves to the previous entry. It reports false, changing nothing,
// at the start of the history.
func (r *Router) Back() (State, bool) {
	if r.cursor <= 0 {
		return r.Current(), false
	}
	r.cursor--
	r.gen++
	return r.entries[r.cursor], true
}

// Forward moves to the next entry after a Back.
func (r *Router) Forward() (State, bool) {
	if r.cursor >= len(r.entries)-1 {
		return r.Current(), false
	}
	r.cursor++
	r.gen++
	return r.entries[r.cursor], true
}

// CanBack reports whether Back would move.
func (r *Router) CanBack() bool { return r.cursor > 0 }

// CanForward reports whether Forward would move.
func (r *Router) CanForward() bool { return r.cursor < len(r.entries)-1 }

// Generation identifies the current transition.
func (r *Router) Generation() uint64 { return r.gen }

// IsCurrent reports whether gen is still the latest transition.
func (r *Router) IsCurrent(gen uint64) bool { return gen == r.gen }

// Len returns the number of history entries.
func (r *Router) Len() int { return len(r.entries) }
