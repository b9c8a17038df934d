package tui

import tea "github.com/charmbracelet/bubbletea"

// keyHandler consumes a key press. It reports whether the key was handled;
// unhandled keys continue through the normal key routing.
type keyHandler func(m *Model, msg tea.KeyMsg) (bool, tea.Cmd)

type listener struct {
	scope  string
	handle keyHandler
}

// listeners is a stack of scoped key handlers. The most recently attached
// handler sees keys first. Attaching a scope that is already present
// replaces it.
type listeners struct {
	stack []listener
}

func (l *listeners) attach(scope string, h keyHandler) {
	l.detach(scope)
	l.stack = append(l.stack, listener{scope: scope, handle: h})
}

func (l *listeners) detach(scope string) {
	for i, ln := range l.stack {
		if ln.scope == scope {
			l.stack = append(l.stack[:i:i], l.stack[i+1:]...)
			return
		}
	}
}

func (l *listeners) attached(scope string) bool {
	for _, ln := range l.stack {
		if ln.scope == scope {
			return true
		}
	}
	return false
}

func (l *listeners) dispatch(m *Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	for i := len(l.stack) - 1; i >= 0; i-- {
		if ok, cmd := l.stack[i].handle(m, msg); ok {
			return true, cmd
		}
	}
	return false, nil
}
