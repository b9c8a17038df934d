package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type field struct {
	label       string
	placeholder string
	value       string
	limit       int
}

// form is a vertical stack of labelled text inputs.
type form struct {
	labels []string
	inputs []textinput.Model
	focus  int
	active bool
}

func newTextInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 50
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

func newForm(fields ...field) form {
	f := form{}
	for _, fd := range fields {
		ti := newTextInput(fd.placeholder, max(fd.limit, 200))
		ti.SetValue(fd.value)
		f.labels = append(f.labels, fd.label)
		f.inputs = append(f.inputs, ti)
	}
	f.setFocus(0)
	return f
}

func (f *form) setFocus(i int) {
	if len(f.inputs) == 0 {
		return
	}
	f.focus = (i + len(f.inputs)) % len(f.inputs)
	for j := range f.inputs {
		if j == f.focus && f.active {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

// Focus makes the form receive keys.
func (f *form) Focus() {
	f.active = true
	f.setFocus(f.focus)
}

// Blur releases keys to the global bindings.
func (f *form) Blur() {
	f.active = false
	f.setFocus(f.focus)
}

func (f form) Focused() bool { return f.active && len(f.inputs) > 0 }

func (f form) Value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

func (f form) Len() int { return len(f.inputs) }

// Update routes a key to the focused input. It reports true when enter is
// pressed on the last field.
func (f *form) Update(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		f.setFocus(f.focus + 1)
		return false, nil
	case "shift+tab", "up":
		f.setFocus(f.focus - 1)
		return false, nil
	case "enter":
		if f.focus == len(f.inputs)-1 {
			return true, nil
		}
		f.setFocus(f.focus + 1)
		return false, nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return false, cmd
}

func (f form) View() string {
	var b strings.Builder
	for i, ti := range f.inputs {
		label := dimStyle.Render(f.labels[i])
		if i == f.focus && f.active {
			label = subtitleStyle.Render(f.labels[i])
		}
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(ti.View())
		b.WriteString("\n\n")
	}
	return b.String()
}
