package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Quit    key.Binding
	Help    key.Binding
	Home    key.Binding
	Search  key.Binding
	Library key.Binding
	Tools   key.Binding
	Back    key.Binding
	Forward key.Binding

	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Input  key.Binding
	Leave  key.Binding

	Toggle      key.Binding
	Next        key.Binding
	Previous    key.Binding
	Loop        key.Binding
	SeekBack    key.Binding
	SeekForward key.Binding
	FullPlayer  key.Binding
	LyricsView  key.Binding

	EditLyrics    key.Binding
	AddToPlaylist key.Binding
	Delete        key.Binding
	NewPlaylist   key.Binding

	Tap      key.Binding
	Build    key.Binding
	Save     key.Binding
	Generate key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Home:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "home")),
		Search:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "search")),
		Library: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "library")),
		Tools:   key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "tools")),
		Back:    key.NewBinding(key.WithKeys("[", "alt+left"), key.WithHelp("[", "back")),
		Forward: key.NewBinding(key.WithKeys("]", "alt+right"), key.WithHelp("]", "forward")),

		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open/play")),
		Input:  key.NewBinding(key.WithKeys("tab", "/"), key.WithHelp("tab", "type")),
		Leave:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave input")),

		Toggle:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		Next:        key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next")),
		Previous:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "previous")),
		Loop:        key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "loop")),
		SeekBack:    key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "-5%")),
		SeekForward: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "+5%")),
		FullPlayer:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "player")),
		LyricsView:  key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "lyrics")),

		EditLyrics:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit lyrics")),
		AddToPlaylist: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add to playlist")),
		Delete:        key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		NewPlaylist:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "new playlist")),

		Tap:      key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "tap timing")),
		Build:    key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "build")),
		Save:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Generate: key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "insert generated")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Next, k.Previous, k.Back, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Home, k.Search, k.Library, k.Tools, k.Back, k.Forward},
		{k.Up, k.Down, k.Select, k.Input, k.Leave},
		{k.Toggle, k.Next, k.Previous, k.Loop, k.SeekBack, k.SeekForward, k.FullPlayer, k.LyricsView},
		{k.EditLyrics, k.AddToPlaylist, k.Delete, k.NewPlaylist},
		{k.Tap, k.Build, k.Save, k.Generate, k.Help, k.Quit},
	}
}

// tapKeys are consumed by the tap-timing listener while it is attached.
type tapKeys struct {
	Tap  key.Binding
	Up   key.Binding
	Down key.Binding
	Stop key.Binding
}

func defaultTapKeys() tapKeys {
	return tapKeys{
		Tap:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "tap line")),
		Up:   key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous line")),
		Down: key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next line")),
		Stop: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "stop tapping")),
	}
}

func (k tapKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Tap, k.Up, k.Down, k.Stop}
}

func (k tapKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
