// Package tui provides the Bubble Tea terminal client.
//
// Model implements router.Renderer: every navigation dispatches the current
// router state to one of the Render methods, which prepares the view and
// returns the command that fetches its data. Fetch results carry the
// router generation they were issued under and are dropped when the user
// has navigated away in the meantime.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/yeahmusic/internal/catalog"
	"github.com/handiism/yeahmusic/internal/config"
	ioutils "github.com/handiism/yeahmusic/internal/io"
	"github.com/handiism/yeahmusic/internal/model"
	"github.com/handiism/yeahmusic/internal/player"
	"github.com/handiism/yeahmusic/internal/router"
	"github.com/handiism/yeahmusic/internal/session"
	"github.com/handiism/yeahmusic/internal/tap"
)

// Options wires the Model to its collaborators.
type Options struct {
	Settings *config.Settings
	Catalog  *catalog.Service
	Player   *player.Manager
	Session  *session.Store
	Images   *ioutils.ImageService

	// User is the signed-in user at startup, nil when signed out.
	User *model.User
	// SessionChanges delivers the user whenever the session file changes.
	SessionChanges <-chan *model.User
	// Open is an initial deep link such as "#album/42".
	Open string
}

type overlay int

const (
	overlayNone overlay = iota
	overlayPlayer
	overlayLyrics
)

// item is a selectable row in the Home and Library lists.
type item struct {
	group  string
	label  string
	detail string
	state  router.State
}

type cover struct {
	thumb string
	err   error
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	catalog  *catalog.Service
	player   *player.Manager
	recorder *tap.Recorder
	store    *session.Store
	images   *ioutils.ImageService
	router   *router.Router
	user     *model.User
	sessions <-chan *model.User

	timeout   time.Duration
	tickEvery time.Duration
	coverSize int

	keys       keyMap
	tapKeys    tapKeys
	help       help.Model
	spinner    spinner.Model
	progress   progress.Model
	lyricsView viewport.Model
	textView   viewport.Model
	editor     textarea.Model
	query      textinput.Model
	form       form
	listeners  listeners

	// Current view
	section router.Section
	overlay overlay
	loading bool
	err     error
	gated   error
	items   []item
	cursor  int

	content       *model.Content
	playlists     []model.Playlist
	libraryLoaded bool
	page          *model.Page
	picking       bool
	pendingDelete string
	pickCursor    int
	editing       router.EditLyrics
	editTrack     model.Track
	editReady     bool
	tapErr        error
	artistAlbums  []model.Album
	results       []model.Track
	searchSeq     int
	searching     bool
	stats         *model.Stats
	generated     string
	generating    bool
	formOpen      bool

	// Transport
	now    player.Progress
	covers map[string]cover

	status    string
	statusErr bool
	statusSeq int

	initCmd tea.Cmd
	width   int
	height  int
}

// NewModel creates a Model and renders the initial view.
func NewModel(opts Options) Model {
	settings := opts.Settings
	if settings == nil {
		settings = config.DefaultSettings()
	}
	images := opts.Images
	if images == nil {
		images = ioutils.NewImageService()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	prog.Width = 40

	ed := textarea.New()
	ed.Placeholder = "[00:12] First line\n[00:17] Second line"
	ed.ShowLineNumbers = true
	ed.CharLimit = 0
	ed.SetWidth(60)
	ed.SetHeight(12)
	ed.Cursor.SetMode(cursor.CursorStatic)

	m := Model{
		catalog:  opts.Catalog,
		player:   opts.Player,
		recorder: tap.NewRecorder(opts.Player),
		store:    opts.Session,
		images:   images,
		router:   router.New(),
		user:     opts.User,
		sessions: opts.SessionChanges,

		timeout:   settings.RequestTimeout(),
		tickEvery: settings.TickInterval(),
		coverSize: settings.CoverSize,

		keys:       defaultKeyMap(),
		tapKeys:    defaultTapKeys(),
		help:       help.New(),
		spinner:    sp,
		progress:   prog,
		lyricsView: viewport.New(60, 14),
		textView:   viewport.New(60, 10),
		editor:     ed,
		query:      newTextInput("Search tracks, artists...", 100),
		covers:     make(map[string]cover),
	}

	initial := router.State(router.Home{})
	if opts.Open != "" {
		initial = router.ParseHash(opts.Open)
	}
	m.router.Navigate(initial)
	m.initCmd = m.render()
	return m
}

// Init starts the background loops: spinner, playback tick, track-end and
// session watchers.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.initCmd,
		m.spinner.Tick,
		m.tick(),
		waitEnded(m.player.Ended()),
		waitSession(m.sessions),
	)
}

// render draws the router's current state.
func (m *Model) render() tea.Cmd {
	return router.Dispatch[tea.Cmd](m, m.router.Current())
}

func (m *Model) navigate(s router.State) tea.Cmd {
	m.router.Navigate(s)
	return m.render()
}

func (m *Model) back() tea.Cmd {
	if _, ok := m.router.Back(); !ok {
		return nil
	}
	return m.render()
}

func (m *Model) forward() tea.Cmd {
	if _, ok := m.router.Forward(); !ok {
		return nil
	}
	return m.render()
}

// setStatus shows a transient message in the status line.
func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.status = text
	m.statusErr = isErr
	return clearStatusAfter(m.statusSeq)
}

// Run starts the TUI application.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
