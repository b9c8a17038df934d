package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/handiism/yeahmusic/internal/catalog"
	"github.com/handiism/yeahmusic/internal/logger"
	"github.com/handiism/yeahmusic/internal/model"
	"github.com/handiism/yeahmusic/internal/router"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		return m, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tickMsg:
		m.now = m.player.Tick()
		m.syncLyricsView()
		return m, tea.Batch(m.tick(), m.loadCover())

	case endedMsg:
		var cmd tea.Cmd
		if err := m.player.HandleEnded(msg.load); err != nil {
			logger.Warn("advance after track end", zap.Error(err))
			cmd = m.setStatus(err.Error(), true)
		}
		m.now = m.player.Tick()
		return m, tea.Batch(cmd, waitEnded(m.player.Ended()))

	case sessionMsg:
		cmd := m.applySession(msg.user)
		return m, tea.Batch(cmd, waitSession(m.sessions))

	case sessionEnd:
		logger.Debug("session watch ended")
		return m, nil

	case contentMsg:
		if !m.router.IsCurrent(msg.gen) {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.content = msg.content
		m.items = homeItems(msg.content)
		return m, nil

	case libraryMsg:
		if !m.router.IsCurrent(msg.gen) {
			return m, nil
		}
		m.loading = false
		if msg.content != nil {
			m.content = msg.content
		}
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.playlists = msg.playlists
		m.libraryLoaded = true
		m.items = m.libraryItems()
		return m, nil

	case pageMsg:
		if !m.router.IsCurrent(msg.gen) {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.page = msg.page
		if msg.playlists != nil {
			m.playlists = msg.playlists
		}
		return m, nil

	case trackMsg:
		if !m.router.IsCurrent(msg.gen) {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.openEditor(msg.track)
		return m, nil

	case artistAlbumsMsg:
		if !m.router.IsCurrent(msg.gen) {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			// The form still works for singles.
			return m, m.setStatus(catalog.Message(msg.err), true)
		}
		m.artistAlbums = msg.albums
		return m, nil

	case statsMsg:
		if !m.router.IsCurrent(msg.gen) {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.stats = msg.stats
		return m, nil

	case searchMsg:
		if msg.seq != m.searchSeq {
			return m, nil
		}
		m.searching = false
		if msg.err != nil {
			m.results = nil
			return m, m.setStatus(catalog.Message(msg.err), true)
		}
		m.results = msg.tracks
		m.cursor = 0
		return m, nil

	case generatedMsg:
		m.generating = false
		if msg.err != nil {
			return m, m.setStatus(catalog.Message(msg.err), true)
		}
		m.generated = msg.lyrics
		m.textView.SetContent(msg.lyrics)
		m.textView.GotoTop()
		return m, m.setStatus("Lyrics generated", false)

	case mutationMsg:
		cmd := m.finishMutation(msg)
		return m, cmd

	case coverMsg:
		if msg.err != nil {
			logger.Debug("cover unavailable", zap.String("ref", msg.ref), zap.Error(msg.err))
		}
		m.covers[msg.ref] = cover{thumb: msg.thumb, err: msg.err}
		return m, nil

	case clearMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	m.progress.Width = max(10, min(width-24, 60))
	m.lyricsView.Width = max(20, width-4)
	m.lyricsView.Height = max(5, height-12)
	m.textView.Width = max(20, min(width-4, 80))
	m.editor.SetWidth(max(20, min(width-4, 100)))
	m.editor.SetHeight(max(5, height-16))
	m.syncLyricsView()
}

// finishMutation reports a mutation result and moves to its landing view.
// A failed mutation leaves the view untouched so nothing typed is lost.
func (m *Model) finishMutation(msg mutationMsg) tea.Cmd {
	if msg.err != nil {
		logger.Warn("mutation failed", zap.String("op", msg.op), zap.Error(msg.err))
		return m.setStatus(catalog.Message(msg.err), true)
	}
	logger.Info("mutation done", zap.String("op", msg.op))

	if msg.user != nil {
		m.user = msg.user
	}
	m.libraryLoaded = false

	status := m.setStatus(msg.status, false)
	switch {
	case msg.back:
		return tea.Batch(status, m.back())
	case msg.next != nil:
		return tea.Batch(status, m.land(msg.next))
	}
	return status
}

// land navigates to s, re-rendering in place when s is already current.
func (m *Model) land(s router.State) tea.Cmd {
	if m.router.Current() == s {
		m.router.Replace(s)
		return m.render()
	}
	return m.navigate(s)
}

// applySession reacts to a sign-in or sign-out made outside the TUI.
// Views that depend on the user are rendered again.
func (m *Model) applySession(u *model.User) tea.Cmd {
	if sameUser(m.user, u) {
		return nil
	}
	logger.Info("session changed", zap.Bool("signed_in", u != nil))
	m.user = u
	m.playlists = nil
	m.libraryLoaded = false

	switch cur := m.router.Current().(type) {
	case router.Library, router.EditProfile, router.CreateAlbum, router.UploadTrack, router.EditLyrics, router.ContentPage:
		m.router.Replace(cur)
		return m.render()
	}
	return nil
}

func sameUser(a, b *model.User) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
