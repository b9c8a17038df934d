package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/handiism/yeahmusic/internal/catalog"
	"github.com/handiism/yeahmusic/internal/model"
	"github.com/handiism/yeahmusic/internal/router"
	"github.com/handiism/yeahmusic/internal/session"
)

// seekStep is the fraction of the track the seek keys move by.
const seekStep = 0.05

// handleKey routes a key press. Scoped listeners see keys first, then
// overlays, then focused text inputs; global, transport and view keys
// only apply while nothing is being typed.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit
	}
	if ok, cmd := m.listeners.dispatch(m, msg); ok {
		return cmd
	}
	if m.overlay != overlayNone {
		if cmd, ok := m.overlayKey(msg); ok {
			return cmd
		}
	}
	if _, editing := m.router.Current().(router.EditLyrics); editing && m.editReady {
		if cmd, ok := m.editorCommand(msg); ok {
			return cmd
		}
	}
	if m.typing() {
		return m.typingKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	case key.Matches(msg, m.keys.Home):
		return m.navigate(router.Home{})
	case key.Matches(msg, m.keys.Search):
		return m.navigate(router.Search{})
	case key.Matches(msg, m.keys.Library):
		return m.navigate(router.Library{})
	case key.Matches(msg, m.keys.Tools):
		return m.navigate(router.Tools{})
	case key.Matches(msg, m.keys.Back):
		return m.back()
	case key.Matches(msg, m.keys.Forward):
		return m.forward()
	}

	if cmd, ok := m.transportKey(msg); ok {
		return cmd
	}
	return m.viewKey(msg)
}

func (m *Model) typing() bool {
	return m.query.Focused() || m.form.Focused() || m.editor.Focused()
}

func (m *Model) typingKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Leave) {
		m.query.Blur()
		m.form.Blur()
		m.editor.Blur()
		return nil
	}

	var cmd tea.Cmd
	switch {
	case m.query.Focused():
		if msg.Type == tea.KeyEnter || msg.Type == tea.KeyDown {
			m.query.Blur()
			m.cursor = 0
			return nil
		}
		before := m.query.Value()
		m.query, cmd = m.query.Update(msg)
		if m.query.Value() != before {
			return tea.Batch(cmd, m.runSearch())
		}
		return cmd

	case m.form.Focused():
		submitted, cmd := m.form.Update(msg)
		if submitted {
			return tea.Batch(cmd, m.submitForm())
		}
		return cmd

	default:
		m.editor, cmd = m.editor.Update(msg)
		m.syncTapLines()
		return cmd
	}
}

// runSearch issues a search for the current query. Results of earlier
// queries are dropped when they arrive.
func (m *Model) runSearch() tea.Cmd {
	m.searchSeq++
	q := m.query.Value()
	if utf8.RuneCountInString(q) < catalog.MinQueryLen {
		m.results = nil
		m.searching = false
		return nil
	}
	m.searching = true
	return m.search(m.searchSeq, q)
}

func (m *Model) overlayKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Leave):
		m.overlay = overlayNone
		return nil, true
	case m.overlay == overlayLyrics && key.Matches(msg, m.keys.Up, m.keys.Down):
		var cmd tea.Cmd
		m.lyricsView, cmd = m.lyricsView.Update(msg)
		return cmd, true
	}
	return nil, false
}

func (m *Model) transportKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	var err error
	switch {
	case key.Matches(msg, m.keys.Toggle):
		err = m.player.Toggle()
	case key.Matches(msg, m.keys.Next):
		err = m.player.Next()
	case key.Matches(msg, m.keys.Previous):
		err = m.player.Previous()
	case key.Matches(msg, m.keys.SeekBack):
		err = m.player.SeekFraction(m.player.Tick().Percent - seekStep)
	case key.Matches(msg, m.keys.SeekForward):
		err = m.player.SeekFraction(m.player.Tick().Percent + seekStep)
	case key.Matches(msg, m.keys.Loop):
		m.player.SetLoop(!m.player.Loop())
		if m.player.Loop() {
			return m.setStatus("Loop on", false), true
		}
		return m.setStatus("Loop off", false), true
	case key.Matches(msg, m.keys.FullPlayer):
		m.toggleOverlay(overlayPlayer)
		return m.loadCover(), true
	case key.Matches(msg, m.keys.LyricsView):
		m.toggleOverlay(overlayLyrics)
		return nil, true
	default:
		return nil, false
	}

	m.now = m.player.Tick()
	if err != nil {
		return m.setStatus(err.Error(), true), true
	}
	return nil, true
}

func (m *Model) toggleOverlay(o overlay) {
	if m.overlay == o {
		m.overlay = overlayNone
		return
	}
	m.overlay = o
	m.syncLyricsView()
	m.lyricsView.GotoTop()
}

// viewKey handles keys specific to the current view.
func (m *Model) viewKey(msg tea.KeyMsg) tea.Cmd {
	switch m.router.Current().(type) {
	case router.Home:
		return m.listKey(msg)
	case router.Library:
		if key.Matches(msg, m.keys.NewPlaylist) {
			return m.openPlaylistForm()
		}
		if key.Matches(msg, m.keys.Input) && m.formOpen {
			m.form.Focus()
			return nil
		}
		return m.listKey(msg)
	case router.Search:
		return m.searchKey(msg)
	case router.ContentPage:
		return m.pageKey(msg)
	case router.Tools:
		if key.Matches(msg, m.keys.Input) {
			m.form.Focus()
			return nil
		}
		var cmd tea.Cmd
		m.textView, cmd = m.textView.Update(msg)
		return cmd
	case router.EditProfile, router.CreateAlbum, router.UploadTrack:
		if key.Matches(msg, m.keys.Input, m.keys.Select) && m.gated == nil {
			m.form.Focus()
		}
		return nil
	case router.EditLyrics:
		if key.Matches(msg, m.keys.Input, m.keys.Select) && m.editReady && !m.recorder.Active() {
			m.editor.Focus()
		}
		return nil
	}
	return nil
}

func (m *Model) listKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor = max(0, m.cursor-1)
	case key.Matches(msg, m.keys.Down):
		m.cursor = max(0, min(len(m.items)-1, m.cursor+1))
	case key.Matches(msg, m.keys.Select):
		if m.cursor < len(m.items) {
			return m.navigate(m.items[m.cursor].state)
		}
	}
	return nil
}

func (m *Model) searchKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Input):
		m.query.Focus()
	case key.Matches(msg, m.keys.Up):
		if m.cursor == 0 {
			m.query.Focus()
			return nil
		}
		m.cursor--
	case key.Matches(msg, m.keys.Down):
		m.cursor = max(0, min(len(m.results)-1, m.cursor+1))
	case key.Matches(msg, m.keys.Select):
		return m.play(m.results, m.cursor)
	}
	return nil
}

func (m *Model) pageKey(msg tea.KeyMsg) tea.Cmd {
	if m.page == nil {
		return nil
	}
	if m.picking {
		return m.pickerKey(msg)
	}

	tracks := m.page.Tracks
	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor = max(0, m.cursor-1)
	case key.Matches(msg, m.keys.Down):
		m.cursor = max(0, min(len(tracks)-1, m.cursor+1))
	case key.Matches(msg, m.keys.Select):
		return m.play(tracks, m.cursor)
	case len(tracks) == 0:
		return nil
	case key.Matches(msg, m.keys.EditLyrics):
		t := tracks[m.cursor]
		return m.navigate(router.EditLyrics{TrackID: t.ID, RawLyrics: t.Lyrics, Title: t.Title, Artist: t.Artist})
	case key.Matches(msg, m.keys.AddToPlaylist):
		return m.openPicker()
	case key.Matches(msg, m.keys.Delete):
		return m.deleteTrack(tracks[m.cursor])
	}
	return nil
}

func (m *Model) openPicker() tea.Cmd {
	if m.user == nil {
		return m.setStatus(session.ErrNotSignedIn.Error(), true)
	}
	if len(m.playlists) == 0 {
		return m.setStatus("Create a playlist in your library first.", true)
	}
	m.picking = true
	m.pickCursor = 0
	return nil
}

func (m *Model) pickerKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Leave):
		m.picking = false
	case key.Matches(msg, m.keys.Up):
		m.pickCursor = max(0, m.pickCursor-1)
	case key.Matches(msg, m.keys.Down):
		m.pickCursor = max(0, min(len(m.playlists)-1, m.pickCursor+1))
	case key.Matches(msg, m.keys.Select):
		m.picking = false
		playlist := m.playlists[m.pickCursor]
		track := m.page.Tracks[m.cursor]
		svc := m.catalog
		return m.mutate("add-to-playlist", func(ctx context.Context) (mutationMsg, error) {
			err := svc.AddToPlaylist(ctx, playlist.ID, track.ID)
			return mutationMsg{status: "Added"}, err
		})
	}
	return nil
}

func (m *Model) deleteTrack(t model.Track) tea.Cmd {
	if err := session.CanAuthor(m.user); err != nil {
		return m.setStatus(err.Error(), true)
	}
	if t.ArtistID != m.user.ID {
		return m.setStatus("You can only delete your own tracks.", true)
	}
	if m.pendingDelete != t.ID {
		m.pendingDelete = t.ID
		return m.setStatus(fmt.Sprintf("Press d again to delete %q", t.Title), false)
	}
	m.pendingDelete = ""
	svc := m.catalog
	return m.mutate("delete-track", func(ctx context.Context) (mutationMsg, error) {
		err := svc.DeleteTrack(ctx, t.ID)
		return mutationMsg{status: "Deleted", next: router.Library{}}, err
	})
}

// play starts tracks at index i.
func (m *Model) play(tracks []model.Track, i int) tea.Cmd {
	if i < 0 || i >= len(tracks) {
		return nil
	}
	if !tracks[i].HasAudio() {
		return m.setStatus("This track has no audio.", true)
	}
	err := m.player.PlayQueue(tracks, i)
	m.now = m.player.Tick()
	if err != nil {
		return m.setStatus(catalog.Message(err), true)
	}
	return tea.Batch(m.setStatus("Playing "+tracks[i].DisplayName(), false), m.loadCover())
}

func (m *Model) openPlaylistForm() tea.Cmd {
	if m.user == nil {
		return m.setStatus(session.ErrNotSignedIn.Error(), true)
	}
	m.form = newForm(
		field{label: "Playlist title", placeholder: "Road trip", limit: 200},
		field{label: "Cover image", placeholder: "optional"},
	)
	m.form.Focus()
	m.formOpen = true
	return nil
}

// submitForm validates the focused form and starts its request.
func (m *Model) submitForm() tea.Cmd {
	svc, store, user := m.catalog, m.store, m.user
	f := m.form

	switch m.router.Current().(type) {
	case router.Tools:
		req := catalog.LyricsRequest{Genre: f.Value(0), About: f.Value(1), Language: f.Value(2)}
		if req.Genre == "" || req.About == "" {
			return m.setStatus("Genre and topic are required.", true)
		}
		m.generating = true
		return m.generate(req)

	case router.EditProfile:
		name, bio := f.Value(0), f.Value(1)
		if name == "" {
			return m.setStatus("Name is required.", true)
		}
		return m.mutate("update-profile", func(ctx context.Context) (mutationMsg, error) {
			u, err := svc.UpdateProfile(ctx, catalog.ProfileUpdate{ID: user.ID, Name: name, Bio: bio})
			if err != nil {
				return mutationMsg{}, err
			}
			if store != nil {
				if err := store.Save(ctx, &u); err != nil {
					return mutationMsg{}, fmt.Errorf("save session: %w", err)
				}
			}
			return mutationMsg{status: "Profile updated", next: router.Home{}, user: &u}, nil
		})

	case router.CreateAlbum:
		a := catalog.NewAlbum{Title: f.Value(0), CoverPath: f.Value(1), ArtistID: user.ID, ArtistName: user.Name}
		if a.Title == "" {
			return m.setStatus("Title is required.", true)
		}
		return m.mutate("create-album", func(ctx context.Context) (mutationMsg, error) {
			_, err := svc.CreateAlbum(ctx, a)
			return mutationMsg{status: "Album created", next: router.Library{}}, err
		})

	case router.UploadTrack:
		t := catalog.NewTrack{
			Title:      f.Value(0),
			AudioPath:  f.Value(1),
			CoverPath:  f.Value(2),
			ArtistID:   user.ID,
			ArtistName: user.Name,
		}
		if t.Title == "" || t.AudioPath == "" {
			return m.setStatus("Title and audio file are required.", true)
		}
		albumID, err := m.albumChoice(f.Value(4))
		if err != nil {
			return m.setStatus(err.Error(), true)
		}
		t.AlbumID = albumID
		lyricsPath := f.Value(3)
		return m.mutate("upload-track", func(ctx context.Context) (mutationMsg, error) {
			text, err := readOptionalFile(lyricsPath)
			if err != nil {
				return mutationMsg{}, err
			}
			t.Lyrics = text
			return mutationMsg{status: "Track uploaded", next: router.Home{}}, svc.UploadTrack(ctx, t)
		})

	case router.Library:
		p := catalog.NewPlaylist{Title: f.Value(0), CoverPath: f.Value(1), Creator: user.Name, CreatorID: user.ID}
		if p.Title == "" {
			return m.setStatus("Title is required.", true)
		}
		return m.mutate("create-playlist", func(ctx context.Context) (mutationMsg, error) {
			_, err := svc.CreatePlaylist(ctx, p)
			return mutationMsg{status: "Playlist created", next: router.Library{}}, err
		})
	}
	return nil
}

// albumChoice maps the 1-based album number typed in the upload form to
// an album id. Blank means a single.
func (m *Model) albumChoice(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > len(m.artistAlbums) {
		return "", errors.New("Pick an album number from the list, or leave it blank.")
	}
	return m.artistAlbums[n-1].ID, nil
}
