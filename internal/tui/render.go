package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/handiism/yeahmusic/internal/model"
	"github.com/handiism/yeahmusic/internal/router"
	"github.com/handiism/yeahmusic/internal/session"
)

var _ router.Renderer[tea.Cmd] = (*Model)(nil)

// BeginRender resets per-view state, closes overlays and detaches
// view-scoped key listeners before any view renders.
func (m *Model) BeginRender(section router.Section) {
	m.section = section
	m.overlay = overlayNone
	m.loading = false
	m.err = nil
	m.gated = nil
	m.items = nil
	m.cursor = 0
	m.page = nil
	m.picking = false
	m.pendingDelete = ""
	m.formOpen = false
	m.form = form{}
	m.editReady = false
	m.tapErr = nil
	m.query.Blur()
	m.editor.Blur()

	m.listeners.detach(tapScope)
	m.recorder.Close()
}

func (m *Model) RenderHome() tea.Cmd {
	if c, ok := m.catalog.Cached(); ok {
		m.content = c
		m.items = homeItems(c)
		return nil
	}
	m.loading = true
	return m.fetchContent(m.router.Generation())
}

func (m *Model) RenderSearch() tea.Cmd {
	m.query.Focus()
	return nil
}

func (m *Model) RenderLibrary() tea.Cmd {
	if c, ok := m.catalog.Cached(); ok && m.libraryLoaded {
		m.content = c
		m.items = m.libraryItems()
		return nil
	}
	m.loading = true
	return m.fetchLibrary(m.router.Generation())
}

func (m *Model) RenderTools() tea.Cmd {
	m.form = newForm(
		field{label: "Genre", placeholder: "synthwave"},
		field{label: "About", placeholder: "night drive along the coast"},
		field{label: "Language", value: "en", limit: 8},
	)
	m.form.Focus()
	m.loading = true
	return m.fetchStats(m.router.Generation())
}

func (m *Model) RenderEditProfile() tea.Cmd {
	if err := session.CanEditProfile(m.user); err != nil {
		m.gated = err
		return nil
	}
	m.form = newForm(
		field{label: "Name", value: m.user.Name, limit: 100},
		field{label: "Bio", value: m.user.Bio, limit: 500},
	)
	m.form.Focus()
	return nil
}

func (m *Model) RenderCreateAlbum() tea.Cmd {
	if err := session.CanAuthor(m.user); err != nil {
		m.gated = err
		return nil
	}
	m.form = newForm(
		field{label: "Title", placeholder: "Album title", limit: 200},
		field{label: "Cover image", placeholder: "/path/to/cover.jpg"},
	)
	m.form.Focus()
	return nil
}

func (m *Model) RenderUploadTrack() tea.Cmd {
	if err := session.CanAuthor(m.user); err != nil {
		m.gated = err
		return nil
	}
	m.form = newForm(
		field{label: "Title", placeholder: "Track title", limit: 200},
		field{label: "Audio file", placeholder: "/path/to/track.mp3"},
		field{label: "Cover image", placeholder: "optional"},
		field{label: "Lyrics file", placeholder: "optional, plain or [mm:ss] timed"},
		field{label: "Album", placeholder: "number from the list, blank for a single", limit: 4},
	)
	m.form.Focus()
	m.artistAlbums = nil
	m.loading = true
	return m.fetchArtistAlbums(m.router.Generation(), m.user.ID)
}

func (m *Model) RenderContentPage(p router.ContentPage) tea.Cmd {
	m.loading = true
	return m.fetchPage(m.router.Generation(), p)
}

func (m *Model) RenderEditLyrics(e router.EditLyrics) tea.Cmd {
	m.editing = e
	m.editTrack = model.Track{}
	m.editor.Reset()
	if err := session.CanAuthor(m.user); err != nil {
		m.gated = err
		return nil
	}
	m.loading = true
	return m.fetchTrack(m.router.Generation(), e.TrackID)
}

func homeItems(c *model.Content) []item {
	var items []item
	for _, a := range c.Albums {
		items = append(items, albumItem("Albums", a))
	}
	for _, a := range c.Singles {
		items = append(items, albumItem("Singles", a))
	}
	for _, p := range c.Playlists {
		items = append(items, playlistItem("Playlists", p))
	}
	return items
}

func (m *Model) libraryItems() []item {
	var items []item
	for _, p := range m.playlists {
		items = append(items, playlistItem("Your playlists", p))
	}
	if m.content != nil {
		for _, a := range m.content.Albums {
			items = append(items, albumItem("Albums", a))
		}
	}
	if m.user != nil {
		items = append(items, item{group: "Account", label: "Edit profile", state: router.EditProfile{}})
		if m.user.IsArtist() {
			items = append(items,
				item{group: "Account", label: "Create album", state: router.CreateAlbum{}},
				item{group: "Account", label: "Upload track", state: router.UploadTrack{}},
			)
		}
	}
	return items
}

func albumItem(group string, a model.Album) item {
	return item{
		group:  group,
		label:  a.Title,
		detail: a.Artist,
		state:  router.ContentPage{Kind: model.PageAlbum, ID: a.ID},
	}
}

func playlistItem(group string, p model.Playlist) item {
	return item{
		group:  group,
		label:  p.Title,
		detail: fmt.Sprintf("%s · %d tracks", p.Creator, len(p.Tracks)),
		state:  router.ContentPage{Kind: model.PagePlaylist, ID: p.ID},
	}
}
