package tui

import (
	"context"
	"errors"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/handiism/yeahmusic/internal/catalog"
	"github.com/handiism/yeahmusic/internal/logger"
	"github.com/handiism/yeahmusic/internal/model"
	"github.com/handiism/yeahmusic/internal/router"
)

// Message types
type (
	// contentMsg delivers the catalog content for Home.
	contentMsg struct {
		gen     uint64
		content *model.Content
		err     error
	}

	// libraryMsg delivers the content plus the user's playlists.
	libraryMsg struct {
		gen       uint64
		content   *model.Content
		playlists []model.Playlist
		err       error
	}

	// pageMsg delivers an album or playlist page.
	pageMsg struct {
		gen       uint64
		page      *model.Page
		playlists []model.Playlist
		err       error
	}

	// trackMsg delivers the track opened in the lyrics editor.
	trackMsg struct {
		gen   uint64
		track model.Track
		err   error
	}

	// artistAlbumsMsg delivers the albums offered by the upload form.
	artistAlbumsMsg struct {
		gen    uint64
		albums []model.Album
		err    error
	}

	// searchMsg delivers results for query number seq.
	searchMsg struct {
		seq    int
		tracks []model.Track
		err    error
	}

	statsMsg struct {
		gen   uint64
		stats *model.Stats
		err   error
	}

	generatedMsg struct {
		lyrics string
		err    error
	}

	// mutationMsg reports a finished create/update/delete.
	mutationMsg struct {
		op     string
		status string
		next   router.State // view to land on; nil stays
		back   bool
		user   *model.User
		err    error
	}

	coverMsg struct {
		ref   string
		thumb string
		err   error
	}

	sessionMsg struct {
		user *model.User
	}

	tickMsg    struct{}
	endedMsg   struct{ load uint64 }
	clearMsg   struct{ seq int }
	sessionEnd struct{}
)

const statusTTL = 4 * time.Second

// background runs fn off the event loop with the request timeout.
func (m *Model) background(fn func(ctx context.Context) tea.Msg) tea.Cmd {
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return fn(ctx)
	}
}

func (m *Model) fetchContent(gen uint64) tea.Cmd {
	svc := m.catalog
	return m.background(func(ctx context.Context) tea.Msg {
		c, err := svc.Content(ctx)
		return contentMsg{gen: gen, content: c, err: err}
	})
}

func (m *Model) fetchLibrary(gen uint64) tea.Cmd {
	svc, user := m.catalog, m.user
	return m.background(func(ctx context.Context) tea.Msg {
		c, err := svc.Content(ctx)
		if err != nil {
			return libraryMsg{gen: gen, err: err}
		}
		msg := libraryMsg{gen: gen, content: c}
		if user != nil {
			msg.playlists, msg.err = svc.FetchUserPlaylists(ctx, user.ID)
		}
		return msg
	})
}

func (m *Model) fetchPage(gen uint64, p router.ContentPage) tea.Cmd {
	svc, user := m.catalog, m.user
	return m.background(func(ctx context.Context) tea.Msg {
		page, err := svc.FetchPage(ctx, p.Kind, p.ID)
		if err != nil {
			return pageMsg{gen: gen, err: err}
		}
		msg := pageMsg{gen: gen, page: page}
		if user != nil {
			playlists, err := svc.FetchUserPlaylists(ctx, user.ID)
			if err != nil {
				logger.Warn("load playlists for picker", zap.Error(err))
			}
			msg.playlists = playlists
		}
		return msg
	})
}

func (m *Model) fetchTrack(gen uint64, id string) tea.Cmd {
	svc := m.catalog
	return m.background(func(ctx context.Context) tea.Msg {
		t, err := svc.FindTrack(ctx, id)
		return trackMsg{gen: gen, track: t, err: err}
	})
}

func (m *Model) fetchArtistAlbums(gen uint64, artistID string) tea.Cmd {
	svc := m.catalog
	return m.background(func(ctx context.Context) tea.Msg {
		albums, err := svc.FetchArtistAlbums(ctx, artistID)
		return artistAlbumsMsg{gen: gen, albums: albums, err: err}
	})
}

func (m *Model) fetchStats(gen uint64) tea.Cmd {
	svc := m.catalog
	return m.background(func(ctx context.Context) tea.Msg {
		st, err := svc.Stats(ctx)
		return statsMsg{gen: gen, stats: st, err: err}
	})
}

func (m *Model) search(seq int, query string) tea.Cmd {
	svc := m.catalog
	return m.background(func(ctx context.Context) tea.Msg {
		tracks, err := svc.Search(ctx, query)
		return searchMsg{seq: seq, tracks: tracks, err: err}
	})
}

func (m *Model) generate(req catalog.LyricsRequest) tea.Cmd {
	svc := m.catalog
	return m.background(func(ctx context.Context) tea.Msg {
		text, err := svc.GenerateLyrics(ctx, req)
		return generatedMsg{lyrics: text, err: err}
	})
}

// mutate runs fn in the background and reports it as a mutationMsg.
func (m *Model) mutate(op string, fn func(ctx context.Context) (mutationMsg, error)) tea.Cmd {
	return m.background(func(ctx context.Context) tea.Msg {
		msg, err := fn(ctx)
		msg.op = op
		msg.err = err
		return msg
	})
}

func (m *Model) fetchCover(ref string) tea.Cmd {
	svc, images, size := m.catalog, m.images, m.coverSize
	return m.background(func(ctx context.Context) tea.Msg {
		data, err := svc.Cover(ctx, ref)
		if err != nil {
			return coverMsg{ref: ref, err: err}
		}
		thumb, err := images.Thumbnail(ctx, data, size)
		return coverMsg{ref: ref, thumb: thumb, err: err}
	})
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.tickEvery, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// waitEnded blocks until the output signals the end of a track.
func waitEnded(ch <-chan uint64) tea.Cmd {
	return func() tea.Msg {
		load, ok := <-ch
		if !ok {
			return nil
		}
		return endedMsg{load: load}
	}
}

// waitSession blocks until the session file changes.
func waitSession(ch <-chan *model.User) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		u, ok := <-ch
		if !ok {
			return sessionEnd{}
		}
		return sessionMsg{user: u}
	}
}

func clearStatusAfter(seq int) tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return clearMsg{seq: seq}
	})
}

func readOptionalFile(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", errors.New("file not found: " + path)
	}
	return string(data), err
}
