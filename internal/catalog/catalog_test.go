package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	api "github.com/handiism/yeahmusic/internal/http"
	"github.com/handiism/yeahmusic/internal/model"
)

type fakeServer struct {
	*httptest.Server
	hits map[string]*atomic.Int32
}

func newFakeServer(t *testing.T, routes map[string]http.HandlerFunc) *fakeServer {
	t.Helper()
	fs := &fakeServer{hits: make(map[string]*atomic.Int32)}
	mux := http.NewServeMux()
	for path, h := range routes {
		n := new(atomic.Int32)
		fs.hits[path] = n
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			n.Add(1)
			h(w, r)
		})
	}
	fs.Server = httptest.NewServer(mux)
	t.Cleanup(fs.Close)
	return fs
}

func (fs *fakeServer) count(path string) int {
	return int(fs.hits[path].Load())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

const contentJSON = `{
	"albums": [{"id":"a1","title":"Night Drive","artist":"Kid"},{"id":"a2","title":"Dawn","artist":"Kid"}],
	"singles": [{"id":"s1","title":"Alone","artist":"Kid","is_single":true}],
	"playlists": [{"id":"p1","title":"Mix","creator":"me"}]
}`

func contentRoute(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(contentJSON))
}

func albumRoute(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	tracks := map[string][]model.Track{
		"a1": {{ID: "t1", Title: "One"}},
		"a2": {{ID: "t2", Title: "Two"}, {ID: "t3", Title: "Three", Lyrics: "[00:01] hi"}},
		"s1": {{ID: "t4", Title: "Alone"}},
	}[id]
	writeJSON(w, map[string]any{
		"info":   map[string]string{"id": id, "title": "Album " + id},
		"tracks": tracks,
	})
}

func TestContentIsCached(t *testing.T) {
	srv := newFakeServer(t, map[string]http.HandlerFunc{"/api/content": contentRoute})
	s := New(api.NewClient(srv.URL))

	_, ok := s.Cached()
	assert.False(t, ok)

	c, err := s.Content(context.Background())
	require.NoError(t, err)
	assert.Len(t, c.Albums, 2)
	assert.Len(t, c.Singles, 1)
	assert.Len(t, c.Playlists, 1)

	_, err = s.Content(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, srv.count("/api/content"))

	_, err = s.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, srv.count("/api/content"))
}

func TestFetchPage(t *testing.T) {
	srv := newFakeServer(t, map[string]http.HandlerFunc{
		"/api/album": albumRoute,
		"/api/playlist": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]any{
				"info":   map[string]string{"id": "p1", "title": "Mix", "creator": "me"},
				"tracks": []model.Track{{ID: "t1"}},
			})
		},
	})
	s := New(api.NewClient(srv.URL))
	ctx := context.Background()

	page, err := s.FetchPage(ctx, model.PageAlbum, "a2")
	require.NoError(t, err)
	assert.Equal(t, model.PageAlbum, page.Kind)
	assert.Equal(t, "Album a2", page.Info.Title)
	assert.Len(t, page.Tracks, 2)

	again, err := s.FetchPage(ctx, model.PageAlbum, "a2")
	require.NoError(t, err)
	assert.Same(t, page, again)
	assert.Equal(t, 1, srv.count("/api/album"))

	pl, err := s.FetchPage(ctx, model.PagePlaylist, "p1")
	require.NoError(t, err)
	assert.Equal(t, model.PagePlaylist, pl.Kind)
	assert.Equal(t, "me", pl.Info.Creator)
}

func TestFindTrack(t *testing.T) {
	srv := newFakeServer(t, map[string]http.HandlerFunc{
		"/api/content": contentRoute,
		"/api/album":   albumRoute,
	})
	s := New(api.NewClient(srv.URL))
	ctx := context.Background()

	tr, err := s.FindTrack(ctx, "t3")
	require.NoError(t, err)
	assert.Equal(t, "Three", tr.Title)
	assert.Equal(t, "[00:01] hi", tr.Lyrics)

	tr, err = s.FindTrack(ctx, "t4")
	require.NoError(t, err)
	assert.Equal(t, "Alone", tr.Title)

	_, err = s.FindTrack(ctx, "missing")
	assert.ErrorIs(t, err, ErrTrackNotFound)
}

func TestFindTrackReportsFetchFailure(t *testing.T) {
	srv := newFakeServer(t, map[string]http.HandlerFunc{
		"/api/content": contentRoute,
		"/api/album": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "database unavailable", http.StatusInternalServerError)
		},
	})
	s := New(api.NewClient(srv.URL))

	_, err := s.FindTrack(context.Background(), "t3")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTrackNotFound)
	assert.True(t, IsNetworkFailure(err))
	assert.Equal(t, "database unavailable", Message(err))
}

func TestSharedFetchOutlivesCancelledCaller(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{}, 1)
	var slow atomic.Int32
	srv := newFakeServer(t, map[string]http.HandlerFunc{
		"/api/content": contentRoute,
		"/api/album": func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("id") == "a2" {
				slow.Add(1)
				select {
				case entered <- struct{}{}:
				default:
				}
				<-release
			}
			albumRoute(w, r)
		},
	})
	t.Cleanup(func() {
		select {
		case <-release:
		default:
			close(release)
		}
	})
	s := New(api.NewClient(srv.URL))
	ctx := context.Background()

	found := make(chan error, 1)
	go func() {
		_, err := s.FindTrack(ctx, "t1")
		found <- err
	}()
	select {
	case <-entered:
	case <-time.After(time.Second):
		t.Fatal("a2 was never requested")
	}
	select {
	case err := <-found:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("FindTrack waited for an unneeded page")
	}

	page := make(chan *model.Page, 1)
	go func() {
		p, err := s.FetchPage(ctx, model.PageAlbum, "a2")
		assert.NoError(t, err)
		page <- p
	}()
	time.Sleep(20 * time.Millisecond)
	close(release)

	select {
	case p := <-page:
		require.NotNil(t, p)
		assert.Len(t, p.Tracks, 2)
	case <-time.After(time.Second):
		t.Fatal("page fetch did not finish")
	}
	assert.Equal(t, int32(1), slow.Load())
}

func TestFindTrackUsesCachedPages(t *testing.T) {
	srv := newFakeServer(t, map[string]http.HandlerFunc{
		"/api/content": contentRoute,
		"/api/album":   albumRoute,
	})
	s := New(api.NewClient(srv.URL))
	ctx := context.Background()

	_, err := s.FetchPage(ctx, model.PageAlbum, "a1")
	require.NoError(t, err)

	tr, err := s.FindTrack(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "One", tr.Title)
	assert.Equal(t, 0, srv.count("/api/content"))
	assert.Equal(t, 1, srv.count("/api/album"))
}

func TestSearch(t *testing.T) {
	srv := newFakeServer(t, map[string]http.HandlerFunc{
		"/api/search": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "night", r.URL.Query().Get("q"))
			writeJSON(w, []model.Track{{ID: "t1", Title: "Night"}})
		},
	})
	s := New(api.NewClient(srv.URL))
	ctx := context.Background()

	for _, q := range []string{"", " ", "n", " é "} {
		got, err := s.Search(ctx, q)
		require.NoError(t, err)
		assert.Nil(t, got, "Search(%q)", q)
	}
	assert.Equal(t, 0, srv.count("/api/search"))

	got, err := s.Search(ctx, "  night ")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Night", got[0].Title)
}

func TestListings(t *testing.T) {
	srv := newFakeServer(t, map[string]http.HandlerFunc{
		"/api/artist-albums": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "u1", r.URL.Query().Get("artist_id"))
			writeJSON(w, []model.Album{{ID: "a1"}})
		},
		"/api/user-playlists": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "u1", r.URL.Query().Get("user_id"))
			writeJSON(w, []model.Playlist{{ID: "p1"}, {ID: "p2"}})
		},
		"/api/stats": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"tracks":12,"users":3,"top_artists":[{"_id":"Kid","count":7}]}`))
		},
	})
	s := New(api.NewClient(srv.URL))
	ctx := context.Background()

	albums, err := s.FetchArtistAlbums(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, albums, 1)

	playlists, err := s.FetchUserPlaylists(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, playlists, 2)

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12, st.Tracks)
	require.Len(t, st.TopArtists, 1)
	assert.Equal(t, "Kid", st.TopArtists[0].Artist)
}

func TestGenerateLyrics(t *testing.T) {
	srv := newFakeServer(t, map[string]http.HandlerFunc{
		"/api/generate-lyrics": func(w http.ResponseWriter, r *http.Request) {
			var req map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "synthwave", req["genre"])
			assert.Equal(t, "the sea", req["about"])
			assert.Equal(t, "en", req["language"])
			writeJSON(w, map[string]string{"lyrics": "[Verse]\nwaves"})
		},
	})
	s := New(api.NewClient(srv.URL))

	text, err := s.GenerateLyrics(context.Background(), LyricsRequest{Genre: "synthwave", About: "the sea", Language: "en"})
	require.NoError(t, err)
	assert.Equal(t, "[Verse]\nwaves", text)
}

func TestMutationsInvalidateCache(t *testing.T) {
	srv := newFakeServer(t, map[string]http.HandlerFunc{
		"/api/content": contentRoute,
		"/api/delete-track": func(w http.ResponseWriter, r *http.Request) {
			var req map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "t1", req["id"])
			writeJSON(w, map[string]string{"status": "deleted"})
		},
	})
	s := New(api.NewClient(srv.URL))
	ctx := context.Background()

	_, err := s.Content(ctx)
	require.NoError(t, err)

	require.NoError(t, s.DeleteTrack(ctx, "t1"))
	_, ok := s.Cached()
	assert.False(t, ok)
}

func TestFailedMutationKeepsCache(t *testing.T) {
	srv := newFakeServer(t, map[string]http.HandlerFunc{
		"/api/content": contentRoute,
		"/api/update-lyrics": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "forbidden", http.StatusForbidden)
		},
	})
	s := New(api.NewClient(srv.URL))
	ctx := context.Background()

	_, err := s.Content(ctx)
	require.NoError(t, err)

	err = s.UpdateLyrics(ctx, "t1", "u2", "[00:01] x")
	require.Error(t, err)
	assert.True(t, IsNetworkFailure(err))
	assert.True(t, api.IsStatus(err, http.StatusForbidden))
	assert.Equal(t, "forbidden", Message(err))

	_, ok := s.Cached()
	assert.True(t, ok)
}

func TestUploadTrackDefaultsToSingle(t *testing.T) {
	srv := newFakeServer(t, map[string]http.HandlerFunc{
		"/api/upload-track": func(w http.ResponseWriter, r *http.Request) {
			assert.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Equal(t, SingleAlbum, r.FormValue("album_id"))
			assert.Equal(t, "Alone", r.FormValue("title"))
			assert.Equal(t, "[00:01] hi", r.FormValue("lyrics"))
			writeJSON(w, map[string]string{"status": "ok"})
		},
	})
	s := New(api.NewClient(srv.URL))

	err := s.UploadTrack(context.Background(), NewTrack{Title: "Alone", ArtistID: "u1", Lyrics: "[00:01] hi"})
	require.NoError(t, err)
}

func TestCreateAndUpdateReturnStoredRecords(t *testing.T) {
	srv := newFakeServer(t, map[string]http.HandlerFunc{
		"/api/create-album": func(w http.ResponseWriter, r *http.Request) {
			assert.NoError(t, r.ParseMultipartForm(1<<20))
			writeJSON(w, model.Album{ID: "a9", Title: r.FormValue("title"), Artist: r.FormValue("artist_name")})
		},
		"/api/create-playlist": func(w http.ResponseWriter, r *http.Request) {
			assert.NoError(t, r.ParseMultipartForm(1<<20))
			writeJSON(w, model.Playlist{ID: "p9", Title: r.FormValue("title"), Creator: r.FormValue("creator")})
		},
		"/api/update-profile": func(w http.ResponseWriter, r *http.Request) {
			var req ProfileUpdate
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			writeJSON(w, model.User{ID: req.ID, Name: req.Name, Bio: req.Bio, Role: model.RoleArtist})
		},
		"/api/add-to-playlist": func(w http.ResponseWriter, r *http.Request) {
			var req map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "p9", req["playlist_id"])
			assert.Equal(t, "t1", req["track_id"])
			writeJSON(w, map[string]string{"status": "added"})
		},
	})
	s := New(api.NewClient(srv.URL))
	ctx := context.Background()

	album, err := s.CreateAlbum(ctx, NewAlbum{Title: "Dusk", ArtistID: "u1", ArtistName: "Kid"})
	require.NoError(t, err)
	assert.Equal(t, "a9", album.ID)
	assert.Equal(t, "Kid", album.Artist)

	pl, err := s.CreatePlaylist(ctx, NewPlaylist{Title: "Mix", Creator: "me", CreatorID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "p9", pl.ID)

	user, err := s.UpdateProfile(ctx, ProfileUpdate{ID: "u1", Name: "Kid", Bio: "hi"})
	require.NoError(t, err)
	assert.True(t, user.IsArtist())
	assert.Equal(t, "hi", user.Bio)

	require.NoError(t, s.AddToPlaylist(ctx, "p9", "t1"))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, assert.AnError.Error(), Message(assert.AnError))
	assert.False(t, IsNetworkFailure(assert.AnError))

	err := wrap("load content", &api.StatusError{Code: http.StatusInternalServerError})
	assert.Equal(t, "HTTP 500: Internal Server Error", Message(err))
}

func TestCover(t *testing.T) {
	srv := newFakeServer(t, map[string]http.HandlerFunc{
		"/uploads/c.jpg": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("jpeg"))
		},
	})
	s := New(api.NewClient(srv.URL))

	data, err := s.Cover(context.Background(), "/uploads/c.jpg")
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(data))
	assert.Equal(t, srv.URL+"/uploads/c.jpg", s.Resolve("/uploads/c.jpg"))

	_, err = s.Cover(context.Background(), "")
	assert.Error(t, err)
}
