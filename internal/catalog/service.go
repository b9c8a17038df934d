// Package catalog is the client side of the music catalog API: content
// and page fetches, search, and the create/update/delete mutations.
//
// Content and pages are cached in memory until a mutation succeeds or
// Refresh is called, so revisiting a view never hits the network twice.
// Concurrent fetches of the same resource share one request.
package catalog

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/handiism/yeahmusic/internal/http"
	"github.com/handiism/yeahmusic/internal/logger"
	"github.com/handiism/yeahmusic/internal/model"
)

// MinQueryLen is the shortest search query sent to the server.
const MinQueryLen = 2

// sharedTimeout bounds a fetch shared between callers.
const sharedTimeout = 60 * time.Second

// ErrTrackNotFound is returned by FindTrack when no page holds the track.
var ErrTrackNotFound = errors.New("track not found")

// errFound stops the page scan in FindTrack once a match is seen.
var errFound = errors.New("found")

// Service talks to the catalog API. It is safe for concurrent use.
type Service struct {
	client *http.Client
	group  singleflight.Group

	mu      sync.RWMutex
	content *model.Content
	pages   map[string]*model.Page
}

// New returns a Service using client for transport.
func New(client *http.Client) *Service {
	return &Service{
		client: client,
		pages:  make(map[string]*model.Page),
	}
}

// Resolve turns a catalog reference (audio or cover path) into a URL.
func (s *Service) Resolve(ref string) string {
	return s.client.Resolve(ref)
}

// Cover downloads the cover image at ref.
func (s *Service) Cover(ctx context.Context, ref string) ([]byte, error) {
	if ref == "" {
		return nil, errors.New("no cover")
	}
	data, err := s.client.DownloadBytes(ctx, ref)
	if err != nil {
		return nil, wrap("load cover", err)
	}
	return data, nil
}

// Cached returns the content snapshot without fetching.
func (s *Service) Cached() (*model.Content, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.content, s.content != nil
}

// Content returns the cached content, fetching it on first use.
func (s *Service) Content(ctx context.Context) (*model.Content, error) {
	if c, ok := s.Cached(); ok {
		return c, nil
	}
	return s.fetchContent(ctx)
}

// Refresh drops every cached response and refetches the content.
func (s *Service) Refresh(ctx context.Context) (*model.Content, error) {
	s.Invalidate()
	return s.fetchContent(ctx)
}

// Invalidate drops cached content and pages.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.content = nil
	s.pages = make(map[string]*model.Page)
	s.mu.Unlock()
}

func (s *Service) fetchContent(ctx context.Context) (*model.Content, error) {
	v, err := s.shared(ctx, "content", func(ctx context.Context) (any, error) {
		var c model.Content
		if err := s.client.GetJSON(ctx, "/api/content", nil, &c); err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.content = &c
		s.mu.Unlock()
		logger.Debug("content loaded",
			zap.Int("albums", len(c.Albums)),
			zap.Int("singles", len(c.Singles)),
			zap.Int("playlists", len(c.Playlists)))
		return &c, nil
	})
	if err != nil {
		return nil, wrap("load content", err)
	}
	return v.(*model.Content), nil
}

// FetchPage returns an album or playlist with its tracks.
func (s *Service) FetchPage(ctx context.Context, kind model.PageKind, id string) (*model.Page, error) {
	key := pageKey(kind, id)

	s.mu.RLock()
	p, ok := s.pages[key]
	s.mu.RUnlock()
	if ok {
		return p, nil
	}

	v, err := s.shared(ctx, key, func(ctx context.Context) (any, error) {
		page := &model.Page{Kind: kind}
		path := "/api/" + kind.String()
		if err := s.client.GetJSON(ctx, path, url.Values{"id": {id}}, page); err != nil {
			return nil, err
		}
		page.Kind = kind
		s.mu.Lock()
		s.pages[key] = page
		s.mu.Unlock()
		return page, nil
	})
	if err != nil {
		return nil, wrap("load "+kind.String(), err)
	}
	return v.(*model.Page), nil
}

// shared runs fetch once for all concurrent callers of key. The fetch gets
// a context detached from the caller that started it, so one caller giving
// up does not fail the others; each caller still returns when its own ctx
// is done.
func (s *Service) shared(ctx context.Context, key string, fetch func(context.Context) (any, error)) (any, error) {
	ch := s.group.DoChan(key, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedTimeout)
		defer cancel()
		return fetch(fctx)
	})
	select {
	case r := <-ch:
		return r.Val, r.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func pageKey(kind model.PageKind, id string) string {
	return kind.String() + "/" + id
}

// FindTrack locates a track by id in the cached pages, or else scans every
// album and single page until it is found. When no page holds the track and
// a page could not be fetched, the first fetch error is returned instead of
// ErrTrackNotFound.
func (s *Service) FindTrack(ctx context.Context, id string) (model.Track, error) {
	if t, ok := s.cachedTrack(id); ok {
		return t, nil
	}

	content, err := s.Content(ctx)
	if err != nil {
		return model.Track{}, err
	}

	var (
		mu       sync.Mutex
		found    model.Track
		fetchErr error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, group := range [][]model.Album{content.Albums, content.Singles} {
		for _, a := range group {
			g.Go(func() error {
				page, err := s.FetchPage(gctx, model.PageAlbum, a.ID)
				if err != nil {
					if gctx.Err() != nil {
						return nil
					}
					logger.Warn("scan album page", zap.String("album_id", a.ID), zap.Error(err))
					mu.Lock()
					if fetchErr == nil {
						fetchErr = err
					}
					mu.Unlock()
					return nil
				}
				for _, t := range page.Tracks {
					if t.ID == id {
						mu.Lock()
						found = t
						mu.Unlock()
						return errFound
					}
				}
				return nil
			})
		}
	}

	if err := g.Wait(); errors.Is(err, errFound) {
		return found, nil
	}
	if err := ctx.Err(); err != nil {
		return model.Track{}, err
	}
	if fetchErr != nil {
		return model.Track{}, fetchErr
	}
	return model.Track{}, ErrTrackNotFound
}

func (s *Service) cachedTrack(id string) (model.Track, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.pages {
		for _, t := range p.Tracks {
			if t.ID == id {
				return t, true
			}
		}
	}
	return model.Track{}, false
}

// FetchArtistAlbums lists an artist's albums, singles excluded.
func (s *Service) FetchArtistAlbums(ctx context.Context, artistID string) ([]model.Album, error) {
	var albums []model.Album
	if err := s.client.GetJSON(ctx, "/api/artist-albums", url.Values{"artist_id": {artistID}}, &albums); err != nil {
		return nil, wrap("load artist albums", err)
	}
	return albums, nil
}

// Search finds tracks matching query. Queries shorter than MinQueryLen
// characters, after trimming, return no results without a request.
func (s *Service) Search(ctx context.Context, query string) ([]model.Track, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinQueryLen {
		return nil, nil
	}
	var tracks []model.Track
	if err := s.client.GetJSON(ctx, "/api/search", url.Values{"q": {query}}, &tracks); err != nil {
		return nil, wrap("search", err)
	}
	return tracks, nil
}

// FetchUserPlaylists lists the playlists created by a user.
func (s *Service) FetchUserPlaylists(ctx context.Context, userID string) ([]model.Playlist, error) {
	var playlists []model.Playlist
	if err := s.client.GetJSON(ctx, "/api/user-playlists", url.Values{"user_id": {userID}}, &playlists); err != nil {
		return nil, wrap("load playlists", err)
	}
	return playlists, nil
}

// Stats returns catalog totals and the top artists.
func (s *Service) Stats(ctx context.Context) (*model.Stats, error) {
	var st model.Stats
	if err := s.client.GetJSON(ctx, "/api/stats", nil, &st); err != nil {
		return nil, wrap("load stats", err)
	}
	return &st, nil
}

// LyricsRequest describes lyrics to generate.
type LyricsRequest struct {
	Genre    string `json:"genre"`
	About    string `json:"about"`
	Language string `json:"language,omitempty"`
	Extra    string `json:"extra,omitempty"`
}

// GenerateLyrics asks the server to write lyrics.
func (s *Service) GenerateLyrics(ctx context.Context, req LyricsRequest) (string, error) {
	var out struct {
		Lyrics string `json:"lyrics"`
	}
	if err := s.client.PostJSON(ctx, "/api/generate-lyrics", req, &out); err != nil {
		return "", wrap("generate lyrics", err)
	}
	return out.Lyrics, nil
}
