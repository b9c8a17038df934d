package catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/handiism/yeahmusic/internal/http"
	"github.com/handiism/yeahmusic/internal/logger"
	"github.com/handiism/yeahmusic/internal/model"
)

// SingleAlbum is the album id that publishes an upload as a single.
const SingleAlbum = "single"

// NewAlbum is the create-album form.
type NewAlbum struct {
	Title      string
	ArtistID   string
	ArtistName string
	CoverPath  string
}

// NewTrack is the upload-track form. An empty AlbumID uploads a single.
type NewTrack struct {
	AlbumID    string
	Title      string
	ArtistID   string
	ArtistName string
	Lyrics     string
	AudioPath  string
	CoverPath  string
}

// NewPlaylist is the create-playlist form.
type NewPlaylist struct {
	Title     string
	Creator   string
	CreatorID string
	CoverPath string
}

// ProfileUpdate is the edit-profile form.
type ProfileUpdate struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

// CreateAlbum publishes an empty album.
func (s *Service) CreateAlbum(ctx context.Context, a NewAlbum) (model.Album, error) {
	var album model.Album
	err := s.client.PostMultipart(ctx, "/api/create-album",
		map[string]string{
			"title":       a.Title,
			"artist_id":   a.ArtistID,
			"artist_name": a.ArtistName,
		},
		[]http.FormFile{{Field: "cover", Path: a.CoverPath}},
		&album)
	return album, s.mutated("create album", err)
}

// UploadTrack uploads an audio file into an album or as a single.
func (s *Service) UploadTrack(ctx context.Context, t NewTrack) error {
	albumID := t.AlbumID
	if albumID == "" {
		albumID = SingleAlbum
	}
	err := s.client.PostMultipart(ctx, "/api/upload-track",
		map[string]string{
			"album_id":    albumID,
			"title":       t.Title,
			"artist_id":   t.ArtistID,
			"artist_name": t.ArtistName,
			"lyrics":      t.Lyrics,
		},
		[]http.FormFile{
			{Field: "audio", Path: t.AudioPath},
			{Field: "cover", Path: t.CoverPath},
		},
		nil)
	return s.mutated("upload track", err)
}

// CreatePlaylist creates an empty playlist.
func (s *Service) CreatePlaylist(ctx context.Context, p NewPlaylist) (model.Playlist, error) {
	var playlist model.Playlist
	err := s.client.PostMultipart(ctx, "/api/create-playlist",
		map[string]string{
			"title":      p.Title,
			"creator":    p.Creator,
			"creator_id": p.CreatorID,
		},
		[]http.FormFile{{Field: "cover", Path: p.CoverPath}},
		&playlist)
	return playlist, s.mutated("create playlist", err)
}

// UpdateProfile saves the user's name and bio and returns the stored user.
func (s *Service) UpdateProfile(ctx context.Context, p ProfileUpdate) (model.User, error) {
	var user model.User
	err := s.client.PostJSON(ctx, "/api/update-profile", p, &user)
	return user, s.mutated("update profile", err)
}

// DeleteTrack removes a track.
func (s *Service) DeleteTrack(ctx context.Context, trackID string) error {
	err := s.client.PostJSON(ctx, "/api/delete-track", map[string]string{"id": trackID}, nil)
	return s.mutated("delete track", err)
}

// AddToPlaylist appends a track to a playlist.
func (s *Service) AddToPlaylist(ctx context.Context, playlistID, trackID string) error {
	err := s.client.PostJSON(ctx, "/api/add-to-playlist", map[string]string{
		"playlist_id": playlistID,
		"track_id":    trackID,
	}, nil)
	return s.mutated("add to playlist", err)
}

// UpdateLyrics stores new lyrics for a track. The server rejects users who
// are not the track's artist.
func (s *Service) UpdateLyrics(ctx context.Context, trackID, userID, lyrics string) error {
	err := s.client.PostJSON(ctx, "/api/update-lyrics", map[string]string{
		"track_id": trackID,
		"user_id":  userID,
		"lyrics":   lyrics,
	}, nil)
	return s.mutated("update lyrics", err)
}

// mutated invalidates the caches after a successful mutation.
func (s *Service) mutated(op string, err error) error {
	if err != nil {
		logger.Warn("mutation failed", zap.String("op", op), zap.Error(err))
		return wrap(op, err)
	}
	logger.Info("mutation", zap.String("op", op))
	s.Invalidate()
	return nil
}
