package model

import (
	"fmt"
	"strings"
	"time"
)

// Track represents a single playable track as served by the catalog.
//
// Track contains everything the player needs to load a song:
//   - Title and Artist for the transport bar
//   - AudioURL for the audio output
//   - CoverURL for the full-player thumbnail
//   - Lyrics, either plain text or time-tagged ("[mm:ss] line")
//
// Tracks are owned by the catalog. The player holds them read-only and
// derives a lyrics model from Lyrics each time a track is loaded.
//
// Example:
//
//	var tracks []model.Track
//	json.Unmarshal(body, &tracks)
//	fmt.Println(tracks[0].DisplayName()) // "Artist - Title"
type Track struct {
	// ID is the catalog identifier.
	ID string `json:"id"`

	// Title is the track title.
	Title string `json:"title"`

	// Artist is the display name of the performing artist.
	Artist string `json:"artist"`

	// ArtistID identifies the user that uploaded the track.
	ArtistID string `json:"artist_id"`

	// AlbumID is the parent album. Singles carry their own single-album id.
	AlbumID string `json:"album_id"`

	// CoverURL is a path or URL to the cover image. May be empty.
	CoverURL string `json:"cover_url"`

	// AudioURL is a path or URL to the audio source.
	AudioURL string `json:"audio_url"`

	// Lyrics is the raw lyrics text, possibly time-tagged, possibly empty.
	Lyrics string `json:"lyrics"`

	// Duration is the track length in seconds, 0 when unknown.
	Duration float64 `json:"duration"`

	// IsSingle reports whether the track was released as a single.
	IsSingle bool `json:"is_single"`

	// CreatedAt is the upload time.
	CreatedAt time.Time `json:"created_at"`
}

// HasAudio reports whether the track has an audio source to load.
func (t Track) HasAudio() bool {
	return strings.TrimSpace(t.AudioURL) != ""
}

// HasLyrics reports whether the track carries any non-blank lyrics text.
func (t Track) HasLyrics() bool {
	return strings.TrimSpace(t.Lyrics) != ""
}

// DisplayName returns "Artist - Title", or just the title when the artist
// is unknown.
func (t Track) DisplayName() string {
	if t.Artist == "" {
		return t.Title
	}
	return fmt.Sprintf("%s - %s", t.Artist, t.Title)
}
