package model

import "strings"

// Playlist is a user-curated, ordered list of track ids.
type Playlist struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Creator   string   `json:"creator"`
	CreatorID string   `json:"creator_id"`
	CoverURL  string   `json:"cover_url"`
	Tracks    []string `json:"tracks"`
}

// PlaylistFormat represents the file format used when exporting a page
// as a playlist file.
type PlaylistFormat int

const (
	PlaylistFormatM3U PlaylistFormat = iota
	PlaylistFormatPLS
	PlaylistFormatWPL
	PlaylistFormatZPL
)

// Extension returns the file extension for the playlist format.
//
// Returns ".m3u", ".pls", ".wpl", or ".zpl" depending on the format.
func (pf PlaylistFormat) Extension() string {
	switch pf {
	case PlaylistFormatPLS:
		return ".pls"
	case PlaylistFormatWPL:
		return ".wpl"
	case PlaylistFormatZPL:
		return ".zpl"
	default:
		return ".m3u"
	}
}

// ParsePlaylistFormat maps a format name ("m3u", "pls", "wpl", "zpl") to a
// PlaylistFormat. Unknown names fall back to M3U and ok is false.
func ParsePlaylistFormat(name string) (pf PlaylistFormat, ok bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "m3u":
		return PlaylistFormatM3U, true
	case "pls":
		return PlaylistFormatPLS, true
	case "wpl":
		return PlaylistFormatWPL, true
	case "zpl":
		return PlaylistFormatZPL, true
	default:
		return PlaylistFormatM3U, false
	}
}
