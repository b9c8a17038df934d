package model

import (
	"regexp"
	"strings"
	"time"
)

// Album represents an album or a single-track release.
//
// Albums are listed on the home view (split into albums and singles)
// and open as a content page showing their tracks.
type Album struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Artist      string    `json:"artist"`
	ArtistID    string    `json:"artist_id"`
	CoverURL    string    `json:"cover_url"`
	IsSingle    bool      `json:"is_single"`
	ReleaseDate time.Time `json:"release_date"`
}

// HasArtwork returns true if the album has cover art available.
func (a *Album) HasArtwork() bool {
	return a.CoverURL != ""
}

// sanitizeFileName removes or replaces characters that are invalid in file/folder names.
//
// This ensures compatibility across Windows, macOS, and Linux:
//   - Replaces <>:"/\|?* and control characters with underscore
//   - Removes trailing dots (Windows limitation)
//   - Collapses multiple whitespace to single space
//   - Removes trailing whitespace
func sanitizeFileName(name string) string {
	// Replace invalid path/file characters
	invalidChars := regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	name = invalidChars.ReplaceAllString(name, "_")

	// Remove trailing dots
	name = regexp.MustCompile(`\.+$`).ReplaceAllString(name, "")

	// Replace multiple whitespace with single space
	name = regexp.MustCompile(`\s+`).ReplaceAllString(name, " ")

	// Remove trailing whitespace
	name = strings.TrimRight(name, " ")

	return name
}
