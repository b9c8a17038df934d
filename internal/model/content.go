package model

import "fmt"

// Content is the bulk catalog snapshot shown on the home and library views.
type Content struct {
	Albums    []Album    `json:"albums"`
	Singles   []Album    `json:"singles"`
	Playlists []Playlist `json:"playlists"`
}

// FindAlbum returns the album or single with the given id.
func (c *Content) FindAlbum(id string) (Album, bool) {
	for _, group := range [][]Album{c.Albums, c.Singles} {
		for _, a := range group {
			if a.ID == id {
				return a, true
			}
		}
	}
	return Album{}, false
}

// PageKind selects which detail page a content page shows.
type PageKind int

const (
	PageAlbum PageKind = iota
	PagePlaylist
)

// String returns the lowercase kind name used in deep links and endpoints.
func (k PageKind) String() string {
	switch k {
	case PageAlbum:
		return "album"
	case PagePlaylist:
		return "playlist"
	default:
		return fmt.Sprintf("PageKind(%d)", int(k))
	}
}

// ParsePageKind is the inverse of PageKind.String.
func ParsePageKind(s string) (PageKind, bool) {
	switch s {
	case "album":
		return PageAlbum, true
	case "playlist":
		return PagePlaylist, true
	}
	return 0, false
}

// PageInfo is the header of a content page. Album pages fill Artist and
// ArtistID; playlist pages fill Creator and CreatorID.
type PageInfo struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Artist    string `json:"artist,omitempty"`
	ArtistID  string `json:"artist_id,omitempty"`
	Creator   string `json:"creator,omitempty"`
	CreatorID string `json:"creator_id,omitempty"`
	CoverURL  string `json:"cover_url"`
	IsSingle  bool   `json:"is_single,omitempty"`
}

// Byline returns the artist for albums and the creator for playlists.
func (i PageInfo) Byline() string {
	if i.Artist != "" {
		return i.Artist
	}
	return i.Creator
}

// Page is a detail fetch result: page header plus its tracks in order.
type Page struct {
	Kind   PageKind `json:"-"`
	Info   PageInfo `json:"info"`
	Tracks []Track  `json:"tracks"`
}

// FileName returns a file-system safe name for exporting the page in the
// given playlist format.
func (p *Page) FileName(format PlaylistFormat) string {
	name := sanitizeFileName(p.Info.Title)
	if name == "" {
		name = p.Kind.String() + "-" + sanitizeFileName(p.Info.ID)
	}
	return name + format.Extension()
}

// TotalDuration sums the known track durations, in seconds.
func (p *Page) TotalDuration() float64 {
	var total float64
	for _, t := range p.Tracks {
		total += t.Duration
	}
	return total
}

// ArtistCount is one row of the catalog's top-artists ranking.
type ArtistCount struct {
	Artist string `json:"_id"`
	Count  int    `json:"count"`
}

// Stats summarizes the catalog.
type Stats struct {
	Tracks     int           `json:"tracks"`
	Users      int           `json:"users"`
	TopArtists []ArtistCount `json:"top_artists"`
}
