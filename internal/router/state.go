package router

import "github.com/handiism/yeahmusic/internal/model"

// State describes which view is showing. Values are immutable; navigation
// always creates a new one.
type State interface {
	state()
}

type (
	Home        struct{}
	Search      struct{}
	Library     struct{}
	Tools       struct{}
	EditProfile struct{}
	CreateAlbum struct{}
	UploadTrack struct{}

	// ContentPage shows an album or playlist fetched by id.
	ContentPage struct {
		Kind model.PageKind
		ID   string
	}

	// EditLyrics opens the lyrics editor for a track. RawLyrics seeds the
	// editing buffer.
	EditLyrics struct {
		TrackID   string
		RawLyrics string
		Title     string
		Artist    string
	}
)

func (Home) state()        {}
func (Search) state()      {}
func (Library) state()     {}
func (Tools) state()       {}
func (EditProfile) state() {}
func (CreateAlbum) state() {}
func (UploadTrack) state() {}
func (ContentPage) state() {}
func (EditLyrics) state()  {}

// Section is the bottom-navigation entry highlighted for a view.
type Section int

const (
	SectionHome Section = iota
	SectionSearch
	SectionLibrary
	SectionTools
)

// Sections lists the navigation bar entries in display order.
var Sections = []Section{SectionHome, SectionSearch, SectionLibrary, SectionTools}

func (s Section) String() string {
	switch s {
	case SectionSearch:
		return "Search"
	case SectionLibrary:
		return "Library"
	case SectionTools:
		return "Tools"
	default:
		return "Home"
	}
}

// Root returns the state a section's navigation entry opens.
func (s Section) Root() State {
	switch s {
	case SectionSearch:
		return Search{}
	case SectionLibrary:
		return Library{}
	case SectionTools:
		return Tools{}
	default:
		return Home{}
	}
}

// SectionOf returns the section a state belongs to. Detail and authoring
// views all live under Library.
func SectionOf(s State) Section {
	switch s.(type) {
	case Search:
		return SectionSearch
	case Library, ContentPage, EditProfile, CreateAlbum, UploadTrack, EditLyrics:
		return SectionLibrary
	case Tools:
		return SectionTools
	default:
		return SectionHome
	}
}

// NeedsFetch reports whether rendering s requires data fetched by id.
func NeedsFetch(s State) bool {
	switch s.(type) {
	case ContentPage, EditLyrics:
		return true
	}
	return false
}
