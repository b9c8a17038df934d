package router

import (
	"net/url"
	"strings"

	"github.com/handiism/yeahmusic/internal/model"
)

// Hash renders s as a deep link such as "#album/42". EditLyrics links
// carry only the track id; the rest is refetched when opened.
func Hash(s State) string {
	switch s := s.(type) {
	case Search:
		return "#search"
	case Library:
		return "#library"
	case Tools:
		return "#tools"
	case EditProfile:
		return "#edit-profile"
	case CreateAlbum:
		return "#create-album"
	case UploadTrack:
		return "#upload-track"
	case ContentPage:
		return "#" + s.Kind.String() + "/" + url.PathEscape(s.ID)
	case EditLyrics:
		return "#edit-lyrics/" + url.PathEscape(s.TrackID)
	default:
		return "#home"
	}
}

// ParseHash is the inverse of Hash. Anything it does not recognize maps to
// Home.
func ParseHash(h string) State {
	h = strings.TrimPrefix(strings.TrimSpace(h), "#")
	name, arg, _ := strings.Cut(h, "/")
	if id, err := url.PathUnescape(arg); err == nil {
		arg = id
	}

	switch name {
	case "search":
		return Search{}
	case "library":
		return Library{}
	case "tools":
		return Tools{}
	case "edit-profile":
		return EditProfile{}
	case "create-album":
		return CreateAlbum{}
	case "upload-track":
		return UploadTrack{}
	case "edit-lyrics":
		if arg != "" {
			return EditLyrics{TrackID: arg}
		}
	default:
		if kind, ok := model.ParsePageKind(name); ok && arg != "" {
			return ContentPage{Kind: kind, ID: arg}
		}
	}
	return Home{}
}
