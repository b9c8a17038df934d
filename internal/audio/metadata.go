package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// Extensions lists the file extensions treated as audio.
var Extensions = []string{".mp3", ".flac", ".m4a", ".ogg"}

// IsAudioFile reports whether path has a known audio extension.
func IsAudioFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Metadata is the subset of a local file's tags the client uses.
type Metadata struct {
	Path   string
	Title  string
	Artist string
	Album  string
	Format string
	Lyrics string
}

// DisplayName returns "Artist - Title", falling back to the file name.
func (m Metadata) DisplayName() string {
	switch {
	case m.Title == "":
		return filepath.Base(m.Path)
	case m.Artist == "":
		return m.Title
	default:
		return m.Artist + " - " + m.Title
	}
}

// ReadMetadata reads the tags of the audio file at path. A file without
// any recognisable tags yields Metadata with only Path set.
func ReadMetadata(path string) (Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return Metadata{}, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if errors.Is(err, tag.ErrNoTagsFound) {
		return Metadata{Path: path}, nil
	}
	if err != nil {
		return Metadata{}, fmt.Errorf("read tags %s: %w", path, err)
	}
	return Metadata{
		Path:   path,
		Title:  m.Title(),
		Artist: m.Artist(),
		Album:  m.Album(),
		Format: string(m.FileType()),
		Lyrics: m.Lyrics(),
	}, nil
}
