package audio

import (
	"fmt"

	"github.com/bogem/id3v2"
)

const usltFrame = "Unsynchronised lyrics/text transcription"

// Tagger reads and writes the lyrics frame of MP3 files.
//
// Lyrics are stored as a single USLT frame; embedding replaces any
// existing lyrics frames.
//
//	tagger := NewTagger("eng")
//	err := tagger.EmbedLyrics("song.mp3", "[00:12] first line")
type Tagger struct {
	language string
}

// NewTagger returns a Tagger writing frames in the given ISO-639-2
// language. An empty language defaults to "eng".
func NewTagger(language string) *Tagger {
	if len(language) != 3 {
		language = "eng"
	}
	return &Tagger{language: language}
}

// EmbedLyrics replaces the lyrics frame of the MP3 at path with text.
// Empty text removes the frame.
func (t *Tagger) EmbedLyrics(path, text string) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("open tags %s: %w", path, err)
	}
	defer tag.Close()

	tag.DeleteFrames(tag.CommonID(usltFrame))
	if text != "" {
		tag.AddUnsynchronisedLyricsFrame(id3v2.UnsynchronisedLyricsFrame{
			Encoding:          id3v2.EncodingUTF8,
			Language:          t.language,
			ContentDescriptor: "",
			Lyrics:            text,
		})
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("save tags %s: %w", path, err)
	}
	return nil
}

// ReadLyrics returns the first lyrics frame of the MP3 at path, or "".
func (t *Tagger) ReadLyrics(path string) (string, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true, ParseFrames: []string{usltFrame}})
	if err != nil {
		return "", fmt.Errorf("open tags %s: %w", path, err)
	}
	defer tag.Close()

	for _, f := range tag.GetFrames(tag.CommonID(usltFrame)) {
		if uslt, ok := f.(id3v2.UnsynchronisedLyricsFrame); ok {
			return uslt.Lyrics, nil
		}
	}
	return "", nil
}
