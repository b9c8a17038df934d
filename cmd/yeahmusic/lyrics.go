package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/handiism/yeahmusic/internal/audio"
	"github.com/handiism/yeahmusic/internal/lyrics"
)

var lyricsLanguage string

var lyricsCmd = &cobra.Command{
	Use:   "lyrics",
	Short: "Inspect and embed lyrics",
}

var lyricsShowCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Print the lyrics of a text file or an MP3's embedded lyrics",
	Long: `Print the parsed lyrics. Time-tagged lyrics are printed as a sorted
timeline; anything else is printed line by line with section labels
such as [Chorus] set apart.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readLyrics(args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), renderLyrics(text))
		return nil
	},
}

var lyricsEmbedCmd = &cobra.Command{
	Use:   "embed <mp3> <lyrics-file>",
	Short: "Write a lyrics file into an MP3's USLT frame",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[1])
		if err != nil {
			return err
		}
		text := string(data)
		if err := audio.NewTagger(lyricsLanguage).EmbedLyrics(args[0], text); err != nil {
			return err
		}

		kind := "static"
		if lyrics.IsKaraoke(lyrics.Parse(text)) {
			kind = "time-tagged"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Embedded %d %s lines into %s\n", len(lyrics.PlainLines(text)), kind, args[0])
		return nil
	},
}

func init() {
	lyricsEmbedCmd.Flags().StringVar(&lyricsLanguage, "lang", "eng", "ISO 639-2 language code of the lyrics frame")
	lyricsCmd.AddCommand(lyricsShowCmd, lyricsEmbedCmd)
	rootCmd.AddCommand(lyricsCmd)
}

// readLyrics reads the embedded lyrics of audio files and the contents of
// anything else.
func readLyrics(path string) (string, error) {
	if audio.IsAudioFile(path) {
		md, err := audio.ReadMetadata(path)
		return md.Lyrics, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func renderLyrics(text string) string {
	var b strings.Builder

	m := lyrics.Parse(text)
	if lines := lyrics.Timeline(m); len(lines) > 0 {
		for _, l := range lines {
			fmt.Fprintf(&b, "[%s] %s\n", lyrics.FormatTag(l.Time), l.Text)
		}
		return b.String()
	}

	static := lyrics.Classify(text)
	if len(static) == 0 {
		return lyrics.NoLyrics + "\n"
	}
	for i, l := range static {
		if l.Section {
			if i > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "[%s]\n", l.Text)
			continue
		}
		b.WriteString(l.Text)
		b.WriteString("\n")
	}
	return b.String()
}
