package audio

import (
	"fmt"
	"strings"
	"time"

	"github.com/handiism/yeahmusic/internal/model"
)

// PlaylistCreator renders a content page as a playlist file.
//
// Entries are the tracks' audio URLs passed through the resolver, so the
// file can be opened by any player that streams HTTP. Tracks without
// audio are skipped.
//
//	creator := NewPlaylistCreator(model.PlaylistFormatM3U, true, svc.Resolve)
//	content := creator.CreatePlaylist(page)
//
//	// #EXTM3U
//	// #EXTINF:180,Artist - Song Title
//	// http://host/uploads/song.mp3
type PlaylistCreator struct {
	format   model.PlaylistFormat
	extended bool // M3U only: include EXTINF lines
	resolve  func(string) string
}

// NewPlaylistCreator creates a PlaylistCreator. A nil resolve leaves
// audio references as they are.
func NewPlaylistCreator(format model.PlaylistFormat, extended bool, resolve func(string) string) *PlaylistCreator {
	if resolve == nil {
		resolve = func(s string) string { return s }
	}
	return &PlaylistCreator{
		format:   format,
		extended: extended,
		resolve:  resolve,
	}
}

type entry struct {
	src    string
	title  string
	artist string
	length int
}

func (p *PlaylistCreator) entries(page *model.Page) []entry {
	out := make([]entry, 0, len(page.Tracks))
	for _, t := range page.Tracks {
		if !t.HasAudio() {
			continue
		}
		artist := t.Artist
		if artist == "" {
			artist = page.Info.Artist
		}
		out = append(out, entry{
			src:    p.resolve(t.AudioURL),
			title:  t.Title,
			artist: artist,
			length: int(t.Duration),
		})
	}
	return out
}

// CreatePlaylist returns the playlist file content for page.
func (p *PlaylistCreator) CreatePlaylist(page *model.Page) string {
	entries := p.entries(page)
	switch p.format {
	case model.PlaylistFormatPLS:
		return p.createPLS(entries)
	case model.PlaylistFormatWPL:
		return p.createWPL(page.Info.Title, entries)
	case model.PlaylistFormatZPL:
		return p.createZPL(page.Info.Title, entries)
	default:
		return p.createM3U(entries)
	}
}

func (p *PlaylistCreator) createM3U(entries []entry) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}
	for _, e := range entries {
		if p.extended {
			fmt.Fprintf(&sb, "#EXTINF:%d,%s - %s\n", e.length, e.artist, e.title)
		}
		sb.WriteString(e.src + "\n")
	}

	return sb.String()
}

// createPLS writes the INI-style PLS format:
//
//	[playlist]
//	File1=http://host/a.mp3
//	Title1=Song Title
//	Length1=180
//	NumberOfEntries=1
//	Version=2
func (p *PlaylistCreator) createPLS(entries []entry) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")
	for i, e := range entries {
		idx := i + 1
		fmt.Fprintf(&sb, "File%d=%s\n", idx, e.src)
		fmt.Fprintf(&sb, "Title%d=%s - %s\n", idx, e.artist, e.title)
		fmt.Fprintf(&sb, "Length%d=%d\n", idx, e.length)
	}
	fmt.Fprintf(&sb, "NumberOfEntries=%d\n", len(entries))
	sb.WriteString("Version=2\n")

	return sb.String()
}

func (p *PlaylistCreator) createWPL(title string, entries []entry) string {
	var sb strings.Builder

	sb.WriteString("<?wpl version=\"1.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	fmt.Fprintf(&sb, "    <title>%s</title>\n", escapeXML(title))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")
	for _, e := range entries {
		fmt.Fprintf(&sb, "      <media src=\"%s\"/>\n", escapeXML(e.src))
	}
	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

// createZPL is WPL plus per-entry metadata attributes.
func (p *PlaylistCreator) createZPL(title string, entries []entry) string {
	var sb strings.Builder

	sb.WriteString("<?zpl version=\"2.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	fmt.Fprintf(&sb, "    <title>%s</title>\n", escapeXML(title))
	sb.WriteString("    <meta name=\"Generator\" content=\"yeahmusic\"/>\n")
	fmt.Fprintf(&sb, "    <meta name=\"ItemCount\" content=\"%d\"/>\n", len(entries))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")
	for _, e := range entries {
		d := time.Duration(e.length) * time.Second
		fmt.Fprintf(&sb, "      <media src=\"%s\" albumTitle=\"%s\" trackTitle=\"%s\" trackArtist=\"%s\" duration=\"%d\"/>\n",
			escapeXML(e.src),
			escapeXML(title),
			escapeXML(e.title),
			escapeXML(e.artist),
			d.Milliseconds())
	}
	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

// escapeXML escapes & < > " and '.
func escapeXML(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\"", "&quot;",
		"'", "&apos;",
	)
	return r.Replace(s)
}
