package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/handiism/yeahmusic/internal/lyrics"
	"github.com/handiism/yeahmusic/internal/player"
)

// syncLyricsView redraws the lyrics overlay and keeps the active karaoke
// line in the middle of the viewport.
func (m *Model) syncLyricsView() {
	if m.overlay != overlayLyrics {
		return
	}
	m.lyricsView.SetContent(renderLyrics(m.player.Lyrics(), m.now))
	if lyrics.IsKaraoke(m.player.Lyrics()) && m.now.HasLine {
		m.lyricsView.SetYOffset(max(0, m.now.Line-m.lyricsView.Height/2))
	}
}

// renderLyrics draws karaoke lines with the active one highlighted, or
// static text with section labels styled apart.
func renderLyrics(lm lyrics.Model, now player.Progress) string {
	var b strings.Builder
	if lines := lyrics.Timeline(lm); len(lines) > 0 {
		for i, l := range lines {
			text := l.Text
			if text == "" {
				text = "♪"
			}
			if now.HasLine && i == now.Line {
				b.WriteString(activeLineStyle.Render("▶ " + text))
			} else {
				b.WriteString(dimStyle.Render("  " + text))
			}
			b.WriteString("\n")
		}
		return b.String()
	}

	var text string
	if s, ok := lm.(lyrics.Static); ok {
		text = s.Text
	}
	static := lyrics.Classify(text)
	if len(static) == 0 {
		return dimStyle.Render(lyrics.NoLyrics)
	}
	for _, l := range static {
		if l.Section {
			b.WriteString("\n")
			b.WriteString(sectionLineStyle.Render(l.Text))
		} else {
			b.WriteString(l.Text)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// loadCover fetches the playing track's cover for the full player once.
func (m *Model) loadCover() tea.Cmd {
	if m.overlay != overlayPlayer {
		return nil
	}
	t, ok := m.player.Current()
	if !ok || t.CoverURL == "" {
		return nil
	}
	if _, seen := m.covers[t.CoverURL]; seen {
		return nil
	}
	m.covers[t.CoverURL] = cover{}
	return m.fetchCover(t.CoverURL)
}

func (m Model) playerOverlay() string {
	t, ok := m.player.Current()
	if !ok {
		return boxStyle.Render(dimStyle.Render("Nothing playing. Pick a track and press enter."))
	}

	var b strings.Builder
	c := m.covers[t.CoverURL]
	if c.thumb != "" {
		b.WriteString(c.thumb)
	} else {
		b.WriteString(coverPlaceholder(m.coverSize))
	}
	b.WriteString("\n")
	b.WriteString(albumStyle.Render(t.Title))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(t.Artist))
	b.WriteString("\n\n")
	b.WriteString(m.progress.ViewAs(m.now.Percent))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%s  %s", m.now.Elapsed, m.now.Remaining)))
	b.WriteString("\n\n")
	b.WriteString(infoStyle.Render(transportLine(m.player)))
	if q := m.player.Queue(); len(q) > 1 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  track %d of %d", m.player.Index()+1, len(q))))
	}
	return boxStyle.Render(b.String())
}

func coverPlaceholder(size int) string {
	size = max(4, size)
	row := strings.Repeat("░", size)
	rows := make([]string, size/2)
	for i := range rows {
		rows[i] = row
	}
	return dimStyle.Render(strings.Join(rows, "\n"))
}

func transportLine(p *player.Manager) string {
	state := "⏸ paused"
	if p.Status() == player.StatusPlaying {
		state = "▶ playing"
	}
	if p.Loop() {
		state += "  ↻ loop"
	}
	return state
}

func (m Model) lyricsOverlay() string {
	title := "Lyrics"
	if t, ok := m.player.Current(); ok {
		title = t.DisplayName()
	}
	return titleStyle.Render(title) + "\n\n" + m.lyricsView.View()
}
