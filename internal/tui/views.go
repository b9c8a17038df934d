package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/yeahmusic/internal/catalog"
	"github.com/handiism/yeahmusic/internal/lyrics"
	"github.com/handiism/yeahmusic/internal/model"
	"github.com/handiism/yeahmusic/internal/router"
)

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("♫ yeahmusic"))
	if m.user != nil {
		b.WriteString(dimStyle.Render("  signed in as " + m.user.Name))
	}
	b.WriteString("\n\n")

	switch m.overlay {
	case overlayPlayer:
		b.WriteString(m.playerOverlay())
	case overlayLyrics:
		b.WriteString(m.lyricsOverlay())
	default:
		b.WriteString(m.viewState())
	}
	b.WriteString("\n")

	// Footer
	if m.status != "" {
		if m.statusErr {
			b.WriteString(errorStyle.Render(m.status))
		} else {
			b.WriteString(successStyle.Render(m.status))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.miniPlayer())
	b.WriteString("\n")
	b.WriteString(m.navBar())
	b.WriteString("\n")
	if m.recorder.Active() {
		b.WriteString(m.help.View(m.tapKeys))
	} else {
		b.WriteString(m.help.View(m.keys))
	}

	return b.String()
}

func (m Model) viewState() string {
	if m.gated != nil {
		return warningStyle.Render(m.gated.Error())
	}
	if m.loading && !m.hasPartialView() {
		return m.spinner.View() + " " + subtitleStyle.Render("Loading...")
	}
	if m.err != nil && !m.hasPartialView() {
		return m.viewError()
	}

	switch cur := m.router.Current().(type) {
	case router.Search:
		return m.viewSearch()
	case router.Library:
		return m.viewLibrary()
	case router.Tools:
		return m.viewTools()
	case router.EditProfile:
		return subtitleStyle.Render("Edit profile") + "\n\n" + m.form.View()
	case router.CreateAlbum:
		return subtitleStyle.Render("Create album") + "\n\n" + m.form.View()
	case router.UploadTrack:
		return m.viewUpload()
	case router.ContentPage:
		return m.viewPage()
	case router.EditLyrics:
		return m.viewEditor(cur)
	default:
		return m.viewList("Nothing in the catalog yet.")
	}
}

// hasPartialView reports views that stay usable while their fetch is
// pending or failed.
func (m Model) hasPartialView() bool {
	switch m.router.Current().(type) {
	case router.Tools, router.UploadTrack:
		return true
	}
	return false
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("✗ " + catalog.Message(m.err)))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("Press [ to go back."))

	return b.String()
}

func (m Model) viewList(empty string) string {
	if len(m.items) == 0 {
		return dimStyle.Render(empty)
	}

	var b strings.Builder
	group := ""
	for i, it := range m.items {
		if it.group != group {
			if group != "" {
				b.WriteString("\n")
			}
			group = it.group
			b.WriteString(subtitleStyle.Render(group))
			b.WriteString("\n")
		}
		b.WriteString(row(i == m.cursor, it.label, it.detail))
	}
	return b.String()
}

func row(selected bool, label, detail string) string {
	line := "  " + label
	if selected {
		line = selectedStyle.Render("› " + label)
	}
	if detail != "" {
		line += dimStyle.Render("  " + detail)
	}
	return line + "\n"
}

func (m Model) viewLibrary() string {
	var b strings.Builder

	if m.user == nil {
		b.WriteString(dimStyle.Render("Signed out. Sign in to see your playlists."))
		b.WriteString("\n\n")
	}
	if m.formOpen {
		b.WriteString(subtitleStyle.Render("New playlist"))
		b.WriteString("\n\n")
		b.WriteString(m.form.View())
	}
	b.WriteString(m.viewList("Your library is empty."))

	return b.String()
}

func (m Model) viewSearch() string {
	var b strings.Builder

	b.WriteString(m.query.View())
	b.WriteString("\n\n")

	switch {
	case m.searching:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(dimStyle.Render("Searching..."))
	case len(m.results) > 0:
		for i, t := range m.results {
			b.WriteString(row(i == m.cursor && !m.query.Focused(), t.Title, t.Artist))
		}
	case len([]rune(m.query.Value())) >= catalog.MinQueryLen:
		b.WriteString(dimStyle.Render("No matches."))
	default:
		b.WriteString(dimStyle.Render(fmt.Sprintf("Type at least %d characters.", catalog.MinQueryLen)))
	}

	return b.String()
}

func (m Model) viewPage() string {
	if m.page == nil {
		return ""
	}
	p := m.page
	var b strings.Builder

	b.WriteString(albumStyle.Render(p.Info.Title))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(p.Info.Byline()))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %s · %d tracks · %s",
		p.Kind, len(p.Tracks), lyrics.FormatClock(p.TotalDuration()))))
	b.WriteString("\n\n")

	if len(p.Tracks) == 0 {
		b.WriteString(dimStyle.Render("No tracks yet."))
		return b.String()
	}

	playing, isPlaying := m.player.Current()
	for i, t := range p.Tracks {
		label := fmt.Sprintf("%2d. %s", i+1, t.Title)
		if isPlaying && playing.ID == t.ID {
			label += " ♪"
		}
		detail := t.Artist
		if t.Duration > 0 {
			detail += "  " + lyrics.FormatClock(t.Duration)
		}
		b.WriteString(row(i == m.cursor && !m.picking, label, detail))
	}

	if m.picking {
		b.WriteString("\n")
		b.WriteString(subtitleStyle.Render("Add to playlist"))
		b.WriteString("\n")
		for i, pl := range m.playlists {
			b.WriteString(row(i == m.pickCursor, pl.Title, fmt.Sprintf("%d tracks", len(pl.Tracks))))
		}
	}

	return b.String()
}

func (m Model) viewTools() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Lyrics generator"))
	b.WriteString("\n\n")
	b.WriteString(m.form.View())
	if m.generating {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(dimStyle.Render("Writing lyrics..."))
		b.WriteString("\n")
	}
	if m.generated != "" {
		b.WriteString(boxStyle.Render(m.textView.View()))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("Open a track's lyrics editor and press ctrl+g to insert."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Catalog"))
	b.WriteString("\n")
	switch {
	case m.loading:
		b.WriteString(m.spinner.View())
	case m.err != nil:
		b.WriteString(errorStyle.Render(catalog.Message(m.err)))
	case m.stats != nil:
		b.WriteString(viewStats(m.stats))
	}

	return b.String()
}

func viewStats(st *model.Stats) string {
	var b strings.Builder

	b.WriteString(infoStyle.Render(fmt.Sprintf("%d tracks | %d users", st.Tracks, st.Users)))
	b.WriteString("\n")
	for i, a := range st.TopArtists {
		b.WriteString(fmt.Sprintf("  %d. %s", i+1, a.Artist))
		b.WriteString(dimStyle.Render(fmt.Sprintf(" (%d)", a.Count)))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewUpload() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Upload track"))
	b.WriteString("\n\n")
	b.WriteString(m.form.View())

	b.WriteString(infoStyle.Render("Your albums:"))
	b.WriteString("\n")
	switch {
	case m.loading:
		b.WriteString(m.spinner.View())
		b.WriteString("\n")
	case len(m.artistAlbums) == 0:
		b.WriteString(dimStyle.Render("  none, the track will be a single"))
		b.WriteString("\n")
	default:
		for i, a := range m.artistAlbums {
			b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, a.Title))
		}
	}

	return b.String()
}

func (m Model) viewEditor(e router.EditLyrics) string {
	var b strings.Builder

	title, artist := e.Title, e.Artist
	if title == "" {
		title, artist = m.editTrack.Title, m.editTrack.Artist
	}
	b.WriteString(subtitleStyle.Render("Lyrics: " + title))
	if artist != "" {
		b.WriteString(dimStyle.Render(" by " + artist))
	}
	b.WriteString("\n\n")

	if m.tapErr != nil {
		b.WriteString(warningStyle.Render(m.tapErr.Error()))
		b.WriteString("\n\n")
	}

	if m.recorder.Len() > 0 {
		b.WriteString(m.viewTapLines())
		b.WriteString("\n")
	}
	if !m.recorder.Active() {
		b.WriteString(m.editor.View())
	}

	return b.String()
}

// viewTapLines lists the tap lines with their recorded times and the
// cursor.
func (m Model) viewTapLines() string {
	var b strings.Builder

	state := "stopped"
	if m.recorder.Active() {
		state = "recording"
	}
	b.WriteString(infoStyle.Render(fmt.Sprintf("Tap timing (%s) %d/%d timed", state, m.recorder.Timed(), m.recorder.Len())))
	b.WriteString("\n")
	for i := 0; i < m.recorder.Len(); i++ {
		stamp := "[--:--]"
		if t, ok := m.recorder.Time(i); ok {
			stamp = "[" + lyrics.FormatTag(t) + "]"
		}
		line := fmt.Sprintf("%s %s", stamp, m.recorder.Line(i))
		if i == m.recorder.Cursor() {
			b.WriteString(activeLineStyle.Render("› " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) miniPlayer() string {
	t, ok := m.player.Current()
	if !ok {
		return dimStyle.Render("♪ nothing playing")
	}
	return lipgloss.JoinHorizontal(lipgloss.Center,
		infoStyle.Render(transportLine(m.player)),
		"  ",
		albumStyle.Render(t.DisplayName()),
		"  ",
		m.progress.ViewAs(m.now.Percent),
		" ",
		dimStyle.Render(m.now.Elapsed+" "+m.now.Remaining),
	)
}

func (m Model) navBar() string {
	tabs := make([]string, 0, len(router.Sections))
	for i, s := range router.Sections {
		label := fmt.Sprintf("%d %s", i+1, s)
		if s == m.section {
			tabs = append(tabs, navActiveStyle.Render(label))
		} else {
			tabs = append(tabs, navStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}
