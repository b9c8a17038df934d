package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/handiism/yeahmusic/internal/logger"
	"github.com/handiism/yeahmusic/internal/lyrics"
	"github.com/handiism/yeahmusic/internal/model"
	"github.com/handiism/yeahmusic/internal/session"
)

// tapScope names the key listener attached while tap timing runs.
const tapScope = "tap"

var errNothingToTime = errors.New("Write some lyrics before tapping.")

// openEditor fills the lyrics editor once the edited track is known. Raw
// lyrics carried by the navigation win over the fetched ones.
func (m *Model) openEditor(t model.Track) {
	m.editTrack = t
	raw := m.editing.RawLyrics
	if raw == "" {
		raw = t.Lyrics
	}
	m.editor.SetValue(raw)
	m.editor.Focus()
	m.editReady = true
}

func (m *Model) editorCommand(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Tap):
		m.startTap()
		return nil, true
	case key.Matches(msg, m.keys.Build):
		return m.buildTimes(), true
	case key.Matches(msg, m.keys.Save):
		return m.saveLyrics(), true
	case key.Matches(msg, m.keys.Generate):
		return m.insertGenerated(), true
	}
	return nil, false
}

// startTap begins tap timing over the untimed editor lines.
func (m *Model) startTap() {
	lines := lyrics.PlainLines(lyrics.StripTimes(m.editor.Value()))
	if len(lines) == 0 {
		m.tapErr = errNothingToTime
		return
	}
	if err := m.recorder.Start(lines); err != nil {
		m.tapErr = err
		return
	}
	m.tapErr = nil
	m.editor.Blur()
	m.listeners.attach(tapScope, tapListener)
	logger.Debug("tap timing started", zap.String("track_id", m.editing.TrackID), zap.Int("lines", len(lines)))
}

func tapListener(m *Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.tapKeys.Tap):
		m.recorder.Tap()
		return true, nil
	case key.Matches(msg, m.tapKeys.Up):
		return true, m.jumpTap(m.recorder.Cursor() - 1)
	case key.Matches(msg, m.tapKeys.Down):
		return true, m.jumpTap(m.recorder.Cursor() + 1)
	case key.Matches(msg, m.tapKeys.Stop):
		m.stopTap()
		return true, nil
	}
	return false, nil
}

func (m *Model) jumpTap(i int) tea.Cmd {
	if _, err := m.recorder.JumpTo(i); err != nil {
		return m.setStatus(err.Error(), true)
	}
	m.now = m.player.Tick()
	return nil
}

// stopTap ends recording but keeps the recorded times for ctrl+b.
func (m *Model) stopTap() {
	m.recorder.Stop()
	m.listeners.detach(tapScope)
	m.editor.Focus()
}

func (m *Model) buildTimes() tea.Cmd {
	if m.recorder.Len() == 0 {
		return m.setStatus("Nothing recorded yet. Press ctrl+t to start tapping.", true)
	}
	m.editor.SetValue(m.recorder.Build())
	return m.setStatus("Timings written", false)
}

// syncTapLines keeps the recorder's lines in step with the buffer. Any
// change to the lines discards recorded times.
func (m *Model) syncTapLines() {
	if m.recorder.Len() == 0 && !m.recorder.Active() {
		return
	}
	m.recorder.SetLines(lyrics.PlainLines(lyrics.StripTimes(m.editor.Value())))
}

// saveLyrics stores the buffer. Timed text is normalized; anything else is
// saved as typed. The buffer is left alone when the save fails.
func (m *Model) saveLyrics() tea.Cmd {
	if err := session.CanAuthor(m.user); err != nil {
		return m.setStatus(err.Error(), true)
	}
	buf := m.editor.Value()
	text := lyrics.NormalizeTimed(buf)
	if text == "" {
		text = buf
	}
	svc, trackID, userID := m.catalog, m.editing.TrackID, m.user.ID
	return m.mutate("update-lyrics", func(ctx context.Context) (mutationMsg, error) {
		err := svc.UpdateLyrics(ctx, trackID, userID, text)
		return mutationMsg{status: "Saved", back: true}, err
	})
}

func (m *Model) insertGenerated() tea.Cmd {
	if m.generated == "" {
		return m.setStatus("Generate lyrics on the Tools page first.", true)
	}
	m.editor.InsertString(m.generated)
	m.syncTapLines()
	return nil
}
