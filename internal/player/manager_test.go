package player

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/yeahmusic/internal/lyrics"
	"github.com/handiism/yeahmusic/internal/model"
)

type fakeOutput struct {
	src     string
	loads   []string
	playing bool
	pos     float64
	dur     float64
	loop    bool
	loadErr error
	playErr error
	ended   chan uint64
	closed  bool
	seekLog []float64
}

func newFakeOutput() *fakeOutput {
	return &fakeOutput{ended: make(chan uint64, 1)}
}

func (f *fakeOutput) Load(src string) error {
	if f.loadErr != nil {
		return f.loadErr
	}
	f.src = src
	f.loads = append(f.loads, src)
	f.pos = 0
	f.playing = false
	return nil
}

func (f *fakeOutput) Play() error {
	if f.playErr != nil {
		return f.playErr
	}
	f.playing = true
	return nil
}

func (f *fakeOutput) Pause() error { f.playing = false; return nil }
func (f *fakeOutput) Seek(sec float64) error {
	f.pos = sec
	f.seekLog = append(f.seekLog, sec)
	return nil
}
func (f *fakeOutput) Position() float64 { return f.pos }
func (f *fakeOutput) Duration() (float64, bool) {
	return f.dur, f.dur > 0
}
func (f *fakeOutput) SetLoop(enabled bool) { f.loop = enabled }
func (f *fakeOutput) HasSource() bool      { return f.src != "" }
func (f *fakeOutput) Ended() <-chan uint64 { return f.ended }
func (f *fakeOutput) Close() error         { f.closed = true; return nil }
func (f *fakeOutput) loadNumber() uint64   { return uint64(len(f.loads)) }

func tracks(n int) []model.Track {
	out := make([]model.Track, n)
	for i := range out {
		out[i] = model.Track{
			ID:       string(rune('a' + i)),
			Title:    "Track " + string(rune('A'+i)),
			AudioURL: "/uploads/" + string(rune('a'+i)) + ".mp3",
		}
	}
	return out
}

func TestPlayQueue(t *testing.T) {
	out := newFakeOutput()
	m := NewManager(out)

	qs := tracks(3)
	qs[1].Lyrics = "[00:02] hi"
	require.NoError(t, m.PlayQueue(qs, 1))

	assert.Equal(t, StatusPlaying, m.Status())
	assert.Equal(t, 1, m.Index())
	assert.Equal(t, "/uploads/b.mp3", out.src)
	assert.True(t, out.playing)
	assert.True(t, lyrics.IsKaraoke(m.Lyrics()))

	cur, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, "b", cur.ID)
}

func TestPlayQueue_OutOfRangePanics(t *testing.T) {
	m := NewManager(newFakeOutput())

	for _, start := range []int{-1, 3} {
		func() {
			defer func() {
				r := recover()
				require.NotNil(t, r, "start %d", start)
				err, ok := r.(error)
				require.True(t, ok)
				assert.ErrorIs(t, err, ErrInvalidState)
			}()
			_ = m.PlayQueue(tracks(3), start)
		}()
	}

	assert.Panics(t, func() { _ = m.PlayQueue(nil, 0) })
}

func TestPlayQueue_LoadFailure(t *testing.T) {
	out := newFakeOutput()
	out.loadErr = errors.New("unsupported format")
	m := NewManager(out)

	err := m.PlayQueue(tracks(2), 0)
	assert.ErrorIs(t, err, out.loadErr)
	assert.Equal(t, StatusPaused, m.Status())
	assert.Equal(t, 0, m.Index())
}

func TestPlayQueue_ReplacesWholesale(t *testing.T) {
	m := NewManager(newFakeOutput())
	require.NoError(t, m.PlayQueue(tracks(3), 2))

	fresh := tracks(1)
	require.NoError(t, m.PlayQueue(fresh, 0))
	assert.Len(t, m.Queue(), 1)

	fresh[0].Title = "mutated"
	cur, _ := m.Current()
	assert.NotEqual(t, "mutated", cur.Title, "queue is a copy")
}

func TestSourceResolver(t *testing.T) {
	out := newFakeOutput()
	m := NewManager(out, WithSourceResolver(func(t model.Track) string {
		return "http://host" + t.AudioURL
	}))
	require.NoError(t, m.PlayQueue(tracks(1), 0))
	assert.Equal(t, "http://host/uploads/a.mp3", out.src)
}

func TestToggle(t *testing.T) {
	out := newFakeOutput()
	m := NewManager(out)

	require.NoError(t, m.Toggle())
	assert.Equal(t, StatusEmpty, m.Status(), "toggle without a track is a no-op")

	require.NoError(t, m.PlayQueue(tracks(1), 0))
	require.NoError(t, m.Toggle())
	assert.Equal(t, StatusPaused, m.Status())
	assert.False(t, out.playing)

	require.NoError(t, m.Toggle())
	assert.Equal(t, StatusPlaying, m.Status())
	assert.True(t, out.playing)
}

func TestNext(t *testing.T) {
	out := newFakeOutput()
	m := NewManager(out)
	require.NoError(t, m.PlayQueue(tracks(3), 0))

	require.NoError(t, m.Next())
	assert.Equal(t, 1, m.Index())

	require.NoError(t, m.Next())
	assert.Equal(t, 2, m.Index())

	require.NoError(t, m.Next())
	assert.Equal(t, 0, m.Index(), "explicit next wraps at the end")

	m.SetLoop(true)
	require.NoError(t, m.PlayQueue(tracks(3), 2))
	require.NoError(t, m.Next())
	assert.Equal(t, 0, m.Index(), "loop does not gate explicit next")
}

func TestHandleEnded(t *testing.T) {
	t.Run("advances", func(t *testing.T) {
		out := newFakeOutput()
		m := NewManager(out)
		require.NoError(t, m.PlayQueue(tracks(2), 0))
		require.NoError(t, m.HandleEnded(out.loadNumber()))
		assert.Equal(t, 1, m.Index())
		assert.Equal(t, StatusPlaying, m.Status())
	})

	t.Run("ignores the end of an earlier load", func(t *testing.T) {
		out := newFakeOutput()
		m := NewManager(out)
		require.NoError(t, m.PlayQueue(tracks(3), 0))
		ended := out.loadNumber()

		require.NoError(t, m.Next())
		require.NoError(t, m.HandleEnded(ended))
		assert.Equal(t, 1, m.Index(), "no second advance")
		assert.Len(t, out.loads, 2)

		require.NoError(t, m.HandleEnded(out.loadNumber()))
		assert.Equal(t, 2, m.Index())
	})

	t.Run("parks at the end without loop", func(t *testing.T) {
		out := newFakeOutput()
		m := NewManager(out)
		require.NoError(t, m.PlayQueue(tracks(3), 2))
		loads := len(out.loads)

		require.NoError(t, m.HandleEnded(out.loadNumber()))
		assert.Equal(t, 2, m.Index())
		assert.Equal(t, StatusPaused, m.Status())
		assert.Len(t, out.loads, loads, "no reload")
	})

	t.Run("loop restarts the same track", func(t *testing.T) {
		out := newFakeOutput()
		m := NewManager(out)
		require.NoError(t, m.PlayQueue(tracks(3), 1))
		m.SetLoop(true)
		assert.True(t, out.loop)
		out.pos = 200

		require.NoError(t, m.HandleEnded(out.loadNumber()))
		assert.Equal(t, 1, m.Index())
		assert.Equal(t, 0.0, out.pos)
		assert.True(t, out.playing)
	})

	t.Run("loop restart failure pauses", func(t *testing.T) {
		out := newFakeOutput()
		m := NewManager(out)
		require.NoError(t, m.PlayQueue(tracks(2), 0))
		m.SetLoop(true)
		out.playErr = errors.New("playback failed")

		assert.Error(t, m.HandleEnded(out.loadNumber()))
		assert.Equal(t, 0, m.Index())
		assert.Equal(t, StatusPaused, m.Status())
	})

	t.Run("empty", func(t *testing.T) {
		m := NewManager(newFakeOutput())
		assert.NoError(t, m.HandleEnded(0))
		assert.Equal(t, StatusEmpty, m.Status())
	})
}

func TestPrevious(t *testing.T) {
	t.Run("restarts after three seconds", func(t *testing.T) {
		out := newFakeOutput()
		m := NewManager(out)
		require.NoError(t, m.PlayQueue(tracks(3), 1))
		out.pos = 5.0

		require.NoError(t, m.Previous())
		assert.Equal(t, 1, m.Index())
		assert.Equal(t, 0.0, out.pos)
		assert.Len(t, out.loads, 1)
	})

	t.Run("exactly three seconds goes back", func(t *testing.T) {
		out := newFakeOutput()
		m := NewManager(out)
		require.NoError(t, m.PlayQueue(tracks(3), 1))
		out.pos = 3.0

		require.NoError(t, m.Previous())
		assert.Equal(t, 0, m.Index())
	})

	t.Run("wraps from the first track", func(t *testing.T) {
		out := newFakeOutput()
		m := NewManager(out)
		require.NoError(t, m.PlayQueue(tracks(3), 0))
		out.pos = 1.0

		require.NoError(t, m.Previous())
		assert.Equal(t, 2, m.Index())
		assert.Equal(t, "/uploads/c.mp3", out.src)
	})

	t.Run("empty", func(t *testing.T) {
		m := NewManager(newFakeOutput())
		assert.NoError(t, m.Previous())
		assert.Equal(t, -1, m.Index())
	})
}

func TestSeekFraction(t *testing.T) {
	out := newFakeOutput()
	m := NewManager(out)

	require.NoError(t, m.SeekFraction(0.5))
	assert.Empty(t, out.seekLog, "empty queue")

	require.NoError(t, m.PlayQueue(tracks(1), 0))
	require.NoError(t, m.SeekFraction(0.5))
	assert.Empty(t, out.seekLog, "duration unknown")

	out.dur = 200
	require.NoError(t, m.SeekFraction(0.25))
	assert.Equal(t, 50.0, out.pos)

	require.NoError(t, m.SeekFraction(1.7))
	assert.Equal(t, 200.0, out.pos)
}

func TestSeekFraction_FallsBackToCatalogDuration(t *testing.T) {
	out := newFakeOutput()
	m := NewManager(out)
	qs := tracks(1)
	qs[0].Duration = 100
	require.NoError(t, m.PlayQueue(qs, 0))

	require.NoError(t, m.SeekFraction(0.1))
	assert.Equal(t, 10.0, out.pos)
}

func TestSeekBy(t *testing.T) {
	out := newFakeOutput()
	out.dur = 60
	m := NewManager(out)
	require.NoError(t, m.PlayQueue(tracks(1), 0))

	require.NoError(t, m.SeekBy(-5))
	assert.Equal(t, 0.0, out.pos)
	require.NoError(t, m.SeekBy(90))
	assert.Equal(t, 60.0, out.pos)
}

func TestPositionSource(t *testing.T) {
	out := newFakeOutput()
	m := NewManager(out)

	assert.False(t, m.HasSource())
	assert.Error(t, m.SeekTo(3))

	require.NoError(t, m.PlayQueue(tracks(1), 0))
	assert.True(t, m.HasSource())
	require.NoError(t, m.SeekTo(12))
	assert.Equal(t, 12.0, m.Position())
}

func TestTick(t *testing.T) {
	out := newFakeOutput()
	m := NewManager(out)

	p := m.Tick()
	assert.False(t, p.HasLine)
	assert.Equal(t, "0:00", p.Elapsed)

	qs := tracks(1)
	qs[0].Lyrics = "[01:05] hello\n[00:10] world"
	require.NoError(t, m.PlayQueue(qs, 0))

	out.pos = 5
	p = m.Tick()
	assert.False(t, p.HasLine)
	assert.Equal(t, "-:--", p.Remaining)
	assert.Zero(t, p.Percent)

	out.dur = 120
	out.pos = 30
	p = m.Tick()
	assert.True(t, p.HasLine)
	assert.Equal(t, 0, p.Line)
	assert.Equal(t, 0.25, p.Percent)
	assert.Equal(t, "0:30", p.Elapsed)
	assert.Equal(t, "-1:30", p.Remaining)

	out.pos = 70
	p = m.Tick()
	assert.Equal(t, 1, p.Line)

	// seek backwards
	out.pos = 11
	p = m.Tick()
	assert.Equal(t, 0, p.Line)
}

func TestClose(t *testing.T) {
	out := newFakeOutput()
	m := NewManager(out)
	require.NoError(t, m.Close())
	assert.True(t, out.closed)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "playing", StatusPlaying.String())
	assert.Equal(t, "Status(9)", Status(9).String())
}
