package tap

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/yeahmusic/internal/lyrics"
)

type fakeClock struct {
	loaded  bool
	pos     float64
	seeks   []float64
	seekErr error
}

func (c *fakeClock) HasSource() bool   { return c.loaded }
func (c *fakeClock) Position() float64 { return c.pos }
func (c *fakeClock) SeekTo(sec float64) error {
	if c.seekErr != nil {
		return c.seekErr
	}
	c.seeks = append(c.seeks, sec)
	c.pos = sec
	return nil
}

func TestStart_NotReady(t *testing.T) {
	r := NewRecorder(&fakeClock{})
	err := r.Start([]string{"a"})
	assert.ErrorIs(t, err, ErrNotReady)
	assert.False(t, r.Active())
	assert.Equal(t, -1, r.Cursor())

	assert.ErrorIs(t, NewRecorder(nil).Start([]string{"a"}), ErrNotReady)
}

func TestStart_ResetsSession(t *testing.T) {
	clock := &fakeClock{loaded: true, pos: 4}
	r := NewRecorder(clock)
	require.NoError(t, r.Start([]string{"a", "b"}))
	r.Tap()

	require.NoError(t, r.Start([]string{"a", "b"}))
	assert.Equal(t, 0, r.Cursor())
	assert.Equal(t, 0, r.Timed())
}

func TestTap_AdvancesAndClamps(t *testing.T) {
	clock := &fakeClock{loaded: true}
	r := NewRecorder(clock)
	require.NoError(t, r.Start([]string{"one", "two"}))

	clock.pos = 1.5
	r.Tap()
	assert.Equal(t, 1, r.Cursor())

	clock.pos = 3.2
	r.Tap()
	assert.Equal(t, 1, r.Cursor())

	clock.pos = 7.9
	r.Tap()
	assert.Equal(t, 1, r.Cursor(), "cursor stays on the last line")

	got, ok := r.Time(1)
	require.True(t, ok)
	assert.Equal(t, 7.9, got, "repeated taps overwrite the last slot")

	got, ok = r.Time(0)
	require.True(t, ok)
	assert.Equal(t, 1.5, got)
}

func TestTap_NoLinesOrInactive(t *testing.T) {
	clock := &fakeClock{loaded: true, pos: 2}
	r := NewRecorder(clock)

	require.NoError(t, r.Start(nil))
	r.Tap()
	assert.Equal(t, -1, r.Cursor())
	assert.Equal(t, 0, r.Len())

	require.NoError(t, r.Start([]string{"a"}))
	r.Stop()
	r.Tap()
	assert.Equal(t, 0, r.Timed())
}

func TestStop_KeepsTimes(t *testing.T) {
	clock := &fakeClock{loaded: true, pos: 12}
	r := NewRecorder(clock)
	require.NoError(t, r.Start([]string{"a", "b"}))
	r.Tap()
	r.Stop()

	assert.False(t, r.Active())
	assert.Equal(t, 1, r.Timed())
	assert.Equal(t, "[00:12] a\nb", r.Build())

	r.Close()
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, "", r.Build())
}

func TestJumpTo(t *testing.T) {
	clock := &fakeClock{loaded: true}
	r := NewRecorder(clock)
	require.NoError(t, r.Start([]string{"a", "b", "c"}))

	clock.pos = 0
	r.Tap()
	clock.pos = 5
	r.Tap()

	// slot 2 is untimed while recording: refused
	moved, err := r.JumpTo(2)
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Equal(t, 2, r.Cursor())

	// a time of zero still counts as recorded
	moved, err = r.JumpTo(0)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, 0, r.Cursor())
	assert.Equal(t, []float64{0}, clock.seeks)

	r.Stop()
	moved, err = r.JumpTo(2)
	require.NoError(t, err)
	assert.True(t, moved, "stopped sessions may move onto untimed lines")
	assert.Equal(t, 2, r.Cursor())
	assert.Len(t, clock.seeks, 1, "untimed lines do not seek")

	moved, err = r.JumpTo(9)
	require.NoError(t, err)
	assert.False(t, moved)
}

func TestJumpTo_SeekFailure(t *testing.T) {
	clock := &fakeClock{loaded: true, pos: 3}
	r := NewRecorder(clock)
	require.NoError(t, r.Start([]string{"a", "b"}))
	r.Tap()

	clock.seekErr = errors.New("no duration")
	moved, err := r.JumpTo(0)
	assert.Error(t, err)
	assert.False(t, moved)
	assert.Equal(t, 1, r.Cursor())
}

func TestSetLines_InvalidatesTimes(t *testing.T) {
	clock := &fakeClock{loaded: true, pos: 9}
	r := NewRecorder(clock)
	require.NoError(t, r.Start([]string{"a", "b", "c"}))
	r.Tap()
	r.Tap()

	r.SetLines([]string{"a", "b", "c"})
	assert.Equal(t, 2, r.Timed(), "unchanged content keeps times")

	r.SetLines([]string{"a", "inserted", "b", "c"})
	assert.Equal(t, 4, r.Len())
	assert.Equal(t, 0, r.Timed())
	assert.Equal(t, 0, r.Cursor())
	assert.True(t, r.Active())
}

func TestBuild_RoundTrip(t *testing.T) {
	lines := []string{"first", "second", "third", "fourth"}
	positions := []float64{0.4, 9.99, 61.5, 3599.2}

	clock := &fakeClock{loaded: true}
	r := NewRecorder(clock)
	require.NoError(t, r.Start(lines))
	for _, p := range positions {
		clock.pos = p
		r.Tap()
	}

	built := r.Build()
	m := lyrics.Parse(built)
	timeline := lyrics.Timeline(m)
	require.Len(t, timeline, len(lines))

	for i, l := range timeline {
		assert.Equal(t, float64(int(positions[i])), l.Time, "line %d", i)
		assert.Equal(t, lines[i], l.Text)
	}
	assert.True(t, strings.HasPrefix(built, "[00:00] first\n[00:09] second\n[01:01] third"))
	assert.Equal(t, fmt.Sprintf("[%s] fourth", lyrics.FormatTag(3599.2)), strings.Split(built, "\n")[3])
}
