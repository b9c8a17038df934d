// Package tap records manual timestamps for lyric lines while audio plays.
//
// A Recorder holds one slot per line. Tap stores the current playback
// position in the slot under the cursor and moves the cursor on; Build
// renders the lines back to "[mm:ss] text" form.
package tap

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/handiism/yeahmusic/internal/lyrics"
)

// ErrNotReady is returned by Start when no audio source is loaded.
var ErrNotReady = errors.New("load a track before tapping")

// PositionSource is the playback clock the recorder reads and seeks.
type PositionSource interface {
	HasSource() bool
	Position() float64
	SeekTo(sec float64) error
}

// Recorder is a tap-timing session. The zero value is not usable; create
// one with NewRecorder. A Recorder is not safe for concurrent use.
type Recorder struct {
	src    PositionSource
	active bool
	lines  []string
	times  []*float64
	cursor int
}

// NewRecorder returns an inactive recorder bound to src.
func NewRecorder(src PositionSource) *Recorder {
	return &Recorder{src: src}
}

// Start begins a session over lines with every slot unset and the cursor
// on the first line.
func (r *Recorder) Start(lines []string) error {
	if r.src == nil || !r.src.HasSource() {
		return ErrNotReady
	}
	r.reset(lines)
	r.active = true
	return nil
}

// Stop ends recording. Lines and recorded times are kept so the result
// can still be built or reviewed.
func (r *Recorder) Stop() {
	r.active = false
}

// Close ends the session and discards all state.
func (r *Recorder) Close() {
	r.active = false
	r.lines = nil
	r.times = nil
	r.cursor = 0
}

// SetLines replaces the line list. Any change in content invalidates every
// recorded time; slots are matched by position, never by text.
func (r *Recorder) SetLines(lines []string) {
	if slices.Equal(r.lines, lines) {
		return
	}
	r.reset(lines)
}

func (r *Recorder) reset(lines []string) {
	r.lines = append([]string(nil), lines...)
	r.times = make([]*float64, len(lines))
	r.cursor = 0
}

// Tap records the current position into the slot under the cursor and
// advances the cursor, stopping on the last line. It does nothing when the
// session is inactive or empty.
func (r *Recorder) Tap() {
	if !r.active || len(r.lines) == 0 {
		return
	}
	pos := r.src.Position()
	r.times[r.cursor] = &pos
	if r.cursor < len(r.lines)-1 {
		r.cursor++
	}
}

// JumpTo moves the cursor to line i and seeks playback to its time when it
// has one. While recording, jumping to an untimed line is refused so lines
// are never skipped silently. It reports whether the cursor moved.
func (r *Recorder) JumpTo(i int) (bool, error) {
	if i < 0 || i >= len(r.lines) {
		return false, nil
	}
	t := r.times[i]
	if t == nil && r.active {
		return false, nil
	}
	if t != nil {
		if err := r.src.SeekTo(*t); err != nil {
			return false, fmt.Errorf("seek to line %d: %w", i+1, err)
		}
	}
	r.cursor = i
	return true, nil
}

// Build renders every line, prefixing timed ones with "[mm:ss] ".
func (r *Recorder) Build() string {
	var sb strings.Builder
	for i, l := range r.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		if t := r.times[i]; t != nil {
			sb.WriteString("[" + lyrics.FormatTag(*t) + "] ")
		}
		sb.WriteString(l)
	}
	return strings.TrimRight(sb.String(), " \t\r\n")
}

// Active reports whether taps are being recorded.
func (r *Recorder) Active() bool { return r.active }

// Cursor returns the current line index, or -1 when there are no lines.
func (r *Recorder) Cursor() int {
	if len(r.lines) == 0 {
		return -1
	}
	return r.cursor
}

// Len returns the number of lines in the session.
func (r *Recorder) Len() int { return len(r.lines) }

// Line returns the text of line i.
func (r *Recorder) Line(i int) string { return r.lines[i] }

// Time returns the recorded time of line i.
func (r *Recorder) Time(i int) (float64, bool) {
	if i < 0 || i >= len(r.times) || r.times[i] == nil {
		return 0, false
	}
	return *r.times[i], true
}

// Timed returns how many lines have a recorded time.
func (r *Recorder) Timed() int {
	n := 0
	for _, t := range r.times {
		if t != nil {
			n++
		}
	}
	return n
}
