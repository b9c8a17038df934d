package player

import (
	"errors"
	"fmt"

	"github.com/handiism/yeahmusic/internal/lyrics"
	"github.com/handiism/yeahmusic/internal/model"
)

// ErrInvalidState marks programming errors such as starting a queue at an
// index outside it. Manager panics with an error wrapping it.
var ErrInvalidState = errors.New("invalid player state")

// errNoTrack is returned by SeekTo when nothing is loaded.
var errNoTrack = errors.New("no track loaded")

// restartThreshold is how far into a track Previous restarts it instead
// of going back.
const restartThreshold = 3.0

// Status is the transport state.
type Status int

const (
	StatusEmpty Status = iota
	StatusPaused
	StatusPlaying
)

func (s Status) String() string {
	switch s {
	case StatusEmpty:
		return "empty"
	case StatusPaused:
		return "paused"
	case StatusPlaying:
		return "playing"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Option configures a Manager.
type Option func(*Manager)

// WithSourceResolver maps a track to the source handed to Output.Load.
// The default uses Track.AudioURL as is.
func WithSourceResolver(fn func(model.Track) string) Option {
	return func(m *Manager) {
		m.resolve = fn
	}
}

// Manager coordinates the playback queue with the audio output.
// A Manager is not safe for concurrent use; drive it from one event loop.
type Manager struct {
	out     Output
	resolve func(model.Track) string

	queue  []model.Track
	index  int
	status Status
	loop   bool
	loads  uint64

	lyrics  lyrics.Model
	tracker *lyrics.Tracker
}

// NewManager returns an empty Manager driving out.
func NewManager(out Output, opts ...Option) *Manager {
	m := &Manager{
		out:     out,
		resolve: func(t model.Track) string { return t.AudioURL },
		lyrics:  lyrics.Static{},
		tracker: lyrics.NewTracker(nil),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// PlayQueue replaces the queue with tracks and starts playing tracks[start].
// An out of range start panics with ErrInvalidState. A load failure leaves
// the queue in place, paused, and is returned.
func (m *Manager) PlayQueue(tracks []model.Track, start int) error {
	if start < 0 || start >= len(tracks) {
		panic(fmt.Errorf("%w: start index %d outside queue of %d", ErrInvalidState, start, len(tracks)))
	}
	m.queue = append([]model.Track(nil), tracks...)
	m.index = start
	return m.load()
}

// load points the output at the current track, derives its lyrics and
// starts playback.
func (m *Manager) load() error {
	track := m.queue[m.index]
	m.lyrics = lyrics.Parse(track.Lyrics)
	m.tracker.Reset(m.lyrics)
	m.status = StatusPaused

	if err := m.out.Load(m.resolve(track)); err != nil {
		return fmt.Errorf("load %q: %w", track.Title, err)
	}
	m.loads++
	if err := m.out.Play(); err != nil {
		return fmt.Errorf("play %q: %w", track.Title, err)
	}
	m.status = StatusPlaying
	return nil
}

// Toggle flips between playing and paused.
func (m *Manager) Toggle() error {
	switch m.status {
	case StatusPlaying:
		if err := m.out.Pause(); err != nil {
			return err
		}
		m.status = StatusPaused
	case StatusPaused:
		if err := m.out.Play(); err != nil {
			return err
		}
		m.status = StatusPlaying
	}
	return nil
}

// Next advances to the following track, wrapping to the first one from the
// last position. The loop flag does not affect it.
func (m *Manager) Next() error {
	if m.status == StatusEmpty {
		return nil
	}
	if m.index < len(m.queue)-1 {
		m.index++
	} else {
		m.index = 0
	}
	return m.load()
}

// HandleEnded reacts to the output reaching the end of the current track.
// load is the value received from Ended; signals for an earlier load are
// ignored. With loop enabled the same track restarts. Otherwise playback
// advances, or parks on the last track (paused, index unchanged) when
// there is no next one.
func (m *Manager) HandleEnded(load uint64) error {
	if m.status == StatusEmpty || load != m.loads {
		return nil
	}
	if m.loop {
		if err := m.out.Seek(0); err != nil {
			return err
		}
		m.tracker.Reset(m.lyrics)
		if err := m.out.Play(); err != nil {
			m.status = StatusPaused
			return err
		}
		return nil
	}
	if m.index < len(m.queue)-1 {
		m.index++
		return m.load()
	}
	m.status = StatusPaused
	return nil
}

// Previous restarts the current track when more than three seconds have
// played. Otherwise it moves back one track, wrapping from the first to
// the last.
func (m *Manager) Previous() error {
	if m.status == StatusEmpty {
		return nil
	}
	if m.out.Position() > restartThreshold {
		if err := m.out.Seek(0); err != nil {
			return err
		}
		m.tracker.Reset(m.lyrics)
		return nil
	}
	if m.index > 0 {
		m.index--
	} else {
		m.index = len(m.queue) - 1
	}
	return m.load()
}

// SetLoop sets single-track looping on the output.
func (m *Manager) SetLoop(enabled bool) {
	m.loop = enabled
	m.out.SetLoop(enabled)
}

// Loop reports whether single-track looping is enabled.
func (m *Manager) Loop() bool { return m.loop }

// SeekFraction seeks to f of the track's duration, f clamped to [0, 1].
// It does nothing while the duration is unknown.
func (m *Manager) SeekFraction(f float64) error {
	if m.status == StatusEmpty {
		return nil
	}
	d, ok := m.duration()
	if !ok {
		return nil
	}
	f = max(0, min(1, f))
	return m.out.Seek(f * d)
}

// SeekBy moves the position by delta seconds, clamped to the track.
func (m *Manager) SeekBy(delta float64) error {
	if m.status == StatusEmpty {
		return nil
	}
	pos := max(0, m.out.Position()+delta)
	if d, ok := m.duration(); ok {
		pos = min(pos, d)
	}
	return m.out.Seek(pos)
}

func (m *Manager) duration() (float64, bool) {
	if d, ok := m.out.Duration(); ok && d > 0 {
		return d, true
	}
	if t, ok := m.Current(); ok && t.Duration > 0 {
		return t.Duration, true
	}
	return 0, false
}

// Current returns the loaded track.
func (m *Manager) Current() (model.Track, bool) {
	if m.status == StatusEmpty {
		return model.Track{}, false
	}
	return m.queue[m.index], true
}

// Index returns the current queue position, or -1 when empty.
func (m *Manager) Index() int {
	if m.status == StatusEmpty {
		return -1
	}
	return m.index
}

// Queue returns a copy of the queue.
func (m *Manager) Queue() []model.Track {
	return append([]model.Track(nil), m.queue...)
}

// Status returns the transport state.
func (m *Manager) Status() Status { return m.status }

// Lyrics returns the lyrics model of the loaded track.
func (m *Manager) Lyrics() lyrics.Model { return m.lyrics }

// Ended exposes the output's end-of-track notifications.
func (m *Manager) Ended() <-chan uint64 { return m.out.Ended() }

// HasSource reports whether a track is loaded into the output.
func (m *Manager) HasSource() bool {
	return m.status != StatusEmpty && m.out.HasSource()
}

// Position returns the playback position in seconds.
func (m *Manager) Position() float64 {
	if m.status == StatusEmpty {
		return 0
	}
	return m.out.Position()
}

// SeekTo seeks to an absolute position in seconds.
func (m *Manager) SeekTo(sec float64) error {
	if m.status == StatusEmpty {
		return errNoTrack
	}
	return m.out.Seek(max(0, sec))
}

// Close releases the output.
func (m *Manager) Close() error {
	return m.out.Close()
}
