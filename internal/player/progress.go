package player

import "github.com/handiism/yeahmusic/internal/lyrics"

// Progress is a snapshot of playback for the transport bar and the lyrics
// overlay.
type Progress struct {
	Position float64
	Duration float64
	// Percent is in [0, 1]; 0 while the duration is unknown.
	Percent   float64
	Elapsed   string
	Remaining string
	// Line is the active lyric line, valid when HasLine is set.
	Line    int
	HasLine bool
}

// Tick samples the output and recomputes progress and the active lyric
// line. Call it on every position tick.
func (m *Manager) Tick() Progress {
	if m.status == StatusEmpty {
		return Progress{Elapsed: lyrics.FormatClock(0), Remaining: "-:--", Line: -1}
	}

	pos := m.out.Position()
	p := Progress{
		Position:  pos,
		Elapsed:   lyrics.FormatClock(pos),
		Remaining: "-:--",
	}
	if d, ok := m.duration(); ok {
		p.Duration = d
		p.Percent = max(0, min(1, pos/d))
		p.Remaining = "-" + lyrics.FormatClock(d-pos)
	}
	p.Line, p.HasLine = m.tracker.Update(pos)
	return p
}
