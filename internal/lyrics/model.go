package lyrics

// Model is the parsed form of a track's lyrics: either Karaoke or Static.
type Model interface {
	isModel()
}

// Line is one timeline entry of a Karaoke model.
type Line struct {
	// Time is the offset from the start of the track, in seconds.
	Time float64
	Text string
}

// Karaoke is a timeline sorted ascending by Time. Entries with equal times
// keep their input order.
type Karaoke struct {
	Lines []Line
}

// Static is lyrics text without time association, kept verbatim.
type Static struct {
	Text string
}

func (Karaoke) isModel() {}
func (Static) isModel()  {}

// IsKaraoke reports whether m is a Karaoke model.
func IsKaraoke(m Model) bool {
	_, ok := m.(Karaoke)
	return ok
}

// Timeline returns the Karaoke lines of m, or nil for any other model.
func Timeline(m Model) []Line {
	if k, ok := m.(Karaoke); ok {
		return k.Lines
	}
	return nil
}
