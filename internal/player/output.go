package player

// Output is an audio sink holding at most one source at a time.
//
// Load replaces the source and leaves it paused at position zero. Position
// and Duration are in seconds; Duration reports false while unknown.
//
// Ended delivers a value each time the source plays to its end without
// looping, or stops on a playback error. The value is the load number of
// that source: the count of successful Load calls made so far.
type Output interface {
	Load(src string) error
	Play() error
	Pause() error
	Seek(sec float64) error
	Position() float64
	Duration() (float64, bool)
	SetLoop(enabled bool)
	HasSource() bool
	Ended() <-chan uint64
	Close() error
}
