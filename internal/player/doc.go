// Package player owns the playback queue and the single audio output.
//
// Manager is the only component that changes the output's source or
// transport state. Views read from it and call its operations; they never
// touch the Output directly.
//
//	m := player.NewManager(out)
//	if err := m.PlayQueue(page.Tracks, 2); err != nil {
//	    // audio source could not be loaded
//	}
//	m.Toggle()         // pause
//	m.Next()           // explicit next wraps to the first track at the end
//	p := m.Tick()      // percent, clocks and active lyric line
//
// Operations on an empty queue are silent no-ops.
package player
