// Package lyrics turns raw lyrics text into a playable model and answers
// "which line is active at this playback position".
//
// # Parsing
//
// Parse inspects every line for a leading "[minutes:seconds]" tag. When at
// least one line is tagged the result is a Karaoke timeline sorted by time;
// otherwise the text is kept verbatim as Static:
//
//	m := lyrics.Parse("[01:05] hello\n[00:10] world")
//	k := m.(lyrics.Karaoke)
//	// k.Lines = [{10 world} {65 hello}]
//
// # Synchronizing
//
// ActiveIndex performs a one-off lookup. Tracker keeps a cursor between
// calls so that the per-tick cost stays constant during normal playback:
//
//	tr := lyrics.NewTracker(m)
//	idx, ok := tr.Update(30) // 0, true
//
// # Editing helpers
//
// StripTimes, NormalizeTimed, PlainLines and FormatTag support the lyrics
// editor and the tap recorder. Classify splits static text into ordinary
// lines and "[Chorus]" style section tags for display.
package lyrics
