// Package audio holds the local audio plumbing of the client.
//
// # Output
//
// FFPlay is the production player.Output. It plays a source by running
// ffplay in the background and tracks the position with a wall clock:
//
//	out := audio.NewFFPlay(audio.WithPlayerCommand("ffplay"))
//	mgr := player.NewManager(out)
//
// Pausing stops the process and resuming starts a new one at the saved
// offset (-ss). Durations come from ffprobe.
//
// # Tags
//
// Tagger reads and writes the unsynchronised lyrics (USLT) frame of MP3
// files, and ReadMetadata reads title/artist/lyrics from any format
// github.com/dhowden/tag understands.
//
// # Playlist export
//
// PlaylistCreator renders an album or playlist page as M3U, PLS, WPL or ZPL
// with resolved audio URLs as entries.
package audio
