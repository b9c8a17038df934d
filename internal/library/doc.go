// Package library scans a local music folder.
//
// The Scanner walks a directory for audio files, reads their tags
// concurrently and classifies the embedded lyrics as karaoke (time-tagged),
// static or missing:
//
//	s := library.NewScanner(4, func(e library.ProgressEvent) {
//		fmt.Println(e.Message)
//	})
//	report, err := s.Scan(ctx, "/music")
//
// Progress can be polled with Progress while Scan runs.
package library
