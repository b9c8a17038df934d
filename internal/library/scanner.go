package library

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/handiism/yeahmusic/internal/audio"
	"github.com/handiism/yeahmusic/internal/lyrics"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a scan progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// LyricsKind classifies the lyrics embedded in a file.
type LyricsKind int

const (
	LyricsMissing LyricsKind = iota
	LyricsStatic
	LyricsKaraoke
)

func (k LyricsKind) String() string {
	switch k {
	case LyricsKaraoke:
		return "karaoke"
	case LyricsStatic:
		return "static"
	default:
		return "none"
	}
}

// Entry is one scanned file.
type Entry struct {
	audio.Metadata
	Kind  LyricsKind
	Lines int // timed lines for karaoke lyrics
}

// Report summarises a scan. Entries are sorted by path.
type Report struct {
	Entries []Entry
	Karaoke int
	Static  int
	Missing int
	Failed  int
}

func (r *Report) add(e Entry) {
	r.Entries = append(r.Entries, e)
	switch e.Kind {
	case LyricsKaraoke:
		r.Karaoke++
	case LyricsStatic:
		r.Static++
	default:
		r.Missing++
	}
}

// Scanner reads the metadata of every audio file under a directory.
type Scanner struct {
	workers    int
	read       func(path string) (audio.Metadata, error)
	onProgress func(ProgressEvent)

	total   atomic.Int32
	scanned atomic.Int32
}

// NewScanner creates a Scanner reading up to workers files at once.
func NewScanner(workers int, onProgress func(ProgressEvent)) *Scanner {
	return &Scanner{
		workers:    max(1, workers),
		read:       audio.ReadMetadata,
		onProgress: onProgress,
	}
}

// Find lists the audio files under root in lexical order.
func (s *Scanner) Find(ctx context.Context, root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.IsDir() && audio.IsAudioFile(path) {
			paths = append(paths, path)
		}
		return nil
	})
	return paths, err
}

// Scan reads every audio file under root. Files that cannot be read are
// reported through the progress callback and counted as Failed; only
// walking errors and cancellation fail the scan.
func (s *Scanner) Scan(ctx context.Context, root string) (*Report, error) {
	paths, err := s.Find(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	s.total.Store(int32(len(paths)))
	s.scanned.Store(0)
	s.progress(ProgressEvent{Message: fmt.Sprintf("Found %d audio files in %s", len(paths), root), Level: LevelInfo})

	var (
		mu     sync.Mutex
		report Report
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			md, err := s.read(path)
			s.scanned.Add(1)
			if err != nil {
				s.progress(ProgressEvent{Message: fmt.Sprintf("Error reading %s: %v", filepath.Base(path), err), Level: LevelError})
				mu.Lock()
				report.Failed++
				mu.Unlock()
				return nil
			}

			e := classify(md)
			s.progress(ProgressEvent{Message: fmt.Sprintf("Scanned: %s (%s)", md.DisplayName(), e.Kind), Level: LevelVerbose})
			mu.Lock()
			report.add(e)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(report.Entries, func(i, j int) bool {
		return report.Entries[i].Path < report.Entries[j].Path
	})
	s.progress(ProgressEvent{
		Message: fmt.Sprintf("Scanned %d files: %d karaoke, %d static, %d without lyrics", len(report.Entries), report.Karaoke, report.Static, report.Missing),
		Level:   LevelSuccess,
	})
	return &report, nil
}

// Progress returns how many files have been read out of the total found.
func (s *Scanner) Progress() (scanned, total int32) {
	return s.scanned.Load(), s.total.Load()
}

func classify(md audio.Metadata) Entry {
	e := Entry{Metadata: md}
	m := lyrics.Parse(md.Lyrics)
	switch {
	case lyrics.IsKaraoke(m):
		e.Kind = LyricsKaraoke
		e.Lines = len(lyrics.Timeline(m))
	case len(lyrics.Classify(md.Lyrics)) > 0:
		e.Kind = LyricsStatic
	}
	return e
}

func (s *Scanner) progress(event ProgressEvent) {
	if s.onProgress != nil {
		s.onProgress(event)
	}
}
