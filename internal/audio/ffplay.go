package audio

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/handiism/yeahmusic/internal/logger"
	"github.com/handiism/yeahmusic/internal/player"
)

const probeTimeout = 10 * time.Second

// maxFailures is how many error exits in a row a source may have before
// Play refuses it.
const maxFailures = 3

var (
	// ErrNoSource is returned when playing or loading without a source.
	ErrNoSource = errors.New("no audio source")
	// ErrPlaybackFailed is returned by Play once the source keeps failing.
	ErrPlaybackFailed = errors.New("playback failed")
)

// process is a started ffplay instance.
type process interface {
	Wait() error
}

type starter func(ctx context.Context, name string, args ...string) (process, error)

type prober func(ctx context.Context, src string) (float64, error)

func startCommand(ctx context.Context, name string, args ...string) (process, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return cmd, nil
}

var _ player.Output = (*FFPlay)(nil)

// FFPlay plays audio through an ffplay child process.
type FFPlay struct {
	command string
	start   starter
	probe   prober
	now     func() time.Time

	mu       sync.Mutex
	src      string
	duration float64
	known    bool
	offset   float64
	since    time.Time
	cancel   context.CancelFunc
	run      uint64
	loads    uint64
	failures int
	lastErr  error
	loop     bool
	ended    chan uint64
}

// FFPlayOption configures an FFPlay.
type FFPlayOption func(*FFPlay)

// WithPlayerCommand sets the ffplay executable.
func WithPlayerCommand(name string) FFPlayOption {
	return func(f *FFPlay) {
		if name != "" {
			f.command = name
		}
	}
}

// WithProbeCommand sets the ffprobe executable used for durations.
func WithProbeCommand(name string) FFPlayOption {
	return func(f *FFPlay) {
		if name != "" {
			f.probe = func(ctx context.Context, src string) (float64, error) {
				return ProbeDuration(ctx, name, src)
			}
		}
	}
}

// NewFFPlay returns an empty FFPlay output.
func NewFFPlay(opts ...FFPlayOption) *FFPlay {
	f := &FFPlay{
		command: "ffplay",
		start:   startCommand,
		now:     time.Now,
		ended:   make(chan uint64, 1),
	}
	f.probe = func(ctx context.Context, src string) (float64, error) {
		return ProbeDuration(ctx, "ffprobe", src)
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Load stops any current playback and makes src the paused source. The
// duration is probed in the background; Duration reports false until then.
func (f *FFPlay) Load(src string) error {
	if src == "" {
		return ErrNoSource
	}

	f.mu.Lock()
	f.stopLocked()
	f.src = src
	f.offset = 0
	f.duration, f.known = 0, false
	f.failures, f.lastErr = 0, nil
	f.loads++
	select {
	case <-f.ended:
	default:
	}
	load := f.loads
	f.mu.Unlock()

	go f.probeDuration(src, load)
	return nil
}

func (f *FFPlay) probeDuration(src string, load uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()
	d, err := f.probe(ctx, src)
	if err != nil {
		logger.Warn("probe duration", zap.String("src", src), zap.Error(err))
		return
	}

	f.mu.Lock()
	if f.loads == load && f.src == src {
		f.duration, f.known = d, d > 0
	}
	f.mu.Unlock()
}

// Play starts the process at the saved offset.
func (f *FFPlay) Play() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.src == "" {
		return ErrNoSource
	}
	if f.cancel != nil {
		return nil
	}
	if f.failures >= maxFailures {
		return fmt.Errorf("%w: %w", ErrPlaybackFailed, f.lastErr)
	}
	if f.known && f.offset >= f.duration {
		f.offset = 0
	}
	return f.launchLocked()
}

func (f *FFPlay) launchLocked() error {
	ctx, cancel := context.WithCancel(context.Background())
	args := []string{
		"-nodisp",
		"-autoexit",
		"-loglevel", "quiet",
		"-ss", strconv.FormatFloat(f.offset, 'f', 2, 64),
		f.src,
	}
	p, err := f.start(ctx, f.command, args...)
	if err != nil {
		cancel()
		return fmt.Errorf("start %s: %w", f.command, err)
	}

	f.run++
	f.cancel = cancel
	f.since = f.now()
	logger.Debug("ffplay started", zap.String("src", f.src), zap.Float64("offset", f.offset))
	go f.wait(p, f.run)
	return nil
}

// wait reaps the process. Processes stopped by Pause, Seek or Load have a
// stale run id and are ignored. Only a clean exit restarts a looping
// source; an error exit stops playback and signals Ended so the queue can
// move on.
func (f *FFPlay) wait(p process, run uint64) {
	err := p.Wait()

	f.mu.Lock()
	defer f.mu.Unlock()
	if run != f.run || f.cancel == nil {
		return
	}
	f.cancel()
	f.cancel = nil

	if err != nil {
		f.failures++
		f.lastErr = err
		f.offset = f.positionAt(f.now())
		logger.Warn("ffplay exited",
			zap.String("src", f.src),
			zap.Int("failures", f.failures),
			zap.Error(err))
	} else {
		f.failures, f.lastErr = 0, nil
		if f.loop {
			f.offset = 0
			if err := f.launchLocked(); err == nil {
				return
			}
		}
		if f.known {
			f.offset = f.duration
		}
	}
	select {
	case f.ended <- f.loads:
	default:
	}
}

// Pause stops the process and remembers the position.
func (f *FFPlay) Pause() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.offset = f.positionLocked()
	f.stopLocked()
	return nil
}

func (f *FFPlay) stopLocked() {
	if f.cancel == nil {
		return
	}
	f.run++
	f.cancel()
	f.cancel = nil
}

// Seek moves to sec, restarting the process when playing.
func (f *FFPlay) Seek(sec float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.src == "" {
		return ErrNoSource
	}
	sec = max(0, sec)
	if f.known {
		sec = min(sec, f.duration)
	}
	f.offset = sec
	if f.cancel == nil {
		return nil
	}
	f.stopLocked()
	return f.launchLocked()
}

// Position returns the playback position in seconds.
func (f *FFPlay) Position() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.positionLocked()
}

func (f *FFPlay) positionLocked() float64 {
	if f.cancel == nil {
		return f.offset
	}
	return f.positionAt(f.now())
}

// positionAt is the position at t of the process started at f.since.
func (f *FFPlay) positionAt(t time.Time) float64 {
	pos := f.offset + t.Sub(f.since).Seconds()
	if f.known {
		pos = min(pos, f.duration)
	}
	return pos
}

// Duration returns the probed duration, if any.
func (f *FFPlay) Duration() (float64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.duration, f.known
}

// SetLoop makes the output restart after a clean exit instead of
// signalling Ended.
func (f *FFPlay) SetLoop(enabled bool) {
	f.mu.Lock()
	f.loop = enabled
	f.mu.Unlock()
}

func (f *FFPlay) HasSource() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.src != ""
}

// Playing reports whether a process is running.
func (f *FFPlay) Playing() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cancel != nil
}

// Ended delivers the load number of each source that stops on its own.
func (f *FFPlay) Ended() <-chan uint64 { return f.ended }

// Close stops playback and drops the source.
func (f *FFPlay) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopLocked()
	f.src = ""
	f.offset = 0
	return nil
}

// ProbeDuration asks ffprobe for the duration of src in seconds.
func ProbeDuration(ctx context.Context, command, src string) (float64, error) {
	cmd := exec.CommandContext(ctx, command,
		"-v", "quiet",
		"-show_entries", "format=duration",
		"-of", "csv=p=0",
		src)

	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", command, src, err)
	}
	return parseDuration(string(out))
}

func parseDuration(s string) (float64, error) {
	s = strings.TrimSpace(s)
	d, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	return d, nil
}
