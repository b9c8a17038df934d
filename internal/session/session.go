// Package session persists the signed-in user between runs and gates the
// authoring views.
//
// The session is a JSON file holding the user record returned by the
// catalog. A missing or empty file means nobody is signed in. Watch
// reports changes made by other processes (a browser sign-in, another
// client instance).
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	ioutils "github.com/handiism/yeahmusic/internal/io"
	"github.com/handiism/yeahmusic/internal/logger"
	"github.com/handiism/yeahmusic/internal/model"
)

var (
	ErrNotSignedIn = errors.New("Sign in first.")
	ErrNotArtist   = errors.New("Artists only.")
)

// settle is how long Watch waits for writes to stop before reloading.
const settle = 100 * time.Millisecond

// CanAuthor returns nil when u may create albums, upload tracks and edit
// lyrics.
func CanAuthor(u *model.User) error {
	if u == nil {
		return ErrNotSignedIn
	}
	if !u.IsArtist() {
		return ErrNotArtist
	}
	return nil
}

// CanEditProfile returns nil when u is signed in.
func CanEditProfile(u *model.User) error {
	if u == nil {
		return ErrNotSignedIn
	}
	return nil
}

// Store reads and writes the session file.
type Store struct {
	path string
}

// NewStore returns a Store for the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the session file path.
func (s *Store) Path() string { return s.path }

// Load returns the stored user, or nil when nobody is signed in.
func (s *Store) Load() (*model.User, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var u model.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("parse session %s: %w", s.path, err)
	}
	if u.ID == "" {
		return nil, nil
	}
	return &u, nil
}

// Save stores u. A nil user signs out.
func (s *Store) Save(ctx context.Context, u *model.User) error {
	if u == nil {
		return s.Clear()
	}
	data, err := json.MarshalIndent(u, "", "  ")
	if err != nil {
		return err
	}
	if err := ioutils.WriteFile(ctx, s.path, data); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	logger.Info("session saved", zap.String("user_id", u.ID), zap.String("role", u.Role))
	return nil
}

// Clear removes the session file.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear session: %w", err)
	}
	logger.Info("session cleared")
	return nil
}

// Watch delivers the stored user every time the session file changes,
// until ctx is done. Bursts of events are coalesced. The channel is
// closed when watching stops.
//
// The parent directory is watched so the file may be created, replaced
// or removed while watching.
func (s *Store) Watch(ctx context.Context) (<-chan *model.User, error) {
	dir := filepath.Dir(s.path)
	if err := ioutils.EnsureDir(dir); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	out := make(chan *model.User)
	go s.watch(ctx, watcher, out)
	return out, nil
}

func (s *Store) watch(ctx context.Context, watcher *fsnotify.Watcher, out chan<- *model.User) {
	defer close(out)
	defer watcher.Close()

	name := filepath.Clean(s.path)
	timer := time.NewTimer(settle)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != name {
				continue
			}
			timer.Reset(settle)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("session watch", zap.Error(err))

		case <-timer.C:
			u, err := s.Load()
			if err != nil {
				logger.Warn("reload session", zap.Error(err))
				continue
			}
			select {
			case out <- u:
			case <-ctx.Done():
				return
			}
		}
	}
}
