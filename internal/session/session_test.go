package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/yeahmusic/internal/model"
)

func TestCanAuthor(t *testing.T) {
	assert.ErrorIs(t, CanAuthor(nil), ErrNotSignedIn)
	assert.ErrorIs(t, CanAuthor(&model.User{ID: "u1", Role: "listener"}), ErrNotArtist)
	assert.NoError(t, CanAuthor(&model.User{ID: "u1", Role: model.RoleArtist}))

	assert.ErrorIs(t, CanEditProfile(nil), ErrNotSignedIn)
	assert.NoError(t, CanEditProfile(&model.User{ID: "u1"}))

	assert.Equal(t, "Artists only.", ErrNotArtist.Error())
	assert.Equal(t, "Sign in first.", ErrNotSignedIn.Error())
}

func TestStoreRoundTrip(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "nested", "session.json"))
	ctx := context.Background()

	u, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, u)

	want := &model.User{ID: "u1", Email: "kid@music.test", Name: "Kid", Role: model.RoleArtist}
	require.NoError(t, s.Save(ctx, want))

	u, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, want, u)

	require.NoError(t, s.Save(ctx, nil))
	u, err = s.Load()
	require.NoError(t, err)
	assert.Nil(t, u)

	require.NoError(t, s.Clear())
}

func TestLoadEmptyAndCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := NewStore(path)

	require.NoError(t, os.WriteFile(path, nil, 0o644))
	u, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, u)

	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))
	u, err = s.Load()
	require.NoError(t, err)
	assert.Nil(t, u)

	require.NoError(t, os.WriteFile(path, []byte(`{"id":`), 0o644))
	_, err = s.Load()
	assert.Error(t, err)
}

func TestWatch(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "session.json"))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := s.Watch(ctx)
	require.NoError(t, err)

	next := func() *model.User {
		t.Helper()
		select {
		case u, ok := <-ch:
			require.True(t, ok)
			return u
		case <-time.After(5 * time.Second):
			t.Fatal("no session change delivered")
			return nil
		}
	}

	require.NoError(t, s.Save(ctx, &model.User{ID: "u1", Role: model.RoleArtist}))
	u := next()
	require.NotNil(t, u)
	assert.Equal(t, "u1", u.ID)

	require.NoError(t, s.Clear())
	assert.Nil(t, next())

	cancel()
	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
}
