package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "out.txt")

	require.NoError(t, WriteFile(context.Background(), path, []byte("one")))
	require.NoError(t, WriteFile(context.Background(), path, []byte("two")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files should be cleaned up")
}

func TestWriteFileCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := WriteFile(ctx, filepath.Join(t.TempDir(), "x"), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFit(t *testing.T) {
	tests := []struct {
		w, h, mw, mh int
		wantW, wantH int
	}{
		{1500, 1000, 1000, 1000, 1000, 666},
		{800, 600, 1000, 1000, 800, 600},
		{100, 400, 16, 16, 4, 16},
		{0, 10, 16, 16, 0, 0},
	}
	for _, tt := range tests {
		w, h := Fit(tt.w, tt.h, tt.mw, tt.mh)
		assert.Equal(t, []int{tt.wantW, tt.wantH}, []int{w, h}, "Fit(%d, %d, %d, %d)", tt.w, tt.h, tt.mw, tt.mh)
	}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 10), G: uint8(y * 10), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestThumbnail(t *testing.T) {
	svc := NewImageService()

	thumb, err := svc.Thumbnail(context.Background(), pngBytes(t, 64, 64), 8)
	require.NoError(t, err)

	lines := strings.Split(thumb, "\n")
	assert.Len(t, lines, 4)
	for _, l := range lines {
		assert.Equal(t, 8, strings.Count(l, upperHalf))
	}
}

func TestThumbnailOddHeight(t *testing.T) {
	img, err := NewImageService().Scale(context.Background(), pngBytes(t, 30, 10), 6, 6)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 6, 2), img.Bounds())

	out := HalfBlocks(image.NewRGBA(image.Rect(0, 0, 3, 3)))
	assert.Len(t, strings.Split(out, "\n"), 2)
}

func TestThumbnailRejectsGarbage(t *testing.T) {
	_, err := NewImageService().Thumbnail(context.Background(), []byte("nope"), 8)
	assert.Error(t, err)
}
