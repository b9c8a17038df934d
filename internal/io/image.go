package ioutils

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"
)

// upperHalf draws the top pixel in the foreground and the bottom pixel in
// the background of one cell.
const upperHalf = "▀"

// ImageService renders cover art for the terminal.
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// Fit returns the largest size with the aspect ratio of width×height that
// fits within maxWidth×maxHeight. Sizes already inside are returned as is.
func Fit(width, height, maxWidth, maxHeight int) (int, int) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	if width <= maxWidth && height <= maxHeight {
		return width, height
	}
	ratio := float64(width) / float64(height)
	if float64(maxWidth)/float64(maxHeight) > ratio {
		return max(1, int(float64(maxHeight)*ratio)), maxHeight
	}
	return maxWidth, max(1, int(float64(maxWidth)/ratio))
}

// Scale decodes data and scales it to fit within maxWidth×maxHeight
// pixels with Catmull-Rom resampling.
func (s *ImageService) Scale(ctx context.Context, data []byte, maxWidth, maxHeight int) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	w, h := Fit(bounds.Dx(), bounds.Dy(), maxWidth, maxHeight)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst, nil
}

// Thumbnail renders data as a block of at most cols×cols/2 cells. Each
// cell shows two vertically stacked pixels, so a square cover stays
// roughly square in a terminal.
func (s *ImageService) Thumbnail(ctx context.Context, data []byte, cols int) (string, error) {
	img, err := s.Scale(ctx, data, cols, cols)
	if err != nil {
		return "", err
	}
	return HalfBlocks(img), nil
}

// HalfBlocks renders img with one cell per two rows of pixels. An odd
// last row is drawn against the terminal background.
func HalfBlocks(img image.Image) string {
	b := img.Bounds()
	lines := make([]string, 0, (b.Dy()+1)/2)
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		var sb strings.Builder
		for x := b.Min.X; x < b.Max.X; x++ {
			style := lipgloss.NewStyle().Foreground(hex(img.At(x, y)))
			if y+1 < b.Max.Y {
				style = style.Background(hex(img.At(x, y+1)))
			}
			sb.WriteString(style.Render(upperHalf))
		}
		lines = append(lines, sb.String())
	}
	return strings.Join(lines, "\n")
}

func hex(c color.Color) lipgloss.Color {
	r, g, b, _ := c.RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}
