package render

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/samdwyer/raycaster/internal/rgb"
)

// Canvas is a pixel sink the renderer draws a frame into.
type Canvas interface {
	Width() int
	Height() int
	DrawPixel(x, y int, c rgb.Color)
}

// Buffer is an in-memory canvas backed by an RGBA image.
type Buffer struct {
	img *image.RGBA
}

// NewBuffer creates a buffer with the given dimensions.
func NewBuffer(width, height int) *Buffer {
	return &Buffer{img: image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))}
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int {
	return b.img.Rect.Dx()
}

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int {
	return b.img.Rect.Dy()
}

// DrawPixel sets a single opaque pixel.
func (b *Buffer) DrawPixel(x, y int, c rgb.Color) {
	b.img.SetRGBA(x, y, c.RGBA())
}

// At returns the colour of a pixel.
func (b *Buffer) At(x, y int) rgb.Color {
	c := b.img.RGBAAt(x, y)
	return rgb.Color{R: c.R, G: c.G, B: c.B}
}

// Pix returns the raw RGBA bytes, row by row.
func (b *Buffer) Pix() []byte {
	return b.img.Pix
}

// Resize replaces the buffer contents with a blank image of the new size if it changed.
// It reports whether the size changed.
func (b *Buffer) Resize(width, height int) bool {
	if width == b.Width() && height == b.Height() {
		return false
	}
	b.img = image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
	return true
}

// WritePNG encodes the buffer as a PNG image.
func (b *Buffer) WritePNG(w io.Writer) error {
	if err := png.Encode(w, b.img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}
