package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/raycaster/internal/render"
	"github.com/samdwyer/raycaster/internal/rgb"
)

// halfBlock fills the upper half of a cell with the foreground colour.
const halfBlock = '▀'

// cellSetter is the part of a screen the drawing helpers need.
type cellSetter interface {
	SetContent(x, y int, r rune, style tcell.Style)
}

// colorOf converts an RGB colour to a true-colour terminal colour.
func colorOf(c rgb.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// drawHalfBlocks copies a pixel buffer to the terminal, two pixel rows per cell row:
// the upper pixel as the foreground of a half block, the lower one as its background.
func drawHalfBlocks(dst cellSetter, buf *render.Buffer) {
	for row := 0; row*2 < buf.Height(); row++ {
		upper := row * 2
		lower := upper + 1
		for x := 0; x < buf.Width(); x++ {
			style := tcell.StyleDefault.Foreground(colorOf(buf.At(x, upper)))
			if lower < buf.Height() {
				style = style.Background(colorOf(buf.At(x, lower)))
			} else {
				style = style.Background(tcell.ColorBlack)
			}
			dst.SetContent(x, row, halfBlock, style)
		}
	}
}
