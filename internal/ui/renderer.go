package ui

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/raycaster/internal/rgb"
	"github.com/samdwyer/raycaster/internal/world"
)

// playerArrows point in the eight compass directions, starting at angle 0 (east) and
// turning clockwise on screen, since y grows downwards.
var playerArrows = []rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

// playerRune returns the arrow closest to the viewing direction.
func playerRune(direction float64) rune {
	octant := int(math.Round(direction/(math.Pi/4))) % len(playerArrows)
	if octant < 0 {
		octant += len(playerArrows)
	}
	return playerArrows[octant]
}

// drawMinimap overlays the map in the top-left corner, one cell per tile, clipped to
// width x height cells.
func drawMinimap(dst cellSetter, w *world.World, width, height int) {
	rows := min(w.Map.Rows(), height)
	cols := min(w.Map.Width(), width)

	emptyStyle := tcell.StyleDefault.
		Foreground(tcell.ColorDarkGray).
		Background(tcell.ColorBlack)

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			tile := w.Map.TileAt(x, y)
			style := emptyStyle
			if tile.IsWall() {
				style = tcell.StyleDefault.Foreground(colorOf(tile.Color())).Background(tcell.ColorBlack)
			}
			dst.SetContent(x, y, tile.Rune(), style)
		}
	}

	// Draw player on top
	px := int(math.Floor(w.Player.Position.X))
	py := int(math.Floor(w.Player.Position.Y))
	if px >= 0 && px < cols && py >= 0 && py < rows {
		playerStyle := tcell.StyleDefault.
			Foreground(colorOf(rgb.Yellow)).
			Background(tcell.ColorBlack).
			Bold(true)
		dst.SetContent(px, py, playerRune(w.Player.Direction), playerStyle)
	}
}

// drawStatus writes a message on row y, padding the rest of the row with blanks.
func drawStatus(dst cellSetter, msg string, y, width int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	x := 0
	for _, ch := range msg {
		if x >= width {
			return
		}
		dst.SetContent(x, y, ch, style)
		x++
	}
	for ; x < width; x++ {
		dst.SetContent(x, y, ' ', style)
	}
}
