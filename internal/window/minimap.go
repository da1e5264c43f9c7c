package window

import (
	"math"

	"github.com/samdwyer/raycaster/internal/render"
	"github.com/samdwyer/raycaster/internal/rgb"
	"github.com/samdwyer/raycaster/internal/world"
)

// drawMinimap overlays the map in the top-left corner of the canvas with cell x cell
// pixels per tile. Open tiles are dark gray and the player's tile is yellow.
func drawMinimap(canvas render.Canvas, w *world.World, cell int) {
	px := int(math.Floor(w.Player.Position.X))
	py := int(math.Floor(w.Player.Position.Y))

	for ty := 0; ty < w.Map.Rows(); ty++ {
		for tx := 0; tx < w.Map.Width(); tx++ {
			color := rgb.DarkGray
			switch tile := w.Map.TileAt(tx, ty); {
			case tx == px && ty == py:
				color = rgb.Yellow
			case tile.IsWall():
				color = tile.Color()
			}
			fillCell(canvas, tx*cell, ty*cell, cell, color)
		}
	}
}

func fillCell(canvas render.Canvas, x0, y0, size int, color rgb.Color) {
	for y := y0; y < min(y0+size, canvas.Height()); y++ {
		for x := x0; x < min(x0+size, canvas.Width()); x++ {
			canvas.DrawPixel(x, y, color)
		}
	}
}
