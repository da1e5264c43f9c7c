package world

import "github.com/samdwyer/raycaster/internal/geometry"

// Room represents a rectangular open area carved out of a generated map.
type Room struct {
	X, Y          int // Top-left corner position
	Width, Height int // Dimensions of the room
}

// Center returns the center tile of the room.
func (r Room) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Spawn returns the middle of the room's center tile in continuous coordinates.
func (r Room) Spawn() geometry.Point {
	x, y := r.Center()
	return geometry.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}
}

// Contains returns true if the given tile is inside the room.
func (r Room) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}
