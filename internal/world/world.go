package world

import (
	"math"

	"github.com/samdwyer/raycaster/internal/geometry"
)

// Player represents the viewer inside the map.
type Player struct {
	Position  geometry.Point // Position in grid units
	Direction geometry.Angle // Viewing angle relative to the X axis
}

// World is the state of the virtual world: the map and the player walking through it.
type World struct {
	Map    *Map
	Player Player
}

// New creates a world from a map and a player.
func New(m *Map, player Player) *World {
	return &World{Map: m, Player: player}
}

// RotatePlayer turns the player by the given angle.
func (w *World) RotatePlayer(step geometry.Angle) {
	w.Player.Direction += step
}

// MovePlayer moves the player by distance along its viewing direction; negative distances
// move backwards. The move is rejected if it would end inside a wall.
func (w *World) MovePlayer(distance float64) bool {
	target := w.Player.Position.Advance(distance, w.Player.Direction)

	heading := w.Player.Direction
	if distance < 0 {
		heading += math.Pi
	}

	if !w.Map.Tile(NewTilePosition(target, heading)).IsPassable() {
		return false
	}
	w.Player.Position = target
	return true
}
