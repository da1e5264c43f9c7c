// Package world provides the tile map, the player and the world state they form.
package world

import "github.com/samdwyer/raycaster/internal/rgb"

// Tile is a single map cell: either empty or a wall with a colour.
type Tile struct {
	wall  bool
	color rgb.Color
}

// Empty is the tile returned for open space and for anything outside the map.
var Empty = Tile{}

// Wall returns a wall tile with the given colour.
func Wall(color rgb.Color) Tile {
	return Tile{wall: true, color: color}
}

// IsWall returns true if the tile blocks rays and movement.
func (t Tile) IsWall() bool {
	return t.wall
}

// IsPassable returns true if the tile can be walked on.
func (t Tile) IsPassable() bool {
	return !t.wall
}

// Color returns the wall colour. Empty tiles report black.
func (t Tile) Color() rgb.Color {
	return t.color
}

// Rune returns the tile's minimap character.
func (t Tile) Rune() rune {
	if t.wall {
		return '█'
	}
	return '·'
}
