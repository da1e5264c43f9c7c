package world

import (
	"math"

	"github.com/samdwyer/raycaster/internal/geometry"
)

// TilePosition addresses a tile of the map.
type TilePosition struct {
	X, Y int
}

// NewTilePosition resolves a point to the tile it belongs to. A coordinate lying exactly on
// a grid line is ambiguous; it is assigned to the tile ahead when the angle increases that
// coordinate and to the tile behind otherwise.
func NewTilePosition(point geometry.Point, angle geometry.Angle) TilePosition {
	return TilePosition{
		X: tileComponent(point.X, geometry.AxisX, angle),
		Y: tileComponent(point.Y, geometry.AxisY, angle),
	}
}

func tileComponent(v float64, axis geometry.Axis, angle geometry.Angle) int {
	floor := math.Floor(v)
	if v == floor && geometry.DirectionFromAngle(angle, axis) == geometry.Decreasing {
		floor--
	}
	return int(floor)
}
