package world

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/raycaster/internal/geometry"
	"github.com/samdwyer/raycaster/internal/palette"
	"github.com/samdwyer/raycaster/internal/telemetry"
)

// Wall light intensities, one per wall orientation as seen by a ray.
const (
	lightXIncreasing = 1.0
	lightXDecreasing = 0.6
	lightYIncreasing = 0.4
	lightYDecreasing = 0.8
)

// Map is an immutable grid of tiles. Rows may differ in length.
type Map struct {
	tiles       [][]Tile
	width       int
	maxDistance int
}

// NewMap parses a map using the embedded default palette.
func NewMap(text string) *Map {
	return ParseMap(text, palette.MustDefault())
}

// ParseMap creates a map from its text form. Each line is a row and each character a tile:
// a space is empty, a palette glyph is a wall of that colour, and any other character is
// a wall in the palette's fallback colour. Parsing never fails.
func ParseMap(text string, pal *palette.Palette) *Map {
	text = strings.TrimSuffix(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	var tiles [][]Tile
	if text != "" {
		lines := strings.Split(text, "\n")
		tiles = make([][]Tile, len(lines))
		for y, line := range lines {
			row := make([]Tile, 0, len(line))
			for _, ch := range line {
				row = append(row, tileFor(ch, pal))
			}
			tiles[y] = row
		}
	}

	width := 0
	for _, row := range tiles {
		width = max(width, len(row))
	}

	// The grid is bounded by a rectangle, so no straight path inside it is longer than
	// the sum of its sides.
	return &Map{
		tiles:       tiles,
		width:       width,
		maxDistance: len(tiles) + width,
	}
}

func tileFor(ch rune, pal *palette.Palette) Tile {
	if ch == ' ' {
		return Empty
	}
	if color, ok := pal.Wall(ch); ok {
		return Wall(color)
	}
	return Wall(pal.Fallback())
}

// LoadMap reads a map text file and parses it with the given palette.
func LoadMap(ctx context.Context, path string, pal *palette.Palette) (*Map, error) {
	_, span := telemetry.Tracer("world").Start(ctx, "map.load")
	defer span.End()

	content, err := os.ReadFile(path)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to read map file %s: %w", path, err)
	}

	m := ParseMap(string(content), pal)
	span.SetAttributes(
		attribute.String("map.path", path),
		attribute.Int("map.rows", m.Rows()),
		attribute.Int("map.width", m.Width()),
	)
	return m, nil
}

// Tile returns the tile at the given position. Positions outside the map are empty.
func (m *Map) Tile(pos TilePosition) Tile {
	return m.TileAt(pos.X, pos.Y)
}

// TileAt returns the tile at the given grid coordinates, or Empty when out of range.
func (m *Map) TileAt(x, y int) Tile {
	if y < 0 || y >= len(m.tiles) {
		return Empty
	}
	row := m.tiles[y]
	if x < 0 || x >= len(row) {
		return Empty
	}
	return row[x]
}

// MaxDistance returns the longest distance that can exist between two points of the map.
func (m *Map) MaxDistance() int {
	return m.maxDistance
}

// Rows returns the number of rows.
func (m *Map) Rows() int {
	return len(m.tiles)
}

// Width returns the length of the longest row.
func (m *Map) Width() int {
	return m.width
}

// LightIntensityForWall returns the light intensity of a wall at a point, depending on
// the side of the wall the point lies on and the direction the wall is viewed from.
func LightIntensityForWall(point geometry.Point, angle geometry.Angle) float64 {
	axis := point.ClosestGridLineAxis()
	direction := geometry.DirectionFromAngle(angle, axis)

	switch {
	case axis == geometry.AxisX && direction == geometry.Increasing:
		return lightXIncreasing
	case axis == geometry.AxisX:
		return lightXDecreasing
	case direction == geometry.Increasing:
		return lightYIncreasing
	default:
		return lightYDecreasing
	}
}
