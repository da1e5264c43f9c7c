package world

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/raycaster/internal/geometry"
	"github.com/samdwyer/raycaster/internal/palette"
	"github.com/samdwyer/raycaster/internal/telemetry"
)

const (
	// Default generated map dimensions
	DefaultWidth  = 48
	DefaultHeight = 32

	// BSP parameters
	minRoomSize = 4  // Minimum room dimension
	maxRoomSize = 10 // Maximum room dimension
	minLeafSize = 7  // Minimum BSP leaf size before stopping split
)

// Generated is the result of procedural map generation.
type Generated struct {
	Text  string         // Map in its text form, parseable by ParseMap
	Map   *Map           // Parsed map
	Rooms []Room         // Carved rooms in generation order
	Spawn geometry.Point // Suggested player position (center of the first room)
}

// generator carves rooms and corridors into a grid of open/closed cells.
type generator struct {
	width, height int
	open          [][]bool
	rooms         []Room
	rng           *rand.Rand
}

// Generate creates a map of walls surrounding BSP rooms connected by corridors.
// Each room's walls take a random palette colour. The same rng seed yields the same map.
func Generate(ctx context.Context, width, height int, rng *rand.Rand, pal *palette.Palette) *Generated {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "map.generate")
	defer span.End()

	startTime := time.Now()

	g := &generator{
		width:  width,
		height: height,
		open:   make([][]bool, height),
		rng:    rng,
	}
	for y := range g.open {
		g.open[y] = make([]bool, width)
	}

	// Start BSP with the entire map as root, keeping a solid border
	root := &bspNode{
		x:      1,
		y:      1,
		width:  width - 2,
		height: height - 2,
	}

	g.splitNode(root)
	g.createRooms(root)
	g.connectRooms(root)

	text := g.render(pal)
	result := &Generated{
		Text:  text,
		Map:   ParseMap(text, pal),
		Rooms: g.rooms,
		Spawn: geometry.Point{X: float64(width) / 2, Y: float64(height) / 2},
	}
	if len(g.rooms) > 0 {
		result.Spawn = g.rooms[0].Spawn()
	}

	span.SetAttributes(
		attribute.Int("map.width", width),
		attribute.Int("map.height", height),
		attribute.Int("map.room_count", len(g.rooms)),
		attribute.Int64("map.generation_ms", time.Since(startTime).Milliseconds()),
	)
	return result
}

// RoomIndexAt returns the index of the room containing the tile, or -1 if not in a room.
func (g *Generated) RoomIndexAt(x, y int) int {
	return roomIndexAt(g.Rooms, x, y)
}

func roomIndexAt(rooms []Room, x, y int) int {
	for i, room := range rooms {
		if room.Contains(x, y) {
			return i
		}
	}
	return -1
}

// render converts the carved grid into map text. A wall takes the colour of the first
// room it borders; walls along corridors use the first palette glyph.
func (g *generator) render(pal *palette.Palette) string {
	glyphs := pal.Glyphs()
	roomGlyphs := make([]rune, len(g.rooms))
	for i := range roomGlyphs {
		roomGlyphs[i] = glyphs[g.rng.Intn(len(glyphs))]
	}

	var b strings.Builder
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.open[y][x] {
				b.WriteRune(' ')
				continue
			}
			glyph := glyphs[0]
		neighbours:
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if i := roomIndexAt(g.rooms, x+dx, y+dy); i >= 0 {
						glyph = roomGlyphs[i]
						break neighbours
					}
				}
			}
			b.WriteRune(glyph)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// bspNode represents a node in the BSP tree.
type bspNode struct {
	x, y          int
	width, height int
	left, right   *bspNode
	room          *Room
}

// isLeaf returns true if this node has no children.
func (n *bspNode) isLeaf() bool {
	return n.left == nil && n.right == nil
}

// splitNode recursively splits a BSP node.
func (g *generator) splitNode(node *bspNode) {
	if node.width < minLeafSize*2 && node.height < minLeafSize*2 {
		return
	}

	var splitHorizontally bool
	switch {
	case node.width > node.height && node.width >= minLeafSize*2:
		splitHorizontally = false
	case node.height >= minLeafSize*2:
		splitHorizontally = true
	default:
		splitHorizontally = false
	}

	size := node.width
	if splitHorizontally {
		size = node.height
	}
	lo, hi := minLeafSize, size-minLeafSize
	if hi < lo {
		return
	}
	splitPos := lo + g.rng.Intn(hi-lo+1)

	if splitHorizontally {
		node.left = &bspNode{x: node.x, y: node.y, width: node.width, height: splitPos}
		node.right = &bspNode{x: node.x, y: node.y + splitPos, width: node.width, height: node.height - splitPos}
	} else {
		node.left = &bspNode{x: node.x, y: node.y, width: splitPos, height: node.height}
		node.right = &bspNode{x: node.x + splitPos, y: node.y, width: node.width - splitPos, height: node.height}
	}

	g.splitNode(node.left)
	g.splitNode(node.right)
}

// createRooms creates rooms in leaf nodes of the BSP tree.
func (g *generator) createRooms(node *bspNode) {
	if node == nil {
		return
	}
	if !node.isLeaf() {
		g.createRooms(node.left)
		g.createRooms(node.right)
		return
	}

	// Leave at least one wall cell on each side of the room inside the leaf
	maxWidth := min(maxRoomSize, node.width-2)
	maxHeight := min(maxRoomSize, node.height-2)
	if maxWidth < minRoomSize || maxHeight < minRoomSize {
		return
	}

	roomWidth := minRoomSize + g.rng.Intn(maxWidth-minRoomSize+1)
	roomHeight := minRoomSize + g.rng.Intn(maxHeight-minRoomSize+1)
	roomX := node.x + 1 + g.rng.Intn(node.width-roomWidth-1)
	roomY := node.y + 1 + g.rng.Intn(node.height-roomHeight-1)

	room := Room{X: roomX, Y: roomY, Width: roomWidth, Height: roomHeight}
	node.room = &room
	g.rooms = append(g.rooms, room)

	for y := room.Y; y < room.Y+room.Height; y++ {
		for x := room.X; x < room.X+room.Width; x++ {
			g.carve(x, y)
		}
	}
}

// connectRooms connects sibling subtrees with corridors.
func (g *generator) connectRooms(node *bspNode) {
	if node == nil || node.isLeaf() {
		return
	}

	g.connectRooms(node.left)
	g.connectRooms(node.right)

	leftRoom := findRoom(node.left)
	rightRoom := findRoom(node.right)
	if leftRoom != nil && rightRoom != nil {
		g.carveCorridor(*leftRoom, *rightRoom)
	}
}

// findRoom returns a room from a subtree (any room will do).
func findRoom(node *bspNode) *Room {
	if node == nil {
		return nil
	}
	if node.room != nil {
		return node.room
	}
	if room := findRoom(node.left); room != nil {
		return room
	}
	return findRoom(node.right)
}

// carveCorridor creates an L-shaped corridor between two room centers.
func (g *generator) carveCorridor(room1, room2 Room) {
	x1, y1 := room1.Center()
	x2, y2 := room2.Center()

	if g.rng.Intn(2) == 0 {
		g.carveHorizontal(x1, x2, y1)
		g.carveVertical(y1, y2, x2)
	} else {
		g.carveVertical(y1, y2, x1)
		g.carveHorizontal(x1, x2, y2)
	}
}

func (g *generator) carveHorizontal(x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		g.carve(x, y)
	}
}

func (g *generator) carveVertical(y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		g.carve(x, y)
	}
}

// carve opens a cell, never touching the outer border.
func (g *generator) carve(x, y int) {
	if x > 0 && x < g.width-1 && y > 0 && y < g.height-1 {
		g.open[y][x] = true
	}
}
