package world

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/samdwyer/raycaster/internal/geometry"
	"github.com/samdwyer/raycaster/internal/palette"
)

func testPalette(t *testing.T) *palette.Palette {
	t.Helper()
	p, err := palette.Default()
	if err != nil {
		t.Fatalf("Failed to load palette: %v", err)
	}
	return p
}

func TestNewTilePosition(t *testing.T) {
	tests := []struct {
		name  string
		point geometry.Point
		angle geometry.Angle
		want  TilePosition
	}{
		{"inside tile, angle 0", geometry.Point{X: 4.5, Y: 5.5}, 0, TilePosition{4, 5}},
		{"inside tile, angle pi", geometry.Point{X: 4.5, Y: 5.5}, math.Pi, TilePosition{4, 5}},
		{"inside tile, angle -2", geometry.Point{X: 4.5, Y: 5.5}, -2, TilePosition{4, 5}},
		{"x boundary increasing", geometry.Point{X: 4, Y: 5.5}, 0, TilePosition{4, 5}},
		{"x boundary decreasing", geometry.Point{X: 4, Y: 5.5}, math.Pi, TilePosition{3, 5}},
		{"y boundary increasing", geometry.Point{X: 4.5, Y: 6}, math.Pi / 2, TilePosition{4, 6}},
		{"y boundary decreasing", geometry.Point{X: 4.5, Y: 6}, -math.Pi / 2, TilePosition{4, 5}},
		{"corner", geometry.Point{X: 2, Y: 2}, 3 * math.Pi / 4, TilePosition{1, 2}},
		{"negative fraction", geometry.Point{X: -0.5, Y: 0.5}, 0, TilePosition{-1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewTilePosition(tt.point, tt.angle)
			if got != tt.want {
				t.Errorf("NewTilePosition(%+v, %v) = %+v, want %+v", tt.point, tt.angle, got, tt.want)
			}
		})
	}
}

// corridor has an open strip along row 5 from column 1 to 4 and a wall at column 5.
const corridor = "" +
	"RRRRRR\n" +
	"R    R\n" +
	"R    R\n" +
	"R    R\n" +
	"R    R\n" +
	"R    B\n" +
	"RRRRRR"

func TestMovePlayerBlockedByWall(t *testing.T) {
	w := New(NewMap(corridor), Player{Position: geometry.Point{X: 4.5, Y: 5.5}, Direction: 0})

	for i := 0; i < 10; i++ {
		w.MovePlayer(0.2)
		if w.Player.Position.X >= 5.0 {
			t.Fatalf("player advanced to x = %v, past the wall at x = 5", w.Player.Position.X)
		}
	}

	blocked := w.Player.Position
	for i := 0; i < 5; i++ {
		if w.MovePlayer(0.2) {
			t.Errorf("MovePlayer(0.2) succeeded at %+v, want blocked", w.Player.Position)
		}
	}
	if w.Player.Position != blocked {
		t.Errorf("position changed while blocked: %+v != %+v", w.Player.Position, blocked)
	}
}

func TestMovePlayerOntoBoundaryIsBlocked(t *testing.T) {
	w := New(NewMap(corridor), Player{Position: geometry.Point{X: 4.5, Y: 5.5}, Direction: 0})

	if w.MovePlayer(0.5) {
		t.Errorf("moving onto x = 5.0 should be blocked, player at %+v", w.Player.Position)
	}
	if w.Player.Position.X != 4.5 {
		t.Errorf("position X = %v, want 4.5", w.Player.Position.X)
	}
}

func TestMovePlayerBackward(t *testing.T) {
	w := New(NewMap(corridor), Player{Position: geometry.Point{X: 1.5, Y: 5.5}, Direction: 0})

	if !w.MovePlayer(-0.2) {
		t.Fatal("MovePlayer(-0.2) should succeed inside the open tile")
	}
	if math.Abs(w.Player.Position.X-1.3) > 1e-9 {
		t.Errorf("position X = %v, want 1.3", w.Player.Position.X)
	}

	// Backing onto the x = 1 line enters the wall tile behind the player.
	w = New(NewMap(corridor), Player{Position: geometry.Point{X: 1.5, Y: 5.5}, Direction: 0})
	if w.MovePlayer(-0.5) {
		t.Errorf("MovePlayer(-0.5) onto x = 1 should be blocked, player at %+v", w.Player.Position)
	}
}

func TestRotatePlayer(t *testing.T) {
	w := New(NewMap(corridor), Player{Direction: 1})
	w.RotatePlayer(0.05)
	w.RotatePlayer(-0.1)
	if math.Abs(w.Player.Direction-0.95) > 1e-12 {
		t.Errorf("Direction = %v, want 0.95", w.Player.Direction)
	}
}

func TestGenerateReproducibility(t *testing.T) {
	pal := testPalette(t)
	ctx := context.Background()

	g1 := Generate(ctx, DefaultWidth, DefaultHeight, rand.New(rand.NewSource(12345)), pal)
	g2 := Generate(ctx, DefaultWidth, DefaultHeight, rand.New(rand.NewSource(12345)), pal)

	if len(g1.Rooms) != len(g2.Rooms) {
		t.Fatalf("Room count mismatch: %d != %d", len(g1.Rooms), len(g2.Rooms))
	}
	for i := range g1.Rooms {
		if g1.Rooms[i] != g2.Rooms[i] {
			t.Errorf("Room %d mismatch: %+v != %+v", i, g1.Rooms[i], g2.Rooms[i])
		}
	}
	if g1.Text != g2.Text {
		t.Error("Generated map text differs for the same seed")
	}
}

func TestGenerateLayout(t *testing.T) {
	g := Generate(context.Background(), DefaultWidth, DefaultHeight, rand.New(rand.NewSource(7)), testPalette(t))

	if len(g.Rooms) == 0 {
		t.Fatal("Expected at least one room")
	}
	if g.Map.Rows() != DefaultHeight || g.Map.Width() != DefaultWidth {
		t.Errorf("map size = %dx%d, want %dx%d", g.Map.Width(), g.Map.Rows(), DefaultWidth, DefaultHeight)
	}

	// The border is solid.
	for x := 0; x < DefaultWidth; x++ {
		if !g.Map.TileAt(x, 0).IsWall() || !g.Map.TileAt(x, DefaultHeight-1).IsWall() {
			t.Fatalf("border column %d is open", x)
		}
	}
	for y := 0; y < DefaultHeight; y++ {
		if !g.Map.TileAt(0, y).IsWall() || !g.Map.TileAt(DefaultWidth-1, y).IsWall() {
			t.Fatalf("border row %d is open", y)
		}
	}

	// Rooms are open and the spawn lies in the first room.
	for i, room := range g.Rooms {
		cx, cy := room.Center()
		if g.Map.TileAt(cx, cy).IsWall() {
			t.Errorf("room %d center (%d,%d) is a wall", i, cx, cy)
		}
	}
	spawn := NewTilePosition(g.Spawn, 0)
	if g.RoomIndexAt(spawn.X, spawn.Y) != 0 {
		t.Errorf("spawn %+v is not in the first room", g.Spawn)
	}
	if g.RoomIndexAt(0, 0) != -1 {
		t.Error("RoomIndexAt(0, 0) should be -1")
	}
}

func TestGenerateTinyMapHasNoRooms(t *testing.T) {
	g := Generate(context.Background(), 4, 4, rand.New(rand.NewSource(1)), testPalette(t))
	if len(g.Rooms) != 0 {
		t.Errorf("Expected no rooms, got %d", len(g.Rooms))
	}
	if g.Spawn != (geometry.Point{X: 2, Y: 2}) {
		t.Errorf("Spawn = %+v, want map center", g.Spawn)
	}
}
