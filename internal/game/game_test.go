package game

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/samdwyer/raycaster/internal/geometry"
	"github.com/samdwyer/raycaster/internal/palette"
	"github.com/samdwyer/raycaster/internal/render"
	"github.com/samdwyer/raycaster/internal/telemetry"
	"github.com/samdwyer/raycaster/internal/world"
)

// scriptedInput replays one event and one set of keys per poll.
type scriptedInput struct {
	events    []Event
	keys      [][]Key
	polls     int
	frames    []Frame
	onPresent func(Frame)
}

func (s *scriptedInput) PollEvent() Event {
	i := s.polls
	s.polls++
	if i < len(s.events) {
		return s.events[i]
	}
	return EventNone
}

func (s *scriptedInput) PressedKeys() []Key {
	i := s.polls - 1
	if i >= 0 && i < len(s.keys) {
		return s.keys[i]
	}
	return nil
}

func (s *scriptedInput) Present(frame Frame) {
	s.frames = append(s.frames, frame)
	if s.onPresent != nil {
		s.onPresent(frame)
	}
}

const corridor = "" +
	"RRRRR\n" +
	"R   R\n" +
	"RRRRR"

func newTestGame(t *testing.T, text string, start world.Player) *Game {
	t.Helper()
	cfg := DefaultConfig()
	w := world.New(world.NewMap(text), start)
	return New(cfg, w, render.NewRenderer(cfg.Render, render.WithTracer(telemetry.NoopTracer())))
}

func TestStepRedrawsOnStartupOnly(t *testing.T) {
	g := newTestGame(t, corridor, world.Player{Position: geometry.Point{X: 1.5, Y: 1.5}})
	in := &scriptedInput{}

	if redraw, quit := g.Step(context.Background(), in); !redraw || quit {
		t.Errorf("first Step() = (%v, %v), want (true, false)", redraw, quit)
	}
	if redraw, quit := g.Step(context.Background(), in); redraw || quit {
		t.Errorf("idle Step() = (%v, %v), want (false, false)", redraw, quit)
	}
}

func TestStepEvents(t *testing.T) {
	tests := []struct {
		name       string
		event      Event
		wantRedraw bool
		wantQuit   bool
		wantMap    bool
	}{
		{"none", EventNone, false, false, false},
		{"quit", EventQuit, false, true, false},
		{"resize", EventResize, true, false, false},
		{"toggle map", EventToggleMap, true, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, corridor, world.Player{Position: geometry.Point{X: 1.5, Y: 1.5}})
			g.Step(context.Background(), &scriptedInput{})

			redraw, quit := g.Step(context.Background(), &scriptedInput{events: []Event{tt.event}})
			if redraw != tt.wantRedraw || quit != tt.wantQuit {
				t.Errorf("Step() = (%v, %v), want (%v, %v)", redraw, quit, tt.wantRedraw, tt.wantQuit)
			}
			if g.ShowMap() != tt.wantMap {
				t.Errorf("ShowMap() = %v, want %v", g.ShowMap(), tt.wantMap)
			}
		})
	}
}

func TestStepMovesAndRotates(t *testing.T) {
	g := newTestGame(t, corridor, world.Player{Position: geometry.Point{X: 1.5, Y: 1.5}})
	g.Step(context.Background(), &scriptedInput{})

	redraw, _ := g.Step(context.Background(), &scriptedInput{keys: [][]Key{{KeyForward}}})
	if !redraw {
		t.Error("Step() with forward key should redraw")
	}
	if got := g.World().Player.Position.X; math.Abs(got-1.7) > 1e-12 {
		t.Errorf("after forward X = %v, want 1.7", got)
	}

	g.Step(context.Background(), &scriptedInput{keys: [][]Key{{KeyBackward}}})
	if got := g.World().Player.Position.X; math.Abs(got-1.5) > 1e-12 {
		t.Errorf("after backward X = %v, want 1.5", got)
	}

	g.Step(context.Background(), &scriptedInput{keys: [][]Key{{KeyRotateRight, KeyRotateRight}}})
	if got := g.World().Player.Direction; math.Abs(got-0.1) > 1e-12 {
		t.Errorf("after two right turns Direction = %v, want 0.1", got)
	}

	g.Step(context.Background(), &scriptedInput{keys: [][]Key{{KeyRotateLeft}}})
	if got := g.World().Player.Direction; math.Abs(got-0.05) > 1e-12 {
		t.Errorf("after left turn Direction = %v, want 0.05", got)
	}
}

func TestStepAppliesEachHeldKeyOnce(t *testing.T) {
	tests := []struct {
		name    string
		keys    []Key
		wantX   float64
		wantDir float64
	}{
		{"forward twice", []Key{KeyForward, KeyForward}, 1.7, 0},
		{"forward three times", []Key{KeyForward, KeyForward, KeyForward}, 1.7, 0},
		{"rotate twice", []Key{KeyRotateRight, KeyRotateRight}, 1.5, 0.05},
		{"mixed repeats", []Key{KeyForward, KeyRotateLeft, KeyForward, KeyRotateLeft}, 1.7, -0.05},
		{"unknown key", []Key{Key(99)}, 1.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, corridor, world.Player{Position: geometry.Point{X: 1.5, Y: 1.5}})
			g.Step(context.Background(), &scriptedInput{})

			g.Step(context.Background(), &scriptedInput{keys: [][]Key{tt.keys}})

			p := g.World().Player
			if math.Abs(p.Position.X-tt.wantX) > 1e-12 {
				t.Errorf("X = %v, want %v", p.Position.X, tt.wantX)
			}
			if math.Abs(p.Direction-tt.wantDir) > 1e-12 {
				t.Errorf("Direction = %v, want %v", p.Direction, tt.wantDir)
			}
		})
	}
}

func TestStepUnknownKeyDoesNotRedraw(t *testing.T) {
	g := newTestGame(t, corridor, world.Player{Position: geometry.Point{X: 1.5, Y: 1.5}})
	g.Step(context.Background(), &scriptedInput{})

	if redraw, _ := g.Step(context.Background(), &scriptedInput{keys: [][]Key{{Key(99)}}}); redraw {
		t.Error("Step() with only an unknown key should not redraw")
	}
}

func TestStepBlockedMoveStillRedraws(t *testing.T) {
	g := newTestGame(t, corridor, world.Player{Position: geometry.Point{X: 3.5, Y: 1.5}})
	g.Step(context.Background(), &scriptedInput{})
	g.cfg.MovementSpeed = 1

	redraw, _ := g.Step(context.Background(), &scriptedInput{keys: [][]Key{{KeyForward}}})
	if !redraw {
		t.Error("Step() with a blocked move should still redraw")
	}
	if got := g.World().Player.Position; got != (geometry.Point{X: 3.5, Y: 1.5}) {
		t.Errorf("blocked move changed position to %v", got)
	}
}

func TestFrame(t *testing.T) {
	g := newTestGame(t, corridor, world.Player{Position: geometry.Point{X: 1.5, Y: 1.5}, Direction: 0.25})

	frame := g.Frame(context.Background())
	if frame.World != g.World() {
		t.Error("Frame().World should be the game world")
	}
	if want := "x 1.50  y 1.50  dir 0.25"; frame.Status != want {
		t.Errorf("Frame().Status = %q, want %q", frame.Status, want)
	}

	buf := render.NewBuffer(8, 6)
	frame.Render(buf)
	if buf.Pix()[3] != 0xff {
		t.Error("Frame().Render should draw into the canvas")
	}
}

func TestRunPresentsUntilQuit(t *testing.T) {
	g := newTestGame(t, corridor, world.Player{Position: geometry.Point{X: 1.5, Y: 1.5}})
	g.cfg.TickRate = 1000
	fe := &scriptedInput{
		events: []Event{EventNone, EventNone, EventToggleMap, EventNone, EventQuit},
		keys:   [][]Key{nil, {KeyForward}},
	}

	if err := g.Run(context.Background(), fe); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	// Startup, forward key and map toggle each present once.
	if len(fe.frames) != 3 {
		t.Fatalf("presented %d frames, want 3", len(fe.frames))
	}
	if !fe.frames[2].ShowMap {
		t.Error("third frame should show the map")
	}
	if fe.polls != 5 {
		t.Errorf("polled %d times, want 5", fe.polls)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	g := newTestGame(t, corridor, world.Player{Position: geometry.Point{X: 1.5, Y: 1.5}})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	fe := &scriptedInput{onPresent: func(Frame) { cancel() }}
	if err := g.Run(ctx, fe); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestLoadWorldDefaultMap(t *testing.T) {
	w, err := LoadWorld(context.Background(), DefaultConfig(), palette.MustDefault())
	if err != nil {
		t.Fatalf("LoadWorld() error = %v", err)
	}
	if w.Player.Position != (geometry.Point{X: 4.5, Y: 5.5}) || w.Player.Direction != 0 {
		t.Errorf("player = %+v, want the default start", w.Player)
	}
	if w.Map.Rows() == 0 {
		t.Error("default map should not be empty")
	}
}

func TestLoadWorldGenerated(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Generate = true
	cfg.Seed = 42

	a, err := LoadWorld(context.Background(), cfg, palette.MustDefault())
	if err != nil {
		t.Fatalf("LoadWorld() error = %v", err)
	}
	b, _ := LoadWorld(context.Background(), cfg, palette.MustDefault())

	if a.Player != b.Player {
		t.Errorf("same seed gave different spawns: %+v and %+v", a.Player, b.Player)
	}
	if a.Map.Tile(world.NewTilePosition(a.Player.Position, 0)).IsWall() {
		t.Error("generated spawn is inside a wall")
	}
	if a.Map.Rows() != world.DefaultHeight {
		t.Errorf("generated rows = %d, want %d", a.Map.Rows(), world.DefaultHeight)
	}
}

func TestLoadWorldFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "map.txt")
	if err := os.WriteFile(path, []byte(corridor), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	cfg.MapPath = path
	cfg.Start = world.Player{Position: geometry.Point{X: 2.5, Y: 1.5}}
	w, err := LoadWorld(context.Background(), cfg, palette.MustDefault())
	if err != nil {
		t.Fatalf("LoadWorld() error = %v", err)
	}
	if w.Map.Width() != 5 || w.Map.Rows() != 3 {
		t.Errorf("map size = %dx%d, want 5x3", w.Map.Width(), w.Map.Rows())
	}

	cfg.Start = world.Player{Position: geometry.Point{X: 0.5, Y: 0.5}}
	if _, err := LoadWorld(context.Background(), cfg, palette.MustDefault()); err == nil {
		t.Error("LoadWorld() with the start inside a wall should fail")
	}

	cfg.MapPath = filepath.Join(dir, "missing.txt")
	if _, err := LoadWorld(context.Background(), cfg, palette.MustDefault()); err == nil {
		t.Error("LoadWorld() with a missing file should fail")
	}
}

func TestEventAndKeyString(t *testing.T) {
	events := []struct {
		event Event
		want  string
	}{
		{EventNone, "none"},
		{EventQuit, "quit"},
		{EventResize, "resize"},
		{EventToggleMap, "toggle_map"},
		{Event(99), "unknown"},
	}
	for _, tt := range events {
		if got := tt.event.String(); got != tt.want {
			t.Errorf("Event(%d).String() = %q, want %q", tt.event, got, tt.want)
		}
	}

	keys := []struct {
		key  Key
		want string
	}{
		{KeyForward, "forward"},
		{KeyBackward, "backward"},
		{KeyRotateLeft, "rotate_left"},
		{KeyRotateRight, "rotate_right"},
		{Key(99), "unknown"},
	}
	for _, tt := range keys {
		if got := tt.key.String(); got != tt.want {
			t.Errorf("Key(%d).String() = %q, want %q", tt.key, got, tt.want)
		}
	}
}
