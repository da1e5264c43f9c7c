// Package game runs the simulation loop: it polls input, moves the player and hands
// frames to a frontend.
package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/raycaster/data"
	"github.com/samdwyer/raycaster/internal/palette"
	"github.com/samdwyer/raycaster/internal/render"
	"github.com/samdwyer/raycaster/internal/telemetry"
	"github.com/samdwyer/raycaster/internal/world"
)

// Frame is everything a frontend needs to present one refresh.
type Frame struct {
	World   *world.World
	ShowMap bool
	Status  string
	// Render draws the first-person view into a canvas.
	Render func(canvas render.Canvas)
}

// Game holds the entire game state.
type Game struct {
	cfg      Config
	world    *world.World
	renderer *render.Renderer
	showMap  bool
	dirty    bool // Forces a redraw on the next step
}

// New creates a game for an existing world. The first step always requests a redraw.
func New(cfg Config, w *world.World, renderer *render.Renderer) *Game {
	return &Game{
		cfg:      cfg,
		world:    w,
		renderer: renderer,
		dirty:    true,
	}
}

// LoadWorld builds the world described by the configuration: a generated map, a map
// file, or the embedded default map.
func LoadWorld(ctx context.Context, cfg Config, pal *palette.Palette) (*world.World, error) {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.init")
	defer span.End()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	switch {
	case cfg.Generate:
		rng := rand.New(rand.NewSource(seed))
		gen := world.Generate(ctx, world.DefaultWidth, world.DefaultHeight, rng, pal)
		player := world.Player{Position: gen.Spawn, Direction: cfg.Start.Direction}

		span.SetAttributes(
			attribute.String("map.source", "generated"),
			attribute.Int64("map.seed", seed),
			attribute.Int("map.rooms", len(gen.Rooms)),
		)
		return world.New(gen.Map, player), nil

	case cfg.MapPath != "":
		m, err := world.LoadMap(ctx, cfg.MapPath, pal)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		span.SetAttributes(attribute.String("map.source", cfg.MapPath))
		return newWorld(m, cfg.Start)

	default:
		span.SetAttributes(attribute.String("map.source", "embedded"))
		return newWorld(world.ParseMap(data.DefaultMap(), pal), cfg.Start)
	}
}

func newWorld(m *world.Map, start world.Player) (*world.World, error) {
	pos := world.NewTilePosition(start.Position, start.Direction)
	if m.Tile(pos).IsWall() {
		return nil, fmt.Errorf("start position %.2f,%.2f is inside a wall", start.Position.X, start.Position.Y)
	}
	return world.New(m, start), nil
}

// World returns the world the game is simulating.
func (g *Game) World() *world.World {
	return g.world
}

// ShowMap reports whether the minimap overlay is visible.
func (g *Game) ShowMap() bool {
	return g.showMap
}

// Step processes one tick of input. It reports whether the view must be redrawn and
// whether the game should stop.
func (g *Game) Step(ctx context.Context, in Input) (redraw, quit bool) {
	redraw = g.dirty
	g.dirty = false

	switch in.PollEvent() {
	case EventQuit:
		return false, true
	case EventResize:
		redraw = true
	case EventToggleMap:
		g.showMap = !g.showMap
		redraw = true
	}

	// Each held key applies at most one step per tick, however often it is reported.
	var held [keyCount]bool
	for _, key := range in.PressedKeys() {
		if key >= 0 && key < keyCount {
			held[key] = true
		}
	}

	if held[KeyForward] {
		g.world.MovePlayer(g.cfg.MovementSpeed)
	}
	if held[KeyBackward] {
		g.world.MovePlayer(-g.cfg.MovementSpeed)
	}
	if held[KeyRotateLeft] {
		g.world.RotatePlayer(-g.cfg.RotationSpeed)
	}
	if held[KeyRotateRight] {
		g.world.RotatePlayer(g.cfg.RotationSpeed)
	}
	if held != [keyCount]bool{} {
		redraw = true
	}
	return redraw, false
}

// Frame captures the current state for presentation.
func (g *Game) Frame(ctx context.Context) Frame {
	p := g.world.Player
	return Frame{
		World:   g.world,
		ShowMap: g.showMap,
		Status:  fmt.Sprintf("x %.2f  y %.2f  dir %.2f", p.Position.X, p.Position.Y, p.Direction),
		Render: func(canvas render.Canvas) {
			g.renderer.Render(ctx, g.world, canvas)
		},
	}
}

// Run executes the main game loop at the configured tick rate until the frontend asks
// to quit or the context is cancelled.
func (g *Game) Run(ctx context.Context, fe Frontend) error {
	ticker := time.NewTicker(time.Second / time.Duration(g.cfg.TickRate))
	defer ticker.Stop()

	for {
		redraw, quit := g.Step(ctx, fe)
		if quit {
			return nil
		}
		if redraw {
			fe.Present(g.Frame(ctx))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
