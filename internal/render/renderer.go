// Package render projects the world into a first-person view, one ray per screen column.
package render

import (
	"context"
	"math"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/raycaster/internal/geometry"
	"github.com/samdwyer/raycaster/internal/ray"
	"github.com/samdwyer/raycaster/internal/rgb"
	"github.com/samdwyer/raycaster/internal/telemetry"
	"github.com/samdwyer/raycaster/internal/world"
)

// Config holds the camera and lighting parameters.
type Config struct {
	RelativeScreenSize float64   // Size of the physical display relative to one grid tile
	FocalLength        float64   // Distance from the eye to the virtual screen
	IlluminationRadius float64   // Distance at which the distance light reaches its minimum
	MinimumLight       float64   // Ambient light floor
	Ceiling            rgb.Color // Solid colour above the walls
	Floor              rgb.Color // Floor colour at the bottom edge; fades towards the horizon
}

// DefaultConfig returns the standard camera and lighting parameters.
func DefaultConfig() Config {
	return Config{
		RelativeScreenSize: 1.0,
		FocalLength:        0.75,
		IlluminationRadius: 100.0,
		MinimumLight:       0.25,
		Ceiling:            rgb.Black,
		Floor:              rgb.DarkGray,
	}
}

// Renderer draws frames of a world.
type Renderer struct {
	cfg    Config
	tracer trace.Tracer
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTracer sets the tracer used for frame spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(r *Renderer) {
		r.tracer = tracer
	}
}

// NewRenderer creates a renderer with the given parameters.
func NewRenderer(cfg Config, opts ...Option) *Renderer {
	r := &Renderer{
		cfg:    cfg,
		tracer: telemetry.Tracer("render"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Config returns the renderer's parameters.
func (r *Renderer) Config() Config {
	return r.cfg
}

// Render draws one frame of the world into the canvas, column by column.
func (r *Renderer) Render(ctx context.Context, w *world.World, canvas Canvas) {
	_, span := r.tracer.Start(ctx, "render.frame")
	defer span.End()

	width := canvas.Width()
	hits := 0
	for column := 0; column < width; column++ {
		hit := r.Cast(w, column, width)
		if hit.Kind == HitWall {
			hits++
		}
		r.DrawColumn(canvas, column, hit)
	}

	span.SetAttributes(
		attribute.Int("frame.width", width),
		attribute.Int("frame.height", canvas.Height()),
		attribute.Int("frame.wall_hits", hits),
	)
}

// RayAngle returns the angle of the ray for a column relative to the viewing direction,
// using a pinhole camera with the configured screen size and focal length.
func (r *Renderer) RayAngle(column, width int) geometry.Angle {
	relative := float64(column)/float64(width) - 0.5
	return math.Atan(relative * r.cfg.RelativeScreenSize / r.cfg.FocalLength)
}

// Cast sends the ray for one column from the player's position and returns what it hit.
// The search is bounded by the map's maximum distance.
func (r *Renderer) Cast(w *world.World, column, width int) Hit {
	relative := r.RayAngle(column, width)
	cursor := ray.New(w.Player.Position, w.Player.Direction+relative)

	limit := float64(w.Map.MaxDistance())
	// Every grid line crossed within limit costs one step, so this never cuts a cast short.
	maxSteps := 2*w.Map.MaxDistance() + 4

	for step := 0; cursor.Length <= limit && step < maxSteps; step++ {
		cursor = cursor.Grow()

		tile := w.Map.Tile(world.NewTilePosition(cursor.End, cursor.Angle))
		if !tile.IsWall() {
			continue
		}
		return r.shade(tile, cursor, relative)
	}
	return Hit{Kind: HitNone}
}

// shade builds the hit for a ray stopped by a wall tile.
func (r *Renderer) shade(tile world.Tile, cursor ray.Ray, relative geometry.Angle) Hit {
	projected := cursor.Length * math.Cos(relative)

	wallIntensity := world.LightIntensityForWall(cursor.End, cursor.Angle)
	light := math.Min(math.Max(1-projected/r.cfg.IlluminationRadius, r.cfg.MinimumLight), 1)

	return Hit{
		Kind:          HitWall,
		Base:          tile.Color(),
		Color:         tile.Color().AdjustLightIntensity(light * wallIntensity),
		RawDistance:   cursor.Length,
		Distance:      projected,
		WallIntensity: wallIntensity,
		Light:         light,
	}
}

// WallHeight returns the visible wall height as a fraction of the view height.
func WallHeight(hit Hit) float64 {
	if hit.Kind != HitWall {
		return 0
	}
	return math.Min(math.Max(1/hit.Distance, 0), 1)
}

// DrawColumn draws one column: ceiling above the wall span, the wall, and a floor
// gradient below, writing every pixel of the column once from top to bottom.
func (r *Renderer) DrawColumn(canvas Canvas, column int, hit Hit) {
	height := canvas.Height()
	span := int(float64(height) * WallHeight(hit))

	top := (height - span) / 2
	bottom := top + span

	for y := 0; y < top; y++ {
		canvas.DrawPixel(column, y, r.cfg.Ceiling)
	}
	for y := top; y < bottom; y++ {
		canvas.DrawPixel(column, y, hit.Color)
	}
	for y := bottom; y < height; y++ {
		gradient := float64(y) / float64(height)
		canvas.DrawPixel(column, y, r.cfg.Floor.AdjustLightIntensity(gradient))
	}
}
