package game

import (
	"fmt"
	"os"
	"strconv"

	"github.com/samdwyer/raycaster/internal/geometry"
	"github.com/samdwyer/raycaster/internal/render"
	"github.com/samdwyer/raycaster/internal/world"
)

// Backend names accepted by Config.Backend.
const (
	BackendTerminal = "terminal"
	BackendWindow   = "window"
)

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible map generation.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	// MapPath is a map text file to load. Empty means the embedded default map.
	MapPath string
	// Generate replaces the map with a procedurally generated one.
	Generate bool

	// Backend selects the frontend: "terminal" or "window".
	Backend string
	// Width and Height size the window and snapshot images in pixels.
	Width, Height int
	// Scale is the number of window pixels per rendered pixel.
	Scale int

	// Start is the player's initial position and direction on a loaded map.
	Start world.Player

	MovementSpeed float64 // Grid units per tick while a move key is held
	RotationSpeed float64 // Radians per tick while a rotate key is held
	TickRate      int     // Ticks per second

	Render render.Config

	// Telemetry enables OpenTelemetry export.
	Telemetry bool
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Backend:       BackendTerminal,
		Width:         800,
		Height:        600,
		Scale:         2,
		Start:         world.Player{Position: geometry.Point{X: 4.5, Y: 5.5}, Direction: 0},
		MovementSpeed: 0.2,
		RotationSpeed: 0.05,
		TickRate:      60,
		Render:        render.DefaultConfig(),
	}
}

// LoadConfig returns the default configuration overridden by RAYCASTER_* environment
// variables.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	str := func(name string, dst *string) {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			*dst = v
		}
	}
	var errs []error
	num := func(name string, dst *float64) {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				return
			}
			*dst = f
		}
	}
	integer := func(name string, dst *int) {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				return
			}
			*dst = n
		}
	}
	int64Var := func(name string, dst *int64) {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				return
			}
			*dst = n
		}
	}
	flag := func(name string, dst *bool) {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				return
			}
			*dst = b
		}
	}

	int64Var("RAYCASTER_SEED", &cfg.Seed)
	str("RAYCASTER_MAP", &cfg.MapPath)
	flag("RAYCASTER_GENERATE", &cfg.Generate)
	str("RAYCASTER_BACKEND", &cfg.Backend)
	integer("RAYCASTER_WIDTH", &cfg.Width)
	integer("RAYCASTER_HEIGHT", &cfg.Height)
	integer("RAYCASTER_SCALE", &cfg.Scale)
	num("RAYCASTER_START_X", &cfg.Start.Position.X)
	num("RAYCASTER_START_Y", &cfg.Start.Position.Y)
	num("RAYCASTER_START_DIRECTION", &cfg.Start.Direction)
	num("RAYCASTER_MOVEMENT_SPEED", &cfg.MovementSpeed)
	num("RAYCASTER_ROTATION_SPEED", &cfg.RotationSpeed)
	integer("RAYCASTER_TICK_RATE", &cfg.TickRate)
	num("RAYCASTER_SCREEN_SIZE", &cfg.Render.RelativeScreenSize)
	num("RAYCASTER_FOCAL_LENGTH", &cfg.Render.FocalLength)
	num("RAYCASTER_ILLUMINATION_RADIUS", &cfg.Render.IlluminationRadius)
	num("RAYCASTER_MINIMUM_LIGHT", &cfg.Render.MinimumLight)
	flag("RAYCASTER_TELEMETRY", &cfg.Telemetry)

	if len(errs) > 0 {
		return cfg, fmt.Errorf("invalid configuration: %w", errs[0])
	}
	return cfg, cfg.Validate()
}

// Validate checks that the configuration can drive a game.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendTerminal, BackendWindow:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid size: %dx%d", c.Width, c.Height)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("invalid scale: %d", c.Scale)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("invalid tick rate: %d", c.TickRate)
	}
	if c.Render.FocalLength <= 0 {
		return fmt.Errorf("invalid focal length: %v", c.Render.FocalLength)
	}
	if c.Render.IlluminationRadius <= 0 {
		return fmt.Errorf("invalid illumination radius: %v", c.Render.IlluminationRadius)
	}
	return nil
}
