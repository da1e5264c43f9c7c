// Package main is the entry point for the raycaster.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/samdwyer/raycaster/internal/game"
	"github.com/samdwyer/raycaster/internal/palette"
	"github.com/samdwyer/raycaster/internal/render"
	"github.com/samdwyer/raycaster/internal/telemetry"
	"github.com/samdwyer/raycaster/internal/ui"
	"github.com/samdwyer/raycaster/internal/window"
	"github.com/samdwyer/raycaster/internal/world"
)

// options are command line settings that are not part of the game configuration.
type options struct {
	snapshot string // Write one frame to this PNG file and exit
}

func main() {
	// Load .env file for local development
	// This makes RAYCASTER_* and RAYCASTER_HONEYCOMB_API_KEY available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := game.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	cfg, opts, err := parseFlags(os.Args[1:], cfg)
	if err != nil {
		log.Fatalf("Invalid arguments: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if telemetryEnabled(cfg) {
		// Set up OTEL environment variables from our .env variables
		setupOTelEnv()

		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			log.Printf("Warning: telemetry setup failed: %v", err)
			log.Printf("Raycaster will run without observability")
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					log.Printf("Error shutting down telemetry: %v", err)
				}
			}()
		}
	}

	if err := run(ctx, cfg, opts); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Raycaster error: %v", err)
	}
}

// run builds the world and hands it to the selected frontend.
func run(ctx context.Context, cfg game.Config, opts options) error {
	pal, err := palette.Default()
	if err != nil {
		return err
	}
	cfg.Render.Ceiling = pal.Ceiling()
	cfg.Render.Floor = pal.Floor()

	w, err := game.LoadWorld(ctx, cfg, pal)
	if err != nil {
		return fmt.Errorf("failed to initialize world: %w", err)
	}
	renderer := render.NewRenderer(cfg.Render)

	if opts.snapshot != "" {
		return writeSnapshot(ctx, renderer, w, cfg.Width, cfg.Height, opts.snapshot)
	}

	g := game.New(cfg, w, renderer)
	switch cfg.Backend {
	case game.BackendWindow:
		return window.Run(ctx, g, cfg)
	default:
		term, err := ui.NewTerminal()
		if err != nil {
			return fmt.Errorf("failed to open terminal: %w", err)
		}
		defer term.Close()
		return g.Run(ctx, term)
	}
}

// parseFlags applies command line flags on top of cfg.
func parseFlags(args []string, cfg game.Config) (game.Config, options, error) {
	var opts options
	fs := flag.NewFlagSet("raycaster", flag.ContinueOnError)
	fs.StringVar(&cfg.MapPath, "map", cfg.MapPath, "map text file to load")
	fs.BoolVar(&cfg.Generate, "generate", cfg.Generate, "generate a random map")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "seed for map generation (0 = random)")
	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "frontend: terminal or window")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "window and snapshot width in pixels")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "window and snapshot height in pixels")
	fs.IntVar(&cfg.Scale, "scale", cfg.Scale, "window pixels per rendered pixel")
	fs.BoolVar(&cfg.Telemetry, "telemetry", cfg.Telemetry, "export traces over OTLP")
	fs.StringVar(&opts.snapshot, "snapshot", "", "render one frame to a PNG file and exit")

	if err := fs.Parse(args); err != nil {
		return cfg, opts, err
	}
	if fs.NArg() > 0 {
		return cfg, opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return cfg, opts, cfg.Validate()
}

// writeSnapshot renders a single frame of the world to a PNG file.
func writeSnapshot(ctx context.Context, renderer *render.Renderer, w *world.World, width, height int, path string) error {
	buf := render.NewBuffer(width, height)
	renderer.Render(ctx, w, buf)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}
	if err := buf.WritePNG(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	log.Printf("Wrote %dx%d snapshot to %s", width, height, path)
	return nil
}

// telemetryEnabled reports whether traces should be exported: explicitly, or because an
// exporter endpoint or Honeycomb key is configured.
func telemetryEnabled(cfg game.Config) bool {
	return cfg.Telemetry ||
		os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != "" ||
		os.Getenv("RAYCASTER_HONEYCOMB_API_KEY") != ""
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	// Endpoint defaults to Honeycomb unless one is configured explicitly
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}

	// Build headers from our API key - the .env file may have an unexpanded
	// variable reference that doesn't work, so we construct it properly here
	apiKey := os.Getenv("RAYCASTER_HONEYCOMB_API_KEY")
	dataset := os.Getenv("RAYCASTER_HONEYCOMB_DATASET")
	if dataset == "" {
		dataset = "raycaster" // default dataset name
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
