// Package window presents the game in a desktop window using ebiten.
package window

import (
	"context"
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/samdwyer/raycaster/internal/game"
	"github.com/samdwyer/raycaster/internal/render"
)

const (
	title       = "raycaster"
	minimapCell = 4 // Pixels per tile on the minimap
)

// keyBindings maps held keyboard keys to movement keys.
var keyBindings = []struct {
	key  ebiten.Key
	move game.Key
}{
	{ebiten.KeyArrowUp, game.KeyForward},
	{ebiten.KeyW, game.KeyForward},
	{ebiten.KeyArrowDown, game.KeyBackward},
	{ebiten.KeyS, game.KeyBackward},
	{ebiten.KeyArrowLeft, game.KeyRotateLeft},
	{ebiten.KeyA, game.KeyRotateLeft},
	{ebiten.KeyArrowRight, game.KeyRotateRight},
	{ebiten.KeyD, game.KeyRotateRight},
}

// Window adapts a game to ebiten's update/draw loop. It is both the game's input and
// its frontend: ebiten calls Update once per tick, which steps the game.
type Window struct {
	ctx   context.Context
	game  *game.Game
	scale int

	buf     *render.Buffer
	img     *ebiten.Image
	status  string
	resized bool

	// Keyboard state, replaceable for tests.
	isKeyPressed     func(ebiten.Key) bool
	isKeyJustPressed func(ebiten.Key) bool
}

// New creates a window frontend for the game. Each rendered pixel covers scale x scale
// window pixels.
func New(ctx context.Context, g *game.Game, scale int) *Window {
	return &Window{
		ctx:              ctx,
		game:             g,
		scale:            max(scale, 1),
		buf:              render.NewBuffer(0, 0),
		isKeyPressed:     ebiten.IsKeyPressed,
		isKeyJustPressed: inpututil.IsKeyJustPressed,
	}
}

// Run opens the window and blocks until the game quits, the window is closed or the
// context is cancelled.
func Run(ctx context.Context, g *game.Game, cfg game.Config) error {
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TickRate)

	err := ebiten.RunGame(New(ctx, g, cfg.Scale))
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// PollEvent reports Escape as quit, a changed layout as resize and M as a map toggle.
func (w *Window) PollEvent() game.Event {
	switch {
	case w.isKeyPressed(ebiten.KeyEscape):
		return game.EventQuit
	case w.resized:
		w.resized = false
		return game.EventResize
	case w.isKeyJustPressed(ebiten.KeyM):
		return game.EventToggleMap
	default:
		return game.EventNone
	}
}

// PressedKeys returns the movement keys currently held down.
func (w *Window) PressedKeys() []game.Key {
	var keys []game.Key
	for _, b := range keyBindings {
		if w.isKeyPressed(b.key) {
			keys = append(keys, b.move)
		}
	}
	return keys
}

// Present renders the frame into the pixel buffer shown by Draw.
func (w *Window) Present(frame game.Frame) {
	frame.Render(w.buf)
	if frame.ShowMap {
		drawMinimap(w.buf, frame.World, minimapCell)
	}
	w.status = frame.Status
}

// Update implements ebiten.Game.
func (w *Window) Update() error {
	if w.ctx.Err() != nil {
		return ebiten.Termination
	}
	redraw, quit := w.game.Step(w.ctx, w)
	if quit {
		return ebiten.Termination
	}
	if redraw {
		w.Present(w.game.Frame(w.ctx))
	}
	return nil
}

// Draw implements ebiten.Game.
func (w *Window) Draw(screen *ebiten.Image) {
	width, height := w.buf.Width(), w.buf.Height()
	if width == 0 || height == 0 {
		return
	}
	if w.img == nil || w.img.Bounds().Dx() != width || w.img.Bounds().Dy() != height {
		if w.img != nil {
			w.img.Deallocate()
		}
		w.img = ebiten.NewImage(width, height)
	}
	w.img.WritePixels(w.buf.Pix())
	screen.DrawImage(w.img, nil)
	ebitenutil.DebugPrintAt(screen, w.status, 4, height-16)
}

// Layout implements ebiten.Game. The logical screen is the window size divided by the
// scale; a change of size is reported as a resize event on the next poll.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	width := max(outsideWidth/w.scale, 1)
	height := max(outsideHeight/w.scale, 1)
	if w.buf.Resize(width, height) {
		w.resized = true
	}
	return width, height
}
