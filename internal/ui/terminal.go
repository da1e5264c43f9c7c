package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/raycaster/internal/game"
	"github.com/samdwyer/raycaster/internal/render"
)

const statusHelp = "  [arrows/wasd] move  [m] map  [q] quit"

// Terminal is a game frontend drawing into a tcell screen.
//
// Terminals report key presses but not releases, so a key counts as held during a tick
// when at least one event for it arrived since the previous tick.
type Terminal struct {
	screen  *Screen
	events  chan tcell.Event
	done    chan struct{}
	pending []game.Key
	buf     *render.Buffer
}

// NewTerminal opens the terminal screen and starts reading its events.
func NewTerminal() (*Terminal, error) {
	screen, err := NewScreen()
	if err != nil {
		return nil, err
	}

	t := &Terminal{
		screen: screen,
		events: make(chan tcell.Event, 64),
		done:   make(chan struct{}),
		buf:    render.NewBuffer(0, 0),
	}
	go t.pump()
	return t, nil
}

// pump forwards blocking screen events to the channel polled by the game loop.
func (t *Terminal) pump() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case t.events <- ev:
		case <-t.done:
			return
		}
	}
}

// Close restores the terminal.
func (t *Terminal) Close() {
	close(t.done)
	t.screen.Close()
}

// PollEvent drains queued terminal events without blocking. Movement keys are collected
// for PressedKeys; the first lifecycle event found is returned.
func (t *Terminal) PollEvent() game.Event {
	for {
		select {
		case ev := <-t.events:
			if _, ok := ev.(*tcell.EventResize); ok {
				t.screen.Sync()
			}
			event, key, isKey := translate(ev)
			if isKey {
				t.pending = append(t.pending, key)
			}
			if event != game.EventNone {
				return event
			}
		default:
			return game.EventNone
		}
	}
}

// PressedKeys returns the movement keys received since the last call. A key repeated by
// the terminal appears once per event.
func (t *Terminal) PressedKeys() []game.Key {
	keys := t.pending
	t.pending = nil
	return keys
}

// Present draws the view with half-block cells, the optional minimap and a status line
// on the bottom row.
func (t *Terminal) Present(frame game.Frame) {
	width, height := t.screen.Size()
	view := max(height-1, 0)

	t.buf.Resize(width, view*2)
	frame.Render(t.buf)
	drawHalfBlocks(t.screen, t.buf)

	if frame.ShowMap {
		drawMinimap(t.screen, frame.World, width, view)
	}
	drawStatus(t.screen, frame.Status+statusHelp, view, width)
	t.screen.Show()
}

// translate maps a terminal event to a lifecycle event or a movement key.
func translate(ev tcell.Event) (event game.Event, key game.Key, isKey bool) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		return game.EventResize, 0, false
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return game.EventQuit, 0, false
		case tcell.KeyUp:
			return game.EventNone, game.KeyForward, true
		case tcell.KeyDown:
			return game.EventNone, game.KeyBackward, true
		case tcell.KeyLeft:
			return game.EventNone, game.KeyRotateLeft, true
		case tcell.KeyRight:
			return game.EventNone, game.KeyRotateRight, true
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return game.EventQuit, 0, false
			case 'm', 'M':
				return game.EventToggleMap, 0, false
			case 'w', 'W':
				return game.EventNone, game.KeyForward, true
			case 's', 'S':
				return game.EventNone, game.KeyBackward, true
			case 'a', 'A':
				return game.EventNone, game.KeyRotateLeft, true
			case 'd', 'D':
				return game.EventNone, game.KeyRotateRight, true
			}
		}
	}
	return game.EventNone, 0, false
}
