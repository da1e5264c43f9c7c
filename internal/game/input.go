package game

// Event is a discrete lifecycle event reported by a frontend.
type Event int

const (
	// EventNone means nothing happened since the last poll.
	EventNone Event = iota
	// EventQuit asks the game to stop.
	EventQuit
	// EventResize reports that the drawing surface changed size.
	EventResize
	// EventToggleMap shows or hides the minimap overlay.
	EventToggleMap
)

// String returns a human-readable event name.
func (e Event) String() string {
	switch e {
	case EventNone:
		return "none"
	case EventQuit:
		return "quit"
	case EventResize:
		return "resize"
	case EventToggleMap:
		return "toggle_map"
	default:
		return "unknown"
	}
}

// Key is a movement key that can be held down.
type Key int

const (
	// KeyForward moves the player along its viewing direction.
	KeyForward Key = iota
	// KeyBackward moves the player against its viewing direction.
	KeyBackward
	// KeyRotateLeft turns the player by a negative angle.
	KeyRotateLeft
	// KeyRotateRight turns the player by a positive angle.
	KeyRotateRight

	keyCount = iota
)

// String returns a human-readable key name.
func (k Key) String() string {
	switch k {
	case KeyForward:
		return "forward"
	case KeyBackward:
		return "backward"
	case KeyRotateLeft:
		return "rotate_left"
	case KeyRotateRight:
		return "rotate_right"
	default:
		return "unknown"
	}
}

// Input is polled once per tick.
type Input interface {
	// PollEvent returns at most one pending lifecycle event without blocking.
	PollEvent() Event
	// PressedKeys returns the movement keys held during this tick.
	PressedKeys() []Key
}

// Frontend is an input source that can also present frames.
type Frontend interface {
	Input
	Present(frame Frame)
}
