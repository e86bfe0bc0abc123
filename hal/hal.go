package hal

import (
	"errors"

	"github.com/rs/zerolog"
)

// ErrStop is returned by a step function to end the run loop cleanly.
var ErrStop = errors.New("stop requested")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyTab
	KeyW
	KeyA
	KeyS
	KeyD
	KeySpace
	KeyC
	KeyF1
	KeyF2
	KeyF3
	KeyF4
)

func (k KeyCode) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyEnter:
		return "enter"
	case KeyEscape:
		return "escape"
	case KeyBackspace:
		return "backspace"
	case KeyTab:
		return "tab"
	case KeyW:
		return "w"
	case KeyA:
		return "a"
	case KeyS:
		return "s"
	case KeyD:
		return "d"
	case KeySpace:
		return "space"
	case KeyC:
		return "c"
	case KeyF1:
		return "f1"
	case KeyF2:
		return "f2"
	case KeyF3:
		return "f3"
	case KeyF4:
		return "f4"
	default:
		return "unknown"
	}
}

// KeyEvent is a keyboard event. A zero Code with a non-zero Rune is typed
// text. Repeat marks a press generated while the key is held.
type KeyEvent struct {
	Code   KeyCode
	Press  bool
	Repeat bool
	Rune   rune
}

// CursorEvent reports the cursor position in framebuffer pixels.
type CursorEvent struct {
	X, Y float32
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// Mouse provides cursor movement events.
type Mouse interface {
	Events() <-chan CursorEvent
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
	Mouse() Mouse
}

// Time provides a base tick stream of one tick per millisecond.
type Time interface {
	Ticks() <-chan uint64
}

// HAL is the only contact point between the app and the host.
type HAL interface {
	Logger() zerolog.Logger
	Display() Display
	Input() Input
	Time() Time
}
