//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Held keys repeat after this many frames, then on every frame.
const repeatDelayFrames = 1

var keyMap = []struct {
	key  ebiten.Key
	code KeyCode
	// repeat keys keep emitting presses while held.
	repeat bool
}{
	{ebiten.KeyArrowUp, KeyUp, true},
	{ebiten.KeyArrowDown, KeyDown, true},
	{ebiten.KeyArrowLeft, KeyLeft, true},
	{ebiten.KeyArrowRight, KeyRight, true},
	{ebiten.KeyW, KeyW, true},
	{ebiten.KeyA, KeyA, true},
	{ebiten.KeyS, KeyS, true},
	{ebiten.KeyD, KeyD, true},
	{ebiten.KeySpace, KeySpace, true},
	{ebiten.KeyC, KeyC, true},
	{ebiten.KeyEnter, KeyEnter, false},
	{ebiten.KeyNumpadEnter, KeyEnter, false},
	{ebiten.KeyEscape, KeyEscape, false},
	{ebiten.KeyBackspace, KeyBackspace, true},
	{ebiten.KeyTab, KeyTab, false},
	{ebiten.KeyF1, KeyF1, false},
	{ebiten.KeyF2, KeyF2, false},
	{ebiten.KeyF3, KeyF3, false},
	{ebiten.KeyF4, KeyF4, false},
}

func pollKeyboard(k *hostKeyboard) {
	for _, r := range ebiten.AppendInputChars(nil) {
		k.push(KeyEvent{Press: true, Rune: r})
	}

	for _, m := range keyMap {
		switch {
		case inpututil.IsKeyJustPressed(m.key):
			k.push(KeyEvent{Code: m.code, Press: true})
		case inpututil.IsKeyJustReleased(m.key):
			k.push(KeyEvent{Code: m.code, Press: false})
		case m.repeat && inpututil.KeyPressDuration(m.key) > repeatDelayFrames:
			k.push(KeyEvent{Code: m.code, Press: true, Repeat: true})
		}
	}
}

func pollMouse(m *hostMouse) {
	x, y := ebiten.CursorPosition()
	m.moveTo(float32(x), float32(y))
}
