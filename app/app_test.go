package app

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatscene/game"
	"chatscene/hal"
	"chatscene/scene"
)

type fakeHAL struct {
	fb    hal.Framebuffer
	keys  chan hal.KeyEvent
	mouse chan hal.CursorEvent
	ticks chan uint64
}

func newFakeHAL() *fakeHAL {
	return &fakeHAL{
		fb:    hal.New(hal.Options{Width: 160, Height: 120, Logger: zerolog.Nop()}).Display().Framebuffer(),
		keys:  make(chan hal.KeyEvent, 64),
		mouse: make(chan hal.CursorEvent, 64),
		ticks: make(chan uint64, 64),
	}
}

func (h *fakeHAL) Logger() zerolog.Logger { return zerolog.Nop() }
func (h *fakeHAL) Display() hal.Display   { return h }
func (h *fakeHAL) Input() hal.Input       { return h }
func (h *fakeHAL) Time() hal.Time         { return h }

func (h *fakeHAL) Framebuffer() hal.Framebuffer { return h.fb }
func (h *fakeHAL) Keyboard() hal.Keyboard       { return keyboard(h.keys) }
func (h *fakeHAL) Mouse() hal.Mouse             { return mouse(h.mouse) }
func (h *fakeHAL) Ticks() <-chan uint64         { return h.ticks }

type keyboard chan hal.KeyEvent

func (k keyboard) Events() <-chan hal.KeyEvent { return k }

type mouse chan hal.CursorEvent

func (m mouse) Events() <-chan hal.CursorEvent { return m }

func newTestApp(t *testing.T, exitOnPanic bool) (*App, *fakeHAL) {
	t.Helper()
	h := newFakeHAL()
	sc := scene.Default()
	sc.TerrainSize = 4
	a := NewApp(h, Config{
		Game:        Settings(game.DefaultSettings(), sc),
		Scene:       sc,
		ExitOnPanic: exitOnPanic,
	})
	return a, h
}

func TestStepRendersFrame(t *testing.T) {
	a, h := newTestApp(t, false)
	require.NoError(t, a.Step())

	nonZero := 0
	for _, b := range h.fb.Buffer() {
		if b != 0 {
			nonZero++
		}
	}
	assert.Positive(t, nonZero)
	assert.Equal(t, [2]int{160, 120}, a.State().WindowSize)
	for _, m := range a.State().Models {
		assert.Equal(t, float32(1), m.Count)
	}
}

func TestStepStopsOnEscape(t *testing.T) {
	a, h := newTestApp(t, false)
	h.keys <- hal.KeyEvent{Code: hal.KeyEscape, Press: true}
	err := a.Step()
	assert.ErrorIs(t, err, hal.ErrStop)
}

func TestStepTicksDriveFramerate(t *testing.T) {
	a, h := newTestApp(t, false)
	h.ticks <- 1
	require.NoError(t, a.Step())
	assert.Zero(t, a.State().Framerate)

	for seq := uint64(2); seq <= 21; seq++ {
		h.ticks <- seq
	}
	require.NoError(t, a.Step())
	assert.InDelta(t, 50, a.State().Framerate, 1e-6)
}

func TestStepChatRoundTrip(t *testing.T) {
	a, h := newTestApp(t, false)
	h.keys <- hal.KeyEvent{Code: hal.KeyEnter}
	for _, r := range "gg" {
		h.keys <- hal.KeyEvent{Press: true, Rune: r}
	}
	h.keys <- hal.KeyEvent{Code: hal.KeyEnter, Press: true}
	require.NoError(t, a.Step())

	var last string
	for m := range a.State().Chat.History() {
		last = m.String()
	}
	assert.Equal(t, "You: gg", last)
}

func TestStepMouseLook(t *testing.T) {
	a, h := newTestApp(t, false)
	h.mouse <- hal.CursorEvent{X: 10, Y: 10}
	h.mouse <- hal.CursorEvent{X: 10, Y: 40}
	require.NoError(t, a.Step())
	_, pitch, _ := a.State().Player.Camera.Angles()
	assert.InDelta(t, 30*0.002, pitch, 1e-6)
}

func TestStepRecoversPanic(t *testing.T) {
	a, _ := newTestApp(t, false)
	a.State().Chat = nil

	require.NoError(t, a.Step())
	require.Error(t, a.halted)
	assert.Contains(t, a.halted.Error(), "frame panic")

	// Halted: later frames do nothing.
	require.NoError(t, a.Step())
}

func TestStepExitOnPanic(t *testing.T) {
	a, _ := newTestApp(t, true)
	a.State().Chat = nil

	err := a.Step()
	require.Error(t, err)
	assert.False(t, errors.Is(err, hal.ErrStop))
	assert.Equal(t, err, a.Step())
}

func TestSettingsFromScene(t *testing.T) {
	sc := scene.Default()
	sc.CameraStart = mgl32.Vec3{1, 2, 3}
	sc.Cubes = []mgl32.Vec3{{4, 5, 6}}
	got := Settings(game.DefaultSettings(), sc)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, got.CameraStart)
	assert.Equal(t, []mgl32.Vec3{{4, 5, 6}}, got.Cubes)

	sc.Cubes[0] = mgl32.Vec3{}
	assert.Equal(t, mgl32.Vec3{4, 5, 6}, got.Cubes[0])
}
