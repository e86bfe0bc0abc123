// Package app wires one frame: host input into the game state, the scene
// through the software renderer, then the chat overlay.
package app

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"

	"chatscene/game"
	"chatscene/hal"
	"chatscene/overlay"
	"chatscene/render"
	"chatscene/scene"
)

// Config is what New needs beyond the HAL.
type Config struct {
	Game  game.Settings
	Scene scene.Scene
	// ExitOnPanic makes Step return the recovered panic as an error instead
	// of leaving the panic screen up.
	ExitOnPanic bool
}

// Settings merges scene placement into game settings.
func Settings(base game.Settings, sc scene.Scene) game.Settings {
	base.CameraStart = sc.CameraStart
	base.Cubes = append([]mgl32.Vec3(nil), sc.Cubes...)
	return base
}

// App is the per-frame loop body.
type App struct {
	h        hal.HAL
	log      zerolog.Logger
	state    *game.State
	renderer *render.Renderer
	overlay  *overlay.Overlay
	terrain  render.Mesh
	fovY     float32

	lastTick uint64
	haveTick bool

	halted      error
	exitOnPanic bool
}

// New builds the app and returns its step function for the hal runners.
func New(h hal.HAL, cfg Config) func() error {
	return NewApp(h, cfg).Step
}

// NewApp builds the app around h.
func NewApp(h hal.HAL, cfg Config) *App {
	log := h.Logger().With().Str("component", "app").Logger()

	fb := h.Display().Framebuffer()
	settings := cfg.Game
	settings.WindowSize = [2]int{fb.Width(), fb.Height()}

	r := render.NewRenderer()
	r.Light = render.Light{Ambient: cfg.Scene.Ambient, Diffuse: cfg.Scene.Diffuse, Pos: cfg.Scene.LightPos}

	a := &App{
		h:           h,
		log:         log,
		state:       game.NewState(settings, h.Logger()),
		renderer:    r,
		overlay:     overlay.New(),
		terrain:     render.Terrain(cfg.Scene.TerrainSize, render.NoiseHeight(cfg.Scene.TerrainSeed, 1.5)),
		fovY:        mgl32.DegToRad(60),
		exitOnPanic: cfg.ExitOnPanic,
	}
	log.Info().
		Int("cubes", len(settings.Cubes)).
		Int("terrain", cfg.Scene.TerrainSize).
		Int("channels", len(a.state.Chat.Channels())).
		Msg("scene ready")
	return a
}

// State exposes the game state; tests and tools inspect it.
func (a *App) State() *game.State { return a.state }

// Step runs one frame. It returns hal.ErrStop once the game asks to quit.
func (a *App) Step() (err error) {
	if a.halted != nil {
		if a.exitOnPanic {
			return a.halted
		}
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = a.panicked(r, debug.Stack())
		}
	}()

	a.state.Update(a.drainInput())
	if a.state.Quit {
		a.log.Info().Msg("quit requested")
		return hal.ErrStop
	}
	return a.draw()
}

// drainInput collects everything queued since the last frame without
// blocking.
func (a *App) drainInput() game.Input {
	var in game.Input
	if input := a.h.Input(); input != nil {
		if kbd := input.Keyboard(); kbd != nil {
			in.Keys = drain(kbd.Events())
		}
		if m := input.Mouse(); m != nil {
			in.Cursor = drain(m.Events())
		}
	}
	if t := a.h.Time(); t != nil {
		for _, seq := range drain(t.Ticks()) {
			if a.haveTick && seq > a.lastTick {
				in.Delta += time.Duration(seq-a.lastTick) * time.Millisecond
			}
			a.lastTick = seq
			a.haveTick = true
		}
	}
	return in
}

func drain[T any](ch <-chan T) []T {
	var out []T
	for {
		select {
		case v := <-ch:
			out = append(out, v)
		default:
			return out
		}
	}
}

func (a *App) draw() error {
	fb := a.h.Display().Framebuffer()
	w, h := fb.Width(), fb.Height()

	for _, m := range a.state.Models {
		a.renderer.Submit(render.Draw{
			Kind:  render.KindColorCube,
			Model: render.Model(m.Translation, m.Rotation, m.Scale),
		})
	}
	a.renderer.Submit(render.Draw{
		Kind:  render.KindTerrain,
		Model: render.Model(mgl32.Vec3{0, -2, -6}, mgl32.QuatIdent(), mgl32.Vec3{8, 1, 8}),
		Mesh:  &a.terrain,
	})

	target := &render.RGB565Target{Buf: fb.Buffer(), Stride: fb.StrideBytes(), W: w, H: h}
	proj := render.Perspective(a.fovY, float32(w)/float32(h), 0.1, 100)
	a.renderer.Render(target, a.state.Player.Camera.View(), proj)

	a.overlay.Draw(fb, a.state)

	if err := fb.Present(); err != nil {
		return fmt.Errorf("present: %w", err)
	}
	return nil
}
