package app

import "fmt"

// panicked logs a recovered frame panic, paints it over the framebuffer and
// halts the app.
func (a *App) panicked(value any, stack []byte) error {
	err := fmt.Errorf("frame panic: %v", value)
	a.halted = err

	a.log.Error().Interface("panic", value).Str("stack", string(stack)).Msg("frame panicked")

	if disp := a.h.Display(); disp != nil {
		a.overlay.DrawPanic(disp.Framebuffer(), value, stack)
	}
	if a.exitOnPanic {
		return err
	}
	return nil
}
