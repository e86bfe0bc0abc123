package overlay

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"chatscene/hal"
)

var (
	colorPanicBG    = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorPanicFG    = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff}
	colorPanicTitle = color.RGBA{R: 0xb0, G: 0x20, B: 0x20, A: 0xff}
)

// PanicLines is the text of the panic screen before wrapping.
func PanicLines(value any, stack []byte) []string {
	lines := []string{fmt.Sprintf("panic: %v", value)}
	if len(stack) == 0 {
		return append(lines, "stack: unavailable")
	}
	lines = append(lines, "stack:")
	for _, line := range strings.Split(string(stack), "\n") {
		if line == "" {
			continue
		}
		lines = append(lines, strings.ReplaceAll(line, "\t", "  "))
	}
	return lines
}

// DrawPanic replaces the frame with the panic message and as much of the
// stack as fits.
func (o *Overlay) DrawPanic(fb hal.Framebuffer, value any, stack []byte) {
	if fb == nil {
		return
	}
	d := newFBDisplay(fb)
	w, h := fb.Width(), fb.Height()

	fill(d, image.Rect(0, 0, w, h), colorPanicBG)
	fill(d, image.Rect(0, 0, w, o.lineH+2), colorPanicTitle)
	o.text(d, 4, 1, "chatscene panic", colorFG)

	y := o.lineH + 4
	for _, line := range PanicLines(value, stack) {
		for _, row := range Wrap(line, w-8, o.Measure) {
			if y+o.lineH > h {
				_ = fb.Present()
				return
			}
			o.text(d, 4, y, row, colorPanicFG)
			y += o.lineH
		}
	}
	_ = fb.Present()
}
