package overlay

import (
	"image/color"

	"chatscene/hal"

	"tinygo.org/x/drivers"
)

// fbDisplay adapts an RGB565 framebuffer to drivers.Displayer so tinyfont
// can draw on it. Pixels with alpha below 0xFF are blended.
type fbDisplay struct {
	fb hal.Framebuffer
}

func newFBDisplay(fb hal.Framebuffer) *fbDisplay {
	return &fbDisplay{fb: fb}
}

func (d *fbDisplay) ok() bool {
	return d.fb != nil && d.fb.Format() == hal.PixelFormatRGB565 && d.fb.Buffer() != nil
}

func (d *fbDisplay) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *fbDisplay) offset(x, y int) (int, bool) {
	if x < 0 || x >= d.fb.Width() || y < 0 || y >= d.fb.Height() {
		return 0, false
	}
	off := y*d.fb.StrideBytes() + x*2
	if off < 0 || off+1 >= len(d.fb.Buffer()) {
		return 0, false
	}
	return off, true
}

func (d *fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	if !d.ok() || c.A == 0 {
		return
	}
	off, ok := d.offset(int(x), int(y))
	if !ok {
		return
	}
	buf := d.fb.Buffer()
	if c.A != 0xFF {
		c = blend(hal.Unpack565(hal.Load565(buf, off)), c)
	}
	hal.Store565(buf, off, hal.Pack565(c))
}

// at reads back a pixel; tests use it.
func (d *fbDisplay) at(x, y int) color.RGBA {
	if !d.ok() {
		return color.RGBA{}
	}
	off, ok := d.offset(x, y)
	if !ok {
		return color.RGBA{}
	}
	return hal.Unpack565(hal.Load565(d.fb.Buffer(), off))
}

func (d *fbDisplay) Display() error {
	if d.fb == nil {
		return nil
	}
	return d.fb.Present()
}

func (d *fbDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if !d.ok() || c.A == 0 {
		return nil
	}
	w := d.fb.Width()
	h := d.fb.Height()

	x0 := clampInt(int(x), 0, w)
	y0 := clampInt(int(y), 0, h)
	x1 := clampInt(int(x)+int(width), 0, w)
	y1 := clampInt(int(y)+int(height), 0, h)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	if c.A != 0xFF {
		for py := y0; py < y1; py++ {
			for px := x0; px < x1; px++ {
				d.SetPixel(int16(px), int16(py), c)
			}
		}
		return nil
	}

	pixel := hal.Pack565(c)

	buf := d.fb.Buffer()
	stride := d.fb.StrideBytes()
	for py := y0; py < y1; py++ {
		row := py * stride
		for px := x0; px < x1; px++ {
			off := row + px*2
			if off < 0 || off+1 >= len(buf) {
				continue
			}
			hal.Store565(buf, off, pixel)
		}
	}
	return nil
}

// strokeRectangle draws a one pixel outline.
func (d *fbDisplay) strokeRectangle(x, y, width, height int16, c color.RGBA) {
	if width <= 0 || height <= 0 {
		return
	}
	_ = d.FillRectangle(x, y, width, 1, c)
	_ = d.FillRectangle(x, y+height-1, width, 1, c)
	_ = d.FillRectangle(x, y, 1, height, c)
	_ = d.FillRectangle(x+width-1, y, 1, height, c)
}

func (d *fbDisplay) SetRotation(rotation drivers.Rotation) error {
	_ = rotation
	return nil
}

// blend draws src over dst using src alpha.
func blend(dst, src color.RGBA) color.RGBA {
	a := uint32(src.A)
	mix := func(d, s uint8) uint8 {
		return uint8((uint32(s)*a + uint32(d)*(255-a) + 127) / 255)
	}
	return color.RGBA{R: mix(dst.R, src.R), G: mix(dst.G, src.G), B: mix(dst.B, src.B), A: 0xFF}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
