package render

import "image/color"

// Target is a minimal pixel target for software rendering.
//
// Implementations should clip out-of-bounds coordinates.
type Target interface {
	Size() (w, h int)
	SetPixel(x, y int, c color.RGBA)
	Clear(c color.RGBA)
}

// RGB565Target renders into an RGB565 pixel buffer with the given stride.
type RGB565Target struct {
	Buf    []byte
	Stride int // bytes per row
	W      int
	H      int
}

func (t *RGB565Target) Size() (w, h int) { return t.W, t.H }

func (t *RGB565Target) ok() bool {
	return t != nil && t.Buf != nil && t.Stride > 0 && t.W > 0 && t.H > 0
}

func (t *RGB565Target) Clear(c color.RGBA) {
	if !t.ok() {
		return
	}
	p := RGB565(c.R, c.G, c.B)
	lo, hi := byte(p), byte(p>>8)
	for y := 0; y < t.H; y++ {
		row := y * t.Stride
		for x := 0; x < t.W; x++ {
			off := row + x*2
			if off+1 >= len(t.Buf) {
				return
			}
			t.Buf[off] = lo
			t.Buf[off+1] = hi
		}
	}
}

func (t *RGB565Target) SetPixel(x, y int, c color.RGBA) {
	if !t.ok() || x < 0 || y < 0 || x >= t.W || y >= t.H {
		return
	}
	off := y*t.Stride + x*2
	if off+1 >= len(t.Buf) {
		return
	}
	p := RGB565(c.R, c.G, c.B)
	t.Buf[off] = byte(p)
	t.Buf[off+1] = byte(p >> 8)
}

// RGB565 packs 8-bit channels as rrrrrggggggbbbbb.
func RGB565(r, g, b uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}

// MemTarget is an RGBA target backed by a slice; tests and offscreen
// rendering use it.
type MemTarget struct {
	W, H int
	Pix  []color.RGBA
}

func NewMemTarget(w, h int) *MemTarget {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &MemTarget{W: w, H: h, Pix: make([]color.RGBA, w*h)}
}

func (t *MemTarget) Size() (w, h int) { return t.W, t.H }

func (t *MemTarget) Clear(c color.RGBA) {
	for i := range t.Pix {
		t.Pix[i] = c
	}
}

func (t *MemTarget) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= t.W || y >= t.H {
		return
	}
	t.Pix[y*t.W+x] = c
}

func (t *MemTarget) At(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= t.W || y >= t.H {
		return color.RGBA{}
	}
	return t.Pix[y*t.W+x]
}
