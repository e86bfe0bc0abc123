package hal

import "image/color"

// Pack565 encodes c as a little-endian RGB565 pixel value. Alpha is dropped.
func Pack565(c color.RGBA) uint16 {
	return uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
}

// Unpack565 expands an RGB565 pixel to opaque 8-bit RGBA.
func Unpack565(p uint16) color.RGBA {
	r := (p >> 11) & 0x1F
	g := (p >> 5) & 0x3F
	b := p & 0x1F
	return color.RGBA{R: uint8(r * 255 / 31), G: uint8(g * 255 / 63), B: uint8(b * 255 / 31), A: 0xFF}
}

// Load565 reads the pixel at byte offset off of an RGB565 buffer.
func Load565(buf []byte, off int) uint16 {
	return uint16(buf[off]) | uint16(buf[off+1])<<8
}

// Store565 writes p at byte offset off of an RGB565 buffer.
func Store565(buf []byte, off int, p uint16) {
	buf[off] = byte(p)
	buf[off+1] = byte(p >> 8)
}
