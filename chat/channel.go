package chat

import "image/color"

// ChannelID identifies a channel for the lifetime of a session.
type ChannelID int

// AllChannels is the display wildcard: a view filtered on it shows every
// message regardless of its channel. It is an ordinary id as far as the
// registry is concerned.
const AllChannels ChannelID = 0

// Color is a linear RGBA colour with channels in 0..1.
type Color struct {
	R, G, B, A float32
}

func RGBA(r, g, b, a float32) Color { return Color{R: r, G: g, B: b, A: a} }

// RGBA8 converts the colour to 8-bit channels, clamping out-of-range values.
func (c Color) RGBA8() color.RGBA {
	return color.RGBA{R: unit8(c.R), G: unit8(c.G), B: unit8(c.B), A: unit8(c.A)}
}

func unit8(v float32) uint8 {
	if v <= 0 || v != v {
		return 0
	}
	if v >= 1 {
		return 0xFF
	}
	return uint8(v*255 + 0.5)
}

// Channel is a named, coloured message category.
type Channel struct {
	ID        ChannelID
	Name      string
	TextColor Color
}

// ChannelName is a channel's display name and colour, as listed by menus.
type ChannelName struct {
	Name      string
	TextColor Color
}
