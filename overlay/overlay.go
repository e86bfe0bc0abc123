// Package overlay draws the chat UI over the rendered scene: the menu bar,
// the chat window with its channel buttons and the open dialog.
package overlay

import (
	"fmt"
	"image"
	"image/color"

	"chatscene/game"
	"chatscene/hal"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

var (
	colorBarBG     = color.RGBA{R: 0x18, G: 0x18, B: 0x18, A: 0xff}
	colorFG        = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	colorDim       = color.RGBA{R: 0x66, G: 0x66, B: 0x66, A: 0xff}
	colorPosition  = color.RGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
	colorFramerate = color.RGBA{R: 0xad, G: 0xff, B: 0x2f, A: 0xff}
	colorChatBG    = color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 0x90}
	colorInputBG   = color.RGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xd0}
	colorDialogBG  = color.RGBA{R: 0x20, G: 0x20, B: 0x24, A: 0xf0}
	colorTitleBG   = color.RGBA{R: 0x29, G: 0x4a, B: 0x7a, A: 0xff}
	colorSelected  = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorLengthFG  = color.RGBA{R: 0x00, G: 0x00, B: 0xff, A: 0xb3}
)

// Overlay draws game state onto a framebuffer. It holds only font metrics.
type Overlay struct {
	font   tinyfont.Fonter
	lineH  int
	ascent int
}

// New returns an overlay using the proggy bitmap font.
func New() *Overlay {
	f := &proggy.TinySZ8pt7b
	lh := int(f.GetYAdvance())
	if lh <= 0 {
		lh = 12
	}
	return &Overlay{font: f, lineH: lh, ascent: lh - lh/4}
}

// LineHeight is the text line advance in pixels.
func (o *Overlay) LineHeight() int { return o.lineH }

// Measure returns the drawn width of s.
func (o *Overlay) Measure(s string) int {
	_, w := tinyfont.LineWidth(o.font, s)
	return int(w)
}

func (o *Overlay) text(d *fbDisplay, x, y int, s string, c color.RGBA) {
	tinyfont.WriteLine(d, o.font, int16(x), int16(y+o.ascent), s, c)
}

func fill(d *fbDisplay, r image.Rectangle, c color.RGBA) {
	_ = d.FillRectangle(int16(r.Min.X), int16(r.Min.Y), int16(r.Dx()), int16(r.Dy()), c)
}

// Draw paints the UI for s. It does not present the framebuffer.
func (o *Overlay) Draw(fb hal.Framebuffer, s *game.State) {
	d := newFBDisplay(fb)
	if !d.ok() {
		return
	}
	o.drawMenuBar(d, s)
	o.drawChat(d, s)

	switch s.Editing.Kind {
	case game.EditChannelName:
		o.drawRename(d, s)
	case game.EditChannelColor:
		o.drawColor(d, s)
	case game.EditMaxLength:
		o.drawMaxLength(d, s)
	case game.EditViewAll:
		o.drawViewAll(d, s)
	}
}

func (o *Overlay) drawMenuBar(d *fbDisplay, s *game.State) {
	w := d.fb.Width()
	fill(d, image.Rect(0, 0, w, o.lineH+4), colorBarBG)

	x := 6
	for _, item := range []string{"Menu", "Options", "Chat"} {
		o.text(d, x, 2, item, colorFG)
		x += o.Measure(item) + 14
	}

	p := s.Player.Camera.Position()
	pos := fmt.Sprintf("Position: [%.2f, %.2f, %.2f]", p[0], p[1], p[2])
	o.text(d, x, 2, pos, colorPosition)
	x += o.Measure(pos) + 14

	o.text(d, x, 2, fmt.Sprintf("Framerate: %.1f", s.Framerate), colorFramerate)
}

func (o *Overlay) drawChat(d *fbDisplay, s *game.State) {
	r := ChatRect(s)
	fill(d, r, colorChatBG)

	buttons := LayoutButtons(s.Chat.Channels(), s.Selected, r.Min.Add(image.Pt(4, 4)), r.Max.X-4, o.lineH, o.Measure)
	top := r.Min.Y + 4
	for _, b := range buttons {
		fill(d, b.Rect, b.Fill)
		if b.Selected {
			d.strokeRectangle(int16(b.Rect.Min.X), int16(b.Rect.Min.Y), int16(b.Rect.Dx()), int16(b.Rect.Dy()), colorSelected)
		}
		o.text(d, b.Rect.Min.X+buttonPadX/2, b.Rect.Min.Y+buttonPadY/2, b.Label, b.Text)
		top = max(top, b.Rect.Max.Y)
	}
	top += 4

	inputH := o.lineH + 4
	bottom := r.Max.Y - inputH - 2
	width := r.Dx() - 12
	rows := (bottom - top) / o.lineH

	lines := Tail(MessageLines(s.Chat, s.Chat.Filter(s.Selected), width, o.Measure), rows)
	y := bottom - len(lines)*o.lineH
	for _, l := range lines {
		o.text(d, r.Min.X+6, y, l.Text, l.Color)
		y += o.lineH
	}

	if s.Window.UserEditing {
		box := image.Rect(r.Min.X+4, r.Max.Y-inputH-2, r.Max.X-4, r.Max.Y-2)
		fill(d, box, colorInputBG)
		in := InputTail(string(s.Buffers.ChatInput)+"_", box.Dx()-8, o.Measure)
		o.text(d, box.Min.X+4, box.Min.Y+2, in, colorFG)
	}
}

// dialog draws the frame and title and returns the content origin.
func (o *Overlay) dialog(d *fbDisplay, title string, w, h int) image.Rectangle {
	r := DialogRect(d.fb.Width(), d.fb.Height(), w, h)
	fill(d, r, colorDialogBG)
	fill(d, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+o.lineH+4), colorTitleBG)
	o.text(d, r.Min.X+6, r.Min.Y+2, title, colorFG)
	return image.Rect(r.Min.X+6, r.Min.Y+o.lineH+8, r.Max.X-6, r.Max.Y-4)
}

func (o *Overlay) field(d *fbDisplay, x, y, w int, s string, c color.RGBA) {
	box := image.Rect(x, y, x+w, y+o.lineH+4)
	fill(d, box, colorInputBG)
	o.text(d, x+4, y+2, InputTail(s+"_", w-8, o.Measure), c)
}

func (o *Overlay) hint(d *fbDisplay, c image.Rectangle, s string) {
	o.text(d, c.Min.X, c.Max.Y-o.lineH, s, colorDim)
}

func (o *Overlay) drawRename(d *fbDisplay, s *game.State) {
	c := o.dialog(d, "Rename Channel", 260, 5*o.lineH+24)

	label := "Rename channel: "
	o.text(d, c.Min.X, c.Min.Y, label, colorFG)
	if ch, ok := s.Chat.LookupChannel(s.Editing.Channel); ok {
		o.text(d, c.Min.X+o.Measure(label), c.Min.Y, s.Editing.Name, ch.TextColor.RGBA8())
	}
	o.field(d, c.Min.X, c.Min.Y+o.lineH+4, c.Dx(), string(s.Buffers.MenuText), colorFG)
	o.hint(d, c, "Enter: Ok   Esc: Cancel")
}

func (o *Overlay) drawColor(d *fbDisplay, s *game.State) {
	c := o.dialog(d, "Edit Channel Text Color", 280, 6*o.lineH+28)

	label := "Edit text color channel "
	o.text(d, c.Min.X, c.Min.Y, label, colorDim)
	if ch, ok := s.Chat.LookupChannel(s.Editing.Channel); ok {
		o.text(d, c.Min.X+o.Measure(label), c.Min.Y, ch.Name, ch.TextColor.RGBA8())
	}

	preview := s.Buffers.MenuColor
	if pc, err := game.ParseColor(string(s.Buffers.MenuText)); err == nil {
		preview = pc
	}
	y := c.Min.Y + o.lineH + 4
	swatch := o.lineH + 4
	fill(d, image.Rect(c.Min.X, y, c.Min.X+swatch, y+swatch), preview.RGBA8())
	o.field(d, c.Min.X+swatch+6, y, c.Dx()-swatch-6, string(s.Buffers.MenuText), colorFG)
	o.text(d, c.Min.X, y+swatch+4, "r g b [a], 0..1", colorDim)
	o.hint(d, c, "Enter: Ok   Esc: Cancel")
}

func (o *Overlay) drawMaxLength(d *fbDisplay, s *game.State) {
	c := o.dialog(d, "History Length", 320, 10*o.lineH+32)

	y := c.Min.Y
	intro := "Enter maximum number of lines to display in your chat window. " +
		"All further messages will be stored in memory (until you run out of physical memory)."
	for _, l := range Wrap(intro, c.Dx(), o.Measure) {
		o.text(d, c.Min.X, y, l, colorDim)
		y += o.lineH
	}
	y += 4

	box := "[ ]"
	if s.Buffers.MenuBool {
		box = "[x]"
	}
	o.text(d, c.Min.X, y, box+" Limit Chat History Length (Tab)", colorFG)
	y += o.lineH + 4
	o.field(d, c.Min.X, y, c.Dx()/2, string(s.Buffers.MenuText), colorLengthFG)
	o.hint(d, c, "Enter: Ok   Esc: Cancel")
}

func (o *Overlay) drawViewAll(d *fbDisplay, s *game.State) {
	c := o.dialog(d, "Examine Chat", 600, 400)

	rows := (c.Dy() - o.lineH - 4) / o.lineH
	lines := Tail(MessageLines(s.Chat, s.Chat.All(), c.Dx(), o.Measure), rows)
	y := c.Min.Y
	for _, l := range lines {
		o.text(d, c.Min.X, y, l.Text, l.Color)
		y += o.lineH
	}
	o.hint(d, c, "Enter: Done")
}
