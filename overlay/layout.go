package overlay

import (
	"image"
	"image/color"
	"iter"
	"strings"
	"unicode/utf8"

	"chatscene/chat"
	"chatscene/game"
)

// Measure returns the drawn width of s in pixels.
type Measure func(s string) int

// Line is one wrapped line of chat in its channel colour.
type Line struct {
	Text  string
	Color color.RGBA
}

// Button is a channel tab in the chat window.
type Button struct {
	ID       chat.ChannelID
	Label    string
	Rect     image.Rectangle
	Fill     color.RGBA
	Text     color.RGBA
	Selected bool
}

const (
	buttonPadX    = 10
	buttonPadY    = 7
	buttonSpacing = 15
)

// ButtonFill tints a channel button with its text colour at a quarter of
// the alpha.
func ButtonFill(c chat.Color) color.RGBA {
	c.A /= 4
	return c.RGBA8()
}

// LayoutButtons places one button per channel left to right from origin,
// starting a new row when a button would pass maxX.
func LayoutButtons(chs []chat.Channel, selected chat.ChannelID, origin image.Point, maxX, lineHeight int, measure Measure) []Button {
	out := make([]Button, 0, len(chs))
	x, y := origin.X, origin.Y
	h := lineHeight + buttonPadY
	for _, ch := range chs {
		w := measure(ch.Name) + buttonPadX
		if x > origin.X && x+w > maxX {
			x = origin.X
			y += h + 2
		}
		out = append(out, Button{
			ID:       ch.ID,
			Label:    ch.Name,
			Rect:     image.Rect(x, y, x+w, y+h),
			Fill:     ButtonFill(ch.TextColor),
			Text:     ch.TextColor.RGBA8(),
			Selected: ch.ID == selected,
		})
		x += w + buttonSpacing
	}
	return out
}

// Wrap breaks text into lines no wider than width, splitting on single
// spaces and hard-breaking words that do not fit on their own. Runs of
// spaces are kept; the one space at each break is dropped.
func Wrap(text string, width int, measure Measure) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	cur, open := "", false
	for _, w := range strings.Split(text, " ") {
		if measure(w) > width {
			if open {
				lines = append(lines, cur)
			}
			parts := breakWord(w, width, measure)
			lines = append(lines, parts[:len(parts)-1]...)
			cur, open = parts[len(parts)-1], true
			continue
		}
		next := w
		if open {
			next = cur + " " + w
		}
		if open && measure(next) > width {
			lines = append(lines, cur)
			cur = w
			continue
		}
		cur, open = next, true
	}
	return append(lines, cur)
}

func breakWord(w string, width int, measure Measure) []string {
	var parts []string
	for w != "" {
		n := 1
		for n < utf8.RuneCountInString(w) && measure(prefixRunes(w, n+1)) <= width {
			n++
		}
		p := prefixRunes(w, n)
		parts = append(parts, p)
		w = w[len(p):]
	}
	return parts
}

func prefixRunes(s string, n int) string {
	i := 0
	for ; n > 0 && i < len(s); n-- {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return s[:i]
}

// Tail returns the last n items, or all of them when there are fewer.
func Tail[T any](items []T, n int) []T {
	if n <= 0 {
		return nil
	}
	if len(items) <= n {
		return items
	}
	return items[len(items)-n:]
}

// MessageLines wraps msgs in their channel colours. Messages on
// unregistered channels are skipped.
func MessageLines(h *chat.History, msgs iter.Seq[chat.Message], width int, measure Measure) []Line {
	var out []Line
	for m := range msgs {
		ch, ok := h.LookupChannel(m.Channel)
		if !ok {
			continue
		}
		c := ch.TextColor.RGBA8()
		for _, l := range Wrap(m.String(), width, measure) {
			out = append(out, Line{Text: l, Color: c})
		}
	}
	return out
}

// ChatRect is the chat window in framebuffer pixels.
func ChatRect(s *game.State) image.Rectangle {
	x, y := int(s.Window.Pos[0]), int(s.Window.Pos[1])
	return image.Rect(x, y, x+int(s.Window.Dimensions[0]), y+int(s.Window.Dimensions[1]))
}

// DialogRect places a w by h dialog at (100, 100), shrunk and shifted as
// needed to stay inside a fbW by fbH framebuffer with a small margin.
func DialogRect(fbW, fbH, w, h int) image.Rectangle {
	const origin, margin = 100, 8
	w = min(w, fbW-2*margin)
	h = min(h, fbH-2*margin)
	x := max(min(origin, fbW-margin-w), margin)
	y := max(min(origin, fbH-margin-h), margin)
	return image.Rect(x, y, x+max(w, 0), y+max(h, 0))
}

// InputTail keeps the end of s that fits in width, so the caret stays in view.
func InputTail(s string, width int, measure Measure) string {
	for s != "" && measure(s) > width {
		_, size := utf8.DecodeRuneInString(s)
		s = s[size:]
	}
	return s
}
