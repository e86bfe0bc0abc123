package overlay

import (
	"image"
	"image/color"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatscene/chat"
	"chatscene/game"
)

// fixed measures every rune as 6 pixels wide.
func fixed(s string) int { return utf8.RuneCountInString(s) * 6 }

func TestWrap(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"fits", "Wizz: Hey", 100, []string{"Wizz: Hey"}},
		{"breaks on spaces", "aa bb cc dd", 30, []string{"aa bb", "cc dd"}},
		{"long word", "abcdefghij", 24, []string{"abcd", "efgh", "ij"}},
		{"long word after text", "x abcdefgh y", 24, []string{"x", "abcd", "efgh", "y"}},
		{"empty", "", 50, []string{""}},
		{"keeps spaces", "a   b", 100, []string{"a   b"}},
		{"keeps leading spaces", "  indented", 100, []string{"  indented"}},
		{"drops the space at a break", "aaaa  bb", 30, []string{"aaaa ", "bb"}},
		{"no width", "a b", 0, []string{"a b"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Wrap(tc.text, tc.width, fixed))
		})
	}
}

func TestTail(t *testing.T) {
	xs := []int{1, 2, 3, 4}
	assert.Equal(t, []int{3, 4}, Tail(xs, 2))
	assert.Equal(t, xs, Tail(xs, 10))
	assert.Nil(t, Tail(xs, 0))
	assert.Nil(t, Tail(xs, -1))
}

func TestButtonFillQuartersAlpha(t *testing.T) {
	got := ButtonFill(chat.RGBA(0.2, 0.4, 0.9, 1))
	assert.Equal(t, uint8(64), got.A)
	assert.Equal(t, chat.RGBA(0.2, 0.4, 0.9, 1).RGBA8().B, got.B)
}

func TestLayoutButtons(t *testing.T) {
	h := game.DefaultState().Chat
	bs := LayoutButtons(h.Channels(), 2, image.Pt(10, 20), 1000, 12, fixed)
	require.Len(t, bs, 5)

	// "General" is 7 runes: 42 + padding 10.
	assert.Equal(t, image.Rect(10, 20, 62, 39), bs[0].Rect)
	assert.Equal(t, 62+buttonSpacing, bs[1].Rect.Min.X)
	for i, b := range bs {
		assert.Equal(t, chat.ChannelID(i), b.ID)
		assert.Equal(t, i == 2, b.Selected)
	}
}

func TestLayoutButtonsWrapRows(t *testing.T) {
	h := game.DefaultState().Chat
	bs := LayoutButtons(h.Channels(), 0, image.Pt(0, 0), 150, 12, fixed)
	require.Len(t, bs, 5)
	assert.Equal(t, 0, bs[0].Rect.Min.Y)
	last := bs[len(bs)-1]
	assert.Greater(t, last.Rect.Min.Y, 0)
	for _, b := range bs {
		assert.LessOrEqual(t, b.Rect.Max.X, 150, "button %q", b.Label)
	}
}

func TestMessageLinesSkipsUnregistered(t *testing.T) {
	h := game.DefaultState().Chat

	lines := MessageLines(h, h.Filter(chat.AllChannels), 10000, fixed)
	require.Len(t, lines, 11)
	for _, l := range lines {
		assert.NotEqual(t, "Rocky: JKSLFJS", l.Text)
	}

	whisper := MessageLines(h, h.Filter(2), 10000, fixed)
	require.Len(t, whisper, 2)
	want := chat.RGBA(0.8, 0, 0.7, 1).RGBA8()
	assert.Equal(t, want, whisper[0].Color)
	assert.Equal(t, "Kazaghual: anyone w2b this axe I just found?", whisper[0].Text)

	wrapped := MessageLines(h, h.Filter(2), 120, fixed)
	assert.Greater(t, len(wrapped), 2)
}

func TestMessageLinesViewAllIncludesBackup(t *testing.T) {
	h := game.DefaultState().Chat
	h.SetPrune(true, 2)
	h.Prune()
	assert.Len(t, MessageLines(h, h.History(), 10000, fixed), 2)
	assert.Len(t, MessageLines(h, h.All(), 10000, fixed), 11)
}

func TestChatRect(t *testing.T) {
	s := game.DefaultState()
	assert.Equal(t, image.Rect(10, 178, 490, 378), ChatRect(s))
}

func TestDialogRect(t *testing.T) {
	assert.Equal(t, image.Rect(100, 100, 300, 200), DialogRect(512, 384, 200, 100))
	// Too large: shrunk to the margin.
	assert.Equal(t, image.Rect(8, 8, 504, 376), DialogRect(512, 384, 600, 400))
	// Shifted left to fit.
	assert.Equal(t, image.Rect(84, 100, 504, 200), DialogRect(512, 384, 420, 100))
}

func TestInputTail(t *testing.T) {
	assert.Equal(t, "hello", InputTail("hello", 30, fixed))
	assert.Equal(t, "llo", InputTail("hello", 18, fixed))
	assert.Equal(t, "", InputTail("hello", 0, fixed))
}

func TestBlend(t *testing.T) {
	dst := color.RGBA{A: 0xFF}
	got := blend(dst, color.RGBA{R: 0xFF, A: 0x80})
	assert.InDelta(t, 0x80, int(got.R), 1)
	assert.Equal(t, uint8(0xFF), got.A)
	assert.Equal(t, color.RGBA{R: 1, G: 2, B: 3, A: 0xFF}, blend(dst, color.RGBA{R: 1, G: 2, B: 3, A: 0xFF}))
}
