package game

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatscene/chat"
	"chatscene/hal"
)

func press(code hal.KeyCode) hal.KeyEvent   { return hal.KeyEvent{Code: code, Press: true} }
func release(code hal.KeyCode) hal.KeyEvent { return hal.KeyEvent{Code: code} }

func typed(s string) []hal.KeyEvent {
	var evs []hal.KeyEvent
	for _, r := range s {
		evs = append(evs, hal.KeyEvent{Press: true, Rune: r})
	}
	return evs
}

func keys(evs ...hal.KeyEvent) Input { return Input{Keys: evs} }

func messages(h *chat.History) []string {
	var out []string
	for m := range h.History() {
		out = append(out, m.String())
	}
	return out
}

func TestDefaultState(t *testing.T) {
	s := DefaultState()

	var names []string
	for _, c := range s.Chat.ChannelNames() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"General", "Combat Log", "Whisper", "Group", "Guild"}, names)
	assert.Equal(t, 12, s.Chat.Len())
	assert.Equal(t, chat.AllChannels, s.Selected)
	assert.Equal(t, mgl32.Vec2{10, 178}, s.Window.Pos)
	assert.Len(t, s.Models, 3)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, s.Player.Camera.Position())
}

func TestChatWindowPosFollowsWindowSize(t *testing.T) {
	s := DefaultState()
	s.WindowSize = [2]int{1024, 768}
	assert.Equal(t, mgl32.Vec2{10, 562}, s.ChatWindowPos())

	s.Update(Input{})
	assert.Equal(t, mgl32.Vec2{10, 562}, s.Window.Pos)
}

func TestEnterTogglesAndSubmits(t *testing.T) {
	s := DefaultState()
	s.SelectChannel(3)

	s.Update(keys(release(hal.KeyEnter)))
	require.True(t, s.Window.UserEditing)

	s.Update(keys(typed("hi there")...))
	assert.Equal(t, "hi there", string(s.Buffers.ChatInput))

	s.Update(keys(press(hal.KeyEnter), release(hal.KeyEnter)))
	assert.False(t, s.Window.UserEditing)
	assert.Empty(t, s.Buffers.ChatInput)

	var last chat.Message
	for m := range s.Chat.History() {
		last = m
	}
	assert.Equal(t, "You: hi there", last.String())
	assert.Equal(t, chat.ChannelID(3), last.Channel)
	assert.Equal(t, 13, s.Chat.Len())
}

func TestSubmitEmptyIsIgnored(t *testing.T) {
	s := DefaultState()
	s.Update(keys(release(hal.KeyEnter), press(hal.KeyEnter), release(hal.KeyEnter)))
	assert.Equal(t, 12, s.Chat.Len())
	assert.False(t, s.Window.UserEditing)
}

func TestChatInputBackspaceAndLimit(t *testing.T) {
	s := DefaultState()
	s.Window.MaxChatInput = 3
	s.Update(keys(release(hal.KeyEnter)))
	s.Update(keys(typed("abcd")...))
	assert.Equal(t, "abc", string(s.Buffers.ChatInput))

	s.Update(keys(press(hal.KeyBackspace), press(hal.KeyBackspace)))
	assert.Equal(t, "a", string(s.Buffers.ChatInput))
}

func TestEditingBlocksMovementAndMouse(t *testing.T) {
	s := DefaultState()
	s.Update(keys(release(hal.KeyEnter)))

	s.Update(Input{
		Keys:   []hal.KeyEvent{press(hal.KeyW), press(hal.KeyD)},
		Cursor: []hal.CursorEvent{{X: 1, Y: 1}, {X: 50, Y: 80}},
	})
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, s.Player.Camera.Position())
	assert.False(t, s.Mouse.HasCursor)
	assert.Equal(t, mgl32.QuatIdent(), s.Player.Camera.Rotation())
}

func TestEscapeLeavesEditingWithoutQuitting(t *testing.T) {
	s := DefaultState()
	s.Update(keys(release(hal.KeyEnter)))
	s.Update(keys(typed("x")...))
	s.Update(keys(press(hal.KeyEscape), release(hal.KeyEscape)))
	assert.False(t, s.Window.UserEditing)
	assert.False(t, s.Quit)
	assert.Equal(t, 12, s.Chat.Len())

	s.Update(keys(press(hal.KeyEscape)))
	assert.True(t, s.Quit)
}

func TestMovementKeys(t *testing.T) {
	cases := []struct {
		key  hal.KeyCode
		want mgl32.Vec3
	}{
		{hal.KeyW, mgl32.Vec3{0, 0, 0.9}},
		{hal.KeyS, mgl32.Vec3{0, 0, 1.1}},
		{hal.KeyA, mgl32.Vec3{-0.1, 0, 1}},
		{hal.KeyD, mgl32.Vec3{0.1, 0, 1}},
		{hal.KeySpace, mgl32.Vec3{0, 0.1, 1}},
		{hal.KeyC, mgl32.Vec3{0, -0.1, 1}},
		{hal.KeyLeft, mgl32.Vec3{-0.1, 0, 1}},
		{hal.KeyRight, mgl32.Vec3{0.1, 0, 1}},
		{hal.KeyUp, mgl32.Vec3{0, 0.1, 1}},
		{hal.KeyDown, mgl32.Vec3{0, -0.1, 1}},
	}
	for _, tc := range cases {
		t.Run(tc.key.String(), func(t *testing.T) {
			s := DefaultState()
			s.Update(keys(press(tc.key), release(tc.key)))
			assert.True(t, s.Player.Camera.Position().ApproxEqualThreshold(tc.want, 1e-5),
				"got %v, want %v", s.Player.Camera.Position(), tc.want)
		})
	}
}

func TestHeldKeyRepeats(t *testing.T) {
	s := DefaultState()
	held := hal.KeyEvent{Code: hal.KeyW, Press: true, Repeat: true}
	s.Update(keys(press(hal.KeyW)))
	s.Update(keys(held))
	s.Update(keys(held))
	assert.InDelta(t, 0.7, s.Player.Camera.Position()[2], 1e-5)
}

func TestMouseLook(t *testing.T) {
	s := DefaultState()

	s.Update(Input{Cursor: []hal.CursorEvent{{X: 100, Y: 100}}})
	assert.True(t, s.Mouse.HasCursor)
	assert.Equal(t, mgl32.QuatIdent(), s.Player.Camera.Rotation())

	s.Update(Input{Cursor: []hal.CursorEvent{{X: 150, Y: 100}}})
	assert.NotEqual(t, mgl32.QuatIdent(), s.Player.Camera.Rotation())
	yaw, pitch, _ := s.Player.Camera.Angles()
	assert.InDelta(t, 50*0.002, math.Abs(float64(yaw)), 1e-6)
	assert.InDelta(t, 0, pitch, 1e-6)
	assert.Equal(t, mgl32.Vec2{150, 100}, s.Mouse.Cursor)
}

func TestModelsSpinOneDegreePerFrame(t *testing.T) {
	s := DefaultState()
	for i := 0; i < 90; i++ {
		s.Update(Input{})
	}
	want := mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{1, 0, 0})
	for _, m := range s.Models {
		assert.Equal(t, float32(90), m.Count)
		assert.True(t, m.Rotation.ApproxEqualThreshold(want, 1e-5))
	}
}

func TestFramerate(t *testing.T) {
	s := DefaultState()
	assert.Zero(t, s.Framerate)
	for i := 0; i < 200; i++ {
		s.Update(Input{Delta: 20 * time.Millisecond})
	}
	assert.InDelta(t, 50, s.Framerate, 1e-6)

	s.Update(Input{Delta: 0})
	assert.InDelta(t, 50, s.Framerate, 1e-6)
}

func TestNextChannelCycles(t *testing.T) {
	s := DefaultState()
	var seen []chat.ChannelID
	for i := 0; i < 6; i++ {
		s.Update(keys(press(hal.KeyTab)))
		seen = append(seen, s.Selected)
	}
	if diff := cmp.Diff([]chat.ChannelID{1, 2, 3, 4, 0, 1}, seen); diff != "" {
		t.Fatalf("selection mismatch (-want +got):\n%s", diff)
	}
}

func nopLogger() zerolog.Logger { return zerolog.Nop() }
