package game

import (
	"time"
	"unicode"

	"github.com/go-gl/mathgl/mgl32"

	"chatscene/hal"
)

// Input is one frame of host input. Keys are applied before cursor moves,
// each in delivery order.
type Input struct {
	Keys   []hal.KeyEvent
	Cursor []hal.CursorEvent
	// Delta is the time since the previous frame.
	Delta time.Duration
}

const chatPrefix = "You: "

// Update applies one frame of input and advances the models.
func (s *State) Update(in Input) {
	s.frames.add(in.Delta)
	s.Framerate = s.frames.rate()

	for _, ev := range in.Keys {
		s.handleKey(ev)
	}
	for _, c := range in.Cursor {
		s.handleCursor(c)
	}
	s.spinModels()
	s.Window.Pos = s.ChatWindowPos()
}

func (s *State) handleKey(ev hal.KeyEvent) {
	if s.Editing.Kind != NotEditing {
		s.dialogKey(ev)
		return
	}

	if ev.Code == hal.KeyEnter {
		if !ev.Press {
			s.Window.UserEditing = !s.Window.UserEditing
		} else if s.Window.UserEditing && !ev.Repeat {
			s.submitChat()
		}
		return
	}
	if s.Window.UserEditing {
		s.chatKey(ev)
		return
	}
	if !ev.Press {
		return
	}

	cam := s.Player.Camera
	speed := s.Player.MoveSpeed
	switch ev.Code {
	case hal.KeyW:
		cam.MoveForward(speed)
	case hal.KeyS:
		cam.MoveBackward(speed)
	case hal.KeyA:
		cam.MoveLeft(speed)
	case hal.KeyD:
		cam.MoveRight(speed)
	case hal.KeySpace:
		cam.MoveUp(speed)
	case hal.KeyC:
		cam.MoveDown(speed)
	case hal.KeyLeft:
		cam.PanX(-speed)
	case hal.KeyRight:
		cam.PanX(speed)
	case hal.KeyUp:
		cam.PanY(speed)
	case hal.KeyDown:
		cam.PanY(-speed)
	case hal.KeyEscape:
		s.Quit = true
	case hal.KeyTab:
		s.NextChannel()
	case hal.KeyF1:
		s.BeginViewAll()
	case hal.KeyF2:
		s.BeginRename(s.Selected)
	case hal.KeyF3:
		s.BeginColor(s.Selected)
	case hal.KeyF4:
		s.BeginMaxLength()
	}
}

// chatKey edits the chat input line.
func (s *State) chatKey(ev hal.KeyEvent) {
	if !ev.Press {
		return
	}
	switch {
	case ev.Code == hal.KeyEscape:
		// Leave the input line without sending.
		s.Window.UserEditing = false
	case ev.Code == hal.KeyBackspace:
		s.Buffers.ChatInput = dropLast(s.Buffers.ChatInput)
	case ev.Code == hal.KeyUnknown && ev.Rune != 0:
		if unicode.IsPrint(ev.Rune) && len(s.Buffers.ChatInput) < s.Window.MaxChatInput {
			s.Buffers.ChatInput = append(s.Buffers.ChatInput, ev.Rune)
		}
	}
}

func (s *State) submitChat() {
	if len(s.Buffers.ChatInput) == 0 {
		return
	}
	s.Chat.SendString(s.Selected, chatPrefix+string(s.Buffers.ChatInput))
	s.Buffers.ChatInput = s.Buffers.ChatInput[:0]
}

func (s *State) handleCursor(c hal.CursorEvent) {
	if s.Window.UserEditing {
		return
	}
	cur := mgl32.Vec2{c.X, c.Y}
	if s.Mouse.HasCursor {
		s.Player.Camera.RotateTo(cur, s.Mouse.Cursor, s.Mouse.Sensitivity)
	}
	s.Mouse.Cursor = cur
	s.Mouse.HasCursor = true
}

// spinModels turns every model one more degree around X.
func (s *State) spinModels() {
	for i := range s.Models {
		m := &s.Models[i]
		m.Count++
		m.Rotation = mgl32.QuatRotate(mgl32.DegToRad(m.Count), mgl32.Vec3{1, 0, 0})
	}
}

func dropLast(r []rune) []rune {
	if len(r) == 0 {
		return r
	}
	return r[:len(r)-1]
}

// frameCounter is a running average over the last n frame deltas.
type frameCounter struct {
	samples []time.Duration
	next    int
	full    bool
	sum     time.Duration
}

func newFrameCounter(n int) frameCounter {
	return frameCounter{samples: make([]time.Duration, n)}
}

func (f *frameCounter) add(d time.Duration) {
	if d <= 0 || len(f.samples) == 0 {
		return
	}
	f.sum -= f.samples[f.next]
	f.samples[f.next] = d
	f.sum += d
	f.next++
	if f.next == len(f.samples) {
		f.next = 0
		f.full = true
	}
}

// rate is frames per second, or 0 before the first sample.
func (f *frameCounter) rate() float64 {
	n := f.next
	if f.full {
		n = len(f.samples)
	}
	if n == 0 || f.sum <= 0 {
		return 0
	}
	avg := f.sum.Seconds() / float64(n)
	return 1 / avg
}
