// Package game owns the per-frame state of the scene: the player camera,
// the chat history and window, dialog buffers and the spinning models.
package game

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"

	"chatscene/camera"
	"chatscene/chat"
)

// Player is the camera plus how far one movement key press travels.
type Player struct {
	Camera    *camera.Camera
	MoveSpeed float32
}

// ChatWindow is the chat overlay geometry and flags, in framebuffer pixels.
type ChatWindow struct {
	Dimensions     mgl32.Vec2
	Offset         mgl32.Vec2
	ButtonPadding  float32
	WindowRounding float32
	MaxChatInput   int
	MaxMenuInput   int
	Pos            mgl32.Vec2
	Movable        bool
	Resizable      bool
	SaveSettings   bool
	UserEditing    bool
}

// Buffers hold text being typed and dialog values. The backups are what
// cancel restores.
type Buffers struct {
	ChatInput   []rune
	MenuText    []rune
	MenuInt     int32
	MenuIntBak  int32
	MenuBool    bool
	MenuBoolBak bool
	MenuColor   chat.Color
	MenuColorBk chat.Color
}

// EditKind tags the dialog that is open.
type EditKind uint8

const (
	NotEditing EditKind = iota
	EditMaxLength
	EditChannelName
	EditChannelColor
	EditViewAll
)

func (k EditKind) String() string {
	switch k {
	case NotEditing:
		return "none"
	case EditMaxLength:
		return "max-length"
	case EditChannelName:
		return "channel-name"
	case EditChannelColor:
		return "channel-color"
	case EditViewAll:
		return "view-all"
	default:
		return "unknown"
	}
}

// Editing is the open dialog. Channel and Name are set for the channel
// dialogs only.
type Editing struct {
	Kind    EditKind
	Channel chat.ChannelID
	Name    string
}

// Mouse tracks the last cursor position for mouse-look.
type Mouse struct {
	Cursor      mgl32.Vec2
	HasCursor   bool
	Sensitivity mgl32.Vec2
}

// Model is one spinning scene object.
type Model struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
	// Count is the spin angle in degrees.
	Count float32
}

// NewModel places a unit-scale model at t.
func NewModel(t mgl32.Vec3) Model {
	return Model{Translation: t, Rotation: mgl32.QuatIdent(), Scale: mgl32.Vec3{1, 1, 1}}
}

// State is everything one frame reads and writes. It is owned by a single
// goroutine.
type State struct {
	Player     Player
	Chat       *chat.History
	Window     ChatWindow
	Buffers    Buffers
	Editing    Editing
	Selected   chat.ChannelID
	Framerate  float64
	Quit       bool
	WindowSize [2]int
	Mouse      Mouse
	Models     []Model

	frames frameCounter
	log    zerolog.Logger
}

// Settings seed a new State.
type Settings struct {
	// WindowSize is the framebuffer size the chat window anchors to.
	WindowSize   [2]int
	MoveSpeed    float32
	Sensitivity  mgl32.Vec2
	PruneEnabled bool
	MaxLength    int32
	CameraStart  mgl32.Vec3
	Cubes        []mgl32.Vec3
}

// DefaultSettings matches the default config and scene.
func DefaultSettings() Settings {
	return Settings{
		WindowSize:  [2]int{512, 384},
		MoveSpeed:   0.1,
		Sensitivity: mgl32.Vec2{0.002, 0.002},
		MaxLength:   100,
		CameraStart: mgl32.Vec3{0, 0, 1},
		Cubes:       []mgl32.Vec3{{0, 0, -2}, {1, 0.5, -3}, {-1, -0.5, -3}},
	}
}

// DefaultChannels are registered with ids 0..4 in this order.
func DefaultChannels() []chat.ChannelName {
	return []chat.ChannelName{
		{Name: "General", TextColor: chat.RGBA(1, 1, 1, 1)},
		{Name: "Combat Log", TextColor: chat.RGBA(1, 1, 1, 1)},
		{Name: "Whisper", TextColor: chat.RGBA(0.8, 0, 0.7, 1)},
		{Name: "Group", TextColor: chat.RGBA(0.2, 0.4, 0.9, 1)},
		{Name: "Guild", TextColor: chat.RGBA(0.1, 0.8, 0.3, 1)},
	}
}

// DefaultSeed is the chat shown at startup. Channel 5 is never registered,
// so Rocky's line stays in the log but is not displayed.
func DefaultSeed() []chat.Seed {
	return []chat.Seed{
		{Text: "Wizz: Hey", Channel: 0},
		{Text: "Thorny: Yo", Channel: 0},
		{Text: "Mufk: SUp man", Channel: 0},
		{Text: "Kazaghual: anyone w2b this axe I just found?", Channel: 2},
		{Text: "PizzaMan: Yo I'm here to deliver this pizza, I'll just leave it over here by the dragon ok?", Channel: 2},
		{Text: "Moo:grass plz", Channel: 3},
		{Text: "Aladin: STFU Jafar", Channel: 4},
		{Text: "Rocky: JKSLFJS", Channel: 5},

		{Text: "You took 31 damage.", Channel: 1},
		{Text: "You've given 25 damage.", Channel: 1},
		{Text: "You took 61 damage.", Channel: 1},
		{Text: "You've given 20 damage.", Channel: 1},
	}
}

// DefaultState is NewState with the default settings and no logging.
func DefaultState() *State {
	return NewState(DefaultSettings(), zerolog.Nop())
}

// NewState builds the startup state: default channels and seed chat, the
// camera at the scene start and one model per cube.
func NewState(s Settings, log zerolog.Logger) *State {
	log = log.With().Str("component", "game").Logger()

	h := chat.NewHistoryFrom(DefaultChannels(), DefaultSeed(), chat.WithLogger(log))
	h.SetPrune(s.PruneEnabled, s.MaxLength)
	if s.PruneEnabled {
		h.Prune()
	}

	st := &State{
		Player: Player{
			Camera:    camera.NewAt(s.CameraStart),
			MoveSpeed: s.MoveSpeed,
		},
		Chat: h,
		Window: ChatWindow{
			Dimensions:    mgl32.Vec2{480, 200},
			Offset:        mgl32.Vec2{10, 6},
			ButtonPadding: 20,
			MaxChatInput:  128,
			MaxMenuInput:  10,
		},
		Buffers: Buffers{
			MenuInt:     s.MaxLength,
			MenuIntBak:  s.MaxLength,
			MenuBool:    s.PruneEnabled,
			MenuBoolBak: s.PruneEnabled,
		},
		Selected:   chat.AllChannels,
		WindowSize: s.WindowSize,
		Mouse:      Mouse{Sensitivity: s.Sensitivity},
		frames:     newFrameCounter(120),
		log:        log,
	}
	for _, c := range s.Cubes {
		st.Models = append(st.Models, NewModel(c))
	}
	st.Window.Pos = st.ChatWindowPos()
	return st
}

// ChatWindowPos anchors the chat window to the bottom-left corner.
func (s *State) ChatWindowPos() mgl32.Vec2 {
	h := float32(s.WindowSize[1])
	return mgl32.Vec2{
		s.Window.Offset[0],
		h - s.Window.Dimensions[1] - s.Window.Offset[1],
	}
}

// SelectChannel picks the channel shown in the chat window and used for
// sending. AllChannels shows everything.
func (s *State) SelectChannel(id chat.ChannelID) {
	s.Selected = id
}

// NextChannel cycles the selection through the registered channels.
func (s *State) NextChannel() {
	chs := s.Chat.Channels()
	if len(chs) == 0 {
		return
	}
	next := chs[0].ID
	for i, c := range chs {
		if c.ID == s.Selected && i+1 < len(chs) {
			next = chs[i+1].ID
			break
		}
	}
	s.SelectChannel(next)
}
