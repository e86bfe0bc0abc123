package hal

import "github.com/rs/zerolog"

// Options sizes the host framebuffer and window.
type Options struct {
	// Width and Height are the framebuffer size in pixels.
	Width, Height int
	// Scale multiplies the framebuffer size to get the window size.
	Scale  int
	Title  string
	Logger zerolog.Logger
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 512
	}
	if o.Height <= 0 {
		o.Height = 384
	}
	if o.Scale <= 0 {
		o.Scale = 1
	}
	if o.Title == "" {
		o.Title = "chatscene"
	}
	return o
}

type hostHAL struct {
	log   zerolog.Logger
	fb    *hostFramebuffer
	kbd   *hostKeyboard
	mouse *hostMouse
	t     *frameClock
}

// New returns a host HAL implementation.
func New(opts Options) HAL {
	return newHost(opts)
}

func newHost(opts Options) *hostHAL {
	opts = opts.withDefaults()
	return &hostHAL{
		log:   opts.Logger.With().Str("component", "hal").Logger(),
		fb:    newHostFramebuffer(opts.Width, opts.Height),
		kbd:   newHostKeyboard(),
		mouse: newHostMouse(),
		t:     newFrameClock(nil),
	}
}

func (h *hostHAL) Logger() zerolog.Logger { return h.log }
func (h *hostHAL) Display() Display       { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input           { return hostInput{kbd: h.kbd, mouse: h.mouse} }
func (h *hostHAL) Time() Time             { return h.t }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd   *hostKeyboard
	mouse *hostMouse
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }
func (in hostInput) Mouse() Mouse       { return in.mouse }

type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 256)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

// push drops the event when the queue is full.
func (k *hostKeyboard) push(ev KeyEvent) {
	select {
	case k.ch <- ev:
	default:
	}
}

type hostMouse struct {
	ch chan CursorEvent

	has  bool
	last CursorEvent
}

func newHostMouse() *hostMouse {
	return &hostMouse{ch: make(chan CursorEvent, 64)}
}

func (m *hostMouse) Events() <-chan CursorEvent { return m.ch }

// moveTo emits an event only when the position changed.
func (m *hostMouse) moveTo(x, y float32) {
	ev := CursorEvent{X: x, Y: y}
	if m.has && ev == m.last {
		return
	}
	m.has = true
	m.last = ev
	select {
	case m.ch <- ev:
	default:
	}
}
