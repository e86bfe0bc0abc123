// Package chat keeps the chat overlay's message log.
//
// A History holds an ordered, channel-tagged log (oldest first, new messages
// appended at the tail), a channel registry, and a retention policy. Pruning
// never discards anything: overflow moves to a backup log that Restore can
// merge back. The display wildcard is AllChannels (id 0).
package chat

import (
	"bytes"
	"iter"

	"github.com/rs/zerolog"
)

// Message is one chat line tagged with its channel.
//
// The channel need not be registered.
type Message struct {
	Bytes   []byte
	Channel ChannelID
}

func (m Message) String() string { return string(m.Bytes) }

// PrunePolicy bounds the active log length.
type PrunePolicy struct {
	Enabled   bool
	MaxLength int32
}

// Seed is an initial message for NewHistoryFrom.
type Seed struct {
	Text    string
	Channel ChannelID
}

// History is the message log, its backup and the channel registry.
//
// It is owned by a single frame loop and is not safe for concurrent use.
type History struct {
	log      []Message
	backup   []Message
	channels []Channel
	prune    PrunePolicy

	logger zerolog.Logger
}

// Option configures a History.
type Option func(*History)

// WithLogger attaches a logger for prune/restore/rename debug events.
func WithLogger(l zerolog.Logger) Option {
	return func(h *History) { h.logger = l }
}

// NewHistory returns an empty history with pruning disabled.
func NewHistory(opts ...Option) *History {
	h := &History{logger: zerolog.Nop()}
	for _, o := range opts {
		o(h)
	}
	return h
}

// NewHistoryFrom registers channels with ids 0..n-1 in order and then sends
// seed in order.
func NewHistoryFrom(channels []ChannelName, seed []Seed, opts ...Option) *History {
	h := NewHistory(opts...)
	for i, c := range channels {
		h.AddChannel(ChannelID(i), c.Name, c.TextColor)
	}
	for _, s := range seed {
		h.SendString(s.Channel, s.Text)
	}
	return h
}

func (h *History) channelIndex(id ChannelID) int {
	for i := range h.channels {
		if h.channels[i].ID == id {
			return i
		}
	}
	return -1
}

// AddChannel registers a channel and reports whether id was already present.
// An existing channel is left untouched.
func (h *History) AddChannel(id ChannelID, name string, textColor Color) bool {
	if h.channelIndex(id) >= 0 {
		return true
	}
	h.channels = append(h.channels, Channel{ID: id, Name: name, TextColor: textColor})
	return false
}

// RenameChannel reports whether a channel with id existed and was renamed.
func (h *History) RenameChannel(id ChannelID, name string) bool {
	i := h.channelIndex(id)
	if i < 0 {
		return false
	}
	h.logger.Debug().Int("channel", int(id)).Str("from", h.channels[i].Name).Str("to", name).Msg("renaming channel")
	h.channels[i].Name = name
	return true
}

// SetChannelColor reports whether a channel with id existed and was recoloured.
func (h *History) SetChannelColor(id ChannelID, c Color) bool {
	i := h.channelIndex(id)
	if i < 0 {
		return false
	}
	h.channels[i].TextColor = c
	return true
}

// LookupChannel returns a copy of the channel with id.
func (h *History) LookupChannel(id ChannelID) (Channel, bool) {
	i := h.channelIndex(id)
	if i < 0 {
		return Channel{}, false
	}
	return h.channels[i], true
}

// ChannelRef edits the name and colour of a registered channel in place.
// The id is fixed so the registry stays unique. A ref is invalidated by the
// next AddChannel.
type ChannelRef struct {
	ch *Channel
}

func (r ChannelRef) ID() ChannelID        { return r.ch.ID }
func (r ChannelRef) Name() string         { return r.ch.Name }
func (r ChannelRef) TextColor() Color     { return r.ch.TextColor }
func (r ChannelRef) SetName(name string)  { r.ch.Name = name }
func (r ChannelRef) SetTextColor(c Color) { r.ch.TextColor = c }

// MutableChannel returns an editing handle for the channel with id.
func (h *History) MutableChannel(id ChannelID) (ChannelRef, bool) {
	i := h.channelIndex(id)
	if i < 0 {
		return ChannelRef{}, false
	}
	return ChannelRef{ch: &h.channels[i]}, true
}

// Channels returns the registry in registration order.
func (h *History) Channels() []Channel {
	return append([]Channel(nil), h.channels...)
}

// ChannelNames lists names and colours in registration order.
func (h *History) ChannelNames() []ChannelName {
	out := make([]ChannelName, 0, len(h.channels))
	for _, c := range h.channels {
		out = append(out, ChannelName{Name: c.Name, TextColor: c.TextColor})
	}
	return out
}

// SendMessage appends a copy of b on channel id, then prunes if enabled.
func (h *History) SendMessage(id ChannelID, b []byte) {
	h.log = append(h.log, Message{Bytes: append([]byte(nil), b...), Channel: id})
	if h.prune.Enabled {
		h.Prune()
	}
}

func (h *History) SendString(id ChannelID, s string) { h.SendMessage(id, []byte(s)) }

// PrunePolicy returns the retention policy.
func (h *History) PrunePolicy() PrunePolicy { return h.prune }

// SetPrune replaces the retention policy. It does not prune by itself.
func (h *History) SetPrune(enabled bool, maxLength int32) {
	h.prune = PrunePolicy{Enabled: enabled, MaxLength: maxLength}
}

// Prune moves the oldest messages beyond MaxLength to the backup.
// A MaxLength of zero or less moves everything.
func (h *History) Prune() {
	keep := int(h.prune.MaxLength)
	if keep < 0 {
		keep = 0
	}
	if len(h.log) <= keep {
		return
	}
	n := len(h.log) - keep
	h.moveToBackup(n)
	h.logger.Debug().Int("moved", n).Int("kept", len(h.log)).Msg("pruned chat history")
}

// Clear moves the whole log to the backup.
func (h *History) Clear() {
	h.moveToBackup(len(h.log))
}

// Restore merges backup and log back into the log, oldest first, and
// empties the backup.
func (h *History) Restore() {
	h.Clear()
	h.log, h.backup = h.backup, h.log[:0]
	h.logger.Debug().Int("restored", len(h.log)).Msg("restored chat history")
}

func (h *History) moveToBackup(n int) {
	if n <= 0 {
		return
	}
	h.backup = append(h.backup, h.log[:n]...)
	rest := copy(h.log, h.log[n:])
	clear(h.log[rest:])
	h.log = h.log[:rest]
}

func (h *History) Len() int       { return len(h.log) }
func (h *History) BackupLen() int { return len(h.backup) }

// History iterates the active log as it was when History was called.
func (h *History) History() iter.Seq[Message] { return seqOf(h.log) }

// Backup iterates the backup log as it was when Backup was called.
func (h *History) Backup() iter.Seq[Message] { return seqOf(h.backup) }

// All iterates the backup followed by the active log.
func (h *History) All() iter.Seq[Message] {
	all := make([]Message, 0, len(h.backup)+len(h.log))
	all = append(all, h.backup...)
	all = append(all, h.log...)
	return seqOf(all)
}

// Filter iterates the active log as shown with selected chosen: AllChannels
// shows every message, any other id shows exact matches only.
func (h *History) Filter(selected ChannelID) iter.Seq[Message] {
	snap := append([]Message(nil), h.log...)
	return func(yield func(Message) bool) {
		for _, m := range snap {
			if selected != AllChannels && m.Channel != selected {
				continue
			}
			if !yield(m.clone()) {
				return
			}
		}
	}
}

func seqOf(msgs []Message) iter.Seq[Message] {
	snap := append([]Message(nil), msgs...)
	return func(yield func(Message) bool) {
		for _, m := range snap {
			if !yield(m.clone()) {
				return
			}
		}
	}
}

// clone detaches the payload so consumers cannot edit the stored message.
func (m Message) clone() Message {
	return Message{Bytes: bytes.Clone(m.Bytes), Channel: m.Channel}
}
