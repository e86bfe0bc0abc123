package game

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"chatscene/chat"
	"chatscene/hal"
)

const maxColorInput = 32

// BeginRename opens the rename dialog for a registered channel.
func (s *State) BeginRename(id chat.ChannelID) {
	ch, ok := s.Chat.LookupChannel(id)
	if !ok {
		s.log.Debug().Int("channel", int(id)).Msg("rename: no such channel")
		return
	}
	s.Editing = Editing{Kind: EditChannelName, Channel: id, Name: ch.Name}
	s.Buffers.MenuText = []rune(ch.Name)
}

// ConfirmRename applies the typed name and closes the dialog.
func (s *State) ConfirmRename() {
	if s.Editing.Kind != EditChannelName {
		return
	}
	name := string(s.Buffers.MenuText)
	if !s.Chat.RenameChannel(s.Editing.Channel, name) {
		s.log.Error().Int("channel", int(s.Editing.Channel)).Str("name", name).Msg("error renaming channel")
	} else {
		s.log.Info().Int("channel", int(s.Editing.Channel)).Str("from", s.Editing.Name).Str("to", name).Msg("channel renamed")
	}
	s.closeDialog()
}

// BeginColor opens the colour dialog with the channel's current colour.
func (s *State) BeginColor(id chat.ChannelID) {
	ch, ok := s.Chat.LookupChannel(id)
	if !ok {
		s.log.Debug().Int("channel", int(id)).Msg("color: no such channel")
		return
	}
	s.Buffers.MenuColor = ch.TextColor
	s.Buffers.MenuColorBk = ch.TextColor
	s.Buffers.MenuText = []rune(FormatColor(ch.TextColor))
	s.Editing = Editing{Kind: EditChannelColor, Channel: id, Name: ch.Name}
}

// ConfirmColor applies the colour buffer to the channel.
func (s *State) ConfirmColor() {
	if s.Editing.Kind != EditChannelColor {
		return
	}
	if s.Chat.SetChannelColor(s.Editing.Channel, s.Buffers.MenuColor) {
		s.Buffers.MenuColorBk = s.Buffers.MenuColor
	} else {
		s.log.Warn().Int("channel", int(s.Editing.Channel)).Msg("recolour failed: no such channel")
	}
	s.closeDialog()
}

// CancelColor restores the colour buffer from its backup.
func (s *State) CancelColor() {
	if s.Editing.Kind != EditChannelColor {
		return
	}
	s.Buffers.MenuColor = s.Buffers.MenuColorBk
	s.closeDialog()
}

// BeginMaxLength opens the history length dialog.
func (s *State) BeginMaxLength() {
	p := s.Chat.PrunePolicy()
	s.Buffers.MenuIntBak = p.MaxLength
	s.Buffers.MenuBoolBak = p.Enabled
	s.Buffers.MenuInt = p.MaxLength
	s.Buffers.MenuBool = p.Enabled
	s.Buffers.MenuText = []rune(strconv.Itoa(int(p.MaxLength)))
	s.Editing = Editing{Kind: EditMaxLength}
}

// ConfirmMaxLength applies the policy: everything is restored first, then
// pruned to the new length when enabled.
func (s *State) ConfirmMaxLength() {
	if s.Editing.Kind != EditMaxLength {
		return
	}
	s.Buffers.MenuInt = max(0, s.Buffers.MenuInt)
	s.Buffers.MenuIntBak = s.Buffers.MenuInt
	s.Buffers.MenuBoolBak = s.Buffers.MenuBool

	s.Chat.SetPrune(s.Buffers.MenuBool, s.Buffers.MenuInt)
	s.Chat.Restore()
	if s.Buffers.MenuBool {
		s.Chat.Prune()
	}
	s.log.Info().Bool("enabled", s.Buffers.MenuBool).Int32("maxLength", s.Buffers.MenuInt).Msg("history length set")
	s.closeDialog()
}

// CancelMaxLength undoes edits to the length buffers.
func (s *State) CancelMaxLength() {
	if s.Editing.Kind != EditMaxLength {
		return
	}
	s.Buffers.MenuInt = s.Buffers.MenuIntBak
	s.Buffers.MenuBool = s.Buffers.MenuBoolBak
	s.closeDialog()
}

// BeginViewAll opens the full history view, backup included.
func (s *State) BeginViewAll() {
	s.Editing = Editing{Kind: EditViewAll}
}

// CloseDialog cancels whatever dialog is open.
func (s *State) CloseDialog() {
	switch s.Editing.Kind {
	case EditChannelColor:
		s.CancelColor()
	case EditMaxLength:
		s.CancelMaxLength()
	default:
		s.closeDialog()
	}
}

func (s *State) closeDialog() {
	s.Editing = Editing{}
	s.Buffers.MenuText = s.Buffers.MenuText[:0]
}

// dialogKey routes a key to the open dialog. Enter confirms on release so
// the release does not reach the chat input.
func (s *State) dialogKey(ev hal.KeyEvent) {
	if ev.Code == hal.KeyEnter {
		if !ev.Press {
			s.confirmDialog()
		}
		return
	}
	if !ev.Press {
		return
	}
	switch {
	case ev.Code == hal.KeyEscape:
		s.CloseDialog()
	case ev.Code == hal.KeyBackspace:
		s.Buffers.MenuText = dropLast(s.Buffers.MenuText)
	case ev.Code == hal.KeyTab && s.Editing.Kind == EditMaxLength:
		s.Buffers.MenuBool = !s.Buffers.MenuBool
	case ev.Code == hal.KeyUnknown && ev.Rune != 0:
		s.dialogRune(ev.Rune)
	}
}

func (s *State) dialogRune(r rune) {
	buf := s.Buffers.MenuText
	switch s.Editing.Kind {
	case EditChannelName:
		if unicode.IsSpace(r) || !unicode.IsPrint(r) || len(buf) >= s.Window.MaxMenuInput {
			return
		}
		r = unicode.ToUpper(r)
	case EditChannelColor:
		if !strings.ContainsRune("0123456789., ", r) || len(buf) >= maxColorInput {
			return
		}
	case EditMaxLength:
		if !unicode.IsDigit(r) || len(buf) >= s.Window.MaxMenuInput {
			return
		}
	default:
		return
	}
	s.Buffers.MenuText = append(buf, r)
}

func (s *State) confirmDialog() {
	switch s.Editing.Kind {
	case EditChannelName:
		s.ConfirmRename()
	case EditChannelColor:
		c, err := ParseColor(string(s.Buffers.MenuText))
		if err != nil {
			s.log.Warn().Err(err).Msg("color not applied")
			return
		}
		s.Buffers.MenuColor = c
		s.ConfirmColor()
	case EditMaxLength:
		n, err := parseLength(string(s.Buffers.MenuText))
		if err != nil {
			s.log.Warn().Err(err).Msg("length not applied")
			return
		}
		s.Buffers.MenuInt = n
		s.ConfirmMaxLength()
	case EditViewAll:
		s.closeDialog()
	}
}

// FormatColor renders a colour as the four space-separated components the
// colour dialog edits.
func FormatColor(c chat.Color) string {
	parts := []string{
		strconv.FormatFloat(float64(c.R), 'g', 3, 32),
		strconv.FormatFloat(float64(c.G), 'g', 3, 32),
		strconv.FormatFloat(float64(c.B), 'g', 3, 32),
		strconv.FormatFloat(float64(c.A), 'g', 3, 32),
	}
	return strings.Join(parts, " ")
}

// ParseColor reads three or four components separated by spaces or commas.
// Alpha defaults to 1.
func ParseColor(s string) (chat.Color, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' })
	if len(fields) != 3 && len(fields) != 4 {
		return chat.Color{}, fmt.Errorf("parse color %q: want 3 or 4 components, got %d", s, len(fields))
	}
	v := [4]float32{1, 1, 1, 1}
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return chat.Color{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		v[i] = float32(min(max(x, 0), 1))
	}
	return chat.RGBA(v[0], v[1], v[2], v[3]), nil
}

func parseLength(s string) (int32, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("parse length %q: %w", s, err)
	}
	return int32(n), nil
}
