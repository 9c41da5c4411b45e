package app

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/termchat/config"
	"github.com/lixenwraith/termchat/dao"
	"github.com/lixenwraith/termchat/engine"
	"github.com/lixenwraith/termchat/event"
	"github.com/lixenwraith/termchat/screen"
	"github.com/lixenwraith/termchat/terminal"
)

const (
	chatInfoHeight = 5
	chatMinHeight  = chatInfoHeight + 5 // Rules below the info block stay in order
	messageMaxLen  = 512
	writeWidth     = 45
)

// ChatInfo shows the selected chat's name, description and members
type ChatInfo struct {
	state *State

	// "name [port]" per member, rebuilt when the member list changes
	members []string
	rev     uint64
	loaded  bool
}

// NewChatInfo creates the chat header
func NewChatInfo(state *State) *ChatInfo {
	return &ChatInfo{state: state}
}

func (c *ChatInfo) refresh() {
	c.members = c.members[:0]
	for _, u := range c.state.MembersOfSelected() {
		port := "?"
		if a, ok := c.state.AddressOf(u); ok {
			port = fmt.Sprint(a.Port)
		}
		c.members = append(c.members, fmt.Sprintf("%s [%s]", u.Name, port))
	}
	c.rev = c.state.MembersRevision()
	c.loaded = true
}

func (c *ChatInfo) Update(e *engine.Engine) {
	if !c.loaded || c.rev != c.state.MembersRevision() {
		c.refresh()
	}
}

func (c *ChatInfo) Draw(e *engine.Engine, t screen.Transform, s screen.Size, buf *screen.Buffer) {
	chat, ok := c.state.SelectedChat()
	if !ok {
		const msg = "Nothing selected"
		buf.Print(t.Move(s.W/2-len(msg)/2, 2), msg)
		return
	}

	t = t.Move(1, 1)
	buf.PrintStyled(t, terminal.StyleBold.With(terminal.AttrUnderline), "%d: %s", chat.ID, chat.Name)
	t = t.Move(0, 1)
	if chat.Description != "" {
		buf.PrintStyled(t, terminal.StyleDim, "%s", screen.TruncateWidth(chat.Description, s.W-2))
	}
	t = t.Move(0, 1)
	buf.Print(t, "members: %s", screen.TruncateWidth(strings.Join(c.members, ", "), s.W-11))
}

func (c *ChatInfo) Mount(e *engine.Engine)   { c.refresh() }
func (c *ChatInfo) Unmount(e *engine.Engine) {}

// WriteMsg is the message line; the write key starts editing, Enter sends
type WriteMsg struct {
	state *State
	keys  config.Keymap
	field *TextField

	wantsInput bool
	binds      bindings
}

// NewWriteMsg creates the message line
func NewWriteMsg(state *State, keys config.Keymap) *WriteMsg {
	return &WriteMsg{
		state: state,
		keys:  keys,
		field: NewTextField("", messageMaxLen),
		binds: bindings{state: state},
	}
}

// Editing reports whether the line holds the input
func (w *WriteMsg) Editing() bool { return w.state.EditingField(w.field) }

func (w *WriteMsg) Update(e *engine.Engine) {
	if !w.wantsInput {
		return
	}
	w.wantsInput = false
	if w.state.HasChatSelected() {
		w.state.BeginEdit(w.field)
	}
}

func (w *WriteMsg) handleEdit(k event.Key) {
	if !w.Editing() {
		return
	}
	switch w.field.HandleKey(k) {
	case EditSubmit:
		if text := strings.TrimSpace(w.field.Value()); text != "" {
			w.state.PushMessage(text)
		}
		w.field.Clear()
		w.state.EndEdit(w.field)
	case EditCancel:
		w.field.Clear()
		w.state.EndEdit(w.field)
	}
}

func (w *WriteMsg) Draw(e *engine.Engine, t screen.Transform, s screen.Size, buf *screen.Buffer) {
	t = t.Move(1, 0)
	buf.Print(t, ">")
	t = t.Move(2, 0)

	if w.Editing() {
		w.field.Draw(buf, t, min(writeWidth, s.W-4), terminal.StyleDefault, true)
		return
	}
	if w.state.HasChatSelected() {
		buf.PrintStyled(t, terminal.StyleDim, "press %s to write", w.keys.Key(config.ActionWriteMessage))
	}
}

func (w *WriteMsg) Mount(e *engine.Engine) {
	bus := e.Bus()
	w.binds.on(bus, w.keys.Key(config.ActionWriteMessage), func() {
		if w.state.HasChatSelected() {
			w.wantsInput = true
		}
	})
	w.binds.onAny(bus, w.handleEdit)
}

func (w *WriteMsg) Unmount(e *engine.Engine) {
	w.field.Clear()
	w.state.EndEdit(w.field)
	w.wantsInput = false
	w.binds.release(e.Bus())
}

// Chat shows the header, the messages with the newest at the bottom, and
// the message line
type Chat struct {
	state *State
	info  *ChatInfo
	write *WriteMsg
}

// NewChat creates the chat pane
func NewChat(state *State, keys config.Keymap) *Chat {
	return &Chat{
		state: state,
		info:  NewChatInfo(state),
		write: NewWriteMsg(state, keys),
	}
}

func (c *Chat) Update(e *engine.Engine) {
	c.info.Update(e)
	c.write.Update(e)
}

func (c *Chat) Draw(e *engine.Engine, t screen.Transform, s screen.Size, buf *screen.Buffer) {
	if s.H < chatMinHeight {
		return
	}
	c.info.Draw(e, t, screen.Size{W: s.W, H: chatInfoHeight}, buf)

	top := t.Y + chatInfoHeight
	buf.HLine(t.X+1, t.X+s.W-1, top, screen.P('='))

	sep := t.Y + s.H - 4
	buf.HLine(t.X+1, t.X+s.W-1, sep, screen.P('='))
	c.write.Draw(e, screen.Transform{X: t.X, Y: sep + 1}, screen.Size{W: s.W, H: 2}, buf)

	y := sep - 2
	for _, msg := range c.state.MessagesOfSelected() {
		if y <= top {
			break
		}
		c.drawMessage(buf, screen.Transform{X: t.X, Y: y}, s.W, msg)
		y -= 2
	}
}

// drawMessage prints one message with its delivery marker
// '>' delivered or received, '~' waiting for a send result, '!' failed
func (c *Chat) drawMessage(buf *screen.Buffer, t screen.Transform, width int, msg dao.Message) {
	name := "unknown"
	if msg.Local() {
		name = c.state.Name()
	} else if u, ok := c.state.FindUser(msg.SentBy); ok {
		name = u.Name
	}

	mark, style := '>', terminal.StyleDefault
	switch {
	case msg.Error != "":
		mark, style = '!', styleError
	case msg.Pending():
		mark, style = '~', terminal.StyleDim
	}
	line := fmt.Sprintf(" %c %s: %s", mark, name, msg.Content)
	buf.PrintStyled(t, style, "%s", screen.TruncateWidth(line, width))
}

func (c *Chat) Mount(e *engine.Engine) {
	c.info.Mount(e)
	c.write.Mount(e)
}

func (c *Chat) Unmount(e *engine.Engine) {
	c.info.Unmount(e)
	c.write.Unmount(e)
}
