package app

import (
	"log"

	"github.com/lixenwraith/termchat/config"
	"github.com/lixenwraith/termchat/engine"
	"github.com/lixenwraith/termchat/screen"
	"github.com/lixenwraith/termchat/terminal"
)

// ChatView lists the chats with the selected one reversed
type ChatView struct {
	state *State
	keys  config.Keymap
	binds bindings
}

// NewChatView creates the chat list
func NewChatView(state *State, keys config.Keymap) *ChatView {
	return &ChatView{state: state, keys: keys, binds: bindings{state: state}}
}

func (v *ChatView) Update(e *engine.Engine) {}

func (v *ChatView) Draw(e *engine.Engine, t screen.Transform, s screen.Size, buf *screen.Buffer) {
	bottom := t.Y + s.H

	buf.PrintStyled(t, terminal.StyleBold, "'%s' at port %d", v.state.Name(), v.state.Port())
	t = t.Move(0, 2)

	chats := v.state.Chats()
	buf.PrintStyled(t, terminal.StyleUnderline, "> %d Available chats", len(chats))
	t = t.Move(0, 2)

	selected := v.state.SelectedIndex()
	maxWidth := s.W - 4
	for i, chat := range chats {
		// Each entry takes four rows
		if t.Y+3 >= bottom {
			break
		}

		nameStyle := terminal.StyleBold.Foreground(terminal.ColorWhite)
		if i == selected {
			nameStyle = nameStyle.With(terminal.AttrReverse)
		}
		buf.PrintStyled(t.Move(1, 0), nameStyle, "%s", screen.TruncateWidth(chat.Name, maxWidth-1))
		buf.Print(t.Move(s.W-4, 0), "%3d", chat.ID)
		t = t.Move(0, 1)

		descr := screen.TruncateWidth(chat.Description, maxWidth)
		ellipsis := ""
		if descr != chat.Description {
			ellipsis = "..."
		}
		buf.PrintStyled(t.Move(1, 0), terminal.StyleDim, "%s%s", descr, ellipsis)

		t = t.Move(0, 2)
		buf.HLine(t.X, t.X+s.W, t.Y, screen.P('-'))
		t = t.Move(0, 1)
	}
}

func (v *ChatView) Mount(e *engine.Engine) {
	bus := e.Bus()
	v.binds.on(bus, v.keys.Key(config.ActionNextChat), func() {
		log.Printf("app: selected next chat: %d", v.state.SelectNextChat())
	})
	v.binds.on(bus, v.keys.Key(config.ActionPrevChat), func() {
		log.Printf("app: selected previous chat: %d", v.state.SelectPrevChat())
	})
}

func (v *ChatView) Unmount(e *engine.Engine) {
	v.binds.release(e.Bus())
}
