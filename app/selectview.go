package app

import (
	"fmt"
	"log"

	"github.com/lixenwraith/termchat/config"
	"github.com/lixenwraith/termchat/engine"
	"github.com/lixenwraith/termchat/screen"
	"github.com/lixenwraith/termchat/terminal"
)

var styleHelpBar = terminal.StyleDefault.
	Background(terminal.ColorDarkGray).
	Foreground(terminal.ColorBlack)

type modalEntry struct {
	action config.Action
	label  string
	modal  *engine.Modal
	// needsChat blocks opening while no chat is selected
	needsChat bool
}

// SelectView owns the CRUD modals and the bottom help bar
// At most one modal is open; the close key is bound only while one is
type SelectView struct {
	state   *State
	keys    config.Keymap
	entries []*modalEntry
	open    *modalEntry

	binds      bindings
	closeBinds bindings
}

// NewSelectView creates the modal host with the four chat management forms
func NewSelectView(state *State, keys config.Keymap) *SelectView {
	mk := func(a config.Action, label string, scene engine.Scene, needsChat bool) *modalEntry {
		return &modalEntry{action: a, label: label, modal: engine.NewModal(scene, nil), needsChat: needsChat}
	}
	return &SelectView{
		state: state,
		keys:  keys,
		entries: []*modalEntry{
			mk(config.ActionCreateUser, "Create User", NewCreateUser(state), false),
			mk(config.ActionCreateChat, "Create Chat", NewCreateChat(state), false),
			mk(config.ActionAddUser, "Add User", NewAddUserToChat(state), true),
			mk(config.ActionRemoveUser, "Remove User", NewRemoveUserFromChat(state), true),
		},
		binds:      bindings{state: state},
		closeBinds: bindings{state: state},
	}
}

// Open returns the action of the open modal, or "" when none is open
func (v *SelectView) Open() config.Action {
	if v.open == nil {
		return ""
	}
	return v.open.action
}

func (v *SelectView) show(e *engine.Engine, m *modalEntry) {
	if v.open != nil {
		return
	}
	if m.needsChat && !v.state.HasChatSelected() {
		return
	}
	log.Printf("app: opening %s", m.action)
	m.modal.ShowModal(e)
	v.open = m
	v.closeBinds.on(e.Bus(), v.keys.Key(config.ActionCloseModal), func() { v.close(e) })
}

func (v *SelectView) close(e *engine.Engine) {
	if v.open == nil {
		return
	}
	v.open.modal.HideModal(e)
	v.open = nil
	v.closeBinds.release(e.Bus())
}

func (v *SelectView) Update(e *engine.Engine) {
	if v.open != nil {
		v.open.modal.Update(e)
	}
}

func (v *SelectView) Draw(e *engine.Engine, t screen.Transform, s screen.Size, buf *screen.Buffer) {
	if v.open != nil {
		v.open.modal.Draw(e, t, s, buf)
	}
	v.drawHelp(t, s, buf)
}

func (v *SelectView) drawHelp(t screen.Transform, s screen.Size, buf *screen.Buffer) {
	if s.H == 0 {
		return
	}
	t = t.Move(0, s.H-1)
	buf.HLine(t.X, t.X+s.W, t.Y, screen.Styled(' ', styleHelpBar))

	for _, m := range v.entries {
		if m.needsChat && !v.state.HasChatSelected() {
			continue
		}
		n := buf.PrintStyled(t, styleHelpBar, "<%s> %s |", v.keys.Key(m.action), m.label)
		t = t.Move(n+1, 0)
	}
	if v.open != nil {
		buf.PrintStyled(t, styleHelpBar, "<%s> Close", v.keys.Key(config.ActionCloseModal))
		return
	}
	buf.PrintStyled(t, styleHelpBar, "%s", helpTail(v.keys))
}

func helpTail(keys config.Keymap) string {
	return fmt.Sprintf("<%s> Sidebar | <%s>/<%s> Chat | <%s> Write | <%s> Mute | <ctrl_q> Quit",
		keys.Key(config.ActionToggleSidebar),
		keys.Key(config.ActionNextChat),
		keys.Key(config.ActionPrevChat),
		keys.Key(config.ActionWriteMessage),
		keys.Key(config.ActionToggleMute))
}

func (v *SelectView) Mount(e *engine.Engine) {
	for _, m := range v.entries {
		v.binds.on(e.Bus(), v.keys.Key(m.action), func() { v.show(e, m) })
	}
}

func (v *SelectView) Unmount(e *engine.Engine) {
	v.close(e)
	v.binds.release(e.Bus())
}
