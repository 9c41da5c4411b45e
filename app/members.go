package app

import (
	"log"

	"github.com/lixenwraith/termchat/dao"
	"github.com/lixenwraith/termchat/engine"
	"github.com/lixenwraith/termchat/event"
	"github.com/lixenwraith/termchat/screen"
	"github.com/lixenwraith/termchat/terminal"
)

type pickItem struct {
	user   dao.User
	member bool
}

// memberPicker lists every user and lets Enter apply an action to the
// selected one; only users the action applies to can be selected
type memberPicker struct {
	state *State
	title string
	// eligible picks users the action applies to, given their membership
	eligible func(member bool) bool
	apply    func(dao.User)

	users     []pickItem
	selected  int
	available bool
	binds     bindings
}

// NewAddUserToChat lists users; non-members can be added to the selected chat
func NewAddUserToChat(state *State) engine.Scene {
	return &memberPicker{
		state:    state,
		title:    "Add user to %s",
		eligible: func(member bool) bool { return !member },
		apply:    state.AddUserToSelectedChat,
		binds:    bindings{state: state},
	}
}

// NewRemoveUserFromChat lists users; members can be removed from the selected chat
func NewRemoveUserFromChat(state *State) engine.Scene {
	return &memberPicker{
		state:    state,
		title:    "Remove user from %s",
		eligible: func(member bool) bool { return member },
		apply:    state.RemoveUserFromSelectedChat,
		binds:    bindings{state: state},
	}
}

func (p *memberPicker) refresh() {
	p.state.FetchUsers()
	p.state.FetchMembers()

	p.users = p.users[:0]
	p.available = false
	for _, u := range p.state.Users() {
		item := pickItem{user: u, member: p.state.IsMember(u)}
		p.users = append(p.users, item)
		if p.eligible(item.member) {
			p.available = true
		}
	}

	p.selected = -1
	if p.available {
		p.selectNext()
	}
}

func (p *memberPicker) selectNext() { p.step(1) }
func (p *memberPicker) selectPrev() { p.step(-1) }

// step moves to the next eligible user in dir; available guarantees termination
func (p *memberPicker) step(dir int) {
	if !p.available || len(p.users) == 0 {
		p.selected = -1
		return
	}
	n := len(p.users)
	i := p.selected
	if i < 0 && dir < 0 {
		i = 0
	}
	for {
		i = ((i+dir)%n + n) % n
		if p.eligible(p.users[i].member) {
			p.selected = i
			return
		}
	}
}

func (p *memberPicker) confirm() {
	if !p.available || p.selected < 0 {
		log.Printf("app: picker confirm without a selected user")
		return
	}
	p.apply(p.users[p.selected].user)
	p.refresh()
}

func (p *memberPicker) Update(e *engine.Engine) {}

func (p *memberPicker) Draw(e *engine.Engine, t screen.Transform, s screen.Size, buf *screen.Buffer) {
	buf.Box(t, s.W, s.H, screen.DefaultBoxOptions())

	name := "(no chat)"
	if chat, ok := p.state.SelectedChat(); ok {
		name = chat.Name
	}
	buf.Print(t.Move(2, 0), p.title, name)
	t = t.Move(2, 1)

	for i, item := range p.users {
		var style terminal.Style
		if !p.eligible(item.member) {
			style = style.With(terminal.AttrDim)
		}
		if i == p.selected {
			style = style.With(terminal.AttrReverse)
		}
		buf.PrintStyled(t, style, "[%d] %s", item.user.ID, item.user.Name)
		t = t.Move(0, 1)
	}

	t = t.Move(0, 2)
	buf.PrintStyled(t, terminal.StyleReverse, "Confirm <enter>")
	buf.Print(t.Move(20, 0), "Exit <ESC>")
}

func (p *memberPicker) Mount(e *engine.Engine) {
	p.refresh()

	bus := e.Bus()
	p.binds.on(bus, event.Enter, p.confirm)
	p.binds.on(bus, event.Tab, p.selectNext)
	p.binds.on(bus, event.ShiftTab, p.selectPrev)
}

func (p *memberPicker) Unmount(e *engine.Engine) {
	p.binds.release(e.Bus())
}
