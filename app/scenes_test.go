package app

import (
	"strings"
	"testing"

	"github.com/lixenwraith/termchat/audio"
	"github.com/lixenwraith/termchat/config"
	"github.com/lixenwraith/termchat/event"
	"github.com/lixenwraith/termchat/network"
	"github.com/lixenwraith/termchat/screen"
	"github.com/lixenwraith/termchat/terminal"
)

// fakePlayer records played cues
type fakePlayer struct {
	cues  []audio.Cue
	muted bool
}

func (p *fakePlayer) Play(c audio.Cue) bool {
	p.cues = append(p.cues, c)
	return !p.muted
}
func (p *fakePlayer) ToggleMute() bool { p.muted = !p.muted; return !p.muted }
func (p *fakePlayer) IsMuted() bool    { return p.muted }

func TestRootReleasesEveryBinding(t *testing.T) {
	e := newEngine()
	km := keymap(t)
	s := newTestState(t, nil)
	mustChat(t, s, "general")

	root := NewRoot(e, s, km, Peers{})
	e.SwitchScene(root)
	bus := e.Bus()
	mounted := bus.Len()
	if mounted == 0 {
		t.Fatal("root registered nothing")
	}

	bus.Dispatch(km.Key(config.ActionCreateUser))
	if bus.Len() <= mounted {
		t.Fatalf("opening a modal registered nothing: %d", bus.Len())
	}
	bus.Dispatch(km.Key(config.ActionCloseModal))
	if bus.Len() != mounted {
		t.Errorf("after close = %d bindings, want %d", bus.Len(), mounted)
	}

	// Unmount with a modal open and a field being edited
	bus.Dispatch(km.Key(config.ActionCreateChat))
	bus.Dispatch(event.Enter)
	root.Update(e)
	if !s.Editing() {
		t.Fatal("form field not in edit mode")
	}
	e.SwitchScene(nil)
	if bus.Len() != 0 {
		t.Errorf("after unmount = %d bindings, want 0", bus.Len())
	}
	if s.Editing() {
		t.Error("edit focus survived unmount")
	}

	// Remount restores the same set
	e.SwitchScene(root)
	if bus.Len() != mounted {
		t.Errorf("after remount = %d bindings, want %d", bus.Len(), mounted)
	}
}

func TestSelectViewOneModal(t *testing.T) {
	e := newEngine()
	km := keymap(t)
	s := newTestState(t, nil)
	v := NewSelectView(s, km)
	v.Mount(e)
	bus := e.Bus()

	bus.Dispatch(km.Key(config.ActionAddUser))
	if v.Open() != "" {
		t.Fatalf("add user opened without a selected chat")
	}

	bus.Dispatch(km.Key(config.ActionCreateUser))
	bus.Dispatch(km.Key(config.ActionCreateChat))
	if v.Open() != config.ActionCreateUser {
		t.Errorf("open = %q, want create_user", v.Open())
	}
	bus.Dispatch(km.Key(config.ActionCloseModal))
	if v.Open() != "" {
		t.Errorf("open after close = %q", v.Open())
	}
	// A second close with nothing open is harmless
	bus.Dispatch(km.Key(config.ActionCloseModal))

	mustChat(t, s, "general")
	s.SelectNextChat()
	bus.Dispatch(km.Key(config.ActionRemoveUser))
	if v.Open() != config.ActionRemoveUser {
		t.Errorf("open = %q, want remove_user", v.Open())
	}

	v.Unmount(e)
	if bus.Len() != 0 {
		t.Errorf("bindings left = %d", bus.Len())
	}
}

func TestCreateUserForm(t *testing.T) {
	e := newEngine()
	km := keymap(t)
	s := newTestState(t, nil)
	mustChat(t, s, "general")
	cv := NewChatView(s, km)
	cv.Mount(e)
	f := NewCreateUser(s)
	f.Mount(e)
	bus := e.Bus()

	edit := func(text string) {
		t.Helper()
		bus.Dispatch(event.Enter)
		f.Update(e)
		if !s.Editing() {
			t.Fatalf("field %d not editing", f.selected)
		}
		typeText(bus, text)
		bus.Dispatch(event.Enter)
	}

	// Escape while editing restores the field and keeps the form
	bus.Dispatch(event.Enter)
	f.Update(e)
	typeText(bus, "zz")
	bus.Dispatch(event.Esc)
	if s.Editing() || f.value(0) != "" || f.selected != 0 {
		t.Fatalf("cancel left %q selected %d", f.value(0), f.selected)
	}

	// Tab skips the button while fields are empty
	bus.Dispatch(event.Tab)
	bus.Dispatch(event.Tab)
	bus.Dispatch(event.Tab)
	if f.selected != 0 {
		t.Errorf("tab reached %d with empty fields", f.selected)
	}
	bus.Dispatch(event.ShiftTab)
	if f.selected != 2 {
		t.Errorf("shift-tab from first = %d, want last field", f.selected)
	}
	bus.Dispatch(event.Tab)

	edit("carol")
	edit("127.0.0.1")
	edit("9003")
	if f.selected != f.confirmIndex() {
		t.Fatalf("selected = %d, want the button", f.selected)
	}
	if s.SelectedIndex() != noSelection {
		t.Error("typing 'c' moved the chat selection")
	}

	bus.Dispatch(event.Enter)
	f.Update(e)

	users := s.Users()
	if len(users) != 1 || users[0].Name != "carol" {
		t.Fatalf("users = %+v", users)
	}
	addr, _ := s.AddressOf(users[0])
	if addr.Host != "127.0.0.1" || addr.Port != 9003 {
		t.Errorf("address = %+v", addr)
	}
	if f.value(0) != "" || f.selected != 0 {
		t.Error("form not reset after confirm")
	}

	buf := frame(e, f)
	if !strings.Contains(row(buf, 0), "Create New User (1 saved)") {
		t.Errorf("title row = %q", row(buf, 0))
	}
}

func TestCreateUserRejectsPort(t *testing.T) {
	e := newEngine()
	s := newTestState(t, nil)
	f := NewCreateUser(s)
	f.Mount(e)
	bus := e.Bus()

	for _, v := range []string{"dave", "localhost", "99999"} {
		bus.Dispatch(event.Enter)
		f.Update(e)
		typeText(bus, v)
		bus.Dispatch(event.Enter)
	}
	bus.Dispatch(event.Enter)
	f.Update(e)

	if f.err != ErrInvalidPort {
		t.Errorf("err = %v, want ErrInvalidPort", f.err)
	}
	if len(s.Users()) != 0 {
		t.Error("user stored with an invalid port")
	}
	if f.value(0) != "dave" {
		t.Error("fields cleared after a failed submit")
	}
}

func TestCreateChatForm(t *testing.T) {
	e := newEngine()
	s := newTestState(t, nil)
	f := NewCreateChat(s)
	f.Mount(e)
	bus := e.Bus()

	for _, v := range []string{"dev", "build talk"} {
		bus.Dispatch(event.Enter)
		f.Update(e)
		typeText(bus, v)
		bus.Dispatch(event.Enter)
	}
	bus.Dispatch(event.Enter)
	f.Update(e)

	chats := s.Chats()
	if len(chats) != 1 || chats[0].Name != "dev" || chats[0].Description != "build talk" {
		t.Errorf("chats = %+v", chats)
	}
}

func TestMemberPickers(t *testing.T) {
	e := newEngine()
	s := newTestState(t, nil)
	alice := mustUser(t, s, "alice", "127.0.0.1", 9001)
	mustUser(t, s, "bob", "127.0.0.1", 9002)
	mustChat(t, s, "general")
	s.SelectNextChat()
	s.AddUserToSelectedChat(alice)
	bus := e.Bus()

	add := NewAddUserToChat(s).(*memberPicker)
	add.Mount(e)
	if add.selected != 1 {
		t.Fatalf("add picker selected %d, want bob", add.selected)
	}
	bus.Dispatch(event.Enter)
	if len(s.MembersOfSelected()) != 2 {
		t.Fatalf("members = %+v", s.MembersOfSelected())
	}
	if add.available || add.selected != -1 {
		t.Error("nobody left to add, selection should be empty")
	}
	bus.Dispatch(event.Enter)
	add.Unmount(e)

	rm := NewRemoveUserFromChat(s).(*memberPicker)
	rm.Mount(e)
	if rm.selected != 0 {
		t.Fatalf("remove picker selected %d, want alice", rm.selected)
	}
	bus.Dispatch(event.ShiftTab)
	if rm.selected != 1 {
		t.Errorf("shift-tab selected %d, want bob", rm.selected)
	}
	bus.Dispatch(event.Enter)
	members := s.MembersOfSelected()
	if len(members) != 1 || members[0].Name != "alice" {
		t.Errorf("members after remove = %+v", members)
	}

	buf := frame(e, rm)
	if !strings.Contains(screenText(buf), "Remove user from general") {
		t.Error("picker title missing")
	}
	rm.Unmount(e)
	if bus.Len() != 0 {
		t.Errorf("bindings left = %d", bus.Len())
	}
}

func TestWriteMessage(t *testing.T) {
	e := newEngine()
	km := keymap(t)
	s := newTestState(t, nil)
	c := NewChat(s, km)
	c.Mount(e)
	bus := e.Bus()

	bus.Dispatch(km.Key(config.ActionWriteMessage))
	c.Update(e)
	if s.Editing() {
		t.Fatal("editing started without a chat")
	}

	mustChat(t, s, "general")
	s.SelectNextChat()
	bus.Dispatch(km.Key(config.ActionWriteMessage))
	c.Update(e)
	if !c.write.Editing() {
		t.Fatal("write line not editing")
	}
	typeText(bus, "first")
	bus.Dispatch(event.Enter)

	bus.Dispatch(km.Key(config.ActionWriteMessage))
	c.Update(e)
	typeText(bus, "draft")
	bus.Dispatch(event.Esc)

	bus.Dispatch(km.Key(config.ActionWriteMessage))
	c.Update(e)
	typeText(bus, "second")
	bus.Dispatch(event.Enter)

	msgs := s.MessagesOfSelected()
	if len(msgs) != 2 || msgs[0].Content != "second" || msgs[1].Content != "first" {
		t.Fatalf("messages = %+v", msgs)
	}

	// Newest directly above the lower separator
	buf := frame(e, c)
	h := buf.Size().H
	if got := row(buf, h-6); !strings.Contains(got, "> me: second") {
		t.Errorf("row %d = %q", h-6, got)
	}
	if got := row(buf, h-8); !strings.Contains(got, "> me: first") {
		t.Errorf("row %d = %q", h-8, got)
	}
	if got := row(buf, h-4); !strings.HasPrefix(strings.TrimSpace(got), "====") {
		t.Errorf("separator row = %q", got)
	}

	c.Unmount(e)
	if bus.Len() != 0 {
		t.Errorf("bindings left = %d", bus.Len())
	}
}

func TestSidebarAndHelpBar(t *testing.T) {
	e := newEngine()
	km := keymap(t)
	s := newTestState(t, nil)
	mustChat(t, s, "general")
	mustChat(t, s, "random")
	s.SelectNextChat()

	root := NewRoot(e, s, km, Peers{})
	e.SwitchScene(root)

	buf := frame(e, root)
	w, h := buf.Size().W, buf.Size().H
	if got := row(buf, 0); !strings.HasPrefix(got, "'me' at port 9000") {
		t.Errorf("sidebar header = %q", got)
	}
	if p, _ := buf.Cell(w/3, 10); p.Rune != '|' {
		t.Errorf("divider = %q", p.Rune)
	}
	if p, _ := buf.Cell(1, 4); p.Rune != 'g' || p.Style.Attrs&terminal.AttrReverse == 0 {
		t.Errorf("selected chat cell = %+v", p)
	}

	help := row(buf, h-1)
	if !strings.HasPrefix(help, "<ctrl_u> Create User |") {
		t.Errorf("help bar = %q", help)
	}
	if p, _ := buf.Cell(w-1, h-1); p.Style.Bg != terminal.ColorDarkGray {
		t.Errorf("help bar style = %+v", p.Style)
	}

	e.Bus().Dispatch(km.Key(config.ActionToggleSidebar))
	buf = frame(e, root)
	if root.Sidebar.Shown() {
		t.Error("sidebar still shown")
	}
	if p, _ := buf.Cell(w/3, 10); p.Rune == '|' {
		t.Error("divider drawn while hidden")
	}
	if strings.HasPrefix(row(buf, 0), "'me'") {
		t.Error("chat list drawn while hidden")
	}
}

func TestNetPumpsTraffic(t *testing.T) {
	e := newEngine()
	km := keymap(t)
	s := newTestState(t, nil)
	bob := mustUser(t, s, "bob", "127.0.0.1", 9002)
	mustChat(t, s, "general")
	s.SelectNextChat()
	s.AddUserToSelectedChat(bob)

	inbound := event.NewQueue[network.Inbound](8)
	outbox := network.NewOutbox(8)
	player := &fakePlayer{}
	n := NewNet(s, km, inbound, outbox, player)
	n.Mount(e)

	inbound.Push(network.Inbound{Envelope: network.Envelope{Content: "yo", SentBy: "bob", SentFrom: "general"}})
	inbound.Push(network.Inbound{Envelope: network.Envelope{Content: "?", SentBy: "eve", SentFrom: "general"}})
	n.Update(e)

	if n.Received() != 1 {
		t.Errorf("received = %d, want 1", n.Received())
	}
	if len(player.cues) != 1 || player.cues[0] != audio.CueReceive {
		t.Errorf("cues = %v", player.cues)
	}
	if msgs := s.MessagesOfSelected(); len(msgs) != 1 || msgs[0].Content != "yo" {
		t.Errorf("messages = %+v", msgs)
	}

	// Quiet frame plays nothing
	n.Update(e)
	if len(player.cues) != 1 {
		t.Errorf("cues after quiet frame = %v", player.cues)
	}

	e.Bus().Dispatch(km.Key(config.ActionToggleMute))
	if !player.muted {
		t.Error("mute key not bound")
	}
	buf := frame(e, n)
	if !strings.Contains(screenText(buf), "muted") {
		t.Error("mute indicator missing")
	}

	n.Unmount(e)
	if e.Bus().Len() != 0 {
		t.Errorf("bindings left = %d", e.Bus().Len())
	}
}

func TestPerfOverlay(t *testing.T) {
	e := newEngine()
	buf := frame(e, Perf{})
	if got := row(buf, 0); !strings.Contains(got, "us (0.00%)") {
		t.Errorf("perf row = %q", got)
	}
}

func TestChatStaysInRegion(t *testing.T) {
	e := newEngine()
	s := newTestState(t, nil)
	mustChat(t, s, "general")
	s.SelectNextChat()
	s.PushMessage("hello")
	c := NewChat(s, keymap(t))
	buf := e.Buffer()

	for h := 0; h < 16; h++ {
		buf.Clear()
		at := screen.Transform{X: 0, Y: 10}
		c.Draw(e, at, screen.Size{W: 60, H: h}, buf)

		for y := range buf.Size().H {
			inside := y >= at.Y && y < at.Y+h
			if !inside && strings.TrimSpace(row(buf, y)) != "" {
				t.Errorf("height %d: drew outside region on row %d: %q", h, y, row(buf, y))
			}
		}
	}
}
