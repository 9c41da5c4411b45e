package app

import (
	"context"
	"errors"
	"net"
	"slices"
	"testing"
	"time"

	"github.com/lixenwraith/termchat/event"
	"github.com/lixenwraith/termchat/network"
)

func TestSelectWraps(t *testing.T) {
	s := newTestState(t, nil)
	if s.HasChatSelected() || s.SelectNextChat() != noSelection {
		t.Fatal("empty state should have no selection")
	}

	mustChat(t, s, "a")
	mustChat(t, s, "b")
	mustChat(t, s, "c")

	var got []int
	for range 4 {
		got = append(got, s.SelectNextChat())
	}
	if want := []int{0, 1, 2, 0}; !slices.Equal(got, want) {
		t.Errorf("next = %v, want %v", got, want)
	}

	s.DeselectChat()
	got = got[:0]
	for range 4 {
		got = append(got, s.SelectPrevChat())
	}
	if want := []int{2, 1, 0, 2}; !slices.Equal(got, want) {
		t.Errorf("prev = %v, want %v", got, want)
	}

	chat, ok := s.SelectedChat()
	if !ok || chat.Name != "c" {
		t.Errorf("selected = %+v, %v", chat, ok)
	}
}

func TestMembership(t *testing.T) {
	s := newTestState(t, nil)
	alice := mustUser(t, s, "alice", "127.0.0.1", 9001)
	bob := mustUser(t, s, "bob", "127.0.0.1", 9002)
	mustChat(t, s, "general")

	s.AddUserToSelectedChat(alice)
	if !errors.Is(s.LastError(), ErrNoChatSelected) {
		t.Errorf("add without selection err = %v", s.LastError())
	}

	s.SelectNextChat()
	rev := s.MembersRevision()
	s.AddUserToSelectedChat(alice)
	s.AddUserToSelectedChat(bob)
	s.AddUserToSelectedChat(bob)
	if n := len(s.MembersOfSelected()); n != 2 {
		t.Fatalf("members = %d, want 2", n)
	}
	if s.MembersRevision() == rev {
		t.Error("member revision did not change")
	}
	if !s.IsMember(bob) {
		t.Error("bob should be a member")
	}

	s.RemoveUserFromSelectedChat(bob)
	if s.IsMember(bob) || len(s.MembersOfSelected()) != 1 {
		t.Errorf("members after remove = %+v", s.MembersOfSelected())
	}

	addr, ok := s.AddressOf(alice)
	if !ok || addr.Port != 9001 {
		t.Errorf("address of alice = %+v, %v", addr, ok)
	}
	if u, ok := s.FindUser(alice.ID); !ok || u.Name != "alice" {
		t.Errorf("find user = %+v, %v", u, ok)
	}
}

func TestPushMessageOffline(t *testing.T) {
	s := newTestState(t, nil)
	if n := s.PushMessage("nobody"); n != 0 || !errors.Is(s.LastError(), ErrNoChatSelected) {
		t.Fatalf("push without chat = %d, %v", n, s.LastError())
	}

	me := mustUser(t, s, "me", "127.0.0.1", 9000)
	mustChat(t, s, "solo")
	s.SelectNextChat()
	s.AddUserToSelectedChat(me)

	if n := s.PushMessage("hello"); n != 0 {
		t.Errorf("sends = %d, want 0 to self", n)
	}
	msgs := s.MessagesOfSelected()
	if len(msgs) != 1 {
		t.Fatalf("messages = %d", len(msgs))
	}
	m := msgs[0]
	if m.Content != "hello" || !m.Local() || m.Pending() || !m.Sent {
		t.Errorf("message = %+v", m)
	}
}

func TestPushMessageUnreachableMember(t *testing.T) {
	db := openDB(t)
	s := NewState("me", 9000, db, nil)
	ghost := mustUser(t, s, "ghost", "127.0.0.1", 9001)
	mustChat(t, s, "general")
	s.SelectNextChat()
	s.AddUserToSelectedChat(ghost)

	// Drop the address row behind the cached user
	if err := db.Exec("PRAGMA foreign_keys = OFF"); err != nil {
		t.Fatalf("pragma: %v", err)
	}
	if err := db.Exec("DELETE FROM Address WHERE id = ?", ghost.AddressID); err != nil {
		t.Fatalf("delete address: %v", err)
	}

	if n := s.PushMessage("anyone?"); n != 0 {
		t.Errorf("sends = %d, want 0", n)
	}
	m := s.MessagesOfSelected()[0]
	if m.Error == "" || m.Sent {
		t.Errorf("message = %+v, want error without sent", m)
	}
	if s.LastError() == nil {
		t.Error("address failure not recorded")
	}
}

func TestPushMessageDelivers(t *testing.T) {
	cfg := network.DefaultConfig()
	cfg.ListenHost = "127.0.0.1"
	cfg.Port = 0
	cfg.ReadTimeout = 20 * time.Millisecond

	queue := event.NewQueue[network.Inbound](8)
	l := network.NewListener(cfg, queue)
	if err := l.Start(); err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer l.Stop()
	port := l.Addr().(*net.UDPAddr).Port

	sender := network.NewSender(cfg, network.NewOutbox(8))
	s := newTestState(t, sender)
	peer := mustUser(t, s, "peer", "127.0.0.1", port)
	mustChat(t, s, "general")
	s.SelectNextChat()
	s.AddUserToSelectedChat(peer)

	if n := s.PushMessage("ping"); n != 1 {
		t.Fatalf("sends = %d, want 1", n)
	}
	if !s.MessagesOfSelected()[0].Pending() {
		t.Error("message should be pending before the result is polled")
	}
	if !sender.Outbox().WaitIdle(2 * time.Second) {
		t.Fatal("send did not finish")
	}

	results := s.PollOutbound()
	if len(results) != 1 || results[0].Err != nil {
		t.Fatalf("results = %+v", results)
	}
	m := s.MessagesOfSelected()[0]
	if !m.Sent || m.Error != "" {
		t.Errorf("message after poll = %+v", m)
	}

	deadline := time.Now().Add(2 * time.Second)
	for queue.Len() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	in := queue.Drain()
	if len(in) != 1 {
		t.Fatalf("received %d datagrams", len(in))
	}
	want := network.Envelope{Content: "ping", SentBy: "me", SentFrom: "general"}
	if in[0].Envelope != want {
		t.Errorf("envelope = %+v, want %+v", in[0].Envelope, want)
	}
}

func TestPollOutboundRecordsErrors(t *testing.T) {
	sender := network.NewSender(network.DefaultConfig(), network.NewOutbox(8))
	s := newTestState(t, sender)
	peer := mustUser(t, s, "peer", "127.0.0.1", 9)
	mustChat(t, s, "general")
	s.SelectNextChat()
	s.AddUserToSelectedChat(peer)

	// A cancelled caller context makes the send finish with an error
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.ctx = ctx

	s.PushMessage("lost")
	if !sender.Outbox().WaitIdle(2 * time.Second) {
		t.Fatal("send did not finish")
	}
	results := s.PollOutbound()
	if len(results) != 1 || results[0].Err == nil {
		t.Fatalf("results = %+v", results)
	}
	m := s.MessagesOfSelected()[0]
	if m.Error == "" || m.Sent || m.Pending() {
		t.Errorf("message = %+v", m)
	}
}

func TestRecvMessage(t *testing.T) {
	s := newTestState(t, nil)
	bob := mustUser(t, s, "bob", "127.0.0.1", 9002)
	mustChat(t, s, "general")
	mustChat(t, s, "random")
	s.SelectNextChat()
	s.AddUserToSelectedChat(bob)

	if n := s.RecvMessage(network.Envelope{Content: "yo", SentBy: "bob", SentFrom: "general"}); n != 1 {
		t.Fatalf("stored = %d, want 1", n)
	}
	if n := s.RecvMessage(network.Envelope{Content: "?", SentBy: "bob", SentFrom: "random"}); n != 0 {
		t.Errorf("non-member chat stored %d", n)
	}
	if n := s.RecvMessage(network.Envelope{Content: "?", SentBy: "eve", SentFrom: "general"}); n != 0 {
		t.Errorf("unknown sender stored %d", n)
	}

	msgs := s.MessagesOfSelected()
	if len(msgs) != 1 {
		t.Fatalf("messages = %d", len(msgs))
	}
	m := msgs[0]
	if m.SentBy != bob.ID || !m.Sent || !m.Received || m.Content != "yo" {
		t.Errorf("message = %+v", m)
	}
}

func TestEditFocus(t *testing.T) {
	s := newTestState(t, nil)
	a, b := NewTextField("", 0), NewTextField("", 0)

	s.BeginEdit(a)
	if !s.Editing() || !s.EditingField(a) || s.EditingField(b) {
		t.Fatal("focus not on a")
	}
	s.EndEdit(b)
	if !s.EditingField(a) {
		t.Error("ending another field released a")
	}
	s.EndEdit(a)
	if s.Editing() {
		t.Error("still editing")
	}
}
