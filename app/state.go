// Package app holds the chat scenes and the state they share
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"

	"github.com/lixenwraith/termchat/dao"
	"github.com/lixenwraith/termchat/network"
	"github.com/lixenwraith/termchat/store"
)

// ErrNoChatSelected is recorded when an operation needs a selected chat
var ErrNoChatSelected = errors.New("app: no chat selected")

// noSelection is the selected index while no chat is selected
const noSelection = -1

// State is the application state shared by every scene
// Owned by the frame goroutine; scenes read it during update and draw
type State struct {
	name string
	port int

	addresses dao.AddressDAO
	users     dao.UserDAO
	chats     dao.ChatDAO
	messages  dao.MessageDAO

	sender *network.Sender
	ctx    context.Context

	chatList []dao.Chat
	userList []dao.User
	members  []dao.User

	// Cached messages of the selected chat, newest first
	messageList  []dao.Message
	messageDirty bool

	selected   int
	membersRev uint64
	lastErr    error

	// Text field receiving raw keys, nil when no field is being edited
	editing *TextField
}

// NewState loads chats and users from db
// sender may be nil, in which case pushed messages never leave the host
func NewState(name string, port int, db *store.Conn, sender *network.Sender) *State {
	s := &State{
		name:         name,
		port:         port,
		addresses:    dao.NewAddressDAO(db),
		users:        dao.NewUserDAO(db),
		chats:        dao.NewChatDAO(db),
		messages:     dao.NewMessageDAO(db),
		sender:       sender,
		ctx:          context.Background(),
		selected:     noSelection,
		messageDirty: true,
	}
	s.FetchChats()
	s.FetchUsers()
	return s
}

// Name returns the local user name sent with every envelope
func (s *State) Name() string { return s.name }

// Port returns the local listening port
func (s *State) Port() int { return s.port }

// LastError returns the most recent storage or send error, nil if none
func (s *State) LastError() error { return s.lastErr }

// record logs err and keeps it for LastError; returns true when err != nil
func (s *State) record(op string, err error) bool {
	if err == nil {
		return false
	}
	s.lastErr = fmt.Errorf("%s: %w", op, err)
	log.Printf("app: %v", s.lastErr)
	return true
}

// --- Selection ---

// HasChatSelected reports whether a chat is selected
func (s *State) HasChatSelected() bool {
	return s.selected >= 0 && s.selected < len(s.chatList)
}

// SelectedIndex returns the selected position in Chats, or -1
func (s *State) SelectedIndex() int {
	if !s.HasChatSelected() {
		return noSelection
	}
	return s.selected
}

// SelectedChat returns the selected chat
func (s *State) SelectedChat() (dao.Chat, bool) {
	if !s.HasChatSelected() {
		return dao.Chat{}, false
	}
	return s.chatList[s.selected], true
}

// SelectNextChat moves the selection forward, wrapping at the end
func (s *State) SelectNextChat() int {
	if len(s.chatList) == 0 {
		return s.DeselectChat()
	}
	s.selected = (s.selected + 1) % len(s.chatList)
	s.selectionChanged()
	return s.selected
}

// SelectPrevChat moves the selection backwards, wrapping to the last chat
func (s *State) SelectPrevChat() int {
	if len(s.chatList) == 0 {
		return s.DeselectChat()
	}
	s.selected--
	if s.selected < 0 {
		s.selected = len(s.chatList) - 1
	}
	s.selectionChanged()
	return s.selected
}

// DeselectChat clears the selection
func (s *State) DeselectChat() int {
	s.selected = noSelection
	s.selectionChanged()
	return s.selected
}

func (s *State) selectionChanged() {
	s.FetchMembers()
	s.FetchUsers()
	s.messageDirty = true
}

// --- Cached lists ---

// Chats returns every chat ordered by id
func (s *State) Chats() []dao.Chat { return s.chatList }

// Users returns every known user ordered by id
func (s *State) Users() []dao.User { return s.userList }

// MembersOfSelected returns the members of the selected chat
func (s *State) MembersOfSelected() []dao.User { return s.members }

// FindUser looks a user up in the cached list
func (s *State) FindUser(id int64) (dao.User, bool) {
	i := slices.IndexFunc(s.userList, func(u dao.User) bool { return u.ID == id })
	if i < 0 {
		return dao.User{}, false
	}
	return s.userList[i], true
}

// AddressOf returns the address a user is reached at
func (s *State) AddressOf(u dao.User) (dao.Address, bool) {
	a, err := s.addresses.WithID(u.AddressID)
	if s.record("address of "+u.Name, err) {
		return dao.Address{}, false
	}
	return a, true
}

// IsMember reports whether u belongs to the selected chat
func (s *State) IsMember(u dao.User) bool {
	return slices.ContainsFunc(s.members, func(m dao.User) bool { return m.ID == u.ID })
}

// FetchChats reloads the chat list, keeping the selection in range
func (s *State) FetchChats() {
	chats, err := s.chats.All()
	if s.record("fetch chats", err) {
		return
	}
	s.chatList = chats
	if s.selected >= len(chats) {
		s.selected = noSelection
		s.members = nil
		s.membersRev++
	}
	s.messageDirty = true
}

// FetchUsers reloads the user list
func (s *State) FetchUsers() {
	users, err := s.users.All()
	if s.record("fetch users", err) {
		return
	}
	s.userList = users
}

// FetchMembers reloads the members of the selected chat
func (s *State) FetchMembers() {
	chat, ok := s.SelectedChat()
	if !ok {
		s.members = nil
		s.membersRev++
		return
	}
	members, err := s.users.AllForChat(chat.ID)
	if s.record("fetch members", err) {
		return
	}
	s.members = members
	s.membersRev++
}

// MembersRevision changes whenever the member list is reloaded or cleared
func (s *State) MembersRevision() uint64 { return s.membersRev }

// --- Mutations ---

// AddUserToSelectedChat adds u to the selected chat; a member is left alone
func (s *State) AddUserToSelectedChat(u dao.User) {
	chat, ok := s.SelectedChat()
	if !ok {
		s.record("add user", ErrNoChatSelected)
		return
	}
	if s.record("add user", s.chats.AddUser(chat, u)) {
		return
	}
	s.FetchMembers()
}

// RemoveUserFromSelectedChat removes u from the selected chat
func (s *State) RemoveUserFromSelectedChat(u dao.User) {
	chat, ok := s.SelectedChat()
	if !ok {
		s.record("remove user", ErrNoChatSelected)
		return
	}
	if s.record("remove user", s.chats.RemoveUser(chat, u)) {
		return
	}
	s.FetchMembers()
}

// InsertUser stores addr, then u pointing at it
func (s *State) InsertUser(u dao.User, addr dao.Address) (dao.User, error) {
	aid, err := s.addresses.Insert(addr)
	if s.record("insert address", err) {
		return dao.User{}, s.lastErr
	}
	u.AddressID = aid
	if u.ID, err = s.users.Insert(u); s.record("insert user", err) {
		return dao.User{}, s.lastErr
	}
	s.FetchUsers()
	return u, nil
}

// InsertChat stores c and reloads the chat list
func (s *State) InsertChat(c dao.Chat) (dao.Chat, error) {
	id, err := s.chats.Insert(c)
	if s.record("insert chat", err) {
		return dao.Chat{}, s.lastErr
	}
	c.ID = id
	s.FetchChats()
	return c, nil
}

// --- Messages ---

// MessagesOfSelected returns the selected chat's messages, newest first
func (s *State) MessagesOfSelected() []dao.Message {
	if !s.messageDirty {
		return s.messageList
	}
	s.messageDirty = false
	s.messageList = nil

	chat, ok := s.SelectedChat()
	if !ok {
		return nil
	}
	msgs, err := s.messages.AllForChat(chat.ID)
	if s.record("fetch messages", err) {
		return nil
	}
	s.messageList = msgs
	return msgs
}

// PushMessage stores text as a local message of the selected chat and sends
// it to every member except the local user
// Returns the number of sends started
func (s *State) PushMessage(text string) int {
	chat, ok := s.SelectedChat()
	if !ok {
		s.record("push message", ErrNoChatSelected)
		return 0
	}

	id, err := s.messages.Insert(dao.Message{
		Content: text,
		ChatID:  chat.ID,
		SentBy:  dao.LocalSender,
	})
	if s.record("push message", err) {
		return 0
	}
	s.messageDirty = true

	env := network.Envelope{Content: text, SentBy: s.name, SentFrom: chat.Name}
	started := 0
	failed := false
	for _, m := range s.members {
		if m.Name == s.name {
			continue
		}
		addr, ok := s.AddressOf(m)
		if !ok {
			failed = true
			s.record("mark error", s.messages.UpdateWithError(id, s.lastErr.Error()))
			continue
		}
		if s.sender == nil {
			continue
		}
		s.sender.Send(s.ctx, id, network.Address(addr.Host, addr.Port), env)
		started++
	}

	// Nobody to deliver to: nothing will ever report back
	if started == 0 && !failed {
		s.record("mark sent", s.messages.UpdateWithSent(id, true))
	}
	return started
}

// RecvMessage stores env once for every local user+chat pair it matches
// Returns the number of messages stored
func (s *State) RecvMessage(env network.Envelope) int {
	log.Printf("app: > %s on %s: %s", env.SentBy, env.SentFrom, env.Content)

	pairs, err := s.chats.AllContainingUserAndChat(env.SentBy, env.SentFrom)
	if s.record("recv message", err) {
		return 0
	}
	stored := 0
	for _, p := range pairs {
		_, err := s.messages.Insert(dao.Message{
			Content:  env.Content,
			Sent:     true,
			Received: true,
			ChatID:   p.Chat.ID,
			SentBy:   p.User.ID,
		})
		if s.record("recv message", err) {
			continue
		}
		stored++
	}

	s.FetchUsers()
	s.FetchChats()
	return stored
}

// PollOutbound applies finished sends to their messages
// Returns the results so callers can react to failures
func (s *State) PollOutbound() []network.Result {
	if s.sender == nil {
		return nil
	}
	results := s.sender.Outbox().Poll()
	for _, r := range results {
		if r.Err != nil {
			log.Printf("app: message %d to %s failed: %v", r.LocalID, r.Addr, r.Err)
			s.record("mark error", s.messages.UpdateWithError(r.LocalID, r.Err.Error()))
		} else {
			s.record("mark sent", s.messages.UpdateWithSent(r.LocalID, true))
		}
	}
	if len(results) > 0 {
		s.messageDirty = true
	}
	return results
}

// Pending returns the number of sends still in flight
func (s *State) Pending() int {
	if s.sender == nil {
		return 0
	}
	return s.sender.Outbox().Len()
}

// --- Text entry ---

// BeginEdit routes raw keys to tf until EndEdit; keyed bindings are muted meanwhile
func (s *State) BeginEdit(tf *TextField) { s.editing = tf }

// EndEdit releases tf if it holds the input
func (s *State) EndEdit(tf *TextField) {
	if s.editing == tf {
		s.editing = nil
	}
}

// Editing reports whether any field holds the input
func (s *State) Editing() bool { return s.editing != nil }

// EditingField reports whether tf holds the input
func (s *State) EditingField(tf *TextField) bool { return tf != nil && s.editing == tf }
