package dao

import "github.com/lixenwraith/termchat/store"

// LocalSender marks a message written by the local user
const LocalSender int64 = -1

// Address is a row of the Address table
type Address struct {
	ID   int64
	Host string
	Port int
}

// User is a row of the User table; AddressID references Address
type User struct {
	ID        int64
	Name      string
	AddressID int64
}

// Chat is a row of the Chat table
type Chat struct {
	ID          int64
	Name        string
	Description string
}

// Message is a row of the Message table
// SentBy is a User id, or LocalSender for messages written here
type Message struct {
	ID       int64
	Content  string
	Sent     bool
	Received bool
	Error    string
	ChatID   int64
	SentBy   int64
}

// Local reports whether the message was written by the local user
func (m Message) Local() bool { return m.SentBy == LocalSender }

// Pending reports whether a local message is still waiting for a send result
func (m Message) Pending() bool { return m.Local() && !m.Sent && m.Error == "" }

// UserChat pairs a user with one chat it belongs to
type UserChat struct {
	User User
	Chat Chat
}

func addressFromRow(s *store.Stmt) Address {
	return Address{
		ID:   s.ColumnInt(0),
		Host: s.ColumnText(1),
		Port: int(s.ColumnInt(2)),
	}
}

func userFromRow(s *store.Stmt) User {
	return User{
		ID:        s.ColumnInt(0),
		Name:      s.ColumnText(1),
		AddressID: s.ColumnInt(2),
	}
}

func chatFromRow(s *store.Stmt) Chat {
	return Chat{
		ID:          s.ColumnInt(0),
		Name:        s.ColumnText(1),
		Description: s.ColumnText(2),
	}
}

func messageFromRow(s *store.Stmt) Message {
	return Message{
		ID:       s.ColumnInt(0),
		Content:  s.ColumnText(1),
		Sent:     s.ColumnBool(2),
		Received: s.ColumnBool(3),
		Error:    s.ColumnText(4),
		ChatID:   s.ColumnInt(5),
		SentBy:   s.ColumnInt(6),
	}
}
