package dao

import "github.com/lixenwraith/termchat/store"

const messageColumns = "id, content, sent, received, error, in_chat, sent_by"

// MessageDAO reads and writes the Message table
type MessageDAO struct {
	db *store.Conn
}

func NewMessageDAO(db *store.Conn) MessageDAO { return MessageDAO{db: db} }

func (d MessageDAO) All() ([]Message, error) {
	out, err := selectAll(d.db, "SELECT "+messageColumns+" FROM Message ORDER BY id", messageFromRow)
	return out, wrap("all messages", err)
}

func (d MessageDAO) WithID(id int64) (Message, error) {
	m, err := queryOne(d.db, "SELECT "+messageColumns+" FROM Message WHERE id = ?",
		func(s *store.Stmt) { s.BindInt(1, id) }, messageFromRow)
	return m, wrap("message with id", err)
}

// AllForChat returns the messages of chatID, newest first
func (d MessageDAO) AllForChat(chatID int64) ([]Message, error) {
	out, err := query(d.db, "SELECT "+messageColumns+" FROM Message WHERE in_chat = ? ORDER BY id DESC",
		func(s *store.Stmt) { s.BindInt(1, chatID) }, messageFromRow)
	return out, wrap("messages of chat", err)
}

// Insert stores m and returns the new row id; m.ID is ignored
func (d MessageDAO) Insert(m Message) (int64, error) {
	const sql = "INSERT INTO Message(content, sent, received, error, in_chat, sent_by) VALUES (?, ?, ?, ?, ?, ?)"
	err := exec(d.db, sql, func(s *store.Stmt) {
		s.BindText(1, m.Content)
		s.BindBool(2, m.Sent)
		s.BindBool(3, m.Received)
		s.BindText(4, m.Error)
		s.BindInt(5, m.ChatID)
		s.BindInt(6, m.SentBy)
	})
	if err != nil {
		return 0, wrap("insert message", err)
	}
	return d.db.LastInsertID(), nil
}

func (d MessageDAO) UpdateWithError(id int64, msg string) error {
	err := exec(d.db, "UPDATE Message SET error = ? WHERE id = ?", func(s *store.Stmt) {
		s.BindText(1, msg)
		s.BindInt(2, id)
	})
	return wrap("update message error", err)
}

func (d MessageDAO) UpdateWithSent(id int64, sent bool) error {
	err := exec(d.db, "UPDATE Message SET sent = ? WHERE id = ?", func(s *store.Stmt) {
		s.BindBool(1, sent)
		s.BindInt(2, id)
	})
	return wrap("update message sent", err)
}
