package dao

import "github.com/lixenwraith/termchat/store"

// ChatDAO reads and writes the Chat and Chat_has_User tables
type ChatDAO struct {
	db *store.Conn
}

func NewChatDAO(db *store.Conn) ChatDAO { return ChatDAO{db: db} }

func (d ChatDAO) All() ([]Chat, error) {
	out, err := selectAll(d.db, "SELECT id, name, description FROM Chat ORDER BY id", chatFromRow)
	return out, wrap("all chats", err)
}

func (d ChatDAO) WithID(id int64) (Chat, error) {
	c, err := queryOne(d.db, "SELECT id, name, description FROM Chat WHERE id = ?",
		func(s *store.Stmt) { s.BindInt(1, id) }, chatFromRow)
	return c, wrap("chat with id", err)
}

// Insert stores c and returns the new row id
func (d ChatDAO) Insert(c Chat) (int64, error) {
	err := exec(d.db, "INSERT INTO Chat(name, description) VALUES (?, ?)", func(s *store.Stmt) {
		s.BindText(1, c.Name)
		s.BindText(2, c.Description)
	})
	if err != nil {
		return 0, wrap("insert chat", err)
	}
	return d.db.LastInsertID(), nil
}

// AddUser makes user a member of chat; adding an existing member is a no-op
func (d ChatDAO) AddUser(chat Chat, user User) error {
	err := exec(d.db, "INSERT OR IGNORE INTO Chat_has_User(Chat_id, User_id) VALUES (?, ?)", func(s *store.Stmt) {
		s.BindInt(1, chat.ID)
		s.BindInt(2, user.ID)
	})
	return wrap("add user to chat", err)
}

func (d ChatDAO) RemoveUser(chat Chat, user User) error {
	err := exec(d.db, "DELETE FROM Chat_has_User WHERE Chat_id = ? AND User_id = ?", func(s *store.Stmt) {
		s.BindInt(1, chat.ID)
		s.BindInt(2, user.ID)
	})
	return wrap("remove user from chat", err)
}

func userChatFromRow(s *store.Stmt) UserChat {
	return UserChat{
		User: userFromRow(s),
		Chat: Chat{
			ID:          s.ColumnInt(3),
			Name:        s.ColumnText(4),
			Description: s.ColumnText(5),
		},
	}
}

// AllContainingUser returns every chat the users named userName belong to
func (d ChatDAO) AllContainingUser(userName string) ([]UserChat, error) {
	const sql = `
SELECT U.id, U.name, U.user_address, C.id, C.name, C.description
	FROM User AS U
	JOIN Chat_has_User AS CU ON CU.User_id = U.id
	JOIN Chat AS C ON CU.Chat_id = C.id
	WHERE U.name = ?
	ORDER BY C.id, U.id`
	out, err := query(d.db, sql, func(s *store.Stmt) { s.BindText(1, userName) }, userChatFromRow)
	return out, wrap("chats containing user", err)
}

// AllContainingUserAndChat returns every (user, chat) membership matching both names
func (d ChatDAO) AllContainingUserAndChat(userName, chatName string) ([]UserChat, error) {
	const sql = `
SELECT U.id, U.name, U.user_address, C.id, C.name, C.description
	FROM User AS U
	JOIN Chat_has_User AS CU ON CU.User_id = U.id
	JOIN Chat AS C ON CU.Chat_id = C.id
	WHERE U.name = ? AND C.name = ?
	ORDER BY C.id, U.id`
	out, err := query(d.db, sql, func(s *store.Stmt) {
		s.BindText(1, userName)
		s.BindText(2, chatName)
	}, userChatFromRow)
	return out, wrap("chats containing user and chat", err)
}
