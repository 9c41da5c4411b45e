package dao

import "github.com/lixenwraith/termchat/store"

// UserDAO reads and writes the User table
type UserDAO struct {
	db *store.Conn
}

func NewUserDAO(db *store.Conn) UserDAO { return UserDAO{db: db} }

func (d UserDAO) All() ([]User, error) {
	out, err := selectAll(d.db, "SELECT id, name, user_address FROM User ORDER BY id", userFromRow)
	return out, wrap("all users", err)
}

// AllForChat returns the members of chatID
func (d UserDAO) AllForChat(chatID int64) ([]User, error) {
	const sql = `
SELECT U.id, U.name, U.user_address FROM User AS U
	JOIN Chat_has_User AS CU ON CU.User_id = U.id
	WHERE CU.Chat_id = ?
	ORDER BY U.id`
	out, err := query(d.db, sql, func(s *store.Stmt) { s.BindInt(1, chatID) }, userFromRow)
	return out, wrap("users of chat", err)
}

func (d UserDAO) WithID(id int64) (User, error) {
	u, err := queryOne(d.db, "SELECT id, name, user_address FROM User WHERE id = ?",
		func(s *store.Stmt) { s.BindInt(1, id) }, userFromRow)
	return u, wrap("user with id", err)
}

// WithName returns every user registered under name
func (d UserDAO) WithName(name string) ([]User, error) {
	out, err := query(d.db, "SELECT id, name, user_address FROM User WHERE name = ? ORDER BY id",
		func(s *store.Stmt) { s.BindText(1, name) }, userFromRow)
	return out, wrap("users with name", err)
}

// Insert stores u and returns the new row id
func (d UserDAO) Insert(u User) (int64, error) {
	err := exec(d.db, "INSERT INTO User(name, user_address) VALUES (?, ?)", func(s *store.Stmt) {
		s.BindText(1, u.Name)
		s.BindInt(2, u.AddressID)
	})
	if err != nil {
		return 0, wrap("insert user", err)
	}
	return d.db.LastInsertID(), nil
}
