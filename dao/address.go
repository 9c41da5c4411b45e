package dao

import "github.com/lixenwraith/termchat/store"

// AddressDAO reads and writes the Address table
type AddressDAO struct {
	db *store.Conn
}

func NewAddressDAO(db *store.Conn) AddressDAO { return AddressDAO{db: db} }

func (d AddressDAO) All() ([]Address, error) {
	out, err := selectAll(d.db, "SELECT id, host, port FROM Address", addressFromRow)
	return out, wrap("all addresses", err)
}

func (d AddressDAO) WithID(id int64) (Address, error) {
	a, err := queryOne(d.db, "SELECT id, host, port FROM Address WHERE id = ?",
		func(s *store.Stmt) { s.BindInt(1, id) }, addressFromRow)
	return a, wrap("address with id", err)
}

// Insert stores a and returns the new row id
func (d AddressDAO) Insert(a Address) (int64, error) {
	err := exec(d.db, "INSERT INTO Address(host, port) VALUES (?, ?)", func(s *store.Stmt) {
		s.BindText(1, a.Host)
		s.BindInt(2, int64(a.Port))
	})
	if err != nil {
		return 0, wrap("insert address", err)
	}
	return d.db.LastInsertID(), nil
}
