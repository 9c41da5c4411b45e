// Package store is a row-cursor layer over an embedded SQLite database
//
// Statements are prepared once, bound by 1-based parameter index, stepped row by
// row and read by 0-based column index. All access happens from the frame
// thread, so a connection holds a single underlying database connection.
package store

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// Schema creates every table the chat DAOs use; safe to apply repeatedly
//
//go:embed schema.sql
var Schema string

// MemoryPath opens a private in-memory database
const MemoryPath = ":memory:"

// Conn is an open database
type Conn struct {
	db     *sql.DB
	lastID int64
	closed bool
}

// Open opens or creates the database at path
func Open(path string) (*Conn, error) {
	if path == "" {
		path = MemoryPath
	}

	dsn := path
	if path != MemoryPath {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, dbError("open", "", fmt.Errorf("create directory: %w", err))
			}
		}
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
		dsn += "&_pragma=foreign_keys(1)&_pragma=busy_timeout(2000)"
	} else {
		dsn = path + "?_pragma=foreign_keys(1)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, dbError("open", "", err)
	}
	// One connection: in-memory databases are per connection and LastInsertID
	// must observe the same session
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, dbError("open", "", err)
	}
	return &Conn{db: db}, nil
}

// Close releases the database; idempotent
func (c *Conn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return dbError("close", "", c.db.Close())
}

// ApplySchema runs a multi-statement DDL script
func (c *Conn) ApplySchema(script string) error {
	if c.closed {
		return ErrClosed
	}
	for _, stmt := range SplitStatements(script) {
		if _, err := c.db.Exec(stmt); err != nil {
			return dbError("schema", stmt, err)
		}
	}
	return nil
}

// Exec runs one statement that returns no rows
func (c *Conn) Exec(query string, args ...any) error {
	if c.closed {
		return ErrClosed
	}
	res, err := c.db.Exec(query, args...)
	if err != nil {
		return dbError("exec", query, err)
	}
	c.recordResult(res)
	return nil
}

// ExecMany runs every statement of script in order, calling fn once per
// result row with the statement positioned on that row
func (c *Conn) ExecMany(script string, fn func(*Stmt)) error {
	for _, text := range SplitStatements(script) {
		stmt, err := c.Prepare(text)
		if err != nil {
			return err
		}
		for {
			res, err := stmt.Step()
			if err != nil {
				stmt.Close()
				return err
			}
			if res == Done {
				break
			}
			if fn != nil {
				fn(stmt)
			}
		}
		if err := stmt.Close(); err != nil {
			return err
		}
	}
	return nil
}

// Prepare compiles one statement; syntax errors surface here
func (c *Conn) Prepare(query string) (*Stmt, error) {
	if c.closed {
		return nil, ErrClosed
	}
	ps, err := c.db.Prepare(query)
	if err != nil {
		return nil, dbError("prepare", query, err)
	}
	return &Stmt{
		conn:    c,
		stmt:    ps,
		sql:     query,
		returns: returnsRows(query),
	}, nil
}

// LastInsertID returns the rowid of the most recent successful insert
func (c *Conn) LastInsertID() int64 {
	return c.lastID
}

func (c *Conn) recordResult(res sql.Result) {
	if id, err := res.LastInsertId(); err == nil && id != 0 {
		c.lastID = id
	}
}

// returnsRows decides between query and exec from the leading keyword
func returnsRows(query string) bool {
	q := strings.TrimSpace(stripLeadingComments(query))
	word := q
	if i := strings.IndexFunc(q, func(r rune) bool {
		return r == ' ' || r == '\n' || r == '\t' || r == '(' || r == '\r'
	}); i >= 0 {
		word = q[:i]
	}
	switch strings.ToUpper(word) {
	case "SELECT", "WITH", "PRAGMA", "VALUES", "EXPLAIN":
		return true
	}
	return strings.Contains(strings.ToUpper(q), " RETURNING ")
}

func stripLeadingComments(s string) string {
	for {
		s = strings.TrimLeft(s, " \t\r\n")
		switch {
		case strings.HasPrefix(s, "--"):
			i := strings.IndexByte(s, '\n')
			if i < 0 {
				return ""
			}
			s = s[i+1:]
		case strings.HasPrefix(s, "/*"):
			i := strings.Index(s, "*/")
			if i < 0 {
				return ""
			}
			s = s[i+2:]
		default:
			return s
		}
	}
}
