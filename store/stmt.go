package store

import (
	"database/sql"
	"fmt"
	"strconv"
)

// Result is the outcome of one Step
type Result uint8

const (
	// Row means a result row is available through the Column accessors
	Row Result = iota + 1
	// Done means the statement has finished; further steps keep returning Done
	Done
)

func (r Result) String() string {
	switch r {
	case Row:
		return "row"
	case Done:
		return "done"
	}
	return "invalid"
}

// Stmt is a prepared statement with a forward-only row cursor
// Not safe for concurrent use
type Stmt struct {
	conn    *Conn
	stmt    *sql.Stmt
	sql     string
	returns bool

	args []any

	// Rows are buffered on the first step so the single connection is never
	// held between steps
	rows    [][]any
	cursor  int
	started bool
	closed  bool
}

// SQL returns the statement text
func (s *Stmt) SQL() string { return s.sql }

func (s *Stmt) bind(i int, v any) {
	if i < 1 {
		return
	}
	for len(s.args) < i {
		s.args = append(s.args, nil)
	}
	s.args[i-1] = v
}

// BindInt binds parameter i (1-based)
func (s *Stmt) BindInt(i int, v int64) { s.bind(i, v) }

// BindText binds parameter i (1-based)
func (s *Stmt) BindText(i int, v string) { s.bind(i, v) }

// BindBool binds parameter i as 0 or 1
func (s *Stmt) BindBool(i int, v bool) {
	if v {
		s.bind(i, int64(1))
	} else {
		s.bind(i, int64(0))
	}
}

// BindNull binds parameter i to NULL
func (s *Stmt) BindNull(i int) { s.bind(i, nil) }

// ClearBindings drops every bound parameter
func (s *Stmt) ClearBindings() { s.args = s.args[:0] }

// Step runs the statement on first call and advances the cursor afterwards
func (s *Stmt) Step() (Result, error) {
	if s.closed {
		return Done, ErrClosed
	}
	if !s.started {
		s.started = true
		s.cursor = -1
		if err := s.run(); err != nil {
			return Done, err
		}
	}
	if s.cursor < len(s.rows) {
		s.cursor++
	}
	if s.cursor < len(s.rows) {
		return Row, nil
	}
	return Done, nil
}

// StepRow steps once and fails with ErrDone when no row is produced
func (s *Stmt) StepRow() error {
	res, err := s.Step()
	if err != nil {
		return err
	}
	if res != Row {
		return dbError("step", s.sql, ErrDone)
	}
	return nil
}

func (s *Stmt) run() error {
	if !s.returns {
		res, err := s.stmt.Exec(s.args...)
		if err != nil {
			return dbError("step", s.sql, err)
		}
		s.conn.recordResult(res)
		return nil
	}

	rows, err := s.stmt.Query(s.args...)
	if err != nil {
		return dbError("step", s.sql, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return dbError("step", s.sql, err)
	}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return dbError("step", s.sql, err)
		}
		s.rows = append(s.rows, vals)
	}
	return dbError("step", s.sql, rows.Err())
}

// Reset rewinds the statement; bindings are kept
func (s *Stmt) Reset() {
	s.rows = s.rows[:0]
	s.cursor = 0
	s.started = false
}

// Close releases the statement; idempotent
func (s *Stmt) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.rows = nil
	return dbError("close", s.sql, s.stmt.Close())
}

// ColumnCount returns the width of the current row
func (s *Stmt) ColumnCount() int {
	if row := s.current(); row != nil {
		return len(row)
	}
	return 0
}

func (s *Stmt) current() []any {
	if !s.started || s.cursor < 0 || s.cursor >= len(s.rows) {
		return nil
	}
	return s.rows[s.cursor]
}

func (s *Stmt) column(i int) any {
	row := s.current()
	if i < 0 || i >= len(row) {
		return nil
	}
	return row[i]
}

// ColumnInt reads column i (0-based) of the current row as an integer
// NULL, missing and non-numeric values read as 0
func (s *Stmt) ColumnInt(i int) int64 {
	switch v := s.column(i).(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	case bool:
		if v {
			return 1
		}
	case []byte:
		n, _ := strconv.ParseInt(string(v), 10, 64)
		return n
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	}
	return 0
}

// ColumnText reads column i (0-based) of the current row as text
// NULL and missing values read as the empty string
func (s *Stmt) ColumnText(i int) string {
	switch v := s.column(i).(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprint(v)
	}
}

// ColumnBool reads column i as a flag stored in an integer column
func (s *Stmt) ColumnBool(i int) bool {
	return s.ColumnInt(i) != 0
}

// ColumnNull reports whether column i of the current row is NULL
func (s *Stmt) ColumnNull(i int) bool {
	return s.column(i) == nil
}
