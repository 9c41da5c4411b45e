package store

import (
	"errors"
	"fmt"
)

// ErrDone is returned when a row was required but the statement finished
var ErrDone = errors.New("store: statement returned no row")

// ErrClosed is returned by operations on a closed statement or connection
var ErrClosed = errors.New("store: closed")

// DatabaseError carries the failing operation and statement text
type DatabaseError struct {
	Op  string
	SQL string
	Err error
}

func (e *DatabaseError) Error() string {
	if e.SQL == "" {
		return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("store: %s %q: %v", e.Op, abbreviate(e.SQL), e.Err)
}

func (e *DatabaseError) Unwrap() error { return e.Err }

func dbError(op, sql string, err error) error {
	if err == nil {
		return nil
	}
	return &DatabaseError{Op: op, SQL: sql, Err: err}
}

// abbreviate keeps error messages on one readable line
func abbreviate(sql string) string {
	const limit = 60
	out := make([]rune, 0, limit)
	space := false
	for _, r := range sql {
		if r == '\n' || r == '\t' || r == ' ' {
			if space || len(out) == 0 {
				continue
			}
			space = true
			r = ' '
		} else {
			space = false
		}
		if len(out) == limit {
			return string(out) + "..."
		}
		out = append(out, r)
	}
	return string(out)
}
