// Package dao maps the chat tables onto Go models
// Each DAO prepares its statements per call and closes them before returning.
package dao

import (
	"fmt"

	"github.com/lixenwraith/termchat/store"
)

// selectAll collects every row of query through scan
func selectAll[T any](db *store.Conn, query string, scan func(*store.Stmt) T) ([]T, error) {
	var out []T
	err := db.ExecMany(query, func(s *store.Stmt) {
		out = append(out, scan(s))
	})
	return out, err
}

// query prepares sql, lets bind fill parameters, and collects rows through scan
func query[T any](db *store.Conn, sql string, bind func(*store.Stmt), scan func(*store.Stmt) T) ([]T, error) {
	s, err := db.Prepare(sql)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	if bind != nil {
		bind(s)
	}
	var out []T
	for {
		res, err := s.Step()
		if err != nil {
			return nil, err
		}
		if res == store.Done {
			return out, nil
		}
		out = append(out, scan(s))
	}
}

// queryOne is query for a single required row
func queryOne[T any](db *store.Conn, sql string, bind func(*store.Stmt), scan func(*store.Stmt) T) (T, error) {
	var zero T
	s, err := db.Prepare(sql)
	if err != nil {
		return zero, err
	}
	defer s.Close()

	if bind != nil {
		bind(s)
	}
	if err := s.StepRow(); err != nil {
		return zero, err
	}
	return scan(s), nil
}

// exec prepares sql, binds, and steps it once
func exec(db *store.Conn, sql string, bind func(*store.Stmt)) error {
	s, err := db.Prepare(sql)
	if err != nil {
		return err
	}
	defer s.Close()

	bind(s)
	if _, err := s.Step(); err != nil {
		return err
	}
	return nil
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("dao: %s: %w", op, err)
}
