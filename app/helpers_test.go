package app

import (
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/termchat/config"
	"github.com/lixenwraith/termchat/dao"
	"github.com/lixenwraith/termchat/engine"
	"github.com/lixenwraith/termchat/event"
	"github.com/lixenwraith/termchat/network"
	"github.com/lixenwraith/termchat/screen"
	"github.com/lixenwraith/termchat/store"
	"github.com/lixenwraith/termchat/terminal"
)

// stubDriver is a silent terminal of fixed size
type stubDriver struct{ w, h int }

func (d *stubDriver) Home()                                     {}
func (d *stubDriver) WriteRun(terminal.Style, []byte) error     { return nil }
func (d *stubDriver) Flush() error                              { return nil }
func (d *stubDriver) Init() error                               { return nil }
func (d *stubDriver) Fini()                                     {}
func (d *stubDriver) Size() (int, int)                          { return d.w, d.h }
func (d *stubDriver) UpdateSize() (int, int)                    { return d.w, d.h }
func (d *stubDriver) ReadAvailable() ([]byte, error)            { return nil, nil }
func (d *stubDriver) ReadTimeout(time.Duration) ([]byte, error) { return nil, nil }
func (d *stubDriver) Write(p []byte) (int, error)               { return len(p), nil }
func (d *stubDriver) MoveCursor(x, y int)                       {}
func (d *stubDriver) ResizeNotify(fn func())                    {}

func newEngine() *engine.Engine {
	return engine.New(&stubDriver{w: 120, h: 40}, engine.Config{})
}

func keymap(t *testing.T) config.Keymap {
	t.Helper()
	km, err := config.Default().Keymap()
	if err != nil {
		t.Fatalf("keymap: %v", err)
	}
	return km
}

func openDB(t *testing.T) *store.Conn {
	t.Helper()
	db, err := store.Open(store.MemoryPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.ApplySchema(store.Schema); err != nil {
		t.Fatalf("schema: %v", err)
	}
	return db
}

// newTestState opens an empty store; sender may be nil
func newTestState(t *testing.T, sender *network.Sender) *State {
	t.Helper()
	return NewState("me", 9000, openDB(t), sender)
}

func mustUser(t *testing.T, s *State, name, host string, port int) dao.User {
	t.Helper()
	u, err := s.InsertUser(dao.User{Name: name}, dao.Address{Host: host, Port: port})
	if err != nil {
		t.Fatalf("insert user %s: %v", name, err)
	}
	return u
}

func mustChat(t *testing.T, s *State, name string) dao.Chat {
	t.Helper()
	c, err := s.InsertChat(dao.Chat{Name: name, Description: name + " talk"})
	if err != nil {
		t.Fatalf("insert chat %s: %v", name, err)
	}
	return c
}

// typeText dispatches every rune of text
func typeText(bus *event.Bus, text string) {
	for _, r := range text {
		bus.Dispatch(event.Char(r))
	}
}

// frame runs update and draw of scene on a cleared buffer
func frame(e *engine.Engine, scene engine.Scene) *screen.Buffer {
	buf := e.Buffer()
	buf.Clear()
	scene.Update(e)
	scene.Draw(e, screen.Transform{}, buf.Size(), buf)
	return buf
}

// row returns the text of line y
func row(buf *screen.Buffer, y int) string {
	var b strings.Builder
	for x := range buf.Size().W {
		p, _ := buf.Cell(x, y)
		if p.Rune != 0 {
			b.WriteRune(p.Rune)
		}
	}
	return b.String()
}

// screenText returns every line joined by newlines
func screenText(buf *screen.Buffer) string {
	lines := make([]string, buf.Size().H)
	for y := range lines {
		lines[y] = row(buf, y)
	}
	return strings.Join(lines, "\n")
}
