package app

import (
	"github.com/lixenwraith/termchat/config"
	"github.com/lixenwraith/termchat/engine"
	"github.com/lixenwraith/termchat/screen"
)

// Sidebar splits its region between a side panel and content
// When shown, the panel takes a third of the width followed by a '|' column
type Sidebar struct {
	side    engine.Scene
	content engine.Scene
	keys    config.Keymap

	shown bool
	binds bindings
}

// NewSidebar creates a sidebar that starts shown
func NewSidebar(state *State, keys config.Keymap, side, content engine.Scene) *Sidebar {
	return &Sidebar{
		side:    side,
		content: content,
		keys:    keys,
		shown:   true,
		binds:   bindings{state: state},
	}
}

// Shown reports whether the side panel is visible
func (b *Sidebar) Shown() bool { return b.shown }

// Toggle flips the side panel
func (b *Sidebar) Toggle() { b.shown = !b.shown }

func (b *Sidebar) Update(e *engine.Engine) {
	b.side.Update(e)
	b.content.Update(e)
}

func (b *Sidebar) Draw(e *engine.Engine, t screen.Transform, s screen.Size, buf *screen.Buffer) {
	if !b.shown {
		b.content.Draw(e, t, s, buf)
		return
	}

	width := s.W / 3
	b.side.Draw(e, t, screen.Size{W: width, H: s.H}, buf)
	buf.VLine(t.X+width, t.Y, t.Y+s.H, screen.P('|'))
	b.content.Draw(e, t.Move(width+1, 0), s.Sub(screen.Size{W: width + 1}), buf)
}

func (b *Sidebar) Mount(e *engine.Engine) {
	b.binds.on(e.Bus(), b.keys.Key(config.ActionToggleSidebar), b.Toggle)
	b.side.Mount(e)
	b.content.Mount(e)
}

func (b *Sidebar) Unmount(e *engine.Engine) {
	b.binds.release(e.Bus())
	b.side.Unmount(e)
	b.content.Unmount(e)
}
