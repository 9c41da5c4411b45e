package engine

import "github.com/lixenwraith/termchat/screen"

// Box decorates one child with a border
type Box struct {
	Options screen.BoxOptions
	child   Scene
}

// NewBox wraps child with opts
func NewBox(opts screen.BoxOptions, child Scene) *Box {
	return &Box{Options: opts, child: child}
}

func (b *Box) Update(e *Engine) { b.child.Update(e) }

// Draw paints the border on the region edge and gives the child the inside
func (b *Box) Draw(e *Engine, t screen.Transform, s screen.Size, buf *screen.Buffer) {
	buf.Box(t, s.W, s.H, b.Options)
	b.child.Draw(e, t.Move(1, 1), s.Shrink(2), buf)
}

func (b *Box) Mount(e *Engine)   { b.child.Mount(e) }
func (b *Box) Unmount(e *Engine) { b.child.Unmount(e) }
