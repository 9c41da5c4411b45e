package engine

import "github.com/lixenwraith/termchat/screen"

// Sequence forwards to children with one shared offset
// It does not track mount state; children follow the sequence's own lifecycle
type Sequence struct {
	Offset   screen.Transform
	children []Scene
}

// NewSequence creates a sequence drawing its children at offset
func NewSequence(offset screen.Transform, children ...Scene) *Sequence {
	return &Sequence{Offset: offset, children: children}
}

// Append adds a child; it is mounted with the sequence
func (q *Sequence) Append(child Scene) {
	q.children = append(q.children, child)
}

func (q *Sequence) Update(e *Engine) {
	for _, c := range q.children {
		c.Update(e)
	}
}

func (q *Sequence) Draw(e *Engine, t screen.Transform, s screen.Size, buf *screen.Buffer) {
	t = t.Add(q.Offset)
	s = s.Sub(screen.Size{W: q.Offset.X, H: q.Offset.Y})
	for _, c := range q.children {
		c.Draw(e, t, s, buf)
	}
}

func (q *Sequence) Mount(e *Engine) {
	for _, c := range q.children {
		c.Mount(e)
	}
}

func (q *Sequence) Unmount(e *Engine) {
	for _, c := range q.children {
		c.Unmount(e)
	}
}
