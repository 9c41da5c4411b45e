package engine

import "github.com/lixenwraith/termchat/screen"

type stackEntry struct {
	mounted bool
	scene   Scene
}

// Stack overlays children in insertion order; the last drawn wins
type Stack struct {
	children []stackEntry
}

// NewStack creates an empty stack
func NewStack() *Stack {
	return &Stack{}
}

// Add mounts child immediately and appends it
func (s *Stack) Add(e *Engine, child Scene) {
	child.Mount(e)
	s.children = append(s.children, stackEntry{mounted: true, scene: child})
}

// Len returns the number of children
func (s *Stack) Len() int {
	return len(s.children)
}

func (s *Stack) Update(e *Engine) {
	for _, c := range s.children {
		c.scene.Update(e)
	}
}

func (s *Stack) Draw(e *Engine, t screen.Transform, size screen.Size, buf *screen.Buffer) {
	for _, c := range s.children {
		c.scene.Draw(e, t, size, buf)
	}
}

// Mount mounts children not already mounted
func (s *Stack) Mount(e *Engine) {
	for i := range s.children {
		c := &s.children[i]
		if !c.mounted {
			c.scene.Mount(e)
			c.mounted = true
		}
	}
}

// Unmount unmounts mounted children in reverse order
func (s *Stack) Unmount(e *Engine) {
	for i := len(s.children) - 1; i >= 0; i-- {
		c := &s.children[i]
		if c.mounted {
			c.scene.Unmount(e)
			c.mounted = false
		}
	}
}
