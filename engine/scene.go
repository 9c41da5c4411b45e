package engine

import "github.com/lixenwraith/termchat/screen"

// Scene is the unit of composition
//
// Lifecycle:
//  1. Construction (may happen long before the scene is reachable)
//  2. Mount - register bus listeners, first data loads
//  3. Update/Draw once per frame, update always before draw
//  4. Unmount - release everything Mount acquired, every bus handle included
//
// A scene may be mounted again after Unmount.
type Scene interface {
	// Update advances state for one frame; no terminal I/O
	Update(e *Engine)

	// Draw paints inside [t, t+s) of buf; buf must not be retained
	// Composites are trusted to pass correct regions, nothing is clipped at runtime
	Draw(e *Engine, t screen.Transform, s screen.Size, buf *screen.Buffer)

	Mount(e *Engine)
	Unmount(e *Engine)
}

// SceneFunc adapts a draw function into a stateless Scene
type SceneFunc func(e *Engine, t screen.Transform, s screen.Size, buf *screen.Buffer)

func (f SceneFunc) Update(*Engine) {}
func (f SceneFunc) Draw(e *Engine, t screen.Transform, s screen.Size, buf *screen.Buffer) {
	f(e, t, s, buf)
}
func (f SceneFunc) Mount(*Engine)   {}
func (f SceneFunc) Unmount(*Engine) {}
