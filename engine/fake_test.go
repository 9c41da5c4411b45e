package engine

import (
	"time"

	"github.com/lixenwraith/termchat/screen"
	"github.com/lixenwraith/termchat/terminal"
)

// fakeDriver feeds scripted input and records committed runs
type fakeDriver struct {
	w, h     int
	input    [][]byte
	timeout  [][]byte
	homes    int
	runs     []string
	styles   []terminal.Style
	flushes  int
	onResize func()
}

func newFakeDriver(w, h int) *fakeDriver {
	return &fakeDriver{w: w, h: h}
}

func (d *fakeDriver) Home() { d.homes++ }
func (d *fakeDriver) WriteRun(style terminal.Style, text []byte) error {
	d.runs = append(d.runs, string(text))
	d.styles = append(d.styles, style)
	return nil
}
func (d *fakeDriver) Flush() error                   { d.flushes++; return nil }
func (d *fakeDriver) Init() error                    { return nil }
func (d *fakeDriver) Fini()                          {}
func (d *fakeDriver) Size() (int, int)               { return d.w, d.h }
func (d *fakeDriver) UpdateSize() (int, int)         { return d.w, d.h }
func (d *fakeDriver) Write(p []byte) (int, error)    { return len(p), nil }
func (d *fakeDriver) MoveCursor(x, y int)            {}
func (d *fakeDriver) ResizeNotify(fn func())         { d.onResize = fn }
func (d *fakeDriver) ReadAvailable() ([]byte, error) { return pop(&d.input), nil }
func (d *fakeDriver) ReadTimeout(time.Duration) ([]byte, error) {
	return pop(&d.timeout), nil
}

func pop(q *[][]byte) []byte {
	if len(*q) == 0 {
		return nil
	}
	b := (*q)[0]
	*q = (*q)[1:]
	return b
}

// newTestEngine builds an engine that never sleeps
func newTestEngine(d *fakeDriver) *Engine {
	e := New(d, Config{FPS: 60})
	e.sleep = func(time.Duration) {}
	return e
}

// recorder logs lifecycle calls into a shared trace
type recorder struct {
	name   string
	trace  *[]string
	draw   func(t screen.Transform, s screen.Size, buf *screen.Buffer)
	mounts int
	unmnts int
}

func (r *recorder) Update(*Engine) { *r.trace = append(*r.trace, r.name+".update") }
func (r *recorder) Draw(_ *Engine, t screen.Transform, s screen.Size, buf *screen.Buffer) {
	*r.trace = append(*r.trace, r.name+".draw")
	if r.draw != nil {
		r.draw(t, s, buf)
	}
}
func (r *recorder) Mount(*Engine) {
	r.mounts++
	*r.trace = append(*r.trace, r.name+".mount")
}
func (r *recorder) Unmount(*Engine) {
	r.unmnts++
	*r.trace = append(*r.trace, r.name+".unmount")
}
