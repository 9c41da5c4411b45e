package terminal

import (
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// TcellDriver renders through tcell; input events are translated back to the
// byte stream the engine classifies so both drivers behave identically
type TcellDriver struct {
	screen tcell.Screen
	input  chan []byte

	mu       sync.Mutex
	width    int
	height   int
	onResize func()

	// commit cursor
	cx, cy int

	initialized bool
	finalized   bool
	done        chan struct{}
}

// NewTcellDriver wraps screen; nil selects the process terminal
func NewTcellDriver(screen tcell.Screen) (*TcellDriver, error) {
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, err
		}
		screen = s
	}
	return &TcellDriver{
		screen: screen,
		input:  make(chan []byte, 256),
		done:   make(chan struct{}),
	}, nil
}

// Init initializes the screen and starts the event pump
func (d *TcellDriver) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.initialized {
		return nil
	}
	if err := d.screen.Init(); err != nil {
		return err
	}
	d.screen.HideCursor()
	d.screen.Clear()
	d.width, d.height = d.screen.Size()
	d.initialized = true

	go d.pump()
	return nil
}

// Fini restores the terminal; the pump exits once PollEvent returns nil
func (d *TcellDriver) Fini() {
	d.mu.Lock()
	if !d.initialized || d.finalized {
		d.mu.Unlock()
		return
	}
	d.finalized = true
	d.mu.Unlock()

	d.screen.Fini()
	<-d.done
}

func (d *TcellDriver) pump() {
	defer close(d.done)
	for {
		ev := d.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if b := keyBytes(ev); len(b) > 0 {
				select {
				case d.input <- b:
				default:
					// Frame loop stalled; drop rather than block tcell
				}
			}
		case *tcell.EventResize:
			w, h := ev.Size()
			d.mu.Lock()
			d.width, d.height = w, h
			fn := d.onResize
			d.mu.Unlock()
			if fn != nil {
				fn()
			}
		}
	}
}

// keyBytes encodes a tcell key the way a raw tty would have delivered it
func keyBytes(ev *tcell.EventKey) []byte {
	switch ev.Key() {
	case tcell.KeyRune:
		r := ev.Rune()
		if ev.Modifiers()&tcell.ModCtrl != 0 && r < utf8.RuneSelf && unicode.IsLetter(r) {
			return []byte{byte(unicode.ToLower(r)) & 0x1f}
		}
		return utf8.AppendRune(nil, r)
	case tcell.KeyBacktab:
		return []byte("\x1b[Z")
	case tcell.KeyEnter:
		return []byte{'\r'}
	case tcell.KeyUp:
		return []byte("\x1b[A")
	case tcell.KeyDown:
		return []byte("\x1b[B")
	case tcell.KeyRight:
		return []byte("\x1b[C")
	case tcell.KeyLeft:
		return []byte("\x1b[D")
	}
	if k := ev.Key(); k >= 0 && k < 128 {
		return []byte{byte(k)}
	}
	return nil
}

// ResizeNotify registers the window change callback
func (d *TcellDriver) ResizeNotify(fn func()) {
	d.mu.Lock()
	d.onResize = fn
	d.mu.Unlock()
}

// Size returns the last known dimensions
func (d *TcellDriver) Size() (int, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.width, d.height
}

// UpdateSize re-probes the screen
func (d *TcellDriver) UpdateSize() (int, int) {
	w, h := d.screen.Size()
	d.mu.Lock()
	d.width, d.height = w, h
	d.mu.Unlock()
	return w, h
}

// ReadAvailable drains translated key bytes without blocking
func (d *TcellDriver) ReadAvailable() ([]byte, error) {
	var all []byte
	for {
		select {
		case b := <-d.input:
			all = append(all, b...)
		default:
			return all, nil
		}
	}
}

// ReadTimeout waits up to timeout for the next key
func (d *TcellDriver) ReadTimeout(timeout time.Duration) ([]byte, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case b := <-d.input:
		return b, nil
	case <-timer.C:
		return nil, nil
	}
}

// Write places raw text at the commit cursor with the default style
func (d *TcellDriver) Write(p []byte) (int, error) {
	d.put(StyleDefault, p)
	return len(p), nil
}

// Home resets the commit cursor
func (d *TcellDriver) Home() {
	d.cx, d.cy = 0, 0
}

// MoveCursor positions the commit cursor
func (d *TcellDriver) MoveCursor(x, y int) {
	d.cx, d.cy = x, y
}

// WriteRun places one styled run, wrapping at the right edge like a tty
func (d *TcellDriver) WriteRun(style Style, text []byte) error {
	d.put(style, text)
	return nil
}

func (d *TcellDriver) put(style Style, text []byte) {
	st := toTcellStyle(style)
	w, _ := d.Size()
	for len(text) > 0 {
		r, size := utf8.DecodeRune(text)
		text = text[size:]

		d.screen.SetContent(d.cx, d.cy, r, nil, st)
		d.cx += max(runewidth.RuneWidth(r), 1)
		if w > 0 && d.cx >= w {
			d.cx = 0
			d.cy++
		}
	}
}

// Flush presents the frame
func (d *TcellDriver) Flush() error {
	d.screen.Show()
	return nil
}

// Screen exposes the wrapped tcell.Screen for tests
func (d *TcellDriver) Screen() tcell.Screen {
	return d.screen
}

func toTcellColor(c Color) tcell.Color {
	if idx, ok := c.Index(); ok {
		return tcell.PaletteColor(int(idx))
	}
	if rgb, ok := c.RGB(); ok {
		return tcell.NewRGBColor(int32(rgb.R), int32(rgb.G), int32(rgb.B))
	}
	return tcell.ColorDefault
}

func toTcellStyle(s Style) tcell.Style {
	return tcell.StyleDefault.
		Foreground(toTcellColor(s.Fg)).
		Background(toTcellColor(s.Bg)).
		Bold(s.Attrs&AttrBold != 0).
		Dim(s.Attrs&AttrDim != 0).
		Italic(s.Attrs&AttrItalic != 0).
		Underline(s.Attrs&AttrUnderline != 0).
		Blink(s.Attrs&AttrBlink != 0).
		Reverse(s.Attrs&AttrReverse != 0)
}
