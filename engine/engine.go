package engine

import (
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/lixenwraith/termchat/event"
	"github.com/lixenwraith/termchat/screen"
	"github.com/lixenwraith/termchat/terminal"
)

// ErrNoScene is returned by Run when a frame starts without an active scene
var ErrNoScene = errors.New("engine: no active scene")

// State is the engine run state
type State int32

const (
	Running State = iota
	Stopped
)

const (
	DefaultFPS           = 30
	DefaultEscapeTimeout = 100 * time.Millisecond
)

// Config tunes the frame loop
type Config struct {
	FPS           int
	EscapeTimeout time.Duration
}

// Engine drives the fixed-rate frame loop
// Everything except Finalize, State and the resize callback runs on the frame goroutine
type Engine struct {
	driver terminal.Driver
	buf    *screen.Buffer
	bus    *event.Bus
	scene  Scene

	state         atomic.Int32
	period        time.Duration
	escapeTimeout time.Duration
	timing        Timing
	frame         uint64

	pollers []func()

	now   func() time.Time
	sleep func(time.Duration)
}

// New creates an engine over driver; the buffer starts at the driver's size
func New(driver terminal.Driver, cfg Config) *Engine {
	if cfg.FPS <= 0 {
		cfg.FPS = DefaultFPS
	}
	if cfg.EscapeTimeout <= 0 {
		cfg.EscapeTimeout = DefaultEscapeTimeout
	}

	w, h := driver.Size()
	e := &Engine{
		driver:        driver,
		buf:           screen.NewBuffer(screen.Size{W: w, H: h}),
		bus:           event.NewBus(),
		period:        time.Second / time.Duration(cfg.FPS),
		escapeTimeout: cfg.EscapeTimeout,
		now:           time.Now,
		sleep:         time.Sleep,
	}
	e.timing.Period = e.period

	// Signal context: only record the request, the frame loop applies it
	driver.ResizeNotify(func() {
		w, h := driver.Size()
		e.buf.RequestResize(screen.Size{W: w, H: h})
	})
	return e
}

// Bus returns the event bus scenes register listeners on
func (e *Engine) Bus() *event.Bus { return e.bus }

// Buffer returns the screen buffer
func (e *Engine) Buffer() *screen.Buffer { return e.buf }

// Timing returns the last frame's measurements
func (e *Engine) Timing() Timing { return e.timing }

// Frame returns the number of frames started
func (e *Engine) Frame() uint64 { return e.frame }

// Size returns the current screen size
func (e *Engine) Size() screen.Size { return e.buf.Size() }

// Scene returns the active scene
func (e *Engine) Scene() Scene { return e.scene }

// State returns Running or Stopped
func (e *Engine) State() State { return State(e.state.Load()) }

// Running reports whether the loop should continue
func (e *Engine) Running() bool { return e.State() == Running }

// Finalize stops the loop after the current frame; safe from any goroutine
func (e *Engine) Finalize() {
	e.state.Store(int32(Stopped))
}

// AddPoller registers fn to run once per frame after input dispatch
// Used to drain hand-off queues filled by background goroutines
func (e *Engine) AddPoller(fn func()) {
	e.pollers = append(e.pollers, fn)
}

// SwitchScene unmounts the active scene before mounting s
func (e *Engine) SwitchScene(s Scene) {
	if e.scene != nil {
		e.scene.Unmount(e)
	}
	e.scene = s
	if s != nil {
		s.Mount(e)
	}
}

// Run loops until Finalize; the active scene is unmounted on exit
func (e *Engine) Run() error {
	defer e.SwitchScene(nil)

	for e.Running() {
		if err := e.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step runs one frame and sleeps out the remaining budget
func (e *Engine) Step() error {
	start := e.now()
	e.frame++

	e.buf.ApplyPendingResize()

	if err := e.pollInput(); err != nil {
		return err
	}
	for _, p := range e.pollers {
		p()
	}

	e.buf.Clear()

	if e.scene == nil {
		return ErrNoScene
	}

	t0 := e.now()
	e.scene.Update(e)
	t1 := e.now()
	e.scene.Draw(e, screen.Transform{}, e.buf.Size(), e.buf)
	t2 := e.now()

	if err := e.buf.Commit(e.driver); err != nil {
		return fmt.Errorf("engine: commit: %w", err)
	}
	t3 := e.now()

	e.timing = Timing{
		Frame:  t3.Sub(start),
		Update: t1.Sub(t0),
		Draw:   t2.Sub(t1),
		Commit: t3.Sub(t2),
		Period: e.period,
	}

	// No catch-up: an overrun frame just makes the next one start late
	if e.timing.Frame < e.period {
		e.sleep(e.period - e.timing.Frame)
	}
	return nil
}

// pollInput reads pending bytes and dispatches them as keys
func (e *Engine) pollInput() error {
	data, err := e.driver.ReadAvailable()
	if err != nil {
		return fmt.Errorf("engine: read input: %w", err)
	}

	for i := 0; i < len(data); {
		b := data[i]
		switch {
		case b == terminal.ByteCtrlQ:
			// Global override, never routed through the bus
			e.Finalize()
			i++

		case b == terminal.ByteEscape:
			rest := data[i+1:]
			if len(rest) == 0 {
				more, err := e.driver.ReadTimeout(e.escapeTimeout)
				if err != nil {
					return fmt.Errorf("engine: read escape: %w", err)
				}
				data = append(data, more...)
				rest = data[i+1:]
			}
			tail := escapeTail(rest)
			i += 1 + len(tail)

			switch terminal.ClassifyEscape(tail) {
			case terminal.EscapeBare:
				e.bus.Dispatch(event.Esc)
			case terminal.EscapeBacktab:
				e.bus.Dispatch(event.ShiftTab)
			default:
				log.Printf("engine: dropped unknown escape sequence %q", tail)
			}

		default:
			r, size := utf8.DecodeRune(data[i:])
			if r == utf8.RuneError && size <= 1 {
				r, size = rune(b), 1
			}
			e.bus.Dispatch(event.Char(r))
			i += size
		}
	}
	return nil
}

// escapeTail returns the CSI/SS3 bytes that belong to an ESC, or nothing for a bare ESC
func escapeTail(rest []byte) []byte {
	if len(rest) == 0 || (rest[0] != '[' && rest[0] != 'O') {
		return nil
	}
	j := 1
	for j < len(rest) && j < terminal.EscapeMaxTail {
		c := rest[j]
		j++
		if c >= 0x40 && c <= 0x7e {
			break
		}
	}
	return rest[:j]
}
