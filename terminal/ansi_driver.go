package terminal

import (
	"bufio"
	"sync"
	"time"
)

const outputBufferSize = 64 * 1024

// ANSIDriver writes raw escape sequences to a Backend
type ANSIDriver struct {
	backend   Backend
	out       *bufio.Writer
	colorMode ColorMode

	mu       sync.Mutex
	width    int
	height   int
	onResize func()

	initialized bool
	finalized   bool
}

// backendWriter adapts Backend.Write for bufio
type backendWriter struct{ b Backend }

func (w backendWriter) Write(p []byte) (int, error) { return w.b.Write(p) }

// NewANSIDriver wraps backend; nothing is written until Init
func NewANSIDriver(backend Backend, mode ColorMode) *ANSIDriver {
	w, h := backend.Size()
	return &ANSIDriver{
		backend:   backend,
		out:       bufio.NewWriterSize(backendWriter{backend}, outputBufferSize),
		colorMode: mode,
		width:     w,
		height:    h,
	}
}

// Init enters raw mode, alternate screen, hides the cursor
func (d *ANSIDriver) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.initialized {
		return nil
	}
	if err := d.backend.Init(); err != nil {
		return err
	}

	d.out.Write(csiAltScreenEnter)
	d.out.Write(csiCursorHide)
	d.out.Write(csiAutoWrapOn)
	d.out.Write(csiSGR0)
	d.out.Write(csiClear)
	if err := d.out.Flush(); err != nil {
		d.backend.Fini()
		return err
	}

	d.backend.SetResizeHandler(d.handleResize)
	d.initialized = true
	return nil
}

// Fini restores cursor, main screen and cooked mode
func (d *ANSIDriver) Fini() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.initialized || d.finalized {
		return
	}
	d.finalized = true

	d.out.Write(csiSGR0)
	d.out.Write(csiCursorShow)
	d.out.Write(csiAltScreenExit)
	d.out.Flush()
	d.backend.Fini()
}

func (d *ANSIDriver) handleResize(w, h int) {
	d.mu.Lock()
	d.width, d.height = w, h
	fn := d.onResize
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// ResizeNotify registers the window change callback
func (d *ANSIDriver) ResizeNotify(fn func()) {
	d.mu.Lock()
	d.onResize = fn
	d.mu.Unlock()
}

// Size returns the last known dimensions
func (d *ANSIDriver) Size() (int, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.width, d.height
}

// UpdateSize re-probes the device
func (d *ANSIDriver) UpdateSize() (int, int) {
	w, h := d.backend.Size()
	d.mu.Lock()
	d.width, d.height = w, h
	d.mu.Unlock()
	return w, h
}

// ReadAvailable never blocks
func (d *ANSIDriver) ReadAvailable() ([]byte, error) {
	var all []byte
	for {
		b, err := d.backend.Read(0)
		if err != nil {
			return all, err
		}
		if len(b) == 0 {
			return all, nil
		}
		all = append(all, b...)
	}
}

// ReadTimeout waits up to timeout for the tail of an escape sequence
func (d *ANSIDriver) ReadTimeout(timeout time.Duration) ([]byte, error) {
	return d.backend.Read(timeout)
}

// Write buffers raw bytes; visible after Flush
func (d *ANSIDriver) Write(p []byte) (int, error) {
	return d.out.Write(p)
}

// Home moves the cursor to the top-left cell
func (d *ANSIDriver) Home() {
	d.out.Write(csiHome)
}

// MoveCursor positions the cursor (0-indexed)
func (d *ANSIDriver) MoveCursor(x, y int) {
	writeCursorPos(d.out, x, y)
}

// WriteRun emits one SGR sequence followed by the run's bytes
func (d *ANSIDriver) WriteRun(style Style, text []byte) error {
	writeSGR(d.out, style, d.colorMode)
	_, err := d.out.Write(text)
	return err
}

// Flush resets SGR and pushes buffered output to the device
func (d *ANSIDriver) Flush() error {
	d.out.Write(csiSGR0)
	return d.out.Flush()
}
