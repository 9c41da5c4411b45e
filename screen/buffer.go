package screen

import (
	"slices"
	"sync"
	"unicode/utf8"

	"github.com/lixenwraith/termchat/terminal"
	"github.com/mattn/go-runewidth"
)

// Buffer is a double-buffered compositor: draw primitives mutate cells, Commit
// streams them to a Sink as one write per style run
// Only the frame thread may call draw methods; RequestResize is safe from any goroutine
type Buffer struct {
	cells  []Pixel
	width  int
	height int
	dirty  bool

	// front is what the sink last received; nil forces a full write
	front []Pixel

	// scratch for run encoding, reused across commits
	run []byte

	pendingMu sync.Mutex
	pending   *Size
}

// NewBuffer creates a cleared, dirty buffer
func NewBuffer(size Size) *Buffer {
	b := &Buffer{}
	b.Resize(size)
	return b
}

// Size returns the buffer dimensions
func (b *Buffer) Size() Size {
	return Size{b.width, b.height}
}

// Dirty reports whether cells changed since the last successful commit
func (b *Buffer) Dirty() bool {
	return b.dirty
}

// Resize reallocates to size, clears, and marks dirty
func (b *Buffer) Resize(size Size) {
	size = Size{max(size.W, 0), max(size.H, 0)}
	n := size.Area()
	if cap(b.cells) < n {
		b.cells = make([]Pixel, n)
	} else {
		b.cells = b.cells[:n]
	}
	b.width = size.W
	b.height = size.H
	b.front = nil
	b.Clear()
}

// RequestResize records a size change to apply at the next safe point
func (b *Buffer) RequestResize(size Size) {
	b.pendingMu.Lock()
	b.pending = &size
	b.pendingMu.Unlock()
}

// ApplyPendingResize performs a requested resize; returns true if one happened
func (b *Buffer) ApplyPendingResize() bool {
	b.pendingMu.Lock()
	p := b.pending
	b.pending = nil
	b.pendingMu.Unlock()

	if p == nil {
		return false
	}
	b.Resize(*p)
	return true
}

// Clear resets every cell to DefaultPixel using exponential copy
func (b *Buffer) Clear() {
	b.dirty = true
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = DefaultPixel
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Cell returns the pixel at (x, y)
func (b *Buffer) Cell(x, y int) (Pixel, bool) {
	if !b.inBounds(x, y) {
		return Pixel{}, false
	}
	return b.cells[y*b.width+x], true
}

// SetCell overwrites one cell; out-of-range coordinates are ignored
func (b *Buffer) SetCell(x, y int, p Pixel) {
	if !b.inBounds(x, y) {
		return
	}
	b.split(x, y, p.Rune == 0)
	b.cells[y*b.width+x] = p
	b.dirty = true
}

// split breaks any double-width pair that a write at (x, y) would cut in half
// The surviving half becomes a space so every row still emits width columns
// A trailer write keeps the lead at x-1, which the caller just placed
func (b *Buffer) split(x, y int, trailer bool) {
	idx := y*b.width + x
	cur := b.cells[idx].Rune
	switch {
	case cur == 0 && x > 0 && !trailer:
		b.cells[idx-1].Rune = ' '
	case x+1 < b.width && b.cells[idx+1].Rune == 0 && runewidth.RuneWidth(cur) == 2:
		b.cells[idx+1].Rune = ' '
	}
}

// HLine fills [xStart, xEnd) on row y, clamped to the buffer
func (b *Buffer) HLine(xStart, xEnd, y int, p Pixel) {
	if y < 0 || y >= b.height {
		return
	}
	xStart = max(xStart, 0)
	xEnd = min(xEnd, b.width)
	if xStart >= xEnd {
		return
	}
	// Only the ends can cut a pair; interior cells are all overwritten
	b.split(xStart, y, p.Rune == 0)
	b.split(xEnd-1, y, p.Rune == 0)
	row := b.cells[y*b.width : (y+1)*b.width]
	for x := xStart; x < xEnd; x++ {
		row[x] = p
	}
	b.dirty = true
}

// VLine fills [yStart, yEnd) on column x, clamped to the buffer
func (b *Buffer) VLine(x, yStart, yEnd int, p Pixel) {
	if x < 0 || x >= b.width {
		return
	}
	yStart = max(yStart, 0)
	yEnd = min(yEnd, b.height)
	for y := yStart; y < yEnd; y++ {
		b.split(x, y, p.Rune == 0)
		b.cells[y*b.width+x] = p
		b.dirty = true
	}
}

// Commit streams the buffer to sink if anything changed
// The cursor is homed once; each maximal same-style run is one WriteRun call
// A frame redrawn identically to the last committed one writes nothing
func (b *Buffer) Commit(sink terminal.Sink) error {
	if !b.dirty {
		return nil
	}
	if len(b.cells) == 0 || slices.Equal(b.cells, b.front) {
		b.dirty = false
		return nil
	}

	sink.Home()

	runStart := 0
	prev := b.cells[0].Style
	for i := 1; i < len(b.cells); i++ {
		if s := b.cells[i].Style; s != prev {
			if err := b.flushRun(sink, prev, runStart, i); err != nil {
				return err
			}
			runStart = i
			prev = s
		}
	}
	if err := b.flushRun(sink, prev, runStart, len(b.cells)); err != nil {
		return err
	}
	if err := sink.Flush(); err != nil {
		return err
	}

	b.front = append(b.front[:0], b.cells...)
	b.dirty = false
	return nil
}

func (b *Buffer) flushRun(sink terminal.Sink, style terminal.Style, from, to int) error {
	b.run = b.run[:0]
	for _, p := range b.cells[from:to] {
		if p.Rune == 0 {
			continue
		}
		b.run = utf8.AppendRune(b.run, p.Rune)
	}
	return sink.WriteRun(style, b.run)
}
