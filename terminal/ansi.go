package terminal

import (
	"bufio"
)

// Pre-allocated ANSI sequence fragments (avoid allocations during render)
var (
	csi     = []byte("\x1b[")
	csiHome = []byte("\x1b[H")
	csiRIS  = []byte("\x1bc") // Reset to Initial State (emergency)
	csiSGR0 = []byte("\x1b[0m")

	csiClear = []byte("\x1b[2J\x1b[H")

	// Cursor control
	csiCursorHide = []byte("\x1b[?25l")
	csiCursorShow = []byte("\x1b[?25h")

	// Screen modes
	csiAltScreenEnter = []byte("\x1b[?1049h")
	csiAltScreenExit  = []byte("\x1b[?1049l")
	// Commit streams the whole buffer row-major and relies on wrapping
	csiAutoWrapOn = []byte("\x1b[?7h")
)

// writeInt writes an integer without allocation
func writeInt(w *bufio.Writer, n int) {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		w.WriteByte(byte(n) + '0')
		return
	}
	if n < 100 {
		w.WriteByte(byte(n/10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	if n < 1000 {
		w.WriteByte(byte(n/100) + '0')
		w.WriteByte(byte(n/10%10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	var buf [10]byte
	i := len(buf) - 1
	for n > 0 {
		buf[i] = byte(n%10) + '0'
		n /= 10
		i--
	}
	w.Write(buf[i+1:])
}

// writeCursorPos writes cursor positioning sequence (0-indexed input)
func writeCursorPos(w *bufio.Writer, x, y int) {
	w.Write(csi)
	writeInt(w, y+1)
	w.WriteByte(';')
	writeInt(w, x+1)
	w.WriteByte('H')
}

// writeSGR emits one reset-prefixed SGR sequence for the whole style
func writeSGR(w *bufio.Writer, s Style, mode ColorMode) {
	w.Write(csi)
	w.WriteByte('0')

	attrs := [...]struct {
		bit  Attr
		code byte
	}{
		{AttrBold, '1'},
		{AttrDim, '2'},
		{AttrItalic, '3'},
		{AttrUnderline, '4'},
		{AttrBlink, '5'},
		{AttrReverse, '7'},
	}
	for _, a := range attrs {
		if s.Attrs&a.bit != 0 {
			w.WriteByte(';')
			w.WriteByte(a.code)
		}
	}

	writeColor(w, s.Fg, '3', mode)
	writeColor(w, s.Bg, '4', mode)
	w.WriteByte('m')
}

// writeColor appends ;38;... or ;48;... for non-default colors
func writeColor(w *bufio.Writer, c Color, layer byte, mode ColorMode) {
	if c.IsDefault() {
		return
	}
	w.WriteByte(';')
	w.WriteByte(layer)

	if idx, ok := c.Index(); ok {
		if idx < 8 {
			w.WriteByte('0' + idx)
			return
		}
		w.WriteString("8;5;")
		writeInt(w, int(idx))
		return
	}

	rgb, _ := c.RGB()
	if mode == ColorModeTrueColor {
		w.WriteString("8;2;")
		writeInt(w, int(rgb.R))
		w.WriteByte(';')
		writeInt(w, int(rgb.G))
		w.WriteByte(';')
		writeInt(w, int(rgb.B))
		return
	}
	w.WriteString("8;5;")
	writeInt(w, int(RGBTo256(rgb)))
}
