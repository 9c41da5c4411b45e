package terminal

import (
	"bufio"
	"bytes"
	"testing"
)

func sgr(s Style, mode ColorMode) string {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	writeSGR(w, s, mode)
	w.Flush()
	return buf.String()
}

// TestWriteSGR verifies one reset-prefixed sequence per style
func TestWriteSGR(t *testing.T) {
	tests := []struct {
		name  string
		style Style
		mode  ColorMode
		want  string
	}{
		{"default", StyleDefault, ColorMode256, "\x1b[0m"},
		{"bold reverse", Style{Attrs: AttrBold | AttrReverse}, ColorMode256, "\x1b[0;1;7m"},
		{"basic palette", Style{Fg: ColorRed, Bg: ColorBlack}, ColorMode256, "\x1b[0;31;40m"},
		{"extended palette", Style{Fg: PaletteColor(200)}, ColorMode256, "\x1b[0;38;5;200m"},
		{"truecolor", Style{Bg: NewRGBColor(1, 2, 3)}, ColorModeTrueColor, "\x1b[0;48;2;1;2;3m"},
		{"rgb downsampled", Style{Fg: NewRGBColor(255, 0, 0)}, ColorMode256, "\x1b[0;38;5;196m"},
		{"underline dim", Style{Attrs: AttrUnderline | AttrDim}, ColorMode256, "\x1b[0;2;4m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sgr(tt.style, tt.mode); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

// TestWriteCursorPos verifies 1-based row;col ordering
func TestWriteCursorPos(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	writeCursorPos(w, 4, 1234)
	w.Flush()

	if got := buf.String(); got != "\x1b[1235;5H" {
		t.Errorf("Expected cursor sequence, got %q", got)
	}
}
