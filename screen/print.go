package screen

import (
	"fmt"

	"github.com/lixenwraith/termchat/terminal"
	"github.com/mattn/go-runewidth"
)

// Print formats text at origin, keeping each touched cell's style
// Text is truncated at the right edge; returns the number of cells written
func (b *Buffer) Print(origin Transform, format string, args ...any) int {
	return b.print(origin, nil, sprintf(format, args))
}

// PrintStyled is Print with every written cell taking style
func (b *Buffer) PrintStyled(origin Transform, style terminal.Style, format string, args ...any) int {
	return b.print(origin, &style, sprintf(format, args))
}

func sprintf(format string, args []any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

func (b *Buffer) print(origin Transform, style *terminal.Style, text string) int {
	y := origin.Y
	if y < 0 || y >= b.height {
		return 0
	}

	x := origin.X
	written := 0
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > b.width {
			break
		}
		if x >= 0 {
			b.put(x, y, r, style)
			if w == 2 {
				b.put(x+1, y, 0, style)
			}
			written += w
		}
		x += w
	}
	return written
}

func (b *Buffer) put(x, y int, r rune, style *terminal.Style) {
	b.split(x, y, r == 0)
	idx := y*b.width + x
	b.cells[idx].Rune = r
	if style != nil {
		b.cells[idx].Style = *style
	}
	b.dirty = true
}

// TruncateWidth cuts s to at most w display cells
func TruncateWidth(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return runewidth.Truncate(s, w, "")
}
