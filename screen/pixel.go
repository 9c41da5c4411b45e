package screen

import "github.com/lixenwraith/termchat/terminal"

// Pixel is one terminal cell
// Rune 0 marks the trailing half of a double-width glyph and emits nothing
type Pixel struct {
	Rune  rune
	Style terminal.Style
}

// DefaultPixel is a space with the terminal's default style
var DefaultPixel = Pixel{Rune: ' '}

// P builds an unstyled pixel
func P(r rune) Pixel {
	return Pixel{Rune: r}
}

// Styled builds a pixel with a style
func Styled(r rune, s terminal.Style) Pixel {
	return Pixel{Rune: r, Style: s}
}
