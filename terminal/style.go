package terminal

// Attr represents text attributes (bitmask)
type Attr uint8

const (
	AttrNone      Attr = 0
	AttrBold      Attr = 1 << 0
	AttrDim       Attr = 1 << 1
	AttrItalic    Attr = 1 << 2
	AttrUnderline Attr = 1 << 3
	AttrBlink     Attr = 1 << 4
	AttrReverse   Attr = 1 << 5
)

// Style is the per-cell rendering state; comparable with ==
type Style struct {
	Fg    Color
	Bg    Color
	Attrs Attr
}

// StyleDefault renders with the terminal's own colors and no emphasis
var StyleDefault = Style{}

// Foreground returns a copy with fg replaced
func (s Style) Foreground(c Color) Style {
	s.Fg = c
	return s
}

// Background returns a copy with bg replaced
func (s Style) Background(c Color) Style {
	s.Bg = c
	return s
}

// With returns a copy with the given attributes added
func (s Style) With(a Attr) Style {
	s.Attrs |= a
	return s
}

// Without returns a copy with the given attributes cleared
func (s Style) Without(a Attr) Style {
	s.Attrs &^= a
	return s
}

// Shorthands used throughout the scenes
var (
	StyleBold      = Style{Attrs: AttrBold}
	StyleDim       = Style{Attrs: AttrDim}
	StyleUnderline = Style{Attrs: AttrUnderline}
	StyleReverse   = Style{Attrs: AttrReverse}
)
