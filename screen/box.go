package screen

// BoxOptions holds the eight independently configurable border pixels
type BoxOptions struct {
	TopLeft, TopRight, BottomLeft, BottomRight Pixel
	Top, Bottom, Left, Right                   Pixel
}

// DefaultBoxOptions is the ASCII + - | border
func DefaultBoxOptions() BoxOptions {
	return BoxOptions{
		TopLeft:     P('+'),
		TopRight:    P('+'),
		BottomLeft:  P('+'),
		BottomRight: P('+'),
		Top:         P('-'),
		Bottom:      P('-'),
		Left:        P('|'),
		Right:       P('|'),
	}
}

// LineBoxOptions uses single-line box drawing runes
func LineBoxOptions() BoxOptions {
	return BoxOptions{
		TopLeft:     P('┌'),
		TopRight:    P('┐'),
		BottomLeft:  P('└'),
		BottomRight: P('┘'),
		Top:         P('─'),
		Bottom:      P('─'),
		Left:        P('│'),
		Right:       P('│'),
	}
}

// WithStyle returns the options with every pixel restyled
func (o BoxOptions) WithStyle(p Pixel) BoxOptions {
	s := p.Style
	for _, px := range []*Pixel{
		&o.TopLeft, &o.TopRight, &o.BottomLeft, &o.BottomRight,
		&o.Top, &o.Bottom, &o.Left, &o.Right,
	} {
		px.Style = s
	}
	return o
}

// Box draws a w x h border with its top-left corner at origin
// Boxes smaller than 2x2 are not drawn
func (b *Buffer) Box(origin Transform, w, h int, opts BoxOptions) {
	if w < 2 || h < 2 {
		return
	}
	x0, y0 := origin.X, origin.Y
	x1, y1 := x0+w-1, y0+h-1

	b.HLine(x0+1, x1, y0, opts.Top)
	b.HLine(x0+1, x1, y1, opts.Bottom)
	b.VLine(x0, y0+1, y1, opts.Left)
	b.VLine(x1, y0+1, y1, opts.Right)

	b.SetCell(x0, y0, opts.TopLeft)
	b.SetCell(x1, y0, opts.TopRight)
	b.SetCell(x0, y1, opts.BottomLeft)
	b.SetCell(x1, y1, opts.BottomRight)
}
