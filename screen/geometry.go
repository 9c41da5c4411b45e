package screen

// Transform is an absolute cell offset; children receive the sum of all ancestor offsets
type Transform struct {
	X, Y int
}

// Add returns t+o
func (t Transform) Add(o Transform) Transform {
	return Transform{t.X + o.X, t.Y + o.Y}
}

// Sub returns t-o
func (t Transform) Sub(o Transform) Transform {
	return Transform{t.X - o.X, t.Y - o.Y}
}

// Move returns t shifted by (dx, dy)
func (t Transform) Move(dx, dy int) Transform {
	return Transform{t.X + dx, t.Y + dy}
}

// Size is a width/height pair in cells; never negative
type Size struct {
	W, H int
}

// Add returns s+o
func (s Size) Add(o Size) Size {
	return Size{s.W + o.W, s.H + o.H}
}

// Sub returns s-o clamped at zero
func (s Size) Sub(o Size) Size {
	return Size{max(s.W-o.W, 0), max(s.H-o.H, 0)}
}

// Shrink removes n cells from both dimensions, clamped at zero
func (s Size) Shrink(n int) Size {
	return s.Sub(Size{n, n})
}

// Area returns W*H
func (s Size) Area() int {
	return s.W * s.H
}

// Contains reports whether (x, y) lies inside [0,W)x[0,H)
func (s Size) Contains(x, y int) bool {
	return x >= 0 && x < s.W && y >= 0 && y < s.H
}
