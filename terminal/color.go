package terminal

import (
	"os"
	"strings"
)

// ColorMode indicates terminal color capability
type ColorMode uint8

const (
	ColorMode256       ColorMode = iota // xterm-256 palette
	ColorModeTrueColor                  // 24-bit RGB
)

// ParseColorMode maps a config value to a mode; "auto" and "" probe the environment
func ParseColorMode(s string) (ColorMode, bool) {
	switch strings.ToLower(s) {
	case "", "auto":
		return DetectColorMode(), true
	case "256":
		return ColorMode256, true
	case "truecolor", "24bit":
		return ColorModeTrueColor, true
	}
	return ColorMode256, false
}

// RGB represents a 24-bit color
type RGB struct {
	R, G, B uint8
}

// Color is a cell color: terminal default, a palette index, or 24-bit RGB
// Zero value is the terminal default
type Color uint32

const (
	ColorDefault Color = 0

	colorValid   Color = 1 << 24
	colorIndexed Color = 1 << 25
)

// NewRGBColor builds a 24-bit color
func NewRGBColor(r, g, b uint8) Color {
	return colorValid | Color(r)<<16 | Color(g)<<8 | Color(b)
}

// PaletteColor builds a palette color (0-7 basic, 8-15 bright, 16-255 extended)
func PaletteColor(n uint8) Color {
	return colorValid | colorIndexed | Color(n)
}

// Named palette entries
var (
	ColorBlack    = PaletteColor(0)
	ColorRed      = PaletteColor(1)
	ColorGreen    = PaletteColor(2)
	ColorYellow   = PaletteColor(3)
	ColorBlue     = PaletteColor(4)
	ColorMagenta  = PaletteColor(5)
	ColorCyan     = PaletteColor(6)
	ColorWhite    = PaletteColor(7)
	ColorDarkGray = NewRGBColor(169, 169, 169)
)

// IsDefault reports whether the color defers to the terminal default
func (c Color) IsDefault() bool {
	return c&colorValid == 0
}

// Index returns the palette index if the color is indexed
func (c Color) Index() (uint8, bool) {
	if c&colorValid == 0 || c&colorIndexed == 0 {
		return 0, false
	}
	return uint8(c), true
}

// RGB returns the 24-bit value if the color is not indexed
func (c Color) RGB() (RGB, bool) {
	if c&colorValid == 0 || c&colorIndexed != 0 {
		return RGB{}, false
	}
	return RGB{uint8(c >> 16), uint8(c >> 8), uint8(c)}, true
}

// Color cube values for 6x6x6 palette (indices 16-231)
var cubeValues = [6]uint8{0, 95, 135, 175, 215, 255}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func cubeIndex(v uint8) uint8 {
	best := 0
	bestDist := abs(int(v) - int(cubeValues[0]))
	for j := 1; j < 6; j++ {
		if d := abs(int(v) - int(cubeValues[j])); d < bestDist {
			bestDist = d
			best = j
		}
	}
	return uint8(best)
}

// RGBTo256 converts RGB to the nearest 256-color palette index
func RGBTo256(c RGB) uint8 {
	r, g, b := c.R, c.G, c.B
	gray := (int(r) + int(g) + int(b)) / 3
	maxDiff := max(abs(int(r)-gray), abs(int(g)-gray), abs(int(b)-gray))

	cr, cg, cb := cubeIndex(r), cubeIndex(g), cubeIndex(b)

	if maxDiff < 10 {
		if gray < 4 {
			return 16
		}
		if gray > 243 {
			return 231
		}
		grayIdx := 232 + (gray-8)/10
		if grayIdx > 255 {
			grayIdx = 255
		}
		grayLevel := 8 + (grayIdx-232)*10
		grayDist := abs(int(r)-grayLevel) + abs(int(g)-grayLevel) + abs(int(b)-grayLevel)
		cubeDist := abs(int(r)-int(cubeValues[cr])) +
			abs(int(g)-int(cubeValues[cg])) +
			abs(int(b)-int(cubeValues[cb]))
		if grayDist < cubeDist {
			return uint8(grayIdx)
		}
	}

	return 16 + 36*cr + 6*cg + cb
}

// DetectColorMode determines terminal color capability from environment
func DetectColorMode() ColorMode {
	colorterm := os.Getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return ColorModeTrueColor
	}

	if os.Getenv("KITTY_WINDOW_ID") != "" ||
		os.Getenv("KONSOLE_VERSION") != "" ||
		os.Getenv("ITERM_SESSION_ID") != "" ||
		os.Getenv("ALACRITTY_WINDOW_ID") != "" ||
		os.Getenv("WEZTERM_PANE") != "" {
		return ColorModeTrueColor
	}

	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "truecolor") ||
		strings.Contains(term, "24bit") ||
		strings.Contains(term, "direct") {
		return ColorModeTrueColor
	}

	return ColorMode256
}
