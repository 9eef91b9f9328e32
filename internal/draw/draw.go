// Package draw renders to ANSI terminals using a half-block pixel canvas.
package draw

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Color is a terminal foreground color. The zero value means "no pixel".
type Color uint8

const (
	ColorNone Color = iota
	ColorWhite
	ColorRed
	ColorGreen
	ColorBlue
	ColorMagenta
	ColorYellow
	ColorCyan
	ColorBrightRed
	ColorBrightYellow
)

// ColorReset restores the terminal's default attributes.
const ColorReset = "\033[0m"

var colorCodes = [...]string{
	ColorNone:         ColorReset,
	ColorWhite:        "\033[97m",
	ColorRed:          "\033[31m",
	ColorGreen:        "\033[32m",
	ColorBlue:         "\033[34m",
	ColorMagenta:      "\033[35m",
	ColorYellow:       "\033[33m",
	ColorCyan:         "\033[36m",
	ColorBrightRed:    "\033[91m",
	ColorBrightYellow: "\033[93m",
}

// ANSI returns the escape sequence selecting this color.
func (c Color) ANSI() string {
	if int(c) < len(colorCodes) {
		return colorCodes[c]
	}
	return ColorReset
}

// ColorByName maps a ship color setting to a terminal color.
// Unknown names map to magenta (the default purple ship).
func ColorByName(name string) Color {
	switch name {
	case "red":
		return ColorRed
	case "blue":
		return ColorBlue
	case "green":
		return ColorGreen
	default:
		return ColorMagenta
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
