// Package draw renders half-block graphics and text to ANSI terminals.
package draw

import "strconv"

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Color is a palette index for canvas pixels. ColorNone marks an empty pixel.
type Color uint8

// Canvas palette.
const (
	ColorNone Color = iota
	ColorWhite
	ColorCyan
	ColorYellow
	ColorOrange
	ColorRed
	ColorMagenta
	ColorGreen
	ColorGray
)

// xterm-256 codes for the palette, indexed by Color.
var paletteCodes = [...]int{
	ColorNone:    0,
	ColorWhite:   15,
	ColorCyan:    51,
	ColorYellow:  226,
	ColorOrange:  208,
	ColorRed:     196,
	ColorMagenta: 201,
	ColorGreen:   46,
	ColorGray:    245,
}

// Foreground returns the escape sequence selecting c as the text colour.
func (c Color) Foreground() string {
	if int(c) >= len(paletteCodes) || c == ColorNone {
		return ColorReset
	}
	return "\033[38;5;" + strconv.Itoa(paletteCodes[c]) + "m"
}

// Background returns the escape sequence selecting c as the cell background.
func (c Color) Background() string {
	if int(c) >= len(paletteCodes) || c == ColorNone {
		return "\033[49m"
	}
	return "\033[48;5;" + strconv.Itoa(paletteCodes[c]) + "m"
}

// ANSI text attributes for overlays.
const (
	ColorReset       = "\033[0m"
	ColorBold        = "\033[1m"
	ColorBrightCyan  = "\033[96m"
	ColorBrightRed   = "\033[91m"
	ColorBrightGreen = "\033[92m"
	ColorDim         = "\033[2m"
)

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
