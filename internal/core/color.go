package core

// Color represents a foreground color for a screen cell.
// The platform maps colors to ANSI 256-color codes.
type Color uint8

// Predefined colors. Tiles use the warm range, chrome uses gray.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)
