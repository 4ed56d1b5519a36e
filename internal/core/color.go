package core

// Color represents a foreground color for a screen cell.
// The platform maps these to ANSI 256-color codes.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorWhite
	ColorGray
	ColorRed
	ColorGreen
	ColorBrightGreen
	ColorYellow
	ColorOrange
	ColorBlue
	ColorCyan
	ColorMagenta
)
