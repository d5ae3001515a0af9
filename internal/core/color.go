package core

// Color is the foreground color of a screen cell.
// Values map to ANSI colors in the platform layer.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorBlue
	ColorYellow
	ColorCyan
	ColorMagenta
	ColorWhite
	ColorGray
)

// String returns the color name.
func (c Color) String() string {
	switch c {
	case ColorDefault:
		return "default"
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorBlue:
		return "blue"
	case ColorYellow:
		return "yellow"
	case ColorCyan:
		return "cyan"
	case ColorMagenta:
		return "magenta"
	case ColorWhite:
		return "white"
	case ColorGray:
		return "gray"
	default:
		return "unknown"
	}
}
