package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorGray
)

// Palette is the set of cosmetic brick variants, indexed by a brick's color
// index. Its length is the number of variants a grid may pick from.
var Palette = []Color{
	ColorRed,
	ColorOrange,
	ColorYellow,
	ColorGreen,
	ColorCyan,
	ColorBlue,
	ColorMagenta,
	ColorWhite,
}

// PaletteColor returns the palette entry for a variant index, wrapping
// out-of-range indexes.
func PaletteColor(index int) Color {
	if index < 0 {
		index = -index
	}
	return Palette[index%len(Palette)]
}
