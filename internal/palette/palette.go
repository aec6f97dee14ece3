// Package palette maps small integer color indices to RGBA values.
package palette

import "image/color"

// Palette is an ordered color table. Index 0..len-1 correspond to the
// indices found in placement logs.
type Palette []color.NRGBA

// Color returns the palette entry for idx, or false when idx is out of range.
func (p Palette) Color(idx int) (color.NRGBA, bool) {
	if idx < 0 || idx >= len(p) {
		return color.NRGBA{}, false
	}
	return p[idx], true
}

// Index returns the palette index whose color exactly equals c.
func (p Palette) Index(c color.NRGBA) (int, bool) {
	for i, pc := range p {
		if pc == c {
			return i, true
		}
	}
	return 0, false
}

// Default is the 32-color pxls canvas palette used when no palette file is
// supplied.
func Default() Palette {
	return Palette{
		{0, 0, 0, 255},       // Black
		{34, 34, 34, 255},    // Dark Grey
		{85, 85, 85, 255},    // Deep Grey
		{136, 136, 136, 255}, // Medium Grey
		{205, 205, 205, 255}, // Light Grey
		{255, 255, 255, 255}, // White
		{255, 213, 188, 255}, // Beige
		{255, 183, 131, 255}, // Peach
		{182, 109, 61, 255},  // Brown
		{119, 67, 31, 255},   // Chocolate
		{252, 117, 16, 255},  // Rust
		{252, 168, 14, 255},  // Orange
		{253, 232, 23, 255},  // Yellow
		{255, 244, 145, 255}, // Pastel Yellow
		{190, 255, 64, 255},  // Lime
		{112, 221, 19, 255},  // Green
		{49, 161, 23, 255},   // Dark Green
		{11, 95, 53, 255},    // Forest
		{39, 126, 108, 255},  // Dark Teal
		{50, 182, 159, 255},  // Light Teal
		{136, 255, 243, 255}, // Aqua
		{36, 181, 254, 255},  // Azure
		{18, 92, 199, 255},   // Blue
		{38, 41, 96, 255},    // Navy
		{139, 47, 168, 255},  // Purple
		{210, 76, 233, 255},  // Mauve
		{255, 89, 239, 255},  // Magenta
		{255, 169, 217, 255}, // Pink
		{255, 100, 116, 255}, // Watermelon
		{240, 37, 35, 255},   // Red
		{177, 18, 6, 255},    // Rose
		{116, 12, 0, 255},    // Maroon
	}
}
