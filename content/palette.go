package content

import (
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

// Palette is the ordered set of gradient classes used for tag chips.
var Palette = [...]string{
	"from-pink-500 to-violet-600",
	"from-blue-500 to-cyan-600",
	"from-green-500 to-emerald-600",
	"from-yellow-500 to-orange-600",
	"from-purple-500 to-pink-600",
	"from-indigo-500 to-blue-600",
}

// PaletteIndex maps a tag to a palette slot using the first UTF-16 code
// unit of the tag. An empty tag maps to slot 0.
func PaletteIndex(tag string) int {
	if tag == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(tag)
	// Runes outside the BMP count by their high surrogate.
	if hi, _ := utf16.EncodeRune(r); hi != unicode.ReplacementChar {
		r = hi
	}
	return int(r) % len(Palette)
}

// TagGradient returns the gradient classes for tag.
func TagGradient(tag string) string {
	return Palette[PaletteIndex(tag)]
}
