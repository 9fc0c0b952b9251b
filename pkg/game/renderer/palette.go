package renderer

import (
	"image/color"

	"wavecollapse/pkg/engine/wfc"
)

// Glyphs used for collapsed tiles, chosen by tile id
var Glyphs = []rune("█▓▒░■□▪▫◆◇●○▲△▼▽")

// Palette used for collapsed tiles, chosen by tile id
var Palette = []color.RGBA{
	{0x2e, 0x34, 0x40, 0xff},
	{0x5e, 0x81, 0xac, 0xff},
	{0x88, 0xc0, 0xd0, 0xff},
	{0xa3, 0xbe, 0x8c, 0xff},
	{0xeb, 0xcb, 0x8b, 0xff},
	{0xd0, 0x87, 0x70, 0xff},
	{0xbf, 0x61, 0x6a, 0xff},
	{0xb4, 0x8e, 0xad, 0xff},
	{0x4c, 0x56, 0x6a, 0xff},
	{0x8f, 0xbc, 0xbb, 0xff},
	{0x81, 0xa1, 0xc1, 0xff},
	{0xd8, 0xde, 0xe9, 0xff},
	{0x3b, 0x42, 0x52, 0xff},
	{0xe5, 0xe9, 0xf0, 0xff},
	{0x43, 0x4c, 0x5e, 0xff},
	{0xec, 0xef, 0xf4, 0xff},
}

// Unresolved is the color of cells that have not collapsed
var Unresolved = color.RGBA{0x1a, 0x1a, 0x1a, 0xff}

func index(id wfc.TileID, n int) int {
	i := int(id) % n
	if i < 0 {
		i += n
	}
	return i
}

// TileGlyph returns the glyph drawn for a tile id
func TileGlyph(id wfc.TileID) rune {
	return Glyphs[index(id, len(Glyphs))]
}

// TileColor returns the color drawn for a tile id
func TileColor(id wfc.TileID) color.RGBA {
	return Palette[index(id, len(Palette))]
}

// EntropyColor fades from green at entropy 1 to red at maxEntropy
func EntropyColor(entropy, maxEntropy int) color.RGBA {
	if maxEntropy <= 1 {
		return color.RGBA{0x00, 0xc0, 0x00, 0xff}
	}
	ratio := float64(entropy-1) / float64(maxEntropy-1)
	ratio = min(max(ratio, 0), 1)
	return color.RGBA{
		R: uint8(0xff * ratio),
		G: uint8(0xc0 * (1 - ratio)),
		B: 0x00,
		A: 0xff,
	}
}

// EntropyGlyph returns a single character for an entropy value
func EntropyGlyph(entropy int) rune {
	switch {
	case entropy < 0:
		return '?'
	case entropy < 10:
		return rune('0' + entropy)
	case entropy < 36:
		return rune('a' + entropy - 10)
	default:
		return '*'
	}
}
