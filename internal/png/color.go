package png

import "fmt"

// ColorType is the IHDR colour type byte.
type ColorType uint8

const (
	Grayscale      ColorType = 0
	RGB            ColorType = 2
	Indexed        ColorType = 3
	GrayscaleAlpha ColorType = 4
	RGBA           ColorType = 6
)

// allowed bit depths per colour type, see https://www.w3.org/TR/png/#table111
var validDepths = map[ColorType][]uint8{
	Grayscale:      {1, 2, 4, 8, 16},
	RGB:            {8, 16},
	Indexed:        {1, 2, 4, 8},
	GrayscaleAlpha: {8, 16},
	RGBA:           {8, 16},
}

func (c ColorType) String() string {
	switch c {
	case Grayscale:
		return "grayscale"
	case RGB:
		return "rgb"
	case Indexed:
		return "indexed"
	case GrayscaleAlpha:
		return "grayscale+alpha"
	case RGBA:
		return "rgba"
	default:
		return fmt.Sprintf("colortype(%d)", uint8(c))
	}
}

// Channels returns the number of samples per pixel.
func (c ColorType) Channels() int {
	switch c {
	case Grayscale, Indexed:
		return 1
	case GrayscaleAlpha:
		return 2
	case RGB:
		return 3
	case RGBA:
		return 4
	default:
		return 0
	}
}

func validCombination(c ColorType, depth uint8) bool {
	for _, d := range validDepths[c] {
		if d == depth {
			return true
		}
	}
	return false
}

func bitsPerPixel(c ColorType, depth uint8) int {
	return c.Channels() * int(depth)
}

// rowStride is the number of bytes in one unfiltered scanline of the given width.
func rowStride(width uint32, c ColorType, depth uint8) int {
	return (int(width)*bitsPerPixel(c, depth) + 7) / 8
}

// filterUnit is the byte distance used by the Sub/Avg/Paeth filters.
func filterUnit(c ColorType, depth uint8) int {
	if n := bitsPerPixel(c, depth) / 8; n > 0 {
		return n
	}
	return 1
}
