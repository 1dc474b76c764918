package dmi

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rm-hull/dmi-tools/internal/png"
)

// ParsePixelStream converts "#RRGGBB" / "#RRGGBBAA" tokens into a packed RGBA
// buffer. RGB tokens get an opaque alpha, and both forms may be mixed.
func ParsePixelStream(data string) ([]byte, error) {
	tokens := strings.Split(data, "#")[1:]
	out := make([]byte, 0, len(tokens)*4)

	for i, tok := range tokens {
		if len(tok) != 6 && len(tok) != 8 {
			return nil, &Error{
				Kind: KindFormat,
				Op:   "parse pixels",
				Err:  fmt.Errorf("%w: pixel %d has %d hex digits", ErrInvalidPngData, i, len(tok)),
			}
		}

		px, err := hex.DecodeString(tok)
		if err != nil {
			return nil, &Error{Kind: KindParse, Op: "parse pixels", Err: fmt.Errorf("pixel %d: %w", i, err)}
		}

		out = append(out, px...)
		if len(tok) == 6 {
			out = append(out, 0xff)
		}
	}
	return out, nil
}

func parseDimension(op, path, name, value string) (uint32, error) {
	n, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, &Error{Kind: KindParse, Op: op, Path: path, Err: fmt.Errorf("failed to parse %s: %w", name, err)}
	}
	return uint32(n), nil
}

// CreatePNG writes a new 8-bit RGBA PNG built from a pixel stream, creating
// parent directories as needed. The pixel count is not checked against the
// dimensions here; the encoder rejects a mismatch.
func CreatePNG(path, width, height, data string) error {
	w, err := parseDimension("create", path, "width", width)
	if err != nil {
		return err
	}
	h, err := parseDimension("create", path, "height", height)
	if err != nil {
		return err
	}

	pixels, err := ParsePixelStream(data)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &Error{Kind: KindIO, Op: "create", Path: path, Err: fmt.Errorf("failed to create directory: %w", err)}
	}

	img := &png.DecodedImage{
		Width:     w,
		Height:    h,
		ColorType: png.RGBA,
		BitDepth:  8,
		Pixels:    pixels,
	}
	if err := png.Encode(path, img, false); err != nil {
		return classify("create", path, err, KindIO)
	}
	return nil
}
