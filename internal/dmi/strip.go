package dmi

import "github.com/rm-hull/dmi-tools/internal/png"

// Strip rewrites the PNG at path without its zTXt chunks. The file is
// overwritten in place, so a failed write leaves it truncated.
func Strip(path string) error {
	img, err := png.Decode(path)
	if err != nil {
		return classify("strip", path, err, KindDecode)
	}

	if err := png.Encode(path, img, false); err != nil {
		return classify("strip", path, err, KindIO)
	}
	return nil
}
