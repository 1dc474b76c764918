package dmi

import (
	"github.com/rm-hull/dmi-tools/internal/png"
	"github.com/rm-hull/dmi-tools/internal/png/stage"
)

// Resize scales the image at path to width x height and writes it back as a
// PNG. This goes through image/png rather than the chunk-preserving decoder,
// so palette, tRNS and zTXt are not carried over.
func Resize(path, width, height string, filter stage.Filter, backend stage.Backend) error {
	w, err := parseDimension("resize", path, "width", width)
	if err != nil {
		return err
	}
	h, err := parseDimension("resize", path, "height", height)
	if err != nil {
		return err
	}

	img, err := png.NewPngFromFile(path)
	if err != nil {
		return classify("resize", path, err, KindDecode)
	}

	err = img.Pipeline(&stage.ResizeStage{
		Width:   int(w),
		Height:  int(h),
		Filter:  filter,
		Backend: backend,
	})
	if err != nil {
		return &Error{Kind: KindEncode, Op: "resize", Path: path, Err: err}
	}

	if err := img.WriteFile(path); err != nil {
		return classify("resize", path, err, KindEncode)
	}
	return nil
}
