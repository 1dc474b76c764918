package stage

import (
	"fmt"

	"github.com/rm-hull/dmi-tools/internal/png"
)

type ResizeStage struct {
	Width   int
	Height  int
	Filter  Filter
	Backend Backend
}

// Process resamples the image to exactly Width x Height using the configured
// filter. The aspect ratio of the source is not preserved.
func (s *ResizeStage) Process(p *png.PngImage) error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("invalid target size %dx%d", s.Width, s.Height)
	}

	resize, ok := resamplers[s.Backend]
	if !ok {
		resize = resamplers[Bild]
	}

	p.Img = resize(p.Img, s.Width, s.Height, s.Filter)
	p.Bounds = p.Img.Bounds()
	return nil
}
