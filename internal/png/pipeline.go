package png

import (
	"image"
	"image/png"
	"io"
	"os"
)

// PngImage is the generic, non chunk-preserving representation used when an
// image has to be transformed pixel by pixel.
type PngImage struct {
	Img    image.Image
	Bounds image.Rectangle
}

type PipelineStage interface {
	Process(img *PngImage) error
}

func NewPngFromReader(r io.Reader) (*PngImage, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, err
	}
	return &PngImage{
		Img:    img,
		Bounds: img.Bounds(),
	}, nil
}

func NewPngFromFile(path string) (*PngImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return NewPngFromReader(f)
}

func (p *PngImage) Write(w io.Writer) error {
	return png.Encode(w, p.Img)
}

// WriteFile overwrites path with the image encoded as PNG.
func (p *PngImage) WriteFile(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return p.Write(f)
}

func (p *PngImage) Pipeline(stages ...PipelineStage) error {
	for _, stage := range stages {
		if err := stage.Process(p); err != nil {
			return err
		}
	}
	return nil
}
