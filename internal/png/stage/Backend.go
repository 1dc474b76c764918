package stage

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Backend names the library that performs the resampling.
type Backend string

const (
	Bild    Backend = "bild"
	Imaging Backend = "imaging"
	XDraw   Backend = "xdraw"
)

func ParseBackend(name string) Backend {
	switch b := Backend(name); b {
	case Bild, Imaging, XDraw:
		return b
	default:
		return Bild
	}
}

type resampler func(src image.Image, width, height int, filter Filter) image.Image

var resamplers = map[Backend]resampler{
	Bild:    resizeBild,
	Imaging: resizeImaging,
	XDraw:   resizeXDraw,
}

func resizeBild(src image.Image, width, height int, filter Filter) image.Image {
	f := transform.NearestNeighbor
	switch filter {
	case Triangle:
		f = transform.Linear
	case CatmullRom:
		f = transform.CatmullRom
	case Gaussian:
		f = transform.Gaussian
	case Lanczos3:
		f = transform.Lanczos
	}
	return transform.Resize(src, width, height, f)
}

func resizeImaging(src image.Image, width, height int, filter Filter) image.Image {
	f := imaging.NearestNeighbor
	switch filter {
	case Triangle:
		f = imaging.Linear
	case CatmullRom:
		f = imaging.CatmullRom
	case Gaussian:
		f = imaging.Gaussian
	case Lanczos3:
		f = imaging.Lanczos
	}
	return imaging.Resize(src, width, height, f)
}

// x/image/draw has no Gaussian or Lanczos kernel, so those two are defined here
var (
	gaussianKernel = &draw.Kernel{Support: 2, At: func(t float64) float64 {
		return math.Exp(-2 * t * t)
	}}
	lanczos3Kernel = &draw.Kernel{Support: 3, At: func(t float64) float64 {
		return sinc(t) * sinc(t/3)
	}}
)

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	x *= math.Pi
	return math.Sin(x) / x
}

func resizeXDraw(src image.Image, width, height int, filter Filter) image.Image {
	var s draw.Scaler = draw.NearestNeighbor
	switch filter {
	case Triangle:
		s = draw.BiLinear
	case CatmullRom:
		s = draw.CatmullRom
	case Gaussian:
		s = gaussianKernel
	case Lanczos3:
		s = lanczos3Kernel
	}

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	s.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
