package png

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zlib"
)

// DecodedImage is everything needed to write an image back out chunk for
// chunk: header fields, PLTE, tRNS, zTXt and the raw (unfiltered) scanlines.
type DecodedImage struct {
	Width        uint32
	Height       uint32
	ColorType    ColorType
	BitDepth     uint8
	Palette      []byte
	Transparency []byte
	TextChunks   []CompressedText
	Pixels       []byte
}

// Stride is the size in bytes of one raw scanline.
func (img *DecodedImage) Stride() int {
	return rowStride(img.Width, img.ColorType, img.BitDepth)
}

// Decode reads the PNG at path including its pixel data.
func Decode(path string) (*DecodedImage, error) {
	return decodeFile(path, true)
}

// DecodeHeader reads the PNG at path but leaves Pixels empty; IDAT is
// checksummed but not inflated.
func DecodeHeader(path string) (*DecodedImage, error) {
	return decodeFile(path, false)
}

func decodeFile(path string, withPixels bool) (*DecodedImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return decode(f, withPixels)
}

func DecodeReader(r io.Reader) (*DecodedImage, error) {
	return decode(r, true)
}

func decode(r io.Reader, withPixels bool) (*DecodedImage, error) {
	br := bufio.NewReader(r)

	sig := make([]byte, len(pngSignature))
	if _, err := io.ReadFull(br, sig); err != nil {
		return nil, truncated(err)
	}
	if string(sig) != pngSignature {
		return nil, ErrInvalidSignature
	}

	var (
		hdr  ihdr
		img  DecodedImage
		idat bytes.Buffer
		seen bool
	)

	for {
		c, err := readChunk(br)
		if err != nil {
			return nil, err
		}
		if !seen && c.Type != chunkIHDR {
			return nil, FormatError(fmt.Sprintf("expected IHDR, found %q", c.Type))
		}

		switch c.Type {
		case chunkIHDR:
			if seen {
				return nil, FormatError("duplicate IHDR")
			}
			if hdr, err = parseIHDR(c.Data); err != nil {
				return nil, err
			}
			seen = true
			img.Width, img.Height = hdr.Width, hdr.Height
			img.ColorType, img.BitDepth = ColorType(hdr.ColorType), hdr.BitDepth

		case chunkPLTE:
			if len(c.Data) == 0 || len(c.Data)%3 != 0 || len(c.Data) > 256*3 {
				return nil, FormatError(fmt.Sprintf("bad PLTE length %d", len(c.Data)))
			}
			img.Palette = c.Data

		case chunkTRNS:
			img.Transparency = c.Data

		case chunkZTXT:
			// kept wherever it appears, including after IDAT
			text, err := parseZTXt(c.Data)
			if err != nil {
				return nil, err
			}
			img.TextChunks = append(img.TextChunks, text)

		case chunkIDAT:
			idat.Write(c.Data)

		case chunkIEND:
			if img.ColorType == Indexed && img.Palette == nil {
				return nil, FormatError("indexed image without PLTE")
			}
			if idat.Len() == 0 {
				return nil, FormatError("no IDAT chunks")
			}
			if withPixels {
				if img.Pixels, err = inflatePixels(&idat, hdr); err != nil {
					return nil, err
				}
			}
			return &img, nil

		default:
			if c.critical() {
				return nil, FormatError(fmt.Sprintf("unsupported critical chunk %q", c.Type))
			}
		}
	}
}

func inflatePixels(idat io.Reader, hdr ihdr) ([]byte, error) {
	zr, err := zlib.NewReader(idat)
	if err != nil {
		return nil, FormatError("IDAT: " + err.Error())
	}
	defer zr.Close()

	size := filteredSize(hdr)
	data, err := io.ReadAll(io.LimitReader(zr, int64(size)))
	if err != nil {
		return nil, FormatError("IDAT: " + err.Error())
	}
	if len(data) != size {
		return nil, FormatError(fmt.Sprintf("IDAT: got %d bytes of image data, expected %d", len(data), size))
	}

	if hdr.Interlace == 1 {
		return deinterlace(data, hdr)
	}

	ct := ColorType(hdr.ColorType)
	return unfilter(data, int(hdr.Height), rowStride(hdr.Width, ct, hdr.BitDepth), filterUnit(ct, hdr.BitDepth))
}
