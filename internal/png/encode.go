package png

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zlib"
	bst "github.com/mixcode/binarystruct"
)

// Encode writes img to path, truncating any existing file. The zTXt chunks
// are only copied across when preserveText is set.
func Encode(path string, img *DecodedImage, preserveText bool) (err error) {
	if err := validate(img); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	if err := encode(w, img, preserveText); err != nil {
		return err
	}
	return w.Flush()
}

func EncodeWriter(w io.Writer, img *DecodedImage, preserveText bool) error {
	if err := validate(img); err != nil {
		return err
	}
	return encode(w, img, preserveText)
}

// encode assumes img has already been validated.
func encode(w io.Writer, img *DecodedImage, preserveText bool) error {
	if _, err := io.WriteString(w, pngSignature); err != nil {
		return err
	}

	var hdr bytes.Buffer
	if _, err := bst.Write(&hdr, bst.BigEndian, &ihdr{
		Width:     img.Width,
		Height:    img.Height,
		BitDepth:  img.BitDepth,
		ColorType: uint8(img.ColorType),
	}); err != nil {
		return err
	}
	if err := writeChunk(w, chunkIHDR, hdr.Bytes()); err != nil {
		return err
	}

	if img.Palette != nil {
		if err := writeChunk(w, chunkPLTE, img.Palette); err != nil {
			return err
		}
	}
	if img.Transparency != nil {
		if err := writeChunk(w, chunkTRNS, img.Transparency); err != nil {
			return err
		}
	}
	if preserveText {
		for _, text := range img.TextChunks {
			if err := writeChunk(w, chunkZTXT, text.payload()); err != nil {
				return err
			}
		}
	}

	data, err := deflatePixels(img)
	if err != nil {
		return err
	}
	if err := writeChunk(w, chunkIDAT, data); err != nil {
		return err
	}
	return writeChunk(w, chunkIEND, nil)
}

func validate(img *DecodedImage) error {
	if img.Width == 0 || img.Height == 0 {
		return EncodeError(fmt.Sprintf("invalid dimensions %dx%d", img.Width, img.Height))
	}
	if !validCombination(img.ColorType, img.BitDepth) {
		return EncodeError(fmt.Sprintf("bit depth %d not allowed for %s", img.BitDepth, img.ColorType))
	}
	if img.ColorType == Indexed && img.Palette == nil {
		return EncodeError("indexed image requires a palette")
	}
	if want := int(img.Height) * img.Stride(); len(img.Pixels) != want {
		return EncodeError(fmt.Sprintf("pixel buffer is %d bytes, expected %d for %dx%d %s/%d",
			len(img.Pixels), want, img.Width, img.Height, img.ColorType, img.BitDepth))
	}
	return nil
}

// every scanline is written with filter type 0, so output depends only on the pixels
func deflatePixels(img *DecodedImage) ([]byte, error) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)

	stride := img.Stride()
	for y := 0; y < int(img.Height); y++ {
		if _, err := zw.Write([]byte{filterNone}); err != nil {
			return nil, err
		}
		if _, err := zw.Write(img.Pixels[y*stride : (y+1)*stride]); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
