package png

import (
	"bytes"
	"errors"
	"fmt"
	"hash/crc32"
	"io"

	bst "github.com/mixcode/binarystruct"
)

const (
	pngSignature = "\x89PNG\r\n\x1a\n"
	maxChunkLen  = 0x7fffffff

	chunkIHDR = "IHDR"
	chunkPLTE = "PLTE"
	chunkTRNS = "tRNS"
	chunkZTXT = "zTXt"
	chunkIDAT = "IDAT"
	chunkIEND = "IEND"
)

// chunkHeader is the length + type prefix of every chunk, stored big-endian.
type chunkHeader struct {
	Length uint32 `binary:"uint32"`
	Type   string `binary:"[4]byte"`
}

type ihdr struct {
	Width       uint32
	Height      uint32
	BitDepth    uint8
	ColorType   uint8
	Compression uint8
	Filter      uint8
	Interlace   uint8
}

type chunk struct {
	Type string
	Data []byte
}

// critical chunks have an upper-case first letter
func (c chunk) critical() bool {
	return len(c.Type) == 4 && c.Type[0]&0x20 == 0
}

func readChunk(r io.Reader) (chunk, error) {
	var head [8]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return chunk{}, truncated(err)
	}

	var hdr chunkHeader
	if _, err := bst.Read(bytes.NewReader(head[:]), bst.BigEndian, &hdr); err != nil {
		return chunk{}, err
	}
	if hdr.Length > maxChunkLen {
		return chunk{}, FormatError(fmt.Sprintf("chunk %q too large (%d bytes)", hdr.Type, hdr.Length))
	}

	// data followed by the 4 byte CRC; the buffer only grows as bytes arrive
	var body bytes.Buffer
	if _, err := io.CopyN(&body, r, int64(hdr.Length)+4); err != nil {
		return chunk{}, truncated(err)
	}
	data, tail := body.Bytes()[:hdr.Length], body.Bytes()[hdr.Length:]

	var sum uint32
	if _, err := bst.Read(bytes.NewReader(tail), bst.BigEndian, &sum); err != nil {
		return chunk{}, err
	}

	crc := crc32.NewIEEE()
	crc.Write([]byte(hdr.Type))
	crc.Write(data)
	if crc.Sum32() != sum {
		return chunk{}, FormatError(fmt.Sprintf("invalid checksum for chunk %q", hdr.Type))
	}

	return chunk{Type: hdr.Type, Data: data}, nil
}

func writeChunk(w io.Writer, typ string, data []byte) error {
	hdr := chunkHeader{Length: uint32(len(data)), Type: typ}
	if _, err := bst.Write(w, bst.BigEndian, &hdr); err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}

	crc := crc32.NewIEEE()
	crc.Write([]byte(typ))
	crc.Write(data)
	_, err := bst.Write(w, bst.BigEndian, crc.Sum32())
	return err
}

func parseIHDR(data []byte) (ihdr, error) {
	var h ihdr
	if len(data) != 13 {
		return h, FormatError(fmt.Sprintf("got %d bytes for IHDR, expected 13", len(data)))
	}
	if _, err := bst.Read(bytes.NewReader(data), bst.BigEndian, &h); err != nil {
		return h, FormatError("unreadable IHDR: " + err.Error())
	}

	switch {
	case h.Width == 0 || h.Height == 0:
		return h, FormatError("zero image dimension")
	case !validCombination(ColorType(h.ColorType), h.BitDepth):
		return h, FormatError(fmt.Sprintf("bit depth %d not allowed for %s", h.BitDepth, ColorType(h.ColorType)))
	case h.Compression != 0:
		return h, FormatError("unknown compression method")
	case h.Filter != 0:
		return h, FormatError("unknown filter method")
	case h.Interlace > 1:
		return h, FormatError("unknown interlace method")
	case uint64(1+rowStride(h.Width, ColorType(h.ColorType), h.BitDepth)) > maxImageBytes/uint64(h.Height):
		return h, FormatError(fmt.Sprintf("image %dx%d too large", h.Width, h.Height))
	}
	return h, nil
}

// An EOF in the middle of the chunk stream means the file was cut short.
func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return FormatError("unexpected end of stream")
	}
	return err
}
