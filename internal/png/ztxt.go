package png

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/klauspost/compress/zlib"
)

// CompressedText is a zTXt chunk kept in its stored form so that it can be
// written back without being re-compressed.
type CompressedText struct {
	Keyword string
	Method  byte
	Data    []byte
}

// NewCompressedText deflates text into a zTXt payload under keyword.
func NewCompressedText(keyword, text string) (CompressedText, error) {
	if len(keyword) == 0 || len(keyword) > 79 {
		return CompressedText{}, EncodeError(fmt.Sprintf("zTXt keyword must be 1-79 bytes, got %d", len(keyword)))
	}

	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write([]byte(text)); err != nil {
		return CompressedText{}, err
	}
	if err := zw.Close(); err != nil {
		return CompressedText{}, err
	}
	return CompressedText{Keyword: keyword, Data: buf.Bytes()}, nil
}

func parseZTXt(data []byte) (CompressedText, error) {
	sep := bytes.IndexByte(data, 0)
	if sep < 1 || sep > 79 {
		return CompressedText{}, FormatError("zTXt keyword missing or too long")
	}
	if len(data) < sep+2 {
		return CompressedText{}, FormatError("zTXt chunk missing compression method")
	}
	return CompressedText{
		Keyword: string(data[:sep]),
		Method:  data[sep+1],
		Data:    data[sep+2:],
	}, nil
}

func (t CompressedText) payload() []byte {
	out := make([]byte, 0, len(t.Keyword)+2+len(t.Data))
	out = append(out, t.Keyword...)
	out = append(out, 0, t.Method)
	return append(out, t.Data...)
}

// Text inflates Data and returns it as a string.
func (t CompressedText) Text() (string, error) {
	if t.Method != 0 {
		return "", FormatError(fmt.Sprintf("zTXt %q uses unknown compression method %d", t.Keyword, t.Method))
	}

	zr, err := zlib.NewReader(bytes.NewReader(t.Data))
	if err != nil {
		return "", FormatError(fmt.Sprintf("zTXt %q: %v", t.Keyword, err))
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return "", FormatError(fmt.Sprintf("zTXt %q: %v", t.Keyword, err))
	}
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%w (keyword %q)", ErrInvalidText, t.Keyword)
	}
	return string(raw), nil
}
