package dmi

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/rm-hull/dmi-tools/internal/png"
)

// Kind classifies an operation failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindIO
	KindDecode
	KindEncode
	KindParse
	KindFormat
	KindTextDecode
	KindSerialization
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io error"
	case KindDecode:
		return "decode error"
	case KindEncode:
		return "encode error"
	case KindParse:
		return "parse error"
	case KindFormat:
		return "format error"
	case KindTextDecode:
		return "text decode error"
	case KindSerialization:
		return "serialization error"
	default:
		return "error"
	}
}

// ErrInvalidPngData is returned when a pixel stream token is neither 6 nor 8
// hex digits long.
var ErrInvalidPngData = errors.New("invalid png data")

type Error struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Path, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// classify wraps an error coming out of the png layer, picking the kind from
// the concrete error and using fallback for anything unrecognised.
func classify(op, path string, err error, fallback Kind) error {
	var (
		pathErr   *fs.PathError
		formatErr png.FormatError
		encodeErr png.EncodeError
	)

	kind := fallback
	switch {
	case errors.Is(err, png.ErrInvalidText):
		kind = KindTextDecode
	case errors.As(err, &pathErr):
		kind = KindIO
	case errors.As(err, &formatErr):
		kind = KindDecode
	case errors.As(err, &encodeErr):
		kind = KindEncode
	}
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}
