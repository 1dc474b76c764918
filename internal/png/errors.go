package png

import "errors"

// A FormatError reports that the input is not a valid PNG stream.
type FormatError string

func (e FormatError) Error() string { return "png: invalid format: " + string(e) }

// An EncodeError reports that the image parameters cannot be written as a PNG.
type EncodeError string

func (e EncodeError) Error() string { return "png: cannot encode: " + string(e) }

var (
	ErrInvalidSignature = FormatError("not a PNG file")

	// ErrInvalidText is returned when an inflated zTXt payload is not UTF-8.
	ErrInvalidText = errors.New("png: compressed text is not valid UTF-8")
)
