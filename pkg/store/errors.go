package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNoImageLoaded is returned by every operation that needs a current image.
	ErrNoImageLoaded = errors.New("no image loaded")
	// ErrDecode matches every *DecodeError.
	ErrDecode = errors.New("decode failed")
	// ErrEncode matches every *EncodeError.
	ErrEncode = errors.New("encode failed")
	// ErrInvalidThreshold is returned by Edges when low >= high.
	ErrInvalidThreshold = errors.New("invalid edge thresholds")
	// ErrInvalidArgument is returned for rotate angles and flip axes outside
	// the supported set.
	ErrInvalidArgument = errors.New("invalid argument")
)

// DecodeError reports a file that could not be read or decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("could not read image %s (use JPG, PNG or BMP): %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrDecode) match.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// EncodeError reports a save target that could not be encoded or written.
type EncodeError struct {
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("could not save image to %s: %v", e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrEncode) match.
func (e *EncodeError) Is(target error) bool { return target == ErrEncode }
