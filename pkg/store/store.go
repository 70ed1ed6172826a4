// Package store holds the single current image of an editing session and
// applies stateless transforms to it.
//
// Every Buffer that crosses the store boundary is a deep copy: Get and every
// transform return fresh buffers, Set stores its own copy. Transforms read the
// current image and never modify it; callers decide whether to Set the result.
// A Store is owned by one session and is not safe for concurrent use.
package store

import (
	"fmt"
	"math"

	"github.com/Fepozopo/snapedit/pkg/stdimg"
)

// Options tune the store behavior.
type Options struct {
	// Permissive restores the lenient fallback where an unsupported rotate
	// angle or flip axis returns an unchanged copy instead of ErrInvalidArgument.
	Permissive bool
	// JPEGQuality is used when saving .jpg/.jpeg files (1-100).
	JPEGQuality int
}

// Store owns the current image slot and the path it was loaded from.
type Store struct {
	opts    Options
	current stdimg.Buffer
	loaded  bool
	path    string
	format  string
}

// New returns an empty store.
func New(opts Options) *Store {
	if opts.JPEGQuality == 0 {
		opts.JPEGQuality = DefaultJPEGQuality
	}
	return &Store{opts: opts}
}

// Load decodes path and makes it the current image. On failure the previous
// image and path are left untouched and the error matches ErrDecode.
func (s *Store) Load(path string) (stdimg.Buffer, error) {
	buf, format, err := decodeFile(path)
	if err != nil {
		return stdimg.Buffer{}, err
	}
	s.current = buf
	s.loaded = true
	s.path = path
	s.format = format
	return buf.Clone(), nil
}

// Get returns a copy of the current image, or false when none is loaded.
func (s *Store) Get() (stdimg.Buffer, bool) {
	if !s.loaded {
		return stdimg.Buffer{}, false
	}
	return s.current.Clone(), true
}

// Set replaces the current image with a copy of img. An empty buffer clears
// the slot.
func (s *Store) Set(img stdimg.Buffer) {
	if img.Empty() {
		s.current = stdimg.Buffer{}
		s.loaded = false
		return
	}
	s.current = img.Clone()
	s.loaded = true
}

// HasImage reports whether a current image is present.
func (s *Store) HasImage() bool { return s.loaded }

// Path is the file the current document was loaded from or last saved as.
func (s *Store) Path() string { return s.path }

// Format is the container format detected on load ("jpeg", "png", ...).
func (s *Store) Format() string { return s.format }

// Save encodes the current image to path, chosen by extension, and records
// path as the document path. Failures match ErrEncode.
func (s *Store) Save(path string) error {
	if !s.loaded {
		return ErrNoImageLoaded
	}
	if err := encodeFile(path, s.current, s.opts.JPEGQuality); err != nil {
		return err
	}
	s.path = path
	return nil
}

// Dimensions returns the width and height of the current image.
func (s *Store) Dimensions() (int, int, error) {
	if !s.loaded {
		return 0, 0, ErrNoImageLoaded
	}
	return s.current.Width, s.current.Height, nil
}

// Stats summarizes the current image.
func (s *Store) Stats() (stdimg.Stats, error) {
	if !s.loaded {
		return stdimg.Stats{}, ErrNoImageLoaded
	}
	return stdimg.Summarize(s.current), nil
}

func (s *Store) require() error {
	if !s.loaded {
		return ErrNoImageLoaded
	}
	return nil
}

// expand widens a gray result to 3 channels; RGB results pass through.
func expand(b stdimg.Buffer) stdimg.Buffer {
	if b.Channels == 1 {
		return b.ToRGB()
	}
	return b
}

// Grayscale returns the luminance of the current image as 3 channels.
func (s *Store) Grayscale() (stdimg.Buffer, error) {
	if err := s.require(); err != nil {
		return stdimg.Buffer{}, err
	}
	return stdimg.Grayscale(s.current), nil
}

// Blur applies a gaussian blur. Kernel sizes below 1 become 1 (a copy) and
// even sizes are bumped to the next odd size.
func (s *Store) Blur(kernelSize int) (stdimg.Buffer, error) {
	if err := s.require(); err != nil {
		return stdimg.Buffer{}, err
	}
	return expand(stdimg.GaussianBlur(s.current, kernelSize)), nil
}

// EdgesDefault runs Edges with the 50/150 thresholds.
func (s *Store) EdgesDefault() (stdimg.Buffer, error) {
	return s.Edges(stdimg.DefaultEdgeLow, stdimg.DefaultEdgeHigh)
}

// Edges runs Canny edge detection. low must be strictly less than high.
func (s *Store) Edges(low, high float64) (stdimg.Buffer, error) {
	if err := s.require(); err != nil {
		return stdimg.Buffer{}, err
	}
	if math.IsNaN(low) || math.IsNaN(high) || low >= high {
		return stdimg.Buffer{}, fmt.Errorf("%w: low %.0f must be less than high %.0f", ErrInvalidThreshold, low, high)
	}
	return stdimg.Canny(s.current, low, high), nil
}

// Brightness adds delta to every channel with saturation.
func (s *Store) Brightness(delta int) (stdimg.Buffer, error) {
	if err := s.require(); err != nil {
		return stdimg.Buffer{}, err
	}
	return stdimg.Brightness(s.current, delta), nil
}

// Contrast multiplies every channel by factor (clamped to 0.1..3.0).
func (s *Store) Contrast(factor float64) (stdimg.Buffer, error) {
	if err := s.require(); err != nil {
		return stdimg.Buffer{}, err
	}
	return stdimg.Contrast(s.current, factor), nil
}

// Rotate turns the image clockwise by 90, 180 or 270 degrees. Equivalent
// angles (-90, 450, ...) and 0 are accepted; anything else is
// ErrInvalidArgument unless the store is permissive.
func (s *Store) Rotate(angle int) (stdimg.Buffer, error) {
	if err := s.require(); err != nil {
		return stdimg.Buffer{}, err
	}
	if _, ok := stdimg.NormalizeAngle(angle); !ok {
		if s.opts.Permissive {
			return s.current.Clone(), nil
		}
		return stdimg.Buffer{}, fmt.Errorf("%w: rotate angle %d is not a multiple of 90", ErrInvalidArgument, angle)
	}
	return expand(stdimg.RotateCW(s.current, angle)), nil
}

// Flip mirrors the image along axis.
func (s *Store) Flip(axis stdimg.Axis) (stdimg.Buffer, error) {
	if err := s.require(); err != nil {
		return stdimg.Buffer{}, err
	}
	if !axis.Valid() {
		if s.opts.Permissive {
			return s.current.Clone(), nil
		}
		return stdimg.Buffer{}, fmt.Errorf("%w: flip axis %s", ErrInvalidArgument, axis)
	}
	return stdimg.Flip(s.current, axis), nil
}

// Resize scales the image by factor (clamped to 0.1..5.0), flooring each
// dimension with a minimum of 1 pixel.
func (s *Store) Resize(scale float64) (stdimg.Buffer, error) {
	if err := s.require(); err != nil {
		return stdimg.Buffer{}, err
	}
	return stdimg.Resize(s.current, scale), nil
}
