package editor

import (
	"fmt"

	"github.com/Fepozopo/snapedit/pkg/stdimg"
	"github.com/Fepozopo/snapedit/pkg/store"
)

// Operation is a single edit: a named transform evaluated against the store.
type Operation struct {
	Name  string
	apply func(s *store.Store) (stdimg.Buffer, error)
}

func (o Operation) String() string { return o.Name }

// Grayscale converts to luminance.
func Grayscale() Operation {
	return Operation{Name: "grayscale", apply: (*store.Store).Grayscale}
}

// Blur applies a gaussian blur with the given kernel size.
func Blur(kernel int) Operation {
	return Operation{
		Name:  fmt.Sprintf("blur %d", stdimg.OddKernel(kernel)),
		apply: func(s *store.Store) (stdimg.Buffer, error) { return s.Blur(kernel) },
	}
}

// Edges runs edge detection with the given hysteresis thresholds.
func Edges(low, high float64) Operation {
	return Operation{
		Name:  fmt.Sprintf("edges %g %g", low, high),
		apply: func(s *store.Store) (stdimg.Buffer, error) { return s.Edges(low, high) },
	}
}

// EdgesDefault runs edge detection with the default 50/150 thresholds.
func EdgesDefault() Operation {
	return Edges(stdimg.DefaultEdgeLow, stdimg.DefaultEdgeHigh)
}

// Brightness shifts every channel by delta.
func Brightness(delta int) Operation {
	return Operation{
		Name:  fmt.Sprintf("brightness %d", delta),
		apply: func(s *store.Store) (stdimg.Buffer, error) { return s.Brightness(delta) },
	}
}

// Contrast scales every channel by factor.
func Contrast(factor float64) Operation {
	return Operation{
		Name:  fmt.Sprintf("contrast %g", factor),
		apply: func(s *store.Store) (stdimg.Buffer, error) { return s.Contrast(factor) },
	}
}

// Rotate turns the image clockwise by angle degrees.
func Rotate(angle int) Operation {
	return Operation{
		Name:  fmt.Sprintf("rotate %d", angle),
		apply: func(s *store.Store) (stdimg.Buffer, error) { return s.Rotate(angle) },
	}
}

// Flip mirrors the image along axis.
func Flip(axis stdimg.Axis) Operation {
	return Operation{
		Name:  "flip " + axis.String(),
		apply: func(s *store.Store) (stdimg.Buffer, error) { return s.Flip(axis) },
	}
}

// Resize scales the image by factor.
func Resize(scale float64) Operation {
	return Operation{
		Name:  fmt.Sprintf("resize %g", scale),
		apply: func(s *store.Store) (stdimg.Buffer, error) { return s.Resize(scale) },
	}
}
