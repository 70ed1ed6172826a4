package stdimg

import (
	"fmt"
	"math"
	"strings"

	"github.com/disintegration/imaging"
)

// Resize scale factors are clamped to this range.
const (
	MinScale = 0.1
	MaxScale = 5.0
)

// Axis selects the mirror direction of a flip.
type Axis int

const (
	// Horizontal mirrors left to right.
	Horizontal Axis = iota + 1
	// Vertical mirrors top to bottom.
	Vertical
)

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("axis(%d)", int(a))
	}
}

// Valid reports whether a names a supported axis.
func (a Axis) Valid() bool { return a == Horizontal || a == Vertical }

// ParseAxis accepts "h", "horizontal", "v" and "vertical" in any case.
// Anything else yields the zero Axis, which is not Valid.
func ParseAxis(s string) Axis {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "h", "horizontal":
		return Horizontal
	case "v", "vertical":
		return Vertical
	default:
		return 0
	}
}

// NormalizeAngle folds a clockwise angle into [0,360). The boolean is false
// when the angle is not a multiple of 90.
func NormalizeAngle(angle int) (int, bool) {
	a := ((angle % 360) + 360) % 360
	return a, a%90 == 0
}

// RotateCW rotates src clockwise by a multiple of 90 degrees. Angles that are
// not quarter turns return a copy.
func RotateCW(src Buffer, angle int) Buffer {
	a, ok := NormalizeAngle(angle)
	if !ok || a == 0 || src.Empty() {
		return src.Clone()
	}
	img := src.ToNRGBA()
	switch a {
	case 90:
		// imaging rotates counter-clockwise
		return FromImage(imaging.Rotate270(img))
	case 180:
		return FromImage(imaging.Rotate180(img))
	default:
		return FromImage(imaging.Rotate90(img))
	}
}

// Flip mirrors src along the given axis. Invalid axes return a copy.
func Flip(src Buffer, axis Axis) Buffer {
	if src.Empty() {
		return src.Clone()
	}
	switch axis {
	case Horizontal:
		return FromImage(imaging.FlipH(src.ToNRGBA()))
	case Vertical:
		return FromImage(imaging.FlipV(src.ToNRGBA()))
	default:
		return src.Clone()
	}
}

// ScaledSize returns the target size for a scale factor: the factor is
// clamped to [MinScale, MaxScale] and each dimension is floored, never below 1.
func ScaledSize(w, h int, scale float64) (int, int) {
	scale = clampFloat(scale, MinScale, MaxScale)
	nw := int(math.Floor(float64(w) * scale))
	nh := int(math.Floor(float64(h) * scale))
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return nw, nh
}

// Resize scales src by factor (see ScaledSize). Shrinking uses box (area)
// averaging, enlarging uses linear interpolation.
func Resize(src Buffer, scale float64) Buffer {
	if src.Empty() {
		return src.Clone()
	}
	nw, nh := ScaledSize(src.Width, src.Height, scale)
	if nw == src.Width && nh == src.Height {
		return src.ToRGB()
	}
	filter := imaging.Box
	if nw > src.Width || nh > src.Height {
		filter = imaging.Linear
	}
	return FromImage(imaging.Resize(src.ToNRGBA(), nw, nh, filter))
}
