package stdimg

import (
	"math"

	"github.com/anthonynsimon/bild/parallel"
)

// Default hysteresis thresholds for Canny.
const (
	DefaultEdgeLow  = 50.0
	DefaultEdgeHigh = 150.0
)

var (
	tan22 = math.Tan(22.5 * math.Pi / 180)
	tan67 = math.Tan(67.5 * math.Pi / 180)
)

// Canny runs a two-threshold edge detector on the luminance of src: 3x3
// Sobel gradients with L1 magnitude, non-maximum suppression along the
// quantized gradient direction, then hysteresis. Pixels above high are edges;
// pixels above low are edges only when connected to one. The result has 3
// channels with edge pixels at 255 and background at 0. When low > high the
// two are swapped.
func Canny(src Buffer, low, high float64) Buffer {
	if low > high {
		low, high = high, low
	}
	gray := Luminance(src)
	w, h := gray.Width, gray.Height
	out := NewBuffer(w, h, 3)
	if gray.Empty() {
		return out
	}

	px := func(x, y int) int {
		return int(gray.Pix[clampInt(y, 0, h-1)*w+clampInt(x, 0, w-1)])
	}

	gx := make([]int, w*h)
	gy := make([]int, w*h)
	mag := make([]int, w*h)
	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				dx := -px(x-1, y-1) + px(x+1, y-1) - 2*px(x-1, y) + 2*px(x+1, y) - px(x-1, y+1) + px(x+1, y+1)
				dy := -px(x-1, y-1) - 2*px(x, y-1) - px(x+1, y-1) + px(x-1, y+1) + 2*px(x, y+1) + px(x+1, y+1)
				i := y*w + x
				gx[i] = dx
				gy[i] = dy
				mag[i] = absInt(dx) + absInt(dy)
			}
		}
	})

	magAt := func(x, y int) int {
		if x < 0 || y < 0 || x >= w || y >= h {
			return 0
		}
		return mag[y*w+x]
	}

	// 0 = suppressed, 1 = weak candidate, 2 = strong edge
	state := make([]uint8, w*h)
	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				i := y*w + x
				m := mag[i]
				if float64(m) <= low {
					continue
				}
				ax := math.Abs(float64(gx[i]))
				ay := math.Abs(float64(gy[i]))
				var n1, n2 int
				switch {
				case ay <= ax*tan22:
					n1, n2 = magAt(x-1, y), magAt(x+1, y)
				case ay >= ax*tan67:
					n1, n2 = magAt(x, y-1), magAt(x, y+1)
				case (gx[i] > 0) == (gy[i] > 0):
					n1, n2 = magAt(x-1, y-1), magAt(x+1, y+1)
				default:
					n1, n2 = magAt(x+1, y-1), magAt(x-1, y+1)
				}
				if m > n1 && m >= n2 {
					if float64(m) > high {
						state[i] = 2
					} else {
						state[i] = 1
					}
				}
			}
		}
	})

	// hysteresis: grow strong edges through connected weak candidates
	stack := make([]int, 0, w)
	for i, s := range state {
		if s == 2 {
			stack = append(stack, i)
		}
	}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%w, i/w
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := x+dx, y+dy
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				j := ny*w + nx
				if state[j] == 1 {
					state[j] = 2
					stack = append(stack, j)
				}
			}
		}
	}

	for i, s := range state {
		if s == 2 {
			o := i * 3
			out.Pix[o+0] = 255
			out.Pix[o+1] = 255
			out.Pix[o+2] = 255
		}
	}
	return out
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
