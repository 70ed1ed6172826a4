package stdimg

import (
	"math"

	"github.com/anthonynsimon/bild/parallel"
)

// OddKernel coerces a requested kernel size to an odd integer >= 1.
// Non-positive sizes become 1 and even sizes are bumped to the next odd one.
func OddKernel(k int) int {
	if k < 1 {
		return 1
	}
	if k%2 == 0 {
		return k + 1
	}
	return k
}

// KernelSigma derives the gaussian sigma for an odd kernel size when no sigma
// is given explicitly.
func KernelSigma(k int) float64 {
	return 0.3*((float64(k)-1)*0.5-1) + 0.8
}

// gaussianKernel1D builds a normalized 1D gaussian of size k (k odd).
func gaussianKernel1D(k int) []float64 {
	if k <= 1 {
		return []float64{1.0}
	}
	sigma := KernelSigma(k)
	radius := k / 2
	kern := make([]float64, k)
	sum := 0.0
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-0.5 * (float64(i) * float64(i)) / (sigma * sigma))
		kern[i+radius] = v
		sum += v
	}
	for i := range kern {
		kern[i] /= sum
	}
	return kern
}

// GaussianBlur smooths src with a separable gaussian of the given kernel
// size. The size goes through OddKernel first; a size of 1 returns a copy.
// Borders replicate the edge pixel.
func GaussianBlur(src Buffer, kernelSize int) Buffer {
	k := OddKernel(kernelSize)
	if k == 1 || src.Empty() {
		return src.Clone()
	}
	kern := gaussianKernel1D(k)
	radius := k / 2
	w, h, ch := src.Width, src.Height, src.Channels
	stride := src.Stride()

	// horizontal pass into float rows so the vertical pass does not round twice
	tmp := make([]float64, len(src.Pix))
	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			row := y * stride
			for x := 0; x < w; x++ {
				for c := 0; c < ch; c++ {
					acc := 0.0
					for i := -radius; i <= radius; i++ {
						ix := clampInt(x+i, 0, w-1)
						acc += float64(src.Pix[row+ix*ch+c]) * kern[i+radius]
					}
					tmp[row+x*ch+c] = acc
				}
			}
		}
	})

	// vertical pass
	out := NewBuffer(w, h, ch)
	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				for c := 0; c < ch; c++ {
					acc := 0.0
					for i := -radius; i <= radius; i++ {
						iy := clampInt(y+i, 0, h-1)
						acc += tmp[iy*stride+x*ch+c] * kern[i+radius]
					}
					out.Pix[y*stride+x*ch+c] = saturate(acc)
				}
			}
		}
	})
	return out
}
