package stdimg

import "math"

// clampInt clamps v to [lo,hi]
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampFloat clamps v to [lo,hi]. NaN maps to lo.
func clampFloat(v, lo, hi float64) float64 {
	if v < lo || math.IsNaN(v) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// saturate rounds v to the nearest integer and clamps it to the 8-bit range.
func saturate(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// luma is the BT.601 weighted sum used for every gray conversion.
func luma(r, g, b uint8) uint8 {
	return saturate(0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b))
}

// mapChannels applies fn to every byte of src and returns a new 3-channel buffer.
func mapChannels(src Buffer, fn func(v uint8) uint8) Buffer {
	rgb := src.ToRGB()
	var lut [256]uint8
	for i := range lut {
		lut[i] = fn(uint8(i))
	}
	for i, v := range rgb.Pix {
		rgb.Pix[i] = lut[v]
	}
	return rgb
}
