package stdimg

import (
	"fmt"

	"github.com/anthonynsimon/bild/parallel"
	"github.com/docker/go-units"
	"github.com/lucasb-eyer/go-colorful"
)

// Contrast factors outside this range produce unusable images.
const (
	MinContrast = 0.1
	MaxContrast = 3.0
)

// Luminance returns a single-channel buffer holding the BT.601 luma of src.
func Luminance(src Buffer) Buffer {
	if src.Channels == 1 {
		return src.Clone()
	}
	out := NewBuffer(src.Width, src.Height, 1)
	parallel.Line(src.Height, func(start, end int) {
		for y := start; y < end; y++ {
			si := y * src.Stride()
			di := y * out.Stride()
			for x := 0; x < src.Width; x++ {
				out.Pix[di] = luma(src.Pix[si+0], src.Pix[si+1], src.Pix[si+2])
				si += 3
				di++
			}
		}
	})
	return out
}

// Grayscale converts src to luminance and expands it back to 3 channels.
func Grayscale(src Buffer) Buffer {
	return Luminance(src).ToRGB()
}

// Brightness adds delta to every channel, saturating at [0,255].
func Brightness(src Buffer, delta int) Buffer {
	delta = clampInt(delta, -255, 255)
	return mapChannels(src, func(v uint8) uint8 {
		return saturate(float64(int(v) + delta))
	})
}

// Contrast scales every channel by factor around zero. The factor is clamped
// to [MinContrast, MaxContrast] and results saturate at [0,255].
func Contrast(src Buffer, factor float64) Buffer {
	factor = clampFloat(factor, MinContrast, MaxContrast)
	return mapChannels(src, func(v uint8) uint8 {
		return saturate(float64(v) * factor)
	})
}

// Stats summarizes a buffer for status output.
type Stats struct {
	Width    int
	Height   int
	Channels int
	Bytes    int
	MeanHex  string
	Hue      float64
	Sat      float64
	Light    float64
}

// Summarize computes the mean colour of src along with its geometry.
func Summarize(src Buffer) Stats {
	st := Stats{Width: src.Width, Height: src.Height, Channels: src.Channels, Bytes: src.Size()}
	if src.Empty() {
		return st
	}
	rgb := src
	if src.Channels == 1 {
		rgb = src.ToRGB()
	}
	var sr, sg, sb float64
	for i := 0; i < len(rgb.Pix); i += 3 {
		sr += float64(rgb.Pix[i+0])
		sg += float64(rgb.Pix[i+1])
		sb += float64(rgb.Pix[i+2])
	}
	n := float64(rgb.Width * rgb.Height * 255)
	mean := colorful.Color{R: sr / n, G: sg / n, B: sb / n}
	st.MeanHex = mean.Hex()
	st.Hue, st.Sat, st.Light = mean.Hsl()
	return st
}

func (s Stats) String() string {
	return fmt.Sprintf("%dx%d, %d channel(s), %s in memory\nmean colour %s (h %.0f, s %.2f, l %.2f)",
		s.Width, s.Height, s.Channels, units.HumanSize(float64(s.Bytes)), s.MeanHex, s.Hue, s.Sat, s.Light)
}
