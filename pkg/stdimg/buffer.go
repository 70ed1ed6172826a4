package stdimg

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/parallel"
)

// Buffer is an 8-bit raster with 1 (gray) or 3 (RGB) interleaved channels.
// Buffers are treated as immutable once handed out: every transform returns a
// fresh Buffer and callers that store one keep their own Clone.
type Buffer struct {
	Width    int
	Height   int
	Channels int
	Pix      []uint8
}

// NewBuffer allocates a zeroed buffer. Channels other than 1 are treated as 3.
func NewBuffer(w, h, channels int) Buffer {
	if channels != 1 {
		channels = 3
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Buffer{Width: w, Height: h, Channels: channels, Pix: make([]uint8, w*h*channels)}
}

// Empty reports whether the buffer holds no pixels.
func (b Buffer) Empty() bool {
	return b.Width == 0 || b.Height == 0 || len(b.Pix) == 0
}

// Clone returns a deep copy that shares no memory with b.
func (b Buffer) Clone() Buffer {
	if b.Pix == nil {
		return Buffer{Width: b.Width, Height: b.Height, Channels: b.Channels}
	}
	pix := make([]uint8, len(b.Pix))
	copy(pix, b.Pix)
	return Buffer{Width: b.Width, Height: b.Height, Channels: b.Channels, Pix: pix}
}

// Equal compares geometry and pixel data.
func (b Buffer) Equal(o Buffer) bool {
	if b.Width != o.Width || b.Height != o.Height || b.Channels != o.Channels || len(b.Pix) != len(o.Pix) {
		return false
	}
	for i := range b.Pix {
		if b.Pix[i] != o.Pix[i] {
			return false
		}
	}
	return true
}

// Stride is the number of bytes per row.
func (b Buffer) Stride() int { return b.Width * b.Channels }

// Size is the number of bytes held by the pixel slice.
func (b Buffer) Size() int { return len(b.Pix) }

// Offset returns the index of channel 0 of pixel (x, y).
func (b Buffer) Offset(x, y int) int { return y*b.Stride() + x*b.Channels }

// At returns channel c of pixel (x, y). Gray buffers ignore c.
func (b Buffer) At(x, y, c int) uint8 {
	if b.Channels == 1 {
		c = 0
	}
	return b.Pix[b.Offset(x, y)+c]
}

// Set writes channel c of pixel (x, y).
func (b Buffer) Set(x, y, c int, v uint8) {
	if b.Channels == 1 {
		c = 0
	}
	b.Pix[b.Offset(x, y)+c] = v
}

// Fill returns a 3-channel buffer of the given colour.
func Fill(w, h int, r, g, bl uint8) Buffer {
	out := NewBuffer(w, h, 3)
	for i := 0; i < len(out.Pix); i += 3 {
		out.Pix[i+0] = r
		out.Pix[i+1] = g
		out.Pix[i+2] = bl
	}
	return out
}

// ToRGB expands a gray buffer to 3 channels; RGB input is cloned.
func (b Buffer) ToRGB() Buffer {
	if b.Channels == 3 {
		return b.Clone()
	}
	out := NewBuffer(b.Width, b.Height, 3)
	for i, v := range b.Pix {
		j := i * 3
		out.Pix[j+0] = v
		out.Pix[j+1] = v
		out.Pix[j+2] = v
	}
	return out
}

// FromImage converts any decoded image into a 3-channel RGB buffer.
// Alpha is discarded the same way a colour decoder without alpha support would.
func FromImage(src image.Image) Buffer {
	if src == nil {
		return Buffer{}
	}
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := NewBuffer(w, h, 3)
	if n, ok := src.(*image.NRGBA); ok {
		parallel.Line(h, func(start, end int) {
			for y := start; y < end; y++ {
				si := n.PixOffset(bounds.Min.X, bounds.Min.Y+y)
				di := y * out.Stride()
				for x := 0; x < w; x++ {
					out.Pix[di+0] = n.Pix[si+0]
					out.Pix[di+1] = n.Pix[si+1]
					out.Pix[di+2] = n.Pix[si+2]
					si += 4
					di += 3
				}
			}
		})
		return out
	}
	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			di := y * out.Stride()
			for x := 0; x < w; x++ {
				c := color.NRGBAModel.Convert(src.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
				out.Pix[di+0] = c.R
				out.Pix[di+1] = c.G
				out.Pix[di+2] = c.B
				di += 3
			}
		}
	})
	return out
}

// ToNRGBA renders the buffer as an opaque *image.NRGBA for encoders and the
// imaging helpers.
func (b Buffer) ToNRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	if b.Empty() {
		return out
	}
	parallel.Line(b.Height, func(start, end int) {
		for y := start; y < end; y++ {
			si := y * b.Stride()
			di := out.PixOffset(0, y)
			for x := 0; x < b.Width; x++ {
				if b.Channels == 1 {
					v := b.Pix[si]
					out.Pix[di+0], out.Pix[di+1], out.Pix[di+2] = v, v, v
				} else {
					out.Pix[di+0] = b.Pix[si+0]
					out.Pix[di+1] = b.Pix[si+1]
					out.Pix[di+2] = b.Pix[si+2]
				}
				out.Pix[di+3] = 255
				si += b.Channels
				di += 4
			}
		}
	})
	return out
}
