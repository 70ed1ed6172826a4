package stdimg

import (
	"image"
	"image/color"
	"math"
	"testing"
)

// makeGradient builds a w x h RGB buffer whose pixels are all distinct enough
// to catch orientation mistakes.
func makeGradient(w, h int) Buffer {
	b := NewBuffer(w, h, 3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			b.Set(x, y, 0, uint8(x*40))
			b.Set(x, y, 1, uint8(y*40))
			b.Set(x, y, 2, uint8((x+y)*10))
		}
	}
	return b
}

func TestOddKernel(t *testing.T) {
	cases := []struct{ in, want int }{
		{-3, 1}, {0, 1}, {1, 1}, {2, 3}, {4, 5}, {5, 5}, {8, 9},
	}
	for _, c := range cases {
		if got := OddKernel(c.in); got != c.want {
			t.Errorf("OddKernel(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestGaussianKernelIsNormalized(t *testing.T) {
	for _, k := range []int{3, 5, 9, 15} {
		kern := gaussianKernel1D(k)
		if len(kern) != k {
			t.Fatalf("kernel %d has %d taps", k, len(kern))
		}
		sum := 0.0
		for _, v := range kern {
			sum += v
		}
		if sum < 0.999999 || sum > 1.000001 {
			t.Errorf("kernel %d sums to %f", k, sum)
		}
		if kern[0] != kern[k-1] {
			t.Errorf("kernel %d is not symmetric", k)
		}
	}
}

func TestGaussianBlurEvenKernelMatchesNextOdd(t *testing.T) {
	src := makeGradient(9, 7)
	if !GaussianBlur(src, 4).Equal(GaussianBlur(src, 5)) {
		t.Fatalf("blur(4) should equal blur(5)")
	}
	if !GaussianBlur(src, 0).Equal(src) {
		t.Fatalf("blur(0) should be an identity copy")
	}
}

func TestGaussianBlurKeepsUniformImage(t *testing.T) {
	src := Fill(6, 6, 90, 140, 200)
	out := GaussianBlur(src, 7)
	if !out.Equal(src) {
		t.Fatalf("uniform image changed under blur")
	}
	out.Pix[0] = 0
	if src.Pix[0] != 90 {
		t.Fatalf("blur output aliases its input")
	}
}

func TestGrayscaleChannelsEqual(t *testing.T) {
	out := Grayscale(Fill(2, 2, 255, 0, 0))
	if out.Channels != 3 {
		t.Fatalf("grayscale channels = %d, want 3", out.Channels)
	}
	for i := 0; i < len(out.Pix); i += 3 {
		if out.Pix[i] != out.Pix[i+1] || out.Pix[i] != out.Pix[i+2] {
			t.Fatalf("pixel %d channels differ: %v", i/3, out.Pix[i:i+3])
		}
		if out.Pix[i] != 76 {
			t.Fatalf("luma of pure red = %d, want 76", out.Pix[i])
		}
	}
}

func TestBrightnessSaturates(t *testing.T) {
	cases := []struct {
		name  string
		value uint8
		delta int
		want  uint8
	}{
		{"up", 100, 20, 120},
		{"down", 100, -30, 70},
		{"clip high", 250, 10, 255},
		{"clip low", 5, -10, 0},
		{"extreme", 128, 1000, 255},
		{"max int", 100, math.MaxInt, 255},
		{"min int", 100, math.MinInt, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out := Brightness(Fill(1, 1, c.value, c.value, c.value), c.delta)
			if out.Pix[0] != c.want {
				t.Fatalf("got %d, want %d", out.Pix[0], c.want)
			}
		})
	}
}

func TestContrastClampsFactor(t *testing.T) {
	cases := []struct {
		name   string
		value  uint8
		factor float64
		want   uint8
	}{
		{"double", 100, 2.0, 200},
		{"saturate", 200, 2.0, 255},
		{"factor above max", 50, 10, 150},
		{"factor below min", 100, 0, 10},
		{"identity", 77, 1.0, 77},
		{"nan uses min", 100, math.NaN(), 10},
		{"inf uses max", 50, math.Inf(1), 150},
		{"negative inf uses min", 100, math.Inf(-1), 10},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out := Contrast(Fill(1, 1, c.value, c.value, c.value), c.factor)
			if out.Pix[0] != c.want {
				t.Fatalf("got %d, want %d", out.Pix[0], c.want)
			}
		})
	}
}

func TestCannyVerticalLine(t *testing.T) {
	src := Fill(10, 10, 255, 255, 255)
	for y := 0; y < 10; y++ {
		src.Set(5, y, 0, 0)
		src.Set(5, y, 1, 0)
		src.Set(5, y, 2, 0)
	}
	out := Canny(src, DefaultEdgeLow, DefaultEdgeHigh)
	if out.Width != 10 || out.Height != 10 || out.Channels != 3 {
		t.Fatalf("unexpected geometry %dx%dx%d", out.Width, out.Height, out.Channels)
	}
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			want := uint8(0)
			if x == 4 || x == 6 {
				want = 255
			}
			if got := out.At(x, y, 0); got != want {
				t.Fatalf("edge at (%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestCannyUniformHasNoEdges(t *testing.T) {
	out := Canny(Fill(8, 8, 30, 60, 90), DefaultEdgeLow, DefaultEdgeHigh)
	for i, v := range out.Pix {
		if v != 0 {
			t.Fatalf("unexpected edge byte %d = %d", i, v)
		}
	}
}

func TestRotateCW(t *testing.T) {
	src := makeGradient(3, 2)
	r90 := RotateCW(src, 90)
	if r90.Width != 2 || r90.Height != 3 {
		t.Fatalf("rotate 90 size = %dx%d, want 2x3", r90.Width, r90.Height)
	}
	// clockwise: src(x, y) lands on dst(h-1-y, x)
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			for c := 0; c < 3; c++ {
				if got, want := r90.At(src.Height-1-y, x, c), src.At(x, y, c); got != want {
					t.Fatalf("rotate 90: src(%d,%d)[%d]=%d landed as %d", x, y, c, want, got)
				}
			}
		}
	}
	if !RotateCW(r90, 90).Equal(RotateCW(src, 180)) {
		t.Fatalf("two quarter turns should equal a half turn")
	}
	if !RotateCW(RotateCW(src, 270), 90).Equal(src) {
		t.Fatalf("270 then 90 should be identity")
	}
	if !RotateCW(src, -90).Equal(RotateCW(src, 270)) {
		t.Fatalf("-90 should normalize to 270")
	}
	if !RotateCW(src, 45).Equal(src) {
		t.Fatalf("non quarter turn should return a copy")
	}
}

func TestFlip(t *testing.T) {
	src := makeGradient(4, 3)
	h := Flip(src, Horizontal)
	v := Flip(src, Vertical)
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			if h.At(src.Width-1-x, y, 0) != src.At(x, y, 0) {
				t.Fatalf("horizontal flip mismatch at (%d,%d)", x, y)
			}
			if v.At(x, src.Height-1-y, 1) != src.At(x, y, 1) {
				t.Fatalf("vertical flip mismatch at (%d,%d)", x, y)
			}
		}
	}
	if !Flip(h, Horizontal).Equal(src) {
		t.Fatalf("double horizontal flip should be identity")
	}
	if !Flip(src, Axis(0)).Equal(src) {
		t.Fatalf("invalid axis should return a copy")
	}
}

func TestParseAxis(t *testing.T) {
	cases := map[string]Axis{
		"h": Horizontal, "H": Horizontal, "horizontal": Horizontal,
		"v": Vertical, " vertical ": Vertical,
		"": 0, "x": 0, "diagonal": 0,
	}
	for in, want := range cases {
		if got := ParseAxis(in); got != want {
			t.Errorf("ParseAxis(%q) = %v, want %v", in, got, want)
		}
	}
	if Axis(0).Valid() || !Horizontal.Valid() || !Vertical.Valid() {
		t.Fatalf("Valid reports the wrong axes")
	}
}

func TestScaledSize(t *testing.T) {
	cases := []struct {
		w, h   int
		scale  float64
		ww, wh int
	}{
		{100, 100, 0.5, 50, 50},
		{100, 100, 0.33, 33, 33},
		{100, 80, 2, 200, 160},
		{100, 100, 0, 10, 10},
		{10, 10, 50, 50, 50},
		{3, 3, 0.1, 1, 1},
		{100, 100, math.NaN(), 10, 10},
		{10, 10, math.Inf(1), 50, 50},
		{100, 100, math.Inf(-1), 10, 10},
	}
	for _, c := range cases {
		w, h := ScaledSize(c.w, c.h, c.scale)
		if w != c.ww || h != c.wh {
			t.Errorf("ScaledSize(%d,%d,%v) = %dx%d, want %dx%d", c.w, c.h, c.scale, w, h, c.ww, c.wh)
		}
	}
}

func TestResize(t *testing.T) {
	src := Fill(100, 100, 10, 20, 30)
	half := Resize(src, 0.5)
	if half.Width != 50 || half.Height != 50 {
		t.Fatalf("resize 0.5 = %dx%d", half.Width, half.Height)
	}
	if half.At(10, 10, 2) != 30 {
		t.Fatalf("box filter changed a uniform colour: %d", half.At(10, 10, 2))
	}
	big := Resize(Fill(4, 4, 1, 2, 3), 3)
	if big.Width != 12 || big.Height != 12 {
		t.Fatalf("resize 3 = %dx%d", big.Width, big.Height)
	}
	nan := Resize(src, math.NaN())
	if nan.Width != 10 || nan.Height != 10 {
		t.Fatalf("resize NaN = %dx%d, want the 0.1 floor", nan.Width, nan.Height)
	}
	same := Resize(src, 1)
	if !same.Equal(src) {
		t.Fatalf("resize 1 should be an identity copy")
	}
}

func TestFromImageAndBack(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	img.Set(2, 1, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	b := FromImage(img)
	if b.Width != 3 || b.Height != 2 || b.Channels != 3 {
		t.Fatalf("unexpected geometry %dx%dx%d", b.Width, b.Height, b.Channels)
	}
	if b.At(2, 1, 0) != 200 || b.At(2, 1, 1) != 100 || b.At(2, 1, 2) != 50 {
		t.Fatalf("pixel (2,1) = %v", b.Pix[b.Offset(2, 1):b.Offset(2, 1)+3])
	}
	if !FromImage(b.ToNRGBA()).Equal(b) {
		t.Fatalf("NRGBA round trip lost data")
	}

	gray := image.NewGray(image.Rect(0, 0, 2, 2))
	gray.Pix[3] = 99
	gb := FromImage(gray)
	if gb.At(1, 1, 0) != 99 || gb.At(1, 1, 2) != 99 {
		t.Fatalf("gray conversion lost value")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	a := Fill(2, 2, 5, 5, 5)
	b := a.Clone()
	b.Pix[0] = 9
	if a.Pix[0] != 5 {
		t.Fatalf("clone shares memory")
	}
	if a.Equal(b) {
		t.Fatalf("Equal ignored a pixel change")
	}
}

func TestSummarize(t *testing.T) {
	st := Summarize(Fill(2, 2, 255, 0, 0))
	if st.MeanHex != "#ff0000" {
		t.Fatalf("mean hex = %s", st.MeanHex)
	}
	if st.Bytes != 12 || st.Channels != 3 {
		t.Fatalf("bytes=%d channels=%d", st.Bytes, st.Channels)
	}
	if st.String() == "" {
		t.Fatalf("empty stats string")
	}
}

func TestCommandsRegistry(t *testing.T) {
	want := []string{"grayscale", "blur", "edges", "brightness", "contrast", "rotate", "flip", "resize"}
	for _, name := range want {
		if _, ok := LookupCommand(name); !ok {
			t.Errorf("command %q not registered", name)
		}
	}
	if len(Commands) != len(want) {
		t.Errorf("registry has %d commands, want %d", len(Commands), len(want))
	}
}
