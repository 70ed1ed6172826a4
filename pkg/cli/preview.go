package cli

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/draw"

	"github.com/Fepozopo/snapedit/pkg/stdimg"
)

// Terminal preview for kitty, iTerm2-style inline images and chafa.
//
// Detection order when no backend is forced: inline-capable terminals
// (iTerm2, WezTerm, VSCode, ...), kitty-compatible terminals, then chafa on
// PATH. The image is downscaled to the preview cell area before it is encoded
// so large documents do not flood the terminal.

var errNoPreviewBackend = errors.New("no supported terminal preview backend")

// Character cell assumptions and preview clamps.
const (
	charW   = 8
	charH   = 16
	minCols = 6
	minRows = 3
	maxCols = 80
	maxRows = 40
)

// PreviewSize conveys a target placement for terminal preview backends.
type PreviewSize struct {
	Cols        int // terminal character columns
	Rows        int // terminal character rows
	PixelWidth  int // thumbnail width in pixels
	PixelHeight int // thumbnail height in pixels
}

// computePreviewSize maps pixel dimensions onto a clamped character cell area
// preserving the aspect ratio and never scaling up.
func computePreviewSize(w, h int) PreviewSize {
	if w <= 0 || h <= 0 {
		return PreviewSize{Cols: minCols, Rows: minRows, PixelWidth: minCols * charW, PixelHeight: minRows * charH}
	}
	scaleW := float64(maxCols*charW) / float64(w)
	scaleH := float64(maxRows*charH) / float64(h)
	scale := math.Min(1.0, math.Min(scaleW, scaleH))

	targetW := clamp(int(math.Round(float64(w)*scale)), 1, w)
	targetH := clamp(int(math.Round(float64(h)*scale)), 1, h)

	cols := clamp(int(math.Round(float64(targetW)/charW)), minCols, maxCols)
	rows := clamp(int(math.Round(float64(targetH)/charH)), minRows, maxRows)

	return PreviewSize{Cols: cols, Rows: rows, PixelWidth: targetW, PixelHeight: targetH}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// postImageNewlines keeps the prompt below the rendered image without leaving
// a large gap.
func postImageNewlines(requestedRows int) int {
	switch {
	case requestedRows <= 0:
		return 1
	case requestedRows <= 2:
		return 1
	case requestedRows <= 6:
		return 2
	case requestedRows <= 20:
		return 3
	default:
		return 4
	}
}

func isKitty() bool {
	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	// ghostty exposes the kitty graphics protocol as well
	term := strings.ToLower(os.Getenv("TERM"))
	return strings.Contains(term, "kitty") || strings.Contains(term, "ghostty")
}

func isInlineImageCapable() bool {
	switch os.Getenv("TERM_PROGRAM") {
	case "iTerm.app", "WezTerm", "Warp", "Hyper", "vscode", "Tabby", "Bobcat":
		return true
	}
	if os.Getenv("ITERM_SESSION_ID") != "" {
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	return strings.Contains(term, "wezterm") || strings.Contains(term, "vscode")
}

func hasChafa() bool {
	_, err := exec.LookPath("chafa")
	return err == nil
}

// Previewer renders buffers in the terminal.
type Previewer struct {
	out     io.Writer
	backend string
	log     logrus.FieldLogger
}

// NewPreviewer returns a previewer writing to out. backend may force
// "kitty", "inline" or "chafa"; empty auto-detects. A nil logger discards output.
func NewPreviewer(out io.Writer, backend string, log logrus.FieldLogger) *Previewer {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Previewer{out: out, backend: strings.ToLower(backend), log: log}
}

// Thumbnail scales buf down to fit the preview cell area.
func Thumbnail(buf stdimg.Buffer) (image.Image, PreviewSize) {
	size := computePreviewSize(buf.Width, buf.Height)
	src := buf.ToNRGBA()
	if size.PixelWidth >= buf.Width && size.PixelHeight >= buf.Height {
		return src, size
	}
	dst := image.NewNRGBA(image.Rect(0, 0, size.PixelWidth, size.PixelHeight))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, size
}

// Preview encodes buf as PNG and sends it through the selected backend.
func (p *Previewer) Preview(buf stdimg.Buffer) error {
	if buf.Empty() {
		return fmt.Errorf("nil image")
	}
	thumb, size := Thumbnail(buf)
	var data bytes.Buffer
	if err := png.Encode(&data, thumb); err != nil {
		return fmt.Errorf("png encode failed: %w", err)
	}
	backend := p.backend
	if backend == "" {
		switch {
		case isInlineImageCapable():
			backend = "inline"
		case isKitty():
			backend = "kitty"
		case hasChafa():
			backend = "chafa"
		default:
			return errNoPreviewBackend
		}
	}
	p.log.WithFields(logrus.Fields{"backend": backend, "cols": size.Cols, "rows": size.Rows}).Debug("preview")
	switch backend {
	case "kitty":
		return p.sendKitty(data.Bytes(), size)
	case "inline":
		return p.sendInline(data.Bytes(), size)
	case "chafa":
		return p.sendChafa(data.Bytes(), size)
	default:
		return fmt.Errorf("%w: %s", errNoPreviewBackend, backend)
	}
}

// sendKitty transmits a PNG with the kitty graphics protocol in 4096-byte
// base64 chunks. Only the first chunk carries the control keys.
func (p *Previewer) sendKitty(data []byte, size PreviewSize) error {
	enc := base64.StdEncoding.EncodeToString(data)
	const chunkSize = 4096
	for pos := 0; pos < len(enc); pos += chunkSize {
		end := pos + chunkSize
		if end > len(enc) {
			end = len(enc)
		}
		more := "0"
		if end < len(enc) {
			more = "1"
		}
		var seq string
		if pos == 0 {
			seq = fmt.Sprintf("\x1b_Ga=T,f=100,t=d,q=2,c=%d,r=%d,m=%s;%s\x1b\\", size.Cols, size.Rows, more, enc[pos:end])
		} else {
			seq = "\x1b_Gm=" + more + ";" + enc[pos:end] + "\x1b\\"
		}
		if _, err := io.WriteString(p.out, seq); err != nil {
			return err
		}
	}
	p.newlines(size.Rows)
	return nil
}

// sendInline emits the iTerm2 OSC 1337 inline file sequence.
func (p *Previewer) sendInline(data []byte, size PreviewSize) error {
	meta := fmt.Sprintf("size=%d;width=%dpx;height=%dpx;", len(data), size.PixelWidth, size.PixelHeight)
	seq := "\x1b]1337;File=name=preview.png;inline=1;" + meta + ":" + base64.StdEncoding.EncodeToString(data) + "\a"
	if _, err := io.WriteString(p.out, seq); err != nil {
		return err
	}
	p.newlines(0)
	return nil
}

// sendChafa pipes the PNG through chafa for a block-character rendering.
func (p *Previewer) sendChafa(data []byte, size PreviewSize) error {
	if _, err := exec.LookPath("chafa"); err != nil {
		return fmt.Errorf("chafa not found in PATH: %w", err)
	}
	cmd := exec.Command("chafa", "--fill=block", "--symbols=block", "-s", fmt.Sprintf("%dx%d", size.Cols, size.Rows), "-")
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stdout = p.out
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("chafa failed: %w", err)
	}
	p.newlines(size.Rows)
	return nil
}

func (p *Previewer) newlines(rows int) {
	for i := 0; i < postImageNewlines(rows); i++ {
		fmt.Fprintln(p.out)
	}
}
