package store

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/Fepozopo/snapedit/pkg/stdimg"
)

// DefaultJPEGQuality is used when no quality is configured.
const DefaultJPEGQuality = 92

// SniffFormat guesses the container format from the leading bytes of a file.
// It returns "" when the signature is not recognized.
func SniffFormat(b []byte) string {
	switch {
	case len(b) >= 3 && bytes.Equal(b[:3], []byte{0xFF, 0xD8, 0xFF}):
		return "jpeg"
	case len(b) >= 8 && bytes.Equal(b[:8], []byte("\x89PNG\r\n\x1a\n")):
		return "png"
	case len(b) >= 6 && (bytes.Equal(b[:6], []byte("GIF87a")) || bytes.Equal(b[:6], []byte("GIF89a"))):
		return "gif"
	case len(b) >= 2 && bytes.Equal(b[:2], []byte("BM")):
		return "bmp"
	case len(b) >= 4 && (bytes.Equal(b[:4], []byte("II*\x00")) || bytes.Equal(b[:4], []byte("MM\x00*"))):
		return "tiff"
	case len(b) >= 12 && bytes.Equal(b[:4], []byte("RIFF")) && bytes.Equal(b[8:12], []byte("WEBP")):
		return "webp"
	default:
		return ""
	}
}

// decodeFile reads path and decodes it into an RGB buffer, applying any EXIF
// orientation found in the file.
func decodeFile(path string) (stdimg.Buffer, string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return stdimg.Buffer{}, "", &DecodeError{Path: path, Err: err}
	}
	format := SniffFormat(b)
	if format == "" {
		return stdimg.Buffer{}, "", &DecodeError{Path: path, Err: errors.New("unsupported or unrecognized format")}
	}
	img, err := imaging.Decode(bytes.NewReader(b), imaging.AutoOrientation(true))
	if err != nil {
		return stdimg.Buffer{}, "", &DecodeError{Path: path, Err: fmt.Errorf("%s: %w", format, err)}
	}
	buf := stdimg.FromImage(img)
	if buf.Empty() {
		return stdimg.Buffer{}, "", &DecodeError{Path: path, Err: errors.New("image has no pixels")}
	}
	return buf, format, nil
}

// EncodableExt reports whether the extension of path maps to a supported encoder.
func EncodableExt(path string) bool {
	_, err := imaging.FormatFromFilename(path)
	return err == nil
}

// encodeFile writes buf to path in the format implied by its extension.
// Encoding happens in memory first so a failed encode never leaves a
// truncated file behind.
func encodeFile(path string, buf stdimg.Buffer, quality int) error {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return &EncodeError{Path: path, Err: fmt.Errorf("unsupported extension %q", strings.ToLower(filepath.Ext(path)))}
	}
	if quality < 1 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	var out bytes.Buffer
	if err := imaging.Encode(&out, buf.ToNRGBA(), format, imaging.JPEGQuality(quality)); err != nil {
		return &EncodeError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, out.Bytes(), 0o644); err != nil {
		return &EncodeError{Path: path, Err: err}
	}
	return nil
}
