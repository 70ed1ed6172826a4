package cli

import (
	"fmt"
	"strconv"

	"github.com/Fepozopo/snapedit/pkg/editor"
	"github.com/Fepozopo/snapedit/pkg/stdimg"
)

// BuildOperation turns a command name and its normalized arguments (see
// NormalizeArgsFromStd) into an editor operation.
func BuildOperation(name string, args []string) (editor.Operation, error) {
	arg := func(i int) string {
		if i < len(args) {
			return args[i]
		}
		return ""
	}
	switch name {
	case "grayscale":
		return editor.Grayscale(), nil

	case "blur":
		k, err := strconv.Atoi(arg(0))
		if err != nil {
			return editor.Operation{}, fmt.Errorf("invalid kernel: %w", err)
		}
		return editor.Blur(k), nil

	case "edges":
		low, err := strconv.ParseFloat(arg(0), 64)
		if err != nil {
			return editor.Operation{}, fmt.Errorf("invalid low threshold: %w", err)
		}
		high, err := strconv.ParseFloat(arg(1), 64)
		if err != nil {
			return editor.Operation{}, fmt.Errorf("invalid high threshold: %w", err)
		}
		return editor.Edges(low, high), nil

	case "brightness":
		d, err := strconv.Atoi(arg(0))
		if err != nil {
			return editor.Operation{}, fmt.Errorf("invalid delta: %w", err)
		}
		return editor.Brightness(d), nil

	case "contrast":
		f, err := strconv.ParseFloat(arg(0), 64)
		if err != nil {
			return editor.Operation{}, fmt.Errorf("invalid factor: %w", err)
		}
		return editor.Contrast(f), nil

	case "rotate":
		deg, err := strconv.Atoi(arg(0))
		if err != nil {
			return editor.Operation{}, fmt.Errorf("invalid degrees: %w", err)
		}
		return editor.Rotate(deg), nil

	case "flip":
		// unknown axes are handed to the store, which decides between an
		// error and a no-op copy
		return editor.Flip(stdimg.ParseAxis(arg(0))), nil

	case "resize":
		s, err := strconv.ParseFloat(arg(0), 64)
		if err != nil {
			return editor.Operation{}, fmt.Errorf("invalid scale: %w", err)
		}
		return editor.Resize(s), nil

	default:
		return editor.Operation{}, fmt.Errorf("unknown command: %s", name)
	}
}
