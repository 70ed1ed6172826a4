// Package stdimg: authoritative registry of editor commands.
//
// Keep this list in sync with the operation table in pkg/cli so help text,
// argument validation and dispatch read a single source of truth.

package stdimg

// ArgSpec describes a single argument for a command. Fields are textual
// and intended for help/validation UI rather than machine-enforced typing.
type ArgSpec struct {
	Name        string // human name
	Type        string // "int", "float", "enum"
	Required    bool
	Default     string // textual default, applied when the argument is left empty
	Description string
}

// CommandSpec defines a single command and its expected arguments.
type CommandSpec struct {
	Name        string
	Args        []ArgSpec
	Usage       string // short usage string
	Description string // brief description
}

// Commands is the list of edits the editor can apply to the current image.
var Commands = []CommandSpec{
	{
		Name:        "grayscale",
		Args:        []ArgSpec{},
		Usage:       "grayscale",
		Description: "Convert to BT.601 luminance (kept as 3 channels).",
	},
	{
		Name:        "blur",
		Args:        []ArgSpec{{"kernel", "int", false, "5", "gaussian kernel size; even sizes are bumped to the next odd"}},
		Usage:       "blur [kernel]",
		Description: "Separable Gaussian blur.",
	},
	{
		Name: "edges",
		Args: []ArgSpec{
			{"low", "float", false, "50", "lower hysteresis threshold"},
			{"high", "float", false, "150", "upper hysteresis threshold (must be greater than low)"},
		},
		Usage:       "edges [low] [high]",
		Description: "Canny edge detection; edges white on black.",
	},
	{
		Name:        "brightness",
		Args:        []ArgSpec{{"delta", "int", true, "", "value added to every channel (-255..255)"}},
		Usage:       "brightness <delta>",
		Description: "Shift brightness with saturation at 0 and 255.",
	},
	{
		Name:        "contrast",
		Args:        []ArgSpec{{"factor", "float", true, "", "channel multiplier, clamped to 0.1..3.0"}},
		Usage:       "contrast <factor>",
		Description: "Scale every channel by a factor.",
	},
	{
		Name:        "rotate",
		Args:        []ArgSpec{{"degrees", "enum", false, "90", "90|180|270"}},
		Usage:       "rotate [degrees]",
		Description: "Rotate clockwise by a quarter turn multiple.",
	},
	{
		Name:        "flip",
		Args:        []ArgSpec{{"axis", "enum", false, "h", "h|v"}},
		Usage:       "flip [axis]",
		Description: "Mirror horizontally (h) or vertically (v).",
	},
	{
		Name:        "resize",
		Args:        []ArgSpec{{"scale", "float", true, "", "scale factor, clamped to 0.1..5.0"}},
		Usage:       "resize <scale>",
		Description: "Scale both dimensions; area averaging when shrinking.",
	},
}

// LookupCommand returns the spec registered under name.
func LookupCommand(name string) (CommandSpec, bool) {
	for _, c := range Commands {
		if c.Name == name {
			return c, true
		}
	}
	return CommandSpec{}, false
}
