package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Fepozopo/snapedit/pkg/stdimg"
)

// ParamType is a small enum for parameter types used in metadata.
type ParamType string

const (
	ParamTypeInt   ParamType = "int"
	ParamTypeFloat ParamType = "float"
	ParamTypeEnum  ParamType = "enum"
)

// ValidationRule is a machine-friendly representation of the constraints
// that a UI or client can use to validate input before invoking a command.
type ValidationRule struct {
	Type        ParamType `json:"type"`
	Required    bool      `json:"required"`
	EnumOptions []string  `json:"enumOptions,omitempty"` // valid when Type == ParamTypeEnum
	Default     string    `json:"default,omitempty"`
	Hint        string    `json:"hint,omitempty"`
}

// GenerateTooltipFromStdSpec produces a tooltip string from a stdimg.CommandSpec.
func GenerateTooltipFromStdSpec(c stdimg.CommandSpec) string {
	var sb strings.Builder
	if c.Description != "" {
		sb.WriteString(c.Description)
	} else {
		sb.WriteString("No description")
	}
	if len(c.Args) == 0 {
		sb.WriteString(" (no parameters)")
		return sb.String()
	}
	sb.WriteString(" Parameters:\n")
	for _, a := range c.Args {
		req := "optional"
		if a.Required {
			req = "required"
		}
		sb.WriteString(fmt.Sprintf("- %s (%s, %s)", a.Name, a.Type, req))
		if a.Description != "" {
			sb.WriteString(": " + a.Description)
		}
		if a.Default != "" {
			sb.WriteString(" (default: " + a.Default + ")")
		}
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String())
}

// GenerateValidationRulesFromStdSpec creates ValidationRule entries from a stdimg.CommandSpec.
// Enum options are read from the "a|b|c" form of the argument description.
func GenerateValidationRulesFromStdSpec(c stdimg.CommandSpec) map[string]ValidationRule {
	rules := make(map[string]ValidationRule, len(c.Args))
	for _, a := range c.Args {
		r := ValidationRule{Required: a.Required, Default: a.Default, Hint: a.Description}
		switch strings.ToLower(a.Type) {
		case "int":
			r.Type = ParamTypeInt
		case "float":
			r.Type = ParamTypeFloat
		case "enum":
			r.Type = ParamTypeEnum
			r.EnumOptions = strings.Split(a.Description, "|")
		default:
			r.Type = ParamTypeFloat
		}
		rules[a.Name] = r
	}
	return rules
}

// StdMetaStore indexes stdimg.CommandSpec entries by name.
type StdMetaStore struct {
	Commands []stdimg.CommandSpec
	byName   map[string]stdimg.CommandSpec
}

// NewMetaStoreFromStdimg creates a StdMetaStore from stdimg.CommandSpec list.
func NewMetaStoreFromStdimg(cmds []stdimg.CommandSpec) *StdMetaStore {
	m := &StdMetaStore{Commands: cmds, byName: make(map[string]stdimg.CommandSpec, len(cmds))}
	for _, c := range cmds {
		m.byName[c.Name] = c
	}
	return m
}

// Lookup returns the spec for name.
func (m *StdMetaStore) Lookup(name string) (stdimg.CommandSpec, bool) {
	c, ok := m.byName[name]
	return c, ok
}

// GetCommandHelp returns both tooltip and validation rules for a command.
func (m *StdMetaStore) GetCommandHelp(name string) (string, map[string]ValidationRule, error) {
	c, ok := m.byName[name]
	if !ok {
		return "", nil, fmt.Errorf("unknown command: %s", name)
	}
	return GenerateTooltipFromStdSpec(c), GenerateValidationRulesFromStdSpec(c), nil
}

// Resolve maps user input to a command name: exact match, 1-based index into
// the list, or an unambiguous case-insensitive prefix.
func (m *StdMetaStore) Resolve(selection string) (string, error) {
	selection = strings.TrimSpace(selection)
	if selection == "" {
		return "", fmt.Errorf("empty selection")
	}
	if idx, err := strconv.Atoi(selection); err == nil {
		if idx < 1 || idx > len(m.Commands) {
			return "", fmt.Errorf("invalid selection %d", idx)
		}
		return m.Commands[idx-1].Name, nil
	}
	lower := strings.ToLower(selection)
	var matches []string
	for _, c := range m.Commands {
		name := strings.ToLower(c.Name)
		if name == lower {
			return c.Name, nil
		}
		if strings.HasPrefix(name, lower) {
			matches = append(matches, c.Name)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("unknown command: %s", selection)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ambiguous selection %q, candidates: %s", selection, strings.Join(matches, ", "))
	}
}

// NormalizeArgsFromStd validates raw arguments against the command metadata
// and returns them in canonical textual form. Empty optional arguments take
// their declared default; surplus arguments are rejected.
func NormalizeArgsFromStd(store *StdMetaStore, cmdName string, args []string) ([]string, error) {
	if store == nil {
		return nil, fmt.Errorf("metadata store is nil")
	}
	c, ok := store.byName[cmdName]
	if !ok {
		return nil, fmt.Errorf("unknown command: %s", cmdName)
	}
	if len(args) > len(c.Args) {
		return nil, fmt.Errorf("%s takes at most %d arguments, got %d", cmdName, len(c.Args), len(args))
	}
	rules := GenerateValidationRulesFromStdSpec(c)
	out := make([]string, len(c.Args))
	for i, a := range c.Args {
		var raw string
		if i < len(args) {
			raw = strings.TrimSpace(args[i])
		}
		if raw == "" {
			if a.Required {
				return nil, fmt.Errorf("missing required parameter: %s", a.Name)
			}
			raw = a.Default
		}
		vr := rules[a.Name]
		switch vr.Type {
		case ParamTypeInt:
			v, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("parameter %s: expected integer, got %q", a.Name, raw)
			}
			out[i] = strconv.FormatInt(v, 10)
		case ParamTypeFloat:
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("parameter %s: expected float, got %q", a.Name, raw)
			}
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return nil, fmt.Errorf("parameter %s: expected a finite number, got %q", a.Name, raw)
			}
			out[i] = strconv.FormatFloat(f, 'f', -1, 64)
		case ParamTypeEnum:
			// enum values pass through untouched; range checks belong to the store
			out[i] = strings.ToLower(raw)
		}
	}
	return out, nil
}
