package cli

import (
	"strings"
	"testing"

	"github.com/Fepozopo/snapedit/pkg/stdimg"
)

func TestNormalizeArgsFromStd(t *testing.T) {
	m := NewMetaStoreFromStdimg(stdimg.Commands)
	cases := []struct {
		name    string
		cmd     string
		args    []string
		want    []string
		wantErr bool
	}{
		{name: "blur default", cmd: "blur", args: nil, want: []string{"5"}},
		{name: "blur explicit", cmd: "blur", args: []string{" 7 "}, want: []string{"7"}},
		{name: "blur not int", cmd: "blur", args: []string{"seven"}, wantErr: true},
		{name: "edges defaults", cmd: "edges", args: []string{""}, want: []string{"50", "150"}},
		{name: "edges partial", cmd: "edges", args: []string{"10"}, want: []string{"10", "150"}},
		{name: "brightness required", cmd: "brightness", args: []string{""}, wantErr: true},
		{name: "brightness negative", cmd: "brightness", args: []string{"-40"}, want: []string{"-40"}},
		{name: "contrast float", cmd: "contrast", args: []string{"1.50"}, want: []string{"1.5"}},
		{name: "contrast nan", cmd: "contrast", args: []string{"NaN"}, wantErr: true},
		{name: "resize inf", cmd: "resize", args: []string{"+Inf"}, wantErr: true},
		{name: "edges nan", cmd: "edges", args: []string{"nan", "100"}, wantErr: true},
		{name: "rotate default", cmd: "rotate", args: nil, want: []string{"90"}},
		{name: "flip lowercased", cmd: "flip", args: []string{"V"}, want: []string{"v"}},
		{name: "too many args", cmd: "grayscale", args: []string{"1"}, wantErr: true},
		{name: "unknown command", cmd: "sharpen", args: nil, wantErr: true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := NormalizeArgsFromStd(m, c.cmd, c.args)
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if strings.Join(got, ",") != strings.Join(c.want, ",") {
				t.Fatalf("got %v, want %v", got, c.want)
			}
		})
	}
	if _, err := NormalizeArgsFromStd(nil, "blur", nil); err == nil {
		t.Fatalf("nil store should be an error")
	}
}

func TestResolve(t *testing.T) {
	m := NewMetaStoreFromStdimg(stdimg.Commands)
	cases := map[string]string{
		"1":      "grayscale",
		"2":      "blur",
		"8":      "resize",
		"BLUR":   "blur",
		"gray":   "grayscale",
		"ed":     "edges",
		"flip":   "flip",
		" rot  ": "rotate",
	}
	for in, want := range cases {
		got, err := m.Resolve(in)
		if err != nil || got != want {
			t.Errorf("Resolve(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	for _, bad := range []string{"", "0", "9", "sharpen", "b"} {
		if got, err := m.Resolve(bad); err == nil {
			t.Errorf("Resolve(%q) = %q, want error", bad, got)
		}
	}
}

func TestGetCommandHelp(t *testing.T) {
	m := NewMetaStoreFromStdimg(stdimg.Commands)
	tip, rules, err := m.GetCommandHelp("flip")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(tip, "axis") || !strings.Contains(tip, "default: h") {
		t.Fatalf("tooltip %q", tip)
	}
	r := rules["axis"]
	if r.Type != ParamTypeEnum || len(r.EnumOptions) != 2 || r.EnumOptions[1] != "v" {
		t.Fatalf("rule = %+v", r)
	}
	tip, _, _ = m.GetCommandHelp("grayscale")
	if !strings.HasSuffix(tip, "(no parameters)") {
		t.Fatalf("tooltip %q", tip)
	}
	if _, _, err := m.GetCommandHelp("nope"); err == nil {
		t.Fatalf("expected error for unknown command")
	}
}

func TestBuildOperation(t *testing.T) {
	cases := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{"grayscale", nil, "grayscale", false},
		{"blur", []string{"6"}, "blur 7", false},
		{"edges", []string{"30", "90"}, "edges 30 90", false},
		{"brightness", []string{"-5"}, "brightness -5", false},
		{"contrast", []string{"0.5"}, "contrast 0.5", false},
		{"rotate", []string{"180"}, "rotate 180", false},
		{"flip", []string{"v"}, "flip vertical", false},
		{"flip", []string{"z"}, "flip axis(0)", false},
		{"resize", []string{"1.25"}, "resize 1.25", false},
		{"rotate", []string{"right"}, "", true},
		{"blur", nil, "", true},
		{"sharpen", nil, "", true},
	}
	for _, c := range cases {
		op, err := BuildOperation(c.name, c.args)
		if c.wantErr {
			if err == nil {
				t.Errorf("BuildOperation(%s, %v) succeeded", c.name, c.args)
			}
			continue
		}
		if err != nil || op.String() != c.want {
			t.Errorf("BuildOperation(%s, %v) = %q, %v; want %q", c.name, c.args, op, err, c.want)
		}
	}
}

func TestVersion(t *testing.T) {
	v, err := ParsedVersion()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(VersionString(), v.String()) {
		t.Fatalf("VersionString %q lacks %s", VersionString(), v)
	}
	old := Version
	t.Cleanup(func() { Version = old })
	Version = "v2.0.0-rc.1"
	if got := VersionString(); got != "snapedit 2.0.0-rc.1 (pre-release)" {
		t.Fatalf("VersionString = %q", got)
	}
	Version = "dev"
	if _, err := ParsedVersion(); err == nil {
		t.Fatalf("dev should not parse")
	}
}
