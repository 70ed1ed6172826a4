package cli

import (
	"fmt"

	"github.com/blang/semver"
)

// Version is the release version, overridden at build time with
// -ldflags "-X github.com/Fepozopo/snapedit/pkg/cli.Version=1.2.3".
var Version = "0.1.0"

// ParsedVersion returns Version as a semantic version. A leading "v" is accepted.
func ParsedVersion() (semver.Version, error) {
	v, err := semver.ParseTolerant(Version)
	if err != nil {
		return semver.Version{}, fmt.Errorf("invalid build version %q: %w", Version, err)
	}
	return v, nil
}

// VersionString formats the version for -version output.
func VersionString() string {
	v, err := ParsedVersion()
	if err != nil {
		return "snapedit " + Version + " (unparsed)"
	}
	if len(v.Pre) > 0 {
		return fmt.Sprintf("snapedit %s (pre-release)", v)
	}
	return fmt.Sprintf("snapedit %s", v)
}
