package policy

import (
	"fmt"
	"strconv"
	"strings"
)

// InitialVersion is the version assigned to newly created policies.
const InitialVersion = "1.0"

// Version is a "major.minor" policy version.
type Version struct {
	Major int
	Minor int
}

// ParseVersion parses "major.minor". A missing minor component reads as 0.
func ParseVersion(s string) (Version, error) {
	majorStr, minorStr, hasMinor := strings.Cut(strings.TrimSpace(s), ".")

	major, err := strconv.Atoi(majorStr)
	if err != nil || major < 0 {
		return Version{}, fmt.Errorf("parse version %q: invalid major component", s)
	}
	if !hasMinor || minorStr == "" {
		return Version{Major: major}, nil
	}
	minor, err := strconv.Atoi(minorStr)
	if err != nil || minor < 0 {
		return Version{}, fmt.Errorf("parse version %q: invalid minor component", s)
	}
	return Version{Major: major, Minor: minor}, nil
}

// NextMinor returns the version with its minor component incremented.
func (v Version) NextMinor() Version {
	return Version{Major: v.Major, Minor: v.Minor + 1}
}

// String implements fmt.Stringer.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}
