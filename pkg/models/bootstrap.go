package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is the NVR server version from the bootstrap record.
// A non-numeric patch component (e.g. "3.1.0b1") parses as 0.
type Version struct {
	Major int
	Minor int
	Patch int
}

// ParseVersion parses the "major.minor.patch" string found in the
// bootstrap record's systemInfo.version.
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) < 2 {
		return Version{}, fmt.Errorf("unparseable server version %q", s)
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return Version{}, fmt.Errorf("unparseable server version %q", s)
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return Version{}, fmt.Errorf("unparseable server version %q", s)
	}
	patch := 0
	if len(parts) > 2 {
		if p, err := strconv.Atoi(parts[2]); err == nil {
			patch = p
		}
	}
	return Version{Major: major, Minor: minor, Patch: patch}, nil
}

// AtLeast reports whether v is >= major.minor.patch.
func (v Version) AtLeast(major, minor, patch int) bool {
	if v.Major != major {
		return v.Major > major
	}
	if v.Minor != minor {
		return v.Minor > minor
	}
	return v.Patch >= patch
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}
