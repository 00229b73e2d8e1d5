package pkgconfig

import (
	"regexp"
	"strings"

	"github.com/qiniu/x/log"
	"golang.org/x/mod/semver"
)

var versionRe = regexp.MustCompile(`^(\d+)\.(\d+)\.?(\d*)$`)

// Version is a parsed package version. Components are kept as strings:
// an input that does not match the version pattern at all parses to empty
// major/minor, which is propagated into the generated descriptor rather
// than coerced to a value.
type Version struct {
	Major string
	Minor string
	Patch string
}

// ParseVersion splits a major.minor[.patch] version string. A missing
// patch defaults to "0". A string that does not match the pattern yields
// an empty Version and a warning.
func ParseVersion(s string) Version {
	m := versionRe.FindStringSubmatch(s)
	if m == nil {
		log.Warnf("package config: version %q does not match major.minor[.patch]", s)
		return Version{}
	}
	v := Version{Major: m[1], Minor: m[2], Patch: m[3]}
	if v.Patch == "" {
		v.Patch = "0"
	}
	return v
}

func (v Version) String() string {
	return v.Major + "." + v.Minor + "." + v.Patch
}

// ResolveVersion picks the version string to use: the explicit argument
// wins, then the project-wide version, then the fallback.
func ResolveVersion(explicit, project, fallback string) string {
	if explicit != "" {
		return explicit
	}
	if project != "" {
		return project
	}
	return fallback
}

// SameMajor reports whether two version strings are compatible under
// same-major-version mode. Malformed versions are never compatible.
func SameMajor(a, b string) bool {
	ca, cb := canonical(a), canonical(b)
	if !semver.IsValid(ca) || !semver.IsValid(cb) {
		return false
	}
	return semver.Major(ca) == semver.Major(cb)
}

func canonical(s string) string {
	if !strings.HasPrefix(s, "v") {
		s = "v" + s
	}
	return s
}
