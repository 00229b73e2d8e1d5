package pkgconfig

import (
	"os"
	"regexp"
	"strconv"
)

// fallbackDependencyMajor is assumed when no runtime dependency marker is
// found. The value only annotates diagnostics.
const fallbackDependencyMajor = "5"

var qtMarkerRe = regexp.MustCompile(`(?i)^qt(\d+)$`)

// DetectDependencyMajor scans the given directories for a Qt-style
// runtime dependency marker (an entry named like "qt5" or "Qt6") and
// returns the highest major version found, or a fixed fallback when none
// is present.
func DetectDependencyMajor(dirs []string) string {
	best := -1
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			m := qtMarkerRe.FindStringSubmatch(e.Name())
			if m == nil {
				continue
			}
			if major, err := strconv.Atoi(m[1]); err == nil && major > best {
				best = major
			}
		}
	}
	if best < 0 {
		return fallbackDependencyMajor
	}
	return strconv.Itoa(best)
}
