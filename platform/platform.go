// Package platform describes per-platform install layout conventions.
package platform

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

// OS identifies the family of platform conventions an install tree follows.
type OS int

const (
	// Posix covers ELF shared-object platforms with single-config build trees.
	Posix OS = iota
	// Apple covers bundle-style layouts on darwin.
	Apple
	// Windows covers import-library platforms with multi-config build trees.
	Windows
)

func (o OS) String() string {
	switch o {
	case Posix:
		return "posix"
	case Apple:
		return "apple"
	case Windows:
		return "windows"
	}
	return fmt.Sprintf("OS(%d)", int(o))
}

// Profile bundles the layout constants of one platform so that callers
// never re-derive platform checks at each site.
type Profile struct {
	OS OS

	// MultiConfig reports whether the platform's build model produces
	// several simultaneously configurable outputs. On single-config
	// platforms only the Default variant is meaningful.
	MultiConfig bool

	// Install-tree roots, relative to the install prefix.
	IncludeDir string
	LibDir     string
	BinDir     string
	PluginDir  string
	ConfigDir  string
}

// PosixProfile returns the layout for ELF platforms. pkg is the package
// name used for package-scoped directories.
func PosixProfile(pkg string) Profile {
	pkg = strings.ToLower(pkg)
	return Profile{
		OS:         Posix,
		IncludeDir: "include",
		LibDir:     "lib",
		BinDir:     "bin",
		PluginDir:  filepath.Join("lib", pkg),
		ConfigDir:  filepath.Join("lib", "cmake", pkg),
	}
}

// AppleProfile returns the bundle-style layout used on darwin.
func AppleProfile(pkg string) Profile {
	pkg = strings.ToLower(pkg)
	return Profile{
		OS:         Apple,
		IncludeDir: "include",
		LibDir:     "lib",
		BinDir:     "bin",
		PluginDir:  "PlugIns",
		ConfigDir:  filepath.Join("lib", "cmake", pkg),
	}
}

// WindowsProfile returns the flat layout used on import-library platforms.
func WindowsProfile(pkg string) Profile {
	pkg = strings.ToLower(pkg)
	return Profile{
		OS:          Windows,
		MultiConfig: true,
		IncludeDir:  "include",
		LibDir:      "lib",
		BinDir:      "bin",
		PluginDir:   "plugins",
		ConfigDir:   filepath.Join("cmake", pkg),
	}
}

// Detect returns the profile matching the host operating system.
func Detect(pkg string) Profile {
	switch runtime.GOOS {
	case "darwin":
		return AppleProfile(pkg)
	case "windows":
		return WindowsProfile(pkg)
	}
	return PosixProfile(pkg)
}

// ParseProfile maps a platform name from a manifest or flag to a profile.
func ParseProfile(name, pkg string) (Profile, error) {
	switch strings.ToLower(name) {
	case "", "host":
		return Detect(pkg), nil
	case "posix", "linux":
		return PosixProfile(pkg), nil
	case "apple", "darwin":
		return AppleProfile(pkg), nil
	case "windows":
		return WindowsProfile(pkg), nil
	}
	return Profile{}, fmt.Errorf("unknown platform: %s", name)
}

// Variants returns the build variants that produce distinct install trees
// on this platform, in install order. Default and Release resolve to the
// same tree on multi-config platforms.
func (p Profile) Variants() []Variant {
	if !p.MultiConfig {
		return []Variant{Default}
	}
	return []Variant{Release, Debug, RelWithDebInfo}
}
