package platform

import (
	"fmt"
	"strings"
)

// Variant is one named build configuration.
type Variant int

const (
	Default Variant = iota
	Debug
	Release
	RelWithDebInfo
)

func (v Variant) String() string {
	switch v {
	case Default:
		return "default"
	case Debug:
		return "debug"
	case Release:
		return "release"
	case RelWithDebInfo:
		return "relwithdebinfo"
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// ParseVariant maps a manifest variant name to a Variant.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(s) {
	case "", "default":
		return Default, nil
	case "debug":
		return Debug, nil
	case "release":
		return Release, nil
	case "relwithdebinfo":
		return RelWithDebInfo, nil
	}
	return Default, fmt.Errorf("unknown build variant: %s", s)
}

// suffix is the install-tree suffix the variant attaches to a destination
// base on multi-config platforms.
func (v Variant) suffix() string {
	switch v {
	case Debug:
		return "_debug"
	case RelWithDebInfo:
		return "_withDebInfo"
	}
	return ""
}
