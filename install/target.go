// Package install implements the artifact installation pass: it resolves
// destinations per platform and build variant, copies built outputs, and
// tracks which targets are exported to the generated package descriptor.
package install

import (
	"fmt"
	"strings"

	"github.com/pkgstage/pkgstage/platform"
)

// Kind classifies a target's build output.
type Kind int

const (
	KindLibrary Kind = iota
	KindPlugin
	KindFiles
)

func (k Kind) String() string {
	switch k {
	case KindLibrary:
		return "library"
	case KindPlugin:
		return "plugin"
	case KindFiles:
		return "files"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a manifest kind name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "", "library":
		return KindLibrary, nil
	case "plugin":
		return KindPlugin, nil
	case "files":
		return KindFiles, nil
	}
	return KindLibrary, fmt.Errorf("unknown target kind: %s", s)
}

// PluginType classifies a plugin target. The type determines the install
// destination and whether auxiliary resource files are copied alongside
// the plugin binary.
type PluginType int

const (
	PluginGraphics PluginType = iota
	PluginIO
	PluginStandard
)

// PluginTypes is the fixed plugin-type vocabulary.
var PluginTypes = []PluginType{PluginGraphics, PluginIO, PluginStandard}

func (t PluginType) String() string {
	switch t {
	case PluginGraphics:
		return "graphics"
	case PluginIO:
		return "io"
	case PluginStandard:
		return "standard"
	}
	return fmt.Sprintf("PluginType(%d)", int(t))
}

func (t PluginType) valid() bool {
	return t >= PluginGraphics && t <= PluginStandard
}

// ParsePluginType maps a manifest type name to a PluginType.
func ParsePluginType(s string) (PluginType, error) {
	switch strings.ToLower(s) {
	case "graphics":
		return PluginGraphics, nil
	case "io":
		return PluginIO, nil
	case "standard":
		return PluginStandard, nil
	}
	return PluginGraphics, fmt.Errorf("%w: %s", ErrUnknownPluginType, s)
}

// Output names the built artifacts of a target for one build variant.
// Roles may coincide: on ELF platforms the runtime and link-time artifact
// are the same shared object.
type Output struct {
	// Runtime is the loadable artifact (shared object, dylib, dll).
	Runtime string
	// Library is the link-time artifact (import library, or the shared
	// object itself).
	Library string
	// Archive is the static archive, if the target produces one.
	Archive string
	// NameLink is the unversioned link name created next to the library
	// on shared-object platforms (e.g. libfoo.so -> libfoo.so.2).
	NameLink string
}

// Target identifies one already-built output subject to installation.
// Targets are defined once by the build description and are immutable
// once installed.
type Target struct {
	Name   string
	Kind   Kind
	Type   PluginType // plugins only
	Export bool

	// Outputs maps each build variant to its built artifacts. Variants
	// without outputs are skipped on platforms where they would apply.
	Outputs map[platform.Variant]Output

	// ResourceDir is the auxiliary resource folder of a graphics plugin
	// (shader sources), if any.
	ResourceDir string
}

// outputFor returns the target's artifacts for a variant. Default and
// Release are aliases of each other when only one of them is declared.
func (t *Target) outputFor(v platform.Variant) (Output, bool) {
	if out, ok := t.Outputs[v]; ok {
		return out, true
	}
	switch v {
	case platform.Default:
		out, ok := t.Outputs[platform.Release]
		return out, ok
	case platform.Release:
		out, ok := t.Outputs[platform.Default]
		return out, ok
	}
	return Output{}, false
}
