package install

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pkgstage/pkgstage/internal/env"
	"github.com/pkgstage/pkgstage/internal/pathlock"
	"github.com/pkgstage/pkgstage/platform"
)

// PassOptions configures one configuration pass.
type PassOptions struct {
	// Profile selects the platform layout. Zero value means detect from
	// the host.
	Profile platform.Profile

	// Prefix is the install prefix root. Required.
	Prefix string

	// Package is the package name; it scopes header and config
	// directories. Required.
	Package string

	// Namespace prefixes exported target aliases. Defaults to
	// Package + "::".
	Namespace string

	// NoLock skips taking the prefix lock (used by in-tree tests and
	// dry runs).
	NoLock bool
}

// Pass is the context of one configuration pass. It owns the export set
// and the prefix lock. A Pass is not safe for concurrent use; the whole
// pipeline runs as one sequential pass.
//
// Call order matters: every export-requesting install must happen before
// the package descriptor is generated, or the descriptor silently misses
// those targets.
type Pass struct {
	profile    platform.Profile
	prefix     string
	pkg        string
	namespace  string
	exports    *ExportSet
	lock       *pathlock.Lock
	pluginDeps []string
}

// NewPass starts a configuration pass, locking the install prefix until
// Close.
func NewPass(o PassOptions) (*Pass, error) {
	if o.Prefix == "" {
		return nil, fmt.Errorf("%w: empty install prefix", ErrMissingDestination)
	}
	if o.Package == "" {
		return nil, fmt.Errorf("install: empty package name")
	}
	profile := o.Profile
	if profile.IncludeDir == "" {
		profile = platform.Detect(o.Package)
	}
	namespace := o.Namespace
	if namespace == "" {
		namespace = o.Package + "::"
	}

	p := &Pass{
		profile:   profile,
		prefix:    o.Prefix,
		pkg:       o.Package,
		namespace: namespace,
		exports:   NewExportSet(env.ExportEnabled()),
	}
	if !o.NoLock {
		lock, err := pathlock.Acquire(o.Prefix)
		if err != nil {
			return nil, err
		}
		p.lock = lock
	}
	return p, nil
}

// Close releases the prefix lock. The export set stays readable.
func (p *Pass) Close() error {
	return p.lock.Release()
}

// Profile returns the platform profile the pass installs for.
func (p *Pass) Profile() platform.Profile { return p.profile }

// Prefix returns the install prefix root.
func (p *Pass) Prefix() string { return p.prefix }

// Package returns the package name.
func (p *Pass) Package() string { return p.pkg }

// Namespace returns the export alias namespace, including the trailing
// separator.
func (p *Pass) Namespace() string { return p.namespace }

// Exports returns the pass's export set.
func (p *Pass) Exports() *ExportSet { return p.exports }

// PluginDependencies returns the names of all plugin targets installed so
// far, in install order. The aggregate install step depends on each of
// them: install cannot run before all plugins are built.
func (p *Pass) PluginDependencies() []string {
	out := make([]string, len(p.pluginDeps))
	copy(out, p.pluginDeps)
	return out
}

// resolveDest anchors a relative destination base at the prefix, then
// resolves it for the variant.
func (p *Pass) resolveDest(d platform.Dest, v platform.Variant) string {
	if !filepath.IsAbs(d.Base) {
		d.Base = filepath.Join(p.prefix, d.Base)
	}
	return p.profile.ResolveDest(d, v)
}

// headerRoot is the default header install directory for a target:
// <includeRoot>/<package>/<target>.
func (p *Pass) headerRoot(target string) string {
	return filepath.Join(p.prefix, p.profile.IncludeDir, strings.ToLower(p.pkg), target)
}
