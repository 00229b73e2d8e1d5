package manifest

import (
	"fmt"

	"github.com/pkgstage/pkgstage/install"
	"github.com/pkgstage/pkgstage/pkgconfig"
	"github.com/pkgstage/pkgstage/platform"
)

// RunOptions selects where and for which platform a manifest installs.
type RunOptions struct {
	// Prefix is the install prefix root. Required.
	Prefix string

	// Platform overrides host detection ("posix", "apple", "windows").
	Platform string

	// NoLock skips the prefix lock.
	NoLock bool
}

// Run executes the whole configuration pass a manifest describes:
// targets install in document order, plugins follow, and descriptor
// generation runs exactly once at the end, after every export has been
// registered.
func Run(m *Manifest, o RunOptions) error {
	profile, err := platform.ParseProfile(o.Platform, m.Package.Name)
	if err != nil {
		return err
	}

	pass, err := install.NewPass(install.PassOptions{
		Profile:   profile,
		Prefix:    o.Prefix,
		Package:   m.Package.Name,
		Namespace: m.Package.Namespace,
		NoLock:    o.NoLock,
	})
	if err != nil {
		return err
	}
	defer pass.Close()

	var plugins []install.Target
	for _, ts := range m.Targets {
		kind, err := install.ParseKind(ts.Kind)
		if err != nil {
			return fmt.Errorf("manifest: target %s: %w", ts.Name, err)
		}
		switch kind {
		case install.KindFiles:
			if err := pass.Files(install.FilesOptions{
				Files: ts.Files,
				Dests: dests(ts.Destinations),
			}); err != nil {
				return fmt.Errorf("target %s: %w", ts.Name, err)
			}
		case install.KindLibrary:
			target, err := buildTarget(ts, kind)
			if err != nil {
				return err
			}
			if err := pass.SharedArtifact(install.SharedArtifactOptions{
				Target:  target,
				Dests:   dests(ts.Destinations),
				Export:  ts.Export,
				Headers: headers(ts.Headers),
			}); err != nil {
				return fmt.Errorf("target %s: %w", ts.Name, err)
			}
		case install.KindPlugin:
			target, err := buildTarget(ts, kind)
			if err != nil {
				return err
			}
			plugins = append(plugins, target)
		}
	}

	if len(plugins) > 0 {
		opts, err := pluginOptions(m.Plugins, plugins, profile)
		if err != nil {
			return err
		}
		if err := pass.Plugins(opts); err != nil {
			return err
		}
	}

	return pkgconfig.Generate(pass, pkgconfig.Options{
		ProjectVersion: m.Package.Version,
		Compatibility:  m.Package.Compatibility,
		TemplatePath:   m.Package.Template,
		BuildDir:       m.Package.BuildDir,
		DependencyDirs: m.Package.DependencyDirs,
	})
}

func buildTarget(ts TargetSpec, kind install.Kind) (install.Target, error) {
	t := install.Target{
		Name:        ts.Name,
		Kind:        kind,
		Export:      ts.Export,
		ResourceDir: ts.Resources,
	}
	if kind == install.KindPlugin {
		typ, err := install.ParsePluginType(ts.Type)
		if err != nil {
			return install.Target{}, fmt.Errorf("manifest: target %s: %w", ts.Name, err)
		}
		t.Type = typ
	}
	if len(ts.Outputs) > 0 {
		t.Outputs = make(map[platform.Variant]install.Output, len(ts.Outputs))
		for name, out := range ts.Outputs {
			v, err := platform.ParseVariant(name)
			if err != nil {
				return install.Target{}, fmt.Errorf("manifest: target %s: %w", ts.Name, err)
			}
			t.Outputs[v] = install.Output{
				Runtime:  out.Runtime,
				Library:  out.Library,
				Archive:  out.Archive,
				NameLink: out.NameLink,
			}
		}
	}
	return t, nil
}

func dests(specs []DestSpec) []platform.Dest {
	out := make([]platform.Dest, len(specs))
	for i, d := range specs {
		out[i] = platform.Dest{Base: d.Base, Subfolder: d.Subfolder}
	}
	return out
}

func headers(h *HeadersSpec) *install.HeaderSpec {
	if h == nil {
		return nil
	}
	return &install.HeaderSpec{Files: h.Files, Dir: h.Dir, Dest: h.Dest}
}

// pluginOptions maps the manifest's plugin section to install options.
// Without a section, plugins install under the platform's plugin root
// with no type filter.
func pluginOptions(ps *PluginsSpec, targets []install.Target, profile platform.Profile) (install.PluginOptions, error) {
	opts := install.PluginOptions{
		Targets: targets,
		Dest:    platform.Dest{Base: profile.PluginDir},
	}
	if ps == nil {
		return opts, nil
	}
	for _, name := range ps.Types {
		typ, err := install.ParsePluginType(name)
		if err != nil {
			return install.PluginOptions{}, fmt.Errorf("manifest: plugins: %w", err)
		}
		opts.Types = append(opts.Types, typ)
	}
	if ps.Destination.Base != "" {
		opts.Dest = platform.Dest{Base: ps.Destination.Base, Subfolder: ps.Destination.Subfolder}
	}
	opts.ShaderDest = ps.ShaderDestination
	return opts, nil
}
