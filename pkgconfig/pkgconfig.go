// Package pkgconfig finalizes an install pass: it renders the package
// configuration descriptor, writes the version-compatibility descriptor,
// and emits the exported-targets descriptor consumed by downstream
// builds.
package pkgconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/qiniu/x/log"
	"golang.org/x/mod/semver"

	"github.com/pkgstage/pkgstage/install"
	"github.com/pkgstage/pkgstage/internal/env"
)

const (
	fallbackVersion = "1.0.0"

	// DefaultCompatibility is the compatibility mode used when none is
	// given.
	DefaultCompatibility = "same-major-version"
)

// Options configures package descriptor generation.
type Options struct {
	// Version overrides the project version. Resolution order is
	// Version, then ProjectVersion, then a fixed fallback.
	Version        string
	ProjectVersion string

	// Compatibility selects the version-compatibility mode of the
	// generated descriptor: same-major-version (default), exact-version
	// or any-newer-version.
	Compatibility string

	// TemplatePath locates the configuration template. A missing
	// template skips descriptor generation with a warning; the rest of
	// the pass is unaffected.
	TemplatePath string

	// BuildDir, if set, receives a build-tree copy of the exported
	// targets descriptor for in-tree consumption without installation.
	BuildDir string

	// DependencyDirs are searched for the optional runtime dependency
	// version marker used to annotate diagnostics.
	DependencyDirs []string
}

// templateData is what the configuration template may substitute.
type templateData struct {
	Package    string
	Namespace  string
	Version    string
	Prefix     string
	IncludeDir string
	LibDir     string
	PluginDir  string
	ConfigDir  string
}

// Generate runs descriptor generation for a finished pass. It must be
// called exactly once, after every export-requesting install: the export
// set is read here, and targets registered later would silently be
// missing from the descriptor.
func Generate(p *install.Pass, o Options) error {
	if !env.PackageConfigEnabled() {
		log.Infof("package config: generation disabled, skipping")
		return nil
	}

	version := ResolveVersion(o.Version, o.ProjectVersion, fallbackVersion)
	if o.Version != "" && o.ProjectVersion != "" && !SameMajor(o.Version, o.ProjectVersion) {
		log.Warnf("package config: explicit version %s and project version %s differ in major", o.Version, o.ProjectVersion)
	}
	if !semver.IsValid(canonical(version)) {
		log.Warnf("package config: version %q is not a semantic version", version)
	}
	v := ParseVersion(version)

	compat := o.Compatibility
	if compat == "" {
		compat = DefaultCompatibility
	}

	profile := p.Profile()
	log.Infof("package config: dependency runtime major %s", DetectDependencyMajor(o.DependencyDirs))

	tmplData, err := os.ReadFile(o.TemplatePath)
	if err != nil {
		if o.TemplatePath == "" || os.IsNotExist(err) {
			log.Warnf("package config: template %q not found, no descriptor generated", o.TemplatePath)
			return nil
		}
		return fmt.Errorf("package config: %w", err)
	}

	tmpl, err := template.New(filepath.Base(o.TemplatePath)).Parse(string(tmplData))
	if err != nil {
		return fmt.Errorf("package config: %w", err)
	}
	var rendered strings.Builder
	err = tmpl.Execute(&rendered, templateData{
		Package:    p.Package(),
		Namespace:  p.Namespace(),
		Version:    v.String(),
		Prefix:     p.Prefix(),
		IncludeDir: profile.IncludeDir,
		LibDir:     profile.LibDir,
		PluginDir:  profile.PluginDir,
		ConfigDir:  profile.ConfigDir,
	})
	if err != nil {
		return fmt.Errorf("package config: %w", err)
	}

	configDir := filepath.Join(p.Prefix(), profile.ConfigDir)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	configFile := filepath.Join(configDir, p.Package()+"Config.cmake")
	if err := os.WriteFile(configFile, []byte(rendered.String()), 0o644); err != nil {
		return err
	}
	log.Infof("package config: %s (Development)", configFile)

	versionFile := filepath.Join(configDir, p.Package()+"ConfigVersion.cmake")
	if err := os.WriteFile(versionFile, []byte(versionDescriptor(v, compat)), 0o644); err != nil {
		return err
	}
	log.Infof("package config: %s (Development)", versionFile)

	if err := writeTargets(p, o, configDir); err != nil {
		return err
	}

	if env.RegistryEnabled() {
		if err := registerPackage(p.Package(), configDir); err != nil {
			return err
		}
	}
	return nil
}

// writeTargets emits the exported-targets descriptor, plus a build-tree
// mirror when requested. An empty export set produces no descriptor:
// package consumers will be unable to resolve the library's binary
// targets, so this is loudly warned about.
func writeTargets(p *install.Pass, o Options, configDir string) error {
	snapshot := p.Exports().Snapshot()
	if len(snapshot) == 0 {
		log.Warnf("package config: export set is empty, no targets descriptor generated")
		return nil
	}

	content := exportDescriptor(p.Package(), p.Namespace(), snapshot)
	name := p.Package() + "Targets.cmake"

	if err := os.WriteFile(filepath.Join(configDir, name), []byte(content), 0o644); err != nil {
		return err
	}
	log.Infof("package config: %s (Development)", filepath.Join(configDir, name))

	if o.BuildDir != "" {
		if err := os.MkdirAll(o.BuildDir, 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(o.BuildDir, name), []byte(content), 0o644); err != nil {
			return err
		}
	}
	return nil
}

// versionDescriptor generates the version-compatibility descriptor
// content for the given compatibility mode.
func versionDescriptor(v Version, compat string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Generated by pkgstage. Do not edit.\n")
	fmt.Fprintf(&b, "set(PACKAGE_VERSION %q)\n", v.String())
	fmt.Fprintf(&b, "set(PACKAGE_VERSION_MAJOR %q)\n", v.Major)
	fmt.Fprintf(&b, "set(PACKAGE_VERSION_MINOR %q)\n", v.Minor)
	fmt.Fprintf(&b, "set(PACKAGE_VERSION_PATCH %q)\n", v.Patch)
	b.WriteString("set(PACKAGE_VERSION_COMPATIBLE FALSE)\n")

	switch compat {
	case "exact-version":
		b.WriteString("if(PACKAGE_FIND_VERSION VERSION_EQUAL PACKAGE_VERSION)\n")
		b.WriteString("  set(PACKAGE_VERSION_COMPATIBLE TRUE)\n")
		b.WriteString("endif()\n")
	case "any-newer-version":
		b.WriteString("if(PACKAGE_FIND_VERSION VERSION_LESS_EQUAL PACKAGE_VERSION)\n")
		b.WriteString("  set(PACKAGE_VERSION_COMPATIBLE TRUE)\n")
		b.WriteString("endif()\n")
	default: // same-major-version
		b.WriteString("if(PACKAGE_FIND_VERSION_MAJOR EQUAL PACKAGE_VERSION_MAJOR)\n")
		b.WriteString("  set(PACKAGE_VERSION_COMPATIBLE TRUE)\n")
		b.WriteString("endif()\n")
	}

	b.WriteString("if(PACKAGE_FIND_VERSION VERSION_EQUAL PACKAGE_VERSION)\n")
	b.WriteString("  set(PACKAGE_VERSION_EXACT TRUE)\n")
	b.WriteString("endif()\n")
	return b.String()
}

// exportDescriptor generates the exported-targets descriptor: namespaced
// aliases for every registered target, in registration order.
func exportDescriptor(pkg, namespace string, names []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Exported targets for %s. Generated by pkgstage. Do not edit.\n", pkg)

	aliases := make([]string, len(names))
	for i, n := range names {
		aliases[i] = namespace + n
	}
	fmt.Fprintf(&b, "set(%s_EXPORTED_TARGETS %q)\n", pkg, strings.Join(aliases, ";"))
	for _, a := range aliases {
		fmt.Fprintf(&b, "# target: %s\n", a)
	}
	return b.String()
}
