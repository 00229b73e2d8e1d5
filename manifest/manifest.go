// Package manifest loads the declarative build description that drives an
// install pass: the package metadata, the ordered target list, and the
// plugin install configuration.
package manifest

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest is one build description document.
type Manifest struct {
	Package PackageSpec  `yaml:"package"`
	Targets []TargetSpec `yaml:"targets"`
	Plugins *PluginsSpec `yaml:"plugins"`
}

// PackageSpec carries the package-level settings consumed by descriptor
// generation.
type PackageSpec struct {
	Name           string   `yaml:"name"`
	Namespace      string   `yaml:"namespace"`
	Version        string   `yaml:"version"`
	Compatibility  string   `yaml:"compatibility"`
	Template       string   `yaml:"template"`
	BuildDir       string   `yaml:"buildDir"`
	DependencyDirs []string `yaml:"dependencyDirs"`
}

// DestSpec is one install destination.
type DestSpec struct {
	Base      string `yaml:"base"`
	Subfolder string `yaml:"subfolder"`
}

// OutputSpec names the built artifacts of one build variant.
type OutputSpec struct {
	Runtime  string `yaml:"runtime"`
	Library  string `yaml:"library"`
	Archive  string `yaml:"archive"`
	NameLink string `yaml:"nameLink"`
}

// HeadersSpec describes a target's public headers.
type HeadersSpec struct {
	Files []string `yaml:"files"`
	Dir   string   `yaml:"dir"`
	Dest  string   `yaml:"dest"`
}

// TargetSpec describes one target in document order.
type TargetSpec struct {
	Name         string                `yaml:"name"`
	Kind         string                `yaml:"kind"`
	Type         string                `yaml:"type"`
	Export       bool                  `yaml:"export"`
	Outputs      map[string]OutputSpec `yaml:"outputs"`
	Headers      *HeadersSpec          `yaml:"headers"`
	Resources    string                `yaml:"resources"`
	Files        []string              `yaml:"files"`
	Destinations []DestSpec            `yaml:"destinations"`
}

// PluginsSpec configures the plugin install step.
type PluginsSpec struct {
	Types             []string `yaml:"types"`
	Destination       DestSpec `yaml:"destination"`
	ShaderDestination string   `yaml:"shaderDestination"`
}

// Load reads and parses a manifest file.
func Load(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses a manifest document and validates its structure.
func Parse(data []byte) (*Manifest, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	if m.Package.Name == "" {
		return fmt.Errorf("manifest: package name is required")
	}
	seen := make(map[string]bool, len(m.Targets))
	for i, t := range m.Targets {
		if t.Name == "" {
			return fmt.Errorf("manifest: target %d has no name", i)
		}
		if seen[t.Name] {
			return fmt.Errorf("manifest: duplicate target %s", t.Name)
		}
		seen[t.Name] = true
	}
	return nil
}
