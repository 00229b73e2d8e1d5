package install

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkgstage/pkgstage/platform"
)

// shaderExts are the shader-source extensions copied alongside graphics
// plugins.
var shaderExts = map[string]bool{
	".vert": true,
	".frag": true,
	".vs":   true,
	".fs":   true,
}

// PluginOptions configures a plugin install.
type PluginOptions struct {
	// Targets is the candidate list; non-plugin targets and plugins
	// whose type is not requested are skipped.
	Targets []Target

	// Types filters candidates by plugin type. Empty means all types.
	Types []PluginType

	// Dest is the primary plugin destination. Each plugin installs to a
	// type-named folder beneath it.
	Dest platform.Dest

	// ShaderDest is the root of the parallel shader-resource tree.
	// Required only when graphics plugins are in scope.
	ShaderDest string
}

// Plugins installs every candidate target whose plugin type is in the
// requested set. Graphics plugins additionally get their shader sources
// installed under the shader destination. All validation happens before
// any target is installed, so an invalid call has no partial side
// effects. Each installed plugin is recorded as an install-order
// dependency on the pass.
func (p *Pass) Plugins(o PluginOptions) error {
	requested := make(map[PluginType]bool)
	if len(o.Types) == 0 {
		for _, t := range PluginTypes {
			requested[t] = true
		}
	} else {
		for _, t := range o.Types {
			if !t.valid() {
				return fmt.Errorf("%w: %v", ErrUnknownPluginType, int(t))
			}
			requested[t] = true
		}
	}
	if o.Dest.Base == "" {
		return ErrMissingDestination
	}
	// The shader destination is required only when graphics plugins were
	// actually requested, not merely whenever filtering is used.
	if requested[PluginGraphics] && o.ShaderDest == "" {
		return ErrMissingShaderDest
	}

	for _, t := range o.Targets {
		if t.Kind != KindPlugin || !requested[t.Type] {
			continue
		}
		dest := platform.Dest{
			Base:      o.Dest.Base,
			Subfolder: filepath.Join(o.Dest.Subfolder, t.Type.String()),
		}
		if err := p.SharedArtifact(SharedArtifactOptions{
			Target: t,
			Dests:  []platform.Dest{dest},
			Export: t.Export,
		}); err != nil {
			return err
		}
		if t.Type == PluginGraphics {
			if err := p.installShaders(t, o.ShaderDest); err != nil {
				return err
			}
		}
		p.pluginDeps = append(p.pluginDeps, t.Name)
	}
	return nil
}

// installShaders copies a graphics plugin's shader sources to
// <shaderDest>/<resourceFolderName>. A missing resource folder is not an
// error; a folder without shader sources installs nothing.
func (p *Pass) installShaders(t Target, shaderDest string) error {
	if t.ResourceDir == "" {
		return nil
	}
	entries, err := os.ReadDir(t.ResourceDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("install %s: %w", t.Name, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if shaderExts[strings.ToLower(filepath.Ext(e.Name()))] {
			files = append(files, filepath.Join(t.ResourceDir, e.Name()))
		}
	}
	if len(files) == 0 {
		return nil
	}
	sort.Strings(files)

	return p.Files(FilesOptions{
		Files: files,
		Dests: []platform.Dest{{
			Base:      shaderDest,
			Subfolder: filepath.Base(t.ResourceDir),
		}},
	})
}
