package install

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/qiniu/x/log"

	"github.com/pkgstage/pkgstage/internal/fsutil"
	"github.com/pkgstage/pkgstage/platform"
)

// Install components, tagged on every copied artifact for diagnostics.
const (
	componentRuntime     = "Runtime"
	componentDevelopment = "Development"
)

// headerExts are the recognized header-file extensions.
var headerExts = map[string]bool{
	".h":   true,
	".hh":  true,
	".hpp": true,
	".hxx": true,
	".inl": true,
}

// excludedHeaderDirs are subtree names never installed from a header
// directory.
var excludedHeaderDirs = map[string]bool{
	"private":  true,
	"internal": true,
}

// HeaderSpec describes a target's public headers: either an explicit file
// list or a directory to copy recursively.
type HeaderSpec struct {
	Files []string
	Dir   string

	// Dest overrides the default <includeRoot>/<package>/<target>
	// destination. Relative paths are anchored at the prefix.
	Dest string
}

// SharedArtifactOptions configures one shared-artifact install.
type SharedArtifactOptions struct {
	Target Target

	// Dests are the destinations to fan the artifacts out to, each
	// resolved independently per build variant.
	Dests []platform.Dest

	// Export registers the target in the pass's export set.
	Export bool

	// Headers, if set, installs the target's public headers.
	Headers *HeaderSpec
}

// SharedArtifact installs one target's built outputs. For every
// destination and every variant relevant on the platform, the runtime
// output is copied under the Runtime component and the link-time and
// archive outputs under the Development component, together with a
// name-link on shared-object platforms. Missing source artifacts surface
// as copy errors and abort the pass.
func (p *Pass) SharedArtifact(o SharedArtifactOptions) error {
	if o.Target.Name == "" {
		return fmt.Errorf("install: target without a name")
	}
	if len(o.Dests) == 0 {
		return fmt.Errorf("%w for target %s", ErrMissingDestination, o.Target.Name)
	}
	for _, d := range o.Dests {
		if d.Base == "" {
			return fmt.Errorf("%w for target %s", ErrMissingDestination, o.Target.Name)
		}
		for _, v := range p.profile.Variants() {
			out, ok := o.Target.outputFor(v)
			if !ok {
				continue
			}
			if err := p.installOutput(o.Target.Name, out, p.resolveDest(d, v)); err != nil {
				return err
			}
		}
	}

	if o.Export {
		p.exports.Register(o.Target.Name)
	}

	if o.Headers != nil {
		if err := p.installHeaders(o.Target.Name, o.Headers); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pass) installOutput(name string, out Output, dir string) error {
	log.Infof("install: %s -> %s", name, dir)

	if out.Runtime != "" {
		if err := p.copyArtifact(out.Runtime, dir, componentRuntime); err != nil {
			return err
		}
	}
	if out.Library != "" && out.Library != out.Runtime {
		if err := p.copyArtifact(out.Library, dir, componentDevelopment); err != nil {
			return err
		}
	}
	if out.Archive != "" {
		if err := p.copyArtifact(out.Archive, dir, componentDevelopment); err != nil {
			return err
		}
	}
	if out.NameLink != "" && p.profile.OS != platform.Windows {
		linked := out.Library
		if linked == "" {
			linked = out.Runtime
		}
		if linked != "" {
			link := filepath.Join(dir, out.NameLink)
			if err := fsutil.Symlink(filepath.Base(linked), link); err != nil {
				return fmt.Errorf("install %s: %w", name, err)
			}
			log.Infof("install: %s name-link %s (%s)", name, link, componentDevelopment)
		}
	}
	return nil
}

func (p *Pass) copyArtifact(src, dir, component string) error {
	dst := filepath.Join(dir, filepath.Base(src))
	if err := fsutil.CopyFile(src, dst); err != nil {
		return err
	}
	log.Infof("install: %s (%s)", dst, component)
	return nil
}

// installHeaders installs a target's public headers under the include
// root, filtering directory trees to recognized header extensions and
// excluding private/internal subtrees.
func (p *Pass) installHeaders(target string, h *HeaderSpec) error {
	dest := h.Dest
	switch {
	case dest == "":
		dest = p.headerRoot(target)
	case !filepath.IsAbs(dest):
		dest = filepath.Join(p.prefix, dest)
	}

	for _, f := range h.Files {
		if err := fsutil.CopyFile(f, filepath.Join(dest, filepath.Base(f))); err != nil {
			return err
		}
	}
	if h.Dir != "" {
		keep := func(rel string, d fs.DirEntry) bool {
			if d.IsDir() {
				return !excludedHeaderDirs[d.Name()]
			}
			return headerExts[strings.ToLower(filepath.Ext(rel))]
		}
		if err := fsutil.CopyTree(h.Dir, dest, keep); err != nil {
			return fmt.Errorf("install headers for %s: %w", target, err)
		}
	}
	log.Infof("install: headers of %s -> %s (%s)", target, dest, componentDevelopment)
	return nil
}
