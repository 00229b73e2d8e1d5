package install

import (
	"fmt"
	"path/filepath"

	"github.com/pkgstage/pkgstage/internal/fsutil"
	"github.com/pkgstage/pkgstage/platform"
)

// FilesOptions configures a plain file install.
type FilesOptions struct {
	Files []string
	Dests []platform.Dest
}

// Files copies an explicit file list to every destination, fanned out
// across the platform's build variants so that suffixed variant trees
// receive their own copy. An empty file list is a usage error.
func (p *Pass) Files(o FilesOptions) error {
	if len(o.Files) == 0 {
		return ErrNoFiles
	}
	if len(o.Dests) == 0 {
		return ErrMissingDestination
	}
	for _, d := range o.Dests {
		if d.Base == "" {
			return ErrMissingDestination
		}
		for _, v := range p.profile.Variants() {
			dir := p.resolveDest(d, v)
			for _, f := range o.Files {
				if err := fsutil.CopyFile(f, filepath.Join(dir, filepath.Base(f))); err != nil {
					return fmt.Errorf("install files: %w", err)
				}
			}
		}
	}
	return nil
}
