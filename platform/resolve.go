package platform

import "path/filepath"

// Dest is one install destination before resolution: a base directory plus
// an optional subfolder beneath it.
type Dest struct {
	Base      string
	Subfolder string
}

// ResolveDest maps a destination to a concrete path for one build variant.
//
// On single-config platforms the variant is ignored. On multi-config
// platforms the Debug and RelWithDebInfo variants install to suffixed
// sibling trees of the base; the suffix attaches to the base, never the
// subfolder. An empty base is a caller contract violation and must be
// rejected upstream.
func (p Profile) ResolveDest(d Dest, v Variant) string {
	base := d.Base
	if p.MultiConfig {
		base += v.suffix()
	}
	if d.Subfolder == "" {
		return filepath.Clean(base)
	}
	return filepath.Join(base, d.Subfolder)
}
