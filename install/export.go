package install

import "github.com/qiniu/x/log"

// ExportSet accumulates the names of targets marked for inclusion in the
// generated package descriptor. It is append-only and keeps duplicates:
// a target registered twice appears twice in the snapshot. The set lives
// for exactly one configuration pass.
type ExportSet struct {
	enabled bool
	names   []string
}

// NewExportSet returns an empty export set. When enabled is false,
// Register is a no-op and callers must not assume their target was
// recorded.
func NewExportSet(enabled bool) *ExportSet {
	return &ExportSet{enabled: enabled}
}

// Enabled reports whether export registration is in effect.
func (s *ExportSet) Enabled() bool {
	return s.enabled
}

// Register appends name to the set.
func (s *ExportSet) Register(name string) {
	if !s.enabled {
		return
	}
	s.names = append(s.names, name)
	log.Infof("export: registered target %s", name)
}

// Snapshot returns the registered names in registration order.
func (s *ExportSet) Snapshot() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the number of registered names, duplicates included.
func (s *ExportSet) Len() int {
	return len(s.names)
}
