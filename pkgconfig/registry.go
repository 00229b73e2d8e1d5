package pkgconfig

import (
	"crypto/sha1"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/qiniu/x/log"

	"github.com/pkgstage/pkgstage/internal/env"
)

// registerPackage records the package's config directory in the local
// discovery registry so that co-located builds can find it without an
// installed prefix search path. One entry is written per config
// location; the entry name is derived from the location so repeated
// registration is idempotent.
func registerPackage(pkg, configDir string) error {
	root, err := env.RegistryDir()
	if err != nil {
		return err
	}
	dir := filepath.Join(root, pkg)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	sum := sha1.Sum([]byte(configDir))
	entry := filepath.Join(dir, hex.EncodeToString(sum[:]))
	if err := os.WriteFile(entry, []byte(configDir+"\n"), 0o644); err != nil {
		return err
	}
	log.Infof("package config: registered %s at %s", pkg, entry)
	return nil
}
