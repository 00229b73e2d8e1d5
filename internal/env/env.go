// Package env reads the process-level switches and directories that
// configure an install pass.
package env

import (
	"os"
	"path/filepath"
)

const (
	noExportEnv        = "PKGSTAGE_NO_EXPORT"
	noPackageConfigEnv = "PKGSTAGE_NO_PACKAGE_CONFIG"
	registryEnv        = "PKGSTAGE_REGISTRY"
)

// ExportEnabled reports whether export registration is globally enabled.
// When disabled, registering a target is a no-op and no export descriptor
// is generated.
func ExportEnabled() bool {
	return os.Getenv(noExportEnv) == ""
}

// PackageConfigEnabled reports whether package descriptor generation is
// globally enabled.
func PackageConfigEnabled() bool {
	return os.Getenv(noPackageConfigEnv) == ""
}

// RegistryEnabled reports whether generated packages are registered in the
// local discovery registry.
func RegistryEnabled() bool {
	switch os.Getenv(registryEnv) {
	case "1", "on", "true":
		return true
	}
	return false
}

// RegistryDir returns the root of the local discovery registry, creating
// it with 0700 permissions if it doesn't exist. The directory is located
// at <UserCacheDir>/pkgstage/registry.
func RegistryDir() (string, error) {
	userCacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(userCacheDir, "pkgstage", "registry")

	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return dir, nil
}
