package pkgconfig

import (
	"crypto/sha1"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkgstage/pkgstage/install"
	"github.com/pkgstage/pkgstage/internal/env"
	"github.com/pkgstage/pkgstage/platform"
)

func newTestPass(t *testing.T) *install.Pass {
	t.Helper()
	t.Setenv("PKGSTAGE_NO_EXPORT", "")
	t.Setenv("PKGSTAGE_NO_PACKAGE_CONFIG", "")
	t.Setenv("PKGSTAGE_REGISTRY", "")
	p, err := install.NewPass(install.PassOptions{
		Profile: platform.PosixProfile("Stage"),
		Prefix:  t.TempDir(),
		Package: "Stage",
		NoLock:  true,
	})
	if err != nil {
		t.Fatalf("NewPass: %v", err)
	}
	return p
}

func writeTemplate(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Config.cmake.in")
	content := `# {{.Package}} {{.Version}}
set({{.Package}}_INCLUDE_DIR "{{.IncludeDir}}")
set({{.Package}}_LIB_DIR "{{.LibDir}}")
set({{.Package}}_PLUGIN_DIR "{{.PluginDir}}")
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	return path
}

func configDirOf(p *install.Pass) string {
	return filepath.Join(p.Prefix(), p.Profile().ConfigDir)
}

func TestGenerate(t *testing.T) {
	p := newTestPass(t)
	p.Exports().Register("core")
	p.Exports().Register("gfx")

	buildDir := filepath.Join(t.TempDir(), "build")
	err := Generate(p, Options{
		ProjectVersion: "2.13",
		TemplatePath:   writeTemplate(t),
		BuildDir:       buildDir,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	configDir := configDirOf(p)

	config, err := os.ReadFile(filepath.Join(configDir, "StageConfig.cmake"))
	if err != nil {
		t.Fatalf("config descriptor missing: %v", err)
	}
	for _, want := range []string{
		"# Stage 2.13.0",
		`set(Stage_INCLUDE_DIR "include")`,
		`set(Stage_LIB_DIR "lib")`,
		`set(Stage_PLUGIN_DIR "` + filepath.Join("lib", "stage") + `")`,
	} {
		if !strings.Contains(string(config), want) {
			t.Errorf("config descriptor missing %q:\n%s", want, config)
		}
	}

	version, err := os.ReadFile(filepath.Join(configDir, "StageConfigVersion.cmake"))
	if err != nil {
		t.Fatalf("version descriptor missing: %v", err)
	}
	for _, want := range []string{
		`set(PACKAGE_VERSION "2.13.0")`,
		`set(PACKAGE_VERSION_MAJOR "2")`,
		"PACKAGE_FIND_VERSION_MAJOR EQUAL PACKAGE_VERSION_MAJOR",
	} {
		if !strings.Contains(string(version), want) {
			t.Errorf("version descriptor missing %q:\n%s", want, version)
		}
	}

	targets, err := os.ReadFile(filepath.Join(configDir, "StageTargets.cmake"))
	if err != nil {
		t.Fatalf("targets descriptor missing: %v", err)
	}
	if !strings.Contains(string(targets), `set(Stage_EXPORTED_TARGETS "Stage::core;Stage::gfx")`) {
		t.Errorf("targets descriptor missing export list:\n%s", targets)
	}

	mirror, err := os.ReadFile(filepath.Join(buildDir, "StageTargets.cmake"))
	if err != nil {
		t.Fatalf("build-tree mirror missing: %v", err)
	}
	if string(mirror) != string(targets) {
		t.Error("build-tree mirror differs from installed descriptor")
	}
}

func TestGenerateEmptyExportSet(t *testing.T) {
	p := newTestPass(t)

	err := Generate(p, Options{
		Version:      "1.2.3",
		TemplatePath: writeTemplate(t),
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	configDir := configDirOf(p)
	if _, err := os.Stat(filepath.Join(configDir, "StageConfigVersion.cmake")); err != nil {
		t.Errorf("version descriptor should still be generated: %v", err)
	}
	if _, err := os.Stat(filepath.Join(configDir, "StageTargets.cmake")); err == nil {
		t.Error("targets descriptor generated despite empty export set")
	}
}

func TestGenerateMissingTemplateSkips(t *testing.T) {
	p := newTestPass(t)
	p.Exports().Register("core")

	err := Generate(p, Options{
		Version:      "1.2.3",
		TemplatePath: filepath.Join(t.TempDir(), "absent.cmake.in"),
	})
	if err != nil {
		t.Fatalf("Generate with missing template: %v", err)
	}

	if _, err := os.Stat(configDirOf(p)); err == nil {
		t.Error("descriptors generated despite missing template")
	}
}

func TestGenerateDisabled(t *testing.T) {
	p := newTestPass(t)
	t.Setenv("PKGSTAGE_NO_PACKAGE_CONFIG", "1")

	if err := Generate(p, Options{TemplatePath: writeTemplate(t)}); err != nil {
		t.Fatalf("Generate while disabled: %v", err)
	}
	if _, err := os.Stat(configDirOf(p)); err == nil {
		t.Error("descriptors generated despite disabled generation")
	}
}

func TestGenerateUnmatchedVersionPropagates(t *testing.T) {
	p := newTestPass(t)

	err := Generate(p, Options{
		Version:      "v2",
		TemplatePath: writeTemplate(t),
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	version, err := os.ReadFile(filepath.Join(configDirOf(p), "StageConfigVersion.cmake"))
	if err != nil {
		t.Fatalf("version descriptor missing: %v", err)
	}
	if !strings.Contains(string(version), `set(PACKAGE_VERSION_MAJOR "")`) {
		t.Errorf("unmatched version not surfaced as empty major:\n%s", version)
	}
}

func TestGenerateRegistersPackage(t *testing.T) {
	p := newTestPass(t)
	t.Setenv("PKGSTAGE_REGISTRY", "1")

	if err := Generate(p, Options{Version: "1.0.0", TemplatePath: writeTemplate(t)}); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	root, err := env.RegistryDir()
	if err != nil {
		t.Fatalf("RegistryDir: %v", err)
	}
	configDir := configDirOf(p)
	sum := sha1.Sum([]byte(configDir))
	entry := filepath.Join(root, "Stage", hex.EncodeToString(sum[:]))
	t.Cleanup(func() { os.Remove(entry) })

	data, err := os.ReadFile(entry)
	if err != nil {
		t.Fatalf("registry entry missing: %v", err)
	}
	if strings.TrimSpace(string(data)) != configDir {
		t.Errorf("registry entry = %q, want %q", data, configDir)
	}
}

func TestDetectDependencyMajor(t *testing.T) {
	tmp := t.TempDir()
	for _, d := range []string{"qt5", "Qt6", "other"} {
		if err := os.Mkdir(filepath.Join(tmp, d), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}

	if got := DetectDependencyMajor([]string{tmp}); got != "6" {
		t.Errorf("DetectDependencyMajor = %q, want %q", got, "6")
	}
	if got := DetectDependencyMajor([]string{filepath.Join(tmp, "absent")}); got != "5" {
		t.Errorf("DetectDependencyMajor fallback = %q, want %q", got, "5")
	}
	if got := DetectDependencyMajor(nil); got != "5" {
		t.Errorf("DetectDependencyMajor(nil) = %q, want %q", got, "5")
	}
}
