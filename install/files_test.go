package install

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkgstage/pkgstage/platform"
)

func TestFilesEmptyListIsUsageError(t *testing.T) {
	p := newTestPass(t, platform.PosixProfile("stage"))

	err := p.Files(FilesOptions{Dests: []platform.Dest{{Base: "share"}}})
	if !errors.Is(err, ErrNoFiles) {
		t.Errorf("err = %v, want ErrNoFiles", err)
	}
}

func TestFilesMissingDest(t *testing.T) {
	p := newTestPass(t, platform.PosixProfile("stage"))
	f := writeFile(t, filepath.Join(t.TempDir(), "readme.txt"), "x")

	if err := p.Files(FilesOptions{Files: []string{f}}); !errors.Is(err, ErrMissingDestination) {
		t.Errorf("err = %v, want ErrMissingDestination", err)
	}
}

func TestFilesFanOut(t *testing.T) {
	p := newTestPass(t, platform.PosixProfile("stage"))
	tmp := t.TempDir()
	a := writeFile(t, filepath.Join(tmp, "a.conf"), "a")
	b := writeFile(t, filepath.Join(tmp, "b.conf"), "b")

	err := p.Files(FilesOptions{
		Files: []string{a, b},
		Dests: []platform.Dest{{Base: "etc"}, {Base: "share", Subfolder: "stage"}},
	})
	if err != nil {
		t.Fatalf("Files: %v", err)
	}

	for _, want := range []string{
		filepath.Join("etc", "a.conf"),
		filepath.Join("etc", "b.conf"),
		filepath.Join("share", "stage", "a.conf"),
		filepath.Join("share", "stage", "b.conf"),
	} {
		if _, err := os.Stat(filepath.Join(p.Prefix(), want)); err != nil {
			t.Errorf("missing %s: %v", want, err)
		}
	}
}

func TestFilesVariantTrees(t *testing.T) {
	p := newTestPass(t, platform.WindowsProfile("stage"))
	f := writeFile(t, filepath.Join(t.TempDir(), "data.bin"), "d")

	if err := p.Files(FilesOptions{
		Files: []string{f},
		Dests: []platform.Dest{{Base: "share"}},
	}); err != nil {
		t.Fatalf("Files: %v", err)
	}

	for _, dir := range []string{"share", "share_debug", "share_withDebInfo"} {
		if _, err := os.Stat(filepath.Join(p.Prefix(), dir, "data.bin")); err != nil {
			t.Errorf("missing copy in %s: %v", dir, err)
		}
	}
}
