package pkgdir

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/blackwell-systems/dnflock/internal/classify"
)

func TestWriteAndReadList(t *testing.T) {
	dir := Dir(t.TempDir())
	path := dir.ManualList()

	set := classify.NewSet("nodejs", "git", "docker-ce")
	if err := WriteList(path, set); err != nil {
		t.Fatalf("WriteList() failed: %v", err)
	}

	// Names are written sorted, one per line, newline-terminated.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "docker-ce\ngit\nnodejs\n" {
		t.Errorf("list file content = %q", string(data))
	}

	got, err := ReadList(path)
	if err != nil {
		t.Fatalf("ReadList() failed: %v", err)
	}
	if !got.Equal(set) {
		t.Errorf("ReadList() = %v, want %v", got.Names(), set.Names())
	}
}

func TestReadList_Missing(t *testing.T) {
	_, err := ReadList(filepath.Join(t.TempDir(), "absent.txt"))
	if !errors.Is(err, ErrMissingInput) {
		t.Errorf("error = %v; want errors.Is(err, ErrMissingInput)", err)
	}
}

func TestReadList_EmptyFileIsNotAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}

	set, err := ReadList(path)
	if err != nil {
		t.Fatalf("ReadList() on empty file failed: %v", err)
	}
	if set.Len() != 0 {
		t.Errorf("empty file produced %d names", set.Len())
	}
}

func TestDir_Paths(t *testing.T) {
	d := Dir("/tmp/pkgs")
	if d.LockPath() != "/tmp/pkgs/packages.lock" {
		t.Errorf("LockPath() = %q", d.LockPath())
	}
	if d.DefaultList() != "/tmp/pkgs/default-packages.txt" {
		t.Errorf("DefaultList() = %q", d.DefaultList())
	}
}

func TestDir_Ensure(t *testing.T) {
	d := Dir(filepath.Join(t.TempDir(), "nested", "pkgs"))
	if err := d.Ensure(); err != nil {
		t.Fatalf("Ensure() failed: %v", err)
	}
	info, err := os.Stat(string(d))
	if err != nil || !info.IsDir() {
		t.Errorf("directory not created: %v", err)
	}
}
