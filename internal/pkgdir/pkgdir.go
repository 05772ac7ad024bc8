// Package pkgdir manages the on-disk package environment directory:
// the package-list artifacts and the lock file live here.
package pkgdir

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/blackwell-systems/dnflock/internal/classify"
)

// Artifact file names within the package directory.
const (
	DefaultListName = "default-packages.txt"
	ManualListName  = "manual-packages.txt"
	AutoListName    = "auto-dependencies.txt"
	LockName        = "packages.lock"
)

// ErrMissingInput is returned when a required source file is absent,
// e.g. analyzing before a default-package baseline has been recorded.
var ErrMissingInput = errors.New("pkgdir: required input file missing")

// Dir is a resolved package environment directory.
type Dir string

// Ensure creates the directory if it does not exist.
func (d Dir) Ensure() error {
	if err := os.MkdirAll(string(d), 0755); err != nil {
		return fmt.Errorf("failed to create package directory %s: %w", d, err)
	}
	return nil
}

// DefaultList returns the path of the default-package baseline file.
func (d Dir) DefaultList() string { return filepath.Join(string(d), DefaultListName) }

// ManualList returns the path of the manual-package list file.
func (d Dir) ManualList() string { return filepath.Join(string(d), ManualListName) }

// AutoList returns the path of the auto-dependency list file.
func (d Dir) AutoList() string { return filepath.Join(string(d), AutoListName) }

// LockPath returns the path of the lock file.
func (d Dir) LockPath() string { return filepath.Join(string(d), LockName) }

// WriteList writes a package list file: one name per line, sorted,
// newline-terminated. The file handle is flushed and closed on all
// paths.
func WriteList(path string, set classify.Set) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	for _, name := range set.Names() {
		if _, err := w.WriteString(name + "\n"); err != nil {
			f.Close()
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return f.Close()
}

// ReadList reads a package list file into a Set, skipping blank lines.
// A missing file returns ErrMissingInput; an empty set from an existing
// file is a distinct, valid outcome.
func ReadList(path string) (classify.Set, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, path)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	set := classify.NewSet()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name != "" {
			set.Add(name)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return set, nil
}
