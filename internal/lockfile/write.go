package lockfile

import (
	"fmt"
	"io"
	"os"
)

// BackupSuffix is appended to the lock path to hold the immediately
// prior version.
const BackupSuffix = ".backup"

// Write serializes f and overwrites the lock file at path. If a lock
// file already exists, it is first copied to path+BackupSuffix so the
// prior version survives the overwrite. The destination is flushed and
// closed on all paths before Write returns.
func Write(path string, f *File) error {
	if _, err := os.Stat(path); err == nil {
		if err := copyFile(path, path+BackupSuffix); err != nil {
			return fmt.Errorf("failed to back up previous lock file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat lock file %s: %w", path, err)
	}

	if err := os.WriteFile(path, Marshal(f), 0644); err != nil {
		return fmt.Errorf("failed to write lock file %s: %w", path, err)
	}

	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
