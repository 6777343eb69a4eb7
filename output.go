package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// writeResultFile writes the result to path via a temporary file in the same directory.
// path is replaced only after the full result is on disk; on failure path is left as it was.
// The directory of path must be writable even if path itself already exists.
// An existing file keeps its permissions, a new file gets 0644 regardless of the umask.
func writeResultFile(path string, set PackageSet) (err error) {
	mode := fs.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("write result %s: %v", path, err)
	}
	tmpname := f.Name()
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmpname)
		}
	}()

	if err := WriteResult(f, set); err != nil {
		return fmt.Errorf("write result %s: %v", path, err)
	}
	if err := f.Chmod(mode); err != nil {
		return fmt.Errorf("write result %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write result %s: %v", path, err)
	}
	if err := os.Rename(tmpname, path); err != nil {
		return fmt.Errorf("write result %s: %v", path, err)
	}
	return nil
}
