package storage

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FS is the filesystem capability the Store operates on. Paths are full
// paths as produced by pathmap; implementations clean them as needed.
// Operations on missing entries return errors matching fs.ErrNotExist.
type FS interface {
	// MkdirAll creates dir and any missing parents. It succeeds if dir
	// already exists.
	MkdirAll(dir string, perm fs.FileMode) error

	// WriteFile writes data to name, truncating any existing content.
	// The parent directory must exist.
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// ReadFile returns the full content of name.
	ReadFile(name string) ([]byte, error)

	// Remove deletes the file name.
	Remove(name string) error

	// ReadDirNames returns the names of the entries in dir.
	ReadDirNames(dir string) ([]string, error)

	// RemoveDir deletes dir, which must be empty.
	RemoveDir(dir string) error
}

// OSFS implements FS on the local filesystem.
type OSFS struct{}

// Compile-time interface check.
var _ FS = OSFS{}

// MkdirAll creates dir and its parents.
func (OSFS) MkdirAll(dir string, perm fs.FileMode) error {
	return os.MkdirAll(dir, perm)
}

// WriteFile writes data to name with O_TRUNC semantics.
func (OSFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(name, data, perm)
}

// ReadFile reads the file name.
func (OSFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// Remove deletes the file name. Directories are refused.
func (OSFS) Remove(name string) error {
	info, err := os.Lstat(name)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return &fs.PathError{Op: "remove", Path: name, Err: ErrIsDir}
	}
	return os.Remove(name)
}

// ReadDirNames lists the entry names of dir.
func (OSFS) ReadDirNames(dir string) ([]string, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return f.Readdirnames(-1)
}

// RemoveDir deletes the empty directory dir.
func (OSFS) RemoveDir(dir string) error {
	info, err := os.Lstat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return &fs.PathError{Op: "rmdir", Path: dir, Err: ErrNotDir}
	}
	return os.Remove(dir)
}

// isTop reports whether p has no parent ("/", "." or a volume root).
func isTop(p string) bool {
	return filepath.Dir(p) == p
}

// childPrefix returns the prefix shared by all descendants of dir.
func childPrefix(dir string) string {
	if dir == "." {
		return ""
	}
	if strings.HasSuffix(dir, string(filepath.Separator)) {
		return dir
	}
	return dir + string(filepath.Separator)
}

// isChild reports whether p is a direct child of dir.
func isChild(dir, p string) bool {
	prefix := childPrefix(dir)
	if !strings.HasPrefix(p, prefix) || len(p) == len(prefix) {
		return false
	}
	return !strings.ContainsRune(p[len(prefix):], filepath.Separator)
}
