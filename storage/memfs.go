package storage

import (
	"io/fs"
	"path/filepath"
	"sort"
	"sync"
)

// MemFS is an in-memory implementation of FS for testing and ephemeral stores.
type MemFS struct {
	mu    sync.RWMutex
	dirs  map[string]struct{}
	files map[string][]byte
}

// Compile-time interface check.
var _ FS = (*MemFS)(nil)

// NewMemFS creates an empty in-memory filesystem.
func NewMemFS() *MemFS {
	return &MemFS{
		dirs:  make(map[string]struct{}),
		files: make(map[string][]byte),
	}
}

// dirExists must be called with mu held.
func (m *MemFS) dirExists(dir string) bool {
	if isTop(dir) {
		return true
	}
	_, ok := m.dirs[dir]
	return ok
}

// MkdirAll creates dir and its parents.
func (m *MemFS) MkdirAll(dir string, _ fs.FileMode) error {
	dir = filepath.Clean(dir)

	m.mu.Lock()
	defer m.mu.Unlock()

	for p := dir; !isTop(p); p = filepath.Dir(p) {
		if _, ok := m.files[p]; ok {
			return &fs.PathError{Op: "mkdir", Path: p, Err: ErrNotDir}
		}
		m.dirs[p] = struct{}{}
	}
	return nil
}

// WriteFile stores a copy of data under name.
func (m *MemFS) WriteFile(name string, data []byte, _ fs.FileMode) error {
	name = filepath.Clean(name)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.dirs[name]; ok {
		return &fs.PathError{Op: "open", Path: name, Err: ErrIsDir}
	}
	if !m.dirExists(filepath.Dir(name)) {
		return &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	m.files[name] = append([]byte{}, data...)
	return nil
}

// ReadFile returns a copy of the content stored under name.
func (m *MemFS) ReadFile(name string) ([]byte, error) {
	name = filepath.Clean(name)

	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.files[name]
	if !ok {
		if _, isDir := m.dirs[name]; isDir {
			return nil, &fs.PathError{Op: "read", Path: name, Err: ErrIsDir}
		}
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return append([]byte{}, data...), nil
}

// Remove deletes the file name.
func (m *MemFS) Remove(name string) error {
	name = filepath.Clean(name)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.files[name]; !ok {
		if _, isDir := m.dirs[name]; isDir {
			return &fs.PathError{Op: "remove", Path: name, Err: ErrIsDir}
		}
		return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrNotExist}
	}
	delete(m.files, name)
	return nil
}

// ReadDirNames lists the entry names of dir in sorted order.
func (m *MemFS) ReadDirNames(dir string) ([]string, error) {
	dir = filepath.Clean(dir)

	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.dirExists(dir) {
		return nil, &fs.PathError{Op: "open", Path: dir, Err: fs.ErrNotExist}
	}

	var names []string
	for p := range m.dirs {
		if isChild(dir, p) {
			names = append(names, filepath.Base(p))
		}
	}
	for p := range m.files {
		if isChild(dir, p) {
			names = append(names, filepath.Base(p))
		}
	}
	sort.Strings(names)
	return names, nil
}

// RemoveDir deletes the empty directory dir.
func (m *MemFS) RemoveDir(dir string) error {
	dir = filepath.Clean(dir)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.dirs[dir]; !ok {
		if _, isFile := m.files[dir]; isFile {
			return &fs.PathError{Op: "rmdir", Path: dir, Err: ErrNotDir}
		}
		return &fs.PathError{Op: "rmdir", Path: dir, Err: fs.ErrNotExist}
	}
	for p := range m.dirs {
		if isChild(dir, p) {
			return &fs.PathError{Op: "rmdir", Path: dir, Err: ErrDirNotEmpty}
		}
	}
	for p := range m.files {
		if isChild(dir, p) {
			return &fs.PathError{Op: "rmdir", Path: dir, Err: ErrDirNotEmpty}
		}
	}
	delete(m.dirs, dir)
	return nil
}
