package storage

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"go.etcd.io/bbolt"
)

var (
	bucketDirs  = []byte("dirs")
	bucketFiles = []byte("files")
)

// BoltFS implements FS inside a single bbolt database file. Directories and
// files live in two buckets keyed by their cleaned path, which keeps the
// store's layout and cleanup semantics without one inode per value.
type BoltFS struct {
	db *bbolt.DB
}

// Compile-time interface check.
var _ FS = (*BoltFS)(nil)

// OpenBoltFS opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltFS(dbPath string) (*BoltFS, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("boltfs: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("boltfs: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketDirs, bucketFiles} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("boltfs: create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("boltfs: create buckets: %w", err)
	}

	return &BoltFS{db: db}, nil
}

// Close closes the underlying database.
func (b *BoltFS) Close() error { return b.db.Close() }

// has reports whether key is present in bucket. Values may be empty, so
// presence is decided by the cursor key rather than by Get.
func has(bucket *bbolt.Bucket, key []byte) bool {
	k, _ := bucket.Cursor().Seek(key)
	return bytes.Equal(k, key)
}

func boltDirExists(dirs *bbolt.Bucket, dir string) bool {
	return isTop(dir) || has(dirs, []byte(dir))
}

// MkdirAll creates dir and its parents.
func (b *BoltFS) MkdirAll(dir string, _ fs.FileMode) error {
	dir = filepath.Clean(dir)
	return b.db.Update(func(tx *bbolt.Tx) error {
		dirs, files := tx.Bucket(bucketDirs), tx.Bucket(bucketFiles)
		for p := dir; !isTop(p); p = filepath.Dir(p) {
			if has(files, []byte(p)) {
				return &fs.PathError{Op: "mkdir", Path: p, Err: ErrNotDir}
			}
			if err := dirs.Put([]byte(p), []byte{}); err != nil {
				return fmt.Errorf("boltfs: put dir %q: %w", p, err)
			}
		}
		return nil
	})
}

// WriteFile stores data under name, replacing any previous value.
func (b *BoltFS) WriteFile(name string, data []byte, _ fs.FileMode) error {
	name = filepath.Clean(name)
	return b.db.Update(func(tx *bbolt.Tx) error {
		dirs, files := tx.Bucket(bucketDirs), tx.Bucket(bucketFiles)
		if has(dirs, []byte(name)) {
			return &fs.PathError{Op: "open", Path: name, Err: ErrIsDir}
		}
		if !boltDirExists(dirs, filepath.Dir(name)) {
			return &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
		}
		if data == nil {
			data = []byte{}
		}
		if err := files.Put([]byte(name), data); err != nil {
			return fmt.Errorf("boltfs: put file %q: %w", name, err)
		}
		return nil
	})
}

// ReadFile returns a copy of the value stored under name.
func (b *BoltFS) ReadFile(name string) ([]byte, error) {
	name = filepath.Clean(name)
	var data []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		k, v := tx.Bucket(bucketFiles).Cursor().Seek([]byte(name))
		if !bytes.Equal(k, []byte(name)) {
			if has(tx.Bucket(bucketDirs), []byte(name)) {
				return &fs.PathError{Op: "read", Path: name, Err: ErrIsDir}
			}
			return &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
		}
		data = append([]byte{}, v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Remove deletes the file name.
func (b *BoltFS) Remove(name string) error {
	name = filepath.Clean(name)
	return b.db.Update(func(tx *bbolt.Tx) error {
		files := tx.Bucket(bucketFiles)
		if !has(files, []byte(name)) {
			if has(tx.Bucket(bucketDirs), []byte(name)) {
				return &fs.PathError{Op: "remove", Path: name, Err: ErrIsDir}
			}
			return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrNotExist}
		}
		return files.Delete([]byte(name))
	})
}

// children returns the base names of the direct children of dir in bucket.
func children(bucket *bbolt.Bucket, dir string) []string {
	prefix := []byte(childPrefix(dir))
	var names []string
	c := bucket.Cursor()
	for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
		if isChild(dir, string(k)) {
			names = append(names, filepath.Base(string(k)))
		}
	}
	return names
}

// ReadDirNames lists the entry names of dir in sorted order.
func (b *BoltFS) ReadDirNames(dir string) ([]string, error) {
	dir = filepath.Clean(dir)
	var names []string
	err := b.db.View(func(tx *bbolt.Tx) error {
		dirs, files := tx.Bucket(bucketDirs), tx.Bucket(bucketFiles)
		if !boltDirExists(dirs, dir) {
			return &fs.PathError{Op: "open", Path: dir, Err: fs.ErrNotExist}
		}
		names = append(children(dirs, dir), children(files, dir)...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// RemoveDir deletes the empty directory dir.
func (b *BoltFS) RemoveDir(dir string) error {
	dir = filepath.Clean(dir)
	return b.db.Update(func(tx *bbolt.Tx) error {
		dirs, files := tx.Bucket(bucketDirs), tx.Bucket(bucketFiles)
		if !has(dirs, []byte(dir)) {
			if has(files, []byte(dir)) {
				return &fs.PathError{Op: "rmdir", Path: dir, Err: ErrNotDir}
			}
			return &fs.PathError{Op: "rmdir", Path: dir, Err: fs.ErrNotExist}
		}
		if len(children(dirs, dir)) > 0 || len(children(files, dir)) > 0 {
			return &fs.PathError{Op: "rmdir", Path: dir, Err: ErrDirNotEmpty}
		}
		return dirs.Delete([]byte(dir))
	})
}
