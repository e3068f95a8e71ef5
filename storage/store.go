// Package storage implements a key-value store on top of a fan-out
// directory tree.
//
// Each value lives in its own file at root/seg1/.../segN/key, where the
// segments are cut from the digest of the key (see package pathmap). The file
// holds the raw value with no header or framing, so any implementation that
// computes the same paths can read an existing store.
//
// The Store adds no locking. Concurrent Put and Delete calls on the same key
// race: the last writer wins, and a Delete's cleanup may remove a directory a
// concurrent Put is about to write into, failing that Put with ErrIOFailure.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/bitfsorg/fsdb-go/digest"
	"github.com/bitfsorg/fsdb-go/pathmap"
)

// Operation names reported to Metrics.
const (
	OpPut    = "put"
	OpGet    = "get"
	OpDelete = "delete"
)

// Store maps keys to files under a root directory.
type Store struct {
	root   string
	mapper *pathmap.Mapper

	fs       FS
	dirPerm  fs.FileMode
	filePerm fs.FileMode
	log      *zap.Logger
	metrics  Metrics
}

// New creates a Store rooted at root, placing each key according to hash.
// The root directory is created if it does not exist.
func New(root string, hash digest.Func, opts ...Option) (*Store, error) {
	if root == "" {
		return nil, ErrInvalidBaseDir
	}
	root = filepath.Clean(root)

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	mapper, err := pathmap.NewMapper(root, hash,
		pathmap.WithSegmentLength(o.segmentLength),
		pathmap.WithCacheSize(o.cacheSize),
	)
	if err != nil {
		return nil, err
	}

	if err := o.fs.MkdirAll(root, o.dirPerm); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}

	return &Store{
		root:     root,
		mapper:   mapper,
		fs:       o.fs,
		dirPerm:  o.dirPerm,
		filePerm: o.filePerm,
		log:      o.log,
		metrics:  o.metrics,
	}, nil
}

// Root returns the cleaned root directory.
func (s *Store) Root() string { return s.root }

// Mapper returns the key-to-path mapper.
func (s *Store) Mapper() *pathmap.Mapper { return s.mapper }

// Path returns the file path that holds key.
func (s *Store) Path(key string) (string, error) {
	return s.mapper.FilePath(key)
}

// Put writes value for key, replacing any existing value. Missing parent
// directories are created.
func (s *Store) Put(key string, value []byte) (err error) {
	start := time.Now()
	defer func() { s.metrics.AddOp(OpPut, err == nil, time.Since(start)) }()

	dir, err := s.mapper.Path(key)
	if err != nil {
		return err
	}
	if err := s.fs.MkdirAll(dir, s.dirPerm); err != nil {
		return ioError(err)
	}
	if err := s.fs.WriteFile(dir+key, value, s.filePerm); err != nil {
		return ioError(err)
	}

	s.log.Debug("stored value",
		zap.String("key", key),
		zap.String("dir", dir),
		zap.Int("size", len(value)))
	return nil
}

// Get returns the value stored for key. It returns ErrNotFound if the key
// has no value and ErrIOFailure if the file exists but cannot be read.
func (s *Store) Get(key string) (data []byte, err error) {
	start := time.Now()
	defer func() {
		s.metrics.AddOp(OpGet, err == nil || errors.Is(err, ErrNotFound), time.Since(start))
	}()

	name, err := s.mapper.FilePath(key)
	if err != nil {
		return nil, err
	}
	data, err = s.fs.ReadFile(name)
	if err != nil {
		if isNotExist(err) {
			return nil, fmt.Errorf("%w: key %q", ErrNotFound, key)
		}
		return nil, ioError(err)
	}
	return data, nil
}

// Retrieve returns the value stored for key and true, or nil and false if
// there is none. Read faults are logged and reported as absent.
func (s *Store) Retrieve(key string) ([]byte, bool) {
	data, err := s.Get(key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Warn("retrieve failed, reporting value as absent",
				zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return data, true
}

// Delete removes the value for key. Deleting a missing key is a no-op. When
// cleanup is set, directories left empty by the removal are deleted up to,
// but not including, the root. Only a failure during cleanup is returned.
func (s *Store) Delete(key string, cleanup bool) (err error) {
	start := time.Now()
	defer func() { s.metrics.AddOp(OpDelete, err == nil, time.Since(start)) }()

	dir, err := s.mapper.Path(key)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(dir + key); err != nil {
		if !isNotExist(err) {
			s.log.Warn("remove failed, ignoring",
				zap.String("key", key), zap.Error(err))
		}
		return nil
	}

	s.log.Debug("deleted value", zap.String("key", key), zap.Bool("cleanup", cleanup))
	if !cleanup {
		return nil
	}
	return s.prune(dir)
}

// Remove deletes the value for key and cleans up empty directories.
func (s *Store) Remove(key string) error {
	return s.Delete(key, true)
}

// prune removes dir and each parent that is left empty, stopping below root.
func (s *Store) prune(dir string) error {
	removed := 0
	defer func() {
		if removed > 0 {
			s.metrics.AddRemovedDirs(removed)
		}
	}()

	for p := filepath.Clean(dir); s.within(p); p = filepath.Dir(p) {
		names, err := s.fs.ReadDirNames(p)
		if err != nil {
			if isNotExist(err) {
				return nil
			}
			return fmt.Errorf("%w: list %s: %w", ErrIOFailure, p, err)
		}
		if len(names) > 0 {
			return nil
		}
		if err := s.fs.RemoveDir(p); err != nil {
			if isNotExist(err) {
				return nil
			}
			return fmt.Errorf("%w: remove %s: %w", ErrIOFailure, p, err)
		}
		removed++
		s.log.Debug("removed empty directory", zap.String("dir", p))
	}
	return nil
}

// within reports whether p lies strictly below the root.
func (s *Store) within(p string) bool {
	rel, err := filepath.Rel(s.root, p)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// isNotExist treats a missing entry and a file in place of a parent
// directory alike.
func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) || errors.Is(err, ErrNotDir)
}

func ioError(err error) error {
	if errors.Is(err, syscall.ENOSPC) {
		return fmt.Errorf("%w: %w: %w", ErrIOFailure, ErrStoreFull, err)
	}
	return fmt.Errorf("%w: %w", ErrIOFailure, err)
}
