package storage

import (
	"errors"

	"github.com/bitfsorg/fsdb-go/pathmap"
)

var (
	// ErrNotFound indicates no value exists for the given key.
	ErrNotFound = errors.New("storage: value not found")

	// ErrStoreFull indicates disk space is exhausted.
	ErrStoreFull = errors.New("storage: disk space exhausted")

	// ErrIOFailure indicates a file or directory operation failed.
	ErrIOFailure = errors.New("storage: I/O failure")

	// ErrInvalidBaseDir indicates the root directory path is invalid.
	ErrInvalidBaseDir = errors.New("storage: invalid base directory")

	// ErrDirNotEmpty indicates an attempt to remove a directory that still has entries.
	ErrDirNotEmpty = errors.New("storage: directory not empty")

	// ErrIsDir indicates a file operation was attempted on a directory.
	ErrIsDir = errors.New("storage: is a directory")

	// ErrNotDir indicates a directory operation was attempted on a file.
	ErrNotDir = errors.New("storage: not a directory")
)

// Key and digest validation errors are shared with pathmap so callers can
// match them from either package.
var (
	ErrInvalidKey           = pathmap.ErrInvalidKey
	ErrInvalidDigest        = pathmap.ErrInvalidDigest
	ErrInvalidSegmentLength = pathmap.ErrInvalidSegmentLength
	ErrNilHashFunc          = pathmap.ErrNilHashFunc
)
