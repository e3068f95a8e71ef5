// Package pathmap maps keys to locations in a fan-out directory tree.
//
// The digest of a key is cut into fixed-length segments, each of which
// becomes one directory level below the root:
//
//	root/ab/cd/ef/12/key    (digest "abcdef12", segment length 2)
//
// The mapping is a pure function of (root, hash function, segment length),
// so a Mapper built with the same three values always resolves a key to the
// same location.
package pathmap

import (
	"fmt"
	"os"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/bitfsorg/fsdb-go/digest"
)

// Mapper resolves keys to storage paths. It is immutable after construction
// and safe for concurrent use.
type Mapper struct {
	root          string
	hash          digest.Func
	segmentLength int

	cache *lru.Cache[string, string]
}

// Option configures a Mapper.
type Option func(*options)

type options struct {
	segmentLength int
	cacheSize     int
}

// WithSegmentLength sets the number of digest characters per directory level.
func WithSegmentLength(n int) Option {
	return func(o *options) {
		o.segmentLength = n
	}
}

// WithCacheSize enables an LRU cache of n key digests. Zero disables caching.
func WithCacheSize(n int) Option {
	return func(o *options) {
		o.cacheSize = n
	}
}

// NewMapper creates a Mapper rooted at root using hash to digest keys.
func NewMapper(root string, hash digest.Func, opts ...Option) (*Mapper, error) {
	if hash == nil {
		return nil, ErrNilHashFunc
	}

	o := options{segmentLength: DefaultSegmentLength}
	for _, opt := range opts {
		opt(&o)
	}
	if o.segmentLength < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSegmentLength, o.segmentLength)
	}
	if o.cacheSize < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCacheSize, o.cacheSize)
	}

	m := &Mapper{
		root:          root,
		hash:          hash,
		segmentLength: o.segmentLength,
	}
	if o.cacheSize > 0 {
		c, err := lru.New[string, string](o.cacheSize)
		if err != nil {
			return nil, fmt.Errorf("pathmap: create digest cache: %w", err)
		}
		m.cache = c
	}
	return m, nil
}

// Root returns the root directory.
func (m *Mapper) Root() string { return m.root }

// SegmentLength returns the number of digest characters per directory level.
func (m *Mapper) SegmentLength() int { return m.segmentLength }

// Digest validates key and returns its digest.
func (m *Mapper) Digest(key string) (string, error) {
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	if m.cache != nil {
		if d, ok := m.cache.Get(key); ok {
			return d, nil
		}
	}

	d := m.hash(key)
	if err := validateDigest(d, m.segmentLength); err != nil {
		return "", err
	}
	if m.cache != nil {
		m.cache.Add(key, d)
	}
	return d, nil
}

// Path returns the directory holding key, with a trailing separator.
func (m *Mapper) Path(key string) (string, error) {
	d, err := m.Digest(key)
	if err != nil {
		return "", err
	}
	return ComputePath(m.root, d, m.segmentLength), nil
}

// FilePath returns the full path of the file holding key.
func (m *Mapper) FilePath(key string) (string, error) {
	dir, err := m.Path(key)
	if err != nil {
		return "", err
	}
	return dir + key, nil
}

// ValidateKey checks that key can be used as a single path segment.
func ValidateKey(key string) error {
	switch {
	case key == "", key == ".", key == "..":
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	case containsSeparator(key):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidKey, key)
	case strings.IndexByte(key, 0) >= 0:
		return fmt.Errorf("%w: contains NUL", ErrInvalidKey)
	}
	return nil
}

// validateDigest checks that every segment cut from d is a plain directory name.
func validateDigest(d string, segmentLength int) error {
	if d == "" {
		return fmt.Errorf("%w: empty", ErrInvalidDigest)
	}
	if containsSeparator(d) || strings.IndexByte(d, 0) >= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidDigest, d)
	}
	for _, seg := range SplitDigest(d, segmentLength) {
		if seg == "." || seg == ".." {
			return fmt.Errorf("%w: %q yields segment %q", ErrInvalidDigest, d, seg)
		}
	}
	return nil
}

func containsSeparator(s string) bool {
	return strings.IndexByte(s, '/') >= 0 || strings.IndexRune(s, os.PathSeparator) >= 0
}
