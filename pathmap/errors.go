package pathmap

import "errors"

var (
	// ErrInvalidSegmentLength indicates the segment length is not a positive integer.
	ErrInvalidSegmentLength = errors.New("pathmap: segment length must be positive")

	// ErrNilHashFunc indicates no hash function was supplied.
	ErrNilHashFunc = errors.New("pathmap: hash function must not be nil")

	// ErrInvalidKey indicates the key cannot be used as a file name.
	ErrInvalidKey = errors.New("pathmap: invalid key")

	// ErrInvalidDigest indicates the hash function produced an unusable digest.
	ErrInvalidDigest = errors.New("pathmap: invalid digest")

	// ErrInvalidCacheSize indicates a negative digest cache size.
	ErrInvalidCacheSize = errors.New("pathmap: cache size must not be negative")
)
