package digest

import "errors"

var (
	// ErrUnknownHash indicates no digest function is registered under a name.
	ErrUnknownHash = errors.New("digest: unknown hash function")
)
