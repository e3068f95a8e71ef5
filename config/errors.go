// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

package config

import "errors"

var (
	// ErrEmptyRoot indicates the store root directory is empty.
	ErrEmptyRoot = errors.New("config: root directory must not be empty")

	// ErrInvalidSegmentLength indicates the segment length is not positive.
	ErrInvalidSegmentLength = errors.New("config: segment length must be positive")

	// ErrUnknownHash indicates the hash name is not registered.
	ErrUnknownHash = errors.New("config: unknown hash function")

	// ErrInvalidBackend indicates the backend name is not recognized.
	ErrInvalidBackend = errors.New("config: invalid backend (must be \"os\", \"bolt\", or \"memory\")")

	// ErrEmptyBoltPath indicates the bolt backend was selected without a database path.
	ErrEmptyBoltPath = errors.New("config: bolt backend requires bolt_path")

	// ErrInvalidCacheSize indicates a negative digest cache size.
	ErrInvalidCacheSize = errors.New("config: cache size must not be negative")

	// ErrInvalidLogLevel indicates the log level is not recognized.
	ErrInvalidLogLevel = errors.New("config: invalid log level (must be \"debug\", \"info\", \"warn\", or \"error\")")

	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("config: configuration file not found")

	// ErrInvalidConfigFile indicates the configuration file could not be parsed.
	ErrInvalidConfigFile = errors.New("config: invalid configuration file")
)
