// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

package config

import (
	"fmt"
	"strings"

	"github.com/bitfsorg/fsdb-go/digest"
)

// validLogLevels lists the accepted log level strings.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validBackends lists the accepted backend names.
var validBackends = map[string]bool{
	BackendOS:     true,
	BackendBolt:   true,
	BackendMemory: true,
}

// ValidateConfig checks that all configuration values are within acceptable
// ranges and returns the first error encountered, or nil if valid.
func ValidateConfig(cfg Config) error {
	if cfg.Root == "" {
		return ErrEmptyRoot
	}

	if cfg.SegmentLength < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidSegmentLength, cfg.SegmentLength)
	}

	if _, err := digest.Lookup(cfg.Hash); err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownHash, cfg.Hash)
	}

	if !validBackends[cfg.Backend] {
		return ErrInvalidBackend
	}

	if cfg.Backend == BackendBolt && cfg.BoltPath == "" {
		return ErrEmptyBoltPath
	}

	if cfg.CacheSize < 0 {
		return ErrInvalidCacheSize
	}

	if !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		return ErrInvalidLogLevel
	}

	return nil
}
