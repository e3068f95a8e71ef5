// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

// Package config loads and validates fsdb store settings.
//
// Settings are resolved from, in decreasing priority: command-line flags,
// FSDB_* environment variables, a YAML file, and DefaultConfig.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variables that override settings.
const EnvPrefix = "FSDB"

// Backend names.
const (
	BackendOS     = "os"
	BackendBolt   = "bolt"
	BackendMemory = "memory"
)

// Setting keys as they appear in the YAML file.
const (
	keyRoot          = "root"
	keySegmentLength = "segment_length"
	keyHash          = "hash"
	keyBackend       = "backend"
	keyBoltPath      = "bolt_path"
	keyCacheSize     = "cache_size"
	keyLogLevel      = "log_level"
)

// FlagNames maps setting keys to the command-line flags bound by Load.
var FlagNames = map[string]string{
	keyRoot:          "root",
	keySegmentLength: "segment-length",
	keyHash:          "hash",
	keyBackend:       "backend",
	keyBoltPath:      "bolt-path",
	keyCacheSize:     "cache-size",
	keyLogLevel:      "log-level",
}

// Config holds the settings of one store instance.
type Config struct {
	Root          string `mapstructure:"root" yaml:"root"`
	SegmentLength int    `mapstructure:"segment_length" yaml:"segment_length"`
	Hash          string `mapstructure:"hash" yaml:"hash"`
	Backend       string `mapstructure:"backend" yaml:"backend"`
	BoltPath      string `mapstructure:"bolt_path" yaml:"bolt_path,omitempty"`
	CacheSize     int    `mapstructure:"cache_size" yaml:"cache_size"`
	LogLevel      string `mapstructure:"log_level" yaml:"log_level"`
}

// DefaultConfig returns the settings used when nothing else is given.
func DefaultConfig() Config {
	return Config{
		Root:          "./storage_root",
		SegmentLength: 2,
		Hash:          "md5",
		Backend:       BackendOS,
		CacheSize:     0,
		LogLevel:      "info",
	}
}

// LoadConfig reads settings from the YAML file at path, applying
// environment overrides. The file must exist.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, ErrConfigNotFound
	}
	return Load(path, nil)
}

// Load resolves settings from flags, environment, the optional YAML file at
// path and the defaults, then validates the result. Only flags listed in
// FlagNames that were explicitly set take effect.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	def := DefaultConfig()
	v.SetDefault(keyRoot, def.Root)
	v.SetDefault(keySegmentLength, def.SegmentLength)
	v.SetDefault(keyHash, def.Hash)
	v.SetDefault(keyBackend, def.Backend)
	v.SetDefault(keyBoltPath, def.BoltPath)
	v.SetDefault(keyCacheSize, def.CacheSize)
	v.SetDefault(keyLogLevel, def.LogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range FlagNames {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("config: bind flag %q: %w", name, err)
			}
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
			}
			return Config{}, fmt.Errorf("config: stat %s: %w", path, err)
		}
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfigFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfigFile, err)
	}
	if err := ValidateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SaveConfig writes cfg as YAML to path, creating parent directories.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
