// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

// ---------------------------------------------------------------------------
// DefaultConfig tests
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"Root", cfg.Root, "./storage_root"},
		{"SegmentLength", cfg.SegmentLength, 2},
		{"Hash", cfg.Hash, "md5"},
		{"Backend", cfg.Backend, "os"},
		{"CacheSize", cfg.CacheSize, 0},
		{"LogLevel", cfg.LogLevel, "info"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Errorf("got %v, want %v", tc.got, tc.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// SaveConfig / LoadConfig round-trip tests
// ---------------------------------------------------------------------------

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fsdb.yaml")

	original := Config{
		Root:          "/tmp/test-fsdb",
		SegmentLength: 3,
		Hash:          "sha256",
		Backend:       "bolt",
		BoltPath:      "/tmp/test-fsdb.bolt",
		CacheSize:     128,
		LogLevel:      "debug",
	}

	if err := SaveConfig(path, original); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if loaded != original {
		t.Errorf("LoadConfig = %+v, want %+v", loaded, original)
	}
}

func TestSaveConfigCreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subdir", "fsdb.yaml")

	cfg := DefaultConfig()
	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig should create parent dirs: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("Config file not created: %v", err)
	}
}

// ---------------------------------------------------------------------------
// LoadConfig error tests
// ---------------------------------------------------------------------------

func TestLoadConfigNotFound(t *testing.T) {
	_, err := LoadConfig("/nonexistent/path/fsdb.yaml")
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("LoadConfig nonexistent: got %v, want ErrConfigNotFound", err)
	}

	_, err = LoadConfig("")
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("LoadConfig empty path: got %v, want ErrConfigNotFound", err)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fsdb.yaml")

	if err := os.WriteFile(path, []byte("root: [unterminated\n"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadConfig(path)
	if !errors.Is(err, ErrInvalidConfigFile) {
		t.Errorf("LoadConfig bad yaml: got %v, want ErrInvalidConfigFile", err)
	}
}

func TestLoadConfigPartialFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fsdb.yaml")

	content := `# only some settings
root: /srv/fsdb
hash: blake2b
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Root != "/srv/fsdb" {
		t.Errorf("Root = %q, want %q", cfg.Root, "/srv/fsdb")
	}
	if cfg.Hash != "blake2b" {
		t.Errorf("Hash = %q, want %q", cfg.Hash, "blake2b")
	}
	// Unset fields should retain defaults.
	if cfg.SegmentLength != 2 {
		t.Errorf("SegmentLength = %d, want default 2", cfg.SegmentLength)
	}
}

func TestLoadConfigInvalidValue(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fsdb.yaml")

	if err := os.WriteFile(path, []byte("segment_length: 0\n"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadConfig(path)
	if !errors.Is(err, ErrInvalidSegmentLength) {
		t.Errorf("LoadConfig segment_length 0: got %v, want ErrInvalidSegmentLength", err)
	}
}

// ---------------------------------------------------------------------------
// Load precedence tests
// ---------------------------------------------------------------------------

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("Load = %+v, want defaults", cfg)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fsdb.yaml")

	if err := os.WriteFile(path, []byte("segment_length: 3\nhash: sha1\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FSDB_SEGMENT_LENGTH", "4")

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SegmentLength != 4 {
		t.Errorf("SegmentLength = %d, want 4 from env", cfg.SegmentLength)
	}
	if cfg.Hash != "sha1" {
		t.Errorf("Hash = %q, want %q from file", cfg.Hash, "sha1")
	}
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	t.Setenv("FSDB_ROOT", "/from/env")
	t.Setenv("FSDB_HASH", "sha3")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("root", "", "")
	flags.String("hash", "", "")
	flags.Int("segment-length", 0, "")
	if err := flags.Parse([]string{"--root", "/from/flag"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("", flags)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Root != "/from/flag" {
		t.Errorf("Root = %q, want %q", cfg.Root, "/from/flag")
	}
	if cfg.Hash != "sha3" {
		t.Errorf("Hash = %q, want %q from env", cfg.Hash, "sha3")
	}
	// An unset flag must not replace the default with its zero value.
	if cfg.SegmentLength != 2 {
		t.Errorf("SegmentLength = %d, want default 2", cfg.SegmentLength)
	}
}

// ---------------------------------------------------------------------------
// ValidateConfig tests
// ---------------------------------------------------------------------------

func TestValidateConfigDefaults(t *testing.T) {
	cfg := DefaultConfig()
	if err := ValidateConfig(cfg); err != nil {
		t.Errorf("ValidateConfig(DefaultConfig()) = %v, want nil", err)
	}
}

func TestValidateConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{"empty root", func(c *Config) { c.Root = "" }, ErrEmptyRoot},
		{"zero segment length", func(c *Config) { c.SegmentLength = 0 }, ErrInvalidSegmentLength},
		{"negative segment length", func(c *Config) { c.SegmentLength = -2 }, ErrInvalidSegmentLength},
		{"unknown hash", func(c *Config) { c.Hash = "crc32" }, ErrUnknownHash},
		{"unknown backend", func(c *Config) { c.Backend = "s3" }, ErrInvalidBackend},
		{"bolt without path", func(c *Config) { c.Backend = "bolt" }, ErrEmptyBoltPath},
		{"negative cache", func(c *Config) { c.CacheSize = -1 }, ErrInvalidCacheSize},
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }, ErrInvalidLogLevel},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.modify(&cfg)
			err := ValidateConfig(cfg)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("ValidateConfig() = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestValidateConfigAcceptsAllBackends(t *testing.T) {
	for _, backend := range []string{"os", "bolt", "memory"} {
		cfg := DefaultConfig()
		cfg.Backend = backend
		cfg.BoltPath = "/tmp/fsdb.bolt"
		if err := ValidateConfig(cfg); err != nil {
			t.Errorf("ValidateConfig(backend=%s) = %v, want nil", backend, err)
		}
	}
}
