package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bitfsorg/fsdb-go/config"
	"github.com/bitfsorg/fsdb-go/digest"
	"github.com/bitfsorg/fsdb-go/logger"
	"github.com/bitfsorg/fsdb-go/storage"
)

// env is an opened store together with what is needed to shut it down.
type env struct {
	cfg   config.Config
	store *storage.Store
	log   *zap.Logger
	close func() error
}

func (e *env) Close() error {
	_ = e.log.Sync()
	return e.close()
}

// openEnv resolves the configuration for cmd and opens the store it names.
func openEnv(cmd *cobra.Command, opts ...storage.Option) (*env, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return nil, err
	}
	return openStore(cfg, opts...)
}

func openStore(cfg config.Config, opts ...storage.Option) (*env, error) {
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	hash, err := digest.Lookup(cfg.Hash)
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg, log: log, close: func() error { return nil }}

	var fsys storage.FS
	switch cfg.Backend {
	case config.BackendOS:
		fsys = storage.OSFS{}
	case config.BackendMemory:
		fsys = storage.NewMemFS()
	case config.BackendBolt:
		b, err := storage.OpenBoltFS(cfg.BoltPath)
		if err != nil {
			return nil, err
		}
		fsys = b
		e.close = b.Close
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidBackend, cfg.Backend)
	}

	opts = append([]storage.Option{
		storage.WithSegmentLength(cfg.SegmentLength),
		storage.WithDigestCache(cfg.CacheSize),
		storage.WithFS(fsys),
		storage.WithLogger(log),
	}, opts...)

	e.store, err = storage.New(cfg.Root, hash, opts...)
	if err != nil {
		_ = e.close()
		return nil, err
	}
	log.Debug("opened store",
		zap.String("root", e.store.Root()),
		zap.String("hash", cfg.Hash),
		zap.Int("segment_length", cfg.SegmentLength),
		zap.String("backend", cfg.Backend))
	return e, nil
}
