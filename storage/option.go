package storage

import (
	"io/fs"
	"time"

	"go.uber.org/zap"
)

// Metrics collects Store operation statistics.
type Metrics interface {
	// AddOp records one completed operation. op is "put", "get" or "delete".
	AddOp(op string, success bool, d time.Duration)

	// AddRemovedDirs records directories removed by delete cleanup.
	AddRemovedDirs(n int)
}

type noopMetrics struct{}

func (noopMetrics) AddOp(string, bool, time.Duration) {}
func (noopMetrics) AddRemovedDirs(int)                {}

// Option configures a Store.
type Option func(*options)

type options struct {
	segmentLength int
	cacheSize     int
	fs            FS
	dirPerm       fs.FileMode
	filePerm      fs.FileMode
	log           *zap.Logger
	metrics       Metrics
}

func defaultOptions() options {
	return options{
		segmentLength: 2,
		fs:            OSFS{},
		dirPerm:       0700,
		filePerm:      0600,
		log:           zap.NewNop(),
		metrics:       noopMetrics{},
	}
}

// WithSegmentLength sets the number of digest characters per directory level.
func WithSegmentLength(n int) Option {
	return func(o *options) {
		o.segmentLength = n
	}
}

// WithDigestCache memoises up to n key digests.
func WithDigestCache(n int) Option {
	return func(o *options) {
		o.cacheSize = n
	}
}

// WithFS sets the filesystem the store operates on. Defaults to OSFS.
func WithFS(f FS) Option {
	return func(o *options) {
		if f != nil {
			o.fs = f
		}
	}
}

// WithPerm sets the permission bits for created directories and files.
func WithPerm(dir, file fs.FileMode) Option {
	return func(o *options) {
		o.dirPerm = dir
		o.filePerm = file
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m Metrics) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}
