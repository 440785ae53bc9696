package archive

import (
	"github.com/hupe1980/bitview"
	"github.com/hupe1980/bitview/snapshot"
)

// DefaultConcurrency is the number of parallel saves SaveAll runs by default.
const DefaultConcurrency = 4

type options struct {
	compression snapshot.Compression
	logger      *bitview.Logger
	metrics     bitview.MetricsCollector
	concurrency int
	ioLimit     int64
	cacheBytes  int64
	namespace   string
}

// Option configures an Archive.
type Option func(*options)

// WithCompression sets the snapshot compression used by Save.
func WithCompression(c snapshot.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *bitview.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics sets the metrics collector. Defaults to NoopMetricsCollector.
func WithMetrics(m bitview.MetricsCollector) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithConcurrency bounds the number of saves running at once.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithIOLimit throttles bytes moved to and from the store. Zero disables
// throttling.
func WithIOLimit(bytesPerSec int64) Option {
	return func(o *options) {
		o.ioLimit = bytesPerSec
	}
}

// WithCache keeps up to capacityBytes of encoded snapshots in memory.
func WithCache(capacityBytes int64) Option {
	return func(o *options) {
		o.cacheBytes = capacityBytes
	}
}

// WithNamespace requires every bitmap name to start with ns.
func WithNamespace(ns string) Option {
	return func(o *options) {
		o.namespace = ns
	}
}

func applyOptions(opts []Option) options {
	o := options{
		compression: snapshot.LZ4,
		logger:      bitview.NoopLogger(),
		metrics:     bitview.NoopMetricsCollector{},
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
