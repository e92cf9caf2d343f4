package keyseq

import (
	"github.com/rs/zerolog"

	"github.com/keyseq/keyseq/metrics"
)

type strategyKind int

const (
	strategyChained strategyKind = iota
	strategyPooledWorker
)

// config holds Factory construction state, assembled via Option closures —
// the same functional-options pattern the teacher's options.go uses,
// generalized from Workers' Config fields (MaxWorkers, buffers, …) to this
// domain's knobs.
type config struct {
	strategy         strategyKind
	maxConcurrency   int64
	pooledPoolSize   uint
	pooledQueueDepth uint
	logger           zerolog.Logger
	metrics          metrics.Provider
	serialize        bool
	keyHasher        any // KeyHasher[K], type-asserted in NewBoundedFactory
}

func defaultConfig() config {
	return config{
		strategy:         strategyChained,
		maxConcurrency:   0, // dispatcher defaults to GOMAXPROCS
		pooledPoolSize:   256,
		pooledQueueDepth: 64,
		logger:           zerolog.Nop(),
		metrics:          metrics.NewNoopProvider(),
	}
}

// Option configures a Factory at construction.
type Option func(*config)

func buildConfig(opts []Option) config {
	c := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c
}

// WithPooledWorkerStrategy selects the pooled-worker lane strategy (spec
// §4.2) instead of the default chained-stage strategy, with a shared
// worker pool capacity of poolSize.
func WithPooledWorkerStrategy(poolSize uint) Option {
	return func(c *config) {
		c.strategy = strategyPooledWorker
		c.pooledPoolSize = poolSize
	}
}

// WithPooledWorkerQueueDepth overrides the per-worker task queue depth
// used by the pooled-worker strategy (default 64). A lane whose backlog
// exceeds this depth applies channel-send backpressure to its callers;
// this bounds memory, it does not affect the ordering or sweep guarantees.
func WithPooledWorkerQueueDepth(depth uint) Option {
	return func(c *config) { c.pooledQueueDepth = depth }
}

// WithMaxConcurrency bounds the dispatcher's global parallelism (spec
// §4.4). Zero, the default, sizes it to runtime.GOMAXPROCS(0).
func WithMaxConcurrency(n int64) Option {
	return func(c *config) { c.maxConcurrency = n }
}

// WithKeyHasher overrides the default FNV-1a bucket hash a bounded-keys
// Factory uses to assign keys to buckets (spec §4.7, §9). No-op for
// NewFactory (unbounded-keys factories never hash).
func WithKeyHasher[K comparable](h KeyHasher[K]) Option {
	return func(c *config) { c.keyHasher = h }
}

// WithLogger overrides the default no-op logger used for the warnings
// spec §7 calls for (a failed predecessor, an abandoned pooled worker).
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithMetrics overrides the default no-op metrics.Provider.
func WithMetrics(mp metrics.Provider) Option {
	return func(c *config) { c.metrics = mp }
}

// WithSerializedSubmission enables the optional global submission-order
// mutex (spec §4.6): entry into the core is serialized across all keys,
// but the mutex is never held across task execution. Off by default.
func WithSerializedSubmission() Option {
	return func(c *config) { c.serialize = true }
}
