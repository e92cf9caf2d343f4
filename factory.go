package keyseq

import (
	"sync"
	"sync/atomic"
)

// Stats reports point-in-time introspection over a Factory's lane
// registry — added because a complete implementation needs some way to
// observe "no lane leak" (Testable Property 4) and "registry drains"
// (scenario S6) from outside the package. Grounded on the
// lbaominh-dev-goclaw scheduler's LaneStats/AllStats shape.
type Stats struct {
	ActiveLanes  int
	LanesCreated int64
	LanesSwept   int64
}

// Factory hands out per-key Executor handles (spec §4.7). Call Close to
// tear down the shared dispatcher once every key is done with it.
type Factory[K comparable] interface {
	// Handle returns a stable handle for key; submissions via any handle
	// for the same key serialize with each other.
	Handle(key K) Executor

	// Close closes the shared dispatcher. Previously handed-out handles
	// report IsShutdown/IsTerminated true afterward.
	Close() error

	// Stats reports the current lane registry state.
	Stats() Stats
}

// core holds the state shared by every handle a Factory mints: the lane
// strategy, the dispatcher, and (if enabled) the submission-order mutex.
// It is a per-factory instance, never process-wide global state (spec §9).
type core[K comparable] struct {
	strategy laneStrategy[K]
	disp     *dispatcher
	submitMu *sync.Mutex
	closed   atomic.Bool
}

func (c *core[K]) handle(key K) Executor {
	var ex Executor = &keyExecutor[K]{core: c, key: key}
	if c.submitMu != nil {
		ex = &serializingExecutor{Executor: ex, mu: c.submitMu}
	}
	return &shutdownDisabledExecutor{Executor: ex}
}

func (c *core[K]) close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.disp.close()
}

func (c *core[K]) stats() Stats {
	return Stats{
		ActiveLanes:  c.strategy.activeLanes(),
		LanesCreated: c.strategy.lanesCreated(),
		LanesSwept:   c.strategy.lanesSwept(),
	}
}

func newCore[K comparable](c config) *core[K] {
	disp := newDispatcher(c.maxConcurrency, c.metrics)

	var strat laneStrategy[K]
	switch c.strategy {
	case strategyPooledWorker:
		strat = newPooledStrategy[K](disp, c.pooledPoolSize, c.pooledQueueDepth, c.logger)
	default:
		strat = newChainedStrategy[K](disp, c.logger)
	}

	var mu *sync.Mutex
	if c.serialize {
		mu = &sync.Mutex{}
	}

	return &core[K]{strategy: strat, disp: disp, submitMu: mu}
}

// unboundedFactory gives every distinct key its own lane; concurrency
// across keys is bounded only by the dispatcher (spec §4.7).
type unboundedFactory[K comparable] struct{ core *core[K] }

func (f *unboundedFactory[K]) Handle(key K) Executor { return f.core.handle(key) }
func (f *unboundedFactory[K]) Close() error          { return f.core.close() }
func (f *unboundedFactory[K]) Stats() Stats          { return f.core.stats() }

// boundedFactory caps the number of simultaneously active lanes at
// buckets by hashing each key into [0, buckets) and sharing a lane across
// collisions (spec §4.7, §9 bucket assignment).
type boundedFactory[K comparable] struct {
	core    *core[int]
	hash    KeyHasher[K]
	buckets int
}

func (f *boundedFactory[K]) Handle(key K) Executor {
	bucket := int(f.hash(key) % uint64(f.buckets))
	return f.core.handle(bucket)
}
func (f *boundedFactory[K]) Close() error { return f.core.close() }
func (f *boundedFactory[K]) Stats() Stats { return f.core.stats() }

// NewFactory constructs an unbounded-keys Factory: every distinct key
// gets its own lane, by default using the chained-stage strategy.
func NewFactory[K comparable](opts ...Option) Factory[K] {
	c := buildConfig(opts)
	return &unboundedFactory[K]{core: newCore[K](c)}
}

// NewBoundedFactory constructs a bounded-keys Factory: at most
// maxActiveLanes lanes are ever simultaneously active, keys hashing to
// the same bucket sharing a lane (spec §4.7). maxActiveLanes must be a
// positive integer.
func NewBoundedFactory[K comparable](maxActiveLanes int, opts ...Option) (Factory[K], error) {
	if maxActiveLanes <= 0 {
		return nil, ErrInvalidArgument
	}
	c := buildConfig(opts)

	hasher := defaultKeyHasher[K]()
	if c.keyHasher != nil {
		if h, ok := c.keyHasher.(KeyHasher[K]); ok {
			hasher = h
		}
	}

	return &boundedFactory[K]{
		core:    newCore[int](c),
		hash:    hasher,
		buckets: maxActiveLanes,
	}, nil
}
