package keyseq

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/keyseq/keyseq/metrics"
)

// dispatcher is the shared worker pool every lane ultimately executes
// onto (spec §4.4): it bounds global parallelism so a system with millions
// of distinct keys still runs on a fixed number of concurrent executions.
// Concurrency is bounded with a weighted semaphore, grounded on
// abcxyz-pkg/workerpool.Pool, rather than the teacher's channel-juggling
// pool.fixed trick — pool.fixed is kept for what it is actually good at,
// the pooled-worker strategy's bounded worker reuse (lane_pooled.go); a
// single timing-metadata struct recycled purely for GC pressure has no
// capacity bound to enforce, so it is reused via a plain sync.Pool here
// rather than through the pool.Pool indirection.
type dispatcher struct {
	sem    *semaphore.Weighted
	leases sync.Pool

	inflight   metrics.UpDownCounter
	dispatched metrics.Counter
	execTime   metrics.Histogram

	wg     sync.WaitGroup
	closed atomic.Bool
}

type execLease struct {
	start time.Time
}

// newDispatcher builds a dispatcher admitting at most maxConcurrency
// concurrent executions. maxConcurrency<=0 defaults to GOMAXPROCS.
func newDispatcher(maxConcurrency int64, mp metrics.Provider) *dispatcher {
	if maxConcurrency <= 0 {
		maxConcurrency = int64(runtime.GOMAXPROCS(0))
	}
	if mp == nil {
		mp = metrics.NewNoopProvider()
	}
	return &dispatcher{
		sem:        semaphore.NewWeighted(maxConcurrency),
		leases:     sync.Pool{New: func() interface{} { return &execLease{} }},
		inflight:   mp.UpDownCounter("keyseq_dispatcher_inflight"),
		dispatched: mp.Counter("keyseq_dispatcher_dispatched_total"),
		execTime:   mp.Histogram("keyseq_dispatcher_exec_seconds"),
	}
}

// run acquires a dispatcher slot and executes env synchronously, blocking
// the calling goroutine until the task completes. It returns an error
// without ever invoking env's function when the dispatcher is already
// closed or ctx is already done; the caller is responsible for resolving
// env via fail in that case.
func (d *dispatcher) run(ctx context.Context, env *taskEnvelope) error {
	if d.closed.Load() {
		return ErrFactoryClosed
	}
	if err := d.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	d.wg.Add(1)
	defer d.wg.Done()
	defer d.sem.Release(1)

	lease := d.leases.Get().(*execLease)
	lease.start = time.Now()
	d.inflight.Add(1)
	d.dispatched.Add(1)

	env.run(ctx)

	d.inflight.Add(-1)
	d.execTime.Record(time.Since(lease.start).Seconds())
	d.leases.Put(lease)
	return nil
}

// close forbids further executions and waits for in-flight ones to finish.
func (d *dispatcher) close() error {
	if !d.closed.CompareAndSwap(false, true) {
		return nil
	}
	d.wg.Wait()
	return nil
}
