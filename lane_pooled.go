package keyseq

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/keyseq/keyseq/pool"
)

// pooledTask is one lane append queued onto a borrowed worker. key is
// stored as any because pooledWorker is manufactured through pool.Pool's
// func() interface{} newFn and so cannot itself be parameterized by K;
// onDone (bound at worker-creation time, see newPooledStrategy) type
//-asserts it back.
type pooledTask struct {
	ctx context.Context
	key any
	env *taskEnvelope
}

// pooledWorker is a single-threaded worker borrowed from a shared pool:
// never two tasks at once, and its loop goroutine lives for the worker's
// entire lifetime, moving between keys across successive borrows (spec
// §4.2). Grounded on the mycelian-ai shardqueue's per-shard worker loop.
type pooledWorker struct {
	tasks chan pooledTask
}

func newPooledWorker(queueDepth uint) *pooledWorker {
	return &pooledWorker{tasks: make(chan pooledTask, queueDepth)}
}

func (w *pooledWorker) loop(disp *dispatcher, onDone func(pooledTask)) {
	for pt := range w.tasks {
		if err := disp.run(pt.ctx, pt.env); err != nil {
			pt.env.fail(err)
		}
		onDone(pt)
	}
}

// pooledEntry is the registry value for one key under the pooled-worker
// strategy: the borrowed worker and its exact pending-task count. pending
// is only ever read or written from inside a registry.compute callback,
// so it needs no lock of its own (spec §4.2, §4.3).
type pooledEntry struct {
	worker  *pooledWorker
	pending int
}

// pooledStrategy implements the pooled-worker lane (spec §4.2): append
// enqueues onto the key's current worker (borrowing a fresh one on first
// use), and the worker's completion listener runs the sweep check after
// every task.
type pooledStrategy[K comparable] struct {
	reg        *registry[K]
	disp       *dispatcher
	workerPool pool.BoundedPool
	logger     zerolog.Logger

	created atomic.Int64
	swept   atomic.Int64
}

func newPooledStrategy[K comparable](disp *dispatcher, poolSize, queueDepth uint, logger zerolog.Logger) *pooledStrategy[K] {
	s := &pooledStrategy[K]{reg: newRegistry[K](), disp: disp, logger: logger}
	s.workerPool = pool.NewFixed(poolSize, func() interface{} {
		w := newPooledWorker(queueDepth)
		go w.loop(disp, func(pt pooledTask) { s.onTaskDone(pt.key.(K)) })
		return w
	})
	return s
}

// submit enqueues env onto the key's current worker. The hand-off itself
// — not just the pending-count bookkeeping — happens inside the same
// registry.compute critical section as the append: two goroutines racing
// to append under the same key are linearized by the registry lock, and
// if the channel send happened after that lock were released, nothing
// would stop the second goroutine's send from reaching the worker before
// the first's, reordering the lane. Sending here keeps append order and
// hand-off order identical at the cost of briefly holding the registry's
// single mutex across a (normally non-blocking, queueDepth-buffered)
// channel send — the same trade-off workerPool.Get already makes on a
// fresh key.
func (s *pooledStrategy[K]) submit(ctx context.Context, key K, env *taskEnvelope) {
	s.reg.compute(key, func(existing any, ok bool) any {
		var w *pooledWorker
		if ok {
			e := existing.(*pooledEntry)
			e.pending++
			w = e.worker
			w.tasks <- pooledTask{ctx: ctx, key: key, env: env}
			return e
		}
		s.created.Add(1)
		w = s.workerPool.Get().(*pooledWorker)
		w.tasks <- pooledTask{ctx: ctx, key: key, env: env}
		return &pooledEntry{worker: w, pending: 1}
	})
}

// onTaskDone is the completion listener driving the sweep (spec §4.3
// pooled-worker rule): pending is read and, if it has reached exactly
// zero, the worker is returned to the pool and the entry removed, all
// inside the same atomic registry update that append uses.
func (s *pooledStrategy[K]) onTaskDone(key K) {
	s.reg.compute(key, func(existing any, ok bool) any {
		if !ok {
			return nil
		}
		e := existing.(*pooledEntry)
		e.pending--
		if e.pending == 0 {
			if !s.workerPool.TryPut(e.worker) {
				s.logger.Warn().Msg("abandoned pooled worker: pool at capacity")
			}
			s.swept.Add(1)
			return nil
		}
		return e
	})
}

func (s *pooledStrategy[K]) activeLanes() int    { return s.reg.size() }
func (s *pooledStrategy[K]) lanesCreated() int64 { return s.created.Load() }
func (s *pooledStrategy[K]) lanesSwept() int64   { return s.swept.Load() }
