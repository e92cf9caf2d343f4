package keyseq

import "context"

// Future is the result handle returned by Submit; it resolves to the
// task's result or failure once the task completes.
type Future interface {
	// Get blocks until the task completes or ctx is done.
	Get(ctx context.Context) (interface{}, error)
	// IsDone reports whether the task has completed.
	IsDone() bool
}

// Executor is a per-key handle: every task submitted through it runs
// strictly one at a time, in submission order, under whichever key minted
// this handle (spec §1, §3 Lane invariants). InvokeAll/InvokeAny bypass
// that per-key ordering and run directly on the shared dispatcher — see
// SPEC_FULL.md's Open Question decision and bulk.go.
type Executor interface {
	Execute(ctx context.Context, fn func(context.Context) (interface{}, error)) error
	Submit(ctx context.Context, fn func(context.Context) (interface{}, error)) (Future, error)
	InvokeAll(ctx context.Context, fns []func(context.Context) (interface{}, error)) ([]Future, error)
	InvokeAny(ctx context.Context, fns []func(context.Context) (interface{}, error)) (interface{}, error)
	Shutdown() error
	ShutdownNow() error
	IsShutdown() bool
	IsTerminated() bool
}

// laneStrategy is the contract both lane strategies (chained-stage,
// pooled-worker) implement, selected at Factory construction (spec §9
// "dynamic dispatch over the strategy choice").
type laneStrategy[K comparable] interface {
	submit(ctx context.Context, key K, env *taskEnvelope)
	activeLanes() int
	lanesCreated() int64
	lanesSwept() int64
}

// keyExecutor is the concrete Executor bound to one key of one Factory. It
// is never handed out directly — Factory.Handle always wraps it in a
// shutdownDisabledExecutor (and, if WithSerializedSubmission was set, a
// serializingExecutor first).
type keyExecutor[K comparable] struct {
	core *core[K]
	key  K
}

func (e *keyExecutor[K]) Submit(ctx context.Context, fn func(context.Context) (interface{}, error)) (Future, error) {
	if fn == nil {
		return nil, ErrInvalidArgument
	}
	if e.core.closed.Load() {
		return nil, ErrFactoryClosed
	}
	env := newTaskEnvelope(fn)
	env.key = e.key
	e.core.strategy.submit(ctx, e.key, env)
	return env, nil
}

func (e *keyExecutor[K]) Execute(ctx context.Context, fn func(context.Context) (interface{}, error)) error {
	_, err := e.Submit(ctx, fn)
	return err
}

func (e *keyExecutor[K]) InvokeAll(ctx context.Context, fns []func(context.Context) (interface{}, error)) ([]Future, error) {
	return bulkInvokeAll(ctx, e.core.disp, fns)
}

func (e *keyExecutor[K]) InvokeAny(ctx context.Context, fns []func(context.Context) (interface{}, error)) (interface{}, error) {
	return bulkInvokeAny(ctx, e.core.disp, fns)
}

func (e *keyExecutor[K]) Shutdown() error    { return ErrUnsupported }
func (e *keyExecutor[K]) ShutdownNow() error { return ErrUnsupported }
func (e *keyExecutor[K]) IsShutdown() bool   { return e.core.closed.Load() }
func (e *keyExecutor[K]) IsTerminated() bool { return e.core.closed.Load() }
