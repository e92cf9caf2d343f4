package keyseq

import "context"

// TypedFuture adapts a Future to a caller's result type R; returned by the
// generic Submit sugar below.
type TypedFuture[R any] struct{ future Future }

// Get blocks until the task completes or ctx is done.
func (t TypedFuture[R]) Get(ctx context.Context) (R, error) {
	v, err := t.future.Get(ctx)
	if err != nil {
		var zero R
		return zero, err
	}
	r, _ := v.(R)
	return r, nil
}

// IsDone reports whether the task has completed.
func (t TypedFuture[R]) IsDone() bool { return t.future.IsDone() }

// Submit is generic sugar over Executor.Submit for a typed result. Go
// interface methods can't introduce new type parameters, so the core
// Executor works in interface{}; Submit/Execute are the typed package-level
// wrappers around it.
func Submit[R any](ex Executor, ctx context.Context, fn func(context.Context) (R, error)) (TypedFuture[R], error) {
	f, err := ex.Submit(ctx, func(ctx context.Context) (interface{}, error) {
		return fn(ctx)
	})
	if err != nil {
		return TypedFuture[R]{}, err
	}
	return TypedFuture[R]{future: f}, nil
}

// Execute is generic sugar over Executor.Execute for a side-effecting task.
func Execute(ex Executor, ctx context.Context, fn func(context.Context) error) error {
	return ex.Execute(ctx, func(ctx context.Context) (interface{}, error) {
		return nil, fn(ctx)
	})
}
