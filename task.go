package keyseq

import (
	"context"
	"fmt"
	"sync"
)

// taskEnvelope wraps one caller-supplied unit of work. It is both the
// internal lane element and the Future the caller holds: its done channel
// is the completion signal a chained successor waits behind and the sweep
// waits on (spec §3 Task envelope, §4.1).
type taskEnvelope struct {
	fn   func(context.Context) (interface{}, error)
	done chan struct{}
	once sync.Once

	// key is the sequence key this task was submitted under, set by
	// keyExecutor.Submit. Left nil for envelopes with no lane of their
	// own (bulk.go, and tests that exercise a strategy directly), in
	// which case outcomes are never tagged with a SequenceError.
	key any

	result interface{}
	err    error
}

func newTaskEnvelope(fn func(context.Context) (interface{}, error)) *taskEnvelope {
	return &taskEnvelope{fn: fn, done: make(chan struct{})}
}

// run executes fn and records its outcome, recovering a panic into
// ErrTaskPanicked and tagging any error with the task's sequence key (spec
// §7). Only the first call has any effect.
func (e *taskEnvelope) run(ctx context.Context) {
	e.once.Do(func() {
		defer func() {
			if r := recover(); r != nil {
				e.err = fmt.Errorf("%w: %v", ErrTaskPanicked, r)
			}
			if e.err != nil && e.key != nil {
				e.err = newSequenceError(e.err, e.key)
			}
			close(e.done)
		}()
		e.result, e.err = e.fn(ctx)
	})
}

// fail records err as this task's outcome without ever invoking fn. Used
// when the dispatcher cannot start the task at all (already closed, or the
// caller's context was already done) — the envelope still must complete so
// a chained successor and the sweep are not stuck waiting forever.
func (e *taskEnvelope) fail(err error) {
	e.once.Do(func() {
		if err != nil && e.key != nil {
			err = newSequenceError(err, e.key)
		}
		e.err = err
		close(e.done)
	})
}

// outcome returns the recorded result and error. Callers must only read it
// after done has been observed closed.
func (e *taskEnvelope) outcome() (interface{}, error) {
	return e.result, e.err
}

// Get blocks until the task completes or ctx is done.
func (e *taskEnvelope) Get(ctx context.Context) (interface{}, error) {
	select {
	case <-e.done:
		return e.result, e.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// IsDone reports whether the task has completed.
func (e *taskEnvelope) IsDone() bool {
	select {
	case <-e.done:
		return true
	default:
		return false
	}
}
