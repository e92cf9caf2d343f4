package keyseq

import "context"

// bulkInvokeAll and bulkInvokeAny implement the InvokeAll/InvokeAny open
// question decision recorded in SPEC_FULL.md: bulk operations are a batch
// convenience over the shared dispatcher, not a per-key ordering
// primitive, so they submit directly onto it — bypassing lanes entirely,
// exactly as the teacher's shutdown-disabled wrapper forwards operations
// straight to the underlying pool. Grounded on abcxyz-pkg/workerpool's
// ordered-result collection.

func bulkInvokeAll(ctx context.Context, disp *dispatcher, fns []func(context.Context) (interface{}, error)) ([]Future, error) {
	if len(fns) == 0 {
		return nil, ErrInvalidArgument
	}

	futures := make([]Future, len(fns))
	for i, fn := range fns {
		if fn == nil {
			return nil, ErrInvalidArgument
		}
		env := newTaskEnvelope(fn)
		futures[i] = env
		go func(env *taskEnvelope) {
			if err := disp.run(ctx, env); err != nil {
				env.fail(err)
			}
		}(env)
	}
	return futures, nil
}

// bulkInvokeAny runs every fn concurrently on the dispatcher and returns
// the result of whichever finishes first without error. In-flight
// siblings are left to run to completion — the core never cancels
// accepted work (Non-goals) — and each keeps its dispatcher slot until it
// finishes, but InvokeAny itself never waits for it.
func bulkInvokeAny(ctx context.Context, disp *dispatcher, fns []func(context.Context) (interface{}, error)) (interface{}, error) {
	if len(fns) == 0 {
		return nil, ErrNoTasks
	}

	type outcome struct {
		val interface{}
		err error
	}
	results := make(chan outcome, len(fns))

	for _, fn := range fns {
		if fn == nil {
			return nil, ErrInvalidArgument
		}
		env := newTaskEnvelope(fn)
		go func(env *taskEnvelope) {
			if err := disp.run(ctx, env); err != nil {
				env.fail(err)
			}
			v, e := env.Get(ctx)
			results <- outcome{val: v, err: e}
		}(env)
	}

	var firstErr error
	for i := 0; i < len(fns); i++ {
		o := <-results
		if o.err == nil {
			return o.val, nil
		}
		if firstErr == nil {
			firstErr = o.err
		}
	}
	return nil, firstErr
}
