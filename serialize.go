package keyseq

import (
	"context"
	"sync"
)

// serializingExecutor wraps an Executor and serializes entry into the
// core under a single mutex, held only across the registry bookkeeping
// inside Submit/Execute — never across task execution (spec §4.6).
// Enabled via WithSerializedSubmission; off by default.
type serializingExecutor struct {
	Executor
	mu *sync.Mutex
}

func (s *serializingExecutor) Submit(ctx context.Context, fn func(context.Context) (interface{}, error)) (Future, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Executor.Submit(ctx, fn)
}

func (s *serializingExecutor) Execute(ctx context.Context, fn func(context.Context) (interface{}, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Executor.Execute(ctx, fn)
}
