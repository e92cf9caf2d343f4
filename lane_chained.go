package keyseq

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// chainedStrategy implements the chained-stage lane (spec §4.1): the
// registry stores only the tail taskEnvelope of each key's chain. An
// envelope's own done channel doubles as the hook a freshly appended
// successor chains behind and the signal the sweep waits on — there is no
// separate "stage" type, since one taskEnvelope already is one stage.
type chainedStrategy[K comparable] struct {
	reg    *registry[K]
	disp   *dispatcher
	logger zerolog.Logger

	created atomic.Int64
	swept   atomic.Int64
}

func newChainedStrategy[K comparable](disp *dispatcher, logger zerolog.Logger) *chainedStrategy[K] {
	return &chainedStrategy[K]{reg: newRegistry[K](), disp: disp, logger: logger}
}

// submit is append (spec §4.1): atomic with respect to other appends on
// key, never blocks on the predecessor or on execution.
func (s *chainedStrategy[K]) submit(ctx context.Context, key K, env *taskEnvelope) {
	var prev *taskEnvelope
	s.reg.compute(key, func(existing any, ok bool) any {
		if ok {
			prev = existing.(*taskEnvelope)
		} else {
			s.created.Add(1)
		}
		return env
	})

	if prev == nil {
		go s.run(ctx, env)
	} else {
		go s.awaitThenRun(ctx, key, prev, env)
	}
	go s.sweep(key, env)
}

// awaitThenRun parks on the predecessor's completion without occupying a
// dispatcher slot while it waits — only once prev is done does it ask the
// dispatcher for a slot. A failing predecessor does not poison the lane:
// it is logged (naming the lane's sequence key, spec §7) and env still
// runs (spec §4.1 failure policy).
func (s *chainedStrategy[K]) awaitThenRun(ctx context.Context, key K, prev, env *taskEnvelope) {
	<-prev.done
	if _, err := prev.outcome(); err != nil {
		s.logger.Warn().Interface("sequence_key", key).Err(err).Msg("predecessor task failed; successor still runs")
	}
	s.run(ctx, env)
}

func (s *chainedStrategy[K]) run(ctx context.Context, env *taskEnvelope) {
	if err := s.disp.run(ctx, env); err != nil {
		env.fail(err)
	}
}

// sweep removes env from the registry once it completes, but only if no
// later append has replaced it as the tail in the meantime (spec §4.3):
// sweep and append are linearized by the same registry.compute, so a
// sweep that fires after env either sees env as the current tail (and
// removes it) or sees a strict successor appended after env finished (and
// leaves the entry alone).
func (s *chainedStrategy[K]) sweep(key K, env *taskEnvelope) {
	<-env.done
	s.reg.compute(key, func(existing any, ok bool) any {
		if ok && existing.(*taskEnvelope) == env {
			s.swept.Add(1)
			return nil
		}
		return existing
	})
}

func (s *chainedStrategy[K]) activeLanes() int    { return s.reg.size() }
func (s *chainedStrategy[K]) lanesCreated() int64 { return s.created.Load() }
func (s *chainedStrategy[K]) lanesSwept() int64   { return s.swept.Load() }
