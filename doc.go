// Package keyseq provides a per-key sequential task executor: submissions
// carrying the same sequence key run strictly one at a time, in submission
// order, while submissions under different keys run in parallel up to a
// configured concurrency ceiling.
//
// Two interchangeable lane strategies back every Factory:
//
//   - Chained-stage (default): each lane is a chain of completion-linked
//     stages; the registry stores only the tail stage.
//   - Pooled-worker: each lane borrows a single-threaded worker from a
//     shared object pool; the registry stores the active worker.
//
// Select pooled-worker with WithPooledWorkerStrategy; both honor the same
// correctness contract (see lane_chained.go, lane_pooled.go).
//
// Construction
//
//	f := keyseq.NewFactory[string]()                                      // unbounded keys
//	bf, _ := keyseq.NewBoundedFactory[string](16)                         // 16 buckets
//	ex := f.Handle("order-42")
//	fut, err := keyseq.Submit(ex, ctx, func(ctx context.Context) (int, error) { ... })
//
// Channel/lifecycle ownership
//
// A Factory owns the dispatcher and the lane registry. Closing it closes
// the dispatcher; every handle obtained before Close reports itself
// shut down and terminated afterward. Individual handles never accept
// shutdown/shutdownNow themselves (see shutdown_adapter.go) — only
// Factory.Close tears down the shared pool.
package keyseq
