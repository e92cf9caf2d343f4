// Package pool provides reusable-object pool abstractions backing the
// keyed sequencer's pooled-worker lane strategy.
package pool

// Pool is an interface that defines methods on a pool of reusable objects.
type Pool interface {
	// Get returns an object from the pool, constructing one on demand if
	// none are currently idle.
	Get() interface{}

	// Put returns an object to the pool for reuse.
	Put(interface{})
}

// BoundedPool is a Pool with a fixed capacity. Callers that must know
// whether a returned object was actually retained — as opposed to being
// dropped because every slot was already occupied — use TryPut instead
// of Put.
type BoundedPool interface {
	Pool

	// TryPut returns el to the pool if a slot is available and reports
	// whether it was retained. A false result means el was abandoned.
	TryPut(el interface{}) bool
}
