package keyseq

import "errors"

// Namespace prefixes every sentinel error this package defines, matching
// the convention the teacher library uses for its own error namespace.
const Namespace = "keyseq"

var (
	// ErrUnsupported is returned by Shutdown and ShutdownNow on a per-key
	// handle: the shared dispatcher may be running tasks for unrelated
	// keys, so an individual handle can never tear it down.
	ErrUnsupported = errors.New(Namespace + ": shutdown is not supported on a per-key executor handle")

	// ErrInvalidArgument is returned immediately, before any registry
	// mutation, when a submission carries a nil task or an unusable key.
	ErrInvalidArgument = errors.New(Namespace + ": invalid argument")

	// ErrFactoryClosed is returned by submissions made through any handle
	// once the owning Factory has been closed, whether the handle was
	// obtained before or after Close.
	ErrFactoryClosed = errors.New(Namespace + ": factory is closed")

	// ErrTaskPanicked wraps a task's recovered panic value into an error
	// carried by that task's own future; it never poisons the lane.
	ErrTaskPanicked = errors.New(Namespace + ": task execution panicked")

	// ErrNoTasks is returned by InvokeAny when given an empty task list.
	ErrNoTasks = errors.New(Namespace + ": no tasks given")
)

// SequenceError wraps a task failure with the sequence key of the lane it
// ran under, so a %+v-formatted log line or an errors.As caller can
// correlate a failure back to its lane without the executor exposing the
// key type anywhere else in the error path. It generalizes the teacher's
// TaskMetaError/taskTaggedError pattern (error_tagging.go) from a task
// index to an opaque sequence key.
type SequenceError struct {
	err error
	key any
}

func newSequenceError(err error, key any) error {
	if err == nil {
		return nil
	}
	return &SequenceError{err: err, key: key}
}

func (e *SequenceError) Error() string { return e.err.Error() }

func (e *SequenceError) Unwrap() error { return e.err }

// Key returns the sequence key of the lane the failing task ran under.
func (e *SequenceError) Key() any { return e.key }
