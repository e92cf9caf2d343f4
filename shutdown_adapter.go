package keyseq

// shutdownDisabledExecutor wraps an Executor and rejects the shutdown
// family, forwarding every other operation unchanged (spec §4.5). The
// shared dispatcher may be running tasks for unrelated keys, so an
// individual handle must never be able to tear it down — only
// Factory.Close does that.
type shutdownDisabledExecutor struct {
	Executor
}

func (s *shutdownDisabledExecutor) Shutdown() error    { return ErrUnsupported }
func (s *shutdownDisabledExecutor) ShutdownNow() error { return ErrUnsupported }
