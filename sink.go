package strobe

import "sync"

// Sink receives terminal source errors. It is an external collaborator: the
// switcher invokes it but never owns it. Implementations must not panic; a
// sink that panics takes the emission goroutine down with it.
type Sink interface {
	Report(err error)
}

// CollectingSink is a Sink that records every reported error.
// Useful in tests and as a simple default for hosts without a real
// error channel.
type CollectingSink struct {
	mu   sync.Mutex
	errs []error
}

// Report records the error.
func (s *CollectingSink) Report(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs = append(s.errs, err)
}

// Errors returns the recorded errors in report order.
func (s *CollectingSink) Errors() []error {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]error, len(s.errs))
	copy(out, s.errs)
	return out
}

// Ensure CollectingSink implements Sink.
var _ Sink = (*CollectingSink)(nil)
