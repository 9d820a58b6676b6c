package strobe

import "sync"

// errorRing is a thread-safe ring buffer holding the most recent errors.
type errorRing struct {
	mu     sync.RWMutex
	errors []error
	size   int
	head   int
	count  int
}

// newErrorRing creates an error ring with the given capacity.
// A size of 0 disables history; a nil ring accepts all operations as no-ops.
func newErrorRing(size int) *errorRing {
	if size <= 0 {
		return nil
	}
	return &errorRing{
		errors: make([]error, size),
		size:   size,
	}
}

// record appends an error, evicting the oldest when full.
func (r *errorRing) record(err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.errors[r.head] = err
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// snapshot returns the retained errors, oldest first.
func (r *errorRing) snapshot() []error {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.count == 0 {
		return nil
	}

	out := make([]error, r.count)
	start := (r.head - r.count + r.size) % r.size
	for i := 0; i < r.count; i++ {
		out[i] = r.errors[(start+i)%r.size]
	}
	return out
}
