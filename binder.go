package strobe

import (
	"context"
	"sync"
)

// Binder is the per-render-pass surface over a Switcher. Bind is called
// once per external render pass with whatever source the pass produced; the
// switcher is only re-pointed when the source differs from the previous
// pass, and the current visible value is always returned.
//
// Identity is Go interface equality: pointer sources compare by pointer,
// and Static sources compare by value. Sources bound through a Binder must
// have comparable dynamic types.
type Binder[T comparable] struct {
	switcher *Switcher[T]

	mu       sync.Mutex
	last     Source[T]
	bound    bool
	disposed bool
}

// NewBinder wraps a configured Switcher.
func NewBinder[T comparable](switcher *Switcher[T]) *Binder[T] {
	return &Binder[T]{switcher: switcher}
}

// Bind accepts the potential source for this render pass and returns the
// current visible value, with false while nothing has been emitted since
// the last source change. After Dispose, Bind returns (zero, false) and
// touches nothing.
func (b *Binder[T]) Bind(ctx context.Context, source Source[T]) (T, bool) {
	b.mu.Lock()
	if b.disposed {
		b.mu.Unlock()
		var zero T
		return zero, false
	}
	changed := !b.bound || source != b.last
	if changed {
		b.last = source
		b.bound = true
	}
	b.mu.Unlock()

	if changed {
		// Subscribe errors surface through the switcher's sink and LastError.
		_ = b.switcher.Set(ctx, source) //nolint:errcheck
	}
	return b.switcher.Value()
}

// Dispose tears down the underlying switcher. Safe to call more than once;
// Bind must not be called again afterwards.
func (b *Binder[T]) Dispose() {
	b.mu.Lock()
	if b.disposed {
		b.mu.Unlock()
		return
	}
	b.disposed = true
	b.mu.Unlock()

	b.switcher.Dispose()
}
