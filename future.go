package strobe

import (
	"context"
	"sync"
)

// Future is a deferred one-shot value: it settles exactly once, by Resolve
// or Reject, and every subscription delivers the settled outcome once.
// Subscribers that attach after settlement receive the outcome immediately.
//
// A Future cannot be canceled once requested; a Switcher that has since
// moved to a newer source discards the late outcome instead.
type Future[T any] struct {
	mu    sync.Mutex
	done  chan struct{}
	value T
	err   error
}

// NewFuture creates an unsettled Future.
func NewFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Resolve settles the future with a value. Calls after the first settlement
// are ignored.
func (f *Future[T]) Resolve(v T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	select {
	case <-f.done:
		return
	default:
	}
	f.value = v
	close(f.done)
}

// Reject settles the future with a terminal error. Calls after the first
// settlement are ignored.
func (f *Future[T]) Reject(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	select {
	case <-f.done:
		return
	default:
	}
	f.err = err
	close(f.done)
}

// Subscribe returns a channel that delivers the settled outcome and closes.
func (f *Future[T]) Subscribe(ctx context.Context) (<-chan Emission[T], error) {
	out := make(chan Emission[T], 1)
	go func() {
		defer close(out)
		select {
		case <-ctx.Done():
			return
		case <-f.done:
		}

		f.mu.Lock()
		v, err := f.value, f.err
		f.mu.Unlock()

		if err != nil {
			out <- Emission[T]{Err: err}
			return
		}
		out <- Emission[T]{Value: v}
	}()
	return out, nil
}
