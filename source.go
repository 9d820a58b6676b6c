package strobe

import "context"

// Emission is a single event produced by a Source. Err != nil marks a
// terminal failure; the subscription channel is closed immediately after.
// A close without a preceding error is normal completion.
type Emission[T any] struct {
	Value T
	Err   error
}

// Source produces values over time. Implementations must deliver emissions
// in production order and close the channel on completion, terminal error,
// or context cancellation.
//
// Sources that already hold a value should emit it immediately upon
// Subscribe so consumers never have to special-case the initial load.
type Source[T any] interface {
	// Subscribe begins producing emissions. The returned channel is owned
	// by the source and closed by it; canceling the context stops
	// production.
	Subscribe(ctx context.Context) (<-chan Emission[T], error)
}

// Static returns a Source that emits a single value and completes.
func Static[T any](v T) Source[T] {
	return staticSource[T]{value: v}
}

type staticSource[T any] struct {
	value T
}

func (s staticSource[T]) Subscribe(_ context.Context) (<-chan Emission[T], error) {
	out := make(chan Emission[T], 1)
	out <- Emission[T]{Value: s.value}
	close(out)
	return out, nil
}
