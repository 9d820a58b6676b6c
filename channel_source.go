package strobe

import "context"

// ChannelSource wraps an existing channel as a Source.
// Useful for testing and custom producers that already push values.
type ChannelSource[T any] struct {
	ch <-chan T
}

// FromChannel creates a ChannelSource that forwards values from the given
// channel through an internal goroutine. The subscription completes when
// the channel is closed.
func FromChannel[T any](ch <-chan T) *ChannelSource[T] {
	return &ChannelSource[T]{ch: ch}
}

// Subscribe returns a channel that emits values from the wrapped channel.
func (s *ChannelSource[T]) Subscribe(ctx context.Context) (<-chan Emission[T], error) {
	out := make(chan Emission[T])
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-s.ch:
				if !ok {
					return
				}
				select {
				case out <- Emission[T]{Value: v}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// EmissionSource returns a Source whose subscription is the given emission
// channel, with no intermediate goroutine. The caller controls delivery
// directly, which makes it the natural source for sync-mode pumping and for
// injecting terminal errors in tests.
func EmissionSource[T any](ch <-chan Emission[T]) Source[T] {
	return emissionSource[T]{ch: ch}
}

type emissionSource[T any] struct {
	ch <-chan Emission[T]
}

func (s emissionSource[T]) Subscribe(_ context.Context) (<-chan Emission[T], error) {
	return s.ch, nil
}
