package strobe

import (
	"context"
	"fmt"
)

// Decode adapts a byte-emitting source into a typed source by unmarshaling
// each emission with the codec. A decode failure is terminal for the
// subscription, exactly like a source error: the consumer keeps its last
// good value and the error reaches the sink.
func Decode[T any](source Source[[]byte], codec Codec) Source[T] {
	return decodeSource[T]{source: source, codec: codec}
}

type decodeSource[T any] struct {
	source Source[[]byte]
	codec  Codec
}

func (d decodeSource[T]) Subscribe(ctx context.Context) (<-chan Emission[T], error) {
	raw, err := d.source.Subscribe(ctx)
	if err != nil {
		return nil, err
	}

	out := make(chan Emission[T])
	go func() {
		defer close(out)
		for em := range raw {
			var next Emission[T]
			switch {
			case em.Err != nil:
				next = Emission[T]{Err: em.Err}
			default:
				var v T
				if err := d.codec.Unmarshal(em.Value, &v); err != nil {
					next = Emission[T]{Err: fmt.Errorf("decode %s failed: %w", d.codec.ContentType(), err)}
				} else {
					next = Emission[T]{Value: v}
				}
			}

			select {
			case out <- next:
			case <-ctx.Done():
				return
			}

			// Terminal: stop consuming after forwarding an error.
			if next.Err != nil {
				return
			}
		}
	}()
	return out, nil
}
