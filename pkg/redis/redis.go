// Package redis provides a strobe.Source implementation for Redis keys
// using keyspace notifications.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/zoobzio/strobe"
)

// Source watches a Redis key for changes using keyspace notifications.
// Requires Redis to have keyspace notifications enabled:
//
//	CONFIG SET notify-keyspace-events KEA
//
// Or in redis.conf:
//
//	notify-keyspace-events KEA
type Source struct {
	client *redis.Client
	key    string
}

// New creates a Source for the given Redis key.
func New(client *redis.Client, key string) *Source {
	return &Source{client: client, key: key}
}

// Subscribe begins watching the key. The key's current value, if present,
// is emitted immediately; subsequent set operations re-emit.
func (s *Source) Subscribe(ctx context.Context) (<-chan strobe.Emission[[]byte], error) {
	channel := fmt.Sprintf("__keyspace@0__:%s", s.key)
	pubsub := s.client.Subscribe(ctx, channel)

	// Verify subscription worked
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to keyspace notifications: %w", err)
	}

	out := make(chan strobe.Emission[[]byte])

	go func() {
		defer close(out)
		defer pubsub.Close()

		// Emit initial value when the key exists
		val, err := s.client.Get(ctx, s.key).Bytes()
		if err != nil && err != redis.Nil {
			select {
			case out <- strobe.Emission[[]byte]{Err: fmt.Errorf("initial get failed: %w", err)}:
			case <-ctx.Done():
			}
			return
		}
		if err != redis.Nil {
			select {
			case out <- strobe.Emission[[]byte]{Value: val}:
			case <-ctx.Done():
				return
			}
		}

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}

				// Only react to operations that replace the value
				switch msg.Payload {
				case "set", "hset", "mset", "setex", "psetex", "setnx":
					val, err := s.client.Get(ctx, s.key).Bytes()
					if err != nil {
						continue
					}
					select {
					case out <- strobe.Emission[[]byte]{Value: val}:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()

	return out, nil
}

// Ensure Source implements strobe.Source.
var _ strobe.Source[[]byte] = (*Source)(nil)
