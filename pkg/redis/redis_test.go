package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/zoobzio/strobe"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return mr, client
}

// notifySet mimics a server-side keyspace notification. miniredis does not
// generate them itself, so tests publish to the keyspace channel directly
// after writing the key.
func notifySet(ctx context.Context, t *testing.T, client *redis.Client, key string) {
	t.Helper()
	channel := "__keyspace@0__:" + key
	if err := client.Publish(ctx, channel, "set").Err(); err != nil {
		t.Fatalf("failed to publish keyspace event: %v", err)
	}
}

func waitEmission(t *testing.T, ch <-chan strobe.Emission[[]byte]) strobe.Emission[[]byte] {
	t.Helper()
	select {
	case em := <-ch:
		return em
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for emission")
		return strobe.Emission[[]byte]{}
	}
}

func TestSource_EmitsInitialValue(t *testing.T) {
	mr, client := setupRedis(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	key := "config:test"
	value := `{"port": 8080}`
	mr.Set(key, value)

	ch, err := New(client, key).Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	em := waitEmission(t, ch)
	if em.Err != nil {
		t.Fatalf("unexpected error: %v", em.Err)
	}
	if string(em.Value) != value {
		t.Errorf("expected %q, got %q", value, em.Value)
	}
}

func TestSource_EmitsOnChange(t *testing.T) {
	mr, client := setupRedis(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	key := "config:test"
	mr.Set(key, `{"v": 1}`)

	ch, err := New(client, key).Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	// Drain initial value
	waitEmission(t, ch)

	updated := `{"v": 2}`
	mr.Set(key, updated)
	notifySet(ctx, t, client, key)

	em := waitEmission(t, ch)
	if em.Err != nil {
		t.Fatalf("unexpected error: %v", em.Err)
	}
	if string(em.Value) != updated {
		t.Errorf("expected %q, got %q", updated, em.Value)
	}
}

func TestSource_MissingKeyEmitsNothingInitially(t *testing.T) {
	mr, client := setupRedis(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	key := "config:absent"

	ch, err := New(client, key).Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	select {
	case em := <-ch:
		t.Fatalf("expected no emission for a missing key, got %+v", em)
	case <-time.After(100 * time.Millisecond):
	}

	// First write becomes the first emission.
	value := `{"v": 1}`
	mr.Set(key, value)
	notifySet(ctx, t, client, key)

	em := waitEmission(t, ch)
	if string(em.Value) != value {
		t.Errorf("expected %q, got %q", value, em.Value)
	}
}

func TestSource_ClosesOnContextCancel(t *testing.T) {
	mr, client := setupRedis(t)
	ctx, cancel := context.WithCancel(context.Background())

	key := "config:test"
	mr.Set(key, "value")

	ch, err := New(client, key).Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	// Drain initial value
	waitEmission(t, ch)

	cancel()

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("expected closed channel after cancel")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for close")
	}
}
