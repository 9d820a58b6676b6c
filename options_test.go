package strobe

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/zoobzio/pipz"
)

func TestWithMiddleware_TransformRewritesValue(t *testing.T) {
	ctx := context.Background()
	sw := New[int](nil,
		WithMiddleware(
			UseTransform("double", func(_ context.Context, req *Request[int]) *Request[int] {
				req.Current *= 2
				return req
			}),
		),
	).SyncMode()

	sw.Set(ctx, Static(21))
	sw.Pump(ctx)

	if v, ok := sw.Value(); !ok || v != 42 {
		t.Errorf("expected transformed value 42, got (%d, %v)", v, ok)
	}
}

func TestWithMiddleware_EffectObservesWithoutChanging(t *testing.T) {
	ctx := context.Background()
	var seen atomic.Int32
	sw := New[int](nil,
		WithMiddleware(
			UseEffect("count", func(_ context.Context, _ *Request[int]) error {
				seen.Add(1)
				return nil
			}),
		),
	).SyncMode()

	sw.Set(ctx, Static(7))
	sw.Pump(ctx)

	if seen.Load() != 1 {
		t.Errorf("expected 1 observation, got %d", seen.Load())
	}
	if v, _ := sw.Value(); v != 7 {
		t.Errorf("effect must not change the value, got %d", v)
	}
}

func TestUseApply_FailureBlocksDelivery(t *testing.T) {
	ctx := context.Background()
	sw := New[int](nil,
		WithMiddleware(
			UseApply("reject", func(_ context.Context, req *Request[int]) (*Request[int], error) {
				return nil, errors.New("rejected")
			}),
		),
	).SyncMode()

	sw.Set(ctx, Static(1))
	sw.Pump(ctx)

	if _, ok := sw.Value(); ok {
		t.Error("failed middleware must block the value")
	}
	if sw.State() != StateFailed {
		t.Errorf("expected failed, got %s", sw.State())
	}
}

func TestUseFilter_ConditionGatesProcessor(t *testing.T) {
	ctx := context.Background()
	var bumped atomic.Int32
	bump := UseEffect("bump", func(_ context.Context, _ *Request[int]) error {
		bumped.Add(1)
		return nil
	})

	sw := New[int](nil,
		WithMiddleware(
			UseFilter("only-even", func(_ context.Context, req *Request[int]) bool {
				return req.Current%2 == 0
			}, bump),
		),
	).SyncMode()

	ch := make(chan Emission[int], 3)
	ch <- Emission[int]{Value: 1}
	ch <- Emission[int]{Value: 2}
	ch <- Emission[int]{Value: 3}

	sw.Set(ctx, EmissionSource(ch))
	for sw.Pump(ctx) {
	}

	if bumped.Load() != 1 {
		t.Errorf("expected the processor to run for 2 only, got %d runs", bumped.Load())
	}
	if v, _ := sw.Value(); v != 3 {
		t.Errorf("filter must not block delivery, got %d", v)
	}
}

func TestWithErrorHandler_ObservesButPropagates(t *testing.T) {
	ctx := context.Background()
	var observed atomic.Int32
	handler := pipz.Effect("observe", func(_ context.Context, _ *pipz.Error[*Request[int]]) error {
		observed.Add(1)
		return nil
	})

	sw := New[int](func(_ context.Context, _, _ int) error {
		return errors.New("apply failed")
	}, WithErrorHandler[int](handler)).SyncMode()

	sw.Set(ctx, Static(1))
	sw.Pump(ctx)

	if observed.Load() != 1 {
		t.Errorf("expected handler to observe the failure, got %d", observed.Load())
	}
	if sw.State() != StateFailed {
		t.Errorf("error must still propagate, got %s", sw.State())
	}
}
