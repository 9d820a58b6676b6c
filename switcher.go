package strobe

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
	"github.com/zoobzio/pipz"
)

const callbackID pipz.Name = "callback"

// Switcher binds one active Source at a time to a single visible value slot.
//
// Set tears down the previous subscription, resets the visible value, and
// attaches to the new source. Each emission is filtered for consecutive
// duplicates, run through the delivery pipeline, stored, and turned into a
// render request on the configured Scheduler.
//
// A terminal error from the active source is forwarded to the Sink and the
// last visible value is retained; the switcher stays usable and a later Set
// with a healthy source resumes normal operation.
type Switcher[T comparable] struct {
	pipeline  pipz.Chainable[*Request[T]]
	scheduler *Scheduler
	sink      Sink
	metrics   MetricsProvider
	clock     clockz.Clock
	syncMode  bool

	state        atomic.Int32
	value        atomic.Pointer[T]
	lastError    atomic.Pointer[error]
	errorHistory *errorRing

	mu       sync.Mutex
	epoch    uint64
	cancel   context.CancelFunc
	disposed bool

	// Sync mode only: the active subscription channel, drained via Pump.
	emissions <-chan Emission[T]
}

// New creates a Switcher whose delivery pipeline terminates in fn. The
// callback receives the outgoing and incoming visible values for every
// accepted emission; a nil fn leaves a pure render path.
//
// Pipeline options (With*) configure the delivery pipeline. Instance
// configuration uses chainable methods before the first Set:
//
//	sw := strobe.New[Config](
//	    func(ctx context.Context, prev, curr Config) error {
//	        return app.Apply(curr)
//	    },
//	    strobe.WithRetry[Config](3),
//	).Scheduler(sched).Sink(errs)
func New[T comparable](fn func(ctx context.Context, prev, curr T) error, opts ...Option[T]) *Switcher[T] {
	terminal := pipz.Effect(callbackID, func(ctx context.Context, req *Request[T]) error {
		if fn == nil {
			return nil
		}
		return fn(ctx, req.Previous, req.Current)
	})

	s := &Switcher[T]{
		pipeline: buildPipeline(terminal, opts),
		clock:    clockz.RealClock,
	}
	s.state.Store(int32(StateIdle))
	return s
}

// -----------------------------------------------------------------------------
// Chainable Instance Configuration
// -----------------------------------------------------------------------------

// Scheduler sets the render scheduler that receives a request for every
// accepted value and every reset that blanks a visible value.
// Must be called before the first Set.
func (s *Switcher[T]) Scheduler(sched *Scheduler) *Switcher[T] {
	s.scheduler = sched
	return s
}

// Sink sets the external error sink. Terminal source errors and delivery
// failures are reported to it exactly once each.
// Must be called before the first Set.
func (s *Switcher[T]) Sink(sink Sink) *Switcher[T] {
	s.sink = sink
	return s
}

// Metrics sets a metrics provider for observability integration.
// Must be called before the first Set.
func (s *Switcher[T]) Metrics(provider MetricsProvider) *Switcher[T] {
	s.metrics = provider
	return s
}

// Clock sets a custom clock for pipeline timing measurements.
// Must be called before the first Set.
func (s *Switcher[T]) Clock(clock clockz.Clock) *Switcher[T] {
	s.clock = clock
	return s
}

// SyncMode disables the consuming goroutine. After Set, emissions are
// processed one at a time via Pump, making tests deterministic.
// Must be called before the first Set.
func (s *Switcher[T]) SyncMode() *Switcher[T] {
	s.syncMode = true
	return s
}

// ErrorHistorySize sets the number of recent errors to retain.
// Use 0 (default) to only retain the most recent error via LastError.
// Must be called before the first Set.
func (s *Switcher[T]) ErrorHistorySize(n int) *Switcher[T] {
	s.errorHistory = newErrorRing(n)
	return s
}

// -----------------------------------------------------------------------------
// Accessors
// -----------------------------------------------------------------------------

// State returns the current state of the Switcher.
func (s *Switcher[T]) State() State {
	return State(s.state.Load())
}

// Value returns the current visible value and true, or the zero value and
// false while nothing has been emitted since the last source swap.
func (s *Switcher[T]) Value() (T, bool) {
	ptr := s.value.Load()
	if ptr == nil {
		var zero T
		return zero, false
	}
	return *ptr, true
}

// LastError returns the last error encountered, or nil.
func (s *Switcher[T]) LastError() error {
	ptr := s.lastError.Load()
	if ptr == nil {
		return nil
	}
	return *ptr
}

// ErrorHistory returns the recent error history, oldest first.
// Returns nil unless ErrorHistorySize was configured.
func (s *Switcher[T]) ErrorHistory() []error {
	return s.errorHistory.snapshot()
}

// -----------------------------------------------------------------------------
// Operations
// -----------------------------------------------------------------------------

// Set replaces the active source.
//
// The previous subscription is fully released and the visible value reset
// before the new source is attached, so a stale value is never shown while
// the new source warms up. If the reset blanks a visible value, one render
// request is issued for the blank.
//
// A nil source detaches without attaching anything: the value stays unset
// and the switcher goes Idle. There is no identity short-circuit; passing
// the same source twice tears down and re-attaches (Binder adds the
// short-circuit for per-render-pass callers).
//
// After Dispose, Set is a no-op.
func (s *Switcher[T]) Set(ctx context.Context, source Source[T]) error {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return nil
	}

	s.detachLocked()
	hadValue := s.value.Load() != nil
	s.value.Store(nil)
	s.emissions = nil
	epoch := s.epoch
	oldState := State(s.state.Load())

	if source == nil {
		s.mu.Unlock()
		s.transition(ctx, oldState, StateIdle)
		capitan.Emit(ctx, SourceCleared)
		if hadValue {
			s.requestRender()
		}
		return nil
	}

	subCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	s.transition(ctx, oldState, StatePending)
	capitan.Emit(ctx, SourceSet, KeyEpoch.Field(int(epoch)))
	if hadValue {
		s.requestRender()
	}

	emissions, err := source.Subscribe(subCtx)
	if err != nil {
		cancel()
		err = fmt.Errorf("subscribe failed: %w", err)
		s.fail(ctx, epoch, err)
		return err
	}

	if s.syncMode {
		s.mu.Lock()
		if !s.disposed && s.epoch == epoch {
			s.emissions = emissions
		}
		s.mu.Unlock()
		return nil
	}

	go s.consume(ctx, epoch, emissions)
	return nil
}

// Pump processes the next pending emission from the active subscription.
// Only available in sync mode; used for deterministic testing.
// Returns false if no emission is immediately available.
func (s *Switcher[T]) Pump(ctx context.Context) bool {
	s.mu.Lock()
	emissions := s.emissions
	epoch := s.epoch
	disposed := s.disposed
	s.mu.Unlock()

	if disposed || !s.syncMode || emissions == nil {
		return false
	}

	select {
	case em, ok := <-emissions:
		if !ok {
			s.complete(ctx, epoch)
			return false
		}
		if em.Err != nil {
			s.fail(ctx, epoch, em.Err)
			return true
		}
		s.deliver(ctx, epoch, em.Value)
		return true
	default:
		return false
	}
}

// Dispose releases the active subscription and makes every later operation
// a no-op. Safe to call more than once.
func (s *Switcher[T]) Dispose() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	s.detachLocked()
	s.emissions = nil
	oldState := State(s.state.Load())
	s.mu.Unlock()

	s.transition(context.Background(), oldState, StateDisposed)
	capitan.Emit(context.Background(), SwitcherDisposed, KeyState.Field(oldState.String()))
}

// -----------------------------------------------------------------------------
// Internals
// -----------------------------------------------------------------------------

// detachLocked cancels the active subscription and invalidates its epoch.
// Emissions still in flight from the old subscription are rejected by the
// epoch check, so the release is complete before any new attach.
func (s *Switcher[T]) detachLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.epoch++
}

// consume drains a subscription channel until completion or terminal error.
func (s *Switcher[T]) consume(ctx context.Context, epoch uint64, emissions <-chan Emission[T]) {
	for em := range emissions {
		if em.Err != nil {
			s.fail(ctx, epoch, em.Err)
			return
		}
		s.deliver(ctx, epoch, em.Value)
	}
	s.complete(ctx, epoch)
}

// deliver applies the distinct filter, runs the delivery pipeline, stores
// the value, and requests a render. Emissions from a superseded epoch are
// discarded.
func (s *Switcher[T]) deliver(ctx context.Context, epoch uint64, v T) {
	s.mu.Lock()
	if s.disposed || epoch != s.epoch {
		s.mu.Unlock()
		return
	}
	prevPtr := s.value.Load()
	if prevPtr != nil && *prevPtr == v {
		s.mu.Unlock()
		capitan.Emit(ctx, EmissionSuppressed)
		if s.metrics != nil {
			s.metrics.OnEmissionSuppressed()
		}
		return
	}
	var prev T
	if prevPtr != nil {
		prev = *prevPtr
	}
	s.mu.Unlock()

	start := s.clock.Now()
	req := &Request[T]{Previous: prev, Current: v}
	processed, err := s.pipeline.Process(ctx, req)
	if err != nil {
		s.mu.Lock()
		if s.disposed || epoch != s.epoch {
			s.mu.Unlock()
			return
		}
		s.recordError(err)
		oldState := State(s.state.Load())
		s.mu.Unlock()

		s.transition(ctx, oldState, StateFailed)
		capitan.Emit(ctx, DeliveryFailed, KeyError.Field(err.Error()))
		if s.metrics != nil {
			s.metrics.OnSourceError()
		}
		if s.sink != nil {
			s.sink.Report(err)
		}
		return
	}

	s.mu.Lock()
	if s.disposed || epoch != s.epoch {
		s.mu.Unlock()
		return
	}
	accepted := processed.Current
	s.value.Store(&accepted)
	oldState := State(s.state.Load())
	s.mu.Unlock()

	s.transition(ctx, oldState, StateLive)
	capitan.Emit(ctx, EmissionAccepted, KeyDelivery.Field(s.clock.Since(start)))
	if s.metrics != nil {
		s.metrics.OnEmissionAccepted(s.clock.Since(start))
	}
	s.requestRender()
}

// fail records a terminal error from the active subscription and releases
// the subscription itself, so upstream resources are not held open by a dead
// source. The visible value is left at its last good state.
func (s *Switcher[T]) fail(ctx context.Context, epoch uint64, err error) {
	s.mu.Lock()
	if s.disposed || epoch != s.epoch {
		s.mu.Unlock()
		return
	}
	s.recordError(err)
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.emissions = nil
	oldState := State(s.state.Load())
	s.mu.Unlock()

	s.transition(ctx, oldState, StateFailed)
	capitan.Emit(ctx, SourceFailed, KeyError.Field(err.Error()))
	if s.metrics != nil {
		s.metrics.OnSourceError()
	}
	if s.sink != nil {
		s.sink.Report(err)
	}
}

// complete releases subscription bookkeeping after a normal close.
func (s *Switcher[T]) complete(ctx context.Context, epoch uint64) {
	s.mu.Lock()
	if s.disposed || epoch != s.epoch {
		s.mu.Unlock()
		return
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.emissions = nil
	s.mu.Unlock()

	capitan.Emit(ctx, SourceCompleted)
}

// recordError stores an error atomically and adds it to the history ring.
// Callers must hold s.mu.
func (s *Switcher[T]) recordError(err error) {
	e := err
	s.lastError.Store(&e)
	s.errorHistory.record(err)
}

// transition updates the state and emits a state change event if changed.
func (s *Switcher[T]) transition(ctx context.Context, oldState, newState State) {
	if oldState == newState {
		return
	}
	s.state.Store(int32(newState))
	capitan.Emit(ctx, StateChanged,
		KeyOldState.Field(oldState.String()),
		KeyNewState.Field(newState.String()),
	)
	if s.metrics != nil {
		s.metrics.OnStateChange(oldState, newState)
	}
}

func (s *Switcher[T]) requestRender() {
	if s.scheduler != nil {
		s.scheduler.Request()
	}
}
