package strobe

import (
	"context"
	"sync/atomic"

	"github.com/zoobzio/capitan"
)

// Scheduler turns render requests into refresh invocations, collapsing
// bursts into a single invocation per coalescing window.
//
// The scheduler is a two-state machine: idle and pending. The first Request
// in a window arms it and hands the flush to the Trigger; every further
// Request before the flush runs is a no-op. The flag clears when the flush
// executes, so a request arriving during the refresh itself opens a new
// window.
type Scheduler struct {
	refresh func()
	trigger Trigger
	metrics MetricsProvider
	pending atomic.Bool
}

// NewScheduler creates a Scheduler that runs refresh according to the given
// trigger strategy. The strategy is fixed for the scheduler's lifetime; it
// is an environment capability, not a per-call decision. A nil trigger
// defaults to ImmediateTrigger.
func NewScheduler(refresh func(), trigger Trigger) *Scheduler {
	if trigger == nil {
		trigger = ImmediateTrigger{}
	}
	return &Scheduler{refresh: refresh, trigger: trigger}
}

// Metrics sets a metrics provider for render scheduling events.
func (s *Scheduler) Metrics(provider MetricsProvider) *Scheduler {
	s.metrics = provider
	return s
}

// Request asks for a refresh. With a coalescing trigger, any number of
// requests inside one window produce exactly one refresh at the end of the
// window. Without one, every request refreshes synchronously before
// returning.
func (s *Scheduler) Request() {
	if !s.pending.CompareAndSwap(false, true) {
		// A refresh is already scheduled or in flight for this window.
		return
	}

	capitan.Emit(context.Background(), RenderScheduled)
	if s.metrics != nil {
		s.metrics.OnRenderScheduled()
	}

	if s.trigger.Coalescing() {
		s.trigger.Invoke(s.flush)
		return
	}
	s.flush()
}

// Pending reports whether a refresh is armed but has not executed yet.
func (s *Scheduler) Pending() bool {
	return s.pending.Load()
}

// flush clears the pending flag and runs the refresh side effect. The flag
// clears first so a request issued by the refresh itself arms a new window.
// A panic from the refresh propagates to the host; the scheduler does not
// swallow it.
func (s *Scheduler) flush() {
	s.pending.Store(false)
	capitan.Emit(context.Background(), RenderExecuted)
	if s.metrics != nil {
		s.metrics.OnRenderExecuted()
	}
	if s.refresh != nil {
		s.refresh()
	}
}
