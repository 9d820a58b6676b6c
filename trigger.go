package strobe

import (
	"time"

	"github.com/zoobzio/clockz"
)

// Trigger decides how a Scheduler runs its armed refresh. Coalescing
// reports whether the host provides a deferral mechanism; when it does,
// Invoke must run fn once, at the end of the current execution window.
// When it does not, Invoke runs fn synchronously.
type Trigger interface {
	Coalescing() bool
	Invoke(fn func())
}

// ImmediateTrigger runs refreshes synchronously. Use when no cooperative
// scheduling host exists; correctness over batching.
type ImmediateTrigger struct{}

func (ImmediateTrigger) Coalescing() bool { return false }
func (ImmediateTrigger) Invoke(fn func()) { fn() }

// LoopTrigger defers refreshes to the end of the current Loop execution
// window, batching them with any other work deferred in that window.
type LoopTrigger struct {
	Loop *Loop
}

func (t LoopTrigger) Coalescing() bool { return true }
func (t LoopTrigger) Invoke(fn func()) { t.Loop.Defer(fn) }

// WindowTrigger defers refreshes by a fixed time window, so emission bursts
// shorter than the window collapse into one refresh. This is deferral over
// wall time rather than over an execution window; use it when the host has
// no cooperative scheduler but refresh latency is cheaper than refresh
// frequency.
type WindowTrigger struct {
	window time.Duration
	clock  clockz.Clock
}

// NewWindowTrigger creates a WindowTrigger with the given window.
func NewWindowTrigger(window time.Duration) *WindowTrigger {
	return &WindowTrigger{window: window, clock: clockz.RealClock}
}

// Clock sets a custom clock. Use clockz.FakeClock for deterministic tests.
func (t *WindowTrigger) Clock(clock clockz.Clock) *WindowTrigger {
	t.clock = clock
	return t
}

func (t *WindowTrigger) Coalescing() bool { return true }

// Invoke runs fn after the window elapses. The scheduler guarantees at most
// one armed flush at a time, so at most one timer is live per scheduler.
func (t *WindowTrigger) Invoke(fn func()) {
	timer := t.clock.NewTimer(t.window)
	go func() {
		<-timer.C()
		fn()
	}()
}
