// Package strobe binds a changing reactive source to a single rendered
// output slot and decides when a dependent refresh side effect runs.
//
// The core type is Switcher, which owns the currently active source, tears
// down the previous subscription before attaching a new one, resets the
// visible value, suppresses consecutive duplicate emissions, and forwards
// terminal errors to an external sink without crashing the host.
//
// # Switcher
//
// A Switcher accepts one Source at a time via Set and exposes the latest
// accepted value:
//
//	Set(source) → teardown old subscription → reset → attach →
//	    per emission: distinct filter → delivery pipeline → store → render request
//
// If the active source fails, the last good value is retained and the
// switcher stays usable: a later Set with a healthy source resumes normal
// operation.
//
// # Scheduler
//
// Scheduler collapses bursts of render requests into at most one refresh
// invocation per coalescing window. The window is defined by a Trigger
// strategy fixed at construction:
//
//   - ImmediateTrigger: no cooperative host, every request refreshes now
//   - LoopTrigger: refresh deferred to the end of the current Loop window
//   - WindowTrigger: refresh deferred by a fixed time window
//
// # Sources
//
// The Source interface normalizes the kinds of input the switcher accepts.
// Static wraps a plain value, Future wraps a deferred one-shot value,
// FromChannel adapts an existing channel, FileSource watches a file via
// fsnotify, and pkg/redis watches a redis key. A nil Source means "nothing
// to watch": the visible value stays unset.
//
// # State Machine
//
// Switcher maintains one of five states:
//
//   - Idle: no source bound
//   - Pending: source bound, nothing emitted yet
//   - Live: a value is visible
//   - Failed: the active source failed; the last value remains visible
//   - Disposed: torn down, all operations are no-ops
//
// # Equality
//
// Duplicate suppression uses Go's == on the value type, so Switcher is
// constrained to comparable types. Payloads that need deep comparison should
// carry a comparable key or be passed by pointer; the switcher never performs
// deep equality.
//
// # Example
//
//	loop := strobe.NewLoop()
//	sched := strobe.NewScheduler(view.Refresh, strobe.LoopTrigger{Loop: loop})
//
//	sw := strobe.New[string](nil).Scheduler(sched).Sink(errs)
//
//	loop.Run(func() {
//	    sw.Set(ctx, strobe.Static("hello"))
//	})
//	// view.Refresh ran exactly once, at the end of the loop window.
package strobe
